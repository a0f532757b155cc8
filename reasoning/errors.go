// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reasoning

import (
	"fmt"

	"github.com/poiesic/marifa/core"
)

var (
	// ErrItemNotFound is returned when a knowledge item ID is not in the universe.
	ErrItemNotFound = fmt.Errorf("knowledge item %w", core.ErrNotFound)

	// ErrDuplicateItem is returned when a universe contains the same ID twice.
	ErrDuplicateItem = fmt.Errorf("%w: duplicate knowledge item", core.ErrValidation)
)
