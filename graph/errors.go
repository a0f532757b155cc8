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

package graph

import (
	"errors"
	"fmt"

	"github.com/poiesic/marifa/core"
)

var (
	// ErrNodeRepositoryRequired is returned when a node repository is not provided.
	ErrNodeRepositoryRequired = errors.New("node repository required")

	// ErrNodeNotFound is returned when a node ID is unknown.
	ErrNodeNotFound = fmt.Errorf("knowledge node %w", core.ErrNotFound)

	// ErrEmptyRelationshipType is returned when creating an untyped edge.
	ErrEmptyRelationshipType = fmt.Errorf("%w: relationship type cannot be empty", core.ErrValidation)

	// ErrUnsupportedSnapshot is returned when importing a snapshot of an unknown version.
	ErrUnsupportedSnapshot = fmt.Errorf("%w: unsupported snapshot version", core.ErrValidation)
)
