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

package lexicon

import (
	"errors"
	"fmt"

	"github.com/poiesic/marifa/core"
)

var (
	// ErrLexiconRepositoryRequired is returned when a lexicon repository is not provided.
	ErrLexiconRepositoryRequired = errors.New("lexicon repository required")

	// ErrGeneratorRequired is returned by Generate when no entry generator is configured.
	ErrGeneratorRequired = errors.New("entry generator required")

	// ErrEntryNotFound is returned when a term has no entry.
	ErrEntryNotFound = fmt.Errorf("lexicon entry %w", core.ErrNotFound)

	// ErrGenerationFailed wraps entry generator failures.
	ErrGenerationFailed = fmt.Errorf("entry generation failed: %w", core.ErrInternal)

	// ErrUnsupportedSnapshot is returned by Import for unknown snapshot versions.
	ErrUnsupportedSnapshot = fmt.Errorf("%w: unsupported lexicon snapshot version", core.ErrValidation)
)
