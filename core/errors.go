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

package core

import "errors"

// Error taxonomy shared by every component.
var (
	// ErrNotFound indicates an unresolved node, concept, knowledge item or entry.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates malformed input.
	ErrValidation = errors.New("validation failed")

	// ErrInternal indicates an unexpected failure inside an operation.
	ErrInternal = errors.New("internal failure")
)

// Domain validation errors
var (
	// ErrInvalidConcept indicates a ConceptRecord failed validation.
	ErrInvalidConcept = errors.New("invalid concept")

	// ErrInvalidNode indicates a KnowledgeNode failed validation.
	ErrInvalidNode = errors.New("invalid knowledge node")

	// ErrInvalidLexiconEntry indicates a LexiconEntry failed validation.
	ErrInvalidLexiconEntry = errors.New("invalid lexicon entry")

	// ErrEmptyConceptName indicates the concept Name field is empty.
	ErrEmptyConceptName = errors.New("concept name cannot be empty")

	// ErrEmptyConceptType indicates the concept Type field is empty.
	ErrEmptyConceptType = errors.New("concept type cannot be empty")

	// ErrEmptyNodeID indicates the node ID field is empty.
	ErrEmptyNodeID = errors.New("node id cannot be empty")

	// ErrConfidenceOutOfRange indicates a confidence outside [0,1].
	ErrConfidenceOutOfRange = errors.New("confidence must be within [0,1]")

	// ErrEmptyTerm indicates the lexicon Term field is empty.
	ErrEmptyTerm = errors.New("term cannot be empty")
)
