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

import "fmt"

// ValidateConcept validates a ConceptRecord according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Type must not be empty
//
// NOT validated:
//   - ID (0 is replaced by a content-based ID on insert)
func ValidateConcept(concept *ConceptRecord) error {
	if concept == nil {
		return fmt.Errorf("%w: %w: concept is nil", ErrValidation, ErrInvalidConcept)
	}

	if concept.Name == "" {
		return fmt.Errorf("%w: %w: %w", ErrValidation, ErrInvalidConcept, ErrEmptyConceptName)
	}

	if concept.Type == "" {
		return fmt.Errorf("%w: %w: %w", ErrValidation, ErrInvalidConcept, ErrEmptyConceptType)
	}

	return nil
}

// ValidateNode validates a KnowledgeNode before it is stored.
//
// Validation rules:
//   - ID must not be empty
//   - Confidence must lie in [0,1]
//   - Every edge confidence must lie in [0,1]
func ValidateNode(node *KnowledgeNode) error {
	if node == nil {
		return fmt.Errorf("%w: %w: node is nil", ErrValidation, ErrInvalidNode)
	}

	if node.ID == "" {
		return fmt.Errorf("%w: %w: %w", ErrValidation, ErrInvalidNode, ErrEmptyNodeID)
	}

	if !IsValidConfidence(node.Confidence) {
		return fmt.Errorf("%w: %w: %w: %v", ErrValidation, ErrInvalidNode, ErrConfidenceOutOfRange, node.Confidence)
	}

	for target, edge := range node.Relationships {
		if !IsValidConfidence(edge.Confidence) {
			return fmt.Errorf("%w: %w: edge to %s: %w", ErrValidation, ErrInvalidNode, target, ErrConfidenceOutOfRange)
		}
	}

	return nil
}

// ValidateLexiconEntry validates a LexiconEntry before it is stored.
func ValidateLexiconEntry(entry *LexiconEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: %w: entry is nil", ErrValidation, ErrInvalidLexiconEntry)
	}
	if entry.Term == "" {
		return fmt.Errorf("%w: %w: %w", ErrValidation, ErrInvalidLexiconEntry, ErrEmptyTerm)
	}
	return nil
}

// IsValidConfidence checks that c lies in [0,1].
func IsValidConfidence(c float64) bool {
	return c >= 0 && c <= 1
}
