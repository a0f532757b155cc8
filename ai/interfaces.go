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

package ai

import "context"

// EntryGenerator drafts lexicon entries for vocabulary terms.
// Implementations must be thread-safe for concurrent use.
type EntryGenerator interface {
	// GenerateEntry proposes the root, grammatical type, definition and usage
	// examples of term. Fields the model could not determine are left empty.
	// Returns an error wrapping ErrEmptyGeneration when the model answered
	// with nothing, and other errors if generation fails.
	GenerateEntry(ctx context.Context, term string) (*GeneratedEntry, error)
}

// GeneratedEntry is a lexicon entry proposed by a model. It carries no
// identity; the lexicon assigns one when the entry is stored.
type GeneratedEntry struct {
	// Root is the consonantal root of the term, e.g. "ر ح م" for "رحمة".
	Root string

	// Type is one of EntryTypes, or empty when the model returned an unknown type.
	Type string

	// Definition is a short gloss of the term.
	Definition string

	// Examples holds at most Config.MaxExamples usage examples.
	Examples []string
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
type AIProvider interface {
	// EntryGenerator returns the lexicon entry generation service.
	// The returned EntryGenerator is safe for concurrent use.
	EntryGenerator() EntryGenerator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
