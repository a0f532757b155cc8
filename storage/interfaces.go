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

package storage

import (
	"context"

	"github.com/poiesic/marifa/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// Close closes the storage backend and releases resources.
	Close() error
}

// ConceptRepository provides operations for managing stored concepts.
type ConceptRepository interface {
	Repository
	// AddConcepts adds one or more concepts to storage.
	// Uses content-based IDs (IDFromContent of concept tuple) when Id is 0.
	// Sets InsertedAt and UpdatedAt timestamps.
	// Returns the concepts with IDs and timestamps populated.
	AddConcepts(ctx context.Context, concepts ...*core.ConceptRecord) ([]*core.ConceptRecord, error)

	// UpdateConcepts updates existing concepts.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any concept doesn't exist.
	UpdateConcepts(ctx context.Context, concepts ...*core.ConceptRecord) ([]*core.ConceptRecord, error)

	// DeleteConcepts removes concepts by their IDs.
	// Returns ErrNotFound if any concept doesn't exist.
	DeleteConcepts(ctx context.Context, ids ...core.ID) error

	// GetConcept retrieves a single concept by ID.
	// Returns ErrNotFound if the concept doesn't exist.
	GetConcept(ctx context.Context, id core.ID) (*core.ConceptRecord, error)

	// GetConcepts retrieves multiple concepts by their IDs.
	// Returns only the concepts that exist (no error for missing concepts).
	GetConcepts(ctx context.Context, ids ...core.ID) ([]*core.ConceptRecord, error)

	// FindConceptByNameAndType finds a concept by its name and type tuple.
	// Returns ErrNotFound if no matching concept exists.
	FindConceptByNameAndType(ctx context.Context, name, conceptType string) (*core.ConceptRecord, error)

	// GetOrCreateConcept finds or creates a concept by name and type.
	GetOrCreateConcept(ctx context.Context, name, conceptType string) (*core.ConceptRecord, error)

	// GetAllConcepts retrieves every stored concept in key order.
	GetAllConcepts(ctx context.Context) ([]*core.ConceptRecord, error)
}

// NodeRepository provides operations for managing knowledge nodes.
// Nodes are never deleted.
type NodeRepository interface {
	Repository
	// PutNodes stores one or more nodes atomically: either every node is
	// written or none is. Existing nodes with the same ID are replaced.
	PutNodes(ctx context.Context, nodes ...*core.KnowledgeNode) error

	// GetNode retrieves a single node by ID.
	// Returns ErrNotFound if the node doesn't exist.
	GetNode(ctx context.Context, id string) (*core.KnowledgeNode, error)

	// GetNodes retrieves multiple nodes by their IDs.
	// Returns only the nodes that exist (no error for missing nodes).
	GetNodes(ctx context.Context, ids ...string) ([]*core.KnowledgeNode, error)

	// ForEachNode calls fn for every stored node in key order.
	// Iteration stops at the first error returned by fn.
	ForEachNode(ctx context.Context, fn func(*core.KnowledgeNode) error) error

	// NodeIDsBySource returns the IDs of all nodes with the given source tag.
	NodeIDsBySource(ctx context.Context, source string) ([]string, error)

	// CountNodes returns the number of stored nodes.
	CountNodes(ctx context.Context) (int, error)
}

// LexiconRepository provides operations for managing lexicon entries.
type LexiconRepository interface {
	Repository
	// AddEntries adds or replaces lexicon entries keyed by term.
	// Sets InsertedAt on first insert and UpdatedAt on every write.
	AddEntries(ctx context.Context, entries ...*core.LexiconEntry) ([]*core.LexiconEntry, error)

	// GetEntry retrieves an entry by ID.
	// Returns ErrNotFound if the entry doesn't exist.
	GetEntry(ctx context.Context, id core.ID) (*core.LexiconEntry, error)

	// FindByTerm retrieves the entry for a term.
	// Returns ErrNotFound if the term has no entry.
	FindByTerm(ctx context.Context, term string) (*core.LexiconEntry, error)

	// FindByRoot retrieves all entries sharing a root.
	FindByRoot(ctx context.Context, root string) ([]*core.LexiconEntry, error)

	// AllEntries retrieves every entry in key order.
	AllEntries(ctx context.Context) ([]*core.LexiconEntry, error)
}
