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

package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/marifa/core"
	"github.com/poiesic/marifa/storage"
)

// ConceptRepository implements storage.ConceptRepository for BadgerDB.
type ConceptRepository struct {
	backend *Backend
}

var _ storage.ConceptRepository = (*ConceptRepository)(nil)

// NewConceptRepository creates a new ConceptRepository.
func NewConceptRepository(backend *Backend) (*ConceptRepository, error) {
	return &ConceptRepository{
		backend: backend,
	}, nil
}

// Close releases resources. ConceptRepository has no resources to release.
func (r *ConceptRepository) Close() error {
	return nil
}

// AddConcepts adds one or more concepts to storage.
func (r *ConceptRepository) AddConcepts(ctx context.Context, concepts ...*core.ConceptRecord) ([]*core.ConceptRecord, error) {
	for _, concept := range concepts {
		if err := core.ValidateConcept(concept); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		for _, concept := range concepts {
			// Use content-based ID if not set
			if concept.Id == 0 {
				concept.Id = core.IDFromContent(concept.Tuple())
			}

			concept.InsertedAt = time.Now().UTC()
			concept.UpdatedAt = concept.InsertedAt

			if err := writeConcept(tx, concept); err != nil {
				return err
			}

			tupleKey := makeConceptTupleKey(concept.Name, concept.Type)
			if err := tx.Set(tupleKey, storage.MarshalID(concept.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return concepts, nil
}

// UpdateConcepts updates existing concepts.
func (r *ConceptRepository) UpdateConcepts(ctx context.Context, concepts ...*core.ConceptRecord) ([]*core.ConceptRecord, error) {
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		for _, concept := range concepts {
			// Read old concept to detect changes
			old, err := readConcept(tx, makeConceptKey(concept.Id))
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			concept.InsertedAt = old.InsertedAt
			concept.UpdatedAt = time.Now().UTC()

			if err := writeConcept(tx, concept); err != nil {
				return err
			}

			// Update tuple index if name or type changed
			if old.Name != concept.Name || old.Type != concept.Type {
				if err := tx.Delete(makeConceptTupleKey(old.Name, old.Type)); err != nil {
					return err
				}
				newTupleKey := makeConceptTupleKey(concept.Name, concept.Type)
				if err := tx.Set(newTupleKey, storage.MarshalID(concept.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return concepts, nil
}

// DeleteConcepts removes concepts by their IDs.
func (r *ConceptRepository) DeleteConcepts(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeConceptKey(id)

			// Read concept to get metadata for index cleanup
			concept, err := readConcept(tx, key)
			if err != nil {
				return err
			}
			if concept == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeConceptTupleKey(concept.Name, concept.Type)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetConcept retrieves a single concept by ID.
func (r *ConceptRepository) GetConcept(ctx context.Context, id core.ID) (*core.ConceptRecord, error) {
	var result *core.ConceptRecord
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		var err error
		result, err = readConcept(tx, makeConceptKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetConcepts retrieves multiple concepts by their IDs.
func (r *ConceptRepository) GetConcepts(ctx context.Context, ids ...core.ID) ([]*core.ConceptRecord, error) {
	var result []*core.ConceptRecord
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		for _, id := range ids {
			concept, err := readConcept(tx, makeConceptKey(id))
			if err != nil {
				return err
			}
			if concept != nil {
				result = append(result, concept)
			}
		}
		return nil
	}, false)
	return result, err
}

// FindConceptByNameAndType finds a concept by its name and type tuple.
func (r *ConceptRepository) FindConceptByNameAndType(ctx context.Context, name, conceptType string) (*core.ConceptRecord, error) {
	var result *core.ConceptRecord
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		// Look up ID from tuple index
		item, err := tx.Get(makeConceptTupleKey(name, conceptType))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}

		var conceptID core.ID
		err = item.Value(func(val []byte) error {
			conceptID, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}

		result, err = readConcept(tx, makeConceptKey(conceptID))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetOrCreateConcept finds or creates a concept by name and type.
func (r *ConceptRepository) GetOrCreateConcept(ctx context.Context, name, conceptType string) (*core.ConceptRecord, error) {
	concept, err := r.FindConceptByNameAndType(ctx, name, conceptType)
	if err == nil {
		return concept, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	newConcept := &core.ConceptRecord{
		Name:       name,
		Type:       conceptType,
		Attributes: map[string]any{},
	}

	added, err := r.AddConcepts(ctx, newConcept)
	if err != nil {
		// If add failed, try to find it again (someone else may have created it)
		concept, findErr := r.FindConceptByNameAndType(ctx, name, conceptType)
		if findErr == nil {
			return concept, nil
		}
		return nil, err
	}

	return added[0], nil
}

// GetAllConcepts retrieves all concepts from storage.
func (r *ConceptRepository) GetAllConcepts(ctx context.Context) ([]*core.ConceptRecord, error) {
	var results []*core.ConceptRecord
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		return scanPrefix(tx, []byte(conceptRecordPrefix), func(_, val []byte) error {
			concept, err := storage.UnmarshalConcept(val)
			if err != nil {
				return err
			}
			results = append(results, concept)
			return nil
		})
	}, false)

	return results, err
}

// writeConcept stores the primary concept record.
func writeConcept(tx *badger.Txn, concept *core.ConceptRecord) error {
	value, err := storage.MarshalConcept(concept)
	if err != nil {
		return err
	}
	return tx.Set(makeConceptKey(concept.Id), value)
}

// readConcept reads a concept from the transaction.
// Returns nil without error when the key is absent.
func readConcept(tx *badger.Txn, key []byte) (*core.ConceptRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var concept *core.ConceptRecord
	err = item.Value(func(val []byte) error {
		var err error
		concept, err = storage.UnmarshalConcept(val)
		return err
	})
	return concept, err
}
