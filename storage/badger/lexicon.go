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

// LexiconRepository implements storage.LexiconRepository for BadgerDB.
type LexiconRepository struct {
	backend *Backend
}

var _ storage.LexiconRepository = (*LexiconRepository)(nil)

// NewLexiconRepository creates a new LexiconRepository.
func NewLexiconRepository(backend *Backend) (*LexiconRepository, error) {
	return &LexiconRepository{
		backend: backend,
	}, nil
}

// Close releases resources. LexiconRepository has no resources to release.
func (r *LexiconRepository) Close() error {
	return nil
}

// AddEntries adds or replaces entries. The entry ID is derived from the term.
func (r *LexiconRepository) AddEntries(ctx context.Context, entries ...*core.LexiconEntry) ([]*core.LexiconEntry, error) {
	for _, entry := range entries {
		if err := core.ValidateLexiconEntry(entry); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		for _, entry := range entries {
			entry.Id = core.IDFromContent(entry.Term)
			key := makeLexiconKey(entry.Id)

			old, err := readLexiconEntry(tx, key)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			entry.UpdatedAt = now
			if old != nil {
				entry.InsertedAt = old.InsertedAt
				if old.Root != "" && old.Root != entry.Root {
					if err := tx.Delete(makeLexiconRootKey(old.Root, old.Id)); err != nil {
						return err
					}
				}
			} else if entry.InsertedAt.IsZero() {
				entry.InsertedAt = now
			}

			value, err := storage.MarshalLexiconEntry(entry)
			if err != nil {
				return err
			}
			if err := tx.Set(key, value); err != nil {
				return err
			}
			if err := tx.Set(makeLexiconTermKey(entry.Term), storage.MarshalID(entry.Id)); err != nil {
				return err
			}
			if entry.Root != "" {
				if err := tx.Set(makeLexiconRootKey(entry.Root, entry.Id), nil); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GetEntry retrieves an entry by ID.
func (r *LexiconRepository) GetEntry(ctx context.Context, id core.ID) (*core.LexiconEntry, error) {
	var result *core.LexiconEntry
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		var err error
		result, err = readLexiconEntry(tx, makeLexiconKey(id))
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

// FindByTerm retrieves the entry for a term.
func (r *LexiconRepository) FindByTerm(ctx context.Context, term string) (*core.LexiconEntry, error) {
	var result *core.LexiconEntry
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		item, err := tx.Get(makeLexiconTermKey(term))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}

		var id core.ID
		err = item.Value(func(val []byte) error {
			id, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}

		result, err = readLexiconEntry(tx, makeLexiconKey(id))
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

// FindByRoot retrieves all entries sharing a root, ordered by ID.
func (r *LexiconRepository) FindByRoot(ctx context.Context, root string) ([]*core.LexiconEntry, error) {
	var results []*core.LexiconEntry
	prefix := makePartialLexiconRootKey(root)
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		var ids []core.ID
		err := scanKeys(tx, prefix, func(key []byte) error {
			id, err := parseKeyID(key[len(prefix):])
			if err != nil {
				return err
			}
			ids = append(ids, id)
			return nil
		})
		if err != nil {
			return err
		}
		for _, id := range ids {
			entry, err := readLexiconEntry(tx, makeLexiconKey(id))
			if err != nil {
				return err
			}
			if entry != nil {
				results = append(results, entry)
			}
		}
		return nil
	}, false)
	return results, err
}

// AllEntries retrieves every entry in key order.
func (r *LexiconRepository) AllEntries(ctx context.Context) ([]*core.LexiconEntry, error) {
	var results []*core.LexiconEntry
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		return scanPrefix(tx, []byte(lexiconRecordPrefix), func(_, val []byte) error {
			entry, err := storage.UnmarshalLexiconEntry(val)
			if err != nil {
				return err
			}
			results = append(results, entry)
			return nil
		})
	}, false)
	return results, err
}

// readLexiconEntry reads an entry from the transaction.
// Returns nil without error when the key is absent.
func readLexiconEntry(tx *badger.Txn, key []byte) (*core.LexiconEntry, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var entry *core.LexiconEntry
	err = item.Value(func(val []byte) error {
		var err error
		entry, err = storage.UnmarshalLexiconEntry(val)
		return err
	})
	return entry, err
}
