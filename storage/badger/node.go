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
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/marifa/core"
	"github.com/poiesic/marifa/storage"
)

// NodeRepository implements storage.NodeRepository for BadgerDB.
type NodeRepository struct {
	backend *Backend
}

var _ storage.NodeRepository = (*NodeRepository)(nil)

// NewNodeRepository creates a new NodeRepository.
func NewNodeRepository(backend *Backend) (*NodeRepository, error) {
	return &NodeRepository{
		backend: backend,
	}, nil
}

// Close releases resources. NodeRepository has no resources to release.
func (r *NodeRepository) Close() error {
	return nil
}

// PutNodes stores nodes in a single transaction and maintains the source index.
func (r *NodeRepository) PutNodes(ctx context.Context, nodes ...*core.KnowledgeNode) error {
	for _, node := range nodes {
		if err := core.ValidateNode(node); err != nil {
			return err
		}
	}

	return r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		for _, node := range nodes {
			key := makeNodeKey(node.ID)

			old, err := readNode(tx, key)
			if err != nil {
				return err
			}
			if old != nil && old.Source != node.Source {
				if err := tx.Delete(makeNodeSourceKey(old.Source, old.ID)); err != nil {
					return err
				}
			}

			value, err := storage.MarshalNode(node)
			if err != nil {
				return err
			}
			if err := tx.Set(key, value); err != nil {
				return err
			}
			if err := tx.Set(makeNodeSourceKey(node.Source, node.ID), nil); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetNode retrieves a single node by ID.
func (r *NodeRepository) GetNode(ctx context.Context, id string) (*core.KnowledgeNode, error) {
	var result *core.KnowledgeNode
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		var err error
		result, err = readNode(tx, makeNodeKey(id))
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

// GetNodes retrieves multiple nodes by their IDs.
func (r *NodeRepository) GetNodes(ctx context.Context, ids ...string) ([]*core.KnowledgeNode, error) {
	var result []*core.KnowledgeNode
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		for _, id := range ids {
			node, err := readNode(tx, makeNodeKey(id))
			if err != nil {
				return err
			}
			if node != nil {
				result = append(result, node)
			}
		}
		return nil
	}, false)
	return result, err
}

// ForEachNode calls fn for every stored node in key order.
func (r *NodeRepository) ForEachNode(ctx context.Context, fn func(*core.KnowledgeNode) error) error {
	return r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		return scanPrefix(tx, []byte(nodeRecordPrefix), func(_, val []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			node, err := storage.UnmarshalNode(val)
			if err != nil {
				return err
			}
			return fn(node)
		})
	}, false)
}

// NodeIDsBySource returns the IDs of all nodes carrying the source tag.
func (r *NodeRepository) NodeIDsBySource(ctx context.Context, source string) ([]string, error) {
	var ids []string
	prefix := makePartialNodeSourceKey(source)
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		return scanKeys(tx, prefix, func(key []byte) error {
			ids = append(ids, strings.TrimPrefix(string(key), string(prefix)))
			return nil
		})
	}, false)
	return ids, err
}

// CountNodes returns the number of stored nodes.
func (r *NodeRepository) CountNodes(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		return scanKeys(tx, []byte(nodeRecordPrefix), func([]byte) error {
			count++
			return nil
		})
	}, false)
	return count, err
}

// readNode reads a node from the transaction.
// Returns nil without error when the key is absent.
func readNode(tx *badger.Txn, key []byte) (*core.KnowledgeNode, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var node *core.KnowledgeNode
	err = item.Value(func(val []byte) error {
		var err error
		node, err = storage.UnmarshalNode(val)
		return err
	})
	return node, err
}
