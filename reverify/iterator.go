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

package reverify

import (
	"context"
	"slices"

	"github.com/poiesic/marifa/core"
	"github.com/poiesic/marifa/storage"
)

const (
	// DefaultBatchSize is the default number of nodes handed out in each batch
	DefaultBatchSize = 100
)

// NodeIterator iterates over stored node IDs in batches.
type NodeIterator struct {
	repo      storage.NodeRepository
	batchSize int
	source    string
}

// NewNodeIterator creates a new node iterator.
// batchSize: number of node IDs in each batch (defaults to DefaultBatchSize when <= 0)
// source: when non-empty, only nodes carrying this source tag are visited
func NewNodeIterator(repo storage.NodeRepository, batchSize int, source string) *NodeIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &NodeIterator{
		repo:      repo,
		batchSize: batchSize,
		source:    source,
	}
}

// IDs returns the IDs the iterator visits, in key order.
func (it *NodeIterator) IDs(ctx context.Context) ([]string, error) {
	if it.source != "" {
		ids, err := it.repo.NodeIDsBySource(ctx, it.source)
		if err != nil {
			return nil, err
		}
		slices.Sort(ids)
		return ids, nil
	}

	var ids []string
	err := it.repo.ForEachNode(ctx, func(n *core.KnowledgeNode) error {
		ids = append(ids, n.ID)
		return nil
	})
	return ids, err
}

// ForEach snapshots the IDs to visit, then calls fn for each batch.
// Nodes stored after the snapshot are not visited.
// Iteration stops on first error from fn or when all IDs are handed out.
// Context cancellation is checked between batches.
func (it *NodeIterator) ForEach(ctx context.Context, fn func([]string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ids, err := it.IDs(ctx)
	if err != nil {
		return err
	}

	for batch := range slices.Chunk(ids, it.batchSize) {
		if err := fn(batch); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}
