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

package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/poiesic/marifa/core"
	"github.com/poiesic/marifa/graph"
	"github.com/poiesic/marifa/storage"
)

// conceptProcessor registers analyzed entities in the concept store and links
// the concepts of related entities through their References.
type conceptProcessor struct {
	concepts storage.ConceptRepository
	logger   *slog.Logger

	// mu serializes the read-modify-write of concept references.
	mu sync.Mutex
}

var _ processor = (*conceptProcessor)(nil)

func newConceptProcessor(concepts storage.ConceptRepository, logger *slog.Logger) (processor, error) {
	if concepts == nil {
		return nil, fmt.Errorf("concept repository required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &conceptProcessor{
		concepts: concepts,
		logger:   logger.With("processor", "concepts"),
	}, nil
}

func (cp *conceptProcessor) process(ctx context.Context, b *batch) error {
	if len(b.analysis.Entities) == 0 {
		return nil
	}

	cp.mu.Lock()
	defer cp.mu.Unlock()

	byEntity := make(map[string]*core.ConceptRecord, len(b.analysis.Entities))
	records := make(map[core.ID]*core.ConceptRecord, len(b.analysis.Entities))
	var order []*core.ConceptRecord
	for _, e := range b.analysis.Entities {
		c, err := cp.concepts.GetOrCreateConcept(ctx, e.Name, string(e.Type))
		if err != nil {
			return fmt.Errorf("register concept %s: %w", e.Name, err)
		}
		if known, ok := records[c.Id]; ok {
			c = known
		} else {
			records[c.Id] = c
			order = append(order, c)
		}
		byEntity[e.ID] = c
		for k, v := range e.Attributes {
			if c.Attributes == nil {
				c.Attributes = map[string]any{}
			}
			if _, set := c.Attributes[k]; !set {
				c.Attributes[k] = v
			}
		}
	}

	for _, rel := range b.analysis.Relationships {
		src, tgt := byEntity[rel.SourceID], byEntity[rel.TargetID]
		if src == nil || tgt == nil || src.Id == tgt.Id {
			continue
		}
		src.References = appendReference(src.References, tgt.Id)
		if graph.IsSymmetric(rel.Type) {
			tgt.References = appendReference(tgt.References, src.Id)
		}
	}

	if _, err := cp.concepts.UpdateConcepts(ctx, order...); err != nil {
		return fmt.Errorf("update concepts: %w", err)
	}
	cp.logger.Debug("concepts registered", "source", b.source, "count", len(order))
	return nil
}

func appendReference(refs []core.ID, id core.ID) []core.ID {
	if slices.Contains(refs, id) {
		return refs
	}
	return append(refs, id)
}
