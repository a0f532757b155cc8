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

package explore

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/marifa/core"
	"github.com/poiesic/marifa/storage"
)

// maxRelated bounds the related concepts attached to each emitted concept.
const maxRelated = 3

// Options controls a single exploration.
type Options struct {
	// MaxDepth bounds recursion. A depth of 1 emits matches without
	// following related concepts. Default 2.
	MaxDepth int
}

// DefaultOptions returns the default exploration options.
func DefaultOptions() *Options {
	return &Options{MaxDepth: 2}
}

// Explorer explores concepts and retains a record of every exploration.
type Explorer struct {
	concepts storage.ConceptRepository
	logger   *slog.Logger

	mu      sync.RWMutex
	records map[string]*core.ExplorationRecord
	order   []string
}

// Option configures an Explorer.
type Option func(*Explorer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Explorer) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewExplorer creates an Explorer over a concept repository.
func NewExplorer(concepts storage.ConceptRepository, opts ...Option) (*Explorer, error) {
	if concepts == nil {
		return nil, ErrConceptRepositoryRequired
	}
	e := &Explorer{
		concepts: concepts,
		logger:   slog.Default(),
		records:  make(map[string]*core.ExplorationRecord),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.logger = e.logger.With("component", "explore")
	return e, nil
}

// Explore walks the concept store from conceptName and returns the finished
// record. On an internal failure the record is marked failed, retained, and
// returned together with an error wrapping ErrExplorationFailed.
func (e *Explorer) Explore(ctx context.Context, conceptName string, opts *Options) (*core.ExplorationRecord, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if strings.TrimSpace(conceptName) == "" {
		return nil, ErrEmptyConceptName
	}

	record := &core.ExplorationRecord{
		ID:          uuid.NewString(),
		ConceptName: conceptName,
		Timestamp:   time.Now().UTC(),
		Status:      core.ExplorationPending,
	}
	e.retain(record)

	w := &walk{
		explorer: e,
		visited:  make(map[string]bool),
	}
	results, err := w.traverse(ctx, conceptName, opts.MaxDepth)

	e.mu.Lock()
	if err != nil {
		record.Status = core.ExplorationFailed
		record.Error = err.Error()
	} else {
		record.Status = core.ExplorationCompleted
		record.Results = results
	}
	snapshot := cloneRecord(record)
	e.mu.Unlock()

	if err != nil {
		e.logger.Error("exploration failed", "id", record.ID, "concept", conceptName, "err", err)
		return snapshot, fmt.Errorf("%w: %s: %w", ErrExplorationFailed, conceptName, err)
	}

	e.logger.Debug("exploration completed", "id", record.ID, "concept", conceptName, "results", len(results))
	return snapshot, nil
}

// Exploration returns the retained record with the given ID.
func (e *Explorer) Exploration(id string) (*core.ExplorationRecord, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	record, ok := e.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrExplorationNotFound, id)
	}
	return cloneRecord(record), nil
}

// Explorations returns every retained record, oldest first.
func (e *Explorer) Explorations() []*core.ExplorationRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]*core.ExplorationRecord, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, cloneRecord(e.records[id]))
	}
	return out
}

func (e *Explorer) retain(record *core.ExplorationRecord) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.records[record.ID] = record
	e.order = append(e.order, record.ID)
}

// walk is the state of one exploration call.
type walk struct {
	explorer *Explorer
	visited  map[string]bool
}

func (w *walk) traverse(ctx context.Context, name string, depth int) ([]core.ConceptRecord, error) {
	if depth <= 0 || w.visited[name] {
		return nil, nil
	}
	w.visited[name] = true

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all, err := w.explorer.concepts.GetAllConcepts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list concepts: %w", err)
	}

	var matches []*core.ConceptRecord
	for _, c := range all {
		if strings.Contains(c.Name, name) {
			matches = append(matches, c)
		}
	}

	if len(matches) == 0 {
		created, err := w.materialize(ctx, name)
		if err != nil {
			return nil, err
		}
		return []core.ConceptRecord{*created}, nil
	}

	var results []core.ConceptRecord
	for _, match := range matches {
		related := relatedConcepts(all, match)

		emitted := *match
		emitted.References = make([]core.ID, len(related))
		for i, r := range related {
			emitted.References[i] = r.Id
		}
		results = append(results, emitted)

		if depth > 1 {
			for _, r := range related {
				sub, err := w.traverse(ctx, r.Name, depth-1)
				if err != nil {
					return nil, err
				}
				results = append(results, sub...)
			}
		}
	}
	return results, nil
}

// materialize stores a concept of unknown type for a name with no match.
func (w *walk) materialize(ctx context.Context, name string) (*core.ConceptRecord, error) {
	created, err := w.explorer.concepts.GetOrCreateConcept(ctx, name, core.ConceptTypeUnknown)
	if err != nil {
		return nil, fmt.Errorf("materialize %s: %w", name, err)
	}
	w.explorer.logger.Debug("concept materialized", "name", name, "id", created.Id)
	return created, nil
}

// relatedConcepts returns up to maxRelated concepts other than c, in store order.
func relatedConcepts(all []*core.ConceptRecord, c *core.ConceptRecord) []*core.ConceptRecord {
	var related []*core.ConceptRecord
	for _, other := range all {
		if other.Id == c.Id {
			continue
		}
		related = append(related, other)
		if len(related) == maxRelated {
			break
		}
	}
	return related
}

func cloneRecord(r *core.ExplorationRecord) *core.ExplorationRecord {
	c := *r
	c.Results = slices.Clone(r.Results)
	return &c
}
