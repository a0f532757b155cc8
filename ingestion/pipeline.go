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
	"maps"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/marifa/analysis"
	"github.com/poiesic/marifa/core"
	"github.com/poiesic/marifa/graph"
	"github.com/poiesic/marifa/storage"
)

// Pipeline orchestrates the ingestion of source texts into the knowledge graph.
// It manages concurrent verification and concept registration.
type Pipeline struct {
	analyzer    *analysis.Orchestrator
	graph       *graph.Integrator
	verifyPool  *ants.Pool
	conceptPool *ants.Pool
	verifyProc  processor
	conceptProc processor
	concepts    storage.ConceptRepository
	pending     sync.WaitGroup
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pools
		if p.verifyPool != nil {
			p.verifyPool.Release()
		}
		if p.conceptPool != nil {
			p.conceptPool.Release()
		}

		verifyPool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		conceptPool, err := ants.NewPool(size)
		if err != nil {
			verifyPool.Release()
			return err
		}

		p.verifyPool = verifyPool
		p.conceptPool = conceptPool
		return nil
	}
}

// WithConceptRepository registers ingested entities in the given concept
// store. Without it no concepts are recorded.
func WithConceptRepository(concepts storage.ConceptRepository) Option {
	return func(p *Pipeline) error {
		p.concepts = concepts
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(analyzer *analysis.Orchestrator, integrator *graph.Integrator, opts ...Option) (*Pipeline, error) {
	if analyzer == nil {
		return nil, ErrOrchestratorRequired
	}
	if integrator == nil {
		return nil, ErrIntegratorRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	verifyPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	conceptPool, err := ants.NewPool(poolSize)
	if err != nil {
		verifyPool.Release()
		return nil, err
	}

	p := &Pipeline{
		analyzer:    analyzer,
		graph:       integrator,
		verifyPool:  verifyPool,
		conceptPool: conceptPool,
		logger:      slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	p.logger = p.logger.With("component", "ingestion")

	// Create processors after options are applied (so they get final config)
	verifyProc, err := newVerifyProcessor(integrator, p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.verifyProc = verifyProc

	if p.concepts != nil {
		conceptProc, err := newConceptProcessor(p.concepts, p.logger)
		if err != nil {
			p.Release()
			return nil, err
		}
		p.conceptProc = conceptProc
	}

	return p, nil
}

// IngestOptions holds optional parameters for ingestion.
type IngestOptions struct {
	// Analysis configures the analysis pass. Its Source is overwritten with
	// the ingestion source. Nil uses analysis.DefaultOptions().
	Analysis *analysis.Options

	// Attributes are merged into the attributes of every created node,
	// winning over entity attributes.
	Attributes map[string]any

	// SkipVerification leaves created nodes unverified.
	SkipVerification bool
}

// Result describes what one Ingest call wrote to the graph.
type Result struct {
	Analysis *core.AnalysisResult
	// NodeIDs maps entity ID to the node holding the entity.
	NodeIDs map[string]string
	// Created lists the nodes created by this call, in entity order.
	// Nodes the source already held are reused and not listed.
	Created []string
	// Edges counts the relationships written, reverse edges excluded.
	Edges int
}

// Ingest analyzes text from source and writes its entities and relationships
// to the graph. Entities the source already holds as nodes of the same type
// and name are reused. Verification of created nodes and concept registration
// run asynchronously; their errors are logged but do not fail the ingestion.
func (p *Pipeline) Ingest(ctx context.Context, source, text string, opts *IngestOptions) (*Result, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, ErrEmptySource
	}
	if opts == nil {
		opts = &IngestOptions{}
	}

	aopts := analysis.DefaultOptions()
	if opts.Analysis != nil {
		copied := *opts.Analysis
		aopts = &copied
	}
	aopts.Source = source

	result, err := p.analyzer.Analyze(ctx, text, aopts)
	if err != nil {
		return nil, err
	}

	existing, err := p.existingNodes(ctx, source)
	if err != nil {
		return nil, err
	}

	b := &batch{source: source, analysis: result, nodeIDs: make(map[string]string, len(result.Entities))}
	for _, e := range result.Entities {
		key := nodeKey(string(e.Type), e.Name)
		if id, ok := existing[key]; ok {
			b.nodeIDs[e.ID] = id
			continue
		}

		attrs := maps.Clone(e.Attributes)
		if attrs == nil {
			attrs = map[string]any{}
		}
		maps.Copy(attrs, opts.Attributes)

		node, err := p.graph.CreateNode(ctx, string(e.Type), e.Name, source, attrs, false)
		if err != nil {
			return nil, fmt.Errorf("ingest entity %s: %w", e.Name, err)
		}
		existing[key] = node.ID
		b.nodeIDs[e.ID] = node.ID
		b.created = append(b.created, node.ID)
	}

	edges := 0
	for _, rel := range result.Relationships {
		src, okSrc := b.nodeIDs[rel.SourceID]
		tgt, okTgt := b.nodeIDs[rel.TargetID]
		if !okSrc || !okTgt || src == tgt {
			continue
		}
		relOpts := []graph.RelationshipOption{graph.WithConfidence(rel.Confidence)}
		if graph.IsSymmetric(rel.Type) {
			relOpts = append(relOpts, graph.Bidirectional())
		}
		ok, err := p.graph.CreateRelationship(ctx, src, tgt, rel.Type, relOpts...)
		if err != nil {
			return nil, fmt.Errorf("ingest relationship %s: %w", rel.ID, err)
		}
		if ok {
			edges++
		}
	}

	p.logger.Info("text ingested",
		"source", source,
		"entities", len(result.Entities),
		"created", len(b.created),
		"edges", edges)

	if !opts.SkipVerification && len(b.created) > 0 {
		p.submit(p.verifyPool, p.verifyProc, b, "error verifying nodes")
	}
	if p.conceptProc != nil {
		p.submit(p.conceptPool, p.conceptProc, b, "error registering concepts")
	}

	return &Result{
		Analysis: result,
		NodeIDs:  b.nodeIDs,
		Created:  b.created,
		Edges:    edges,
	}, nil
}

// submit runs proc on the pool. Work continues after Ingest returns, so it
// uses a background context.
func (p *Pipeline) submit(pool *ants.Pool, proc processor, b *batch, failure string) {
	p.pending.Add(1)
	err := pool.Submit(func() {
		defer p.pending.Done()
		if err := proc.process(context.Background(), b); err != nil {
			p.logger.Error(failure, "source", b.source, "err", err)
		}
	})
	if err != nil {
		p.pending.Done()
		p.logger.Error("error submitting ingestion work", "source", b.source, "err", err)
	}
}

// existingNodes indexes the nodes source already holds by type and name.
func (p *Pipeline) existingNodes(ctx context.Context, source string) (map[string]string, error) {
	nodes, err := p.graph.NodesBySource(ctx, source)
	if err != nil {
		return nil, err
	}
	index := make(map[string]string, len(nodes))
	for _, n := range nodes {
		key := nodeKey(n.Type, n.Name)
		if _, ok := index[key]; !ok {
			index[key] = n.ID
		}
	}
	return index, nil
}

func nodeKey(nodeType, name string) string {
	return nodeType + "\x1f" + name
}

// Wait blocks until all asynchronous work submitted so far has finished.
func (p *Pipeline) Wait() {
	p.pending.Wait()
}

// Release waits for pending work and releases the worker pools.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	p.pending.Wait()
	if p.verifyPool != nil {
		p.verifyPool.Release()
	}
	if p.conceptPool != nil {
		p.conceptPool.Release()
	}
}
