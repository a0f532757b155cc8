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

package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/marifa/core"
	"github.com/poiesic/marifa/storage"
)

// Integrator owns the knowledge graph held in a node repository.
// Read-modify-write cycles on nodes are serialized within one Integrator.
type Integrator struct {
	nodes       storage.NodeRepository
	methods     []Method
	reliability map[string]float64
	pool        *ants.Pool
	logger      *slog.Logger

	customMethods bool
	mu            sync.Mutex
}

// Option configures an Integrator.
type Option func(*Integrator) error

// WithPoolSize sets the worker pool size for verification methods.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(g *Integrator) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if g.pool != nil {
			g.pool.Release()
		}
		g.pool = pool
		return nil
	}
}

// WithVerificationMethods replaces the verification pipeline. Methods run in
// the given order.
func WithVerificationMethods(methods ...Method) Option {
	return func(g *Integrator) error {
		for _, m := range methods {
			if m.Name == "" || m.Check == nil {
				return fmt.Errorf("%w: verification method needs a name and a check", core.ErrValidation)
			}
		}
		g.methods = append([]Method(nil), methods...)
		g.customMethods = true
		return nil
	}
}

// WithSourceReliability overrides entries of the source reliability table.
func WithSourceReliability(table map[string]float64) Option {
	return func(g *Integrator) error {
		for source, score := range table {
			if !core.IsValidConfidence(score) {
				return fmt.Errorf("source %s: %w", source, core.ErrConfidenceOutOfRange)
			}
			g.reliability[source] = score
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Integrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger
		return nil
	}
}

// NewIntegrator creates an Integrator over a node repository.
// Call Release when done to free the worker pool.
func NewIntegrator(nodes storage.NodeRepository, opts ...Option) (*Integrator, error) {
	if nodes == nil {
		return nil, ErrNodeRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	g := &Integrator{
		nodes:       nodes,
		reliability: DefaultSourceReliability(),
		pool:        pool,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			g.Release()
			return nil, err
		}
	}
	if !g.customMethods {
		g.methods = DefaultMethods(g.reliability)
	}
	g.logger = g.logger.With("component", "graph")
	return g, nil
}

// Release frees the worker pool.
func (g *Integrator) Release() {
	if g.pool != nil {
		g.pool.Release()
	}
}

// CreateNode stores a new node with full confidence. When verify is set the
// verification pipeline runs before the node is returned. The returned node is
// read back from storage, so attribute values come back as JSON types:
// numbers as float64, arrays as []any, objects as map[string]any.
func (g *Integrator) CreateNode(ctx context.Context, nodeType, name, source string, attributes map[string]any, verify bool) (*core.KnowledgeNode, error) {
	node := core.NewKnowledgeNode(uuid.NewString(), nodeType, name, source, maps.Clone(attributes))

	g.mu.Lock()
	err := g.nodes.PutNodes(ctx, node)
	g.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("create node: %w", err)
	}
	g.logger.Debug("node created", "id", node.ID, "type", nodeType, "name", name, "source", source)

	if !verify {
		return g.GetNode(ctx, node.ID)
	}
	if _, err := g.VerifyNode(ctx, node.ID); err != nil {
		return nil, err
	}
	return g.GetNode(ctx, node.ID)
}

// GetNode returns the node with the given ID.
func (g *Integrator) GetNode(ctx context.Context, id string) (*core.KnowledgeNode, error) {
	node, err := g.nodes.GetNode(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
		}
		return nil, err
	}
	return node, nil
}

// NodesBySource returns every node carrying the source tag.
func (g *Integrator) NodesBySource(ctx context.Context, source string) ([]*core.KnowledgeNode, error) {
	ids, err := g.nodes.NodeIDsBySource(ctx, source)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return g.nodes.GetNodes(ctx, ids...)
}

// CreateRelationship sets a directed edge from sourceID to targetID. With
// Bidirectional it also sets the reverse edge on the target, typed by
// ReverseType. It returns false without touching the graph when either node
// is unknown. Both edges are written atomically.
func (g *Integrator) CreateRelationship(ctx context.Context, sourceID, targetID, relType string, opts ...RelationshipOption) (bool, error) {
	cfg := relationshipConfig{confidence: 1.0}
	for _, opt := range opts {
		opt(&cfg)
	}
	if relType == "" {
		return false, ErrEmptyRelationshipType
	}
	if !core.IsValidConfidence(cfg.confidence) {
		return false, fmt.Errorf("%w: %w", core.ErrValidation, core.ErrConfidenceOutOfRange)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	src, err := g.lookup(ctx, sourceID)
	if src == nil || err != nil {
		return false, err
	}
	tgt := src
	if targetID != sourceID {
		tgt, err = g.lookup(ctx, targetID)
		if tgt == nil || err != nil {
			return false, err
		}
	}

	src.AddRelationship(targetID, relType, cfg.confidence)
	changed := []*core.KnowledgeNode{src}
	if cfg.bidirectional {
		tgt.AddRelationship(sourceID, ReverseType(relType), cfg.confidence)
		if tgt != src {
			changed = append(changed, tgt)
		}
	}

	if err := g.nodes.PutNodes(ctx, changed...); err != nil {
		return false, fmt.Errorf("create relationship: %w", err)
	}
	g.logger.Debug("relationship created", "source", sourceID, "target", targetID, "type", relType, "bidirectional", cfg.bidirectional)
	return true, nil
}

// lookup returns nil without error for unknown IDs.
func (g *Integrator) lookup(ctx context.Context, id string) (*core.KnowledgeNode, error) {
	node, err := g.nodes.GetNode(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return nil, nil
	}
	return node, err
}

// outcome is the result of one dispatched method.
type outcome struct {
	verdict Verdict
	err     error
}

// VerifyNode runs every verification method against the node and appends
// the outcomes to its history in pipeline order. Methods that fail are
// logged and skipped. The returned slice holds the appended results.
func (g *Integrator) VerifyNode(ctx context.Context, id string) ([]core.VerificationResult, error) {
	snapshot, err := g.GetNode(ctx, id)
	if err != nil {
		return nil, err
	}

	outcomes := g.dispatch(ctx, snapshot)

	g.mu.Lock()
	defer g.mu.Unlock()

	// Reload so edges created while the methods ran are kept.
	node, err := g.GetNode(ctx, id)
	if err != nil {
		return nil, err
	}

	start := len(node.VerificationResults)
	for i, m := range g.methods {
		o := outcomes[i]
		if o.err != nil {
			g.logger.Warn("verification method failed", "node", id, "method", m.Name, "err", o.err)
			continue
		}
		node.AddVerificationResult(m.Name, o.verdict.Result, core.Clamp01(o.verdict.Confidence), o.verdict.Details)
	}

	if err := g.nodes.PutNodes(ctx, node); err != nil {
		return nil, fmt.Errorf("verify node: %w", err)
	}
	g.logger.Debug("node verified", "id", id, "confidence", node.Confidence, "results", len(node.VerificationResults)-start)
	return node.VerificationResults[start:], nil
}

// dispatch runs the methods concurrently on the pool. Outcomes are indexed
// by method position.
func (g *Integrator) dispatch(ctx context.Context, node *core.KnowledgeNode) []outcome {
	outcomes := make([]outcome, len(g.methods))
	var wg sync.WaitGroup
	for i, m := range g.methods {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			outcomes[i] = runCheck(ctx, m, node.Clone())
		}
		if err := g.pool.Submit(task); err != nil {
			wg.Done()
			outcomes[i] = outcome{err: fmt.Errorf("submit: %w", err)}
		}
	}
	wg.Wait()
	return outcomes
}

// runCheck converts a panic in a check into an error.
func runCheck(ctx context.Context, m Method, node *core.KnowledgeNode) (o outcome) {
	defer func() {
		if r := recover(); r != nil {
			o = outcome{err: fmt.Errorf("%w: panic in %s: %v", core.ErrInternal, m.Name, r)}
		}
	}()
	verdict, err := m.Check(ctx, node)
	return outcome{verdict: verdict, err: err}
}

// Search returns nodes whose name, or any attribute key or value, contains
// query case-insensitively.
func (g *Integrator) Search(ctx context.Context, query string) ([]*core.KnowledgeNode, error) {
	q := strings.ToLower(query)
	var results []*core.KnowledgeNode
	err := g.nodes.ForEachNode(ctx, func(node *core.KnowledgeNode) error {
		if matches(node, q) {
			results = append(results, node)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return results, nil
}

func matches(node *core.KnowledgeNode, q string) bool {
	if strings.Contains(strings.ToLower(node.Name), q) {
		return true
	}
	for k, v := range node.Attributes {
		if strings.Contains(strings.ToLower(k), q) || strings.Contains(strings.ToLower(fmt.Sprint(v)), q) {
			return true
		}
	}
	return false
}

// Statistics summarizes the graph.
type Statistics struct {
	NodeCount              int            `json:"nodeCount"`
	SourceCount            int            `json:"sourceCount"`
	VerifiedNodeCount      int            `json:"verifiedNodeCount"`
	VerificationRate       float64        `json:"verificationRate"`
	RelationshipTypeCounts map[string]int `json:"relationshipTypeCounts"`
}

// verifiedThreshold is the confidence a verified node must exceed to count
// as verified in Statistics.
const verifiedThreshold = 0.7

// Statistics computes node, source and edge counts over the whole graph.
func (g *Integrator) Statistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{RelationshipTypeCounts: map[string]int{}}
	sources := map[string]struct{}{}
	err := g.nodes.ForEachNode(ctx, func(node *core.KnowledgeNode) error {
		stats.NodeCount++
		sources[node.Source] = struct{}{}
		if node.IsVerified() && node.Confidence > verifiedThreshold {
			stats.VerifiedNodeCount++
		}
		for _, e := range node.Relationships {
			stats.RelationshipTypeCounts[e.Type]++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}
	stats.SourceCount = len(sources)
	if stats.NodeCount > 0 {
		stats.VerificationRate = float64(stats.VerifiedNodeCount) / float64(stats.NodeCount)
	}
	return stats, nil
}

// Sources returns the distinct source tags in the graph, sorted.
func (g *Integrator) Sources(ctx context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	err := g.nodes.ForEachNode(ctx, func(node *core.KnowledgeNode) error {
		seen[node.Source] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out, nil
}
