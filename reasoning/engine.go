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

package reasoning

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/poiesic/marifa/core"
)

// Options controls a single DiscoverRelations call.
type Options struct {
	// MinConfidence drops relations scoring below it. Default 0.6.
	MinConfidence float64
}

// DefaultOptions returns the default discovery options.
func DefaultOptions() *Options {
	return &Options{MinConfidence: 0.6}
}

// InferOptions controls a single InferKnowledge call.
type InferOptions struct {
	// MinConfidence drops relations scoring below it. Default 0.7.
	MinConfidence float64
	// MaxDepth is accepted for forward compatibility. The sweep is flat:
	// every inference is made directly against the source item.
	MaxDepth int
}

// DefaultInferOptions returns the default inference options.
func DefaultInferOptions() *InferOptions {
	return &InferOptions{MinConfidence: 0.7, MaxDepth: 2}
}

// Inference is one relation found by InferKnowledge.
type Inference struct {
	SourceID string            `json:"sourceId"`
	TargetID string            `json:"targetId"`
	Relation core.Relationship `json:"relation"`
	Depth    int               `json:"depth"`
}

// Engine derives relations over a fixed knowledge universe.
// The universe is read-only after construction; an Engine is safe for
// concurrent use.
type Engine struct {
	items  []core.KnowledgeItem
	index  map[string]int
	rules  []Rule
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithKnowledgeItems replaces the built-in universe.
func WithKnowledgeItems(items []core.KnowledgeItem) Option {
	return func(e *Engine) error {
		e.items = append([]core.KnowledgeItem(nil), items...)
		return nil
	}
}

// WithRules replaces the built-in rule list.
func WithRules(rules []Rule) Option {
	return func(e *Engine) error {
		for _, r := range rules {
			if r.Applies == nil {
				return fmt.Errorf("%w: rule %s has no predicate", core.ErrValidation, r.Name)
			}
			if !core.IsValidConfidence(r.Confidence) {
				return fmt.Errorf("rule %s: %w", r.Name, core.ErrConfidenceOutOfRange)
			}
		}
		e.rules = append([]Rule(nil), rules...)
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates an Engine over the built-in universe and rules.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		items:  DefaultItems(),
		rules:  DefaultRules(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	e.index = make(map[string]int, len(e.items))
	for i, item := range e.items {
		if _, dup := e.index[item.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateItem, item.ID)
		}
		e.index[item.ID] = i
	}
	e.logger = e.logger.With("component", "reasoning")
	return e, nil
}

// Item returns the knowledge item with the given ID.
func (e *Engine) Item(id string) (*core.KnowledgeItem, error) {
	i, ok := e.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	item := e.items[i]
	return &item, nil
}

// Items returns the universe in declaration order.
func (e *Engine) Items() []core.KnowledgeItem {
	return slices.Clone(e.items)
}

// DiscoverRelations returns the relations from sourceID to targetID:
// similarity by type and category first, then every firing rule in order,
// then an explicit implication. Relations below opts.MinConfidence are
// dropped.
func (e *Engine) DiscoverRelations(sourceID, targetID string, opts *Options) ([]core.Relationship, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	src, err := e.Item(sourceID)
	if err != nil {
		return nil, err
	}
	tgt, err := e.Item(targetID)
	if err != nil {
		return nil, err
	}

	var found []core.Relationship

	if src.Type == tgt.Type {
		found = append(found, newRelation(TypeSimilarTo, src, tgt, typeMatchConfidence,
			"type", fmt.Sprintf("both are %s", src.Type)))
	}

	if category := src.Category(); category != "" && category == tgt.Category() {
		evidence := core.Evidence{Source: "category", Text: fmt.Sprintf("both are in category %s", category)}
		if i := slices.IndexFunc(found, func(r core.Relationship) bool { return r.Type == TypeSimilarTo }); i >= 0 {
			found[i].Confidence = min(1.0, found[i].Confidence+categoryBoost)
			found[i].Evidence = append(found[i].Evidence, evidence)
		} else {
			found = append(found, newRelation(TypeSimilarTo, src, tgt, categoryMatchConfidence,
				evidence.Source, evidence.Text))
		}
	}

	for _, rule := range e.rules {
		if !rule.Applies(src, tgt) {
			continue
		}
		text := rule.Name
		if rule.Explain != nil {
			text = rule.Explain(src, tgt)
		}
		found = append(found, newRelation(rule.Relation, src, tgt, rule.Confidence, "rule:"+rule.Name, text))
	}

	if slices.Contains(core.StringsAttribute(src.Attributes, "implications"), tgt.Name) {
		found = append(found, newRelation(TypeImplies, src, tgt, implicationConfidence,
			"implications", fmt.Sprintf("%s implies %s", src.Name, tgt.Name)))
	}

	result := make([]core.Relationship, 0, len(found))
	for _, r := range found {
		if r.Confidence >= opts.MinConfidence {
			result = append(result, r)
		}
	}
	return result, nil
}

// InferKnowledge runs DiscoverRelations from conceptID against every other
// item in the universe and flattens the results.
func (e *Engine) InferKnowledge(conceptID string, opts *InferOptions) ([]Inference, error) {
	if opts == nil {
		opts = DefaultInferOptions()
	}
	if _, err := e.Item(conceptID); err != nil {
		return nil, err
	}

	discoverOpts := &Options{MinConfidence: opts.MinConfidence}
	var inferences []Inference
	for _, item := range e.items {
		if item.ID == conceptID {
			continue
		}
		relations, err := e.DiscoverRelations(conceptID, item.ID, discoverOpts)
		if err != nil {
			return nil, err
		}
		for _, r := range relations {
			inferences = append(inferences, Inference{
				SourceID: conceptID,
				TargetID: item.ID,
				Relation: r,
				Depth:    1,
			})
		}
	}

	e.logger.Debug("knowledge inferred", "concept", conceptID, "inferences", len(inferences))
	return inferences, nil
}

func newRelation(relType string, src, tgt *core.KnowledgeItem, confidence float64, evidenceSource, evidenceText string) core.Relationship {
	return core.Relationship{
		ID:         core.ContentKey("rel", relType, src.ID, tgt.ID),
		Type:       relType,
		SourceID:   src.ID,
		TargetID:   tgt.ID,
		Confidence: confidence,
		Evidence:   []core.Evidence{{Source: evidenceSource, Text: evidenceText}},
	}
}
