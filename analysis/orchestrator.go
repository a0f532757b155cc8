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

package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/marifa/core"
	"github.com/poiesic/marifa/entities"
	"github.com/poiesic/marifa/patterns"
	"github.com/poiesic/marifa/relations"
)

// Options controls a single analysis.
type Options struct {
	// MinConfidence is handed to every pass. Default 0.7.
	MinConfidence float64 `json:"minConfidence" validate:"gte=0,lte=1"`
	// IncludeSemantic enables semantic pattern matchers.
	IncludeSemantic bool `json:"includeSemantic"`
	// Source tags entity references. Default entities.DefaultSource.
	Source string `json:"source,omitempty" validate:"max=256"`
}

// DefaultOptions returns the default analysis options.
func DefaultOptions() *Options {
	return &Options{MinConfidence: 0.7, Source: entities.DefaultSource}
}

func (o *Options) asMap() map[string]any {
	return map[string]any{
		"minConfidence":   o.MinConfidence,
		"includeSemantic": o.IncludeSemantic,
		"source":          o.Source,
	}
}

// Orchestrator runs the analysis passes over one text.
// An Orchestrator is safe for concurrent use.
type Orchestrator struct {
	detector   *patterns.Detector
	extractor  *entities.Extractor
	discoverer *relations.Discoverer
	logger     *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithDetector sets the pattern detector.
func WithDetector(d *patterns.Detector) Option {
	return func(o *Orchestrator) error {
		o.detector = d
		return nil
	}
}

// WithExtractor sets the entity extractor.
func WithExtractor(e *entities.Extractor) Option {
	return func(o *Orchestrator) error {
		o.extractor = e
		return nil
	}
}

// WithDiscoverer sets the relationship discoverer.
func WithDiscoverer(d *relations.Discoverer) Option {
	return func(o *Orchestrator) error {
		o.discoverer = d
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator creates an Orchestrator. Components not supplied by
// options are built with their defaults.
func NewOrchestrator(opts ...Option) (*Orchestrator, error) {
	o := &Orchestrator{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	var err error
	if o.detector == nil {
		if o.detector, err = patterns.NewDetector(patterns.WithLogger(o.logger)); err != nil {
			return nil, err
		}
	}
	if o.extractor == nil {
		if o.extractor, err = entities.NewExtractor(entities.WithLogger(o.logger)); err != nil {
			return nil, err
		}
	}
	if o.discoverer == nil {
		if o.discoverer, err = relations.NewDiscoverer(relations.WithLogger(o.logger)); err != nil {
			return nil, err
		}
	}
	o.logger = o.logger.With("component", "analysis")
	return o, nil
}

// Analyze runs patterns, entities and relationships over text, in that
// order. A nil opts uses DefaultOptions. Invalid input fails with
// core.ErrValidation; any failure inside a pass fails with ErrAnalysisFailed.
func (o *Orchestrator) Analyze(ctx context.Context, text string, opts *Options) (*core.AnalysisResult, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	req := &request{Text: text, Options: opts}
	if err := req.validate(); err != nil {
		return nil, err
	}

	started := time.Now()
	result, err := o.run(ctx, text, opts)
	if err != nil {
		o.logger.Error("analysis failed", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	elapsed := time.Since(started)
	result.Metadata = core.AnalysisMetadata{
		Timestamp:  started.UTC(),
		DurationMs: elapsed.Milliseconds(),
		Options:    opts.asMap(),
	}

	o.logger.Debug("analysis completed",
		"id", result.ID,
		"patterns", len(result.Patterns),
		"entities", len(result.Entities),
		"relationships", len(result.Relationships),
		"duration", elapsed)
	return result, nil
}

// run executes the passes, converting a panic into an error.
func (o *Orchestrator) run(ctx context.Context, text string, opts *Options) (result *core.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	found := o.detector.Detect(text, &patterns.Options{
		MinConfidence:   opts.MinConfidence,
		IncludeSemantic: opts.IncludeSemantic,
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	extracted := o.extractor.Extract(text, &entities.Options{
		MinConfidence: opts.MinConfidence,
		Source:        opts.Source,
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	discovered := o.discoverer.Discover(extracted, text, &relations.Options{
		MinConfidence: opts.MinConfidence,
	})

	return &core.AnalysisResult{
		ID:            uuid.NewString(),
		Text:          text,
		Entities:      nonNil(extracted),
		Relationships: nonNil(discovered),
		Patterns:      nonNil(found),
	}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
