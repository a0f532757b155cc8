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

package entities

import (
	"log/slog"
	"maps"

	"github.com/poiesic/marifa/core"
)

// DefaultSource tags references when the caller gives no source.
const DefaultSource = "text"

// Options controls a single extraction call.
type Options struct {
	// MinConfidence is accepted for interface symmetry with the other
	// analyzers. Dictionary matches carry no confidence, so it filters nothing.
	MinConfidence float64
	// Source tags every produced reference. Default DefaultSource.
	Source string
}

// DefaultOptions returns the default extraction options.
func DefaultOptions() *Options {
	return &Options{MinConfidence: 0.7, Source: DefaultSource}
}

// Extractor matches a fixed term dictionary against text.
// An Extractor is safe for concurrent use.
type Extractor struct {
	dictionary []Term
	logger     *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor) error

// WithDictionary replaces the built-in dictionary.
func WithDictionary(terms []Term) Option {
	return func(e *Extractor) error {
		e.dictionary = append([]Term(nil), terms...)
		return nil
	}
}

// WithTerms appends terms to the dictionary.
func WithTerms(terms ...Term) Option {
	return func(e *Extractor) error {
		e.dictionary = append(e.dictionary, terms...)
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewExtractor creates an Extractor over the built-in dictionary.
func NewExtractor(opts ...Option) (*Extractor, error) {
	e := &Extractor{
		dictionary: DefaultDictionary(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.logger = e.logger.With("component", "entities")
	return e, nil
}

// Extract returns one entity per dictionary term occurring in text as a
// whole word, in dictionary order. References are in text order.
func (e *Extractor) Extract(text string, opts *Options) []core.Entity {
	if opts == nil {
		opts = DefaultOptions()
	}
	source := opts.Source
	if source == "" {
		source = DefaultSource
	}

	var entities []core.Entity
	for _, term := range e.dictionary {
		indexes := core.WholeWordIndexes(text, term.Text)
		if len(indexes) == 0 {
			continue
		}

		refs := make([]core.Reference, 0, len(indexes))
		for _, i := range indexes {
			start := core.RuneOffset(text, i)
			refs = append(refs, core.Reference{
				Text:   term.Text,
				Source: source,
				Start:  start,
				End:    start + core.RuneLen(term.Text),
			})
		}

		entities = append(entities, core.Entity{
			ID:         EntityID(term.Type, term.Text),
			Type:       term.Type,
			Name:       term.Text,
			Attributes: maps.Clone(term.Attributes),
			References: refs,
		})
	}

	e.logger.Debug("entities extracted", "count", len(entities))
	return entities
}

// Terms returns the dictionary surface forms in order.
func (e *Extractor) Terms() []string {
	out := make([]string, len(e.dictionary))
	for i, t := range e.dictionary {
		out[i] = t.Text
	}
	return out
}

// EntityID is the deterministic identifier of the entity for a term.
func EntityID(entityType core.EntityType, name string) string {
	return core.ContentKey("ent", string(entityType), name)
}
