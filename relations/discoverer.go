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

package relations

import (
	"fmt"
	"log/slog"
	"math"
	"reflect"

	"github.com/poiesic/marifa/core"
)

// Options controls a single discovery call.
type Options struct {
	// MinConfidence drops relationships scoring below it. Default 0.7.
	MinConfidence float64
}

// DefaultOptions returns the default discovery options.
func DefaultOptions() *Options {
	return &Options{MinConfidence: 0.7}
}

// Discoverer proposes relationships between entities of one text.
// A Discoverer is safe for concurrent use.
type Discoverer struct {
	rules  []TypeRule
	logger *slog.Logger
}

// Option configures a Discoverer.
type Option func(*Discoverer) error

// WithTypeRules replaces the type-pair table.
func WithTypeRules(rules []TypeRule) Option {
	return func(d *Discoverer) error {
		for _, r := range rules {
			if !core.IsValidConfidence(r.Confidence) {
				return fmt.Errorf("type rule %s: %w", r.Relation, core.ErrConfidenceOutOfRange)
			}
		}
		d.rules = append([]TypeRule(nil), rules...)
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Discoverer) error {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger
		return nil
	}
}

// NewDiscoverer creates a Discoverer with the built-in type-pair table.
func NewDiscoverer(opts ...Option) (*Discoverer, error) {
	d := &Discoverer{
		rules:  DefaultTypeRules(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	d.logger = d.logger.With("component", "relations")
	return d, nil
}

// Discover returns the proximity, attribute and type-pair relationships among
// entities, in that order, keeping those at or above opts.MinConfidence.
// The text is the one the entities were extracted from; it supplies evidence.
func (d *Discoverer) Discover(entities []core.Entity, text string, opts *Options) []core.Relationship {
	if opts == nil {
		opts = DefaultOptions()
	}

	var found []core.Relationship
	found = append(found, d.proximity(entities, text)...)
	found = append(found, d.attributes(entities)...)
	found = append(found, d.typePairs(entities)...)

	result := make([]core.Relationship, 0, len(found))
	for _, r := range found {
		if r.Confidence >= opts.MinConfidence {
			result = append(result, r)
		}
	}

	d.logger.Debug("relationships discovered", "entities", len(entities), "candidates", len(found), "kept", len(result))
	return result
}

// proximity links every unordered pair whose closest references lie within
// the proximity window.
func (d *Discoverer) proximity(entities []core.Entity, text string) []core.Relationship {
	var out []core.Relationship
	for i := range entities {
		for j := i + 1; j < len(entities); j++ {
			a, b := &entities[i], &entities[j]
			distance, ra, rb, ok := closestReferences(a, b)
			if !ok {
				continue
			}
			score := ProximityScore(distance)
			if score <= proximityThreshold {
				continue
			}
			out = append(out, newRelationship(TypeCoOccursWith, a.ID, b.ID, score, core.Evidence{
				Source: ra.Source,
				Text:   spanText(text, min(ra.Start, rb.Start), max(ra.End, rb.End)),
			}))
		}
	}
	return out
}

// attributes links persons and concepts to attribute entities that are
// generally applicable values or share the source's category.
func (d *Discoverer) attributes(entities []core.Entity) []core.Relationship {
	var out []core.Relationship
	for i := range entities {
		src := &entities[i]
		if src.Type != core.EntityPerson && src.Type != core.EntityConcept {
			continue
		}
		for j := range entities {
			tgt := &entities[j]
			if i == j || tgt.Type != core.EntityAttribute {
				continue
			}
			category := tgt.Category()
			if !valueCategories[category] && (category == "" || category != src.Category()) {
				continue
			}
			out = append(out, newRelationship(TypeHasAttribute, src.ID, tgt.ID, attributeConfidence, core.Evidence{
				Source: "attribute",
				Text:   fmt.Sprintf("%s applies to %s (category %s)", tgt.Name, src.Name, category),
			}))
		}
	}
	return out
}

// typePairs applies the type-pair table to every ordered pair of distinct
// entities, scaling the rule confidence by attribute similarity.
func (d *Discoverer) typePairs(entities []core.Entity) []core.Relationship {
	var out []core.Relationship
	for i := range entities {
		for j := range entities {
			if i == j {
				continue
			}
			src, tgt := &entities[i], &entities[j]
			for _, rule := range d.rules {
				if rule.Source != src.Type || rule.Target != tgt.Type {
					continue
				}
				similarity := AttributeSimilarity(src.Attributes, tgt.Attributes)
				out = append(out, newRelationship(rule.Relation, src.ID, tgt.ID, rule.Confidence*similarity, core.Evidence{
					Source: "type_pair",
					Text:   fmt.Sprintf("%s %s %s (similarity %.2f)", src.Name, rule.Relation, tgt.Name, similarity),
				}))
			}
		}
	}
	return out
}

// ProximityScore maps a character distance to max(0, 1 - distance/100).
func ProximityScore(distance int) float64 {
	return math.Max(0, 1-float64(distance)/proximityWindow)
}

// AttributeSimilarity is the number of keys with equal values in both maps
// divided by the size of the smaller map. It is 0 when either map is empty.
func AttributeSimilarity(a, b map[string]any) float64 {
	smaller := min(len(a), len(b))
	if smaller == 0 {
		return 0
	}
	matching := 0
	for k, va := range a {
		if vb, ok := b[k]; ok && reflect.DeepEqual(va, vb) {
			matching++
		}
	}
	return float64(matching) / float64(smaller)
}

// closestReferences finds the pair of references with the smallest start
// offset distance.
func closestReferences(a, b *core.Entity) (int, core.Reference, core.Reference, bool) {
	best := -1
	var ba, bb core.Reference
	for _, ra := range a.References {
		for _, rb := range b.References {
			d := ra.Start - rb.Start
			if d < 0 {
				d = -d
			}
			if best < 0 || d < best {
				best, ba, bb = d, ra, rb
			}
		}
	}
	return best, ba, bb, best >= 0
}

func newRelationship(relType, sourceID, targetID string, confidence float64, evidence core.Evidence) core.Relationship {
	return core.Relationship{
		ID:         core.ContentKey("rel", relType, sourceID, targetID),
		Type:       relType,
		SourceID:   sourceID,
		TargetID:   targetID,
		Confidence: confidence,
		Evidence:   []core.Evidence{evidence},
	}
}

// spanText returns the characters [start,end) of text, clamped to its bounds.
func spanText(text string, start, end int) string {
	runes := []rune(text)
	start = max(0, min(start, len(runes)))
	end = max(start, min(end, len(runes)))
	return string(runes[start:end])
}
