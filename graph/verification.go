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

	"github.com/poiesic/marifa/core"
)

// Names of the built-in verification methods.
const (
	MethodSourceReliability     = "source_reliability"
	MethodAttributeConsistency  = "attribute_consistency"
	MethodRelationshipCoherence = "relationship_coherence"
)

// defaultReliability is the score of sources missing from the table.
const defaultReliability = 0.5

// Verdict is the outcome of one verification method.
type Verdict struct {
	Result     bool
	Confidence float64
	Details    map[string]any
}

// Check inspects a node snapshot. It must not mutate the node.
type Check func(ctx context.Context, node *core.KnowledgeNode) (Verdict, error)

// Method is a named verification check.
type Method struct {
	Name  string
	Check Check
}

var defaultSourceReliability = map[string]float64{
	"quran":        1.0,
	"hadith_sahih": 0.9,
	"hadith":       0.8,
	"tafsir":       0.75,
	"scholar":      0.7,
	"user":         0.4,
	"web":          0.3,
}

// DefaultSourceReliability returns a copy of the built-in source table.
func DefaultSourceReliability() map[string]float64 {
	out := make(map[string]float64, len(defaultSourceReliability))
	for k, v := range defaultSourceReliability {
		out[k] = v
	}
	return out
}

// DefaultMethods returns the built-in pipeline in its fixed order.
func DefaultMethods(reliability map[string]float64) []Method {
	return []Method{
		SourceReliability(reliability),
		AttributeConsistency(),
		RelationshipCoherence(),
	}
}

// SourceReliability scores a node by its source tag. Unknown sources score
// 0.5. It passes above 0.7.
func SourceReliability(table map[string]float64) Method {
	return Method{
		Name: MethodSourceReliability,
		Check: func(_ context.Context, node *core.KnowledgeNode) (Verdict, error) {
			score, known := table[node.Source]
			if !known {
				score = defaultReliability
			}
			return Verdict{
				Result:     score > 0.7,
				Confidence: score,
				Details: map[string]any{
					"source": node.Source,
					"known":  known,
				},
			}, nil
		},
	}
}

// AttributeConsistency scores a node by how completely it is described:
// 0.5 plus 0.1 per attribute, capped at 1. Concepts without a definition and
// events without a time are penalized by a factor of 0.8. It passes above 0.6.
func AttributeConsistency() Method {
	return Method{
		Name: MethodAttributeConsistency,
		Check: func(_ context.Context, node *core.KnowledgeNode) (Verdict, error) {
			count := len(node.Attributes)
			score := min(0.5+0.1*float64(count), 1.0)

			var missing string
			switch node.Type {
			case string(core.EntityConcept):
				if _, ok := node.Attributes["definition"]; !ok {
					missing = "definition"
				}
			case string(core.EntityEvent):
				if _, ok := node.Attributes["time"]; !ok {
					missing = "time"
				}
			}
			if missing != "" {
				score *= 0.8
			}

			details := map[string]any{"attributeCount": count}
			if missing != "" {
				details["missing"] = missing
			}
			return Verdict{Result: score > 0.6, Confidence: score, Details: details}, nil
		},
	}
}

// RelationshipCoherence scores a node by its edges: 0.5 with no edges, else
// 0.5 plus 0.05 per edge capped at 0.9. Holding both a similar_to and an
// opposite_of edge costs 0.2, floored at 0.1. It passes above 0.5.
func RelationshipCoherence() Method {
	return Method{
		Name: MethodRelationshipCoherence,
		Check: func(_ context.Context, node *core.KnowledgeNode) (Verdict, error) {
			count := len(node.Relationships)
			if count == 0 {
				return Verdict{
					Result:     false,
					Confidence: 0.5,
					Details:    map[string]any{"relationshipCount": 0},
				}, nil
			}

			score := min(0.5+0.05*float64(count), 0.9)
			contradiction := node.HasRelationshipType("similar_to") && node.HasRelationshipType("opposite_of")
			if contradiction {
				score = max(score-0.2, 0.1)
			}
			return Verdict{
				Result:     score > 0.5,
				Confidence: score,
				Details: map[string]any{
					"relationshipCount": count,
					"contradiction":     contradiction,
				},
			}, nil
		},
	}
}
