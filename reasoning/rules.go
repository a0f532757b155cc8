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
	"slices"

	"github.com/poiesic/marifa/core"
)

// Relation types produced by the engine.
const (
	TypeSimilarTo     = "similar_to"
	TypeOppositeOf    = "opposite_of"
	TypeLeadsTo       = "leads_to"
	TypeExemplifies   = "exemplifies"
	TypeContrastsWith = "contrasts_with"
	TypeImplies       = "implies"
)

const (
	typeMatchConfidence     = 0.6
	categoryMatchConfidence = 0.7
	categoryBoost           = 0.2
	implicationConfidence   = 0.9
)

// Rule is one inference rule: when Applies holds for an ordered item pair,
// a relation of type Relation is produced with the rule's confidence.
type Rule struct {
	Name       string
	Relation   string
	Confidence float64
	Applies    func(source, target *core.KnowledgeItem) bool
	Explain    func(source, target *core.KnowledgeItem) string
}

var defaultRules = []Rule{
	{
		Name:       "declared_opposite",
		Relation:   TypeOppositeOf,
		Confidence: 0.85,
		Applies: func(s, t *core.KnowledgeItem) bool {
			return core.StringAttribute(s.Attributes, "opposite") == t.Name ||
				core.StringAttribute(t.Attributes, "opposite") == s.Name
		},
		Explain: func(s, t *core.KnowledgeItem) string {
			return fmt.Sprintf("%s is declared the opposite of %s", t.Name, s.Name)
		},
	},
	{
		Name:       "cause_effect",
		Relation:   TypeLeadsTo,
		Confidence: 0.7,
		Applies: func(s, t *core.KnowledgeItem) bool {
			return slices.Contains(core.StringsAttribute(s.Attributes, "leads_to"), t.Name)
		},
		Explain: func(s, t *core.KnowledgeItem) string {
			return fmt.Sprintf("%s leads to %s", s.Name, t.Name)
		},
	},
	{
		Name:       "exemplar",
		Relation:   TypeExemplifies,
		Confidence: 0.8,
		Applies: func(s, t *core.KnowledgeItem) bool {
			return s.Type == "person" && slices.Contains(core.StringsAttribute(s.Attributes, "virtues"), t.Name)
		},
		Explain: func(s, t *core.KnowledgeItem) string {
			return fmt.Sprintf("%s exemplifies %s", s.Name, t.Name)
		},
	},
	{
		Name:       "polarity_contrast",
		Relation:   TypeContrastsWith,
		Confidence: 0.75,
		Applies: func(s, t *core.KnowledgeItem) bool {
			sp := core.StringAttribute(s.Attributes, "polarity")
			tp := core.StringAttribute(t.Attributes, "polarity")
			return s.Type == t.Type && sp != "" && tp != "" && sp != tp
		},
		Explain: func(s, t *core.KnowledgeItem) string {
			return fmt.Sprintf("%s and %s have opposing polarity", s.Name, t.Name)
		},
	},
}

// DefaultRules returns a copy of the built-in rule list.
func DefaultRules() []Rule {
	return append([]Rule(nil), defaultRules...)
}
