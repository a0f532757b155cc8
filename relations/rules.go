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

import "github.com/poiesic/marifa/core"

// Relationship types produced by discovery.
const (
	TypeCoOccursWith = "co_occurs_with"
	TypeHasAttribute = "has_attribute"
)

const (
	// proximityWindow is the character distance at which proximity reaches 0.
	proximityWindow = 100.0
	// proximityThreshold is the score a pair must exceed to co-occur.
	proximityThreshold = 0.6
	// attributeConfidence is assigned to every has_attribute relationship.
	attributeConfidence = 0.75
)

// TypeRule maps an ordered entity type pair to a relationship type.
type TypeRule struct {
	Source     core.EntityType
	Target     core.EntityType
	Relation   string
	Confidence float64
}

var defaultTypeRules = []TypeRule{
	{Source: core.EntityPerson, Target: core.EntityPlace, Relation: "located_in", Confidence: 0.6},
	{Source: core.EntityPerson, Target: core.EntityEvent, Relation: "participated_in", Confidence: 0.7},
	{Source: core.EntityPerson, Target: core.EntityPerson, Relation: "associated_with", Confidence: 0.6},
	{Source: core.EntityPerson, Target: core.EntityConcept, Relation: "embodies", Confidence: 0.8},
	{Source: core.EntityPerson, Target: core.EntityCommand, Relation: "practices", Confidence: 0.75},
	{Source: core.EntityEvent, Target: core.EntityPlace, Relation: "occurred_in", Confidence: 0.8},
	{Source: core.EntityConcept, Target: core.EntityConcept, Relation: "related_to", Confidence: 0.7},
	{Source: core.EntityCommand, Target: core.EntityConcept, Relation: "cultivates", Confidence: 0.8},
	{Source: core.EntityProhibition, Target: core.EntityConcept, Relation: "opposes", Confidence: 0.8},
}

// DefaultTypeRules returns a copy of the built-in type-pair table.
func DefaultTypeRules() []TypeRule {
	return append([]TypeRule(nil), defaultTypeRules...)
}

// valueCategories are categories treated as generally applicable values.
var valueCategories = map[string]bool{
	"value":   true,
	"virtue":  true,
	"quality": true,
}
