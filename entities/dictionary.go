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

import "github.com/poiesic/marifa/core"

// Term is one dictionary entry: the surface form matched in text and the
// entity it produces.
type Term struct {
	Text       string
	Type       core.EntityType
	Attributes map[string]any
}

// defaultDictionary is ordered; extraction output follows this order.
var defaultDictionary = []Term{
	{Text: "موسى", Type: core.EntityPerson, Attributes: map[string]any{"role": "prophet", "category": "prophet"}},
	{Text: "إبراهيم", Type: core.EntityPerson, Attributes: map[string]any{"role": "prophet", "category": "prophet"}},
	{Text: "محمد", Type: core.EntityPerson, Attributes: map[string]any{"role": "prophet", "category": "prophet"}},
	{Text: "عيسى", Type: core.EntityPerson, Attributes: map[string]any{"role": "prophet", "category": "prophet"}},
	{Text: "نوح", Type: core.EntityPerson, Attributes: map[string]any{"role": "prophet", "category": "prophet"}},
	{Text: "يوسف", Type: core.EntityPerson, Attributes: map[string]any{"role": "prophet", "category": "prophet"}},
	{Text: "فرعون", Type: core.EntityPerson, Attributes: map[string]any{"role": "ruler", "category": "tyrant"}},
	{Text: "مصر", Type: core.EntityPlace, Attributes: map[string]any{"category": "land", "region": "africa"}},
	{Text: "مكة", Type: core.EntityPlace, Attributes: map[string]any{"category": "city", "region": "hijaz"}},
	{Text: "المدينة", Type: core.EntityPlace, Attributes: map[string]any{"category": "city", "region": "hijaz"}},
	{Text: "سيناء", Type: core.EntityPlace, Attributes: map[string]any{"category": "land", "region": "sinai"}},
	{Text: "التقوى", Type: core.EntityConcept, Attributes: map[string]any{"category": "value", "definition": "God-consciousness"}},
	{Text: "الصبر", Type: core.EntityConcept, Attributes: map[string]any{"category": "value", "definition": "patience and steadfastness"}},
	{Text: "الرحمة", Type: core.EntityConcept, Attributes: map[string]any{"category": "value", "definition": "mercy"}},
	{Text: "التوبة", Type: core.EntityConcept, Attributes: map[string]any{"category": "value", "definition": "repentance"}},
	{Text: "الإيمان", Type: core.EntityConcept, Attributes: map[string]any{"category": "belief", "definition": "faith"}},
	{Text: "الصلاة", Type: core.EntityCommand, Attributes: map[string]any{"category": "worship", "obligation": "obligatory"}},
	{Text: "الزكاة", Type: core.EntityCommand, Attributes: map[string]any{"category": "worship", "obligation": "obligatory"}},
	{Text: "الصيام", Type: core.EntityCommand, Attributes: map[string]any{"category": "worship", "obligation": "obligatory"}},
	{Text: "الربا", Type: core.EntityProhibition, Attributes: map[string]any{"category": "transaction", "severity": "major"}},
	{Text: "الخمر", Type: core.EntityProhibition, Attributes: map[string]any{"category": "consumption", "severity": "major"}},
	{Text: "الهجرة", Type: core.EntityEvent, Attributes: map[string]any{"category": "history", "time": "622"}},
	{Text: "بدر", Type: core.EntityEvent, Attributes: map[string]any{"category": "history", "time": "624"}},
	{Text: "العدل", Type: core.EntityAttribute, Attributes: map[string]any{"category": "value"}},
	{Text: "الحكمة", Type: core.EntityAttribute, Attributes: map[string]any{"category": "value"}},
	{Text: "الصدق", Type: core.EntityAttribute, Attributes: map[string]any{"category": "value"}},
	{Text: "الشجاعة", Type: core.EntityAttribute, Attributes: map[string]any{"category": "prophet"}},
}

// DefaultDictionary returns a copy of the built-in dictionary.
func DefaultDictionary() []Term {
	return append([]Term(nil), defaultDictionary...)
}
