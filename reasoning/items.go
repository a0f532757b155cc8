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

import "github.com/poiesic/marifa/core"

var defaultItems = []core.KnowledgeItem{
	{
		ID: "taqwa", Type: "concept", Name: "التقوى",
		Description: "God-consciousness that restrains from wrongdoing",
		Attributes: map[string]any{
			"category":     "virtue",
			"polarity":     "positive",
			"opposite":     "الفجور",
			"leads_to":     []string{"الفلاح"},
			"implications": []string{"الفلاح"},
		},
	},
	{
		ID: "sabr", Type: "concept", Name: "الصبر",
		Description: "steadfastness in hardship",
		Attributes: map[string]any{
			"category": "virtue",
			"polarity": "positive",
			"opposite": "الجزع",
			"leads_to": []string{"الفلاح"},
		},
	},
	{
		ID: "tawba", Type: "concept", Name: "التوبة",
		Description: "turning back to God after a sin",
		Attributes: map[string]any{
			"category":     "virtue",
			"polarity":     "positive",
			"leads_to":     []string{"المغفرة"},
			"implications": []string{"المغفرة"},
		},
	},
	{
		ID: "falah", Type: "concept", Name: "الفلاح",
		Description: "success in this life and the next",
		Attributes: map[string]any{
			"category": "outcome",
			"polarity": "positive",
		},
	},
	{
		ID: "maghfira", Type: "concept", Name: "المغفرة",
		Description: "forgiveness of sins",
		Attributes: map[string]any{
			"category": "outcome",
			"polarity": "positive",
		},
	},
	{
		ID: "fujur", Type: "concept", Name: "الفجور",
		Description: "open transgression",
		Attributes: map[string]any{
			"category": "vice",
			"polarity": "negative",
			"opposite": "التقوى",
		},
	},
	{
		ID: "jaza", Type: "concept", Name: "الجزع",
		Description: "panic and lack of endurance",
		Attributes: map[string]any{
			"category": "vice",
			"polarity": "negative",
			"opposite": "الصبر",
		},
	},
	{
		ID: "musa", Type: "person", Name: "موسى",
		Description: "prophet sent to Pharaoh",
		Attributes: map[string]any{
			"category": "prophet",
			"virtues":  []string{"الصبر", "التقوى"},
		},
	},
	{
		ID: "ibrahim", Type: "person", Name: "إبراهيم",
		Description: "prophet and friend of God",
		Attributes: map[string]any{
			"category": "prophet",
			"virtues":  []string{"التقوى", "التوبة"},
		},
	},
	{
		ID: "salat", Type: "practice", Name: "الصلاة",
		Description: "ritual prayer",
		Attributes: map[string]any{
			"category": "worship",
			"leads_to": []string{"التقوى"},
		},
	},
}

// DefaultItems returns a copy of the built-in knowledge universe.
func DefaultItems() []core.KnowledgeItem {
	return append([]core.KnowledgeItem(nil), defaultItems...)
}
