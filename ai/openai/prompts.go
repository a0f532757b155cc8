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

package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/marifa/ai"
)

const entryResponseSchema = `{
  "type": "object",
  "properties": {
    "root": {
      "type": "string"
    },
    "type": {
      "type": "string"
    },
    "definition": {
      "type": "string"
    },
    "examples": {
      "type": "array",
      "items": {"type": "string"},
      "maxItems": %d
    }
  },
  "required": ["root", "type", "definition", "examples"],
  "additionalProperties": false
}`

const entryPromptTemplate = `You are a lexicographer of Classical and Quranic Arabic. Describe the Arabic term given by the user and return the description as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- root is the consonantal root written as space-separated Arabic letters, e.g. "ر ح م". Use "" for particles and loanwords without a root.
- type must match exactly one of the listed values: %s.
- definition is a single short sentence in Arabic.
- examples are short phrases or verses that use the term, at most %d of them. Use [] when none come to mind.
- Do not invent meanings the term does not carry in Classical Arabic.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "رحمة"
Output:
{"root":"ر ح م","type":"verbal_noun","definition":"رقة في القلب تقتضي الإحسان إلى المرحوم","examples":["وما أرسلناك إلا رحمة للعالمين"]}

Example:
Input: "إلا"
Output:
{"root":"","type":"particle","definition":"أداة استثناء وحصر","examples":["لا إله إلا الله"]}`

// buildSystemPrompt creates the system prompt with entry types and example cap embedded.
func buildSystemPrompt(maxExamples int) string {
	return fmt.Sprintf(entryPromptTemplate,
		fmt.Sprintf(entryResponseSchema, maxExamples),
		strings.Join(ai.EntryTypes, ", "),
		maxExamples)
}
