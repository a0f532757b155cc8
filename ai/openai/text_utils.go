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
	"strings"
	"unicode"
)

// tatweel is the Arabic elongation mark; it carries no meaning in a term.
const tatweel = 'ـ'

// scrubTerm strips punctuation, quotation marks and tatweel from a term and
// trims surrounding whitespace. Letters and diacritics are kept.
func scrubTerm(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == tatweel || unicode.IsPunct(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// normalizeType maps a model-supplied type onto EntryTypes spelling:
// lowercase with underscores for spaces.
func normalizeType(t string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(t)), " ", "_")
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
