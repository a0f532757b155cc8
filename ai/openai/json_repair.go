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

import "strings"

// repairJSON fixes formatting slips small models make in JSON output: keys
// missing their opening quote (`{root": ...`) and trailing commas before a
// closing brace or bracket. Bytes inside string values are copied unchanged.
func repairJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
			b.WriteByte(c)
		case '{', ',':
			if c == ',' && closesNext(s, i+1) {
				continue
			}
			b.WriteByte(c)
			j := skipSpace(s, i+1)
			b.WriteString(s[i+1 : j])
			k := j
			for k < len(s) && isKeyByte(s[k]) {
				k++
			}
			if k > j && isLetter(rune(s[j])) && strings.HasPrefix(s[k:], `":`) {
				b.WriteByte('"')
				b.WriteString(s[j : k+1])
				i = k
			} else {
				i = j - 1
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// stripCodeFence removes a surrounding markdown code fence, if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func closesNext(s string, from int) bool {
	j := skipSpace(s, from)
	return j < len(s) && (s[j] == '}' || s[j] == ']')
}

func skipSpace(s string, from int) int {
	for from < len(s) && (s[from] == ' ' || s[from] == '\n' || s[from] == '\t' || s[from] == '\r') {
		from++
	}
	return from
}

func isKeyByte(c byte) bool {
	return isLetter(rune(c)) || c == '_' || (c >= '0' && c <= '9')
}
