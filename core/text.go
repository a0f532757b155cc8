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

package core

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// RuneLen returns the number of characters in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// RuneOffset converts a byte offset in s to a character offset.
func RuneOffset(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset >= len(s) {
		return utf8.RuneCountInString(s)
	}
	return utf8.RuneCountInString(s[:byteOffset])
}

// IsWordRune reports whether r continues a word. Letters, digits and
// combining marks (Arabic diacritics) are word runes.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// WholeWordIndexes returns the byte offsets of every occurrence of term in
// text that is not preceded or followed by a word rune.
func WholeWordIndexes(text, term string) []int {
	if term == "" {
		return nil
	}
	var out []int
	for from := 0; from <= len(text)-len(term); {
		rel := strings.Index(text[from:], term)
		if rel < 0 {
			break
		}
		i := from + rel
		end := i + len(term)
		before, _ := utf8.DecodeLastRuneInString(text[:i])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if (i == 0 || !IsWordRune(before)) && (end == len(text) || !IsWordRune(after)) {
			out = append(out, i)
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		from = i + size
	}
	return out
}
