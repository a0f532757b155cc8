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

package patterns

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/marifa/core"
)

// matcher is one structural rule: a trigger expression, the pattern type it
// produces and an optional metadata extractor. Group 1 of the expression is
// the pattern span; further groups are handed to metadata.
type matcher struct {
	name        string
	patternType core.PatternType
	regex       *regexp.Regexp
	metadata    func(groups []string) map[string]any
}

// wordStart anchors a match at the start of the text or after a non-word rune.
const wordStart = `(?:^|[^\p{L}\p{M}\p{N}])`

// clause is a run of characters up to the next sentence terminator.
const clause = `[^.؟?!؛\n]`

const word = `[\p{L}\p{M}]+`

func initMatchers() []*matcher {
	return []*matcher{
		{
			name:        "conditional",
			patternType: core.PatternConditionalSequence,
			regex: regexp.MustCompile(wordStart +
				`((إن|إذا|لو)\s+` + clause + `+?(?:\s+ثم\s+` + clause + `+?)?\s+(ف` + word + `)` + clause + `*)`),
			metadata: func(groups []string) map[string]any {
				return map[string]any{
					"particle":    groups[2],
					"consequence": groups[3],
				}
			},
		},
		{
			name:        "exclusivity",
			patternType: core.PatternExclusivity,
			regex: regexp.MustCompile(wordStart +
				`(و?(ما|لا|إن)\s+` + clause + `+?\s+إلا\s+(` + clause + `+))`),
			metadata: func(groups []string) map[string]any {
				return map[string]any{
					"negation":  groups[2],
					"exception": strings.TrimSpace(groups[3]),
				}
			},
		},
		{
			name:        "address",
			patternType: core.PatternAddress,
			regex:       regexp.MustCompile(wordStart + `(يا\s+(?:(?:أيها|أيتها)\s+)?(` + word + `))`),
			metadata: func(groups []string) map[string]any {
				return map[string]any{"addressee": groups[2]}
			},
		},
		{
			name:        "oath",
			patternType: core.PatternOath,
			regex: regexp.MustCompile(wordStart +
				`((?:لا\s+)?أقسم\s+(ب` + word + `)|(والله|تالله|بالله)|(و(?:الشمس|الليل|الفجر|الضحى|العصر|التين|الطور|القمر|النجم|السماء)))`),
			metadata: func(groups []string) map[string]any {
				for _, g := range groups[2:] {
					if g != "" {
						return map[string]any{"object": g}
					}
				}
				return nil
			},
		},
		{
			name:        "prohibition",
			patternType: core.PatternProhibition,
			regex:       regexp.MustCompile(wordStart + `([وف]?لا\s+(ت` + word + `)` + clause + `*)`),
			metadata: func(groups []string) map[string]any {
				return map[string]any{"verb": groups[2]}
			},
		},
	}
}

// match runs m over text and returns the occurrences whose span ends on a
// word boundary.
func (m *matcher) match(text string) []core.Pattern {
	var out []core.Pattern
	for _, loc := range m.regex.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[2], loc[3]
		if start < 0 || !atWordEnd(text, end) {
			continue
		}
		span := strings.TrimRightFunc(text[start:end], isSpace)
		end = start + len(span)

		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = text[loc[2*i]:loc[2*i+1]]
			}
		}

		var metadata map[string]any
		if m.metadata != nil {
			metadata = m.metadata(groups)
		}
		out = append(out, newPattern(text, m.patternType, start, end, metadata))
	}
	return out
}

// repetitions finds words immediately repeated, e.g. "دكا دكا" or
// "صفا صفا". RE2 has no backreferences so this is a token scan.
func repetitions(text string) []core.Pattern {
	var out []core.Pattern
	toks := tokenize(text)
	for i := 0; i < len(toks); {
		j := i + 1
		for j < len(toks) && toks[j].text == toks[i].text && onlySpaceBetween(text, toks[j-1], toks[j]) {
			j++
		}
		if count := j - i; count >= 2 && utf8.RuneCountInString(toks[i].text) >= 2 {
			out = append(out, newPattern(text, core.PatternRepetition, toks[i].start, toks[j-1].end, map[string]any{
				"word":  toks[i].text,
				"count": count,
			}))
		}
		i = j
	}
	return out
}

// newPattern builds a pattern from byte offsets into text.
func newPattern(text string, patternType core.PatternType, start, end int, metadata map[string]any) core.Pattern {
	s := core.RuneOffset(text, start)
	e := core.RuneOffset(text, end)
	span := text[start:end]
	return core.Pattern{
		ID:         patternID(patternType, s, e),
		Type:       patternType,
		Text:       span,
		Start:      s,
		End:        e,
		Confidence: structuralConfidence(patternType, span),
		Metadata:   metadata,
	}
}

// structuralConfidence scores a structural match: 0.7 base, +0.1 for spans
// longer than 20 characters, +0.1 for conditionals, +0.15 for exclusivity,
// capped at 1.
func structuralConfidence(patternType core.PatternType, span string) float64 {
	confidence := 0.7
	if utf8.RuneCountInString(span) > 20 {
		confidence += 0.1
	}
	switch patternType {
	case core.PatternConditionalSequence:
		confidence += 0.1
	case core.PatternExclusivity:
		confidence += 0.15
	}
	return min(confidence, 1.0)
}

type token struct {
	text       string
	start, end int
}

// tokenize splits text into words with byte offsets.
func tokenize(text string) []token {
	var toks []token
	start := -1
	for i, r := range text {
		if core.IsWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			toks = append(toks, token{text: text[start:i], start: start, end: i})
			start = -1
		}
	}
	if start >= 0 {
		toks = append(toks, token{text: text[start:], start: start, end: len(text)})
	}
	return toks
}

func onlySpaceBetween(text string, a, b token) bool {
	return strings.TrimFunc(text[a.end:b.start], isSpace) == ""
}

func atWordEnd(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[end:])
	return !core.IsWordRune(r)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func patternID(patternType core.PatternType, start, end int) string {
	return core.ContentKey("pat", string(patternType), strconv.Itoa(start), strconv.Itoa(end))
}
