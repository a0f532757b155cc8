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
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/marifa/core"
)

// questionAnswerConfidence is assigned to every question/answer pair.
const questionAnswerConfidence = 0.85

// Theme repetition fires when a theme's terms occur at least
// minThemeOccurrences times with an average gap below maxThemeDistance
// characters.
const (
	minThemeOccurrences = 3
	maxThemeDistance    = 100.0
)

// theme is a named group of terms whose recurrence marks a theme.
type theme struct {
	name  string
	terms []string
}

var defaultThemes = []theme{
	{name: "mercy", terms: []string{"رحمة", "الرحمة", "الرحمن", "الرحيم", "رحيم", "رحمته"}},
	{name: "guidance", terms: []string{"هدى", "الهدى", "يهدي", "اهدنا", "المهتدين", "هداية"}},
	{name: "piety", terms: []string{"التقوى", "تقوى", "اتقوا", "المتقين", "يتقون", "تتقون"}},
	{name: "patience", terms: []string{"الصبر", "صبر", "اصبروا", "الصابرين", "صابرين", "اصبر"}},
	{name: "repentance", terms: []string{"التوبة", "توبة", "تاب", "تابوا", "التوابين", "توبوا"}},
	{name: "worship", terms: []string{"اعبدوا", "نعبد", "يعبدون", "العبادة", "عبادة", "عبادي"}},
	{name: "knowledge", terms: []string{"العلم", "علم", "يعلمون", "العلماء", "تعلمون", "اعلموا"}},
}

// questionAnswers pairs every question (a clause ending in ؟ or ?) with the
// clause that follows it.
func questionAnswers(text string) []core.Pattern {
	var out []core.Pattern
	for i, r := range text {
		if r != '؟' && r != '?' {
			continue
		}
		qStart := clauseStart(text, i)
		aStart := i + len(string(r))
		aEnd := clauseEnd(text, aStart)

		question := strings.TrimSpace(text[qStart:aStart])
		answer := strings.TrimSpace(text[aStart:aEnd])
		if strings.TrimSpace(text[qStart:i]) == "" || answer == "" {
			continue
		}

		start := qStart + strings.Index(text[qStart:aStart], question)
		end := aStart + strings.Index(text[aStart:aEnd], answer) + len(answer)

		p := newPattern(text, core.PatternQuestionAnswer, start, end, map[string]any{
			"question": question,
			"answer":   answer,
		})
		p.Confidence = questionAnswerConfidence
		out = append(out, p)
	}
	return out
}

// themeRepetitions reports themes whose terms recur closely. Confidence is
// 0.75 + 0.05 per occurrence and is not capped.
func themeRepetitions(text string, themes []theme) []core.Pattern {
	var out []core.Pattern
	for _, th := range themes {
		type occurrence struct{ start, end int }
		var occ []occurrence
		for _, term := range th.terms {
			for _, i := range core.WholeWordIndexes(text, term) {
				occ = append(occ, occurrence{start: i, end: i + len(term)})
			}
		}
		if len(occ) < minThemeOccurrences {
			continue
		}
		sort.Slice(occ, func(a, b int) bool { return occ[a].start < occ[b].start })

		var gaps float64
		for k := 1; k < len(occ); k++ {
			gaps += float64(core.RuneOffset(text, occ[k].start) - core.RuneOffset(text, occ[k-1].start))
		}
		average := gaps / float64(len(occ)-1)
		if average >= maxThemeDistance {
			continue
		}

		p := newPattern(text, core.PatternThemeRepetition, occ[0].start, occ[len(occ)-1].end, map[string]any{
			"theme":           th.name,
			"count":           len(occ),
			"averageDistance": average,
		})
		p.Confidence = 0.75 + 0.05*float64(len(occ))
		out = append(out, p)
	}
	return out
}

// clauseStart returns the byte offset just past the terminator preceding i.
func clauseStart(text string, i int) int {
	if j := strings.LastIndexAny(text[:i], ".؟?!؛\n"); j >= 0 {
		_, size := utf8.DecodeRuneInString(text[j:])
		return j + size
	}
	return 0
}

// clauseEnd returns the byte offset of the first terminator at or after i.
func clauseEnd(text string, i int) int {
	if j := strings.IndexAny(text[i:], ".؟?!؛\n"); j >= 0 {
		return i + j
	}
	return len(text)
}
