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
	"log/slog"
	"sort"

	"github.com/poiesic/marifa/core"
)

// Options controls a single detection call.
type Options struct {
	// MinConfidence drops patterns scoring below it. Default 0.7.
	MinConfidence float64
	// IncludeSemantic enables the question/answer and theme matchers.
	IncludeSemantic bool
}

// DefaultOptions returns the default detection options.
func DefaultOptions() *Options {
	return &Options{MinConfidence: 0.7}
}

// Detector finds patterns in text using a fixed matcher table.
// A Detector is safe for concurrent use.
type Detector struct {
	matchers []*matcher
	themes   []theme
	logger   *slog.Logger
}

// Option configures a Detector.
type Option func(*Detector) error

// WithThemes replaces the theme table used by theme repetition.
// Keys are theme names, values the terms that express the theme.
func WithThemes(themes map[string][]string) Option {
	return func(d *Detector) error {
		names := make([]string, 0, len(themes))
		for name := range themes {
			names = append(names, name)
		}
		sort.Strings(names)

		d.themes = d.themes[:0]
		for _, name := range names {
			d.themes = append(d.themes, theme{name: name, terms: themes[name]})
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) error {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger
		return nil
	}
}

// NewDetector creates a Detector with the built-in matchers and themes.
func NewDetector(opts ...Option) (*Detector, error) {
	d := &Detector{
		matchers: initMatchers(),
		themes:   append([]theme(nil), defaultThemes...),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	d.logger = d.logger.With("component", "patterns")
	return d, nil
}

// Detect returns the patterns found in text, ordered by start offset.
// Patterns with equal start keep matcher-table order. A nil opts uses
// DefaultOptions.
func (d *Detector) Detect(text string, opts *Options) []core.Pattern {
	if opts == nil {
		opts = DefaultOptions()
	}

	var found []core.Pattern
	for _, m := range d.matchers {
		found = append(found, m.match(text)...)
	}
	found = append(found, repetitions(text)...)

	if opts.IncludeSemantic {
		found = append(found, questionAnswers(text)...)
		found = append(found, themeRepetitions(text, d.themes)...)
	}

	result := make([]core.Pattern, 0, len(found))
	for _, p := range found {
		if p.Confidence >= opts.MinConfidence {
			result = append(result, p)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Start < result[j].Start })

	d.logger.Debug("patterns detected", "candidates", len(found), "kept", len(result))
	return result
}
