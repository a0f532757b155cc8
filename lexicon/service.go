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

package lexicon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/marifa/ai"
	"github.com/poiesic/marifa/core"
	"github.com/poiesic/marifa/storage"
	"golang.org/x/sync/singleflight"
)

// conceptTypes are the entry types whose terms can name a concept.
var conceptTypes = []string{"concept", "noun", "proper_noun", "verbal_noun"}

// Service manages the vocabulary lexicon and drafts missing entries with an
// optional ai.EntryGenerator.
type Service struct {
	entries   storage.LexiconRepository
	generator ai.EntryGenerator
	inflight  singleflight.Group
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service) error

// WithGenerator sets the generator used by Generate.
func WithGenerator(generator ai.EntryGenerator) Option {
	return func(s *Service) error {
		s.generator = generator
		return nil
	}
}

// WithLogger sets a custom logger for the service.
// If not provided, slog.Default() will be used.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) error {
		s.logger = logger
		return nil
	}
}

// NewService creates a lexicon service over the given repository.
func NewService(entries storage.LexiconRepository, opts ...Option) (*Service, error) {
	if entries == nil {
		return nil, ErrLexiconRepositoryRequired
	}

	s := &Service{entries: entries}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("component", "lexicon")
	return s, nil
}

// Lookup returns the entry for term.
func (s *Service) Lookup(ctx context.Context, term string) (*core.LexiconEntry, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: %w", core.ErrValidation, core.ErrEmptyTerm)
	}
	entry, err := s.entries.FindByTerm(ctx, term)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, term)
		}
		return nil, err
	}
	return entry, nil
}

// Add stores entries, replacing existing entries for the same terms.
func (s *Service) Add(ctx context.Context, entries ...*core.LexiconEntry) ([]*core.LexiconEntry, error) {
	for _, e := range entries {
		if e != nil {
			e.Term = strings.TrimSpace(e.Term)
		}
	}
	return s.entries.AddEntries(ctx, entries...)
}

// ByRoot returns every entry derived from root.
func (s *Service) ByRoot(ctx context.Context, root string) ([]*core.LexiconEntry, error) {
	return s.entries.FindByRoot(ctx, strings.TrimSpace(root))
}

// Generate returns the entry for term, asking the generator for one and
// storing it with Generated set when the term is not in the lexicon yet.
// Concurrent calls for the same term share one generation.
func (s *Service) Generate(ctx context.Context, term string) (*core.LexiconEntry, error) {
	entry, err := s.Lookup(ctx, term)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, ErrEntryNotFound) {
		return nil, err
	}
	if s.generator == nil {
		return nil, ErrGeneratorRequired
	}

	term = strings.TrimSpace(term)
	v, err, shared := s.inflight.Do(term, func() (any, error) {
		return s.generate(ctx, term)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("shared in-flight generation", "term", term)
	}
	return v.(*core.LexiconEntry), nil
}

func (s *Service) generate(ctx context.Context, term string) (*core.LexiconEntry, error) {
	// A generation that finished between Lookup and Do has already stored the term.
	if entry, err := s.entries.FindByTerm(ctx, term); err == nil {
		return entry, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	generated, err := s.generator.GenerateEntry(ctx, term)
	if err != nil {
		s.logger.Error("entry generation failed", "term", term, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	if generated == nil || strings.TrimSpace(generated.Definition) == "" {
		s.logger.Warn("generated entry has no definition", "term", term)
		return nil, fmt.Errorf("%w: %w: %s", ErrGenerationFailed, ai.ErrEmptyGeneration, term)
	}

	entry := &core.LexiconEntry{
		Term:       term,
		Root:       generated.Root,
		Type:       generated.Type,
		Definition: generated.Definition,
		Examples:   generated.Examples,
		Generated:  true,
	}
	stored, err := s.entries.AddEntries(ctx, entry)
	if err != nil {
		return nil, err
	}
	s.logger.Info("generated lexicon entry", "term", term, "root", entry.Root, "type", entry.Type)
	return stored[0], nil
}

// Candidates returns the sorted terms whose entry type can name a concept.
func (s *Service) Candidates(ctx context.Context) ([]string, error) {
	all, err := s.entries.AllEntries(ctx)
	if err != nil {
		return nil, err
	}
	terms := make([]string, 0, len(all))
	for _, e := range all {
		if slices.Contains(conceptTypes, e.Type) {
			terms = append(terms, e.Term)
		}
	}
	slices.Sort(terms)
	return terms, nil
}

// Entries returns every entry ordered by term.
func (s *Service) Entries(ctx context.Context) ([]*core.LexiconEntry, error) {
	all, err := s.entries.AllEntries(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(all, func(a, b *core.LexiconEntry) int {
		return strings.Compare(a.Term, b.Term)
	})
	return all, nil
}
