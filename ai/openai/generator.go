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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/marifa/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// maxAttempts bounds how often a malformed model response is re-requested.
const maxAttempts = 3

var errEmptyTerm = errors.New("openai: term is empty after scrubbing")

// EntryGenerator implements ai.EntryGenerator using OpenAI-compatible chat APIs.
type EntryGenerator struct {
	client      llms.Model
	maxExamples int
	logger      *slog.Logger
}

var _ ai.EntryGenerator = (*EntryGenerator)(nil)

// entryResponse matches the JSON object the model is asked to produce.
type entryResponse struct {
	Root       string   `json:"root"`
	Type       string   `json:"type"`
	Definition string   `json:"definition"`
	Examples   []string `json:"examples"`
}

func newEntryGenerator(config *ai.Config) (*EntryGenerator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &EntryGenerator{
		client:      client,
		maxExamples: config.MaxExamples,
		logger:      slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewEntryGenerator creates a new lexicon entry generator using the provided configuration.
//
// Returns ai.EntryGenerator interface to enforce abstraction.
func NewEntryGenerator(config *ai.Config) (ai.EntryGenerator, error) {
	return newEntryGenerator(config)
}

// GenerateEntry asks the model to describe term. A response that is not valid
// JSON, even after repair, is re-requested up to maxAttempts times; transport
// errors are returned immediately.
func (g *EntryGenerator) GenerateEntry(ctx context.Context, term string) (*ai.GeneratedEntry, error) {
	term = scrubTerm(term)
	if term == "" {
		return nil, errEmptyTerm
	}

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, buildSystemPrompt(g.maxExamples)),
		llms.TextParts(llms.ChatMessageTypeHuman, term),
	}

	var result entryResponse
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		response, err := g.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			g.logger.Error("failed to generate content", "term", term, "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			g.logger.Warn("no choices returned from model", "term", term)
			return nil, fmt.Errorf("%w: no choices for %q", ai.ErrEmptyGeneration, term)
		}

		responseText := repairJSON(stripCodeFence(response.Choices[0].Content))
		result = entryResponse{}
		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			g.logger.Warn("error parsing generator response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		g.logger.Error("failed to parse generator response after retries", "term", term, "err", lastErr)
		return nil, lastErr
	}

	return g.toEntry(result), nil
}

func (g *EntryGenerator) toEntry(r entryResponse) *ai.GeneratedEntry {
	entry := &ai.GeneratedEntry{
		Root:       strings.TrimSpace(r.Root),
		Definition: strings.TrimSpace(r.Definition),
		Examples:   make([]string, 0, len(r.Examples)),
	}
	if t := normalizeType(r.Type); ai.IsEntryType(t) {
		entry.Type = t
	} else if t != "" {
		g.logger.Debug("dropping unknown entry type", "type", r.Type)
	}
	for _, ex := range r.Examples {
		if len(entry.Examples) == g.maxExamples {
			break
		}
		if ex = strings.TrimSpace(ex); ex != "" {
			entry.Examples = append(entry.Examples, ex)
		}
	}
	return entry
}
