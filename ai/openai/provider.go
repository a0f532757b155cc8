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
	"log/slog"

	"github.com/poiesic/marifa/ai"
)

// Provider implements ai.AIProvider using OpenAI-compatible services.
type Provider struct {
	config    *ai.Config
	generator *EntryGenerator
	logger    *slog.Logger
}

// NewProvider validates config and connects the entry generator to the
// configured OpenAI-compatible endpoint.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	generator, err := newEntryGenerator(config)
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("component", "openai-provider")
	logger.Debug("entry generator ready", "host", config.Host, "model", config.Model)

	return &Provider{
		config:    config,
		generator: generator,
		logger:    logger,
	}, nil
}

// Model returns the generation model name.
func (p *Provider) Model() string {
	return p.config.Model
}

// EntryGenerator returns the lexicon entry generation service.
func (p *Provider) EntryGenerator() ai.EntryGenerator {
	return p.generator
}

// Close releases resources held by the provider. The HTTP client needs no cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider", "model", p.config.Model)
	return nil
}
