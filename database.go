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

package marifa

import (
	"io"
	"log/slog"

	"github.com/poiesic/marifa/ai"
	"github.com/poiesic/marifa/ai/openai"
	"github.com/poiesic/marifa/analysis"
	"github.com/poiesic/marifa/config"
	"github.com/poiesic/marifa/explore"
	"github.com/poiesic/marifa/graph"
	"github.com/poiesic/marifa/ingestion"
	"github.com/poiesic/marifa/lexicon"
	"github.com/poiesic/marifa/reasoning"
	"github.com/poiesic/marifa/reverify"
	"github.com/poiesic/marifa/storage"
	"github.com/poiesic/marifa/storage/badger"
)

// Database opens the stores of one engine instance and hands out services
// configured from a config.Config. The knowledge graph integrator and the
// concept explorer are shared by every service the Database creates.
type Database struct {
	repos    *badger.Repositories
	config   *config.Config
	provider ai.AIProvider
	graph    *graph.Integrator
	explorer *explore.Explorer
	logger   *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	config   *config.Config
	provider ai.AIProvider
}

// WithConfig sets the engine configuration. Default is config.Default().
func WithConfig(cfg *config.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.config = cfg
	}
}

// WithAIProvider sets the provider backing lexicon generation, overriding
// the provider built from the ai section of the configuration.
func WithAIProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// NewDatabase opens the database at filePath. An empty filePath falls back
// to the configured database path, or to an in-memory store when the
// configuration asks for one.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{}
	for _, opt := range opts {
		opt(options)
	}
	cfg := config.Default()
	if options.config != nil {
		copied := *options.config
		cfg = &copied
	}
	if filePath != "" {
		cfg.Database.Path, cfg.Database.InMemory = filePath, false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	filePath, inMemory := cfg.Database.Path, cfg.Database.InMemory
	if inMemory {
		filePath = ""
	}

	backend, err := badger.OpenBackend(filePath, inMemory)
	if err != nil {
		return nil, err
	}

	repos, err := badger.NewRepositories(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	db := &Database{
		repos:    repos,
		config:   cfg,
		provider: options.provider,
		logger:   slog.Default().With("component", "database"),
	}

	if db.provider == nil && cfg.AI.Enabled {
		db.provider, err = openai.NewProvider(cfg.AIConfig())
		if err != nil {
			repos.Close()
			return nil, err
		}
	}

	graphOpts := []graph.Option{}
	if cfg.Verification.PoolSize > 0 {
		graphOpts = append(graphOpts, graph.WithPoolSize(cfg.Verification.PoolSize))
	}
	if len(cfg.Verification.SourceReliability) > 0 {
		graphOpts = append(graphOpts, graph.WithSourceReliability(cfg.Verification.SourceReliability))
	}
	db.graph, err = graph.NewIntegrator(repos.Nodes, graphOpts...)
	if err != nil {
		db.closeProvider()
		repos.Close()
		return nil, err
	}

	db.explorer, err = explore.NewExplorer(repos.Concepts)
	if err != nil {
		db.graph.Release()
		db.closeProvider()
		repos.Close()
		return nil, err
	}

	return db, nil
}

// NewMemoryDatabase opens an in-memory database.
func NewMemoryDatabase(opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{}
	for _, opt := range opts {
		opt(options)
	}
	cfg := config.Default()
	if options.config != nil {
		copied := *options.config
		cfg = &copied
	}
	cfg.Database.InMemory = true
	return NewDatabase("", append(opts, WithConfig(cfg))...)
}

func (db *Database) closeProvider() {
	if db.provider == nil {
		return
	}
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}
}

// Close releases the worker pools, the AI provider and the stores.
func (db *Database) Close() error {
	db.graph.Release()
	db.closeProvider()

	if err := db.repos.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Config returns the configuration the database was opened with.
func (db *Database) Config() *config.Config {
	return db.config
}

func (db *Database) ConceptRepository() storage.ConceptRepository {
	return db.repos.Concepts
}

func (db *Database) NodeRepository() storage.NodeRepository {
	return db.repos.Nodes
}

func (db *Database) LexiconRepository() storage.LexiconRepository {
	return db.repos.Lexicon
}

// Graph returns the shared knowledge graph integrator.
func (db *Database) Graph() *graph.Integrator {
	return db.graph
}

// Explorer returns the shared concept explorer.
func (db *Database) Explorer() *explore.Explorer {
	return db.explorer
}

// AIProvider returns the lexicon generation provider, or nil when generation is disabled.
func (db *Database) AIProvider() ai.AIProvider {
	return db.provider
}

func (db *Database) NewOrchestrator(opts ...analysis.Option) (*analysis.Orchestrator, error) {
	return analysis.NewOrchestrator(opts...)
}

func (db *Database) NewReasoningEngine(opts ...reasoning.Option) (*reasoning.Engine, error) {
	return reasoning.NewEngine(opts...)
}

// NewIngestionPipeline creates a pipeline writing to the shared graph and
// registering entities in the concept store.
func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	orch, err := db.NewOrchestrator()
	if err != nil {
		return nil, err
	}
	base := []ingestion.Option{ingestion.WithConceptRepository(db.repos.Concepts)}
	if db.config.Ingestion.PoolSize > 0 {
		base = append(base, ingestion.WithPoolSize(db.config.Ingestion.PoolSize))
	}
	return ingestion.NewPipeline(orch, db.graph, append(base, opts...)...)
}

// NewLexicon creates a lexicon service, wired to the AI provider's entry
// generator when one is configured.
func (db *Database) NewLexicon(opts ...lexicon.Option) (*lexicon.Service, error) {
	base := []lexicon.Option{}
	if db.provider != nil {
		base = append(base, lexicon.WithGenerator(db.provider.EntryGenerator()))
	}
	return lexicon.NewService(db.repos.Lexicon, append(base, opts...)...)
}

// NewReverifier creates a reverification sweep over the shared graph.
// source restricts the sweep when non-empty; progress may be nil.
func (db *Database) NewReverifier(source string, progress io.Writer) (*reverify.Reverifier, error) {
	rc := db.config.Reverify
	return reverify.NewReverifier(db.repos.Nodes, db.graph, &reverify.Config{
		BatchSize:      rc.BatchSize,
		ReportInterval: rc.BatchSize,
		Concurrency:    rc.Concurrency,
		MaxRetries:     rc.MaxRetries,
		RetryDelay:     rc.RetryDelay,
		Source:         source,
	}, progress)
}

// AnalysisOptions returns per-call analysis options from the configuration.
func (db *Database) AnalysisOptions() *analysis.Options {
	return &analysis.Options{
		MinConfidence:   db.config.Analysis.MinConfidence,
		IncludeSemantic: db.config.Analysis.IncludeSemantic,
	}
}

// ExploreOptions returns per-call exploration options from the configuration.
func (db *Database) ExploreOptions() *explore.Options {
	return &explore.Options{MaxDepth: db.config.Exploration.MaxDepth}
}

// ReasoningOptions returns relation discovery options from the configuration.
func (db *Database) ReasoningOptions() *reasoning.Options {
	return &reasoning.Options{MinConfidence: db.config.Reasoning.MinConfidence}
}

// InferOptions returns inference options from the configuration.
func (db *Database) InferOptions() *reasoning.InferOptions {
	opts := reasoning.DefaultInferOptions()
	opts.MinConfidence = db.config.Reasoning.InferMinConfidence
	return opts
}
