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

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/marifa"
	"github.com/poiesic/marifa/config"
	"github.com/poiesic/marifa/ingestion"
	"github.com/urfave/cli/v2"
)

const configKey = "config"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "marifa",
		Usage: "Concept exploration and verified knowledge graph for Arabic text",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error); overrides the config file",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory; overrides the config file",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "Detect patterns, entities and relationships in text",
				ArgsUsage: "TEXT",
				Action:    analyzeCommand,
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:  "min-confidence",
						Usage: "Drop relationships scoring below this value (default from config)",
					},
					&cli.BoolFlag{
						Name:  "semantic",
						Usage: "Include semantic pattern detection",
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Source tag recorded on entity references",
						Value: "text",
					},
				},
			},
			{
				Name:      "ingest",
				Usage:     "Analyze text and write its entities and relationships to the graph",
				ArgsUsage: "[TEXT]",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "source",
						Aliases:  []string{"s"},
						Usage:    "Source tag of the ingested text",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Ingest every non-empty line of the file as a separate text",
					},
					&cli.BoolFlag{
						Name:  "skip-verification",
						Usage: "Leave created nodes unverified",
					},
				},
			},
			{
				Name:      "explore",
				Usage:     "Walk related concepts from a starting concept",
				ArgsUsage: "CONCEPT",
				Action:    exploreCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "depth",
						Usage: "Maximum exploration depth (default from config)",
					},
				},
			},
			{
				Name:      "relations",
				Usage:     "Discover relations between two knowledge items",
				ArgsUsage: "SOURCE_ID TARGET_ID",
				Action:    relationsCommand,
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:  "min-confidence",
						Usage: "Drop relations scoring below this value (default from config)",
					},
				},
			},
			{
				Name:      "infer",
				Usage:     "Infer relations from one knowledge item to every other",
				ArgsUsage: "ITEM_ID",
				Action:    inferCommand,
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:  "min-confidence",
						Usage: "Drop relations scoring below this value (default from config)",
					},
				},
			},
			{
				Name:      "verify",
				Usage:     "Run every verification method against a node",
				ArgsUsage: "NODE_ID",
				Action:    verifyCommand,
			},
			{
				Name:   "reverify",
				Usage:  "Append a fresh round of verification to every node",
				Action: reverifyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "source",
						Usage: "Only reverify nodes from this source",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Find nodes by name or attribute",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
			},
			{
				Name:   "stats",
				Usage:  "Print knowledge graph statistics",
				Action: statsCommand,
			},
			{
				Name:   "export",
				Usage:  "Write a JSON snapshot of the graph or the lexicon",
				Action: exportCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output file (default stdout)",
					},
					&cli.BoolFlag{
						Name:  "lexicon",
						Usage: "Export the lexicon instead of the graph",
					},
				},
			},
			{
				Name:      "import",
				Usage:     "Load a JSON snapshot written by export",
				ArgsUsage: "FILE",
				Action:    importCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "lexicon",
						Usage: "Import a lexicon snapshot instead of a graph snapshot",
					},
				},
			},
			{
				Name:  "lexicon",
				Usage: "Query and grow the vocabulary lexicon",
				Subcommands: []*cli.Command{
					{
						Name:      "lookup",
						Usage:     "Print the stored entry for a term",
						ArgsUsage: "TERM",
						Action:    lexiconLookupCommand,
					},
					{
						Name:      "generate",
						Usage:     "Look up a term, generating and storing an entry when missing",
						ArgsUsage: "TERM",
						Action:    lexiconGenerateCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "ai-host",
								Usage: "OpenAI-compatible service host URL (default from config)",
							},
							&cli.StringFlag{
								Name:  "ai-model",
								Usage: "Generation model name (default from config)",
							},
						},
					},
					{
						Name:   "candidates",
						Usage:  "List lexicon terms usable as concept names",
						Action: lexiconCandidatesCommand,
					},
				},
			},
		},
	}
}

// setupLogger loads the configuration and installs the default logger. The
// --log-level flag wins over the configured level.
func setupLogger(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	levelStr := cfg.LogLevel
	if c.IsSet("log-level") {
		levelStr = c.String("log-level")
	}
	level, err := config.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}
	cfg.LogLevel = strings.ToLower(levelStr)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[configKey] = cfg
	return nil
}

func loadedConfig(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configKey].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

func openDatabase(c *cli.Context, opts ...marifa.DatabaseOption) (*marifa.Database, error) {
	opts = append([]marifa.DatabaseOption{marifa.WithConfig(loadedConfig(c))}, opts...)
	db, err := marifa.NewDatabase(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func requireArgs(c *cli.Context, n int) error {
	if c.NArg() != n {
		return fmt.Errorf("%s expects %d argument(s): %s", c.Command.Name, n, c.Command.ArgsUsage)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func analyzeCommand(c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	orch, err := db.NewOrchestrator()
	if err != nil {
		return err
	}
	opts := db.AnalysisOptions()
	if c.IsSet("min-confidence") {
		opts.MinConfidence = c.Float64("min-confidence")
	}
	if c.Bool("semantic") {
		opts.IncludeSemantic = true
	}
	opts.Source = c.String("source")

	result, err := orch.Analyze(c.Context, c.Args().First(), opts)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	return printJSON(c.App.Writer, result)
}

func ingestCommand(c *cli.Context) error {
	texts, err := ingestTexts(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	opts := &ingestion.IngestOptions{
		Analysis:         db.AnalysisOptions(),
		SkipVerification: c.Bool("skip-verification"),
	}
	source := c.String("source")

	var created, edges int
	for _, text := range texts {
		res, err := pipeline.Ingest(c.Context, source, text, opts)
		if err != nil {
			return fmt.Errorf("ingestion failed: %w", err)
		}
		created += len(res.Created)
		edges += res.Edges
	}
	pipeline.Wait()

	fmt.Fprintf(c.App.Writer, "Ingested %d text(s) from %s: %d node(s) created, %d relationship(s)\n",
		len(texts), source, created, edges)
	return nil
}

func ingestTexts(c *cli.Context) ([]string, error) {
	path := c.String("file")
	if path == "" {
		if c.NArg() == 0 {
			return nil, fmt.Errorf("ingest needs TEXT or --file")
		}
		return []string{strings.Join(c.Args().Slice(), " ")}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var texts []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			texts = append(texts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return texts, nil
}

func exploreCommand(c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := db.ExploreOptions()
	if c.IsSet("depth") {
		opts.MaxDepth = c.Int("depth")
	}
	record, err := db.Explorer().Explore(c.Context, c.Args().First(), opts)
	if err != nil {
		return fmt.Errorf("exploration failed: %w", err)
	}
	return printJSON(c.App.Writer, record)
}

func relationsCommand(c *cli.Context) error {
	if err := requireArgs(c, 2); err != nil {
		return err
	}
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	engine, err := db.NewReasoningEngine()
	if err != nil {
		return err
	}
	opts := db.ReasoningOptions()
	if c.IsSet("min-confidence") {
		opts.MinConfidence = c.Float64("min-confidence")
	}
	relations, err := engine.DiscoverRelations(c.Args().Get(0), c.Args().Get(1), opts)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, relations)
}

func inferCommand(c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	engine, err := db.NewReasoningEngine()
	if err != nil {
		return err
	}
	opts := db.InferOptions()
	if c.IsSet("min-confidence") {
		opts.MinConfidence = c.Float64("min-confidence")
	}
	inferences, err := engine.InferKnowledge(c.Args().First(), opts)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, inferences)
}

func verifyCommand(c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	results, err := db.Graph().VerifyNode(c.Context, c.Args().First())
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	return printJSON(c.App.Writer, results)
}

func reverifyCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	r, err := db.NewReverifier(c.String("source"), c.App.ErrWriter)
	if err != nil {
		return err
	}
	if _, err := r.Run(c.Context); err != nil {
		return fmt.Errorf("reverification failed: %w", err)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("search expects a QUERY")
	}
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	nodes, err := db.Graph().Search(c.Context, strings.Join(c.Args().Slice(), " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Found %d hits\n", len(nodes))
	for i, node := range nodes {
		fmt.Fprintf(c.App.Writer, "%d: '%s' %s (%s)[%0.3f]\n", i, node.Name, node.Type, node.ID, node.Confidence)
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := db.Graph().Statistics(c.Context)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, stats)
}

func exportCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	w := c.App.Writer
	if path := c.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}

	if c.Bool("lexicon") {
		lex, err := db.NewLexicon()
		if err != nil {
			return err
		}
		return lex.Export(c.Context, w)
	}
	return db.Graph().Export(c.Context, w)
}

func importCommand(c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	f, err := os.Open(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.Args().First(), err)
	}
	defer f.Close()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if c.Bool("lexicon") {
		lex, err := db.NewLexicon()
		if err != nil {
			return err
		}
		n, err := lex.Import(c.Context, f)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "Imported %d lexicon entries\n", n)
		return nil
	}

	n, err := db.Graph().Import(c.Context, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Imported %d nodes\n", n)
	return nil
}

func lexiconLookupCommand(c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	lex, err := db.NewLexicon()
	if err != nil {
		return err
	}
	entry, err := lex.Lookup(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, entry)
}

func lexiconGenerateCommand(c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	cfg := *loadedConfig(c)
	cfg.AI.Enabled = true
	if c.IsSet("ai-host") {
		cfg.AI.Host = c.String("ai-host")
	}
	if c.IsSet("ai-model") {
		cfg.AI.Model = c.String("ai-model")
	}

	db, err := openDatabase(c, marifa.WithConfig(&cfg))
	if err != nil {
		return err
	}
	defer db.Close()

	lex, err := db.NewLexicon()
	if err != nil {
		return err
	}
	entry, err := lex.Generate(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, entry)
}

func lexiconCandidatesCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	lex, err := db.NewLexicon()
	if err != nil {
		return err
	}
	terms, err := lex.Candidates(c.Context)
	if err != nil {
		return err
	}
	for _, term := range terms {
		fmt.Fprintln(c.App.Writer, term)
	}
	return nil
}
