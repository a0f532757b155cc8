package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/poiesic/marifa/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const verse = "قال موسى لفرعون في مصر إن التقوى خير"

// run executes the marifa app against dbPath and returns its stdout.
func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"marifa", "--db", dbPath}, args...))
	return out.String(), err
}

func findFlag[T cli.Flag](cmd *cli.Command, name string) T {
	var zero T
	for _, flag := range cmd.Flags {
		if f, ok := flag.(T); ok && slices.Contains(flag.Names(), name) {
			return f
		}
	}
	return zero
}

func command(t *testing.T, app *cli.App, name string) *cli.Command {
	t.Helper()
	cmd := app.Command(name)
	require.NotNil(t, cmd, "command %s", name)
	return cmd
}

func TestCommands(t *testing.T) {
	app := newApp()
	for _, name := range []string{
		"analyze", "ingest", "explore", "relations", "infer", "verify",
		"reverify", "search", "stats", "export", "import", "lexicon",
	} {
		command(t, app, name)
	}

	lex := command(t, app, "lexicon")
	for _, name := range []string{"lookup", "generate", "candidates"} {
		assert.NotNil(t, lex.Command(name), "lexicon %s", name)
	}
}

func TestIngestCommandFlags(t *testing.T) {
	app := newApp()
	cmd := command(t, app, "ingest")

	t.Run("source is required", func(t *testing.T) {
		f := findFlag[*cli.StringFlag](cmd, "source")
		require.NotNil(t, f)
		assert.True(t, f.Required)
		assert.Contains(t, f.Aliases, "s")
	})

	t.Run("missing source fails", func(t *testing.T) {
		_, err := run(t, t.TempDir(), "ingest", verse)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "source")
	})

	t.Run("missing text fails", func(t *testing.T) {
		_, err := run(t, t.TempDir(), "ingest", "--source", "quran")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TEXT or --file")
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := run(t, t.TempDir(), "ingest", "--source", "quran", "--file", filepath.Join(t.TempDir(), "nope.txt"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open")
	})
}

func TestArgumentValidation(t *testing.T) {
	dbPath := t.TempDir()
	for _, args := range [][]string{
		{"analyze"},
		{"explore"},
		{"relations", "taqwa"},
		{"infer"},
		{"verify"},
		{"import"},
		{"lexicon", "lookup"},
	} {
		_, err := run(t, dbPath, args...)
		require.Error(t, err, "%v", args)
		assert.Contains(t, err.Error(), "expects", "%v", args)
	}
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "analyze", verse)
	require.NoError(t, err)

	var result struct {
		Text     string `json:"text"`
		Entities []struct {
			Name string `json:"name"`
		} `json:"entities"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, verse, result.Text)
	assert.Len(t, result.Entities, 3)
}

func TestIngestAndQuery(t *testing.T) {
	dbPath := t.TempDir()

	out, err := run(t, dbPath, "ingest", "--source", "quran", verse)
	require.NoError(t, err)
	assert.Contains(t, out, "3 node(s) created")

	out, err = run(t, dbPath, "stats")
	require.NoError(t, err)
	var stats graph.Statistics
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 3, stats.NodeCount)
	assert.Equal(t, 1, stats.SourceCount)

	out, err = run(t, dbPath, "search", "موسى")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 hits")

	out, err = run(t, dbPath, "explore", "التقوى")
	require.NoError(t, err)
	assert.Contains(t, out, "completed")

	_, err = run(t, dbPath, "reverify", "--source", "quran")
	require.NoError(t, err)

	snapshot := filepath.Join(t.TempDir(), "graph.json")
	_, err = run(t, dbPath, "export", "--out", snapshot)
	require.NoError(t, err)

	out, err = run(t, t.TempDir(), "import", snapshot)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 nodes")
}

func TestIngestFromFile(t *testing.T) {
	dbPath := t.TempDir()
	file := filepath.Join(t.TempDir(), "verses.txt")
	require.NoError(t, os.WriteFile(file, []byte(verse+"\n\nإن التقوى خير\n"), 0644))

	out, err := run(t, dbPath, "ingest", "--source", "quran", "--file", file, "--skip-verification")
	require.NoError(t, err)
	assert.Contains(t, out, "Ingested 2 text(s)")
	assert.Contains(t, out, "3 node(s) created")
}

func TestLexiconCommands(t *testing.T) {
	dbPath := t.TempDir()

	_, err := run(t, dbPath, "lexicon", "lookup", "التقوى")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	snapshot := filepath.Join(t.TempDir(), "lexicon.json")
	require.NoError(t, os.WriteFile(snapshot, []byte(`{"version":1,"entries":[{"term":"التقوى","root":"و ق ي","type":"noun"}]}`), 0644))

	out, err := run(t, dbPath, "import", "--lexicon", snapshot)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 lexicon entries")

	out, err = run(t, dbPath, "lexicon", "lookup", "التقوى")
	require.NoError(t, err)
	assert.Contains(t, out, "و ق ي")

	out, err = run(t, dbPath, "lexicon", "candidates")
	require.NoError(t, err)
	assert.Equal(t, "التقوى\n", out)
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			level    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"warn", slog.LevelWarn},
			{"error", slog.LevelError},
			{"DEBUG", slog.LevelDebug},
			{"INFO", slog.LevelInfo},
		}

		for _, tc := range testCases {
			t.Run(tc.level, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "log-level"},
						&cli.StringFlag{Name: "config"},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						assert.True(t, slog.Default().Enabled(c.Context, tc.expected))
						if tc.expected > slog.LevelDebug {
							assert.False(t, slog.Default().Enabled(c.Context, tc.expected-1))
						}
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc.level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "log-level"},
				&cli.StringFlag{Name: "config"},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error { return nil },
		}

		err := app.Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
		assert.Contains(t, err.Error(), "invalid")
	})

	t.Run("level from config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "marifa.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0644))

		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "log-level"},
				&cli.StringFlag{Name: "config"},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				assert.Equal(t, "warn", loadedConfig(c).LogLevel)
				assert.False(t, slog.Default().Enabled(c.Context, slog.LevelInfo))
				return nil
			},
		}

		err := app.Run([]string{"test", "--config", path})
		require.NoError(t, err)
	})

	t.Run("missing config file", func(t *testing.T) {
		app := newApp()
		app.Action = func(c *cli.Context) error { return nil }
		err := app.Run([]string{"marifa", "--config", filepath.Join(t.TempDir(), "missing.yaml")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "open config")
	})

	t.Run("log-level flag has alias -l", func(t *testing.T) {
		app := newApp()
		app.Action = func(c *cli.Context) error {
			assert.Equal(t, "debug", c.String("log-level"))
			assert.Equal(t, "debug", loadedConfig(c).LogLevel)
			return nil
		}

		err := app.Run([]string{"marifa", "-l", "debug"})
		require.NoError(t, err)
	})
}

func TestMain(m *testing.M) {
	code := m.Run()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	os.Exit(code)
}
