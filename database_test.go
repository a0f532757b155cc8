package marifa

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/marifa/ai/mock"
	"github.com/poiesic/marifa/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		assert.NotNil(t, db.ConceptRepository())
		assert.NotNil(t, db.NodeRepository())
		assert.NotNil(t, db.LexiconRepository())
		assert.NotNil(t, db.Graph())
		assert.NotNil(t, db.Explorer())
		assert.NotNil(t, db.logger)
		assert.Nil(t, db.AIProvider())
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a database at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := config.Default()
		cfg.Exploration.MaxDepth = -1

		db, err := NewDatabase(t.TempDir(), WithConfig(cfg))
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("in memory", func(t *testing.T) {
		db, err := NewMemoryDatabase()
		require.NoError(t, err)
		defer db.Close()
		assert.True(t, db.Config().Database.InMemory)
	})
}

func TestDatabase_Close(t *testing.T) {
	provider := mock.NewMockProvider()
	db, err := NewDatabase(t.TempDir(), WithAIProvider(provider))
	require.NoError(t, err)
	require.NotNil(t, db)

	err = db.Close()
	assert.NoError(t, err)
	assert.True(t, provider.(*mock.MockProvider).Closed())
}

func TestDatabase_Options(t *testing.T) {
	cfg := config.Default()
	cfg.Analysis.MinConfidence = 0.5
	cfg.Exploration.MaxDepth = 3
	cfg.Reasoning.MinConfidence = 0.4
	cfg.Reasoning.InferMinConfidence = 0.8

	db, err := NewMemoryDatabase(WithConfig(cfg))
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 0.5, db.AnalysisOptions().MinConfidence)
	assert.Equal(t, 3, db.ExploreOptions().MaxDepth)
	assert.Equal(t, 0.4, db.ReasoningOptions().MinConfidence)
	assert.Equal(t, 0.8, db.InferOptions().MinConfidence)
	assert.Equal(t, 2, db.InferOptions().MaxDepth)
}

func TestDatabase_FactoryMethods(t *testing.T) {
	provider := mock.NewMockProvider()
	db, err := NewMemoryDatabase(WithAIProvider(provider))
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	t.Run("can create ingestion pipeline", func(t *testing.T) {
		pipeline, err := db.NewIngestionPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		defer pipeline.Release()

		res, err := pipeline.Ingest(ctx, "quran", "قال موسى لفرعون في مصر إن التقوى خير", nil)
		require.NoError(t, err)
		pipeline.Wait()
		assert.Len(t, res.Created, 3)

		concepts, err := db.ConceptRepository().GetAllConcepts(ctx)
		require.NoError(t, err)
		assert.Len(t, concepts, 3)
	})

	t.Run("can create reverifier", func(t *testing.T) {
		r, err := db.NewReverifier("quran", nil)
		require.NoError(t, err)

		summary, err := r.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, summary.Total)
		assert.Equal(t, 3, summary.Verified)
	})

	t.Run("can create lexicon with generator", func(t *testing.T) {
		lex, err := db.NewLexicon()
		require.NoError(t, err)

		entry, err := lex.Generate(ctx, "التقوى")
		require.NoError(t, err)
		assert.Equal(t, "التقوى", entry.Term)
		assert.True(t, entry.Generated)
		assert.Equal(t, 1, provider.(*mock.MockProvider).GetMockGenerator().CallCount())
	})

	t.Run("can create reasoning engine", func(t *testing.T) {
		engine, err := db.NewReasoningEngine()
		require.NoError(t, err)
		assert.NotEmpty(t, engine.Items())
	})

	t.Run("can create orchestrator", func(t *testing.T) {
		orch, err := db.NewOrchestrator()
		require.NoError(t, err)
		res, err := orch.Analyze(ctx, "إن التقوى خير", db.AnalysisOptions())
		require.NoError(t, err)
		assert.NotEmpty(t, res.Entities)
	})
}
