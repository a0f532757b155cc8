package badger

import (
	"context"
	"testing"

	"github.com/poiesic/marifa/core"
	"github.com/poiesic/marifa/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexiconRepository_AddAndFind(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	added, err := repos.Lexicon.AddEntries(ctx,
		&core.LexiconEntry{Term: "صبر", Root: "ص ب ر", Type: "noun", Definition: "patience"},
		&core.LexiconEntry{Term: "صابر", Root: "ص ب ر", Type: "noun", Definition: "patient one"},
		&core.LexiconEntry{Term: "تقوى", Root: "و ق ي", Type: "noun"},
	)
	require.NoError(t, err)
	require.Len(t, added, 3)
	assert.Equal(t, core.IDFromContent("صبر"), added[0].Id)
	assert.False(t, added[0].InsertedAt.IsZero())

	entry, err := repos.Lexicon.FindByTerm(ctx, "صبر")
	require.NoError(t, err)
	assert.Equal(t, "patience", entry.Definition)

	byID, err := repos.Lexicon.GetEntry(ctx, entry.Id)
	require.NoError(t, err)
	assert.Equal(t, "صبر", byID.Term)

	siblings, err := repos.Lexicon.FindByRoot(ctx, "ص ب ر")
	require.NoError(t, err)
	terms := []string{}
	for _, s := range siblings {
		terms = append(terms, s.Term)
	}
	assert.ElementsMatch(t, []string{"صبر", "صابر"}, terms)

	all, err := repos.Lexicon.AllEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestLexiconRepository_ReplaceKeepsInsertedAt(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	first, err := repos.Lexicon.AddEntries(ctx, &core.LexiconEntry{Term: "رحمة", Root: "ر ح م"})
	require.NoError(t, err)
	inserted := first[0].InsertedAt

	_, err = repos.Lexicon.AddEntries(ctx, &core.LexiconEntry{Term: "رحمة", Root: "ر ح م ن", Definition: "mercy"})
	require.NoError(t, err)

	got, err := repos.Lexicon.FindByTerm(ctx, "رحمة")
	require.NoError(t, err)
	assert.Equal(t, "mercy", got.Definition)
	assert.True(t, inserted.Equal(got.InsertedAt))

	old, err := repos.Lexicon.FindByRoot(ctx, "ر ح م")
	require.NoError(t, err)
	assert.Empty(t, old)
}

func TestLexiconRepository_Missing(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	_, err = repos.Lexicon.FindByTerm(ctx, "nothing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = repos.Lexicon.GetEntry(ctx, 99)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = repos.Lexicon.AddEntries(ctx, &core.LexiconEntry{})
	assert.ErrorIs(t, err, core.ErrValidation)
}
