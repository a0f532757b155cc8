package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/marifa/core"
	"github.com/poiesic/marifa/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeRepository_PutAndGet(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	node := core.NewKnowledgeNode("n1", "concept", "التقوى", "quran", map[string]any{"category": "value"})
	node.AddRelationship("n2", "leads_to", 0.8)

	require.NoError(t, repos.Nodes.PutNodes(ctx, node))

	got, err := repos.Nodes.GetNode(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "التقوى", got.Name)
	assert.Equal(t, "quran", got.Source)
	assert.Equal(t, 1.0, got.Confidence)
	assert.Equal(t, core.Edge{Type: "leads_to", Confidence: 0.8}, got.Relationships["n2"])
	assert.Equal(t, "value", got.Attributes["category"])
}

func TestNodeRepository_GetNodeMissing(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	_, err = repos.Nodes.GetNode(context.Background(), "nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestNodeRepository_PutNodesAtomic(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	good := core.NewKnowledgeNode("good", "concept", "الصبر", "quran", nil)
	bad := core.NewKnowledgeNode("bad", "concept", "x", "quran", nil)
	bad.Confidence = 1.5

	err = repos.Nodes.PutNodes(ctx, good, bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrValidation))

	count, err := repos.Nodes.CountNodes(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNodeRepository_SourceIndex(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	a := core.NewKnowledgeNode("a", "concept", "a", "quran", nil)
	b := core.NewKnowledgeNode("b", "concept", "b", "quran", nil)
	c := core.NewKnowledgeNode("c", "concept", "c", "hadith", nil)
	require.NoError(t, repos.Nodes.PutNodes(ctx, a, b, c))

	ids, err := repos.Nodes.NodeIDsBySource(ctx, "quran")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	// Moving a node to another source updates the index
	b.Source = "hadith"
	require.NoError(t, repos.Nodes.PutNodes(ctx, b))

	ids, err = repos.Nodes.NodeIDsBySource(ctx, "quran")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids)

	ids, err = repos.Nodes.NodeIDsBySource(ctx, "hadith")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"b", "c"}, ids)
}

func TestNodeRepository_ForEachAndCount(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	for _, id := range []string{"n1", "n2", "n3"} {
		require.NoError(t, repos.Nodes.PutNodes(ctx, core.NewKnowledgeNode(id, "concept", id, "s", nil)))
	}

	var seen []string
	err = repos.Nodes.ForEachNode(ctx, func(n *core.KnowledgeNode) error {
		seen = append(seen, n.ID)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"n1", "n2", "n3"}, seen)

	count, err := repos.Nodes.CountNodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	got, err := repos.Nodes.GetNodes(ctx, "n3", "missing", "n1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "n3", got[0].ID)
	assert.Equal(t, "n1", got[1].ID)

	stop := errors.New("stop")
	err = repos.Nodes.ForEachNode(ctx, func(*core.KnowledgeNode) error { return stop })
	assert.ErrorIs(t, err, stop)
}
