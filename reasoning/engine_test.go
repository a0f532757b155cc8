package reasoning

import (
	"testing"

	"github.com/poiesic/marifa/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(opts...)
	require.NoError(t, err)
	return e
}

func relationTypes(rels []core.Relationship) []string {
	out := make([]string, len(rels))
	for i, r := range rels {
		out[i] = r.Type
	}
	return out
}

func TestDiscoverRelations_NotFound(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.DiscoverRelations("taqwa", "missing", nil)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = e.DiscoverRelations("missing", "taqwa", nil)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestDiscoverRelations_CategoryBoostsTypeMatch(t *testing.T) {
	e := newTestEngine(t)

	rels, err := e.DiscoverRelations("taqwa", "sabr", nil)
	require.NoError(t, err)
	require.Len(t, rels, 1)

	assert.Equal(t, TypeSimilarTo, rels[0].Type)
	assert.InDelta(t, 0.8, rels[0].Confidence, 1e-9)
	require.Len(t, rels[0].Evidence, 2)
	assert.Equal(t, "type", rels[0].Evidence[0].Source)
	assert.Equal(t, "category", rels[0].Evidence[1].Source)
}

func TestDiscoverRelations_CategoryWithoutTypeMatch(t *testing.T) {
	e := newTestEngine(t, WithKnowledgeItems([]core.KnowledgeItem{
		{ID: "a", Type: "concept", Name: "a", Attributes: map[string]any{"category": "virtue"}},
		{ID: "b", Type: "practice", Name: "b", Attributes: map[string]any{"category": "virtue"}},
	}))

	rels, err := e.DiscoverRelations("a", "b", nil)
	require.NoError(t, err)
	require.Len(t, rels, 1)
	assert.Equal(t, TypeSimilarTo, rels[0].Type)
	assert.InDelta(t, 0.7, rels[0].Confidence, 1e-9)
}

func TestDiscoverRelations_BoostClamped(t *testing.T) {
	e := newTestEngine(t,
		WithKnowledgeItems([]core.KnowledgeItem{
			{ID: "a", Type: "concept", Name: "a", Attributes: map[string]any{"category": "virtue"}},
			{ID: "b", Type: "concept", Name: "b", Attributes: map[string]any{"category": "virtue"}},
		}),
		WithRules([]Rule{}),
	)

	rels, err := e.DiscoverRelations("a", "b", nil)
	require.NoError(t, err)
	for _, r := range rels {
		assert.LessOrEqual(t, r.Confidence, 1.0)
	}
}

func TestDiscoverRelations_Opposites(t *testing.T) {
	e := newTestEngine(t)

	rels, err := e.DiscoverRelations("taqwa", "fujur", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{TypeSimilarTo, TypeOppositeOf, TypeContrastsWith}, relationTypes(rels))
	assert.InDelta(t, 0.6, rels[0].Confidence, 1e-9)
	assert.InDelta(t, 0.85, rels[1].Confidence, 1e-9)
	assert.InDelta(t, 0.75, rels[2].Confidence, 1e-9)
}

func TestDiscoverRelations_Implication(t *testing.T) {
	e := newTestEngine(t)

	rels, err := e.DiscoverRelations("taqwa", "falah", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{TypeSimilarTo, TypeLeadsTo, TypeImplies}, relationTypes(rels))
	assert.InDelta(t, 0.9, rels[2].Confidence, 1e-9)
	assert.Equal(t, "taqwa", rels[2].SourceID)
	assert.Equal(t, "falah", rels[2].TargetID)

	// Implications are directional.
	back, err := e.DiscoverRelations("falah", "taqwa", nil)
	require.NoError(t, err)
	assert.NotContains(t, relationTypes(back), TypeImplies)
}

func TestDiscoverRelations_Exemplifies(t *testing.T) {
	e := newTestEngine(t)

	rels, err := e.DiscoverRelations("musa", "sabr", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{TypeExemplifies}, relationTypes(rels))
}

func TestDiscoverRelations_MinConfidence(t *testing.T) {
	e := newTestEngine(t)

	rels, err := e.DiscoverRelations("taqwa", "fujur", &Options{MinConfidence: 0.8})
	require.NoError(t, err)
	assert.Equal(t, []string{TypeOppositeOf}, relationTypes(rels))
}

func TestInferKnowledge(t *testing.T) {
	e := newTestEngine(t)

	inferences, err := e.InferKnowledge("taqwa", nil)
	require.NoError(t, err)
	require.NotEmpty(t, inferences)

	targets := map[string][]string{}
	for _, inf := range inferences {
		assert.Equal(t, "taqwa", inf.SourceID)
		assert.NotEqual(t, "taqwa", inf.TargetID)
		assert.Equal(t, 1, inf.Depth)
		assert.GreaterOrEqual(t, inf.Relation.Confidence, 0.7)
		targets[inf.TargetID] = append(targets[inf.TargetID], inf.Relation.Type)
	}

	assert.Equal(t, []string{TypeSimilarTo}, targets["sabr"])
	assert.Equal(t, []string{TypeLeadsTo, TypeImplies}, targets["falah"])
	assert.Equal(t, []string{TypeOppositeOf, TypeContrastsWith}, targets["fujur"])
}

func TestInferKnowledge_MaxDepthHasNoEffect(t *testing.T) {
	e := newTestEngine(t)

	shallow, err := e.InferKnowledge("tawba", &InferOptions{MinConfidence: 0.7, MaxDepth: 1})
	require.NoError(t, err)
	deep, err := e.InferKnowledge("tawba", &InferOptions{MinConfidence: 0.7, MaxDepth: 5})
	require.NoError(t, err)
	assert.Equal(t, shallow, deep)
}

func TestInferKnowledge_NotFound(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.InferKnowledge("missing", nil)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestNewEngine_DuplicateItems(t *testing.T) {
	_, err := NewEngine(WithKnowledgeItems([]core.KnowledgeItem{{ID: "a"}, {ID: "a"}}))
	assert.ErrorIs(t, err, ErrDuplicateItem)
}

func TestItems(t *testing.T) {
	e := newTestEngine(t)

	items := e.Items()
	require.Len(t, items, len(defaultItems))
	assert.Equal(t, "taqwa", items[0].ID)

	item, err := e.Item("musa")
	require.NoError(t, err)
	assert.Equal(t, "موسى", item.Name)
}
