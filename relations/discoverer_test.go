package relations

import (
	"testing"

	"github.com/poiesic/marifa/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entity(id string, entityType core.EntityType, attrs map[string]any, starts ...int) core.Entity {
	refs := make([]core.Reference, len(starts))
	for i, s := range starts {
		refs[i] = core.Reference{Text: id, Source: "test", Start: s, End: s + len(id)}
	}
	return core.Entity{ID: id, Type: entityType, Name: id, Attributes: attrs, References: refs}
}

func newTestDiscoverer(t *testing.T, opts ...Option) *Discoverer {
	t.Helper()
	d, err := NewDiscoverer(opts...)
	require.NoError(t, err)
	return d
}

func ofType(rels []core.Relationship, relType string) []core.Relationship {
	var out []core.Relationship
	for _, r := range rels {
		if r.Type == relType {
			out = append(out, r)
		}
	}
	return out
}

func TestProximityScore(t *testing.T) {
	assert.Equal(t, 1.0, ProximityScore(0))
	assert.InDelta(t, 0.5, ProximityScore(50), 1e-9)
	assert.Equal(t, 0.0, ProximityScore(100))
	assert.Equal(t, 0.0, ProximityScore(250))
}

func TestAttributeSimilarity(t *testing.T) {
	a := map[string]any{"category": "value", "role": "x"}
	b := map[string]any{"category": "value", "role": "y", "extra": 1}

	assert.InDelta(t, 0.5, AttributeSimilarity(a, b), 1e-9)
	assert.Equal(t, 1.0, AttributeSimilarity(a, a))
	assert.Equal(t, 0.0, AttributeSimilarity(a, nil))
}

func TestDiscover_Proximity(t *testing.T) {
	d := newTestDiscoverer(t)
	text := "abcdefghijklmnopqrstuvwxyz"

	entities := []core.Entity{
		entity("a", core.EntityPlace, nil, 0),
		entity("b", core.EntityPlace, nil, 10, 200),
		entity("c", core.EntityPlace, nil, 40),
		entity("d", core.EntityPlace, nil, 79),
	}

	found := ofType(d.Discover(entities, text, &Options{MinConfidence: 0}), TypeCoOccursWith)

	pairs := map[string]float64{}
	for _, r := range found {
		pairs[r.SourceID+"-"+r.TargetID] = r.Confidence
	}

	assert.InDelta(t, 0.9, pairs["a-b"], 1e-9)
	assert.InDelta(t, 0.7, pairs["b-c"], 1e-9)
	assert.InDelta(t, 0.61, pairs["c-d"], 1e-9)
	// Exactly 0.6 does not exceed the threshold.
	assert.NotContains(t, pairs, "a-c")
	assert.NotContains(t, pairs, "a-d")
	assert.Len(t, pairs, 3)

	for _, r := range found {
		require.Len(t, r.Evidence, 1)
		assert.Equal(t, "test", r.Evidence[0].Source)
	}
}

func TestDiscover_HasAttribute(t *testing.T) {
	d := newTestDiscoverer(t)

	entities := []core.Entity{
		entity("prophet", core.EntityPerson, map[string]any{"category": "prophet"}, 0),
		entity("justice", core.EntityAttribute, map[string]any{"category": "value"}, 500),
		entity("courage", core.EntityAttribute, map[string]any{"category": "prophet"}, 600),
		entity("fertile", core.EntityAttribute, map[string]any{"category": "land"}, 700),
		entity("egypt", core.EntityPlace, map[string]any{"category": "land"}, 800),
	}

	found := ofType(d.Discover(entities, "", nil), TypeHasAttribute)
	require.Len(t, found, 2)
	assert.Equal(t, "justice", found[0].TargetID)
	assert.Equal(t, "courage", found[1].TargetID)
	for _, r := range found {
		assert.Equal(t, "prophet", r.SourceID)
		assert.Equal(t, attributeConfidence, r.Confidence)
	}
}

func TestDiscover_TypePairs(t *testing.T) {
	d := newTestDiscoverer(t)

	attrs := map[string]any{"category": "history", "era": "early"}
	entities := []core.Entity{
		entity("hijra", core.EntityEvent, attrs, 0),
		entity("madina", core.EntityPlace, attrs, 1000),
		entity("makka", core.EntityPlace, map[string]any{"category": "city", "era": "early"}, 2000),
	}

	found := d.Discover(entities, "", &Options{MinConfidence: 0})
	occurred := ofType(found, "occurred_in")
	require.Len(t, occurred, 2)
	assert.Equal(t, "madina", occurred[0].TargetID)
	assert.InDelta(t, 0.8, occurred[0].Confidence, 1e-9)
	assert.Equal(t, "makka", occurred[1].TargetID)
	assert.InDelta(t, 0.4, occurred[1].Confidence, 1e-9)

	// Default threshold keeps only the fully similar pair.
	kept := ofType(d.Discover(entities, "", nil), "occurred_in")
	require.Len(t, kept, 1)
	assert.Equal(t, "madina", kept[0].TargetID)
}

func TestDiscover_PassOrder(t *testing.T) {
	d := newTestDiscoverer(t)

	attrs := map[string]any{"category": "value"}
	entities := []core.Entity{
		entity("taqwa", core.EntityConcept, attrs, 0),
		entity("sabr", core.EntityConcept, attrs, 5),
		entity("adl", core.EntityAttribute, attrs, 900),
	}

	found := d.Discover(entities, "", &Options{MinConfidence: 0.7})
	types := make([]string, len(found))
	for i, r := range found {
		types[i] = r.Type
	}
	assert.Equal(t, []string{
		TypeCoOccursWith,
		TypeHasAttribute, TypeHasAttribute,
		"related_to", "related_to",
	}, types)
}

func TestDiscover_MinConfidenceFilter(t *testing.T) {
	d := newTestDiscoverer(t)

	entities := []core.Entity{
		entity("a", core.EntityPlace, nil, 0),
		entity("b", core.EntityPlace, nil, 20),
	}
	assert.Len(t, d.Discover(entities, "", &Options{MinConfidence: 0.8}), 1)
	assert.Empty(t, d.Discover(entities, "", &Options{MinConfidence: 0.81}))
}

func TestWithTypeRules_RejectsBadConfidence(t *testing.T) {
	_, err := NewDiscoverer(WithTypeRules([]TypeRule{{Source: core.EntityPerson, Target: core.EntityPlace, Relation: "x", Confidence: 2}}))
	assert.ErrorIs(t, err, core.ErrConfidenceOutOfRange)
}
