package graph

import (
	"context"
	"testing"

	"github.com/poiesic/marifa/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func check(t *testing.T, m Method, node *core.KnowledgeNode) Verdict {
	t.Helper()
	v, err := m.Check(context.Background(), node)
	require.NoError(t, err)
	return v
}

func TestSourceReliability(t *testing.T) {
	m := SourceReliability(DefaultSourceReliability())

	tests := []struct {
		source string
		score  float64
		pass   bool
	}{
		{"quran", 1.0, true},
		{"hadith", 0.8, true},
		{"scholar", 0.7, false},
		{"web", 0.3, false},
		{"somewhere", 0.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			v := check(t, m, core.NewKnowledgeNode("n", "concept", "x", tt.source, nil))
			assert.Equal(t, tt.score, v.Confidence)
			assert.Equal(t, tt.pass, v.Result)
		})
	}
}

func TestAttributeConsistency(t *testing.T) {
	m := AttributeConsistency()

	tests := []struct {
		name     string
		nodeType string
		attrs    map[string]any
		score    float64
		pass     bool
	}{
		{"no attributes", "person", nil, 0.5, false},
		{"two attributes", "person", map[string]any{"a": 1, "b": 2}, 0.7, true},
		{"capped", "person", map[string]any{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5, "f": 6}, 1.0, true},
		{"concept with definition", "concept", map[string]any{"definition": "x", "category": "value"}, 0.7, true},
		{"concept without definition", "concept", map[string]any{"category": "value", "x": 1}, 0.56, false},
		{"event without time", "event", map[string]any{"a": 1, "b": 2, "c": 3}, 0.64, true},
		{"event with time", "event", map[string]any{"time": "622"}, 0.6, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := check(t, m, core.NewKnowledgeNode("n", tt.nodeType, "x", "s", tt.attrs))
			assert.InDelta(t, tt.score, v.Confidence, 1e-9)
			assert.Equal(t, tt.pass, v.Result)
		})
	}
}

func TestRelationshipCoherence(t *testing.T) {
	m := RelationshipCoherence()

	t.Run("no edges", func(t *testing.T) {
		v := check(t, m, core.NewKnowledgeNode("n", "concept", "x", "s", nil))
		assert.Equal(t, 0.5, v.Confidence)
		assert.False(t, v.Result)
	})

	t.Run("edges", func(t *testing.T) {
		node := core.NewKnowledgeNode("n", "concept", "x", "s", nil)
		node.AddRelationship("a", "leads_to", 1)
		node.AddRelationship("b", "similar_to", 1)
		v := check(t, m, node)
		assert.InDelta(t, 0.6, v.Confidence, 1e-9)
		assert.True(t, v.Result)
	})

	t.Run("capped", func(t *testing.T) {
		node := core.NewKnowledgeNode("n", "concept", "x", "s", nil)
		for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
			node.AddRelationship(id, "related_to", 1)
		}
		assert.InDelta(t, 0.9, check(t, m, node).Confidence, 1e-9)
	})

	t.Run("contradiction", func(t *testing.T) {
		node := core.NewKnowledgeNode("n", "concept", "x", "s", nil)
		node.AddRelationship("a", "similar_to", 1)
		node.AddRelationship("b", "opposite_of", 1)
		v := check(t, m, node)
		assert.InDelta(t, 0.4, v.Confidence, 1e-9)
		assert.False(t, v.Result)
		assert.Equal(t, true, v.Details["contradiction"])
	})
}
