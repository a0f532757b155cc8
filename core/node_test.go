package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKnowledgeNode(t *testing.T) {
	n := NewKnowledgeNode("n1", "concept", "تقوى", "quran", nil)

	assert.Equal(t, 1.0, n.Confidence)
	assert.NotNil(t, n.Attributes)
	assert.NotNil(t, n.Relationships)
	assert.Empty(t, n.VerificationResults)
	assert.False(t, n.IsVerified())
}

func TestAddRelationshipOverwrites(t *testing.T) {
	n := NewKnowledgeNode("n1", "concept", "a", "quran", nil)

	n.AddRelationship("n2", "similar_to", 0.8)
	n.AddRelationship("n2", "opposite_of", 0.4)

	require.Len(t, n.Relationships, 1)
	assert.Equal(t, Edge{Type: "opposite_of", Confidence: 0.4}, n.Relationships["n2"])
	assert.True(t, n.HasRelationshipType("opposite_of"))
	assert.False(t, n.HasRelationshipType("similar_to"))
}

func TestAddVerificationResult(t *testing.T) {
	t.Run("negative result lowers confidence from 1.0", func(t *testing.T) {
		n := NewKnowledgeNode("n1", "concept", "a", "quran", nil)
		n.AddVerificationResult("source_reliability", false, 0.5, nil)

		assert.Less(t, n.Confidence, 1.0)
		// score = (-0.5 + 0.5) / 1.0 = 0, confidence = 0.3*1.0 + 0.7*0
		assert.InDelta(t, 0.3, n.Confidence, 1e-9)
		assert.True(t, n.IsVerified())
	})

	t.Run("zero-weight negative result still lowers confidence", func(t *testing.T) {
		n := NewKnowledgeNode("n1", "concept", "a", "quran", nil)
		n.AddVerificationResult("m", false, 0, nil)

		assert.Less(t, n.Confidence, 1.0)
		assert.InDelta(t, 0.65, n.Confidence, 1e-9)
	})

	t.Run("positive results blend with previous confidence", func(t *testing.T) {
		n := NewKnowledgeNode("n1", "concept", "a", "quran", nil)
		n.AddVerificationResult("a", true, 0.9, nil)
		assert.InDelta(t, 1.0, n.Confidence, 1e-9)

		n.AddVerificationResult("b", false, 0.3, nil)
		// score = (0.9 - 0.3 + 1.2) / 2.4 = 0.75
		assert.InDelta(t, 0.3*1.0+0.7*0.75, n.Confidence, 1e-9)
	})

	t.Run("confidence stays in [0,1] for any sequence", func(t *testing.T) {
		n := NewKnowledgeNode("n1", "concept", "a", "quran", nil)
		inputs := []struct {
			result bool
			conf   float64
		}{
			{false, 1.0}, {true, 0.2}, {false, 1.7}, {true, -0.4}, {true, 1.0},
			{false, 0.0}, {false, 0.9}, {true, 0.99},
		}
		for _, in := range inputs {
			n.AddVerificationResult("m", in.result, in.conf, nil)
			assert.GreaterOrEqual(t, n.Confidence, 0.0)
			assert.LessOrEqual(t, n.Confidence, 1.0)
		}
		assert.Len(t, n.VerificationResults, len(inputs))
	})
}

func TestVerificationScore(t *testing.T) {
	n := NewKnowledgeNode("n1", "concept", "a", "quran", nil)
	assert.Equal(t, 0.5, n.VerificationScore())

	n.AddVerificationResult("a", true, 0.6, nil)
	n.AddVerificationResult("b", true, 0.4, nil)
	assert.InDelta(t, 1.0, n.VerificationScore(), 1e-9)
}

func TestCloneIsIndependent(t *testing.T) {
	n := NewKnowledgeNode("n1", "concept", "a", "quran", map[string]any{"k": "v"})
	n.AddRelationship("n2", "similar_to", 0.5)

	c := n.Clone()
	c.Attributes["k"] = "changed"
	c.AddRelationship("n3", "opposite_of", 0.5)
	c.AddVerificationResult("m", true, 1, nil)

	assert.Equal(t, "v", n.Attributes["k"])
	assert.Len(t, n.Relationships, 1)
	assert.Empty(t, n.VerificationResults)
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-1))
	assert.Equal(t, 1.0, Clamp01(1.2))
	assert.Equal(t, 0.4, Clamp01(0.4))
}
