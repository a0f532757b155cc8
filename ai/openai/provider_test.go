package openai

import (
	"testing"

	"github.com/poiesic/marifa/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		provider, err := NewProvider(ai.NewConfig(
			ai.WithHost("http://localhost:11434"),
			ai.WithModel("qwen2.5:7b"),
		))
		require.NoError(t, err)
		require.NotNil(t, provider)

		p, ok := provider.(*Provider)
		require.True(t, ok)
		assert.Equal(t, "qwen2.5:7b", p.Model())
		assert.NotNil(t, provider.EntryGenerator())
		assert.NoError(t, provider.Close())
	})

	t.Run("missing model", func(t *testing.T) {
		provider, err := NewProvider(ai.NewConfig(
			ai.WithHost("http://localhost:11434"),
			ai.WithModel(""),
		))
		assert.Error(t, err)
		assert.Nil(t, provider)
	})
}
