package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/marifa/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEntryGenerator_Default(t *testing.T) {
	gen := NewMockEntryGenerator()

	entry, err := gen.GenerateEntry(context.Background(), "الصبر")
	require.NoError(t, err)
	assert.Equal(t, "ص ب ر", entry.Root)
	assert.Equal(t, "noun", entry.Type)
	assert.Equal(t, []string{"الصبر"}, entry.Examples)
	assert.Equal(t, 1, gen.CallCount())
	assert.Equal(t, []string{"الصبر"}, gen.Calls())
}

func TestMockEntryGenerator_CustomFunc(t *testing.T) {
	boom := errors.New("boom")
	gen := NewMockEntryGenerator()
	gen.GenerateEntryFunc = func(ctx context.Context, term string) (*ai.GeneratedEntry, error) {
		return nil, boom
	}

	_, err := gen.GenerateEntry(context.Background(), "صبر")
	assert.ErrorIs(t, err, boom)

	gen.Reset()
	assert.Zero(t, gen.CallCount())
	_, err = gen.GenerateEntry(context.Background(), "صبر")
	assert.NoError(t, err)
}

func TestMockProvider(t *testing.T) {
	provider := NewMockProvider()
	mp := provider.(*MockProvider)

	assert.Same(t, mp.GetMockGenerator(), provider.EntryGenerator())
	require.NoError(t, provider.Close())
	assert.True(t, mp.Closed())
}
