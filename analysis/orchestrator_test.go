package analysis

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/poiesic/marifa/core"
	"github.com/poiesic/marifa/patterns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrchestrator(t *testing.T, opts ...Option) *Orchestrator {
	t.Helper()
	o, err := NewOrchestrator(opts...)
	require.NoError(t, err)
	return o
}

func TestAnalyze(t *testing.T) {
	o := newTestOrchestrator(t)
	text := "وما أرسلناك إلا رحمة للعالمين. قال موسى لفرعون في مصر إن التقوى والصبر خير."

	result, err := o.Analyze(context.Background(), text, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, text, result.Text)
	assert.NotEmpty(t, result.Patterns)
	assert.Equal(t, core.PatternExclusivity, result.Patterns[0].Type)

	names := map[string]bool{}
	for _, e := range result.Entities {
		names[e.Name] = true
	}
	assert.True(t, names["موسى"])
	assert.True(t, names["مصر"])
	assert.True(t, names["التقوى"])

	for _, r := range result.Relationships {
		assert.GreaterOrEqual(t, r.Confidence, 0.7)
	}
	assert.NotEmpty(t, result.Relationships)

	assert.False(t, result.Metadata.Timestamp.IsZero())
	assert.GreaterOrEqual(t, result.Metadata.DurationMs, int64(0))
	assert.Equal(t, 0.7, result.Metadata.Options["minConfidence"])
}

func TestAnalyze_EmptyCollectionsAreNotNil(t *testing.T) {
	o := newTestOrchestrator(t)

	result, err := o.Analyze(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.NotNil(t, result.Patterns)
	assert.NotNil(t, result.Entities)
	assert.NotNil(t, result.Relationships)
	assert.Empty(t, result.Entities)
}

func TestAnalyze_Validation(t *testing.T) {
	o := newTestOrchestrator(t)
	ctx := context.Background()

	tests := []struct {
		name string
		text string
		opts *Options
	}{
		{"empty text", "", nil},
		{"blank text", "   \n", nil},
		{"confidence too high", "نص", &Options{MinConfidence: 1.5}},
		{"confidence negative", "نص", &Options{MinConfidence: -0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := o.Analyze(ctx, tt.text, tt.opts)
			assert.ErrorIs(t, err, core.ErrValidation)
			assert.NotErrorIs(t, err, ErrAnalysisFailed)
		})
	}
}

func TestAnalyze_TextSizeInBytes(t *testing.T) {
	o := newTestOrchestrator(t)

	// two bytes per rune: half as many runes as the byte limit allows
	long := strings.Repeat("ص", MaxTextBytes/2+1)
	require.Less(t, utf8.RuneCountInString(long), MaxTextBytes)

	_, err := o.Analyze(context.Background(), long, nil)
	assert.ErrorIs(t, err, core.ErrValidation)
	assert.ErrorContains(t, err, "bytes")

	atLimit := &request{Text: strings.Repeat("ص", MaxTextBytes/2), Options: DefaultOptions()}
	assert.NoError(t, atLimit.validate())
}

func TestAnalyze_SemanticOption(t *testing.T) {
	o := newTestOrchestrator(t)
	text := "أين المفر؟ إلى ربك يومئذ المستقر."

	plain, err := o.Analyze(context.Background(), text, nil)
	require.NoError(t, err)
	semantic, err := o.Analyze(context.Background(), text, &Options{MinConfidence: 0.7, IncludeSemantic: true})
	require.NoError(t, err)

	assert.Greater(t, len(semantic.Patterns), len(plain.Patterns))
	assert.Equal(t, true, semantic.Metadata.Options["includeSemantic"])
}

func TestAnalyze_CancelledContext(t *testing.T) {
	o := newTestOrchestrator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := o.Analyze(ctx, "نص", nil)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrAnalysisFailed)
	assert.ErrorIs(t, err, core.ErrInternal)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyze_PanicBecomesFailure(t *testing.T) {
	// A zero Detector has no logger and panics when used.
	o := newTestOrchestrator(t, WithDetector(&patterns.Detector{}))

	result, err := o.Analyze(context.Background(), "نص", nil)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrAnalysisFailed)
}
