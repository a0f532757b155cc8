package openai

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/poiesic/marifa/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// scriptedModel answers GenerateContent with one queued response per call.
type scriptedModel struct {
	llms.Model
	responses []string
	err       error
	calls     int
	messages  []llms.MessageContent
}

func (m *scriptedModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.calls++
	m.messages = messages
	if m.err != nil {
		return nil, m.err
	}
	if len(m.responses) == 0 {
		return &llms.ContentResponse{}, nil
	}
	next := m.responses[0]
	m.responses = m.responses[1:]
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: next}}}, nil
}

func newTestGenerator(model *scriptedModel, maxExamples int) *EntryGenerator {
	return &EntryGenerator{client: model, maxExamples: maxExamples, logger: slog.Default()}
}

func TestGenerateEntry(t *testing.T) {
	model := &scriptedModel{responses: []string{
		"```json\n{\"root\":\" ر ح م \",\"type\":\"Verbal Noun\",\"definition\":\"رقة تقتضي الإحسان\",\"examples\":[\"وما أرسلناك إلا رحمة للعالمين\",\" \",\"ورحمتي وسعت كل شيء\",\"كتب ربكم على نفسه الرحمة\"]}\n```",
	}}
	gen := newTestGenerator(model, 2)

	entry, err := gen.GenerateEntry(context.Background(), "«رحمة»")
	require.NoError(t, err)

	assert.Equal(t, "ر ح م", entry.Root)
	assert.Equal(t, "verbal_noun", entry.Type)
	assert.Equal(t, "رقة تقتضي الإحسان", entry.Definition)
	assert.Equal(t, []string{"وما أرسلناك إلا رحمة للعالمين", "ورحمتي وسعت كل شيء"}, entry.Examples)
	assert.Equal(t, 1, model.calls)

	require.Len(t, model.messages, 2)
	human := model.messages[1]
	assert.Equal(t, llms.ChatMessageTypeHuman, human.Role)
	assert.Equal(t, llms.TextContent{Text: "رحمة"}, human.Parts[0])
}

func TestGenerateEntry_UnknownTypeDropped(t *testing.T) {
	model := &scriptedModel{responses: []string{`{"root":"","type":"pronoun","definition":"ضمير","examples":[]}`}}

	entry, err := newTestGenerator(model, 3).GenerateEntry(context.Background(), "هو")
	require.NoError(t, err)
	assert.Empty(t, entry.Type)
	assert.Equal(t, "ضمير", entry.Definition)
	assert.NotNil(t, entry.Examples)
}

func TestGenerateEntry_RetriesMalformedJSON(t *testing.T) {
	model := &scriptedModel{responses: []string{
		"not json at all",
		`{root":"ص ب ر","type":"noun","definition":"حبس النفس","examples":[],}`,
	}}

	entry, err := newTestGenerator(model, 3).GenerateEntry(context.Background(), "صبر")
	require.NoError(t, err)
	assert.Equal(t, "ص ب ر", entry.Root)
	assert.Equal(t, "noun", entry.Type)
	assert.Equal(t, 2, model.calls)
}

func TestGenerateEntry_GivesUpAfterMaxAttempts(t *testing.T) {
	model := &scriptedModel{responses: []string{"nope", "still nope", "never", "unused"}}

	_, err := newTestGenerator(model, 3).GenerateEntry(context.Background(), "صبر")
	require.Error(t, err)
	assert.Equal(t, maxAttempts, model.calls)
}

func TestGenerateEntry_TransportErrorNotRetried(t *testing.T) {
	boom := errors.New("connection refused")
	model := &scriptedModel{err: boom}

	_, err := newTestGenerator(model, 3).GenerateEntry(context.Background(), "صبر")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, model.calls)
}

func TestGenerateEntry_NoChoices(t *testing.T) {
	model := &scriptedModel{}

	entry, err := newTestGenerator(model, 3).GenerateEntry(context.Background(), "صبر")
	require.ErrorIs(t, err, ai.ErrEmptyGeneration)
	assert.Nil(t, entry)
	assert.Equal(t, 1, model.calls)
}

func TestGenerateEntry_EmptyTerm(t *testing.T) {
	model := &scriptedModel{}

	_, err := newTestGenerator(model, 3).GenerateEntry(context.Background(), " «»ـ ")
	require.ErrorIs(t, err, errEmptyTerm)
	assert.Zero(t, model.calls)
}

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"valid input untouched", `{"root": "ر ح م", "type": "noun"}`, `{"root": "ر ح م", "type": "noun"}`},
		{"missing opening quote", `{root": "x", type": "noun"}`, `{"root": "x", "type": "noun"}`},
		{"trailing comma in object", `{"a": 1,}`, `{"a": 1}`},
		{"trailing comma in array", `{"examples": ["a", "b", ]}`, `{"examples": ["a", "b" ]}`},
		{"comma inside string kept", `{"definition": "a,}"}`, `{"definition": "a,}"}`},
		{"escaped quote inside string", `{"definition": "say \"hi\", then"}`, `{"definition": "say \"hi\", then"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, repairJSON(tt.input))
		})
	}
}

func TestScrubTerm(t *testing.T) {
	assert.Equal(t, "رحمة", scrubTerm("  «رحمـــة»؟ "))
	assert.Equal(t, "التَّقْوَى", scrubTerm("التَّقْوَى."))
	assert.Empty(t, scrubTerm("،؛"))
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := buildSystemPrompt(4)
	assert.Contains(t, prompt, `"maxItems": 4`)
	assert.Contains(t, prompt, "verbal_noun")
	assert.Contains(t, prompt, "at most 4 of them")
}
