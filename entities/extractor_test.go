package entities

import (
	"testing"

	"github.com/poiesic/marifa/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor(t *testing.T, opts ...Option) *Extractor {
	t.Helper()
	e, err := NewExtractor(opts...)
	require.NoError(t, err)
	return e
}

func TestExtract_DictionaryOrderAndReferences(t *testing.T) {
	e := newTestExtractor(t)
	text := "وذهب موسى إلى فرعون في مصر. وقال موسى: التقوى خير."

	found := e.Extract(text, nil)
	require.Len(t, found, 4)

	names := make([]string, len(found))
	for i, ent := range found {
		names[i] = ent.Name
	}
	assert.Equal(t, []string{"موسى", "فرعون", "مصر", "التقوى"}, names)

	musa := found[0]
	assert.Equal(t, core.EntityPerson, musa.Type)
	assert.Equal(t, "prophet", musa.Attributes["role"])
	require.Len(t, musa.References, 2)
	assert.Equal(t, 5, musa.References[0].Start)
	assert.Equal(t, 9, musa.References[0].End)
	assert.Less(t, musa.References[0].Start, musa.References[1].Start)
	assert.Equal(t, DefaultSource, musa.References[0].Source)
	assert.Equal(t, EntityID(core.EntityPerson, "موسى"), musa.ID)
}

func TestExtract_WholeWordsOnly(t *testing.T) {
	e := newTestExtractor(t)

	// "مصر" inside "مصرف" is not a match.
	assert.Empty(t, e.Extract("ذهب إلى المصرف", nil))
}

func TestExtract_NoMatches(t *testing.T) {
	e := newTestExtractor(t)
	assert.Empty(t, e.Extract("", nil))
	assert.Empty(t, e.Extract("hello world", nil))
}

func TestExtract_MinConfidenceIgnored(t *testing.T) {
	e := newTestExtractor(t)
	text := "أقيموا الصلاة وآتوا الزكاة"

	low := e.Extract(text, &Options{MinConfidence: 0})
	high := e.Extract(text, &Options{MinConfidence: 0.99})
	assert.Equal(t, low, high)
	assert.Len(t, high, 2)
}

func TestExtract_SourceTag(t *testing.T) {
	e := newTestExtractor(t)

	found := e.Extract("الصبر", &Options{Source: "baqarah:153"})
	require.Len(t, found, 1)
	assert.Equal(t, "baqarah:153", found[0].References[0].Source)
}

func TestExtract_AttributesAreCopies(t *testing.T) {
	e := newTestExtractor(t)

	first := e.Extract("الصبر", nil)
	require.Len(t, first, 1)
	first[0].Attributes["category"] = "changed"

	second := e.Extract("الصبر", nil)
	assert.Equal(t, "value", second[0].Attributes["category"])
}

func TestWithDictionary(t *testing.T) {
	e := newTestExtractor(t, WithDictionary([]Term{
		{Text: "النور", Type: core.EntityConcept, Attributes: map[string]any{"category": "value"}},
	}))

	found := e.Extract("الله نور السماوات والأرض. النور", nil)
	require.Len(t, found, 1)
	assert.Equal(t, "النور", found[0].Name)
	assert.Equal(t, []string{"النور"}, e.Terms())
}
