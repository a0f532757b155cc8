package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuneOffset(t *testing.T) {
	text := "يا أيها الناس"
	// "يا " is 2 letters of 2 bytes each plus a space.
	assert.Equal(t, 3, RuneOffset(text, 5))
	assert.Equal(t, 0, RuneOffset(text, -1))
	assert.Equal(t, RuneLen(text), RuneOffset(text, len(text)+10))
}

func TestWholeWordIndexes(t *testing.T) {
	tests := []struct {
		name string
		text string
		term string
		want int
	}{
		{"single occurrence", "إن الصبر جميل", "الصبر", 1},
		{"prefixed occurrence is not whole", "وبالصبر نجا", "الصبر", 0},
		{"suffixed occurrence is not whole", "الصبرين", "الصبر", 0},
		{"punctuation boundary", "الصبر، ثم الصبر.", "الصبر", 2},
		{"empty term", "abc", "", 0},
		{"term longer than text", "ab", "abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, WholeWordIndexes(tt.text, tt.term), tt.want)
		})
	}
}
