package providers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	req, err := NewRequest(&Config{Temperature: 0.2, Length: Length{Min: 20, Max: 100}}, "  The input text. ")

	require.NoError(t, err)
	assert.Equal(t, instructions, req.System)
	assert.Contains(t, req.User, "at least 20 and at most 100 words")
	assert.True(t, strings.HasSuffix(req.User, "The input text."))
	assert.Equal(t, 264, req.MaxTokens)
	assert.Equal(t, 0.2, req.Temperature)
}

func TestNewRequest_DefaultsAndBlankText(t *testing.T) {
	req, err := NewRequest(&Config{Length: Length{Min: 500, Max: 0}}, "text")
	require.NoError(t, err)
	assert.Contains(t, req.User, "at least 30 and at most 130 words")
	assert.Equal(t, 130*2+64, req.MaxTokens)

	_, err = NewRequest(&Config{}, " \n\t")
	assert.ErrorIs(t, err, ErrNoText)
}

func TestNewRequest_TruncatesLongInput(t *testing.T) {
	req, err := NewRequest(&Config{}, strings.Repeat("é", maxInputRunes+100))
	require.NoError(t, err)
	assert.Equal(t, maxInputRunes, strings.Count(req.User, "é"))
}

func TestCleanSummary(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Plain answer. ", "Plain answer."},
		{"```text\nFenced answer.\n```", "Fenced answer."},
		{"Summary: Labelled answer.", "Labelled answer."},
		{"**Summary:** Bold label.", "Bold label."},
	}
	for _, tt := range tests {
		got, err := CleanSummary(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := CleanSummary("```\n```")
	assert.ErrorIs(t, err, ErrEmptySummary)
}
