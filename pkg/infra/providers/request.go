package providers

import (
	"fmt"
	"strings"
)

const (
	instructions = "You are a summarization engine. Return only the summary as plain prose: " +
		"no preamble, no headings, no lists, no markdown."

	defaultMinWords = 30
	defaultMaxWords = 130

	// Input beyond this many runes is cut before prompting.
	maxInputRunes = 48000
)

// Request is the provider-neutral form of one summarization call.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

func NewRequest(config *Config, text string) (Request, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Request{}, ErrNoText
	}
	length := config.Length.normalize()
	return Request{
		System:      instructions,
		User:        prompt(text, length),
		MaxTokens:   length.TokenBudget(),
		Temperature: config.Temperature,
	}, nil
}

func (l Length) normalize() Length {
	if l.Max <= 0 {
		l.Max = defaultMaxWords
	}
	if l.Min <= 0 || l.Min > l.Max {
		l.Min = min(defaultMinWords, l.Max)
	}
	return l
}

// TokenBudget sizes the completion for the upper word bound at roughly two
// tokens per word.
func (l Length) TokenBudget() int {
	return l.normalize().Max*2 + 64
}

func prompt(text string, l Length) string {
	if r := []rune(text); len(r) > maxInputRunes {
		text = string(r[:maxInputRunes])
	}
	return fmt.Sprintf(
		"Summarize the following text in at least %d and at most %d words.\n\nText:\n%s",
		l.Min, l.Max, text,
	)
}

// CleanSummary strips the markdown fences and "Summary:" labels some models
// add around a plain answer. An empty result is ErrEmptySummary.
func CleanSummary(text string) (string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	for _, label := range []string{"Summary:", "**Summary:**", "**Summary**"} {
		if len(text) >= len(label) && strings.EqualFold(text[:len(label)], label) {
			text = strings.TrimSpace(text[len(label):])
			break
		}
	}
	if text == "" {
		return "", ErrEmptySummary
	}
	return text, nil
}
