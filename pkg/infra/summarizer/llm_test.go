package summarizer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NeuralTrust/UniSummarize/pkg/infra/logger"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/providers"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/providers/factory"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/providers/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSummarize_Success(t *testing.T) {
	client := mocks.NewClient(t)
	s := newLLMSummarizer(client, Config{Provider: "openai", Model: "gpt-4o-mini", APIKey: "k"}, logger.NewDiscardLogger())

	client.On("Summarize", mock.Anything, mock.MatchedBy(func(cfg *providers.Config) bool {
		return cfg.Model == "gpt-4o-mini" &&
			cfg.Credentials.ApiKey == "k" &&
			cfg.Length == providers.Length{Min: 30, Max: 130}
	}), "The input text.").Return(&providers.Summary{Model: "gpt-4o-mini", Text: "The summary."}, nil)

	out, err := s.Summarize(context.Background(), "The input text.", 130, 30)

	require.NoError(t, err)
	assert.Equal(t, "The summary.", out)
	assert.True(t, s.Ready())
}

func TestSummarize_AppliesTimeout(t *testing.T) {
	client := mocks.NewClient(t)
	s := newLLMSummarizer(client, Config{Provider: "openai", Timeout: time.Minute}, logger.NewDiscardLogger())

	client.On("Summarize", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), mock.Anything, mock.Anything).Return(&providers.Summary{Text: "ok"}, nil)

	_, err := s.Summarize(context.Background(), "text", 130, 30)
	assert.NoError(t, err)
}

func TestSummarize_EmptyResponseIsAnError(t *testing.T) {
	client := mocks.NewClient(t)
	s := newLLMSummarizer(client, Config{Provider: "openai"}, logger.NewDiscardLogger())
	client.On("Summarize", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, providers.ErrEmptySummary)

	_, err := s.Summarize(context.Background(), "text", 130, 30)

	assert.ErrorIs(t, err, providers.ErrEmptySummary)
}

func TestSummarize_BreakerOpensAfterFailures(t *testing.T) {
	client := mocks.NewClient(t)
	s := newLLMSummarizer(client, Config{Provider: "anthropic", MaxFailures: 2}, logger.NewDiscardLogger())
	client.On("Summarize", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("503 from provider")).Twice()

	for i := 0; i < 2; i++ {
		_, err := s.Summarize(context.Background(), "text", 130, 30)
		assert.ErrorContains(t, err, "503 from provider")
	}

	assert.False(t, s.Ready())
	_, err := s.Summarize(context.Background(), "text", 130, 30)
	assert.Error(t, err)
	client.AssertNumberOfCalls(t, "Summarize", 2)
}

func TestNewLLMSummarizer_UnknownProvider(t *testing.T) {
	_, err := NewLLMSummarizer(factory.NewProviderLocator(nil), Config{Provider: "nope"}, logger.NewDiscardLogger())
	assert.ErrorContains(t, err, "unsupported provider")
}
