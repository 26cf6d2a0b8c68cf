package anthropic_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NeuralTrust/UniSummarize/pkg/infra/providers"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/providers/anthropic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messagesServer(t *testing.T, text, stopReason string, received *map[string]interface{}) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1/messages"))
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		if received != nil {
			_ = json.NewDecoder(r.Body).Decode(received)
		}
		payload, _ := json.Marshal(text)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-haiku-4-5",
			"content": [{"type": "text", "text": ` + string(payload) + `}],
			"stop_reason": "` + stopReason + `",
			"usage": {"input_tokens": 20, "output_tokens": 5}
		}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSummarize_MissingAPIKey(t *testing.T) {
	client := anthropic.NewAnthropicClient()

	resp, err := client.Summarize(context.Background(), &providers.Config{}, "text")

	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "API key is required")
}

func TestSummarize_Messages(t *testing.T) {
	var received map[string]interface{}
	srv := messagesServer(t, "Concise summary.", "end_turn", &received)

	client := anthropic.NewAnthropicClient()
	resp, err := client.Summarize(context.Background(), &providers.Config{
		Credentials: providers.Credentials{ApiKey: "test-key"},
		BaseURL:     srv.URL,
	}, "Long text.")

	require.NoError(t, err)
	assert.Equal(t, "Concise summary.", resp.Text)
	assert.Equal(t, "claude-haiku-4-5", resp.Model)
	assert.Equal(t, 25, resp.Usage.TotalTokens)
	assert.EqualValues(t, 130*2+64, received["max_tokens"])
	assert.NotEmpty(t, received["system"])
}

func TestSummarize_TokenLimitDropsUnfinishedSentence(t *testing.T) {
	srv := messagesServer(t, "First point stands. Second point was cut mid", "max_tokens", nil)

	client := anthropic.NewAnthropicClient()
	resp, err := client.Summarize(context.Background(), &providers.Config{
		Credentials: providers.Credentials{ApiKey: "test-key"},
		BaseURL:     srv.URL,
	}, "Long text.")

	require.NoError(t, err)
	assert.Equal(t, "First point stands.", resp.Text)
}
