package azure_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NeuralTrust/UniSummarize/pkg/infra/providers"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/providers/azure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func TestSummarize_RequiresAzureConfig(t *testing.T) {
	client := azure.NewAzureClient(nil)

	_, err := client.Summarize(context.Background(), &providers.Config{Model: "summaries"}, "text")
	assert.ErrorContains(t, err, "azure configuration is required")

	_, err = client.Summarize(context.Background(), &providers.Config{
		Model:       "summaries",
		Credentials: providers.Credentials{Azure: &providers.AzureCredentials{Endpoint: "https://x"}},
	}, "text")
	assert.ErrorContains(t, err, "API key is required")
}

func TestSummarize_APIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/deployments/summaries/chat/completions", r.URL.Path)
		assert.Equal(t, "2024-06-01", r.URL.Query().Get("api-version"))
		assert.Equal(t, "azure-key", r.Header.Get("api-key"))

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Len(t, body["messages"], 2)
		assert.EqualValues(t, 40*2+64, body["max_tokens"])

		_, _ = w.Write([]byte(`{"id":"cmpl-9","choices":[{"message":{"role":"assistant","content":"Azure summary."}}],"usage":{"prompt_tokens":3,"completion_tokens":2,"total_tokens":5}}`))
	}))
	defer srv.Close()

	client := azure.NewAzureClient(&fasthttp.Client{})
	resp, err := client.Summarize(context.Background(), &providers.Config{
		Model:  "summaries",
		Length: providers.Length{Min: 5, Max: 40},
		Credentials: providers.Credentials{
			ApiKey: "azure-key",
			Azure:  &providers.AzureCredentials{Endpoint: srv.URL + "/", ApiVersion: "2024-06-01"},
		},
	}, "Some text.")

	require.NoError(t, err)
	assert.Equal(t, "cmpl-9", resp.ID)
	assert.Equal(t, "Azure summary.", resp.Text)
	assert.Equal(t, 5, resp.Usage.TotalTokens)
}

func TestSummarize_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"quota"}`))
	}))
	defer srv.Close()

	client := azure.NewAzureClient(nil)
	_, err := client.Summarize(context.Background(), &providers.Config{
		Model: "summaries",
		Credentials: providers.Credentials{
			ApiKey: "azure-key",
			Azure:  &providers.AzureCredentials{Endpoint: srv.URL},
		},
	}, "Some text.")

	assert.ErrorContains(t, err, "non-200 status: 429")
}

func TestSummarize_ContentFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"cmpl-1","choices":[{"message":{"role":"assistant","content":""},"finish_reason":"content_filter"}]}`))
	}))
	defer srv.Close()

	client := azure.NewAzureClient(nil)
	_, err := client.Summarize(context.Background(), &providers.Config{
		Model: "summaries",
		Credentials: providers.Credentials{
			ApiKey: "azure-key",
			Azure:  &providers.AzureCredentials{Endpoint: srv.URL},
		},
	}, "Some text.")

	assert.ErrorContains(t, err, "content filter")
}
