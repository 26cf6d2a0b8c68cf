package gemini

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/NeuralTrust/UniSummarize/pkg/infra/providers"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

type client struct {
	clientPool *sync.Map
}

func NewGeminiClient() providers.Client {
	return &client{
		clientPool: &sync.Map{},
	}
}

func (c *client) Summarize(ctx context.Context, config *providers.Config, text string) (*providers.Summary, error) {
	if config.Credentials.ApiKey == "" {
		return nil, errors.New("API key is required")
	}
	req, err := providers.NewRequest(config, text)
	if err != nil {
		return nil, err
	}

	model := config.Model
	if model == "" {
		model = defaultModel
	}
	genaiClient, err := c.getOrCreateClient(ctx, config.Credentials.ApiKey, config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	generateConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		MaxOutputTokens:   int32(req.MaxTokens),
		CandidateCount:    1,
	}
	if req.Temperature > 0 {
		temperature := float32(req.Temperature)
		generateConfig.Temperature = &temperature
	}

	result, err := genaiClient.Models.GenerateContent(ctx, model, genai.Text(req.User), generateConfig)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}
	if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("gemini blocked the input: %s", result.PromptFeedback.BlockReason)
	}
	summary, err := providers.CleanSummary(result.Text())
	if err != nil {
		return nil, err
	}

	resp := &providers.Summary{
		ID:    fmt.Sprintf("gemini-%d", time.Now().UnixNano()),
		Model: model,
		Text:  summary,
	}
	if result.UsageMetadata != nil {
		resp.Usage = providers.Usage{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		}
	}
	return resp, nil
}

func (c *client) getOrCreateClient(ctx context.Context, apiKey, baseURL string) (*genai.Client, error) {
	key := baseURL + "|" + apiKey
	if v, ok := c.clientPool.Load(key); ok {
		if cli, ok := v.(*genai.Client); ok {
			return cli, nil
		}
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	actual, _ := c.clientPool.LoadOrStore(key, cli)
	return actual.(*genai.Client), nil
}
