package openai

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/NeuralTrust/UniSummarize/pkg/infra/providers"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"golang.org/x/sync/singleflight"
)

type client struct {
	clientPool *sync.Map
	sf         singleflight.Group
}

func NewOpenaiClient() providers.Client {
	return &client{
		clientPool: &sync.Map{},
	}
}

func (c *client) Summarize(ctx context.Context, config *providers.Config, text string) (*providers.Summary, error) {
	if config.Credentials.ApiKey == "" {
		return nil, errors.New("API key is required")
	}
	if config.Model == "" {
		return nil, errors.New("model is required")
	}
	req, err := providers.NewRequest(config, text)
	if err != nil {
		return nil, err
	}

	params := openai.ChatCompletionNewParams{
		Model: config.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		MaxCompletionTokens: openai.Int(int64(req.MaxTokens)),
		N:                   openai.Int(1),
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}

	completion, err := c.getOrCreateClient(config.Credentials.ApiKey, config.BaseURL).
		Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, providers.ErrEmptySummary
	}
	choice := completion.Choices[0]
	if choice.Message.Refusal != "" {
		return nil, fmt.Errorf("openai refused to summarize: %s", choice.Message.Refusal)
	}
	summary, err := providers.CleanSummary(choice.Message.Content)
	if err != nil {
		return nil, err
	}

	return &providers.Summary{
		ID:    completion.ID,
		Model: completion.Model,
		Text:  summary,
		Usage: providers.Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		},
	}, nil
}

// getOrCreateClient keeps one SDK client per base URL and key.
func (c *client) getOrCreateClient(apiKey, baseURL string) *openai.Client {
	key := baseURL + "|" + apiKey
	if v, ok := c.clientPool.Load(key); ok {
		return v.(*openai.Client)
	}
	v, _, _ := c.sf.Do(key, func() (any, error) {
		if v, ok := c.clientPool.Load(key); ok {
			return v, nil
		}
		opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(1)}
		if baseURL != "" {
			opts = append(opts, option.WithBaseURL(baseURL))
		}
		cli := openai.NewClient(opts...)
		c.clientPool.Store(key, &cli)
		return &cli, nil
	})
	return v.(*openai.Client)
}
