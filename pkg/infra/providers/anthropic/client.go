package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/NeuralTrust/UniSummarize/pkg/infra/providers"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultModel = "claude-haiku-4-5"

type client struct {
	clientPool *sync.Map
}

func NewAnthropicClient() providers.Client {
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

	model := anthropic.Model(defaultModel)
	if config.Model != "" {
		model = anthropic.Model(config.Model)
	}
	params := anthropic.MessageNewParams{
		Model:     model,
		MaxTokens: int64(req.MaxTokens),
		System:    []anthropic.TextBlockParam{{Text: req.System}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	message, err := c.getOrCreateClient(config.Credentials.ApiKey, config.BaseURL).Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic messages: %w", err)
	}
	if message.StopReason == anthropic.StopReasonMaxTokens {
		// Keep whole sentences when the token budget cut the answer.
		message.Content = trimToSentence(message.Content)
	}

	var b strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	summary, err := providers.CleanSummary(b.String())
	if err != nil {
		return nil, err
	}

	return &providers.Summary{
		ID:    message.ID,
		Model: string(message.Model),
		Text:  summary,
		Usage: providers.Usage{
			PromptTokens:     int(message.Usage.InputTokens),
			CompletionTokens: int(message.Usage.OutputTokens),
			TotalTokens:      int(message.Usage.InputTokens + message.Usage.OutputTokens),
		},
	}, nil
}

// trimToSentence drops the unfinished sentence at the end of the last text
// block when generation stopped on the token limit.
func trimToSentence(blocks []anthropic.ContentBlockUnion) []anthropic.ContentBlockUnion {
	for i := len(blocks) - 1; i >= 0; i-- {
		if blocks[i].Type != "text" {
			continue
		}
		text := blocks[i].Text
		if cut := strings.LastIndexAny(text, ".!?"); cut > 0 {
			blocks[i].Text = text[:cut+1]
		}
		break
	}
	return blocks
}

func (c *client) getOrCreateClient(apiKey, baseURL string) *anthropic.Client {
	key := baseURL + "|" + apiKey
	if v, ok := c.clientPool.Load(key); ok {
		return v.(*anthropic.Client)
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(1)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	cli := anthropic.NewClient(opts...)
	actual, _ := c.clientPool.LoadOrStore(key, &cli)
	return actual.(*anthropic.Client)
}
