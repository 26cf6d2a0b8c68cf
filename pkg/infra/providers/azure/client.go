package azure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/httpx"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/providers"
	"github.com/valyala/fasthttp"
)

const (
	defaultAPIVersion = "2024-02-15-preview"
	cognitiveScope    = "https://cognitiveservices.azure.com/.default"
	requestTimeout    = 60 * time.Second
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type client struct {
	httpClient *fasthttp.Client
	credMu     sync.Mutex
	credential azcore.TokenCredential
}

func NewAzureClient(httpClient *fasthttp.Client) providers.Client {
	if httpClient == nil {
		httpClient = &fasthttp.Client{}
	}
	return &client{httpClient: httpClient}
}

// Summarize calls an Azure OpenAI chat deployment. config.Model is the
// deployment name. Authentication uses the api-key header unless UseIdentity
// is set, in which case a token from the default Azure credential chain is
// sent instead.
func (c *client) Summarize(ctx context.Context, config *providers.Config, text string) (*providers.Summary, error) {
	azureCreds := config.Credentials.Azure
	if azureCreds == nil {
		return nil, errors.New("azure configuration is required")
	}
	if azureCreds.Endpoint == "" {
		return nil, errors.New("azure endpoint is required")
	}
	if config.Model == "" {
		return nil, errors.New("model (deployment ID) is required")
	}
	if !azureCreds.UseIdentity && config.Credentials.ApiKey == "" {
		return nil, errors.New("API key is required when not using Azure identity")
	}
	summaryReq, err := providers.NewRequest(config, text)
	if err != nil {
		return nil, err
	}

	bodyBytes, err := json.Marshal(chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: summaryReq.System},
			{Role: "user", Content: summaryReq.User},
		},
		Temperature: summaryReq.Temperature,
		MaxTokens:   summaryReq.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(deploymentURL(azureCreds, config.Model))
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(bodyBytes)
	if err := c.authorize(ctx, req, config.Credentials); err != nil {
		return nil, err
	}

	if err := httpx.Do(ctx, c.httpClient, req, resp, requestTimeout, 0); err != nil {
		return nil, fmt.Errorf("azure openai request: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("non-200 status: %d\n%s", resp.StatusCode(), string(resp.Body()))
	}

	var parsed chatResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, providers.ErrEmptySummary
	}
	if parsed.Choices[0].FinishReason == "content_filter" {
		return nil, errors.New("azure content filter rejected the summary")
	}
	summary, err := providers.CleanSummary(parsed.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	id := parsed.ID
	if id == "" {
		id = fmt.Sprintf("azure-%d", time.Now().UnixNano())
	}
	return &providers.Summary{
		ID:    id,
		Model: config.Model,
		Text:  summary,
		Usage: providers.Usage{
			PromptTokens:     parsed.Usage.PromptTokens,
			CompletionTokens: parsed.Usage.CompletionTokens,
			TotalTokens:      parsed.Usage.TotalTokens,
		},
	}, nil
}

func deploymentURL(creds *providers.AzureCredentials, deployment string) string {
	apiVersion := creds.ApiVersion
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}
	return fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimRight(creds.Endpoint, "/"), deployment, apiVersion)
}

func (c *client) authorize(ctx context.Context, req *fasthttp.Request, creds providers.Credentials) error {
	if !creds.Azure.UseIdentity {
		req.Header.Set("api-key", creds.ApiKey)
		return nil
	}
	token, err := c.token(ctx)
	if err != nil {
		return fmt.Errorf("failed to get Azure AD token: %w", err)
	}
	req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+token)
	return nil
}

func (c *client) token(ctx context.Context) (string, error) {
	c.credMu.Lock()
	if c.credential == nil {
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			c.credMu.Unlock()
			return "", fmt.Errorf("failed to create credential: %w", err)
		}
		c.credential = cred
	}
	cred := c.credential
	c.credMu.Unlock()

	token, err := cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{cognitiveScope}})
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}
	return token.Token, nil
}
