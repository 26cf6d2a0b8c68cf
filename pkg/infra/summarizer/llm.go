package summarizer

import (
	"context"
	"fmt"
	"time"

	"github.com/NeuralTrust/UniSummarize/pkg/app/summary"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/httpx"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/prometheus"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/providers"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/providers/factory"
	"github.com/sirupsen/logrus"
)

const (
	collaboratorName = "summarizer"

	defaultTimeout        = 60 * time.Second
	defaultBreakerTimeout = 30 * time.Second
	defaultMaxFailures    = 5
)

type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Azure    *providers.AzureCredentials
	Bedrock  *providers.AwsBedrockCredentials

	Timeout        time.Duration
	BreakerTimeout time.Duration
	MaxFailures    uint32
}

type llmSummarizer struct {
	client  providers.Client
	config  providers.Config
	breaker httpx.CircuitBreaker
	timeout time.Duration
	logger  *logrus.Logger
}

// NewLLMSummarizer resolves the configured provider through the locator.
func NewLLMSummarizer(locator factory.ProviderLocator, cfg Config, logger *logrus.Logger) (summary.Summarizer, error) {
	client, err := locator.Get(cfg.Provider)
	if err != nil {
		return nil, err
	}
	return newLLMSummarizer(client, cfg, logger), nil
}

func newLLMSummarizer(client providers.Client, cfg Config, logger *logrus.Logger) *llmSummarizer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = defaultBreakerTimeout
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = defaultMaxFailures
	}

	breakerName := collaboratorName + "-" + cfg.Provider
	breaker := httpx.NewCircuitBreaker(breakerName, cfg.BreakerTimeout, cfg.MaxFailures,
		httpx.WithStateChangeHook(func(name, from, to string) {
			logger.WithFields(logrus.Fields{"breaker": name, "from": from, "to": to}).
				Warn("summarizer circuit breaker changed state")
			prometheus.SetBreakerState(name, to)
		}),
	)

	return &llmSummarizer{
		client: client,
		config: providers.Config{
			Credentials: providers.Credentials{
				ApiKey:     cfg.APIKey,
				Azure:      cfg.Azure,
				AwsBedrock: cfg.Bedrock,
			},
			Model:       cfg.Model,
			BaseURL:     cfg.BaseURL,
			Temperature: 0.2,
		},
		breaker: breaker,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

// Ready is false while the breaker is open.
func (s *llmSummarizer) Ready() bool {
	return s.client != nil && s.breaker.State() != "open"
}

func (s *llmSummarizer) Summarize(ctx context.Context, text string, maxLen, minLen int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cfg := s.config
	cfg.Length = providers.Length{Min: minLen, Max: maxLen}

	var resp *providers.Summary
	start := time.Now()
	err := s.breaker.Execute(func() error {
		var callErr error
		resp, callErr = s.client.Summarize(ctx, &cfg, text)
		return callErr
	})
	elapsed := time.Since(start)

	if err != nil {
		outcome := prometheus.OutcomeError
		if httpx.IsOpen(err) {
			outcome = prometheus.OutcomeOpen
		}
		prometheus.ObserveCollaborator(collaboratorName, outcome, elapsed)
		return "", fmt.Errorf("summarize: %w", err)
	}

	prometheus.ObserveCollaborator(collaboratorName, prometheus.OutcomeSuccess, elapsed)
	s.logger.WithFields(logrus.Fields{
		"model":             resp.Model,
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
		"duration_ms":       elapsed.Milliseconds(),
	}).Debug("summary completion received")

	return resp.Text, nil
}
