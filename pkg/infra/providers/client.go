package providers

import (
	"context"
	"errors"
)

var (
	ErrNoText       = errors.New("no text to summarize")
	ErrEmptySummary = errors.New("model returned an empty summary")
)

type Config struct {
	Credentials Credentials
	Model       string
	BaseURL     string
	Temperature float64
	Length      Length
}

// Length bounds a summary in words.
type Length struct {
	Min int
	Max int
}

type Credentials struct {
	ApiKey     string
	Azure      *AzureCredentials
	AwsBedrock *AwsBedrockCredentials
}

type AzureCredentials struct {
	Endpoint    string
	ApiVersion  string
	UseIdentity bool
}

type AwsBedrockCredentials struct {
	Region       string
	AccessKey    string
	SecretKey    string
	SessionToken string
	UseRole      bool
	RoleARN      string
}

type Summary struct {
	ID    string
	Model string
	Text  string
	Usage Usage
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore

// Client summarizes text with one model provider.
type Client interface {
	Summarize(ctx context.Context, config *Config, text string) (*Summary, error)
}
