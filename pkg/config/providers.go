package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type SummarizerConfig struct {
	Provider  string `mapstructure:"summarizer_provider"`
	Model     string `mapstructure:"summarization_model"`
	BaseURL   string `mapstructure:"summarizer_base_url"`
	MaxLength int    `mapstructure:"max_summary_length"`
	MinLength int    `mapstructure:"min_summary_length"`

	OpenAIKey    string `mapstructure:"openai_api_key"`
	AnthropicKey string `mapstructure:"anthropic_api_key"`
	GoogleKey    string `mapstructure:"google_api_key"`

	AWS   AWSConfig   `mapstructure:",squash"`
	Azure AzureConfig `mapstructure:",squash"`
}

type AWSConfig struct {
	Region       string `mapstructure:"aws_region"`
	AccessKey    string `mapstructure:"aws_access_key_id"`
	SecretKey    string `mapstructure:"aws_secret_access_key"`
	SessionToken string `mapstructure:"aws_session_token"`
	RoleARN      string `mapstructure:"aws_role_arn"`
}

type AzureConfig struct {
	Endpoint    string `mapstructure:"azure_endpoint"`
	APIKey      string `mapstructure:"azure_api_key"`
	APIVersion  string `mapstructure:"azure_api_version"`
	UseIdentity bool   `mapstructure:"azure_use_identity"`
}

var supportedProviders = map[string]struct{}{
	"openai":    {},
	"anthropic": {},
	"google":    {},
	"bedrock":   {},
	"azure":     {},
}

func setSummarizerDefaults(v *viper.Viper) {
	v.SetDefault("summarizer_provider", "openai")
	v.SetDefault("summarization_model", "")
	v.SetDefault("summarizer_base_url", "")
	v.SetDefault("max_summary_length", 130)
	v.SetDefault("min_summary_length", 30)

	for _, key := range []string{
		"openai_api_key", "anthropic_api_key", "google_api_key",
		"aws_region", "aws_access_key_id", "aws_secret_access_key", "aws_session_token", "aws_role_arn",
		"azure_endpoint", "azure_api_key", "azure_api_version",
	} {
		v.SetDefault(key, "")
	}
	v.SetDefault("azure_use_identity", false)
}

// APIKey returns the credential of the selected provider. Bedrock uses the
// AWS fields instead.
func (s SummarizerConfig) APIKey() string {
	switch s.Provider {
	case "openai":
		return s.OpenAIKey
	case "anthropic":
		return s.AnthropicKey
	case "google":
		return s.GoogleKey
	case "azure":
		return s.Azure.APIKey
	}
	return ""
}

func (s SummarizerConfig) validate() error {
	if _, ok := supportedProviders[s.Provider]; !ok {
		return fmt.Errorf("unsupported summarizer_provider %q", s.Provider)
	}
	if s.MaxLength <= 0 || s.MinLength <= 0 {
		return errors.New("summary lengths must be positive")
	}
	if s.MinLength > s.MaxLength {
		return fmt.Errorf("min_summary_length %d exceeds max_summary_length %d", s.MinLength, s.MaxLength)
	}
	return nil
}
