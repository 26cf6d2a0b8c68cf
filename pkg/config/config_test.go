package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, []string{"http://localhost:8000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, int64(10*1024*1024), cfg.Server.MaxFileSize)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 100, cfg.RateLimit.Limit)
	assert.Equal(t, time.Minute, cfg.RateLimit.CleanupInterval)
	assert.Equal(t, "openai", cfg.Summarizer.Provider)
	assert.Equal(t, 130, cfg.Summarizer.MaxLength)
	assert.Equal(t, 30, cfg.Summarizer.MinLength)
	assert.Equal(t, []string{"eng"}, cfg.Extraction.OCRLanguages)
	assert.Equal(t, 5*time.Second, cfg.Extraction.URLCheckTimeout)
	assert.Equal(t, 9090, cfg.Metrics.Port)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("API_KEY", "secret")
	t.Setenv("RATE_LIMIT", "5")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("PORT", "9000")
	t.Setenv("DEBUG", "true")
	t.Setenv("SUMMARIZER_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OCR_LANGUAGES", "eng,fra")
	t.Setenv("FETCH_TIMEOUT", "10s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Auth.APIKey)
	assert.Equal(t, 5, cfg.RateLimit.Limit)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.Logging.Debug)
	assert.Equal(t, "sk-ant", cfg.Summarizer.APIKey())
	assert.Equal(t, []string{"eng", "fra"}, cfg.Extraction.OCRLanguages)
	assert.Equal(t, 10*time.Second, cfg.Extraction.FetchTimeout)
}

func TestLoad_YAMLFile(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	yaml := []byte("rate_limit: 7\nsummarizer_provider: bedrock\naws_region: eu-west-1\nocr_languages:\n  - eng\n  - spa\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.RateLimit.Limit)
	assert.Equal(t, "bedrock", cfg.Summarizer.Provider)
	assert.Equal(t, "eu-west-1", cfg.Summarizer.AWS.Region)
	assert.Equal(t, []string{"eng", "spa"}, cfg.Extraction.OCRLanguages)
	assert.Empty(t, cfg.Summarizer.APIKey())
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := map[string]string{
		"RATE_LIMIT":          "-1",
		"SUMMARIZER_PROVIDER": "mistral",
		"MIN_SUMMARY_LENGTH":  "500",
		"MAX_FILE_SIZE":       "0",
		"METRICS_PORT":        "8000",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load("")
			assert.ErrorContains(t, err, "invalid configuration")
		})
	}
}
