package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NeuralTrust/UniSummarize/pkg/app/auth"
	"github.com/NeuralTrust/UniSummarize/pkg/app/ratelimit"
	"github.com/NeuralTrust/UniSummarize/pkg/app/summary"
	"github.com/NeuralTrust/UniSummarize/pkg/config"
	domainRatelimit "github.com/NeuralTrust/UniSummarize/pkg/domain/ratelimit"
	handlers "github.com/NeuralTrust/UniSummarize/pkg/handlers/http"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/extractor"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/httpx"
	infraLogger "github.com/NeuralTrust/UniSummarize/pkg/infra/logger"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/prometheus"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/providers"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/providers/factory"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/summarizer"
	"github.com/NeuralTrust/UniSummarize/pkg/middleware"
	"github.com/NeuralTrust/UniSummarize/pkg/server"
	"github.com/NeuralTrust/UniSummarize/pkg/version"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const corsMaxAge = "600"

// @title UniSummarize API
// @version 1.0.0
// @description Summarization of text, web pages and documents behind an API key gate.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, closeLogger, err := infraLogger.NewLogger(infraLogger.Options{
		Level: cfg.Logging.Level,
		Debug: cfg.Logging.Debug,
		File:  cfg.Logging.File,
	})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer closeLogger()

	if cfg.Auth.APIKey == "" {
		logger.Warn("API_KEY is not set; every protected request will be rejected")
	}

	prometheus.Initialize()
	httpClient := httpx.NewFastHTTPClient(httpx.WithTimeout(cfg.Extraction.FetchTimeout))

	// rate limiting
	var limiter domainRatelimit.Limiter
	if cfg.RateLimit.Enabled {
		window := ratelimit.NewSlidingWindow(cfg.RateLimit.Limit, domainRatelimit.DefaultWindow)
		window.StartJanitor(ctx, cfg.RateLimit.CleanupInterval, time.Now, logger)
		if err := prometheus.RegisterActiveClients(window.ActiveClients); err != nil {
			logger.WithError(err).Warn("failed to register active clients gauge")
		}
		limiter = window
	} else {
		logger.Warn("rate limiting is disabled by configuration")
	}
	gate := auth.NewGate(cfg.Auth.APIKey, limiter)

	// collaborators
	tika := extractor.NewTika(httpClient, extractor.TikaConfig{
		URL:          cfg.Extraction.TikaURL,
		OCRLanguages: cfg.Extraction.OCRLanguages,
		Timeout:      cfg.Extraction.FetchTimeout,
	}, logger)

	orchestrator := summary.NewOrchestrator(summary.Dependencies{
		Summarizer: newSummarizer(cfg, factory.NewProviderLocator(httpClient), logger),
		Documents:  tika,
		Images:     tika,
		Pages:      extractor.NewWebPageFetcher(httpClient, cfg.Extraction.FetchTimeout, logger),
		URLs:       extractor.NewURLValidator(httpClient, cfg.Extraction.URLCheckTimeout),
		Logger:     logger,
		MaxLength:  cfg.Summarizer.MaxLength,
		MinLength:  cfg.Summarizer.MinLength,
	})

	middlewareTransport := middleware.Transport{
		MetricsMiddleware:  middleware.NewMetricsMiddleware(time.Now),
		PipelineMiddleware: middleware.NewPipelineMiddleware(logger, time.Now),
		CORSMiddleware: middleware.NewCORSGlobalMiddleware(
			cfg.Server.CORSOrigins,
			middleware.DefaultCORSMethods,
			true,
			middleware.DefaultCORSExpose,
			corsMaxAge,
		),
		AuthMiddleware: middleware.NewAuthMiddleware(logger, gate, time.Now),
	}

	handlerTransport := handlers.HandlerTransport{
		SummarizeHandler:     handlers.NewSummarizeHandler(logger, orchestrator),
		SummarizeFileHandler: handlers.NewSummarizeFileHandler(logger, orchestrator, cfg.Server.MaxFileSize),
		HealthHandler:        handlers.NewHealthHandler(orchestrator, time.Now),
		VersionHandler:       handlers.NewGetVersionHandler(),
	}

	srv, err := server.NewAPIServer(server.APIServerDI{
		Config:              cfg,
		Logger:              logger,
		MiddlewareTransport: middlewareTransport,
		HandlerTransport:    handlerTransport,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to build server")
	}

	logger.WithFields(logrus.Fields{
		"version":    version.Version,
		"provider":   cfg.Summarizer.Provider,
		"rate_limit": cfg.RateLimit.Limit,
		"limiting":   cfg.RateLimit.Enabled,
	}).Info("UniSummarize starting")

	go func() {
		if err := srv.Run(); err != nil {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")
	cancel()
	if err := srv.Shutdown(); err != nil {
		logger.WithError(err).Error("error shutting down server")
		closeLogger()
		os.Exit(1)
	}
	logger.Info("server gracefully stopped")
}

// newSummarizer returns nil when the selected provider has no usable
// credentials, which the health endpoint reports as offline.
func newSummarizer(cfg *config.Config, locator factory.ProviderLocator, logger *logrus.Logger) summary.Summarizer {
	sc := cfg.Summarizer
	if !credentialsConfigured(sc) {
		logger.WithField("provider", sc.Provider).Warn("summarization provider has no credentials configured")
		return nil
	}

	llmConfig := summarizer.Config{
		Provider: sc.Provider,
		Model:    sc.Model,
		APIKey:   sc.APIKey(),
		BaseURL:  sc.BaseURL,
	}
	switch sc.Provider {
	case factory.ProviderAzure:
		llmConfig.Azure = &providers.AzureCredentials{
			Endpoint:    sc.Azure.Endpoint,
			ApiVersion:  sc.Azure.APIVersion,
			UseIdentity: sc.Azure.UseIdentity,
		}
	case factory.ProviderBedrock:
		llmConfig.Bedrock = &providers.AwsBedrockCredentials{
			Region:       sc.AWS.Region,
			AccessKey:    sc.AWS.AccessKey,
			SecretKey:    sc.AWS.SecretKey,
			SessionToken: sc.AWS.SessionToken,
			UseRole:      sc.AWS.RoleARN != "",
			RoleARN:      sc.AWS.RoleARN,
		}
	}

	s, err := summarizer.NewLLMSummarizer(locator, llmConfig, logger)
	if err != nil {
		logger.WithError(err).Error("failed to initialize summarizer")
		return nil
	}
	return s
}

func credentialsConfigured(sc config.SummarizerConfig) bool {
	switch sc.Provider {
	case factory.ProviderBedrock:
		// The default AWS credential chain may still resolve credentials.
		return sc.AWS.Region != ""
	case factory.ProviderAzure:
		return sc.Azure.Endpoint != "" && (sc.Azure.APIKey != "" || sc.Azure.UseIdentity)
	default:
		return sc.APIKey() != ""
	}
}
