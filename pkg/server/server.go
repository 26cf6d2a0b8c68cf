package server

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NeuralTrust/UniSummarize/pkg/config"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/prometheus"
	"github.com/NeuralTrust/UniSummarize/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const (
	MetricsPath     = "/metrics"
	shutdownTimeout = 15 * time.Second
	// multipart framing and form fields on top of the largest allowed file
	bodyLimitSlack = 1 << 20
)

// Server interface defines the common behavior for all servers
type Server interface {
	Run() error
	Shutdown() error
}

type BaseServer struct {
	Config     *config.Config
	Logger     *logrus.Logger
	Router     *fiber.App
	metricsApp *fiber.App
}

func NewBaseServer(cfg *config.Config, logger *logrus.Logger) *BaseServer {
	r := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReduceMemoryUsage:     true,
		Network:               fiber.NetworkTCP,
		EnablePrintRoutes:     false,
		BodyLimit:             bodyLimit(cfg.Server.MaxFileSize),
		// Bodies above BodyLimit are streamed to the handler instead of
		// being refused by the transport, and multipart parsing waits until
		// the request has passed auth.
		StreamRequestBody:            true,
		DisablePreParseMultipartForm: true,
		ReadTimeout:           60 * time.Second,
		WriteTimeout:          120 * time.Second,
		IdleTimeout:           120 * time.Second,
		ErrorHandler:          middleware.NewErrorHandler(logger),
	})

	r.Server().NoDefaultServerHeader = true

	return &BaseServer{
		Config: cfg,
		Logger: logger,
		Router: r,
	}
}

// bodyLimit is the largest body buffered in memory. Anything larger still
// reaches the handlers as a stream.
func bodyLimit(maxFileSize int64) int {
	return int(maxFileSize) + bodyLimitSlack
}

func (s *BaseServer) setupMetricsEndpoint() {
	if !s.Config.Metrics.Enabled {
		s.Logger.Info("prometheus metrics are disabled by configuration")
		return
	}
	if s.metricsApp != nil {
		return
	}

	s.metricsApp = fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	s.metricsApp.Use(recover.New())

	handler := fasthttpadaptor.NewFastHTTPHandler(prometheus.Handler())
	s.metricsApp.Get(MetricsPath, func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	})

	// Served on its own port, outside auth and the request pipeline.
	go func() {
		addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Metrics.Port)
		s.Logger.WithField("addr", addr).Info("starting metrics server")
		if err := s.metricsApp.Listen(addr); err != nil {
			if !strings.Contains(err.Error(), "address already in use") {
				s.Logger.WithError(err).Error("failed to start metrics server")
			}
		}
	}()
}

func (s *BaseServer) Shutdown() error {
	var errs []error
	if err := s.Router.ShutdownWithTimeout(shutdownTimeout); err != nil {
		errs = append(errs, err)
	}
	if s.metricsApp != nil {
		if err := s.metricsApp.ShutdownWithTimeout(shutdownTimeout); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
