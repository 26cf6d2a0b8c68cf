package router

import (
	_ "github.com/NeuralTrust/UniSummarize/docs"
	handlers "github.com/NeuralTrust/UniSummarize/pkg/handlers/http"
	"github.com/NeuralTrust/UniSummarize/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

const (
	APIPrefix         = "/api"
	HealthPath        = "/api/health"
	VersionPath       = "/version"
	DocsPath          = "/docs/*"
	SummarizePath     = "/summarize"
	SummarizeFilePath = "/summarize/file"
)

type apiRouter struct {
	middlewareTransport middleware.Transport
	handlerTransport    handlers.HandlerTransport
}

func NewAPIRouter(
	middlewareTransport middleware.Transport,
	handlerTransport handlers.HandlerTransport,
) ServerRouter {
	return &apiRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	h := r.handlerTransport
	if h.SummarizeHandler == nil || h.SummarizeFileHandler == nil || h.HealthHandler == nil || h.VersionHandler == nil {
		return ErrInvalidHandlerTransport
	}

	for _, m := range r.middlewareTransport.Global() {
		router.Use(m.Middleware())
	}

	// Registered ahead of the /api group so they never reach the auth gate.
	router.Get(HealthPath, h.HealthHandler.Handle)
	router.Get(VersionPath, h.VersionHandler.Handle)
	router.Get(DocsPath, swagger.New(swagger.Config{
		URL:         "/docs/doc.json",
		Title:       "UniSummarize API",
		DeepLinking: true,
	}))

	api := router.Group(APIPrefix)
	if r.middlewareTransport.AuthMiddleware != nil {
		api.Use(r.middlewareTransport.AuthMiddleware.Middleware())
	}
	{
		api.Post(SummarizePath, h.SummarizeHandler.Handle)
		api.Post(SummarizeFilePath, h.SummarizeFileHandler.Handle)
	}
	return nil
}
