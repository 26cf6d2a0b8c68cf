package http

import (
	"github.com/NeuralTrust/UniSummarize/pkg/app/summary"
	domainErrors "github.com/NeuralTrust/UniSummarize/pkg/domain/errors"
	"github.com/NeuralTrust/UniSummarize/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type summarizeHandler struct {
	*BaseHandler
	orchestrator summary.Orchestrator
}

func NewSummarizeHandler(logger *logrus.Logger, orchestrator summary.Orchestrator) Handler {
	return &summarizeHandler{
		BaseHandler:  NewBaseHandler(logger),
		orchestrator: orchestrator,
	}
}

// Handle @Summary Summarize text or a web page
// @Description Summarizes raw text, or the readable text of a URL when input_type is "url"
// @Tags Summarize
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param X-Client-ID header string false "Client identifier used for rate limiting"
// @Param request body request.SummarizeRequest true "Summarization request"
// @Success 200 {object} SummaryResponse
// @Failure 400 {object} middleware.ErrorEnvelope
// @Failure 401 {object} middleware.ErrorEnvelope
// @Failure 422 {object} middleware.ErrorEnvelope
// @Failure 429 {object} middleware.ErrorEnvelope
// @Failure 500 {object} middleware.ErrorEnvelope
// @Router /api/summarize [post]
func (h *summarizeHandler) Handle(c *fiber.Ctx) error {
	// Only bodies over the server's buffer limit arrive as a stream.
	if c.Request().IsBodyStream() {
		return fiber.ErrRequestEntityTooLarge
	}

	var req request.SummarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return &domainErrors.APIError{
			Kind:   domainErrors.KindValidation,
			Detail: "Invalid request body",
			Err:    err,
		}
	}
	if err := req.Validate(); err != nil {
		return err
	}

	h.requestLogger(c).WithFields(logrus.Fields{
		"input_type": req.InputType,
		"domain":     req.Domain,
		"format":     req.Format,
	}).Debug("processing summarization request")

	var (
		result string
		err    error
	)
	switch summary.InputType(req.InputType) {
	case summary.InputURL:
		result, err = h.orchestrator.SummarizeURL(c.UserContext(), *req.Content, req.Options())
	default:
		result, err = h.orchestrator.SummarizeText(c.UserContext(), *req.Content, req.Options())
	}
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(SummaryResponse{Summary: result})
}
