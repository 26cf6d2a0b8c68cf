package http

import (
	"github.com/NeuralTrust/UniSummarize/pkg/common"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type BaseHandler struct {
	logger *logrus.Logger
}

func NewBaseHandler(logger *logrus.Logger) *BaseHandler {
	return &BaseHandler{logger: logger}
}

// requestLogger returns an entry carrying the request and client ids set by
// the middleware chain.
func (h *BaseHandler) requestLogger(c *fiber.Ctx) *logrus.Entry {
	fields := logrus.Fields{}
	if id, ok := c.Locals(common.RequestIDKey).(string); ok {
		fields["request_id"] = id
	}
	if id, ok := c.Locals(common.ClientIDKey).(string); ok {
		fields["client_id"] = id
	}
	return h.logger.WithFields(fields)
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}
