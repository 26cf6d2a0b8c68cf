package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/NeuralTrust/UniSummarize/pkg/common"
	domainErrors "github.com/NeuralTrust/UniSummarize/pkg/domain/errors"
	"github.com/NeuralTrust/UniSummarize/pkg/types"
	"github.com/NeuralTrust/UniSummarize/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type pipelineMiddleware struct {
	logger *logrus.Logger
	now    func() time.Time
}

// NewPipelineMiddleware tracks every request from receipt to its terminal
// state. It recovers panics, renders errors as the JSON envelope and emits
// exactly one log record per request before the response leaves.
func NewPipelineMiddleware(logger *logrus.Logger, now func() time.Time) Middleware {
	if now == nil {
		now = time.Now
	}
	return &pipelineMiddleware{logger: logger, now: now}
}

func (m *pipelineMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		reqCtx := &types.RequestContext{
			ID:        requestID(c),
			Method:    c.Method(),
			Path:      c.Path(),
			ClientIP:  c.IP(),
			StartTime: m.now(),
			Headers:   utils.RedactHeaders(c.GetReqHeaders(), common.SensitiveHeaders),
			UserAgent: utils.ParseUserAgent(c.Get(fiber.HeaderUserAgent), c.Get(fiber.HeaderAcceptLanguage)),
			State:     types.StateReceived,
		}
		c.Locals(common.RequestContextKey, reqCtx)
		c.Locals(common.RequestIDKey, reqCtx.ID)
		c.Set(common.RequestIDHeader, reqCtx.ID)

		defer func() {
			var stack []byte
			if r := recover(); r != nil {
				err = domainErrors.NewInternal(fmt.Errorf("panic recovered: %v", r))
				stack = debug.Stack()
			}
			err = m.finish(c, reqCtx, err, stack)
		}()

		return c.Next()
	}
}

func (m *pipelineMiddleware) finish(c *fiber.Ctx, reqCtx *types.RequestContext, err error, stack []byte) error {
	state := reqCtx.Finish(err != nil)
	duration := reqCtx.Duration(m.now())

	status := c.Response().StatusCode()
	if err != nil {
		status, _ = Classify(err)
	}
	// A streamed body may be left partly unread, so the connection cannot
	// carry another request.
	if c.Request().IsBodyStream() {
		c.Context().SetConnectionClose()
	}

	fields := logrus.Fields{
		"request_id":  reqCtx.ID,
		"method":      reqCtx.Method,
		"path":        reqCtx.Path,
		"client_id":   reqCtx.ClientID,
		"client_ip":   reqCtx.ClientIP,
		"status":      status,
		"duration_ms": float64(duration.Microseconds()) / 1000,
		"state":       string(state),
		"headers":     reqCtx.Headers,
	}
	if reqCtx.UserAgent != nil {
		fields["user_agent"] = reqCtx.UserAgent
	}
	if stack != nil {
		fields["stack"] = string(stack)
	}

	entry := m.logger.WithFields(fields)
	if err != nil {
		entry = entry.WithError(err)
	}
	switch {
	case status >= http.StatusInternalServerError:
		entry.Error("request faulted")
	case status >= http.StatusBadRequest:
		entry.Warn("request rejected")
	default:
		entry.Info("request completed")
	}

	if err == nil {
		return nil
	}
	if writeErr := WriteError(c, err); writeErr != nil {
		m.logger.WithError(writeErr).WithField("request_id", reqCtx.ID).Error("failed to write error response")
		return writeErr
	}
	return nil
}

func requestID(c *fiber.Ctx) string {
	if id := c.Get(common.RequestIDHeader); id != "" && len(id) <= 128 {
		return id
	}
	return uuid.NewString()
}

// NewErrorHandler renders errors raised by Fiber itself, outside the
// middleware chain, with the same envelope.
func NewErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, _ := Classify(err)
		logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
			"status": status,
		}).Warn("request failed before routing")
		return WriteError(c, err)
	}
}
