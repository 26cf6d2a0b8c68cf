package middleware

import (
	"errors"
	"net/http"

	domainErrors "github.com/NeuralTrust/UniSummarize/pkg/domain/errors"
	"github.com/gofiber/fiber/v2"
)

type errorBody struct {
	StatusCode int    `json:"status_code"`
	Detail     string `json:"detail"`
}

type ErrorEnvelope struct {
	Error errorBody `json:"error"`
}

// Classify maps any error escaping a handler to the status and detail sent
// to the client. Fiber errors keep their own status.
func Classify(err error) (int, string) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		if fiberErr.Code >= http.StatusInternalServerError {
			return fiberErr.Code, "Internal server error"
		}
		return fiberErr.Code, fiberErr.Message
	}
	apiErr := domainErrors.AsAPIError(err)
	return apiErr.StatusCode(), apiErr.PublicDetail()
}

// WriteError writes the error envelope shared by every failing response.
func WriteError(c *fiber.Ctx, err error) error {
	status, detail := Classify(err)
	return c.Status(status).JSON(ErrorEnvelope{Error: errorBody{StatusCode: status, Detail: detail}})
}
