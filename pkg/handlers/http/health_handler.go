package http

import (
	"time"

	"github.com/NeuralTrust/UniSummarize/pkg/version"
	"github.com/gofiber/fiber/v2"
)

type ReadinessChecker interface {
	Ready() bool
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Version   string            `json:"version"`
}

type healthHandler struct {
	summarizer ReadinessChecker
	now        func() time.Time
}

func NewHealthHandler(summarizer ReadinessChecker, now func() time.Time) Handler {
	if now == nil {
		now = time.Now
	}
	return &healthHandler{summarizer: summarizer, now: now}
}

// Handle @Summary Health check
// @Description Reports service status and whether the summarization model is reachable. Does not require an API key.
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func (h *healthHandler) Handle(c *fiber.Ctx) error {
	summarizer := "offline"
	if h.summarizer != nil && h.summarizer.Ready() {
		summarizer = "online"
	}
	return c.Status(fiber.StatusOK).JSON(HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
		Services: map[string]string{
			"api":        "online",
			"summarizer": summarizer,
		},
		Version: version.Version,
	})
}
