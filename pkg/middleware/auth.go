package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/NeuralTrust/UniSummarize/pkg/app/auth"
	"github.com/NeuralTrust/UniSummarize/pkg/common"
	"github.com/NeuralTrust/UniSummarize/pkg/domain/ratelimit"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/prometheus"
	"github.com/NeuralTrust/UniSummarize/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type authMiddleware struct {
	logger *logrus.Logger
	gate   auth.Gate
	now    func() time.Time
}

func NewAuthMiddleware(logger *logrus.Logger, gate auth.Gate, now func() time.Time) Middleware {
	if now == nil {
		now = time.Now
	}
	return &authMiddleware{
		logger: logger,
		gate:   gate,
		now:    now,
	}
}

func (m *authMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqCtx := types.RequestContextFrom(c)
		m.enter(reqCtx, types.StateAuthorizing)

		credential := c.Get(common.APIKeyHeader)
		clientID, logID := clientIdentity(c.Get(common.ClientIDHeader), credential)
		if reqCtx != nil {
			reqCtx.ClientID = logID
		}

		decision, err := m.gate.Authorize(credential, clientID, m.now())
		if decision != nil {
			prometheus.ObserveRateLimit(decision.Allowed)
		}
		if err != nil {
			m.logger.WithFields(logrus.Fields{
				"client_id": logID,
				"path":      c.Path(),
			}).WithError(err).Debug("request not authorized")
			m.enter(reqCtx, types.StateRejected)
			return err
		}

		m.enter(reqCtx, types.StateAdmitted)
		c.Locals(common.ClientIDKey, logID)
		m.enter(reqCtx, types.StateHandling)

		if err := c.Next(); err != nil {
			return err
		}
		if decision != nil && c.Response().StatusCode() < fiber.StatusBadRequest {
			setRateLimitHeaders(c, decision)
		}
		return nil
	}
}

func (m *authMiddleware) enter(reqCtx *types.RequestContext, state types.State) {
	if reqCtx == nil {
		return
	}
	if err := reqCtx.Enter(state); err != nil {
		m.logger.WithError(err).WithField("request_id", reqCtx.ID).Warn("unexpected request state")
	}
}

// clientIdentity returns the limiter key and the form of it safe to log.
// Without X-Client-ID the API key itself is the key, so only a digest of it
// is logged. Header values alias the request buffer, and the limiter keeps
// its key beyond the request, so the key is always copied.
func clientIdentity(header, credential string) (string, string) {
	if header != "" {
		id := utils.CopyString(header)
		return id, id
	}
	if credential == "" {
		return "", ""
	}
	sum := sha256.Sum256([]byte(credential))
	return utils.CopyString(credential), "key:" + hex.EncodeToString(sum[:4])
}

func setRateLimitHeaders(c *fiber.Ctx, d *ratelimit.Decision) {
	c.Set(common.RateLimitLimitHeader, strconv.Itoa(d.Limit))
	c.Set(common.RateLimitRemainingHeader, strconv.Itoa(d.Remaining))
	c.Set(common.RateLimitResetHeader, strconv.FormatInt(d.ResetAt.Unix(), 10))
}
