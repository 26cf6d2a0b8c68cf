package middleware

import (
	"strings"

	"github.com/NeuralTrust/UniSummarize/pkg/common"
	"github.com/gofiber/fiber/v2"
)

var (
	DefaultCORSMethods = []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodOptions}
	DefaultCORSExpose  = []string{
		common.RequestIDHeader,
		common.RateLimitLimitHeader,
		common.RateLimitRemainingHeader,
		common.RateLimitResetHeader,
	}
)

type corsGlobalMiddleware struct {
	allowOrigins     []string
	allowMethods     []string
	allowCredentials bool
	exposeHeaders    []string
	maxAge           string
}

func NewCORSGlobalMiddleware(
	allowOrigins []string,
	allowMethods []string,
	allowCredentials bool,
	exposeHeaders []string,
	maxAge string,
) Middleware {
	return &corsGlobalMiddleware{
		allowOrigins:     allowOrigins,
		allowMethods:     allowMethods,
		allowCredentials: allowCredentials,
		exposeHeaders:    exposeHeaders,
		maxAge:           maxAge,
	}
}

func (m *corsGlobalMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" || !m.allowed(origin) {
			return c.Next()
		}

		c.Vary(fiber.HeaderOrigin)
		if m.allowCredentials || !hasStar(m.allowOrigins) {
			c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
		} else {
			c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		}
		if m.allowCredentials {
			c.Set(fiber.HeaderAccessControlAllowCredentials, "true")
		}
		if len(m.exposeHeaders) > 0 {
			c.Set(fiber.HeaderAccessControlExposeHeaders, strings.Join(m.exposeHeaders, ", "))
		}

		// Preflights are answered here, before authentication.
		if c.Method() == fiber.MethodOptions && c.Get(fiber.HeaderAccessControlRequestMethod) != "" {
			c.Set(fiber.HeaderAccessControlAllowMethods, strings.Join(m.allowMethods, ", "))
			if reqHeaders := c.Get(fiber.HeaderAccessControlRequestHeaders); reqHeaders != "" {
				c.Set(fiber.HeaderAccessControlAllowHeaders, reqHeaders)
			} else {
				c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type, "+common.APIKeyHeader)
			}
			if m.maxAge != "" {
				c.Set(fiber.HeaderAccessControlMaxAge, m.maxAge)
			}
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}

func (m *corsGlobalMiddleware) allowed(origin string) bool {
	for _, o := range m.allowOrigins {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

func hasStar(arr []string) bool {
	for _, v := range arr {
		if v == "*" {
			return true
		}
	}
	return false
}
