package middleware

import "github.com/gofiber/fiber/v2"

type Middleware interface {
	Middleware() fiber.Handler
}

type Transport struct {
	MetricsMiddleware  Middleware
	PipelineMiddleware Middleware
	CORSMiddleware     Middleware
	AuthMiddleware     Middleware
}

// Global returns the middlewares installed on every route, outermost first.
func (t Transport) Global() []Middleware {
	var out []Middleware
	for _, m := range []Middleware{t.MetricsMiddleware, t.PipelineMiddleware, t.CORSMiddleware} {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}
