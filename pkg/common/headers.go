package common

const (
	APIKeyHeader    = "X-API-Key"
	ClientIDHeader  = "X-Client-ID"
	RequestIDHeader = "X-Request-ID"

	RateLimitLimitHeader     = "X-RateLimit-Limit"
	RateLimitRemainingHeader = "X-RateLimit-Remaining"
	RateLimitResetHeader     = "X-RateLimit-Reset"
)

// SensitiveHeaders are redacted before request headers reach the logs.
var SensitiveHeaders = []string{
	APIKeyHeader,
	"Authorization",
	"Cookie",
	"Set-Cookie",
	"Proxy-Authorization",
}
