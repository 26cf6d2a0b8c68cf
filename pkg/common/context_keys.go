package common

type contextKey string

const (
	RequestContextKey contextKey = "request_context"
	RequestIDKey      contextKey = "request_id"
	ClientIDKey       contextKey = "client_id"
)
