package utils

import (
	"net/http"
	"strings"
)

const redacted = "[REDACTED]"

// RedactHeaders flattens request headers for logging, masking every header
// named in sensitive.
func RedactHeaders(headers map[string][]string, sensitive []string) map[string]string {
	out := make(map[string]string, len(headers))
	for key, values := range headers {
		canonical := http.CanonicalHeaderKey(key)
		if isSensitive(canonical, sensitive) {
			out[canonical] = redacted
			continue
		}
		out[canonical] = strings.Join(values, ", ")
	}
	return out
}

func isSensitive(key string, sensitive []string) bool {
	for _, s := range sensitive {
		if strings.EqualFold(key, s) {
			return true
		}
	}
	return false
}
