package domain_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	domain "github.com/NeuralTrust/UniSummarize/pkg/domain/errors"
	"github.com/stretchr/testify/assert"
)

func TestAPIError_StatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"invalid credential", domain.ErrInvalidCredential, http.StatusUnauthorized, "Invalid or missing API key"},
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later."},
		{"validation", domain.NewValidation("domain is invalid"), http.StatusUnprocessableEntity, "domain is invalid"},
		{"bad request", domain.NewBadRequest("content must not be empty"), http.StatusBadRequest, "content must not be empty"},
		{"upstream", domain.NewUpstream("summarizer failed", errors.New("model offline")), http.StatusInternalServerError, "Internal server error"},
		{"internal", domain.NewInternal(errors.New("nil map")), http.StatusInternalServerError, "Internal server error"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := domain.AsAPIError(tt.err)
			assert.Equal(t, tt.status, apiErr.StatusCode())
			assert.Equal(t, tt.detail, apiErr.PublicDetail())
		})
	}
}

func TestAPIError_WrappingKeepsKind(t *testing.T) {
	wrapped := fmt.Errorf("authorize: %w", domain.ErrRateLimited)

	assert.True(t, errors.Is(wrapped, domain.ErrRateLimited))
	assert.False(t, errors.Is(wrapped, domain.ErrInvalidCredential))
	assert.True(t, domain.AsAPIError(wrapped).IsAuth())
}

func TestAPIError_UpstreamCauseIsLoggedNotExposed(t *testing.T) {
	cause := errors.New("connection refused")
	err := domain.NewUpstream("document extraction failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NotContains(t, domain.AsAPIError(err).PublicDetail(), "connection refused")
}

func TestAsAPIError_Nil(t *testing.T) {
	assert.Nil(t, domain.AsAPIError(nil))
}
