package domain

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindInvalidCredential
	KindRateLimited
	KindValidation
	KindBadRequest
	KindUpstream
)

const internalDetail = "Internal server error"

var (
	ErrInvalidCredential = &APIError{Kind: KindInvalidCredential, Detail: "Invalid or missing API key"}
	ErrRateLimited       = &APIError{Kind: KindRateLimited, Detail: "Rate limit exceeded. Please try again later."}
)

// APIError is the error shape every layer returns to the request pipeline.
// Detail is safe to show to callers for client-side kinds; Err carries the
// underlying cause and is only ever logged.
type APIError struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is matches on Kind so wrapped copies of the sentinels still compare equal.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Kind == e.Kind
}

func (e *APIError) StatusCode() int {
	switch e.Kind {
	case KindInvalidCredential:
		return http.StatusUnauthorized
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicDetail never exposes the cause of server-side failures.
func (e *APIError) PublicDetail() string {
	if e.StatusCode() >= http.StatusInternalServerError {
		return internalDetail
	}
	return e.Detail
}

func (e *APIError) IsAuth() bool {
	return e.Kind == KindInvalidCredential || e.Kind == KindRateLimited
}

func NewValidation(detail string) error {
	return &APIError{Kind: KindValidation, Detail: detail}
}

func NewBadRequest(detail string) error {
	return &APIError{Kind: KindBadRequest, Detail: detail}
}

func NewUpstream(detail string, err error) error {
	return &APIError{Kind: KindUpstream, Detail: detail, Err: err}
}

func NewInternal(err error) error {
	return &APIError{Kind: KindInternal, Detail: internalDetail, Err: err}
}

// AsAPIError classifies any error. Unknown errors become internal faults.
func AsAPIError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &APIError{Kind: KindInternal, Detail: internalDetail, Err: err}
}
