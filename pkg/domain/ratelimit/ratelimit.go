package ratelimit

import "time"

// DefaultWindow is the trailing window every admission decision is computed over.
const DefaultWindow = time.Hour

// Decision is the outcome of a single admission check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter decides whether a client may issue one more request at now.
type Limiter interface {
	Admit(clientID string, now time.Time) Decision
}
