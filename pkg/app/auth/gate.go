package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"time"

	domainErrors "github.com/NeuralTrust/UniSummarize/pkg/domain/errors"
	"github.com/NeuralTrust/UniSummarize/pkg/domain/ratelimit"
)

// Gate admits a request when its credential matches the configured secret
// and the client is still under its rate limit.
type Gate interface {
	Authorize(credential, clientID string, now time.Time) (*ratelimit.Decision, error)
}

type gate struct {
	secret    [sha256.Size]byte
	hasSecret bool
	limiter   ratelimit.Limiter
}

// NewGate builds a Gate. A nil limiter disables rate limiting; an empty
// secret rejects every credential.
func NewGate(secret string, limiter ratelimit.Limiter) Gate {
	return &gate{
		secret:    sha256.Sum256([]byte(secret)),
		hasSecret: secret != "",
		limiter:   limiter,
	}
}

func (g *gate) Authorize(credential, clientID string, now time.Time) (*ratelimit.Decision, error) {
	if !g.validCredential(credential) {
		return nil, domainErrors.ErrInvalidCredential
	}

	if g.limiter == nil {
		return nil, nil
	}

	decision := g.limiter.Admit(clientID, now)
	if !decision.Allowed {
		return &decision, domainErrors.ErrRateLimited
	}
	return &decision, nil
}

// validCredential hashes both sides so the comparison time does not depend
// on the presented length.
func (g *gate) validCredential(credential string) bool {
	presented := sha256.Sum256([]byte(credential))
	match := subtle.ConstantTimeCompare(presented[:], g.secret[:]) == 1
	return g.hasSecret && credential != "" && match
}
