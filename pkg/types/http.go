package types

import (
	"fmt"
	"time"

	"github.com/NeuralTrust/UniSummarize/pkg/common"
	"github.com/NeuralTrust/UniSummarize/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type State string

const (
	StateReceived    State = "received"
	StateAuthorizing State = "authorizing"
	StateRejected    State = "rejected"
	StateAdmitted    State = "admitted"
	StateHandling    State = "handling"
	StateCompleted   State = "completed"
	StateFaulted     State = "faulted"
)

var transitions = map[State][]State{
	StateReceived:    {StateAuthorizing, StateHandling},
	StateAuthorizing: {StateRejected, StateAdmitted},
	StateAdmitted:    {StateHandling},
	StateHandling:    {StateCompleted, StateFaulted},
}

func (s State) Terminal() bool {
	return s == StateRejected || s == StateCompleted || s == StateFaulted
}

// RequestContext follows one request from the moment it is received until
// its terminal log record is written.
type RequestContext struct {
	ID        string
	Method    string
	Path      string
	ClientID  string
	ClientIP  string
	StartTime time.Time
	Headers   map[string]string
	UserAgent *utils.UserAgentInfo
	State     State
}

// Enter moves the request to the next state of its lifecycle.
func (r *RequestContext) Enter(next State) error {
	for _, allowed := range transitions[r.State] {
		if allowed == next {
			r.State = next
			return nil
		}
	}
	return fmt.Errorf("invalid request state transition %s -> %s", r.State, next)
}

// Finish settles the terminal state for the outcome of the handler chain.
// A failure while authorizing is a rejection, any other failure a fault.
func (r *RequestContext) Finish(failed bool) State {
	if r.State.Terminal() {
		return r.State
	}
	if r.State == StateAuthorizing && failed {
		r.State = StateRejected
		return r.State
	}
	if failed {
		r.State = StateFaulted
	} else {
		r.State = StateCompleted
	}
	return r.State
}

func (r *RequestContext) Duration(now time.Time) time.Duration {
	return now.Sub(r.StartTime)
}

// RequestContextFrom returns the context stored by the request pipeline, or
// nil when the pipeline is not installed.
func RequestContextFrom(c *fiber.Ctx) *RequestContext {
	reqCtx, _ := c.Locals(common.RequestContextKey).(*RequestContext)
	return reqCtx
}
