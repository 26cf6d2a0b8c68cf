package ratelimit

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// StartJanitor evicts idle clients every interval until ctx is cancelled.
// now is usually time.Now.
func (l *SlidingWindow) StartJanitor(
	ctx context.Context,
	interval time.Duration,
	now func() time.Time,
	logger *logrus.Logger,
) {
	if interval <= 0 {
		return
	}
	if now == nil {
		now = time.Now
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				evicted := l.Cleanup(now())
				if evicted > 0 && logger != nil {
					logger.WithFields(logrus.Fields{
						"evicted": evicted,
						"active":  l.ActiveClients(),
					}).Debug("rate limiter janitor evicted idle clients")
				}
			}
		}
	}()
}
