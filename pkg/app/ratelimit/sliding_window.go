package ratelimit

import (
	"sort"
	"sync"
	"time"

	"github.com/NeuralTrust/UniSummarize/pkg/domain/ratelimit"
)

// clientWindow holds the admission timestamps of one client, oldest first.
type clientWindow struct {
	timestamps []time.Time
}

// prune drops every timestamp strictly older than cutoff.
func (w *clientWindow) prune(cutoff time.Time) {
	i := sort.Search(len(w.timestamps), func(i int) bool {
		return !w.timestamps[i].Before(cutoff)
	})
	if i == 0 {
		return
	}
	w.timestamps = append(w.timestamps[:0], w.timestamps[i:]...)
}

// record keeps the slice ordered even when callers race with slightly older clocks.
func (w *clientWindow) record(now time.Time) {
	n := len(w.timestamps)
	if n == 0 || !now.Before(w.timestamps[n-1]) {
		w.timestamps = append(w.timestamps, now)
		return
	}
	i := sort.Search(n, func(i int) bool {
		return w.timestamps[i].After(now)
	})
	w.timestamps = append(w.timestamps, time.Time{})
	copy(w.timestamps[i+1:], w.timestamps[i:])
	w.timestamps[i] = now
}

// SlidingWindow is an in-process sliding window log limiter. A single mutex
// serializes map structure changes and per-client mutations.
type SlidingWindow struct {
	mu          sync.Mutex
	maxRequests int
	window      time.Duration
	clients     map[string]*clientWindow
}

func NewSlidingWindow(maxRequests int, window time.Duration) *SlidingWindow {
	if window <= 0 {
		window = ratelimit.DefaultWindow
	}
	return &SlidingWindow{
		maxRequests: maxRequests,
		window:      window,
		clients:     make(map[string]*clientWindow),
	}
}

func (l *SlidingWindow) Limit() int {
	return l.maxRequests
}

func (l *SlidingWindow) Window() time.Duration {
	return l.window
}

// Admit records now for clientID when the client is under its limit.
// Denied requests are never recorded.
func (l *SlidingWindow) Admit(clientID string, now time.Time) ratelimit.Decision {
	decision := ratelimit.Decision{
		Limit:   l.maxRequests,
		ResetAt: now.Add(l.window),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.clients[clientID]
	if ok {
		w.prune(now.Add(-l.window))
	}

	count := 0
	if ok {
		count = len(w.timestamps)
	}

	if l.maxRequests <= 0 || count >= l.maxRequests {
		if ok && count == 0 {
			delete(l.clients, clientID)
		}
		return decision
	}

	if !ok {
		w = &clientWindow{timestamps: make([]time.Time, 0, 1)}
		l.clients[clientID] = w
	}
	w.record(now)

	decision.Allowed = true
	decision.Remaining = l.maxRequests - len(w.timestamps)
	return decision
}

// Remaining reports how many more requests clientID could make at now
// without recording anything.
func (l *SlidingWindow) Remaining(clientID string, now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.clients[clientID]
	if !ok {
		return max(l.maxRequests, 0)
	}
	w.prune(now.Add(-l.window))
	if len(w.timestamps) == 0 {
		delete(l.clients, clientID)
	}
	return max(l.maxRequests-len(w.timestamps), 0)
}

// Cleanup prunes every window and evicts clients left with none.
// It returns the number of evicted clients.
func (l *SlidingWindow) Cleanup(now time.Time) int {
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for id, w := range l.clients {
		w.prune(cutoff)
		if len(w.timestamps) == 0 {
			delete(l.clients, id)
			evicted++
		}
	}
	return evicted
}

func (l *SlidingWindow) ActiveClients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
