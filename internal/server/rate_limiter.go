package server

import (
	"sync"
	"time"
)

// ipThrottle caps how many requests a single client IP may make within a
// fixed window. The credential endpoints and the newsletter form are the
// only unauthenticated writes, so they each get their own throttle.
type ipThrottle struct {
	budget int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	clients map[string]*ipWindow
}

type ipWindow struct {
	openedAt time.Time
	used     int
}

func newIPThrottle(budget int, window time.Duration) *ipThrottle {
	return &ipThrottle{
		budget:  budget,
		window:  window,
		now:     time.Now,
		clients: make(map[string]*ipWindow),
	}
}

// Allow consumes one request from the client's current window. A request
// with no resolvable client IP is always refused.
func (t *ipThrottle) Allow(clientIP string) bool {
	if clientIP == "" {
		return false
	}

	at := t.now().UTC()
	t.mu.Lock()
	defer t.mu.Unlock()

	w := t.clients[clientIP]
	if w == nil || at.Sub(w.openedAt) >= t.window {
		w = &ipWindow{openedAt: at}
		t.clients[clientIP] = w
	}
	if w.used >= t.budget {
		return false
	}
	w.used++
	return true
}
