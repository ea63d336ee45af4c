package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_PerClientBurst(t *testing.T) {
	rl := NewRateLimiter(3)
	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "request %d", i+1)
	}
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"), "other clients keep their own bucket")
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1)
	start := time.Now()
	rl.now = func() time.Time { return start }
	rl.Allow("a")
	rl.Allow("b")
	assert.Len(t, rl.clients, 2)

	rl.now = func() time.Time { return start.Add(10 * time.Minute) }
	rl.Allow("b")
	assert.Len(t, rl.clients, 1)
	assert.Contains(t, rl.clients, "b")
}

func TestRateLimiter_SweepsAtMostOncePerWindow(t *testing.T) {
	rl := NewRateLimiter(1)
	start := time.Now()
	at := func(d time.Duration) { rl.now = func() time.Time { return start.Add(d) } }

	at(0)
	rl.Allow("a")
	at(5 * time.Minute)
	rl.Allow("b")
	assert.Equal(t, start.Add(5*time.Minute), rl.lastSweep)

	// "a" is now idle past the window, but the last sweep is too recent.
	at(7 * time.Minute)
	rl.Allow("b")
	assert.Equal(t, start.Add(5*time.Minute), rl.lastSweep)
	assert.Contains(t, rl.clients, "a")

	at(10 * time.Minute)
	rl.Allow("b")
	assert.Equal(t, start.Add(10*time.Minute), rl.lastSweep)
	assert.NotContains(t, rl.clients, "a")
	assert.Contains(t, rl.clients, "b")
}

func TestRateLimiter_Middleware(t *testing.T) {
	router := seededRouterWithLimit(t, nil, NewRateLimiter(1))

	do := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "192.0.2.7:5555"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("/v1/customers/cust-1/score"))
	assert.Equal(t, http.StatusTooManyRequests, do("/v1/customers/cust-1/score"))
	assert.Equal(t, http.StatusOK, do("/healthz"))
}
