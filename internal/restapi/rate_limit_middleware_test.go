package restapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest("GET", "/api/dataset.json", nil)
	req.RemoteAddr = addr
	return req
}

func TestRateLimitMiddleware_AllowsRequestsWithinLimit(t *testing.T) {
	limitedHandler := NewRateLimitMiddleware(5, time.Second)(okHandler())

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		limitedHandler.ServeHTTP(w, requestFrom("10.0.0.1:5000"))
		assert.Equal(t, http.StatusOK, w.Code, "Request %d should be allowed", i+1)
	}
}

func TestRateLimitMiddleware_BlocksRequestsOverLimit(t *testing.T) {
	limitedHandler := NewRateLimitMiddleware(3, time.Second)(okHandler())

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		limitedHandler.ServeHTTP(w, requestFrom("10.0.0.1:5000"))
		assert.Equal(t, http.StatusOK, w.Code, "Request %d should be allowed", i+1)
	}

	w := httptest.NewRecorder()
	limitedHandler.ServeHTTP(w, requestFrom("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code, "Request over limit should be blocked")
}

func TestRateLimitMiddleware_PerClientLimiting(t *testing.T) {
	limitedHandler := NewRateLimitMiddleware(2, time.Second)(okHandler())

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		limitedHandler.ServeHTTP(w, requestFrom("10.0.0.1:5000"))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	limitedHandler.ServeHTTP(w, requestFrom("10.0.0.1:5000"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code, "first client should be limited")

	w = httptest.NewRecorder()
	limitedHandler.ServeHTTP(w, requestFrom("10.0.0.2:5000"))
	assert.Equal(t, http.StatusOK, w.Code, "second client should not be affected")
}

func TestRateLimitMiddleware_DisabledWhenZero(t *testing.T) {
	for _, limit := range []int{0, -1} {
		limitedHandler := NewRateLimitMiddleware(limit, time.Second)(okHandler())

		for i := 0; i < 50; i++ {
			w := httptest.NewRecorder()
			limitedHandler.ServeHTTP(w, requestFrom("10.0.0.1:5000"))
			require.Equal(t, http.StatusOK, w.Code, "limit %d request %d", limit, i+1)
		}
	}
}

func TestRateLimitMiddleware_RefillsOverTime(t *testing.T) {
	limitedHandler := NewRateLimitMiddleware(1, 100*time.Millisecond)(okHandler())

	w := httptest.NewRecorder()
	limitedHandler.ServeHTTP(w, requestFrom("10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	limitedHandler.ServeHTTP(w, requestFrom("10.0.0.1:5000"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	time.Sleep(150 * time.Millisecond)

	w = httptest.NewRecorder()
	limitedHandler.ServeHTTP(w, requestFrom("10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, w.Code, "Request after refill should succeed")
}

func TestRateLimitMiddleware_ConcurrentRequests(t *testing.T) {
	limitedHandler := NewRateLimitMiddleware(5, time.Second)(okHandler())

	var wg sync.WaitGroup
	results := make([]int, 10)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			w := httptest.NewRecorder()
			limitedHandler.ServeHTTP(w, requestFrom("10.0.0.9:7000"))
			results[index] = w.Code
		}(i)
	}

	wg.Wait()

	successCount, limitedCount := 0, 0
	for _, code := range results {
		switch code {
		case http.StatusOK:
			successCount++
		case http.StatusTooManyRequests:
			limitedCount++
		}
	}

	assert.Equal(t, 5, successCount)
	assert.Equal(t, 5, limitedCount)
}

func TestRateLimitMiddleware_RateLimitedResponseFormat(t *testing.T) {
	limitedHandler := NewRateLimitMiddleware(1, time.Second)(okHandler())

	limitedHandler.ServeHTTP(httptest.NewRecorder(), requestFrom("10.0.0.1:5000"))

	w := httptest.NewRecorder()
	limitedHandler.ServeHTTP(w, requestFrom("10.0.0.1:5000"))

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	var body errorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, http.StatusTooManyRequests, body.Code)
	assert.Equal(t, rateLimitExceededText, body.Text)
	assert.Equal(t, 1, body.Version)
	assert.NotZero(t, body.CurrentTime)
}

func TestRateLimitMiddleware_RetryAfterRoundsUp(t *testing.T) {
	rl := newRateLimiter(1, 3*time.Second)
	defer rl.Stop()

	assert.Equal(t, 3, rl.retryAfterSeconds())

	fast := newRateLimiter(100, time.Second)
	defer fast.Stop()

	assert.Equal(t, 1, fast.retryAfterSeconds())
}
