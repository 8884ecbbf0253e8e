package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	key := "192.168.1.1:54321"

	// First 3 attempts should be allowed
	for i := 0; i < 3; i++ {
		if !rl.Allow(key) {
			t.Errorf("Attempt %d should be allowed", i+1)
		}
	}

	// 4th attempt should be blocked
	if rl.Allow(key) {
		t.Error("4th attempt should be blocked")
	}

	// Different client should still be allowed
	if !rl.Allow("192.168.1.2:54321") {
		t.Error("Different client should be allowed")
	}
}

func TestRateLimiter_WindowExpiry(t *testing.T) {
	rl := NewRateLimiter(1, 50*time.Millisecond)

	key := "192.168.1.1:54321"

	if !rl.Allow(key) {
		t.Error("First attempt should be allowed")
	}
	if rl.Allow(key) {
		t.Error("Second attempt should be blocked")
	}

	time.Sleep(60 * time.Millisecond)

	if !rl.Allow(key) {
		t.Error("Attempt after window expiry should be allowed")
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/purchase/sess-1/confirm", nil)
	req.RemoteAddr = "192.168.1.1:54321"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("First request should pass, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("Second request should be limited, got %d", rec.Code)
	}
}
