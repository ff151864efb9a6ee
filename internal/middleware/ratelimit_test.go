package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1", 3, time.Minute) {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1", 3, time.Minute) {
		t.Error("fourth request should be blocked")
	}
	if !rl.Allow("10.0.0.2", 3, time.Minute) {
		t.Error("different client should not be affected")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := NewRateLimiter()

	if !rl.Allow("10.0.0.1", 1, 50*time.Millisecond) {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("10.0.0.1", 1, 50*time.Millisecond) {
		t.Fatal("second request should be blocked")
	}

	time.Sleep(60 * time.Millisecond)

	if !rl.Allow("10.0.0.1", 1, 50*time.Millisecond) {
		t.Error("request after window should be allowed")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter()

	rl.Allow("10.0.0.1", 1, 10*time.Millisecond)
	rl.Allow("10.0.0.2", 1, time.Minute)

	time.Sleep(20 * time.Millisecond)
	rl.Cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.entries["10.0.0.1"]; ok {
		t.Error("expired entry should be removed")
	}
	if _, ok := rl.entries["10.0.0.2"]; !ok {
		t.Error("live entry should remain")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter()
	handler := RateLimit(rl, RealIP, 2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/sign-in", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}

	req := httptest.NewRequest("POST", "/sign-in", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
}

func TestRealIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.168.1.5:4321"
	if ip := RealIP(req); ip != "192.168.1.5" {
		t.Errorf("RealIP = %q, want %q", ip, "192.168.1.5")
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 198.51.100.2")
	if ip := RealIP(req); ip != "203.0.113.9" {
		t.Errorf("RealIP = %q, want %q", ip, "203.0.113.9")
	}
}
