package kit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestIPRateLimiter_BlocksAfterLimit(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := do("10.0.0.1:5000"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status=%d", i, rec.Code)
		}
	}

	rec := do("10.0.0.1:5001")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status=%d want=429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Fatalf("Retry-After=%q", rec.Header().Get("Retry-After"))
	}

	if rec := do("10.0.0.2:5000"); rec.Code != http.StatusOK {
		t.Fatalf("other ip status=%d", rec.Code)
	}

	now = now.Add(61 * time.Second)
	if rec := do("10.0.0.1:5000"); rec.Code != http.StatusOK {
		t.Fatalf("after window status=%d", rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		xff    string
		remote string
		trust  bool
		want   string
	}{
		{"remote addr", "", "192.168.1.10:1234", false, "192.168.1.10"},
		{"forwarded first hop", "203.0.113.5, 10.0.0.1", "10.0.0.1:80", true, "203.0.113.5"},
		{"forwarded untrusted", "203.0.113.5, 10.0.0.1", "10.0.0.1:80", false, "10.0.0.1"},
		{"trusted without header", "", "10.0.0.1:80", true, "10.0.0.1"},
		{"remote without port", "", "192.168.1.10", false, "192.168.1.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := clientIP(req, tt.trust); got != tt.want {
				t.Fatalf("clientIP=%q want=%q", got, tt.want)
			}
		})
	}
}

func TestIPRateLimiter_IgnoresForwardedForByDefault(t *testing.T) {
	l := NewIPRateLimiter(1, time.Minute)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(xff string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/categories", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		req.Header.Set("X-Forwarded-For", xff)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := do("198.51.100.1"); code != http.StatusOK {
		t.Fatalf("first status=%d", code)
	}
	if code := do("198.51.100.2"); code != http.StatusTooManyRequests {
		t.Fatalf("rotated header status=%d want=429", code)
	}

	l.TrustForwardedFor = true
	if code := do("198.51.100.3"); code != http.StatusOK {
		t.Fatalf("trusted header status=%d", code)
	}
}
