package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitCapsPerWindow(t *testing.T) {
	handler := RateLimit(3, time.Minute)(okHandler())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("over-limit status = %d, want 429", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q", ct)
	}
}

func TestRateLimitIsPerClient(t *testing.T) {
	handler := RateLimit(1, time.Minute)(okHandler())

	first := httptest.NewRecorder()
	reqA := httptest.NewRequest(http.MethodGet, "/", nil)
	reqA.RemoteAddr = "10.0.0.1:1234"
	handler.ServeHTTP(first, reqA)
	if first.Code != http.StatusOK {
		t.Fatalf("first client: status = %d", first.Code)
	}

	second := httptest.NewRecorder()
	reqB := httptest.NewRequest(http.MethodGet, "/", nil)
	reqB.RemoteAddr = "10.0.0.2:1234"
	handler.ServeHTTP(second, reqB)
	if second.Code != http.StatusOK {
		t.Fatalf("second client: status = %d, want 200", second.Code)
	}
}

func TestRateLimitWindowResets(t *testing.T) {
	handler := RateLimit(1, 10*time.Millisecond)(okHandler())

	send := func() int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send(); code != http.StatusOK {
		t.Fatalf("first request: status = %d", code)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Fatalf("second request: status = %d, want 429", code)
	}
	time.Sleep(20 * time.Millisecond)
	if code := send(); code != http.StatusOK {
		t.Fatalf("after window: status = %d, want 200", code)
	}
}

func TestClientIPForRateLimit(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{name: "remote host port", remoteAddr: "192.0.2.1:5555", want: "192.0.2.1"},
		{name: "remote bare ip", remoteAddr: "192.0.2.1", want: "192.0.2.1"},
		{name: "forwarded single", remoteAddr: "10.0.0.1:80", forwarded: "203.0.113.7", want: "203.0.113.7"},
		{name: "forwarded chain uses first valid", remoteAddr: "10.0.0.1:80", forwarded: "garbage, 203.0.113.7", want: "203.0.113.7"},
		{name: "forwarded all invalid falls back", remoteAddr: "10.0.0.1:80", forwarded: "not-an-ip", want: "10.0.0.1"},
		{name: "ipv6 remote", remoteAddr: "[2001:db8::1]:443", want: "2001:db8::1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			if got := clientIPForRateLimit(req); got != tc.want {
				t.Fatalf("clientIPForRateLimit = %q, want %q", got, tc.want)
			}
		})
	}
}
