package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"harvest_slots/pkg/token"

	"github.com/redis/go-redis/v9"
)

var testSecret = []byte("middleware-secret")

func echoUser(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Error("user id missing in handler context")
		}
		w.Header().Set("X-User", strconv.Itoa(id))
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	valid, err := token.GenerateAccessToken(7, testSecret, time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	tests := []struct {
		name     string
		header   string
		query    string
		wantCode int
	}{
		{name: "bearer header", header: "Bearer " + valid, wantCode: http.StatusOK},
		{name: "query token", query: "?token=" + valid, wantCode: http.StatusOK},
		{name: "missing", wantCode: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer nope", wantCode: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, wantCode: http.StatusUnauthorized},
	}

	handler := Auth(testSecret)(echoUser(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/harvest/spin"+tt.query, nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d (%s)", tt.wantCode, w.Code, w.Body.String())
			}
			if tt.wantCode == http.StatusOK && w.Header().Get("X-User") != "7" {
				t.Errorf("expected user 7, got %q", w.Header().Get("X-User"))
			}
		})
	}
}

// fakeCounter - счетчики redis в памяти
type fakeCounter struct {
	mtx     sync.Mutex
	counts  map[string]int64
	expires map[string]time.Duration
	err     error
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (f *fakeCounter) Incr(ctx context.Context, key string) *redis.IntCmd {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	cmd := redis.NewIntCmd(ctx, "incr", key)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	f.counts[key]++
	cmd.SetVal(f.counts[key])
	return cmd
}

func (f *fakeCounter) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.expires[key] = expiration
	cmd := redis.NewBoolCmd(ctx, "expire", key, expiration)
	cmd.SetVal(true)
	return cmd
}

func TestRateLimiterAllow(t *testing.T) {
	counter := newFakeCounter()
	limiter := NewRateLimiter(counter, 2, time.Minute)
	ctx := context.Background()

	for i, want := range []bool{true, true, false} {
		got, err := limiter.Allow(ctx, 1, "spin")
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if got != want {
			t.Errorf("call %d: expected %v, got %v", i, want, got)
		}
	}

	if counter.expires["ratelimit:1:spin"] != time.Minute {
		t.Errorf("window not applied to key: %v", counter.expires)
	}

	// У другого игрока свой счетчик
	if ok, _ := limiter.Allow(ctx, 2, "spin"); !ok {
		t.Error("second player should not share the limit")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	counter := newFakeCounter()
	limiter := NewRateLimiter(counter, 1, 30*time.Second)

	handler := limiter.Limit("spin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/harvest/spin", nil)
		r = r.WithContext(WithUserID(r.Context(), 5))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w
	}

	if w := call(); w.Code != http.StatusNoContent {
		t.Fatalf("first call: expected 204, got %d", w.Code)
	}
	w := call()
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second call: expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") != "30" {
		t.Errorf("expected Retry-After 30, got %q", w.Header().Get("Retry-After"))
	}

	// Redis недоступен: запрос проходит
	counter.err = errors.New("connection refused")
	if w := call(); w.Code != http.StatusNoContent {
		t.Errorf("limiter should fail open, got %d", w.Code)
	}
}
