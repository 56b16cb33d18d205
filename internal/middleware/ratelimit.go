package middleware

import (
	"context"
	"fmt"
	"harvest_slots/pkg/resp"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Counter - часть redis.Cmdable, нужная лимитеру
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RateLimiter Фиксированное окно на игрока и действие
type RateLimiter struct {
	client Counter
	limit  int
	window time.Duration
}

func NewRateLimiter(client Counter, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Allow Увеличивает счетчик и сообщает, укладывается ли запрос в лимит
func (l *RateLimiter) Allow(ctx context.Context, userID int, action string) (bool, error) {
	key := fmt.Sprintf("ratelimit:%d:%s", userID, action)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}

	// Первый запрос в окне задает время жизни ключа
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count <= int64(l.limit), nil
}

// Limit - middleware для маршрута. Должен стоять после Auth.
// Если redis недоступен, запрос пропускается
func (l *RateLimiter) Limit(action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			allowed, err := l.Allow(r.Context(), userID, action)
			if err != nil {
				log.WithError(err).WithField("user_id", userID).Warn("rate limiter unavailable, letting request through")
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
				resp.WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
