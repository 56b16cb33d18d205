package middleware

import (
	"context"
	"harvest_slots/pkg/resp"
	"harvest_slots/pkg/token"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

type ctxKey struct{}

// WithUserID кладет ID игрока в контекст
func WithUserID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// UserIDFromContext - ID игрока, проставленный Auth
func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(ctxKey{}).(int)
	return id, ok
}

// Auth проверяет bearer-токен. Для websocket токен можно передать в ?token=
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearer(r)
			if raw == "" {
				resp.WriteError(w, http.StatusUnauthorized, "missing access token")
				return
			}

			claims, err := token.VerifyToken(raw, secret)
			if err != nil {
				log.WithError(err).Debug("rejected access token")
				resp.WriteError(w, http.StatusUnauthorized, "invalid access token")
				return
			}

			userID, err := token.UserID(claims)
			if err != nil {
				resp.WriteError(w, http.StatusUnauthorized, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func bearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if rest, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(rest)
	}
	return r.URL.Query().Get("token")
}
