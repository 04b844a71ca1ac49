package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/GMS-BookingService/internal/api/handlers"
)

type ctxKey string

const memberIDKey ctxKey = "member_id"

const msgUnauthorized = "требуется аутентификация"

// Auth извлекает идентификатор участника из заголовка X-Member-ID.
// Сервис работает за API-шлюзом, который выполняет проверку токена
// и проставляет заголовок.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-Member-ID")
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		memberID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || memberID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), memberIDKey, memberID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// MemberIDFromContext возвращает идентификатор участника из контекста запроса
func MemberIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(memberIDKey).(int64)
	return id, ok
}
