// Package middlewarectx содержит HTTP middleware сервиса: проверку токена сессии,
// ограничение частоты запросов и сбор метрик.
//
// JWTMiddleware: единственная точка проверки токена для всех защищённых маршрутов.
// Отсутствующий или некорректный заголовок Authorization даёт 401,
// недействительный или просроченный токен: 403.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/parking-service/internal/http/response"
	"github.com/magabrotheeeer/parking-service/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserID: ключ идентификатора пользователя в контексте.
const UserID Key = "user_id"

// TokenValidator проверяет токен и возвращает идентификатор пользователя.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// UserIDFromContext достаёт идентификатор пользователя, положенный JWTMiddleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserID).(string)
	return id, ok && id != ""
}

// WithUserID кладёт идентификатор пользователя в контекст.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserID, userID)
}

// JWTMiddleware возвращает middleware, который проверяет Bearer-токен
// и кладёт идентификатор пользователя в контекст запроса.
func JWTMiddleware(validator TokenValidator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			scheme, tokenStr, found := strings.Cut(r.Header.Get("Authorization"), " ")
			tokenStr = strings.TrimSpace(tokenStr)
			if !found || scheme != "Bearer" || tokenStr == "" {
				log.Warn("missing or malformed authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Unauthorized"))
				return
			}

			userID, err := validator.ValidateToken(tokenStr)
			if err != nil {
				log.Warn("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("invalid token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
