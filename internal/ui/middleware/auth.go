// Пакет middleware — HTTP middleware админ-панели.
// auth.go — проверка сессии администратора (cookie-based).
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bigkaa/clubsite/internal/ui/auth"
)

// contextKey — тип для ключей контекста админки (избегаем коллизий).
type contextKey string

const (
	// ContextKeySession — данные сессии в контексте запроса.
	ContextKeySession contextKey = "admin_session"
)

// SessionAuth — middleware для проверки аутентификации администратора.
// Извлекает сессию из зашифрованного cookie, redirect на страницу входа
// при её отсутствии или истечении.
type SessionAuth struct {
	sessionManager *auth.SessionManager
	// loginURL — путь страницы входа ({adminPath}/login).
	loginURL string
	logger   *slog.Logger
}

// NewSessionAuth создаёт новый SessionAuth middleware.
func NewSessionAuth(sessionManager *auth.SessionManager, adminPath string, logger *slog.Logger) *SessionAuth {
	return &SessionAuth{
		sessionManager: sessionManager,
		loginURL:       adminPath + "/login",
		logger:         logger.With(slog.String("component", "session_auth_middleware")),
	}
}

// Middleware возвращает HTTP middleware для проверки сессии.
// Применяется к маршрутам админки, кроме /login.
func (sa *SessionAuth) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Извлекаем сессию из cookie
			session, err := sa.sessionManager.GetSessionFromRequest(r)
			if err != nil {
				sa.logger.Debug("Ошибка чтения сессии",
					slog.String("error", err.Error()),
					slog.String("remote_addr", r.RemoteAddr),
				)
				// Повреждённый cookie — очищаем и redirect на login
				sa.sessionManager.ClearSessionCookie(w)
				http.Redirect(w, r, sa.loginURL, http.StatusFound)
				return
			}

			// 2. Если сессия отсутствует — redirect на login
			if session == nil {
				http.Redirect(w, r, sa.loginURL, http.StatusFound)
				return
			}

			// 3. Истёкшая сессия — очищаем и redirect на login
			if session.IsExpired() {
				sa.logger.Info("Сессия истекла, redirect на login",
					slog.String("username", session.Username),
				)
				sa.sessionManager.ClearSessionCookie(w)
				http.Redirect(w, r, sa.loginURL, http.StatusFound)
				return
			}

			// 4. Помещаем сессию в контекст
			ctx := context.WithValue(r.Context(), ContextKeySession, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext извлекает SessionData из контекста запроса.
// Возвращает nil если сессия не найдена (не прошёл через SessionAuth middleware).
func SessionFromContext(ctx context.Context) *auth.SessionData {
	session, ok := ctx.Value(ContextKeySession).(*auth.SessionData)
	if !ok {
		return nil
	}
	return session
}
