// csrf.go — CSRF-защита мутирующих запросов админки.
// Токен привязан к сессии, передаётся скрытым полем формы _csrf
// либо заголовком X-CSRF-Token.
package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
)

// Имя скрытого поля формы с CSRF-токеном.
const CSRFFieldName = "_csrf"

// Имя заголовка с CSRF-токеном.
const CSRFHeaderName = "X-CSRF-Token"

// CSRF — middleware проверки CSRF-токена.
// GET/HEAD/OPTIONS пропускаются без проверки. Для остальных методов
// присланный токен сравнивается с токеном сессии за постоянное время.
type CSRF struct {
	logger *slog.Logger
}

// NewCSRF создаёт новый CSRF middleware.
func NewCSRF(logger *slog.Logger) *CSRF {
	return &CSRF{
		logger: logger.With(slog.String("component", "csrf_middleware")),
	}
}

// Middleware возвращает HTTP middleware проверки CSRF-токена.
// Должен стоять ПОСЛЕ SessionAuth: токен берётся из сессии в контексте.
func (c *CSRF) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			session := SessionFromContext(r.Context())
			if session == nil || session.CSRFToken == "" {
				c.logger.Warn("Мутирующий запрос без сессии с CSRF-токеном",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)
				http.Error(w, "Запрос отклонён", http.StatusForbidden)
				return
			}

			token := extractToken(r)
			if subtle.ConstantTimeCompare([]byte(token), []byte(session.CSRFToken)) != 1 {
				c.logger.Warn("Неверный CSRF-токен",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("remote_addr", r.RemoteAddr),
				)
				http.Error(w, "Запрос отклонён", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractToken достаёт CSRF-токен из заголовка или формы запроса.
// Для multipart-форм токен дублируется в query, чтобы не читать тело
// до обработчика.
func extractToken(r *http.Request) string {
	if token := r.Header.Get(CSRFHeaderName); token != "" {
		return token
	}
	if token := r.URL.Query().Get(CSRFFieldName); token != "" {
		return token
	}
	// ParseForm для urlencoded-тел кеширует значения, повторный вызов
	// в обработчике работает с тем же результатом
	if err := r.ParseForm(); err == nil {
		if token := r.PostFormValue(CSRFFieldName); token != "" {
			return token
		}
	}
	return ""
}
