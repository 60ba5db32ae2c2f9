// pagectx.go — сквозной контекст страниц админки: счётчики
// непрочитанных сообщений и комментариев для шапки.
package middleware

import (
	"context"
	"net/http"

	"github.com/bigkaa/clubsite/internal/service"
)

const (
	// ContextKeyNotifications — счётчики непрочитанного в контексте запроса.
	ContextKeyNotifications contextKey = "notifications"
)

// Notifications — middleware, добавляющий счётчики непрочитанного
// в контекст каждого запроса админки.
type Notifications struct {
	svc *service.NotificationService
}

// NewNotifications создаёт middleware счётчиков уведомлений.
func NewNotifications(svc *service.NotificationService) *Notifications {
	return &Notifications{svc: svc}
}

// Middleware возвращает HTTP middleware счётчиков уведомлений.
func (n *Notifications) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			counts := n.svc.Counts(r.Context())
			ctx := context.WithValue(r.Context(), ContextKeyNotifications, counts)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NotificationsFromContext извлекает счётчики из контекста запроса.
// Возвращает нулевые счётчики, если middleware не отработал.
func NotificationsFromContext(ctx context.Context) service.NotificationCounts {
	counts, ok := ctx.Value(ContextKeyNotifications).(service.NotificationCounts)
	if !ok {
		return service.NotificationCounts{}
	}
	return counts
}
