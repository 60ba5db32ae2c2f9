package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bigkaa/clubsite/internal/config"
	"github.com/bigkaa/clubsite/internal/repository"
	"github.com/bigkaa/clubsite/internal/service"
	"github.com/bigkaa/clubsite/internal/ui/auth"
	"github.com/bigkaa/clubsite/internal/ui/handlers"
	"github.com/bigkaa/clubsite/internal/ui/middleware"
	"github.com/bigkaa/clubsite/internal/ui/views"
	"github.com/bigkaa/clubsite/internal/web"
)

// Фейковые репозитории для сервиса уведомлений: встраивание интерфейса
// покрывает неиспользуемые методы.

type fakeMessageRepo struct{ repository.MessageRepository }

func (fakeMessageRepo) CountUnread(context.Context) (int, error) { return 0, nil }

type fakeCommentRepo struct{ repository.CommentRepository }

func (fakeCommentRepo) CountUnread(context.Context) (int, error) { return 0, nil }

// newTestServer собирает сервер с фейковыми зависимостями: в тестах
// маршрутизации обработчики данных не вызываются.
func newTestServer(t *testing.T) (*Server, *auth.SessionManager) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{AdminPath: "/admin", Port: 3002}

	renderer, err := views.NewRenderer()
	if err != nil {
		t.Fatalf("Ошибка парсинга шаблонов: %v", err)
	}
	pages := handlers.NewPages(renderer, cfg.AdminPath, "", logger)

	sm, err := auth.NewSessionManager("test-secret", cfg.AdminPath, false)
	if err != nil {
		t.Fatalf("Ошибка создания SessionManager: %v", err)
	}
	credentials := auth.Credentials{Username: "admin", Password: "s3cret"}

	notifications := service.NewNotificationService(fakeMessageRepo{}, fakeCommentRepo{}, logger)

	srv := New(cfg, logger, Deps{
		Web:           web.NewHandler(nil, nil, nil, nil, nil, nil, renderer, logger),
		Auth:          handlers.NewAuthHandler(sm, credentials, pages, cfg.AdminPath, logger),
		Dashboard:     handlers.NewDashboardHandler(nil, pages, logger),
		Messages:      handlers.NewMessagesHandler(nil, pages, cfg.AdminPath, logger),
		Comments:      handlers.NewCommentsHandler(nil, pages, cfg.AdminPath, logger),
		SessionAuth:   middleware.NewSessionAuth(sm, cfg.AdminPath, logger),
		CSRF:          middleware.NewCSRF(logger),
		Notifications: middleware.NewNotifications(notifications),
		Media:         http.NotFoundHandler(),
		Health:        NewHealthHandler(nil),
	})
	return srv, sm
}

// sessionCookie создаёт валидный session cookie и возвращает его
// вместе с CSRF-токеном сессии.
func sessionCookie(t *testing.T, sm *auth.SessionManager) (*http.Cookie, string) {
	t.Helper()

	session, err := auth.NewSession("admin")
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	w := httptest.NewRecorder()
	if err := sm.SetSessionCookie(w, session); err != nil {
		t.Fatalf("SetSessionCookie: %v", err)
	}
	return w.Result().Cookies()[0], session.CSRFToken
}

// TestLogout_RequiresSession проверяет, что выход без сессии
// отправляет на страницу входа.
func TestLogout_RequiresSession(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("Статус = %d, ожидается 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("Location = %q, ожидается /admin/login", loc)
	}
}

// TestLogout_RequiresCSRFToken проверяет отказ выхода без CSRF-токена.
func TestLogout_RequiresCSRFToken(t *testing.T) {
	srv, sm := newTestServer(t)
	cookie, _ := sessionCookie(t, sm)

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("Статус = %d, ожидается 403", rec.Code)
	}
}

// TestLogout_WithToken проверяет выход с токеном в query:
// redirect на вход, cookie очищен.
func TestLogout_WithToken(t *testing.T) {
	srv, sm := newTestServer(t)
	cookie, token := sessionCookie(t, sm)

	req := httptest.NewRequest(http.MethodPost, "/admin/logout?_csrf="+token, nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("Статус = %d, ожидается 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("Location = %q, ожидается /admin/login", loc)
	}

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName && c.MaxAge == -1 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("Session cookie не очищен при выходе")
	}
}

// TestHealthLive проверяет liveness probe собранного роутера.
func TestHealthLive(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Статус = %d, ожидается 200", rec.Code)
	}
}
