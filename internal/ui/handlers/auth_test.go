package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/bigkaa/clubsite/internal/ui/auth"
	"github.com/bigkaa/clubsite/internal/ui/views"
)

func newTestAuthHandler(t *testing.T) (*AuthHandler, *auth.SessionManager) {
	t.Helper()

	renderer, err := views.NewRenderer()
	if err != nil {
		t.Fatalf("Ошибка парсинга шаблонов: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pages := NewPages(renderer, "/admin", "", logger)

	sm, err := auth.NewSessionManager("test-secret", "/admin", false)
	if err != nil {
		t.Fatalf("Ошибка создания SessionManager: %v", err)
	}

	creds := auth.Credentials{Username: "admin", Password: "s3cret"}
	return NewAuthHandler(sm, creds, pages, "/admin", logger), sm
}

func postLogin(h *AuthHandler, username, password string) *httptest.ResponseRecorder {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)
	return rec
}

// TestHandleLogin_Success проверяет вход с верными учётными данными:
// устанавливается session cookie, redirect в админку.
func TestHandleLogin_Success(t *testing.T) {
	h, sm := newTestAuthHandler(t)

	rec := postLogin(h, "admin", "s3cret")

	if rec.Code != http.StatusFound {
		t.Fatalf("Статус = %d, ожидается 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Errorf("Location = %q, ожидается /admin", loc)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("Session cookie не установлен")
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	req.AddCookie(cookies[0])
	session, err := sm.GetSessionFromRequest(req)
	if err != nil || session == nil {
		t.Fatalf("Сессия не читается из cookie: %v", err)
	}
	if session.Username != "admin" {
		t.Errorf("Username = %q, ожидается admin", session.Username)
	}
	if session.CSRFToken == "" {
		t.Error("Сессия без CSRF-токена")
	}
}

// TestHandleLogin_WrongPassword проверяет отказ при неверном пароле.
func TestHandleLogin_WrongPassword(t *testing.T) {
	h, _ := newTestAuthHandler(t)

	rec := postLogin(h, "admin", "wrong")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Статус = %d, ожидается 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Неверный логин или пароль") {
		t.Error("Страница входа без сообщения об ошибке")
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName && c.Value != "" {
			t.Error("Session cookie установлен при неверном пароле")
		}
	}
}

// TestHandleLoginForm проверяет отрисовку формы входа.
func TestHandleLoginForm(t *testing.T) {
	h, _ := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	rec := httptest.NewRecorder()
	h.HandleLoginForm(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Статус = %d, ожидается 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `action="/admin/login"`) {
		t.Error("Нет формы входа")
	}
}

// TestHandleLoginForm_AlreadyAuthenticated проверяет redirect
// аутентифицированного администратора со страницы входа.
func TestHandleLoginForm_AlreadyAuthenticated(t *testing.T) {
	h, sm := newTestAuthHandler(t)

	session, err := auth.NewSession("admin")
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	w := httptest.NewRecorder()
	if err := sm.SetSessionCookie(w, session); err != nil {
		t.Fatalf("SetSessionCookie: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	req.AddCookie(w.Result().Cookies()[0])
	rec := httptest.NewRecorder()
	h.HandleLoginForm(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("Статус = %d, ожидается 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Errorf("Location = %q, ожидается /admin", loc)
	}
}

// TestHandleLogout проверяет очистку cookie и redirect на вход.
func TestHandleLogout(t *testing.T) {
	h, _ := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	rec := httptest.NewRecorder()
	h.HandleLogout(rec, req)

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
		t.Error("Session cookie не очищен")
	}
}

// TestParseEventDate проверяет разбор поля даты мероприятия.
func TestParseEventDate(t *testing.T) {
	if got := parseEventDate(""); got != nil {
		t.Errorf("parseEventDate(\"\") = %v, хотели nil", got)
	}
	if got := parseEventDate("мусор"); got != nil {
		t.Errorf("parseEventDate(мусор) = %v, хотели nil", got)
	}

	got := parseEventDate("2026-10-01T18:30")
	if got == nil || got.Hour() != 18 || got.Minute() != 30 {
		t.Errorf("parseEventDate(datetime-local) = %v", got)
	}

	got = parseEventDate("2026-10-01")
	if got == nil || got.Day() != 1 || got.Month() != 10 {
		t.Errorf("parseEventDate(date) = %v", got)
	}
}
