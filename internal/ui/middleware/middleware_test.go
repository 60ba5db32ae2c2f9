package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/bigkaa/clubsite/internal/ui/auth"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// okHandler отвечает 200 и отдаёт имя пользователя из контекста.
var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if s := SessionFromContext(r.Context()); s != nil {
		io.WriteString(w, s.Username)
		return
	}
	io.WriteString(w, "ok")
})

// TestSessionAuth_NoCookie проверяет redirect на login без cookie.
func TestSessionAuth_NoCookie(t *testing.T) {
	sm, _ := auth.NewSessionManager("test-key", "/admin", false)
	sa := NewSessionAuth(sm, "/admin", testLogger())

	req := httptest.NewRequest(http.MethodGet, "/admin/posts", nil)
	rec := httptest.NewRecorder()
	sa.Middleware()(okHandler).ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("Статус = %d, ожидается 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("Location = %q, ожидается /admin/login", loc)
	}
}

// TestSessionAuth_ValidSession проверяет пропуск запроса с валидной сессией.
func TestSessionAuth_ValidSession(t *testing.T) {
	sm, _ := auth.NewSessionManager("test-key", "/admin", false)
	sa := NewSessionAuth(sm, "/admin", testLogger())

	w := httptest.NewRecorder()
	session := &auth.SessionData{Username: "admin", CSRFToken: "tok", IssuedAt: time.Now().Unix()}
	if err := sm.SetSessionCookie(w, session); err != nil {
		t.Fatalf("Ошибка установки cookie: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/posts", nil)
	req.AddCookie(w.Result().Cookies()[0])

	rec := httptest.NewRecorder()
	sa.Middleware()(okHandler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Статус = %d, ожидается 200", rec.Code)
	}
	if rec.Body.String() != "admin" {
		t.Errorf("Сессия не попала в контекст: тело = %q", rec.Body.String())
	}
}

// TestSessionAuth_CorruptCookie проверяет очистку повреждённого cookie.
func TestSessionAuth_CorruptCookie(t *testing.T) {
	sm, _ := auth.NewSessionManager("test-key", "/admin", false)
	sa := NewSessionAuth(sm, "/admin", testLogger())

	req := httptest.NewRequest(http.MethodGet, "/admin/posts", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "garbage"})

	rec := httptest.NewRecorder()
	sa.Middleware()(okHandler).ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("Статус = %d, ожидается 302", rec.Code)
	}

	// Должен быть выставлен cookie очистки
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName && c.MaxAge == -1 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("Повреждённый cookie не очищен")
	}
}

// TestSessionAuth_ExpiredSession проверяет redirect для истёкшей сессии.
func TestSessionAuth_ExpiredSession(t *testing.T) {
	sm, _ := auth.NewSessionManager("test-key", "/admin", false)
	sa := NewSessionAuth(sm, "/admin", testLogger())

	w := httptest.NewRecorder()
	session := &auth.SessionData{
		Username:  "admin",
		CSRFToken: "tok",
		IssuedAt:  time.Now().Add(-25 * time.Hour).Unix(),
	}
	if err := sm.SetSessionCookie(w, session); err != nil {
		t.Fatalf("Ошибка установки cookie: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/posts", nil)
	req.AddCookie(w.Result().Cookies()[0])

	rec := httptest.NewRecorder()
	sa.Middleware()(okHandler).ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("Статус = %d, ожидается 302", rec.Code)
	}
}

// withSession кладёт сессию в контекст запроса, имитируя SessionAuth.
func withSession(req *http.Request, session *auth.SessionData) *http.Request {
	ctx := context.WithValue(req.Context(), ContextKeySession, session)
	return req.WithContext(ctx)
}

// TestCSRF_GetPassesWithoutToken проверяет, что GET не требует токена.
func TestCSRF_GetPassesWithoutToken(t *testing.T) {
	c := NewCSRF(testLogger())

	req := httptest.NewRequest(http.MethodGet, "/admin/posts", nil)
	rec := httptest.NewRecorder()
	c.Middleware()(okHandler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Статус = %d, ожидается 200", rec.Code)
	}
}

// TestCSRF_PostWithoutToken проверяет отказ мутирующего запроса без токена.
func TestCSRF_PostWithoutToken(t *testing.T) {
	c := NewCSRF(testLogger())
	session := &auth.SessionData{Username: "admin", CSRFToken: "secret-token"}

	req := withSession(httptest.NewRequest(http.MethodPost, "/admin/posts/add", nil), session)
	rec := httptest.NewRecorder()
	c.Middleware()(okHandler).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("Статус = %d, ожидается 403", rec.Code)
	}
}

// TestCSRF_PostWithFormToken проверяет пропуск с токеном в теле формы.
func TestCSRF_PostWithFormToken(t *testing.T) {
	c := NewCSRF(testLogger())
	session := &auth.SessionData{Username: "admin", CSRFToken: "secret-token"}

	form := url.Values{CSRFFieldName: {"secret-token"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/posts/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = withSession(req, session)

	rec := httptest.NewRecorder()
	c.Middleware()(okHandler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Статус = %d, ожидается 200", rec.Code)
	}
}

// TestCSRF_PostWithQueryToken проверяет пропуск с токеном в query
// (вариант для multipart-форм).
func TestCSRF_PostWithQueryToken(t *testing.T) {
	c := NewCSRF(testLogger())
	session := &auth.SessionData{Username: "admin", CSRFToken: "secret-token"}

	req := withSession(httptest.NewRequest(http.MethodPost, "/admin/posts/add?_csrf=secret-token", nil), session)
	rec := httptest.NewRecorder()
	c.Middleware()(okHandler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Статус = %d, ожидается 200", rec.Code)
	}
}

// TestCSRF_WrongToken проверяет отказ при неверном токене.
func TestCSRF_WrongToken(t *testing.T) {
	c := NewCSRF(testLogger())
	session := &auth.SessionData{Username: "admin", CSRFToken: "secret-token"}

	req := withSession(httptest.NewRequest(http.MethodDelete, "/admin/posts/delete/x?_csrf=wrong", nil), session)
	rec := httptest.NewRecorder()
	c.Middleware()(okHandler).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("Статус = %d, ожидается 403", rec.Code)
	}
}

// TestMethodOverride проверяет подмену метода по query-параметру.
func TestMethodOverride(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		want   string
	}{
		{"POST → PUT", http.MethodPost, "/admin/posts/edit/x?_method=PUT", http.MethodPut},
		{"POST → DELETE", http.MethodPost, "/admin/posts/delete/x?_method=DELETE", http.MethodDelete},
		{"POST без параметра", http.MethodPost, "/admin/posts/add", http.MethodPost},
		{"GET не подменяется", http.MethodGet, "/admin/posts?_method=DELETE", http.MethodGet},
		{"POST → GET запрещён", http.MethodPost, "/admin/posts/add?_method=GET", http.MethodPost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := MethodOverride()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Method
			}))

			req := httptest.NewRequest(tt.method, tt.target, nil)
			h.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("Метод = %q, ожидается %q", got, tt.want)
			}
		})
	}
}

// TestRequestLogger проверяет уровень access-лога по статус-коду
// и состав записываемых полей.
func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"успешный ответ", http.StatusOK, "level=INFO"},
		{"ошибка клиента", http.StatusNotFound, "level=WARN"},
		{"ошибка сервера", http.StatusInternalServerError, "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf strings.Builder
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, "тело")
			}))

			req := httptest.NewRequest(http.MethodGet, "/blog", nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			out := buf.String()
			if !strings.Contains(out, tt.wantLevel) {
				t.Errorf("Лог без %s: %s", tt.wantLevel, out)
			}
			for _, field := range []string{"method=GET", "path=/blog", "component=http"} {
				if !strings.Contains(out, field) {
					t.Errorf("Лог без поля %s: %s", field, out)
				}
			}
		})
	}
}

// TestRequestLogger_DefaultStatus проверяет, что ответ без явного
// WriteHeader логируется как 200.
func TestRequestLogger_DefaultStatus(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !strings.Contains(buf.String(), "status=200") {
		t.Errorf("Лог без status=200: %s", buf.String())
	}
}

// TestNormalizePath проверяет нормализацию путей для лейблов метрик.
func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/blog/a1b2c3d4-0000-1111-2222-333344445555", "/blog/{id}"},
		{"/admin/posts/edit/a1b2c3d4-0000-1111-2222-333344445555", "/admin/posts/edit/{id}"},
		{"/media/team/ab12cd.png", "/media/*"},
		{"/static/css/site.css", "/static/*"},
		{"/events", "/events"},
		{"/health/ready", "/health/ready"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, ожидается %q", tt.path, got, tt.want)
		}
	}
}
