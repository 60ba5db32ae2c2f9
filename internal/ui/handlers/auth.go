// auth.go — вход и выход администратора.
// Учётные данные — единственная пара логин/пароль из конфигурации,
// успешный вход создаёт зашифрованную cookie-сессию с CSRF-токеном.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bigkaa/clubsite/internal/ui/auth"
)

// AuthHandler — обработчики аутентификации админ-панели.
type AuthHandler struct {
	sessionManager *auth.SessionManager
	credentials    auth.Credentials
	pages          *Pages
	adminPath      string
	logger         *slog.Logger
}

// NewAuthHandler создаёт новый AuthHandler.
func NewAuthHandler(
	sessionManager *auth.SessionManager,
	credentials auth.Credentials,
	pages *Pages,
	adminPath string,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		sessionManager: sessionManager,
		credentials:    credentials,
		pages:          pages,
		adminPath:      adminPath,
		logger:         logger.With(slog.String("component", "ui_auth")),
	}
}

// loginPageData — данные страницы входа.
type loginPageData struct {
	Error string
}

// HandleLoginForm — GET {adminPath}/login
// Показывает форму входа. Уже аутентифицированных отправляет в админку.
func (h *AuthHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionManager.GetSessionFromRequest(r)
	if err == nil && session != nil && !session.IsExpired() {
		http.Redirect(w, r, h.adminPath, http.StatusFound)
		return
	}

	h.pages.Render(w, r, "admin/login", "Вход", loginPageData{})
}

// HandleLogin — POST {adminPath}/login
// Проверяет учётные данные, создаёт сессию, redirect в админку.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректная форма", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	if !h.credentials.Verify(username, password) {
		h.logger.Warn("Неудачная попытка входа",
			slog.String("username", username),
			slog.String("remote_addr", r.RemoteAddr),
		)
		w.WriteHeader(http.StatusUnauthorized)
		h.pages.Render(w, r, "admin/login", "Вход", loginPageData{
			Error: "Неверный логин или пароль",
		})
		return
	}

	session, err := auth.NewSession(username)
	if err != nil {
		h.logger.Error("Ошибка создания сессии", slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	if err := h.sessionManager.SetSessionCookie(w, session); err != nil {
		h.logger.Error("Ошибка установки session cookie", slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	h.logger.Info("Администратор вошёл в систему", slog.String("username", username))

	http.Redirect(w, r, h.adminPath, http.StatusFound)
}

// HandleLogout — POST {adminPath}/logout
// Очищает session cookie, redirect на страницу входа.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessionManager.ClearSessionCookie(w)

	h.logger.Info("Администратор вышел из системы")

	http.Redirect(w, r, h.adminPath+"/login", http.StatusFound)
}
