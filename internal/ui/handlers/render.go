// Пакет handlers — HTTP-обработчики админ-панели.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bigkaa/clubsite/internal/ui/middleware"
	"github.com/bigkaa/clubsite/internal/ui/views"
)

// Pages — отрисовка страниц админки со сквозным контекстом:
// сессия, CSRF-токен и счётчики уведомлений берутся из контекста
// запроса и добавляются к данным каждой страницы.
type Pages struct {
	renderer   *views.Renderer
	adminPath  string
	tinyMCEKey string
	logger     *slog.Logger
}

// NewPages создаёт отрисовщик страниц админки.
func NewPages(renderer *views.Renderer, adminPath, tinyMCEKey string, logger *slog.Logger) *Pages {
	return &Pages{
		renderer:   renderer,
		adminPath:  adminPath,
		tinyMCEKey: tinyMCEKey,
		logger:     logger.With(slog.String("component", "ui_pages")),
	}
}

// Render отрисовывает страницу админки. Сигнатура совместима с
// resource.RenderFunc: CRUD-роутеры ресурсов рендерят через неё.
func (p *Pages) Render(w http.ResponseWriter, r *http.Request, view, title string, data any) {
	pd := views.PageData{
		Title:      title,
		AdminPath:  p.adminPath,
		TinyMCEKey: p.tinyMCEKey,
		Data:       data,
	}

	if session := middleware.SessionFromContext(r.Context()); session != nil {
		pd.Username = session.Username
		pd.CSRFToken = session.CSRFToken
	}

	counts := middleware.NotificationsFromContext(r.Context())
	pd.UnreadMessages = counts.Messages
	pd.UnreadComments = counts.Comments

	if err := p.renderer.Render(w, view, pd); err != nil {
		p.logger.Error("Ошибка отрисовки страницы",
			slog.String("view", view),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}
