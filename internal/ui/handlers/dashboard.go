// dashboard.go — главная страница админ-панели со сводкой.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bigkaa/clubsite/internal/service"
)

// DashboardHandler — обработчик главной страницы админки.
type DashboardHandler struct {
	stats  *service.StatsService
	pages  *Pages
	logger *slog.Logger
}

// NewDashboardHandler создаёт новый DashboardHandler.
func NewDashboardHandler(stats *service.StatsService, pages *Pages, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		stats:  stats,
		pages:  pages,
		logger: logger.With(slog.String("component", "ui_dashboard")),
	}
}

// Handle — GET {adminPath}
// Сводка по содержимому сайта: количество статей, мероприятий,
// участников и непрочитанного.
func (h *DashboardHandler) Handle(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("Ошибка получения сводки", slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	h.pages.Render(w, r, "admin/dashboard", "Панель управления", stats)
}
