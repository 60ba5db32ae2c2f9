// comments.go — модерация комментариев к статьям.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/clubsite/internal/repository"
)

// CommentsHandler — обработчики страницы непрочитанных комментариев.
type CommentsHandler struct {
	comments  repository.CommentRepository
	pages     *Pages
	adminPath string
	logger    *slog.Logger
}

// NewCommentsHandler создаёт новый CommentsHandler.
func NewCommentsHandler(
	comments repository.CommentRepository,
	pages *Pages,
	adminPath string,
	logger *slog.Logger,
) *CommentsHandler {
	return &CommentsHandler{
		comments:  comments,
		pages:     pages,
		adminPath: adminPath,
		logger:    logger.With(slog.String("component", "ui_comments")),
	}
}

// Routes возвращает chi-роутер страницы комментариев.
func (h *CommentsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleList)
	r.Post("/{id}/mark-read", h.handleMarkRead)
	return r
}

// handleList — GET {adminPath}/comments : непрочитанные комментарии
// со всех статей, новые первыми.
func (h *CommentsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListUnread(r.Context())
	if err != nil {
		h.logger.Error("Ошибка получения комментариев", slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	h.pages.Render(w, r, "admin/comments", "Комментарии", comments)
}

// handleMarkRead — POST {adminPath}/comments/{id}/mark-read
// Помечает комментарий прочитанным и возвращает к списку.
func (h *CommentsHandler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.comments.MarkRead(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Комментарий не найден", http.StatusNotFound)
			return
		}
		h.logger.Error("Ошибка пометки комментария прочитанным",
			slog.String("id", id), slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.adminPath+"/comments", http.StatusFound)
}
