// messages.go — сообщения формы обратной связи.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/clubsite/internal/repository"
)

// MessagesHandler — обработчики страницы сообщений.
type MessagesHandler struct {
	messages  repository.MessageRepository
	pages     *Pages
	adminPath string
	logger    *slog.Logger
}

// NewMessagesHandler создаёт новый MessagesHandler.
func NewMessagesHandler(
	messages repository.MessageRepository,
	pages *Pages,
	adminPath string,
	logger *slog.Logger,
) *MessagesHandler {
	return &MessagesHandler{
		messages:  messages,
		pages:     pages,
		adminPath: adminPath,
		logger:    logger.With(slog.String("component", "ui_messages")),
	}
}

// Routes возвращает chi-роутер страницы сообщений.
func (h *MessagesHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleList)
	r.Post("/{id}/toggle-read", h.handleToggleRead)
	return r
}

// handleList — GET {adminPath}/messages : все сообщения, новые первыми.
func (h *MessagesHandler) handleList(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messages.List(r.Context())
	if err != nil {
		h.logger.Error("Ошибка получения сообщений", slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	h.pages.Render(w, r, "admin/messages", "Сообщения", messages)
}

// handleToggleRead — POST {adminPath}/messages/{id}/toggle-read
// Переключает отметку о прочтении и возвращает к списку.
func (h *MessagesHandler) handleToggleRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.messages.ToggleRead(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Сообщение не найдено", http.StatusNotFound)
			return
		}
		h.logger.Error("Ошибка переключения отметки о прочтении",
			slog.String("id", id), slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.adminPath+"/messages", http.StatusFound)
}
