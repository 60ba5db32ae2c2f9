// Пакет web — публичные страницы сайта: главная, блог, мероприятия,
// команда, обратная связь.
package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bigkaa/clubsite/internal/domain/model"
	"github.com/bigkaa/clubsite/internal/repository"
	"github.com/bigkaa/clubsite/internal/ui/views"
)

// Количество ссылок «другие статьи» на странице статьи.
const recentPostsLimit = 3

// Handler — обработчики публичной части сайта.
type Handler struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	events   repository.EventRepository
	members  repository.MemberRepository
	sections repository.SectionRepository
	messages repository.MessageRepository
	renderer *views.Renderer
	logger   *slog.Logger
}

// NewHandler создаёт обработчики публичной части.
func NewHandler(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	events repository.EventRepository,
	members repository.MemberRepository,
	sections repository.SectionRepository,
	messages repository.MessageRepository,
	renderer *views.Renderer,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		posts:    posts,
		comments: comments,
		events:   events,
		members:  members,
		sections: sections,
		messages: messages,
		renderer: renderer,
		logger:   logger.With(slog.String("component", "web")),
	}
}

// Routes возвращает chi-роутер публичной части сайта.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.handleHome)
	r.Get("/blog", h.handleBlog)
	r.Get("/blog/{id}", h.handlePost)
	r.Post("/blog/{id}/comments", h.handleAddComment)
	r.Post("/blog/{id}/like", h.handleLike)
	r.Get("/events", h.handleEvents)
	r.Get("/team", h.handleTeam)
	r.Get("/team/{id}", h.handleMember)
	r.Get("/contact", h.handleContactForm)
	r.Post("/contact", h.handleContactSubmit)
	r.NotFound(h.handleNotFound)

	return r
}

// render отрисовывает публичную страницу.
func (h *Handler) render(w http.ResponseWriter, view, title string, data any) {
	err := h.renderer.Render(w, view, views.PageData{Title: title, Data: data})
	if err != nil {
		h.logger.Error("Ошибка отрисовки страницы",
			slog.String("view", view),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}

// renderError отдаёт страницу внутренней ошибки.
func (h *Handler) renderError(w http.ResponseWriter) {
	w.WriteHeader(http.StatusInternalServerError)
	h.render(w, "public/error", "Ошибка", nil)
}

// handleNotFound — страница 404.
func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	h.render(w, "public/404", "Страница не найдена", nil)
}

// homePageData — данные главной страницы.
type homePageData struct {
	Sections []*model.Section
}

// handleHome — GET / : контентные блоки главной страницы.
func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	sections, err := h.sections.ListByPage(r.Context(), model.PageHome)
	if err != nil {
		h.logger.Error("Ошибка получения блоков главной", slog.String("error", err.Error()))
		h.renderError(w)
		return
	}

	h.render(w, "public/home", "Клуб", homePageData{Sections: sections})
}

// blogPageData — данные списка статей.
type blogPageData struct {
	Posts []*model.Post
}

// handleBlog — GET /blog : все статьи, новые первыми.
func (h *Handler) handleBlog(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		h.logger.Error("Ошибка получения статей", slog.String("error", err.Error()))
		h.renderError(w)
		return
	}

	h.render(w, "public/blog", "Блог", blogPageData{Posts: posts})
}

// postPageData — данные страницы статьи.
type postPageData struct {
	Post     *model.Post
	Comments []*model.Comment
	Recent   []*model.Post
}

// handlePost — GET /blog/{id} : статья с комментариями и ссылками
// на другие свежие статьи.
func (h *Handler) handlePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.handleNotFound(w, r)
			return
		}
		h.logger.Error("Ошибка получения статьи", slog.String("id", id), slog.String("error", err.Error()))
		h.renderError(w)
		return
	}

	comments, err := h.comments.ListByPost(r.Context(), id)
	if err != nil {
		h.logger.Error("Ошибка получения комментариев", slog.String("id", id), slog.String("error", err.Error()))
		h.renderError(w)
		return
	}

	recent, err := h.posts.ListRecent(r.Context(), id, recentPostsLimit)
	if err != nil {
		h.logger.Error("Ошибка получения свежих статей", slog.String("error", err.Error()))
		h.renderError(w)
		return
	}

	h.render(w, "public/post", post.Title, postPageData{
		Post:     post,
		Comments: comments,
		Recent:   recent,
	})
}

// handleAddComment — POST /blog/{id}/comments : новый комментарий.
// Комментарий создаётся непрочитанным и попадает в счётчик админки.
func (h *Handler) handleAddComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.posts.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.handleNotFound(w, r)
			return
		}
		h.logger.Error("Ошибка получения статьи", slog.String("id", id), slog.String("error", err.Error()))
		h.renderError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректная форма", http.StatusBadRequest)
		return
	}

	author := strings.TrimSpace(r.PostFormValue("author"))
	body := strings.TrimSpace(r.PostFormValue("body"))
	if author == "" || body == "" {
		http.Redirect(w, r, "/blog/"+id, http.StatusFound)
		return
	}

	comment := &model.Comment{
		ID:     uuid.New().String(),
		PostID: id,
		Author: author,
		Body:   body,
	}
	if err := h.comments.Insert(r.Context(), comment); err != nil {
		h.logger.Error("Ошибка сохранения комментария", slog.String("post_id", id), slog.String("error", err.Error()))
		h.renderError(w)
		return
	}

	http.Redirect(w, r, "/blog/"+id, http.StatusFound)
}

// handleLike — POST /blog/{id}/like : лайк статьи.
func (h *Handler) handleLike(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.posts.IncrementLikes(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.handleNotFound(w, r)
			return
		}
		h.logger.Error("Ошибка лайка статьи", slog.String("id", id), slog.String("error", err.Error()))
		h.renderError(w)
		return
	}

	http.Redirect(w, r, "/blog/"+id, http.StatusFound)
}

// eventsPageData — данные страницы мероприятий.
type eventsPageData struct {
	Events   []*model.Event
	Sections []*model.Section
}

// handleEvents — GET /events : мероприятия по дате проведения
// плюс контентные блоки страницы.
func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListByDate(r.Context())
	if err != nil {
		h.logger.Error("Ошибка получения мероприятий", slog.String("error", err.Error()))
		h.renderError(w)
		return
	}

	sections, err := h.sections.ListByPage(r.Context(), model.PageEvents)
	if err != nil {
		h.logger.Error("Ошибка получения блоков страницы", slog.String("error", err.Error()))
		h.renderError(w)
		return
	}

	h.render(w, "public/events", "Мероприятия", eventsPageData{
		Events:   events,
		Sections: sections,
	})
}

// teamPageData — данные страницы команды.
type teamPageData struct {
	Members  []*model.Member
	Sections []*model.Section
}

// handleTeam — GET /team : участники команды плюс контентные блоки.
func (h *Handler) handleTeam(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.List(r.Context())
	if err != nil {
		h.logger.Error("Ошибка получения участников", slog.String("error", err.Error()))
		h.renderError(w)
		return
	}

	sections, err := h.sections.ListByPage(r.Context(), model.PageTeam)
	if err != nil {
		h.logger.Error("Ошибка получения блоков страницы", slog.String("error", err.Error()))
		h.renderError(w)
		return
	}

	h.render(w, "public/team", "Команда", teamPageData{
		Members:  members,
		Sections: sections,
	})
}

// memberPageData — данные страницы участника.
type memberPageData struct {
	Member *model.Member
}

// handleMember — GET /team/{id} : страница участника команды.
func (h *Handler) handleMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	member, err := h.members.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.handleNotFound(w, r)
			return
		}
		h.logger.Error("Ошибка получения участника", slog.String("id", id), slog.String("error", err.Error()))
		h.renderError(w)
		return
	}

	h.render(w, "public/member", member.Name, memberPageData{Member: member})
}

// contactPageData — данные страницы обратной связи.
type contactPageData struct {
	Sent  bool
	Error string
}

// handleContactForm — GET /contact : форма обратной связи.
func (h *Handler) handleContactForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "public/contact", "Контакты", contactPageData{})
}

// handleContactSubmit — POST /contact : приём сообщения.
// Сообщение создаётся непрочитанным и попадает в счётчик админки.
func (h *Handler) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректная форма", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	email := strings.TrimSpace(r.PostFormValue("email"))
	body := strings.TrimSpace(r.PostFormValue("body"))

	if name == "" || email == "" || body == "" {
		w.WriteHeader(http.StatusBadRequest)
		h.render(w, "public/contact", "Контакты", contactPageData{
			Error: "Заполните все поля формы",
		})
		return
	}

	message := &model.Message{
		ID:    uuid.New().String(),
		Name:  name,
		Email: email,
		Body:  body,
	}
	if err := h.messages.Insert(r.Context(), message); err != nil {
		h.logger.Error("Ошибка сохранения сообщения", slog.String("error", err.Error()))
		h.renderError(w)
		return
	}

	h.logger.Info("Получено сообщение обратной связи", slog.String("id", message.ID))

	h.render(w, "public/contact", "Контакты", contactPageData{Sent: true})
}
