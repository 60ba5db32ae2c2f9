package resource

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bigkaa/clubsite/internal/repository"
)

// Максимальный размер multipart-формы (файл держится в памяти,
// как и остальные поля).
const maxUploadBytes = 10 << 20 // 10 MiB

// Handler — обобщённый CRUD-обработчик одного ресурса.
type Handler[T any] struct {
	cfg      Config[T]
	store    Store[T]
	uploader Uploader
	render   RenderFunc
	// basePath — полный путь ресурса в админке (/admin/posts)
	basePath string
	logger   *slog.Logger
}

// NewHandler создаёт CRUD-обработчик ресурса.
// adminPath — путь монтирования админ-панели (/admin).
// uploader может быть nil, если Config.Upload не задан.
func NewHandler[T any](
	cfg Config[T],
	store Store[T],
	uploader Uploader,
	render RenderFunc,
	adminPath string,
	logger *slog.Logger,
) *Handler[T] {
	return &Handler[T]{
		cfg:      cfg,
		store:    store,
		uploader: uploader,
		render:   render,
		basePath: adminPath + "/" + cfg.Name,
		logger:   logger.With(slog.String("component", "ui."+cfg.Name)),
	}
}

// Routes возвращает chi-роутер ресурса для монтирования
// на {adminPath}/{name}. Маршруты:
//
//	GET    /            — список записей
//	GET    /add, /new   — форма добавления
//	POST   /add, /new   — создание
//	GET    /edit/{id}   — форма редактирования
//	PUT    /edit/{id}   — обновление (HTML-форма через _method override)
//	DELETE /delete/{id} — удаление
func (h *Handler[T]) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.handleList)
	r.Get("/add", h.handleAddForm)
	r.Get("/new", h.handleAddForm)
	r.Post("/add", h.handleCreate)
	r.Post("/new", h.handleCreate)
	r.Get("/edit/{id}", h.handleEditForm)
	r.Put("/edit/{id}", h.handleUpdate)
	r.Delete("/delete/{id}", h.handleDelete)

	return r
}

// handleList — GET / : все записи ресурса, новые первыми.
// Пагинации и фильтрации нет — ресурсов в админке немного.
func (h *Handler[T]) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("Ошибка получения списка записей", slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	columns := make([]string, 0, len(h.cfg.Fields))
	for _, f := range h.cfg.Fields {
		columns = append(columns, f.Label)
	}

	rows := make([]ListRow, 0, len(items))
	for _, item := range items {
		row := ListRow{ID: h.cfg.ID(item)}
		for _, f := range h.cfg.Fields {
			row.Cells = append(row.Cells, f.Get(item))
		}
		rows = append(rows, row)
	}

	data := ListData{
		BasePath: h.basePath,
		Columns:  columns,
		Rows:     rows,
	}
	h.render(w, r, "admin/"+h.cfg.Name+"/index", h.cfg.Title, data)
}

// handleAddForm — GET /add и /new : пустая форма добавления.
func (h *Handler[T]) handleAddForm(w http.ResponseWriter, r *http.Request) {
	item := h.cfg.New()

	data := FormData{
		BasePath: h.basePath,
		Action:   h.basePath + "/add",
		Method:   http.MethodPost,
		Fields:   h.formFields(item),
	}
	if h.cfg.Upload != nil {
		data.UploadField = h.cfg.Upload.InputField
	}

	h.render(w, r, "admin/"+h.cfg.Name+"/add", h.cfg.Title, data)
}

// handleCreate — POST /add и /new : создание записи.
// Объявленные поля, присутствующие во входных данных, присваиваются
// как есть; отсутствующие остаются со значениями по умолчанию.
// Файл (если сконфигурирован и прислан) загружается в медиа-хранилище
// ДО сохранения записи — при ошибке загрузки запись не создаётся.
func (h *Handler[T]) handleCreate(w http.ResponseWriter, r *http.Request) {
	form, err := h.parseForm(r)
	if err != nil {
		h.logger.Warn("Ошибка разбора формы", slog.String("error", err.Error()))
		http.Error(w, "Некорректная форма", http.StatusBadRequest)
		return
	}

	item := h.cfg.New()
	h.cfg.SetID(item, uuid.New().String())
	h.applyFields(item, form)

	if h.cfg.Upload != nil && form.file != nil {
		url, upErr := h.uploader.Save(
			r.Context(), h.cfg.Upload.Folder,
			form.file.name, form.file.contentType, form.file.data,
		)
		if upErr != nil {
			h.logger.Error("Ошибка загрузки файла в медиа-хранилище",
				slog.String("folder", h.cfg.Upload.Folder),
				slog.String("error", upErr.Error()),
			)
			http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
			return
		}
		h.cfg.Upload.SetTarget(item, url)
	}

	if err := h.store.Insert(r.Context(), item); err != nil {
		h.logger.Error("Ошибка создания записи", slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.basePath, http.StatusFound)
}

// handleEditForm — GET /edit/{id} : форма редактирования.
// Отсутствующая запись — 404, а не разыменование nil.
func (h *Handler[T]) handleEditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Запись не найдена", http.StatusNotFound)
			return
		}
		h.logger.Error("Ошибка получения записи", slog.String("id", id), slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	data := FormData{
		BasePath: h.basePath,
		Action:   h.basePath + "/edit/" + id,
		Method:   http.MethodPut,
		Fields:   h.formFields(item),
	}
	if h.cfg.Upload != nil {
		data.UploadField = h.cfg.Upload.InputField
		data.CurrentAssetURL = h.cfg.Upload.GetTarget(item)
	}

	h.render(w, r, "admin/"+h.cfg.Name+"/edit", h.cfg.Title, data)
}

// handleUpdate — PUT /edit/{id} : частичное обновление записи.
// Запись перечитывается из хранилища, затем перезаписываются ТОЛЬКО
// присланные объявленные поля — не присланные остаются нетронутыми.
// Если новый файл не прислан, прежний URL ассета сохраняется как есть
// (он уже в перечитанной записи и не затирается).
func (h *Handler[T]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	form, err := h.parseForm(r)
	if err != nil {
		h.logger.Warn("Ошибка разбора формы", slog.String("error", err.Error()))
		http.Error(w, "Некорректная форма", http.StatusBadRequest)
		return
	}

	item, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Запись не найдена", http.StatusNotFound)
			return
		}
		h.logger.Error("Ошибка получения записи", slog.String("id", id), slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	h.applyFields(item, form)

	if h.cfg.Upload != nil && form.file != nil {
		url, upErr := h.uploader.Save(
			r.Context(), h.cfg.Upload.Folder,
			form.file.name, form.file.contentType, form.file.data,
		)
		if upErr != nil {
			h.logger.Error("Ошибка загрузки файла в медиа-хранилище",
				slog.String("folder", h.cfg.Upload.Folder),
				slog.String("error", upErr.Error()),
			)
			http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
			return
		}
		h.cfg.Upload.SetTarget(item, url)
	}

	if err := h.store.Update(r.Context(), item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Запись не найдена", http.StatusNotFound)
			return
		}
		h.logger.Error("Ошибка обновления записи", slog.String("id", id), slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.basePath, http.StatusFound)
}

// handleDelete — DELETE /delete/{id} : удаление записи.
// Идемпотентно: удаление несуществующего id не отличается от успеха.
// Загруженный ассет в медиа-хранилище НЕ удаляется.
func (h *Handler[T]) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.Delete(r.Context(), id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		h.logger.Error("Ошибка удаления записи", slog.String("id", id), slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.basePath, http.StatusFound)
}

// --- Разбор формы ---

// uploadedFile — файл, прочитанный из multipart-формы в память.
type uploadedFile struct {
	name        string
	contentType string
	data        []byte
}

// parsedForm — результат разбора формы запроса.
type parsedForm struct {
	// values — присланные значения полей; отсутствие ключа означает,
	// что поле не было отправлено (частичное обновление)
	values map[string][]string
	// file — загруженный файл или nil
	file *uploadedFile
}

// parseForm разбирает urlencoded- или multipart-форму запроса.
// Файл читается только если для ресурса сконфигурирована загрузка.
func (h *Handler[T]) parseForm(r *http.Request) (*parsedForm, error) {
	if h.cfg.Upload == nil {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		return &parsedForm{values: r.PostForm}, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		// Форма без файла может прийти и как urlencoded
		if errors.Is(err, http.ErrNotMultipart) {
			if ferr := r.ParseForm(); ferr != nil {
				return nil, ferr
			}
			return &parsedForm{values: r.PostForm}, nil
		}
		return nil, err
	}

	form := &parsedForm{values: r.PostForm}

	f, header, err := r.FormFile(h.cfg.Upload.InputField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return form, nil
		}
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	// Пустой file-input браузер отправляет как часть с пустым именем
	if header.Filename == "" && len(data) == 0 {
		return form, nil
	}

	form.file = &uploadedFile{
		name:        header.Filename,
		contentType: header.Header.Get("Content-Type"),
		data:        data,
	}
	return form, nil
}

// applyFields присваивает моделью присланные значения объявленных полей.
// Поля вне allow-list игнорируются; не присланные поля не трогаются.
func (h *Handler[T]) applyFields(item *T, form *parsedForm) {
	for _, f := range h.cfg.Fields {
		vals, ok := form.values[f.Name]
		if !ok || len(vals) == 0 {
			continue
		}
		f.Set(item, vals[0])
	}
}

// formFields строит поля формы из allow-list и текущих значений модели.
func (h *Handler[T]) formFields(item *T) []FormField {
	fields := make([]FormField, 0, len(h.cfg.Fields))
	for _, f := range h.cfg.Fields {
		fields = append(fields, FormField{
			Name:    f.Name,
			Label:   f.Label,
			Kind:    f.Kind,
			Options: f.Options,
			Value:   f.Get(item),
		})
	}
	return fields
}
