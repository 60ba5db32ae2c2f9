// Пакет resource — обобщённый CRUD-роутер админ-панели.
// Один набор обработчиков (список, формы добавления/редактирования,
// создание, обновление, удаление) параметризуется моделью, allow-list
// полей и опциональной загрузкой файла в медиа-хранилище.
package resource

import (
	"context"
	"net/http"
)

// Виды полей формы. Управляют отрисовкой input в шаблонах.
const (
	KindText     = "text"
	KindTextarea = "textarea"
	KindRichText = "richtext"
	KindDate     = "date"
	KindURL      = "url"
	KindSelect   = "select"
)

// Field — типизированный дескриптор поля ресурса.
// Allow-list ресурса состоит из таких дескрипторов: роутер читает и
// пишет ТОЛЬКО поля, объявленные в Config.Fields (плюс целевое поле
// загрузки из UploadSpec). Динамического доступа по имени нет —
// геттер и сеттер заданы явно.
type Field[T any] struct {
	// Name — имя поля в HTML-форме
	Name string
	// Label — подпись поля в интерфейсе
	Label string
	// Kind — вид поля (KindText, KindRichText и т.д.)
	Kind string
	// Options — варианты значений для KindSelect
	Options []string
	// Get возвращает строковое представление поля для формы
	Get func(item *T) string
	// Set записывает присланное значение в модель
	Set func(item *T, value string)
}

// UploadSpec — декларация загрузки одного файла при создании/обновлении.
type UploadSpec[T any] struct {
	// InputField — имя file-input в форме
	InputField string
	// Folder — папка медиа-хранилища
	Folder string
	// GetTarget возвращает текущий URL ассета из модели
	GetTarget func(item *T) string
	// SetTarget записывает URL загруженного ассета в модель
	SetTarget func(item *T, url string)
}

// Config — декларативная конфигурация CRUD-роутера одного ресурса.
type Config[T any] struct {
	// Name — имя ресурса: сегмент URL и каталог view-шаблонов ("posts")
	Name string
	// Title — заголовок страниц ресурса ("Статьи")
	Title string
	// New создаёт пустую модель со значениями по умолчанию
	New func() *T
	// ID возвращает идентификатор записи
	ID func(item *T) string
	// SetID присваивает идентификатор новой записи
	SetID func(item *T, id string)
	// Fields — allow-list управляемых полей
	Fields []Field[T]
	// Upload — опциональная загрузка файла (nil — без загрузки)
	Upload *UploadSpec[T]
}

// Store — хранилище записей ресурса. Реализуется pgx-репозиториями.
type Store[T any] interface {
	// Insert сохраняет новую запись.
	Insert(ctx context.Context, item *T) error
	// GetByID возвращает запись по идентификатору или repository.ErrNotFound.
	GetByID(ctx context.Context, id string) (*T, error)
	// List возвращает все записи, новые первыми.
	List(ctx context.Context) ([]*T, error)
	// Update перезаписывает существующую запись.
	Update(ctx context.Context, item *T) error
	// Delete удаляет запись по идентификатору.
	Delete(ctx context.Context, id string) error
}

// Uploader — медиа-хранилище для загружаемых файлов.
// Save сохраняет содержимое под указанной папкой и возвращает
// публичный URL. При ошибке операция роутера прерывается ДО записи
// в хранилище записей.
type Uploader interface {
	Save(ctx context.Context, folder, filename, contentType string, data []byte) (string, error)
}

// RenderFunc — отрисовка именованного view с данными страницы.
// Поставляется вызывающей стороной: она добавляет к данным ресурса
// сквозной контекст (сессия, CSRF-токен, счётчики уведомлений).
type RenderFunc func(w http.ResponseWriter, r *http.Request, view, title string, data any)

// --- Данные, передаваемые во view-шаблоны ---

// ListRow — строка таблицы списка ресурса.
type ListRow struct {
	// ID — идентификатор записи
	ID string
	// Cells — значения объявленных полей в порядке Config.Fields
	Cells []string
}

// ListData — данные view списка.
type ListData struct {
	// BasePath — полный путь ресурса в админке (/admin/posts)
	BasePath string
	// Columns — подписи колонок (Label объявленных полей)
	Columns []string
	// Rows — записи ресурса, новые первыми
	Rows []ListRow
}

// FormField — поле формы добавления/редактирования.
type FormField struct {
	Name    string
	Label   string
	Kind    string
	Options []string
	// Value — текущее значение (пустое для формы добавления)
	Value string
}

// FormData — данные view формы.
type FormData struct {
	// BasePath — полный путь ресурса в админке
	BasePath string
	// Action — URL отправки формы
	Action string
	// Method — эффективный метод (POST для создания, PUT для обновления)
	Method string
	// Fields — поля формы в порядке allow-list
	Fields []FormField
	// UploadField — имя file-input (пустая строка — без загрузки)
	UploadField string
	// CurrentAssetURL — текущий URL ассета (для формы редактирования)
	CurrentAssetURL string
}
