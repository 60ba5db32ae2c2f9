package views

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bigkaa/clubsite/internal/domain/model"
	"github.com/bigkaa/clubsite/internal/resource"
)

// TestNewRenderer проверяет, что все шаблоны парсятся при старте.
func TestNewRenderer(t *testing.T) {
	if _, err := NewRenderer(); err != nil {
		t.Fatalf("NewRenderer() вернул ошибку: %v", err)
	}
}

// TestRender_ResourceIndex проверяет отрисовку списка ресурса,
// включая сведение admin/posts/index к общему шаблону.
func TestRender_ResourceIndex(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() вернул ошибку: %v", err)
	}

	data := PageData{
		Title:     "Статьи",
		AdminPath: "/admin",
		Username:  "admin",
		CSRFToken: "csrf-tok",
		Data: resource.ListData{
			BasePath: "/admin/posts",
			Columns:  []string{"Заголовок", "Автор"},
			Rows: []resource.ListRow{
				{ID: "id-1", Cells: []string{"Первая статья", "Иван"}},
			},
		},
	}

	rec := httptest.NewRecorder()
	if err := r.Render(rec, "admin/posts/index", data); err != nil {
		t.Fatalf("Render() вернул ошибку: %v", err)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"Первая статья",
		"/admin/posts/edit/id-1",
		"/admin/posts/delete/id-1?_method=DELETE",
		"csrf-tok",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("В отрисованной странице нет %q", want)
		}
	}
}

// TestRender_ResourceForm проверяет отрисовку формы редактирования
// с текущим изображением и select-полем.
func TestRender_ResourceForm(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() вернул ошибку: %v", err)
	}

	data := PageData{
		Title:     "Разделы",
		AdminPath: "/admin",
		Username:  "admin",
		CSRFToken: "tok",
		Data: resource.FormData{
			BasePath: "/admin/posts",
			Action:   "/admin/posts/edit/id-1",
			Method:   "PUT",
			Fields: []resource.FormField{
				{Name: "title", Label: "Заголовок", Kind: resource.KindText, Value: "Статья"},
				{Name: "page", Label: "Страница", Kind: resource.KindSelect, Options: []string{"home", "team"}, Value: "team"},
			},
			UploadField:     "image",
			CurrentAssetURL: "/media/blog-images/abc.png",
		},
	}

	rec := httptest.NewRecorder()
	if err := r.Render(rec, "admin/posts/edit", data); err != nil {
		t.Fatalf("Render() вернул ошибку: %v", err)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"_method=PUT",
		`enctype="multipart/form-data"`,
		"/media/blog-images/abc.png",
		`value="team" selected`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("В отрисованной странице нет %q", want)
		}
	}
}

// TestRender_PublicPost проверяет отрисовку страницы статьи.
func TestRender_PublicPost(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() вернул ошибку: %v", err)
	}

	post := &model.Post{
		ID:        "post-1",
		Title:     "Заголовок статьи",
		Content:   "<p>Текст</p>",
		Author:    "Иван",
		Likes:     3,
		CreatedAt: time.Now(),
	}
	data := PageData{
		Title: post.Title,
		Data: struct {
			Post     *model.Post
			Comments []*model.Comment
			Recent   []*model.Post
		}{Post: post},
	}

	rec := httptest.NewRecorder()
	if err := r.Render(rec, "public/post", data); err != nil {
		t.Fatalf("Render() вернул ошибку: %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Заголовок статьи") {
		t.Error("Нет заголовка статьи")
	}
	if !strings.Contains(body, "<p>Текст</p>") {
		t.Error("Rich-text контент должен выводиться без экранирования")
	}
	if !strings.Contains(body, "/blog/post-1/comments") {
		t.Error("Нет формы комментария")
	}
}

// TestRender_UnknownView проверяет ошибку для незарегистрированного view.
func TestRender_UnknownView(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() вернул ошибку: %v", err)
	}

	if err := r.Render(httptest.NewRecorder(), "nope/nope", PageData{}); err == nil {
		t.Error("Ожидалась ошибка для неизвестного view")
	}
}
