// Пакет views — HTML-рендеринг страниц сайта и админ-панели.
// Шаблоны встраиваются в бинарник и парсятся один раз при старте:
// ошибка в шаблоне валит процесс на старте, а не на запросе.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"
)

//go:embed templates
var templatesFS embed.FS

// PageData — данные, передаваемые каждому шаблону страницы.
type PageData struct {
	// Title — заголовок страницы.
	Title string
	// AdminPath — путь монтирования админки (/admin).
	AdminPath string
	// Username — логин администратора (пусто на публичных страницах).
	Username string
	// CSRFToken — CSRF-токен сессии (пусто на публичных страницах).
	CSRFToken string
	// TinyMCEKey — API-ключ TinyMCE для richtext-полей.
	TinyMCEKey string
	// UnreadMessages — счётчик непрочитанных сообщений для шапки админки.
	UnreadMessages int
	// UnreadComments — счётчик непрочитанных комментариев для шапки админки.
	UnreadComments int
	// Data — данные конкретной страницы.
	Data any
}

// pageDef — связка шаблона страницы с layout.
type pageDef struct {
	layout string
	file   string
}

// Страницы сайта. Ключ — имя view, которым оперируют обработчики.
var pages = map[string]pageDef{
	"admin/login":          {"admin/layout.html", "admin/login.html"},
	"admin/dashboard":      {"admin/layout.html", "admin/dashboard.html"},
	"admin/messages":       {"admin/layout.html", "admin/messages.html"},
	"admin/comments":       {"admin/layout.html", "admin/comments.html"},
	"admin/resource/index": {"admin/layout.html", "admin/resource_index.html"},
	"admin/resource/add":   {"admin/layout.html", "admin/resource_form.html"},
	"admin/resource/edit":  {"admin/layout.html", "admin/resource_form.html"},

	"public/home":    {"public/layout.html", "public/home.html"},
	"public/blog":    {"public/layout.html", "public/blog.html"},
	"public/post":    {"public/layout.html", "public/post.html"},
	"public/events":  {"public/layout.html", "public/events.html"},
	"public/team":    {"public/layout.html", "public/team.html"},
	"public/member":  {"public/layout.html", "public/member.html"},
	"public/contact": {"public/layout.html", "public/contact.html"},
	"public/404":     {"public/layout.html", "public/404.html"},
	"public/error":   {"public/layout.html", "public/error.html"},
}

// funcMap — функции, доступные в шаблонах.
var funcMap = template.FuncMap{
	// truncate обрезает строку до n символов, добавляя многоточие
	"truncate": func(s string, n int) string {
		runes := []rune(s)
		if len(runes) <= n {
			return s
		}
		return string(runes[:n]) + "…"
	},
	// formatDate форматирует время для вывода на страницах
	"formatDate": func(t time.Time) string {
		return t.Format("02.01.2006 15:04")
	},
	// formatDatePtr — formatDate для опциональных дат
	"formatDatePtr": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("02.01.2006 15:04")
	},
	// excerpt убирает HTML-теги и обрезает текст до n символов
	"excerpt": func(s string, n int) string {
		var b strings.Builder
		inTag := false
		for _, r := range s {
			switch {
			case r == '<':
				inTag = true
			case r == '>':
				inTag = false
			case !inTag:
				b.WriteRune(r)
			}
		}
		runes := []rune(strings.TrimSpace(b.String()))
		if len(runes) <= n {
			return string(runes)
		}
		return string(runes[:n]) + "…"
	},
	// safeHTML помечает доверенный HTML (контент из richtext-редактора
	// админки) как не требующий экранирования
	"safeHTML": func(s string) template.HTML {
		return template.HTML(s)
	},
}

// Renderer — пре-распарсенный набор шаблонов страниц.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer парсит все шаблоны. Каждая страница получает клон
// своего layout с дополнительно распарсенным файлом страницы.
func NewRenderer() (*Renderer, error) {
	layouts := map[string]*template.Template{}
	parsed := make(map[string]*template.Template, len(pages))

	for view, def := range pages {
		layout, ok := layouts[def.layout]
		if !ok {
			var err error
			layout, err = template.New("layout").Funcs(funcMap).
				ParseFS(templatesFS, "templates/"+def.layout)
			if err != nil {
				return nil, fmt.Errorf("ошибка парсинга layout %s: %w", def.layout, err)
			}
			layouts[def.layout] = layout
		}

		t, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("ошибка клонирования layout для %s: %w", view, err)
		}
		if _, err := t.ParseFS(templatesFS, "templates/"+def.file); err != nil {
			return nil, fmt.Errorf("ошибка парсинга шаблона %s: %w", def.file, err)
		}
		parsed[view] = t
	}

	return &Renderer{pages: parsed}, nil
}

// Render отрисовывает именованный view с данными страницы.
// Имена вида admin/{ресурс}/index, не зарегистрированные явно,
// сводятся к общим шаблонам admin/resource/*: CRUD-страницы всех
// ресурсов используют один набор шаблонов.
func (r *Renderer) Render(w http.ResponseWriter, view string, data PageData) error {
	t, ok := r.pages[view]
	if !ok {
		if generic, found := genericResourceView(view); found {
			t, ok = r.pages[generic]
		}
		if !ok {
			return fmt.Errorf("шаблон не найден: %s", view)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.ExecuteTemplate(w, "layout", data)
}

// genericResourceView сводит admin/{ресурс}/{страница} к admin/resource/{страница}.
func genericResourceView(view string) (string, bool) {
	parts := strings.Split(view, "/")
	if len(parts) != 3 || parts[0] != "admin" {
		return "", false
	}
	switch parts[2] {
	case "index", "add", "edit":
		return "admin/resource/" + parts[2], true
	}
	return "", false
}
