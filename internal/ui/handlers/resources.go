// resources.go — декларации CRUD-ресурсов админ-панели.
// Каждая декларация — allow-list полей с геттерами/сеттерами плюс
// опциональная загрузка изображения в медиа-хранилище.
package handlers

import (
	"time"

	"github.com/bigkaa/clubsite/internal/domain/model"
	"github.com/bigkaa/clubsite/internal/resource"
)

// Форматы поля даты мероприятия: значение input type=datetime-local
// либо голая дата.
const (
	dateTimeInputFormat = "2006-01-02T15:04"
	dateInputFormat     = "2006-01-02"
)

// PostResource — декларация ресурса статей блога.
func PostResource() resource.Config[model.Post] {
	return resource.Config[model.Post]{
		Name:  "posts",
		Title: "Статьи",
		New:   func() *model.Post { return &model.Post{} },
		ID:    func(p *model.Post) string { return p.ID },
		SetID: func(p *model.Post, id string) { p.ID = id },
		Fields: []resource.Field[model.Post]{
			{
				Name: "title", Label: "Заголовок", Kind: resource.KindText,
				Get: func(p *model.Post) string { return p.Title },
				Set: func(p *model.Post, v string) { p.Title = v },
			},
			{
				Name: "content", Label: "Содержимое", Kind: resource.KindRichText,
				Get: func(p *model.Post) string { return p.Content },
				Set: func(p *model.Post, v string) { p.Content = v },
			},
			{
				Name: "author", Label: "Автор", Kind: resource.KindText,
				Get: func(p *model.Post) string { return p.Author },
				Set: func(p *model.Post, v string) { p.Author = v },
			},
		},
		Upload: &resource.UploadSpec[model.Post]{
			InputField: "image",
			Folder:     "blog-images",
			GetTarget:  func(p *model.Post) string { return p.ImageURL },
			SetTarget:  func(p *model.Post, url string) { p.ImageURL = url },
		},
	}
}

// EventResource — декларация ресурса мероприятий.
func EventResource() resource.Config[model.Event] {
	return resource.Config[model.Event]{
		Name:  "events",
		Title: "Мероприятия",
		New:   func() *model.Event { return &model.Event{} },
		ID:    func(e *model.Event) string { return e.ID },
		SetID: func(e *model.Event, id string) { e.ID = id },
		Fields: []resource.Field[model.Event]{
			{
				Name: "title", Label: "Название", Kind: resource.KindText,
				Get: func(e *model.Event) string { return e.Title },
				Set: func(e *model.Event, v string) { e.Title = v },
			},
			{
				Name: "description", Label: "Описание", Kind: resource.KindRichText,
				Get: func(e *model.Event) string { return e.Description },
				Set: func(e *model.Event, v string) { e.Description = v },
			},
			{
				Name: "date", Label: "Дата", Kind: resource.KindDate,
				Get: func(e *model.Event) string {
					if e.Date == nil {
						return ""
					}
					return e.Date.Format(dateTimeInputFormat)
				},
				Set: func(e *model.Event, v string) { e.Date = parseEventDate(v) },
			},
			{
				Name: "location", Label: "Место", Kind: resource.KindText,
				Get: func(e *model.Event) string { return e.Location },
				Set: func(e *model.Event, v string) { e.Location = v },
			},
			{
				Name: "speaker", Label: "Спикер", Kind: resource.KindText,
				Get: func(e *model.Event) string { return e.Speaker },
				Set: func(e *model.Event, v string) { e.Speaker = v },
			},
		},
		Upload: &resource.UploadSpec[model.Event]{
			InputField: "image",
			Folder:     "events",
			GetTarget:  func(e *model.Event) string { return e.ImageURL },
			SetTarget:  func(e *model.Event, url string) { e.ImageURL = url },
		},
	}
}

// MemberResource — декларация ресурса участников команды.
func MemberResource() resource.Config[model.Member] {
	return resource.Config[model.Member]{
		Name:  "team",
		Title: "Команда",
		New:   func() *model.Member { return &model.Member{} },
		ID:    func(m *model.Member) string { return m.ID },
		SetID: func(m *model.Member, id string) { m.ID = id },
		Fields: []resource.Field[model.Member]{
			{
				Name: "name", Label: "Имя", Kind: resource.KindText,
				Get: func(m *model.Member) string { return m.Name },
				Set: func(m *model.Member, v string) { m.Name = v },
			},
			{
				Name: "role", Label: "Роль", Kind: resource.KindText,
				Get: func(m *model.Member) string { return m.Role },
				Set: func(m *model.Member, v string) { m.Role = v },
			},
			{
				Name: "bio", Label: "Биография", Kind: resource.KindRichText,
				Get: func(m *model.Member) string { return m.Bio },
				Set: func(m *model.Member, v string) { m.Bio = v },
			},
			{
				Name: "linkedin_url", Label: "LinkedIn", Kind: resource.KindURL,
				Get: func(m *model.Member) string { return m.LinkedinURL },
				Set: func(m *model.Member, v string) { m.LinkedinURL = v },
			},
		},
		Upload: &resource.UploadSpec[model.Member]{
			InputField: "image",
			Folder:     "team",
			GetTarget:  func(m *model.Member) string { return m.ImageURL },
			SetTarget:  func(m *model.Member, url string) { m.ImageURL = url },
		},
	}
}

// SectionResource — декларация ресурса контентных блоков страниц.
// Без загрузки файла.
func SectionResource() resource.Config[model.Section] {
	return resource.Config[model.Section]{
		Name:  "sections",
		Title: "Разделы",
		New:   func() *model.Section { return &model.Section{Page: model.PageHome} },
		ID:    func(s *model.Section) string { return s.ID },
		SetID: func(s *model.Section, id string) { s.ID = id },
		Fields: []resource.Field[model.Section]{
			{
				Name: "title", Label: "Заголовок", Kind: resource.KindText,
				Get: func(s *model.Section) string { return s.Title },
				Set: func(s *model.Section, v string) { s.Title = v },
			},
			{
				Name: "content", Label: "Содержимое", Kind: resource.KindRichText,
				Get: func(s *model.Section) string { return s.Content },
				Set: func(s *model.Section, v string) { s.Content = v },
			},
			{
				Name: "page", Label: "Страница", Kind: resource.KindSelect,
				Options: []string{model.PageHome, model.PageTeam, model.PageEvents},
				Get:     func(s *model.Section) string { return s.Page },
				Set:     func(s *model.Section, v string) { s.Page = v },
			},
		},
	}
}

// parseEventDate разбирает значение поля даты.
// Пустая строка и нераспознанный формат дают nil (дата не назначена).
func parseEventDate(v string) *time.Time {
	if v == "" {
		return nil
	}
	for _, layout := range []string{dateTimeInputFormat, dateInputFormat} {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	return nil
}
