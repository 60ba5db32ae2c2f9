package model

import "time"

// Допустимые значения поля Section.Page.
const (
	PageHome   = "home"
	PageTeam   = "team"
	PageEvents = "events"
)

// Section — редактируемый блок контента публичной страницы.
// Хранится в таблице sections.
type Section struct {
	// ID — UUID записи
	ID string
	// Title — заголовок блока
	Title string
	// Content — HTML-содержимое блока (rich text)
	Content string
	// Page — страница, на которой отображается блок (home, team, events)
	Page string
	// CreatedAt — время создания записи
	CreatedAt time.Time
	// UpdatedAt — время последнего обновления
	UpdatedAt time.Time
}
