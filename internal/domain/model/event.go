package model

import "time"

// Event — событие (мероприятие) клуба.
// Хранится в таблице events.
type Event struct {
	// ID — UUID записи
	ID string
	// Title — название события
	Title string
	// Description — описание (rich text)
	Description string
	// Date — дата и время проведения (может быть nil, если ещё не назначена)
	Date *time.Time
	// Location — место проведения
	Location string
	// Speaker — докладчик / ведущий
	Speaker string
	// ImageURL — URL афиши в медиа-хранилище
	ImageURL string
	// CreatedAt — время создания записи
	CreatedAt time.Time
	// UpdatedAt — время последнего обновления
	UpdatedAt time.Time
}
