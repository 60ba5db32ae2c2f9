package model

import "time"

// Message — сообщение из формы обратной связи.
// Хранится в таблице messages.
type Message struct {
	// ID — UUID сообщения
	ID string
	// Name — имя отправителя
	Name string
	// Email — адрес для ответа
	Email string
	// Body — текст сообщения
	Body string
	// Read — прочитано ли сообщение администратором
	Read bool
	// CreatedAt — время получения
	CreatedAt time.Time
}
