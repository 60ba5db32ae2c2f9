package model

import "time"

// Post — запись блога.
// Хранится в таблице posts.
type Post struct {
	// ID — UUID записи
	ID string
	// Title — заголовок статьи
	Title string
	// Content — HTML-содержимое статьи (rich text)
	Content string
	// Author — автор статьи
	Author string
	// ImageURL — URL обложки в медиа-хранилище (пустая строка — без обложки)
	ImageURL string
	// Likes — количество лайков
	Likes int
	// CreatedAt — время создания записи
	CreatedAt time.Time
	// UpdatedAt — время последнего обновления
	UpdatedAt time.Time
}

// Comment — комментарий к статье блога.
// Хранится в таблице comments, привязан к посту через PostID.
type Comment struct {
	// ID — UUID комментария
	ID string
	// PostID — UUID статьи
	PostID string
	// Author — имя комментатора
	Author string
	// Body — текст комментария
	Body string
	// Read — прочитан ли комментарий администратором
	Read bool
	// CreatedAt — время создания
	CreatedAt time.Time
}

// UnreadComment — непрочитанный комментарий вместе с заголовком статьи.
// Используется на странице модерации комментариев.
type UnreadComment struct {
	Comment
	// PostTitle — заголовок статьи, к которой оставлен комментарий
	PostTitle string
}
