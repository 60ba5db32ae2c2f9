package model

import "time"

// Member — участник команды клуба.
// Хранится в таблице members.
type Member struct {
	// ID — UUID записи
	ID string
	// Name — имя участника
	Name string
	// Role — роль в команде (президент, казначей и т.д.)
	Role string
	// Bio — краткая биография
	Bio string
	// LinkedinURL — ссылка на профиль LinkedIn
	LinkedinURL string
	// ImageURL — URL фотографии в медиа-хранилище
	ImageURL string
	// CreatedAt — время создания записи
	CreatedAt time.Time
	// UpdatedAt — время последнего обновления
	UpdatedAt time.Time
}
