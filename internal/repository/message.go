package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/clubsite/internal/domain/model"
)

// MessageRepository — интерфейс для таблицы messages (форма обратной связи).
type MessageRepository interface {
	// Insert сохраняет новое сообщение.
	Insert(ctx context.Context, m *model.Message) error
	// GetByID возвращает сообщение по UUID.
	GetByID(ctx context.Context, id string) (*model.Message, error)
	// List возвращает все сообщения, новые первыми.
	List(ctx context.Context) ([]*model.Message, error)
	// ToggleRead переключает флаг прочитанности сообщения.
	ToggleRead(ctx context.Context, id string) error
	// CountUnread возвращает количество непрочитанных сообщений.
	CountUnread(ctx context.Context) (int, error)
}

// messageRepo — реализация MessageRepository.
type messageRepo struct {
	db DBTX
}

// NewMessageRepository создаёт репозиторий сообщений обратной связи.
func NewMessageRepository(db DBTX) MessageRepository {
	return &messageRepo{db: db}
}

const messageColumns = `id, name, email, body, read, created_at`

func scanMessage(row pgx.Row) (*model.Message, error) {
	m := &model.Message{}
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &m.Read, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *messageRepo) Insert(ctx context.Context, m *model.Message) error {
	query := `
		INSERT INTO messages (id, name, email, body)
		VALUES ($1, $2, $3, $4)
		RETURNING read, created_at`

	err := r.db.QueryRow(ctx, query, m.ID, m.Name, m.Email, m.Body).
		Scan(&m.Read, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка сохранения сообщения: %w", err)
	}
	return nil
}

func (r *messageRepo) GetByID(ctx context.Context, id string) (*model.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`

	m, err := scanMessage(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения сообщения: %w", err)
	}
	return m, nil
}

func (r *messageRepo) List(ctx context.Context) ([]*model.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка сообщений: %w", err)
	}
	defer rows.Close()

	var result []*model.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования сообщения: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (r *messageRepo) ToggleRead(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `UPDATE messages SET read = NOT read WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка переключения флага прочитанности: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *messageRepo) CountUnread(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM messages WHERE NOT read`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта непрочитанных сообщений: %w", err)
	}
	return count, nil
}
