package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/clubsite/internal/domain/model"
)

// EventRepository — интерфейс CRUD для таблицы events.
type EventRepository interface {
	// Insert создаёт новое событие.
	Insert(ctx context.Context, e *model.Event) error
	// GetByID возвращает событие по UUID.
	GetByID(ctx context.Context, id string) (*model.Event, error)
	// List возвращает все события, новые первыми.
	List(ctx context.Context) ([]*model.Event, error)
	// ListByDate возвращает все события, упорядоченные по дате проведения.
	ListByDate(ctx context.Context) ([]*model.Event, error)
	// Update обновляет событие.
	Update(ctx context.Context, e *model.Event) error
	// Delete удаляет событие.
	Delete(ctx context.Context, id string) error
	// Count возвращает количество событий.
	Count(ctx context.Context) (int, error)
}

// eventRepo — реализация EventRepository.
type eventRepo struct {
	db DBTX
}

// NewEventRepository создаёт репозиторий событий.
func NewEventRepository(db DBTX) EventRepository {
	return &eventRepo{db: db}
}

const eventColumns = `id, title, description, date, location, speaker, image_url, created_at, updated_at`

func scanEvent(row pgx.Row) (*model.Event, error) {
	e := &model.Event{}
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Date,
		&e.Location, &e.Speaker, &e.ImageURL, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepo) Insert(ctx context.Context, e *model.Event) error {
	query := `
		INSERT INTO events (id, title, description, date, location, speaker, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		e.ID, e.Title, e.Description, e.Date, e.Location, e.Speaker, e.ImageURL,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания события: %w", err)
	}
	return nil
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	e, err := scanEvent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения события: %w", err)
	}
	return e, nil
}

func (r *eventRepo) List(ctx context.Context) ([]*model.Event, error) {
	return r.listWithOrder(ctx, "created_at DESC")
}

func (r *eventRepo) ListByDate(ctx context.Context) ([]*model.Event, error) {
	return r.listWithOrder(ctx, "date ASC NULLS LAST")
}

func (r *eventRepo) listWithOrder(ctx context.Context, order string) ([]*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY ` + order

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка событий: %w", err)
	}
	defer rows.Close()

	var result []*model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования события: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *eventRepo) Update(ctx context.Context, e *model.Event) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, date = $4, location = $5,
			speaker = $6, image_url = $7, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		e.ID, e.Title, e.Description, e.Date, e.Location, e.Speaker, e.ImageURL,
	).Scan(&e.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка обновления события: %w", err)
	}
	return nil
}

func (r *eventRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления события: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *eventRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта событий: %w", err)
	}
	return count, nil
}
