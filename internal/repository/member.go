package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/clubsite/internal/domain/model"
)

// MemberRepository — интерфейс CRUD для таблицы members.
type MemberRepository interface {
	// Insert создаёт нового участника команды.
	Insert(ctx context.Context, m *model.Member) error
	// GetByID возвращает участника по UUID.
	GetByID(ctx context.Context, id string) (*model.Member, error)
	// List возвращает всех участников, новые первыми.
	List(ctx context.Context) ([]*model.Member, error)
	// Update обновляет участника.
	Update(ctx context.Context, m *model.Member) error
	// Delete удаляет участника.
	Delete(ctx context.Context, id string) error
	// Count возвращает количество участников.
	Count(ctx context.Context) (int, error)
}

// memberRepo — реализация MemberRepository.
type memberRepo struct {
	db DBTX
}

// NewMemberRepository создаёт репозиторий участников команды.
func NewMemberRepository(db DBTX) MemberRepository {
	return &memberRepo{db: db}
}

const memberColumns = `id, name, role, bio, linkedin_url, image_url, created_at, updated_at`

func scanMember(row pgx.Row) (*model.Member, error) {
	m := &model.Member{}
	err := row.Scan(
		&m.ID, &m.Name, &m.Role, &m.Bio,
		&m.LinkedinURL, &m.ImageURL, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *memberRepo) Insert(ctx context.Context, m *model.Member) error {
	query := `
		INSERT INTO members (id, name, role, bio, linkedin_url, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		m.ID, m.Name, m.Role, m.Bio, m.LinkedinURL, m.ImageURL,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания участника: %w", err)
	}
	return nil
}

func (r *memberRepo) GetByID(ctx context.Context, id string) (*model.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`

	m, err := scanMember(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения участника: %w", err)
	}
	return m, nil
}

func (r *memberRepo) List(ctx context.Context) ([]*model.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка участников: %w", err)
	}
	defer rows.Close()

	var result []*model.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования участника: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (r *memberRepo) Update(ctx context.Context, m *model.Member) error {
	query := `
		UPDATE members
		SET name = $2, role = $3, bio = $4, linkedin_url = $5, image_url = $6,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		m.ID, m.Name, m.Role, m.Bio, m.LinkedinURL, m.ImageURL,
	).Scan(&m.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка обновления участника: %w", err)
	}
	return nil
}

func (r *memberRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления участника: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *memberRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM members`).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта участников: %w", err)
	}
	return count, nil
}
