package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/clubsite/internal/domain/model"
)

// SectionRepository — интерфейс CRUD для таблицы sections.
type SectionRepository interface {
	// Insert создаёт новый блок контента.
	Insert(ctx context.Context, s *model.Section) error
	// GetByID возвращает блок по UUID.
	GetByID(ctx context.Context, id string) (*model.Section, error)
	// List возвращает все блоки, новые первыми.
	List(ctx context.Context) ([]*model.Section, error)
	// ListByPage возвращает блоки указанной страницы в порядке создания.
	ListByPage(ctx context.Context, page string) ([]*model.Section, error)
	// Update обновляет блок.
	Update(ctx context.Context, s *model.Section) error
	// Delete удаляет блок.
	Delete(ctx context.Context, id string) error
}

// sectionRepo — реализация SectionRepository.
type sectionRepo struct {
	db DBTX
}

// NewSectionRepository создаёт репозиторий блоков контента.
func NewSectionRepository(db DBTX) SectionRepository {
	return &sectionRepo{db: db}
}

const sectionColumns = `id, title, content, page, created_at, updated_at`

func scanSection(row pgx.Row) (*model.Section, error) {
	s := &model.Section{}
	err := row.Scan(&s.ID, &s.Title, &s.Content, &s.Page, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *sectionRepo) Insert(ctx context.Context, s *model.Section) error {
	query := `
		INSERT INTO sections (id, title, content, page)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query, s.ID, s.Title, s.Content, s.Page).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания блока контента: %w", err)
	}
	return nil
}

func (r *sectionRepo) GetByID(ctx context.Context, id string) (*model.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE id = $1`

	s, err := scanSection(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения блока контента: %w", err)
	}
	return s, nil
}

func (r *sectionRepo) List(ctx context.Context) ([]*model.Section, error) {
	return r.list(ctx, `SELECT `+sectionColumns+` FROM sections ORDER BY created_at DESC`)
}

func (r *sectionRepo) ListByPage(ctx context.Context, page string) ([]*model.Section, error) {
	return r.list(ctx,
		`SELECT `+sectionColumns+` FROM sections WHERE page = $1 ORDER BY created_at ASC`,
		page,
	)
}

func (r *sectionRepo) list(ctx context.Context, query string, args ...any) ([]*model.Section, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка блоков: %w", err)
	}
	defer rows.Close()

	var result []*model.Section
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования блока: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *sectionRepo) Update(ctx context.Context, s *model.Section) error {
	query := `
		UPDATE sections
		SET title = $2, content = $3, page = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query, s.ID, s.Title, s.Content, s.Page).
		Scan(&s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка обновления блока контента: %w", err)
	}
	return nil
}

func (r *sectionRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления блока контента: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
