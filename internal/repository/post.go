package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/clubsite/internal/domain/model"
)

// PostRepository — интерфейс CRUD для таблицы posts.
type PostRepository interface {
	// Insert создаёт новую статью.
	Insert(ctx context.Context, p *model.Post) error
	// GetByID возвращает статью по UUID.
	GetByID(ctx context.Context, id string) (*model.Post, error)
	// List возвращает все статьи, новые первыми.
	List(ctx context.Context) ([]*model.Post, error)
	// ListRecent возвращает не более limit последних статей, исключая excludeID.
	ListRecent(ctx context.Context, excludeID string, limit int) ([]*model.Post, error)
	// Update обновляет статью.
	Update(ctx context.Context, p *model.Post) error
	// Delete удаляет статью (вместе с комментариями по ON DELETE CASCADE).
	Delete(ctx context.Context, id string) error
	// IncrementLikes увеличивает счётчик лайков на единицу.
	IncrementLikes(ctx context.Context, id string) error
	// Count возвращает количество статей.
	Count(ctx context.Context) (int, error)
}

// postRepo — реализация PostRepository.
type postRepo struct {
	db DBTX
}

// NewPostRepository создаёт репозиторий статей блога.
func NewPostRepository(db DBTX) PostRepository {
	return &postRepo{db: db}
}

// postColumns — список колонок таблицы posts в порядке сканирования.
const postColumns = `id, title, content, author, image_url, likes, created_at, updated_at`

func scanPost(row pgx.Row) (*model.Post, error) {
	p := &model.Post{}
	err := row.Scan(
		&p.ID, &p.Title, &p.Content, &p.Author,
		&p.ImageURL, &p.Likes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postRepo) Insert(ctx context.Context, p *model.Post) error {
	query := `
		INSERT INTO posts (id, title, content, author, image_url, likes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		p.ID, p.Title, p.Content, p.Author, p.ImageURL, p.Likes,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания статьи: %w", err)
	}
	return nil
}

func (r *postRepo) GetByID(ctx context.Context, id string) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	p, err := scanPost(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения статьи: %w", err)
	}
	return p, nil
}

func (r *postRepo) List(ctx context.Context) ([]*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка статей: %w", err)
	}
	defer rows.Close()

	var result []*model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования статьи: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *postRepo) ListRecent(ctx context.Context, excludeID string, limit int) ([]*model.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE id <> $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения последних статей: %w", err)
	}
	defer rows.Close()

	var result []*model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования статьи: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *postRepo) Update(ctx context.Context, p *model.Post) error {
	query := `
		UPDATE posts
		SET title = $2, content = $3, author = $4, image_url = $5, likes = $6,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		p.ID, p.Title, p.Content, p.Author, p.ImageURL, p.Likes,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка обновления статьи: %w", err)
	}
	return nil
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления статьи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepo) IncrementLikes(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `UPDATE posts SET likes = likes + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка увеличения лайков: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта статей: %w", err)
	}
	return count, nil
}
