package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/clubsite/internal/domain/model"
)

// CommentRepository — интерфейс для таблицы comments.
type CommentRepository interface {
	// Insert сохраняет новый комментарий к статье.
	Insert(ctx context.Context, c *model.Comment) error
	// ListByPost возвращает комментарии статьи, старые первыми.
	ListByPost(ctx context.Context, postID string) ([]*model.Comment, error)
	// ListUnread возвращает непрочитанные комментарии со всех статей,
	// новые первыми, вместе с заголовками статей.
	ListUnread(ctx context.Context) ([]*model.UnreadComment, error)
	// MarkRead помечает комментарий прочитанным.
	MarkRead(ctx context.Context, id string) error
	// CountUnread возвращает количество непрочитанных комментариев.
	CountUnread(ctx context.Context) (int, error)
}

// commentRepo — реализация CommentRepository.
type commentRepo struct {
	db DBTX
}

// NewCommentRepository создаёт репозиторий комментариев.
func NewCommentRepository(db DBTX) CommentRepository {
	return &commentRepo{db: db}
}

const commentColumns = `id, post_id, author, body, read, created_at`

func scanComment(row pgx.Row) (*model.Comment, error) {
	c := &model.Comment{}
	err := row.Scan(&c.ID, &c.PostID, &c.Author, &c.Body, &c.Read, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *commentRepo) Insert(ctx context.Context, c *model.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, author, body)
		VALUES ($1, $2, $3, $4)
		RETURNING read, created_at`

	err := r.db.QueryRow(ctx, query, c.ID, c.PostID, c.Author, c.Body).
		Scan(&c.Read, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка сохранения комментария: %w", err)
	}
	return nil
}

func (r *commentRepo) ListByPost(ctx context.Context, postID string) ([]*model.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения комментариев статьи: %w", err)
	}
	defer rows.Close()

	var result []*model.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования комментария: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *commentRepo) ListUnread(ctx context.Context) ([]*model.UnreadComment, error) {
	query := `
		SELECT c.id, c.post_id, c.author, c.body, c.read, c.created_at, p.title
		FROM comments c
		JOIN posts p ON p.id = c.post_id
		WHERE NOT c.read
		ORDER BY c.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения непрочитанных комментариев: %w", err)
	}
	defer rows.Close()

	var result []*model.UnreadComment
	for rows.Next() {
		uc := &model.UnreadComment{}
		err := rows.Scan(
			&uc.ID, &uc.PostID, &uc.Author, &uc.Body,
			&uc.Read, &uc.CreatedAt, &uc.PostTitle,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования комментария: %w", err)
		}
		result = append(result, uc)
	}
	return result, rows.Err()
}

func (r *commentRepo) MarkRead(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `UPDATE comments SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка пометки комментария прочитанным: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *commentRepo) CountUnread(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE NOT read`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта непрочитанных комментариев: %w", err)
	}
	return count, nil
}
