package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gytech/flightdesk/internal/domain"
	"github.com/jackc/pgx/v5"
)

type PostRepository interface {
	LatestID(ctx context.Context) (int64, bool, error)
	GetDetail(ctx context.Context, id, viewerID int64) (*domain.Post, error)
	Insert(ctx context.Context, p *domain.Post) (int64, error)
	AuthorID(ctx context.Context, id int64) (int64, error)
	Delete(ctx context.Context, id int64) error
	SetLiked(ctx context.Context, postID, userID int64, liked bool) error
}

type PGPostRepository struct {
	db Querier
}

func NewPostRepository(db Querier) *PGPostRepository {
	return &PGPostRepository{db: db}
}

// LatestID returns the maximum post id, with ok=false when the feed is empty.
func (r *PGPostRepository) LatestID(ctx context.Context) (int64, bool, error) {
	var max int64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) FROM posts`).Scan(&max)
	if err != nil {
		return 0, false, fmt.Errorf("query latest post id: %w", err)
	}
	return max, max > 0, nil
}

// GetDetail fetches the post together with the viewer's like flag in one
// query. A missing id returns nil without an error: absent ids are a normal
// feature of the sparse feed, not a failure.
func (r *PGPostRepository) GetDetail(ctx context.Context, id, viewerID int64) (*domain.Post, error) {
	row := r.db.QueryRow(ctx, `SELECT p.id, p.author_id, u.name, p.title, p.body, p.image, p.image_format, p.created_at,
			EXISTS(SELECT 1 FROM post_likes l WHERE l.post_id=p.id AND l.user_id=$2) AS liked
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id=$1`, id, viewerID)
	var p domain.Post
	if err := row.Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.Title, &p.Body, &p.Image, &p.ImageFormat, &p.CreatedAt, &p.Liked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post %d: %w", id, err)
	}
	return &p, nil
}

func (r *PGPostRepository) Insert(ctx context.Context, p *domain.Post) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO posts (author_id, title, body, image, image_format) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		p.AuthorID, p.Title, p.Body, p.Image, p.ImageFormat).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert post: %w", err)
	}
	return id, nil
}

func (r *PGPostRepository) AuthorID(ctx context.Context, id int64) (int64, error) {
	var author int64
	err := r.db.QueryRow(ctx, `SELECT author_id FROM posts WHERE id=$1`, id).Scan(&author)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query post author %d: %w", id, err)
	}
	return author, nil
}

// Delete removes the row outright. Ids are never reused, so the deletion
// leaves a soft gap the feed traversal skips over.
func (r *PGPostRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGPostRepository) SetLiked(ctx context.Context, postID, userID int64, liked bool) error {
	if liked {
		_, err := r.db.Exec(ctx, `INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, postID, userID)
		if err != nil {
			return fmt.Errorf("like post %d: %w", postID, err)
		}
		return nil
	}
	_, err := r.db.Exec(ctx, `DELETE FROM post_likes WHERE post_id=$1 AND user_id=$2`, postID, userID)
	if err != nil {
		return fmt.Errorf("unlike post %d: %w", postID, err)
	}
	return nil
}

var _ PostRepository = (*PGPostRepository)(nil)
