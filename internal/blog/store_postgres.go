package blog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ihostcast/ArtistsAid-sub001/pkg/platform/sentinel"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetPost(ctx context.Context, id uuid.UUID) (Post, error) {
	var post Post
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, content, excerpt, updated_at FROM blog_posts WHERE id = $1`,
		id,
	).Scan(&post.ID, &post.Title, &post.Content, &post.Excerpt, &post.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Post{}, sentinel.ErrNotFound
		}
		return Post{}, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

func (s *PostgresStore) InsertPost(ctx context.Context, post Post) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO blog_posts (id, title, content, excerpt, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		post.ID, post.Title, post.Content, post.Excerpt, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdatePostContent(ctx context.Context, post Post) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE blog_posts SET title = $2, content = $3, excerpt = $4, updated_at = $5 WHERE id = $1`,
		post.ID, post.Title, post.Content, post.Excerpt, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) InsertRevision(ctx context.Context, rev Revision) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO blog_revisions (id, post_id, title, content, excerpt, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		rev.ID, rev.PostID, rev.Title, rev.Content, rev.Excerpt, rev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert revision: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetRevision(ctx context.Context, id uuid.UUID) (Revision, error) {
	var rev Revision
	err := s.db.QueryRowContext(ctx,
		`SELECT id, post_id, title, content, excerpt, created_at FROM blog_revisions WHERE id = $1`,
		id,
	).Scan(&rev.ID, &rev.PostID, &rev.Title, &rev.Content, &rev.Excerpt, &rev.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Revision{}, sentinel.ErrNotFound
		}
		return Revision{}, fmt.Errorf("get revision: %w", err)
	}
	return rev, nil
}

func (s *PostgresStore) ListRevisions(ctx context.Context, postID uuid.UUID) ([]Revision, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, post_id, title, content, excerpt, created_at FROM blog_revisions WHERE post_id = $1 ORDER BY created_at DESC`,
		postID,
	)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	var revisions []Revision
	for rows.Next() {
		var rev Revision
		if err := rows.Scan(&rev.ID, &rev.PostID, &rev.Title, &rev.Content, &rev.Excerpt, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		revisions = append(revisions, rev)
	}
	return revisions, rows.Err()
}
