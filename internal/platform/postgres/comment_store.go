package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/calloway/quill-api/internal/domain"
	"github.com/calloway/quill-api/internal/store"
	"github.com/calloway/quill-api/internal/validation"
)

// PostgresCommentStore implements the store.CommentStore interface.
type PostgresCommentStore struct {
	db *sql.DB
}

// NewPostgresCommentStore creates a new PostgreSQL implementation of the
// CommentStore interface.
func NewPostgresCommentStore(db *sql.DB) *PostgresCommentStore {
	return &PostgresCommentStore{db: db}
}

// Ensure PostgresCommentStore implements store.CommentStore interface
var _ store.CommentStore = (*PostgresCommentStore)(nil)

// Create implements store.CommentStore.Create
func (s *PostgresCommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	if err := comment.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	now := nowUTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO comments (content, author_id, post_id, parent_comment_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		comment.Content, comment.AuthorID, comment.PostID, comment.ParentCommentID,
		comment.CreatedAt, comment.UpdatedAt,
	).Scan(&comment.ID)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func scanComment(scanner interface{ Scan(...any) error }) (*domain.Comment, error) {
	var comment domain.Comment
	var parent sql.NullInt64
	err := scanner.Scan(
		&comment.ID, &comment.Content, &comment.AuthorID, &comment.PostID,
		&parent, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if parent.Valid {
		comment.ParentCommentID = &parent.Int64
	}
	return &comment, nil
}

const commentColumns = `
	c.id, c.content, c.author_id, c.post_id, c.parent_comment_id, c.created_at, c.updated_at`

// GetByID implements store.CommentStore.GetByID
func (s *PostgresCommentStore) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	comment, err := scanComment(s.db.QueryRowContext(ctx, `
		SELECT `+commentColumns+`
		FROM comments c
		WHERE c.id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	if comment.Replies, err = s.loadReplies(ctx, comment.ID); err != nil {
		return nil, err
	}
	return comment, nil
}

// List implements store.CommentStore.List. Comments only order by date;
// the window's orderBy is ignored here the way the original list endpoint
// ignores it.
func (s *PostgresCommentStore) List(ctx context.Context, w validation.Window) ([]domain.Comment, error) {
	query := fmt.Sprintf(`
		SELECT `+commentColumns+`
		FROM comments c
		WHERE c.content ILIKE '%%' || $1 || '%%'
		ORDER BY c.created_at %s
		OFFSET $2 LIMIT $3`,
		orderDirection(w),
	)
	return s.listComments(ctx, query, w.Search, w.Start, w.Width())
}

// ListByPost implements store.CommentStore.ListByPost
func (s *PostgresCommentStore) ListByPost(ctx context.Context, postID int64, w validation.Window) ([]domain.Comment, error) {
	query := fmt.Sprintf(`
		SELECT `+commentColumns+`
		FROM comments c
		WHERE c.post_id = $4 AND c.content ILIKE '%%' || $1 || '%%'
		ORDER BY c.created_at %s
		OFFSET $2 LIMIT $3`,
		orderDirection(w),
	)

	comments, err := s.listComments(ctx, query, w.Search, w.Start, w.Width(), postID)
	if err != nil {
		return nil, err
	}

	for i := range comments {
		if comments[i].Replies, err = s.loadReplies(ctx, comments[i].ID); err != nil {
			return nil, err
		}
	}
	return comments, nil
}

func (s *PostgresCommentStore) listComments(ctx context.Context, query string, args ...any) ([]domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var comments []domain.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, *comment)
	}
	return comments, rows.Err()
}

func (s *PostgresCommentStore) loadReplies(ctx context.Context, parentID int64) ([]domain.Comment, error) {
	return s.listComments(ctx, `
		SELECT `+commentColumns+`
		FROM comments c
		WHERE c.parent_comment_id = $1
		ORDER BY c.created_at`,
		parentID,
	)
}

// Update implements store.CommentStore.Update
func (s *PostgresCommentStore) Update(ctx context.Context, comment *domain.Comment) error {
	if err := comment.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	comment.UpdatedAt = nowUTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE comments
		SET content = $1, author_id = $2, post_id = $3, parent_comment_id = $4, updated_at = $5
		WHERE id = $6`,
		comment.Content, comment.AuthorID, comment.PostID, comment.ParentCommentID,
		comment.UpdatedAt, comment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return requireRow(result, store.ErrCommentNotFound)
}

// Delete implements store.CommentStore.Delete
func (s *PostgresCommentStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return requireRow(result, store.ErrCommentNotFound)
}

// Exists implements store.CommentStore.Exists
func (s *PostgresCommentStore) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check comment existence: %w", err)
	}
	return exists, nil
}
