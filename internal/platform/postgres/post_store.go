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

// PostgresPostStore implements the store.PostStore interface, including the
// post→category side of the many-to-many relation. Connecting a category
// label is connect-or-create: a missing category is materialized with the
// label as its only attribute.
type PostgresPostStore struct {
	db *sql.DB
}

// NewPostgresPostStore creates a new PostgreSQL implementation of the
// PostStore interface.
func NewPostgresPostStore(db *sql.DB) *PostgresPostStore {
	return &PostgresPostStore{db: db}
}

// Ensure PostgresPostStore implements store.PostStore interface
var _ store.PostStore = (*PostgresPostStore)(nil)

// Create implements store.PostStore.Create
func (s *PostgresPostStore) Create(ctx context.Context, post *domain.Post, categories *domain.RelationDelta) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	now := nowUTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO posts (title, content, thumbnail, author_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			post.Title, post.Content, post.Thumbnail, post.AuthorID,
			post.CreatedAt, post.UpdatedAt,
		).Scan(&post.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return store.ErrTitleExists
			}
			return fmt.Errorf("failed to create post: %w", err)
		}

		if categories != nil {
			return applyCategoryDelta(ctx, tx, post.ID, *categories)
		}
		return nil
	})
}

// applyCategoryDelta applies a reconciled category delta to a post inside
// the surrounding transaction. Connect edges go in first, then disconnect
// edges come out; only edges move, category rows are never deleted.
func applyCategoryDelta(ctx context.Context, tx store.DBTX, postID int64, delta domain.RelationDelta) error {
	if delta.Empty() {
		return nil
	}

	for _, name := range delta.Connect {
		var categoryID int64
		// Upsert-by-label: reuse the existing category or create it with
		// the name as its sole initializing attribute.
		err := tx.QueryRowContext(ctx, `
			INSERT INTO categories (name, created_at)
			VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`,
			name, nowUTC(),
		).Scan(&categoryID)
		if err != nil {
			return fmt.Errorf("failed to upsert category %q: %w", name, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO post_categories (post_id, category_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`,
			postID, categoryID,
		)
		if err != nil {
			return fmt.Errorf("failed to connect category %q: %w", name, err)
		}
	}

	for _, name := range delta.Disconnect {
		_, err := tx.ExecContext(ctx, `
			DELETE FROM post_categories pc
			USING categories c
			WHERE pc.post_id = $1 AND pc.category_id = c.id AND c.name = $2`,
			postID, name,
		)
		if err != nil {
			return fmt.Errorf("failed to disconnect category %q: %w", name, err)
		}
	}

	return nil
}

const postColumns = `
	p.id, p.title, p.content, p.thumbnail, p.author_id, p.created_at, p.updated_at,
	u.id, u.name, u.email, u.bio, u.role`

func scanPost(scanner interface{ Scan(...any) error }) (*domain.Post, error) {
	var post domain.Post
	var author domain.User
	err := scanner.Scan(
		&post.ID, &post.Title, &post.Content, &post.Thumbnail, &post.AuthorID,
		&post.CreatedAt, &post.UpdatedAt,
		&author.ID, &author.Name, &author.Email, &author.Bio, &author.Role,
	)
	if err != nil {
		return nil, err
	}
	post.Author = &author
	return &post, nil
}

// GetByID implements store.PostStore.GetByID
func (s *PostgresPostStore) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := scanPost(s.db.QueryRowContext(ctx, `
		SELECT `+postColumns+`
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	if post.Categories, err = s.loadCategories(ctx, post.ID); err != nil {
		return nil, err
	}
	return post, nil
}

// List implements store.PostStore.List
func (s *PostgresPostStore) List(ctx context.Context, w validation.Window) ([]domain.Post, error) {
	query := fmt.Sprintf(`
		SELECT `+postColumns+`
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.title ILIKE '%%' || $1 || '%%' OR p.content ILIKE '%%' || $1 || '%%'
		ORDER BY %s
		OFFSET $2 LIMIT $3`,
		orderClause(w, "p.title", "p.created_at"),
	)
	return s.listPosts(ctx, query, w.Search, w.Start, w.Width())
}

// ListByCategory implements store.PostStore.ListByCategory
func (s *PostgresPostStore) ListByCategory(ctx context.Context, categoryID int64, w validation.Window) ([]domain.Post, error) {
	query := fmt.Sprintf(`
		SELECT `+postColumns+`
		FROM posts p
		JOIN users u ON u.id = p.author_id
		JOIN post_categories pc ON pc.post_id = p.id AND pc.category_id = $4
		WHERE p.title ILIKE '%%' || $1 || '%%' OR p.content ILIKE '%%' || $1 || '%%'
		ORDER BY %s
		OFFSET $2 LIMIT $3`,
		orderClause(w, "p.title", "p.created_at"),
	)
	return s.listPosts(ctx, query, w.Search, w.Start, w.Width(), categoryID)
}

func (s *PostgresPostStore) listPosts(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	for i := range posts {
		if posts[i].Categories, err = s.loadCategories(ctx, posts[i].ID); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

func (s *PostgresPostStore) loadCategories(ctx context.Context, postID int64) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.created_at
		FROM categories c
		JOIN post_categories pc ON pc.category_id = c.id
		WHERE pc.post_id = $1
		ORDER BY c.name`,
		postID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load post categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Update implements store.PostStore.Update
func (s *PostgresPostStore) Update(ctx context.Context, post *domain.Post, categories *domain.RelationDelta) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	post.UpdatedAt = nowUTC()

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE posts
			SET title = $1, content = $2, thumbnail = $3, author_id = $4, updated_at = $5
			WHERE id = $6`,
			post.Title, post.Content, post.Thumbnail, post.AuthorID, post.UpdatedAt, post.ID,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return store.ErrTitleExists
			}
			return fmt.Errorf("failed to update post: %w", err)
		}
		if err := requireRow(result, store.ErrPostNotFound); err != nil {
			return err
		}

		if categories != nil {
			return applyCategoryDelta(ctx, tx, post.ID, *categories)
		}
		return nil
	})
}

// Delete implements store.PostStore.Delete
func (s *PostgresPostStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return requireRow(result, store.ErrPostNotFound)
}

// TitleTaken implements the uniqueness probe.
func (s *PostgresPostStore) TitleTaken(ctx context.Context, title string, excludeID int64) (bool, error) {
	var taken bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM posts WHERE title = $1 AND id <> $2)`,
		title, excludeID,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check title: %w", err)
	}
	return taken, nil
}

// Exists implements store.PostStore.Exists
func (s *PostgresPostStore) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check post existence: %w", err)
	}
	return exists, nil
}

// ExistsByTitle implements store.PostStore.ExistsByTitle
func (s *PostgresPostStore) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM posts WHERE title = $1)`, title,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check post existence by title: %w", err)
	}
	return exists, nil
}

// CategoryNames implements the reconciler's view of the current relation set.
func (s *PostgresPostStore) CategoryNames(ctx context.Context, id int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.name
		FROM categories c
		JOIN post_categories pc ON pc.category_id = c.id
		WHERE pc.post_id = $1
		ORDER BY c.name`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load category names: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan category name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
