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

// PostgresCategoryStore implements the store.CategoryStore interface.
// The category→post side of the relation connects posts by title and never
// creates them; the pipeline has already verified every title resolves.
type PostgresCategoryStore struct {
	db *sql.DB
}

// NewPostgresCategoryStore creates a new PostgreSQL implementation of the
// CategoryStore interface.
func NewPostgresCategoryStore(db *sql.DB) *PostgresCategoryStore {
	return &PostgresCategoryStore{db: db}
}

// Ensure PostgresCategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

// Create implements store.CategoryStore.Create
func (s *PostgresCategoryStore) Create(ctx context.Context, category *domain.Category, posts *domain.RelationDelta) error {
	if err := category.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	category.CreatedAt = nowUTC()

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO categories (name, created_at)
			VALUES ($1, $2)
			RETURNING id`,
			category.Name, category.CreatedAt,
		).Scan(&category.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return store.ErrCategoryNameExists
			}
			return fmt.Errorf("failed to create category: %w", err)
		}

		if posts != nil {
			return applyPostDelta(ctx, tx, category.ID, *posts)
		}
		return nil
	})
}

// applyPostDelta applies a reconciled post delta to a category inside the
// surrounding transaction. Edges only; post rows are never created or
// deleted from this direction.
func applyPostDelta(ctx context.Context, tx store.DBTX, categoryID int64, delta domain.RelationDelta) error {
	if delta.Empty() {
		return nil
	}

	for _, title := range delta.Connect {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO post_categories (post_id, category_id)
			SELECT p.id, $1 FROM posts p WHERE p.title = $2
			ON CONFLICT DO NOTHING`,
			categoryID, title,
		)
		if err != nil {
			return fmt.Errorf("failed to connect post %q: %w", title, err)
		}
	}

	for _, title := range delta.Disconnect {
		_, err := tx.ExecContext(ctx, `
			DELETE FROM post_categories pc
			USING posts p
			WHERE pc.category_id = $1 AND pc.post_id = p.id AND p.title = $2`,
			categoryID, title,
		)
		if err != nil {
			return fmt.Errorf("failed to disconnect post %q: %w", title, err)
		}
	}

	return nil
}

// GetByID implements store.CategoryStore.GetByID
func (s *PostgresCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var category domain.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT c.id, c.name, c.created_at, COUNT(pc.post_id)
		FROM categories c
		LEFT JOIN post_categories pc ON pc.category_id = c.id
		WHERE c.id = $1
		GROUP BY c.id, c.name, c.created_at`,
		id,
	).Scan(&category.ID, &category.Name, &category.CreatedAt, &category.PostCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// List implements store.CategoryStore.List
func (s *PostgresCategoryStore) List(ctx context.Context, w validation.Window) ([]domain.Category, error) {
	query := fmt.Sprintf(`
		SELECT c.id, c.name, c.created_at
		FROM categories c
		WHERE c.name ILIKE '%%' || $1 || '%%'
		ORDER BY %s
		OFFSET $2 LIMIT $3`,
		orderClause(w, "c.name", "c.created_at"),
	)

	rows, err := s.db.QueryContext(ctx, query, w.Search, w.Start, w.Width())
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
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

// Update implements store.CategoryStore.Update
func (s *PostgresCategoryStore) Update(ctx context.Context, category *domain.Category, posts *domain.RelationDelta) error {
	if err := category.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE categories SET name = $1 WHERE id = $2`,
			category.Name, category.ID,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return store.ErrCategoryNameExists
			}
			return fmt.Errorf("failed to update category: %w", err)
		}
		if err := requireRow(result, store.ErrCategoryNotFound); err != nil {
			return err
		}

		if posts != nil {
			return applyPostDelta(ctx, tx, category.ID, *posts)
		}
		return nil
	})
}

// Delete implements store.CategoryStore.Delete
func (s *PostgresCategoryStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return requireRow(result, store.ErrCategoryNotFound)
}

// NameTaken implements the uniqueness probe.
func (s *PostgresCategoryStore) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	var taken bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1 AND id <> $2)`,
		name, excludeID,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}
	return taken, nil
}

// Exists implements store.CategoryStore.Exists
func (s *PostgresCategoryStore) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category existence: %w", err)
	}
	return exists, nil
}

// PostTitles implements the reconciler's view of the current relation set.
func (s *PostgresCategoryStore) PostTitles(ctx context.Context, id int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.title
		FROM posts p
		JOIN post_categories pc ON pc.post_id = p.id
		WHERE pc.category_id = $1
		ORDER BY p.title`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load post titles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("failed to scan post title: %w", err)
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}
