package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/rynok-dev/marketplace-backend/internal/domain"
	"github.com/rynok-dev/marketplace-backend/internal/repository/pgdb/converter"
	"github.com/rynok-dev/marketplace-backend/pkg/e"
)

// CategoryRepo реализует репозиторий категорий поверх PostgreSQL.
type CategoryRepo struct {
	pool *pgxpool.Pool
	conv converter.CategoryConverter
}

func NewCategoryRepo(pool *pgxpool.Pool, conv converter.CategoryConverter) *CategoryRepo {
	return &CategoryRepo{pool: pool, conv: conv}
}

// Create идемпотентно создаёт категорию по названию, игнорируя дубликаты.
func (c *CategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `
		INSERT INTO categories (title) VALUES ($1)
		ON CONFLICT (title) DO UPDATE SET title = EXCLUDED.title
		RETURNING id, title, created_at, updated_at;
	`

	var model converter.CategoryModel
	if err := c.pool.QueryRow(ctx, query, category.Title).
		Scan(&model.ID, &model.Title, &model.CreatedAt, &model.UpdatedAt); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

func (c *CategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `
		SELECT id, title, created_at, updated_at
		FROM categories
		WHERE id = $1
	`

	var model converter.CategoryModel
	err := c.pool.QueryRow(ctx, query, id).
		Scan(&model.ID, &model.Title, &model.CreatedAt, &model.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrCategoryNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

// Delete отклоняет удаление категории, пока на неё ссылается хотя бы один
// продукт (protect-on-delete). Проверка явная, плюс страховка FK RESTRICT.
func (c *CategoryRepo) Delete(ctx context.Context, id int64) error {
	var inUse bool
	err := c.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE category_id = $1)`, id,
	).Scan(&inUse)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if inUse {
		return e.Wrap(whereami.WhereAmI(), e.ErrCategoryInUse)
	}

	result, err := c.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if postgresForeignKeyViolation(err) {
			return e.Wrap(whereami.WhereAmI(), e.ErrCategoryInUse)
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrCategoryNotFound)
	}

	return nil
}
