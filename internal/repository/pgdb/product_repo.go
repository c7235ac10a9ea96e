package pgdb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/rynok-dev/marketplace-backend/internal/domain"
	"github.com/rynok-dev/marketplace-backend/internal/repository/pgdb/converter"
	"github.com/rynok-dev/marketplace-backend/internal/usecase"
	"github.com/rynok-dev/marketplace-backend/pkg/e"
	"github.com/rynok-dev/marketplace-backend/pkg/tr"
)

// Число похожих продуктов в карточке.
const similarLimit = 4

const productColumns = `id, user_id, title, category_id, main_image, description, price, is_active, created_at, updated_at`

// ProductRepo реализует репозиторий продуктов поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// Create вставляет продукт и строки галереи в рамках транзакции из контекста.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product, galleryKeys []string) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO products (user_id, title, category_id, main_image, description, price, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + productColumns + `;
	`

	model, err := scanProduct(tx.QueryRow(ctx, query,
		product.OwnerID, product.Title, product.CategoryID,
		product.MainImage, product.Description, product.Price, product.IsActive,
	))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	for _, key := range galleryKeys {
		var imageID int64
		if err := tx.QueryRow(ctx,
			`INSERT INTO images (file_key) VALUES ($1) RETURNING id`, key,
		).Scan(&imageID); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO product_images (product_id, image_id) VALUES ($1, $2)`,
			model.ID, imageID,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return p.conv.ToEntity(model), nil
}

func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		UPDATE products
		SET title = $2,
			category_id = $3,
			main_image = $4,
			description = $5,
			price = $6,
			is_active = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns + `;
	`

	model, err := scanProduct(p.pool.QueryRow(ctx, query,
		product.ID, product.Title, product.CategoryID,
		product.MainImage, product.Description, product.Price, product.IsActive,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	model, err := scanProduct(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

func (p *ProductRepo) GetGallery(ctx context.Context, productID int64) ([]domain.Image, error) {
	query := `
		SELECT i.id, i.file_key
		FROM images i
		JOIN product_images pi ON pi.image_id = i.id
		WHERE pi.product_id = $1
		ORDER BY i.id
	`

	rows, err := p.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	images := make([]domain.Image, 0)
	for rows.Next() {
		var image domain.Image
		if err := rows.Scan(&image.ID, &image.FileKey); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		images = append(images, image)
	}

	return images, rows.Err()
}

// ListActive возвращает активные продукты, новые первыми.
func (p *ProductRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active = TRUE
		ORDER BY created_at DESC, id DESC
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return p.collectProducts(rows)
}

// ListSimilar возвращает активные продукты той же категории, исключая сам продукт.
func (p *ProductRepo) ListSimilar(ctx context.Context, categoryID, excludeID int64) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active = TRUE AND category_id = $1 AND id <> $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`

	rows, err := p.pool.Query(ctx, query, categoryID, excludeID, similarLimit)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return p.collectProducts(rows)
}

// Search выполняет поиск по каталогу и возвращает страницу результатов
// вместе с общим числом совпадений. Порядок стабильный: по id.
func (p *ProductRepo) Search(ctx context.Context, filter *usecase.ProductFilter) ([]domain.Product, int64, error) {
	where, args := buildSearchWhere(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM products ` + where
	if err := p.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	pageQuery, pageArgs := buildSearchPage(filter, where, args)
	rows, err := p.pool.Query(ctx, pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	products, err := p.collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// buildSearchWhere собирает WHERE-часть поискового запроса.
// В выборку попадают только активные продукты.
func buildSearchWhere(filter *usecase.ProductFilter) (string, []any) {
	conditions := []string{"is_active = TRUE"}
	args := make([]any, 0, 4)

	if filter.TitleSearch != "" {
		args = append(args, "%"+filter.TitleSearch+"%")
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if filter.PriceGte != nil {
		args = append(args, *filter.PriceGte)
		conditions = append(conditions, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.PriceLte != nil {
		args = append(args, *filter.PriceLte)
		conditions = append(conditions, fmt.Sprintf("price <= $%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", len(args)))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// buildSearchPage дополняет WHERE-часть сортировкой и пагинацией.
func buildSearchPage(filter *usecase.ProductFilter, where string, args []any) (string, []any) {
	pageArgs := append(append([]any{}, args...), filter.PageSize, (filter.Page-1)*filter.PageSize)

	query := fmt.Sprintf(
		`SELECT %s FROM products %s ORDER BY id LIMIT $%d OFFSET $%d`,
		productColumns, where, len(pageArgs)-1, len(pageArgs),
	)

	return query, pageArgs
}

func scanProduct(row pgx.Row) (*converter.ProductModel, error) {
	var model converter.ProductModel
	err := row.Scan(
		&model.ID, &model.OwnerID, &model.Title, &model.CategoryID,
		&model.MainImage, &model.Description, &model.Price,
		&model.IsActive, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &model, nil
}

func (p *ProductRepo) collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	products := make([]domain.Product, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.OwnerID, &model.Title, &model.CategoryID,
			&model.MainImage, &model.Description, &model.Price,
			&model.IsActive, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		products = append(products, *p.conv.ToEntity(&model))
	}

	return products, rows.Err()
}
