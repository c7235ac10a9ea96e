package pgdb

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/rynok-dev/marketplace-backend/internal/domain"
	"github.com/rynok-dev/marketplace-backend/internal/repository/pgdb/converter"
	"github.com/rynok-dev/marketplace-backend/pkg/e"
)

// PaymentMethodRepo реализует репозиторий методов оплаты поверх PostgreSQL.
type PaymentMethodRepo struct {
	pool *pgxpool.Pool
	conv converter.PaymentConverter
}

func NewPaymentMethodRepo(pool *pgxpool.Pool, conv converter.PaymentConverter) *PaymentMethodRepo {
	return &PaymentMethodRepo{pool: pool, conv: conv}
}

func (p *PaymentMethodRepo) Create(ctx context.Context, method *domain.PaymentMethod) (*domain.PaymentMethod, error) {
	query := `
		INSERT INTO payment_methods (user_id, title, qr_image)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, title, qr_image, created_at;
	`

	var model converter.PaymentMethodModel
	err := p.pool.QueryRow(ctx, query, method.OwnerID, method.Title, method.QRImage).
		Scan(&model.ID, &model.OwnerID, &model.Title, &model.QRImage, &model.CreatedAt)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToMethodEntity(&model), nil
}

func (p *PaymentMethodRepo) ListForUser(ctx context.Context, userID int64) ([]domain.PaymentMethod, error) {
	query := `
		SELECT id, user_id, title, qr_image, created_at
		FROM payment_methods
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := p.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	methods := make([]domain.PaymentMethod, 0)
	for rows.Next() {
		var model converter.PaymentMethodModel
		if err := rows.Scan(
			&model.ID, &model.OwnerID, &model.Title, &model.QRImage, &model.CreatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		methods = append(methods, *p.conv.ToMethodEntity(&model))
	}

	return methods, rows.Err()
}
