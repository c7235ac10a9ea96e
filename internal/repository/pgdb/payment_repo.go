package pgdb

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/rynok-dev/marketplace-backend/internal/domain"
	"github.com/rynok-dev/marketplace-backend/internal/repository/pgdb/converter"
	"github.com/rynok-dev/marketplace-backend/pkg/e"
	"github.com/rynok-dev/marketplace-backend/pkg/tr"
)

// PaymentRepo реализует журнал платежей поверх PostgreSQL.
// Таблица payments append-only: записи не изменяются и не удаляются.
type PaymentRepo struct {
	pool *pgxpool.Pool
	conv converter.PaymentConverter
}

func NewPaymentRepo(pool *pgxpool.Pool, conv converter.PaymentConverter) *PaymentRepo {
	return &PaymentRepo{pool: pool, conv: conv}
}

// Create вставляет запись платежа в рамках транзакции из контекста —
// в той же транзакции, что и принятие заявки.
func (p *PaymentRepo) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO payments (seller_id, buyer_name, product_title, quantity, check_image, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, seller_id, buyer_name, product_title, quantity, check_image, total_price, created_at;
	`

	var model converter.PaymentModel
	err = tx.QueryRow(ctx, query,
		payment.SellerID, payment.BuyerName, payment.ProductTitle,
		payment.Quantity, payment.CheckImage, payment.TotalPrice,
	).Scan(
		&model.ID, &model.SellerID, &model.BuyerName, &model.ProductTitle,
		&model.Quantity, &model.CheckImage, &model.TotalPrice, &model.CreatedAt,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToPaymentEntity(&model), nil
}

func (p *PaymentRepo) ListForSeller(ctx context.Context, sellerID int64) ([]domain.Payment, error) {
	query := `
		SELECT id, seller_id, buyer_name, product_title, quantity, check_image, total_price, created_at
		FROM payments
		WHERE seller_id = $1
		ORDER BY id DESC
	`

	rows, err := p.pool.Query(ctx, query, sellerID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		var model converter.PaymentModel
		if err := rows.Scan(
			&model.ID, &model.SellerID, &model.BuyerName, &model.ProductTitle,
			&model.Quantity, &model.CheckImage, &model.TotalPrice, &model.CreatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		payments = append(payments, *p.conv.ToPaymentEntity(&model))
	}

	return payments, rows.Err()
}
