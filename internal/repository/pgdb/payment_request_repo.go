package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/rynok-dev/marketplace-backend/internal/domain"
	"github.com/rynok-dev/marketplace-backend/internal/repository/pgdb/converter"
	"github.com/rynok-dev/marketplace-backend/internal/usecase"
	"github.com/rynok-dev/marketplace-backend/pkg/e"
	"github.com/rynok-dev/marketplace-backend/pkg/tr"
)

const requestColumns = `id, user_id, product_id, quantity, check_image, total_price, status, created_at, updated_at`

// PaymentRequestRepo реализует репозиторий заявок на оплату поверх PostgreSQL.
type PaymentRequestRepo struct {
	pool *pgxpool.Pool
	conv converter.PaymentConverter
}

func NewPaymentRequestRepo(pool *pgxpool.Pool, conv converter.PaymentConverter) *PaymentRequestRepo {
	return &PaymentRequestRepo{pool: pool, conv: conv}
}

// Create вставляет заявку в рамках транзакции из контекста.
func (p *PaymentRequestRepo) Create(ctx context.Context, request *domain.PaymentRequest) (*domain.PaymentRequest, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO payment_requests (user_id, product_id, quantity, check_image, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + requestColumns + `;
	`

	model, err := scanRequest(tx.QueryRow(ctx, query,
		request.BuyerID, request.ProductID, request.Quantity,
		request.CheckImage, request.TotalPrice, request.Status,
	))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToRequestEntity(model), nil
}

func (p *PaymentRequestRepo) GetByID(ctx context.Context, id int64) (*domain.PaymentRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM payment_requests WHERE id = $1`

	model, err := scanRequest(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrPaymentRequestNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToRequestEntity(model), nil
}

// UpdateStatusIfInProcessing атомарно меняет статус заявки, только если она
// всё ещё в in_processing. Конкурирующие переходы не проходят: условие в
// WHERE гарантирует единственное изменение. Выполняется в транзакции
// из контекста.
func (p *PaymentRequestRepo) UpdateStatusIfInProcessing(ctx context.Context, id int64, status domain.RequestStatus) (*domain.PaymentRequest, bool, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE payment_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
		RETURNING ` + requestColumns + `;
	`

	model, err := scanRequest(tx.QueryRow(ctx, query, id, status, domain.StatusInProcessing))
	if err == nil {
		return p.conv.ToRequestEntity(model), true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	// Заявка уже финализирована (или не существует): возвращаем текущее
	// состояние без изменения.
	current, err := scanRequest(tx.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM payment_requests WHERE id = $1`, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, e.Wrap(whereami.WhereAmI(), e.ErrPaymentRequestNotFound)
		}
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToRequestEntity(current), false, nil
}

// ListForSeller возвращает заявки по продуктам продавца, новые первыми,
// вместе со снапшотами названия продукта и имени покупателя.
func (p *PaymentRequestRepo) ListForSeller(ctx context.Context, sellerID int64, onlyInProcessing bool, limit int) ([]usecase.PaymentRequestInfo, error) {
	query := `
		SELECT r.id, r.user_id, r.product_id, r.quantity, r.check_image,
		       r.total_price, r.status, r.created_at, r.updated_at,
		       pr.title, COALESCE(NULLIF(u.first_name, ''), u.username)
		FROM payment_requests r
		JOIN products pr ON r.product_id = pr.id
		JOIN users u ON r.user_id = u.id
		WHERE pr.user_id = $1
	`
	args := []any{sellerID}

	if onlyInProcessing {
		args = append(args, domain.StatusInProcessing)
		query += ` AND r.status = $2`
	}
	query += ` ORDER BY r.id DESC`
	if limit > 0 {
		args = append(args, limit)
		if onlyInProcessing {
			query += ` LIMIT $3`
		} else {
			query += ` LIMIT $2`
		}
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	infos := make([]usecase.PaymentRequestInfo, 0)
	for rows.Next() {
		var model converter.PaymentRequestModel
		var info usecase.PaymentRequestInfo
		if err := rows.Scan(
			&model.ID, &model.BuyerID, &model.ProductID, &model.Quantity,
			&model.CheckImage, &model.TotalPrice, &model.Status,
			&model.CreatedAt, &model.UpdatedAt,
			&info.ProductTitle, &info.BuyerName,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		info.Request = *p.conv.ToRequestEntity(&model)
		infos = append(infos, info)
	}

	return infos, rows.Err()
}

func scanRequest(row pgx.Row) (*converter.PaymentRequestModel, error) {
	var model converter.PaymentRequestModel
	err := row.Scan(
		&model.ID, &model.BuyerID, &model.ProductID, &model.Quantity,
		&model.CheckImage, &model.TotalPrice, &model.Status,
		&model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &model, nil
}
