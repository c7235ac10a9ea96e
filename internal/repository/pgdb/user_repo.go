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

// UserRepo реализует репозиторий пользователей поверх PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
	conv converter.UserConverter
}

func NewUserRepo(pool *pgxpool.Pool, conv converter.UserConverter) *UserRepo {
	return &UserRepo{pool: pool, conv: conv}
}

func (u *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, username, first_name, is_admin, created_at
		FROM users
		WHERE id = $1
	`

	var model converter.UserModel
	err := u.pool.QueryRow(ctx, query, id).
		Scan(&model.ID, &model.Username, &model.FirstName, &model.IsAdmin, &model.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrUserNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u.conv.ToEntity(&model), nil
}

// userCascadeQueries удаляют записи, связанные с пользователем, в порядке
// зависимостей: сначала листья (ответы, отзывы, заявки, галереи), затем
// продукты. Изображения — общий ресурс (m2m): строка images удаляется,
// только если она не привязана к продукту другого владельца.
var userCascadeQueries = []string{
	`DELETE FROM rating_answers
	 WHERE user_id = $1
	    OR rating_id IN (
	        SELECT r.id FROM ratings r
	        WHERE r.user_id = $1
	           OR r.product_id IN (SELECT id FROM products WHERE user_id = $1)
	    )`,
	`DELETE FROM ratings
	 WHERE user_id = $1
	    OR product_id IN (SELECT id FROM products WHERE user_id = $1)`,
	`DELETE FROM payment_requests
	 WHERE user_id = $1
	    OR product_id IN (SELECT id FROM products WHERE user_id = $1)`,
	`DELETE FROM images
	 WHERE id IN (
	     SELECT pi.image_id FROM product_images pi
	     JOIN products p ON pi.product_id = p.id
	     WHERE p.user_id = $1
	 )
	   AND id NOT IN (
	     SELECT pi2.image_id FROM product_images pi2
	     JOIN products p2 ON pi2.product_id = p2.id
	     WHERE p2.user_id <> $1
	 )`,
	`DELETE FROM products WHERE user_id = $1`,
	`DELETE FROM payment_methods WHERE user_id = $1`,
}

// Delete каскадно удаляет пользователя и все связанные с ним записи.
// Записи payments не трогаются: это снапшоты, не ссылающиеся на живые строки.
func (u *UserRepo) Delete(ctx context.Context, id int64) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer tx.Rollback(ctx)

	for _, query := range userCascadeQueries {
		if _, err := tx.Exec(ctx, query, id); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
	}

	result, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrUserNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
