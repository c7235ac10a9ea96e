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

// RatingRepo реализует репозиторий отзывов поверх PostgreSQL.
type RatingRepo struct {
	pool *pgxpool.Pool
	conv converter.RatingConverter
}

func NewRatingRepo(pool *pgxpool.Pool, conv converter.RatingConverter) *RatingRepo {
	return &RatingRepo{pool: pool, conv: conv}
}

func (r *RatingRepo) Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error) {
	query := `
		INSERT INTO ratings (user_id, product_id, count, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, product_id, count, comment, created_at;
	`

	var model converter.RatingModel
	err := r.pool.QueryRow(ctx, query, rating.UserID, rating.ProductID, rating.Count, rating.Comment).
		Scan(&model.ID, &model.UserID, &model.ProductID, &model.Count, &model.Comment, &model.CreatedAt)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToEntity(&model), nil
}

func (r *RatingRepo) GetByID(ctx context.Context, id int64) (*domain.Rating, error) {
	query := `
		SELECT id, user_id, product_id, count, comment, created_at
		FROM ratings
		WHERE id = $1
	`

	var model converter.RatingModel
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&model.ID, &model.UserID, &model.ProductID, &model.Count, &model.Comment, &model.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrRatingNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToEntity(&model), nil
}

func (r *RatingRepo) ListForProduct(ctx context.Context, productID int64) ([]domain.Rating, error) {
	query := `
		SELECT id, user_id, product_id, count, comment, created_at
		FROM ratings
		WHERE product_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	ratings := make([]domain.Rating, 0)
	for rows.Next() {
		var model converter.RatingModel
		if err := rows.Scan(
			&model.ID, &model.UserID, &model.ProductID,
			&model.Count, &model.Comment, &model.CreatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		ratings = append(ratings, *r.conv.ToEntity(&model))
	}

	return ratings, rows.Err()
}

// Average возвращает среднюю оценку продукта либо nil, если отзывов нет.
// AVG по пустому множеству даёт NULL, а не ноль.
func (r *RatingRepo) Average(ctx context.Context, productID int64) (*float64, error) {
	query := `SELECT AVG(count)::float8 FROM ratings WHERE product_id = $1`

	var avg *float64
	if err := r.pool.QueryRow(ctx, query, productID).Scan(&avg); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return avg, nil
}

func (r *RatingRepo) CreateAnswer(ctx context.Context, answer *domain.RatingAnswer) (*domain.RatingAnswer, error) {
	query := `
		INSERT INTO rating_answers (user_id, rating_id, comment)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, rating_id, comment, created_at, updated_at, time_limit;
	`

	var model converter.RatingAnswerModel
	err := r.pool.QueryRow(ctx, query, answer.UserID, answer.RatingID, answer.Comment).
		Scan(
			&model.ID, &model.UserID, &model.RatingID, &model.Comment,
			&model.CreatedAt, &model.UpdatedAt, &model.TimeLimit,
		)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToAnswerEntity(&model), nil
}

func (r *RatingRepo) ListAnswers(ctx context.Context, ratingIDs []int64) (map[int64][]domain.RatingAnswer, error) {
	query := `
		SELECT id, user_id, rating_id, comment, created_at, updated_at, time_limit
		FROM rating_answers
		WHERE rating_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, ratingIDs)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	answers := make(map[int64][]domain.RatingAnswer)
	for rows.Next() {
		var model converter.RatingAnswerModel
		if err := rows.Scan(
			&model.ID, &model.UserID, &model.RatingID, &model.Comment,
			&model.CreatedAt, &model.UpdatedAt, &model.TimeLimit,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		answers[model.RatingID] = append(answers[model.RatingID], *r.conv.ToAnswerEntity(&model))
	}

	return answers, rows.Err()
}
