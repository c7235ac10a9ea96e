package usecase

import (
	"context"

	"github.com/rynok-dev/marketplace-backend/internal/domain"
	"github.com/rynok-dev/marketplace-backend/pkg/e"
	"github.com/rynok-dev/marketplace-backend/pkg/logger"
)

const maxCommentLen = 500

// RatingUseCase реализует отзывы покупателей и ответы продавцов.
type RatingUseCase struct {
	ratingRepo  RatingRepository
	productRepo ProductRepository
	logger      logger.Logger
}

func NewRatingUC(ratingRepo RatingRepository, productRepo ProductRepository, logger logger.Logger) *RatingUseCase {
	return &RatingUseCase{
		ratingRepo:  ratingRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// SubmitRating сохраняет отзыв о продукте. Повторная отправка тем же
// пользователем создает новую запись: пути редактирования нет.
func (r *RatingUseCase) SubmitRating(ctx context.Context, principal domain.Principal, req *SubmitRatingReq) (*domain.Rating, error) {
	const op = "RatingUseCase.SubmitRating"

	if req.Count < 1 || req.Count > 5 {
		return nil, e.Wrap(op, e.ErrRatingCountRange)
	}
	if len([]rune(req.Comment)) > maxCommentLen {
		return nil, e.Wrap(op, e.ErrCommentTooLong)
	}

	product, err := r.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	rating, err := r.ratingRepo.Create(ctx, domain.NewRating(principal.UserID, product.ID, req.Count, req.Comment))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return rating, nil
}

// SubmitAnswer сохраняет ответ продавца на отзыв. Право на ответ проверяется
// транзитивно: отзыв → продукт → владелец; иначе — ошибка доступа,
// запись не создается.
func (r *RatingUseCase) SubmitAnswer(ctx context.Context, principal domain.Principal, req *SubmitAnswerReq) (*domain.RatingAnswer, error) {
	const op = "RatingUseCase.SubmitAnswer"

	if len([]rune(req.Comment)) > maxCommentLen {
		return nil, e.Wrap(op, e.ErrCommentTooLong)
	}

	rating, err := r.ratingRepo.GetByID(ctx, req.RatingID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product, err := r.productRepo.GetByID(ctx, rating.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if product.OwnerID != principal.UserID {
		return nil, e.Wrap(op, e.ErrForbidden)
	}

	answer, err := r.ratingRepo.CreateAnswer(ctx, domain.NewRatingAnswer(principal.UserID, rating.ID, req.Comment))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return answer, nil
}
