package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rynok-dev/marketplace-backend/internal/domain"
	"github.com/rynok-dev/marketplace-backend/pkg/e"
	"github.com/shopspring/decimal"
)

func newRatingFixture(t *testing.T) (*RatingUseCase, *fakeRatingRepo, *fakeProductRepo) {
	t.Helper()

	products := newFakeProductRepo(&domain.Product{
		ID:         10,
		OwnerID:    1,
		Title:      "Чайник",
		CategoryID: 1,
		Price:      decimal.RequireFromString("19.99"),
		IsActive:   true,
	})
	ratings := newFakeRatingRepo()

	return NewRatingUC(ratings, products, nopLogger{}), ratings, products
}

func TestSubmitRating(t *testing.T) {
	t.Run("stores rating", func(t *testing.T) {
		uc, ratings, _ := newRatingFixture(t)

		rating, err := uc.SubmitRating(context.Background(), buyerPrincipal(), &SubmitRatingReq{
			ProductID: 10,
			Count:     4,
			Comment:   "Хороший чайник",
		})
		if err != nil {
			t.Fatalf("SubmitRating: %v", err)
		}
		if rating.Count != 4 || rating.UserID != 2 || rating.ProductID != 10 {
			t.Errorf("rating = %+v", rating)
		}
		if len(ratings.ratings) != 1 {
			t.Errorf("stored = %d, want 1", len(ratings.ratings))
		}
	})

	t.Run("count out of range", func(t *testing.T) {
		uc, ratings, _ := newRatingFixture(t)

		for _, count := range []int32{0, 6, -1} {
			_, err := uc.SubmitRating(context.Background(), buyerPrincipal(), &SubmitRatingReq{
				ProductID: 10,
				Count:     count,
			})
			if !errors.Is(err, e.ErrRatingCountRange) {
				t.Errorf("count %d: err = %v, want %v", count, err, e.ErrRatingCountRange)
			}
		}
		if len(ratings.ratings) != 0 {
			t.Errorf("stored = %d, want 0", len(ratings.ratings))
		}
	})

	t.Run("comment too long", func(t *testing.T) {
		uc, _, _ := newRatingFixture(t)

		_, err := uc.SubmitRating(context.Background(), buyerPrincipal(), &SubmitRatingReq{
			ProductID: 10,
			Count:     5,
			Comment:   strings.Repeat("ё", maxCommentLen+1),
		})
		if !errors.Is(err, e.ErrCommentTooLong) {
			t.Fatalf("err = %v, want %v", err, e.ErrCommentTooLong)
		}
	})

	t.Run("comment of exactly max length is accepted", func(t *testing.T) {
		uc, _, _ := newRatingFixture(t)

		_, err := uc.SubmitRating(context.Background(), buyerPrincipal(), &SubmitRatingReq{
			ProductID: 10,
			Count:     5,
			Comment:   strings.Repeat("ё", maxCommentLen),
		})
		if err != nil {
			t.Fatalf("SubmitRating: %v", err)
		}
	})

	t.Run("repeated rating by same user creates a second row", func(t *testing.T) {
		uc, ratings, _ := newRatingFixture(t)

		for i := 0; i < 2; i++ {
			if _, err := uc.SubmitRating(context.Background(), buyerPrincipal(), &SubmitRatingReq{
				ProductID: 10,
				Count:     3,
			}); err != nil {
				t.Fatalf("SubmitRating #%d: %v", i+1, err)
			}
		}
		if len(ratings.ratings) != 2 {
			t.Errorf("stored = %d, want 2", len(ratings.ratings))
		}
	})
}

func TestSubmitAnswer(t *testing.T) {
	seedRating := func(t *testing.T, ratings *fakeRatingRepo) *domain.Rating {
		t.Helper()
		rating, err := ratings.Create(context.Background(), domain.NewRating(2, 10, 4, "Хороший"))
		if err != nil {
			t.Fatalf("seed rating: %v", err)
		}
		return rating
	}

	t.Run("owner answers", func(t *testing.T) {
		uc, ratings, _ := newRatingFixture(t)
		rating := seedRating(t, ratings)

		answer, err := uc.SubmitAnswer(context.Background(), sellerPrincipal(), &SubmitAnswerReq{
			RatingID: rating.ID,
			Comment:  "Спасибо",
		})
		if err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
		if answer.RatingID != rating.ID || answer.UserID != 1 {
			t.Errorf("answer = %+v", answer)
		}
	})

	t.Run("non-owner gets authorization error and nothing is written", func(t *testing.T) {
		uc, ratings, _ := newRatingFixture(t)
		rating := seedRating(t, ratings)

		_, err := uc.SubmitAnswer(context.Background(), buyerPrincipal(), &SubmitAnswerReq{
			RatingID: rating.ID,
			Comment:  "Я не продавец",
		})
		if !errors.Is(err, e.ErrForbidden) {
			t.Fatalf("err = %v, want %v", err, e.ErrForbidden)
		}
		if len(ratings.answers) != 0 {
			t.Errorf("answers = %d, want 0", len(ratings.answers))
		}
	})

	t.Run("unknown rating", func(t *testing.T) {
		uc, _, _ := newRatingFixture(t)

		_, err := uc.SubmitAnswer(context.Background(), sellerPrincipal(), &SubmitAnswerReq{
			RatingID: 404,
			Comment:  "Спасибо",
		})
		if !errors.Is(err, e.ErrRatingNotFound) {
			t.Fatalf("err = %v, want %v", err, e.ErrRatingNotFound)
		}
	})
}
