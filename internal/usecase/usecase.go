package usecase

import (
	"context"

	"github.com/rynok-dev/marketplace-backend/internal/domain"
)

type CatalogUC interface {
	ListActive(ctx context.Context) ([]ProductCard, error)
	GetDetail(ctx context.Context, productID int64) (*ProductDetailRes, error)
	CreateProduct(ctx context.Context, principal domain.Principal, req *CreateProductReq) (*domain.Product, error)
	UpdateProduct(ctx context.Context, principal domain.Principal, req *UpdateProductReq) (*domain.Product, error)
	Search(ctx context.Context, filter *ProductFilter) (*SearchRes, error)
	CreateCategory(ctx context.Context, principal domain.Principal, title string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, principal domain.Principal, categoryID int64) error
	DeleteUser(ctx context.Context, principal domain.Principal, userID int64) error
}

type RatingUC interface {
	SubmitRating(ctx context.Context, principal domain.Principal, req *SubmitRatingReq) (*domain.Rating, error)
	SubmitAnswer(ctx context.Context, principal domain.Principal, req *SubmitAnswerReq) (*domain.RatingAnswer, error)
}

type PaymentUC interface {
	CreateRequest(ctx context.Context, principal domain.Principal, req *CreatePaymentRequestReq) (*domain.PaymentRequest, error)
	Transition(ctx context.Context, principal domain.Principal, req *TransitionReq) (*TransitionRes, error)
	ListForSeller(ctx context.Context, principal domain.Principal, onlyInProcessing bool, limit int) ([]PaymentRequestInfo, error)
	ListPayments(ctx context.Context, principal domain.Principal) (*PaymentsLedger, error)
	ListSellerMethods(ctx context.Context, productID int64) ([]domain.PaymentMethod, error)
	CreateMethod(ctx context.Context, principal domain.Principal, req *CreateMethodReq) (*domain.PaymentMethod, error)
}
