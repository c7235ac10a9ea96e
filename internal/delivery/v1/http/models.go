package http

import (
	"time"

	"github.com/rynok-dev/marketplace-backend/internal/domain"
	"github.com/rynok-dev/marketplace-backend/internal/usecase"
	"github.com/shopspring/decimal"
)

// ProductResponse — представление продукта в ответах API.
type ProductResponse struct {
	ID          int64           `json:"id"`
	OwnerID     int64           `json:"owner_id"`
	Title       string          `json:"title"`
	CategoryID  int64           `json:"category_id"`
	MainImage   string          `json:"main_image"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	IsActive    bool            `json:"is_active"`
}

type CategoryResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type GalleryImageResponse struct {
	ID      int64  `json:"id"`
	FileKey string `json:"file_key"`
}

type RatingResponse struct {
	ID        int64                  `json:"id"`
	UserID    int64                  `json:"user_id"`
	Count     int32                  `json:"count"`
	Comment   string                 `json:"comment"`
	CreatedAt time.Time              `json:"created_at"`
	Answers   []RatingAnswerResponse `json:"answers"`
}

type RatingAnswerResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductDetailResponse — карточка продукта: галерея, отзывы с ответами,
// средняя оценка и похожие продукты.
type ProductDetailResponse struct {
	Product   ProductResponse        `json:"product"`
	Gallery   []GalleryImageResponse `json:"gallery"`
	Ratings   []RatingResponse       `json:"ratings"`
	RatingAvg *float64               `json:"rating_avg"` // null — отзывов еще нет
	Similar   []ProductResponse      `json:"similar"`
}

type SearchResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

type PaymentRequestResponse struct {
	ID         int64           `json:"id"`
	ProductID  int64           `json:"product_id"`
	Quantity   int32           `json:"quantity"`
	CheckImage string          `json:"check_image"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// PaymentRequestInfoResponse — заявка в очереди продавца вместе
// с названием продукта и именем покупателя.
type PaymentRequestInfoResponse struct {
	PaymentRequestResponse
	ProductTitle string `json:"product_title"`
	BuyerName    string `json:"buyer_name"`
}

type TransitionResponse struct {
	Request PaymentRequestResponse `json:"request"`
	Changed bool                   `json:"changed"`
}

type PaymentResponse struct {
	ID           int64           `json:"id"`
	BuyerName    string          `json:"buyer_name"`
	ProductTitle string          `json:"product_title"`
	Quantity     int32           `json:"quantity"`
	CheckImage   string          `json:"check_image"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	CreatedAt    time.Time       `json:"created_at"`
}

type PaymentsLedgerResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Total    decimal.Decimal   `json:"total"`
}

type PaymentMethodResponse struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	QRImage string `json:"qr_image"`
}

func newProductResponse(card usecase.ProductCard) ProductResponse {
	return ProductResponse{
		ID:          card.ID,
		OwnerID:     card.OwnerID,
		Title:       card.Title,
		CategoryID:  card.CategoryID,
		MainImage:   card.MainImage,
		Description: card.Description,
		Price:       card.Price,
		IsActive:    card.IsActive,
	}
}

func newProductResponses(cards []usecase.ProductCard) []ProductResponse {
	out := make([]ProductResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, newProductResponse(card))
	}
	return out
}

func newProductDetailResponse(res *usecase.ProductDetailRes) *ProductDetailResponse {
	gallery := make([]GalleryImageResponse, 0, len(res.Gallery))
	for _, img := range res.Gallery {
		gallery = append(gallery, GalleryImageResponse{ID: img.ID, FileKey: img.FileKey})
	}

	ratings := make([]RatingResponse, 0, len(res.Ratings))
	for _, view := range res.Ratings {
		ratings = append(ratings, newRatingResponse(view))
	}

	return &ProductDetailResponse{
		Product:   newProductResponse(res.Product),
		Gallery:   gallery,
		Ratings:   ratings,
		RatingAvg: res.RatingAvg,
		Similar:   newProductResponses(res.Similar),
	}
}

func newRatingResponse(view usecase.RatingView) RatingResponse {
	answers := make([]RatingAnswerResponse, 0, len(view.Answers))
	for _, a := range view.Answers {
		answers = append(answers, RatingAnswerResponse{
			ID:        a.ID,
			UserID:    a.UserID,
			Comment:   a.Comment,
			CreatedAt: a.CreatedAt,
		})
	}
	return RatingResponse{
		ID:        view.Rating.ID,
		UserID:    view.Rating.UserID,
		Count:     view.Rating.Count,
		Comment:   view.Rating.Comment,
		CreatedAt: view.Rating.CreatedAt,
		Answers:   answers,
	}
}

func newPaymentRequestResponse(req *domain.PaymentRequest) PaymentRequestResponse {
	return PaymentRequestResponse{
		ID:         req.ID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		CheckImage: req.CheckImage,
		TotalPrice: req.TotalPrice,
		Status:     string(req.Status),
		CreatedAt:  req.CreatedAt,
	}
}

func newPaymentRequestInfoResponses(infos []usecase.PaymentRequestInfo) []PaymentRequestInfoResponse {
	out := make([]PaymentRequestInfoResponse, 0, len(infos))
	for i := range infos {
		out = append(out, PaymentRequestInfoResponse{
			PaymentRequestResponse: newPaymentRequestResponse(&infos[i].Request),
			ProductTitle:           infos[i].ProductTitle,
			BuyerName:              infos[i].BuyerName,
		})
	}
	return out
}

func newPaymentsLedgerResponse(ledger *usecase.PaymentsLedger) *PaymentsLedgerResponse {
	payments := make([]PaymentResponse, 0, len(ledger.Payments))
	for _, p := range ledger.Payments {
		payments = append(payments, PaymentResponse{
			ID:           p.ID,
			BuyerName:    p.BuyerName,
			ProductTitle: p.ProductTitle,
			Quantity:     p.Quantity,
			CheckImage:   p.CheckImage,
			TotalPrice:   p.TotalPrice,
			CreatedAt:    p.CreatedAt,
		})
	}
	return &PaymentsLedgerResponse{Payments: payments, Total: ledger.Total}
}

func newPaymentMethodResponses(methods []domain.PaymentMethod) []PaymentMethodResponse {
	out := make([]PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		out = append(out, PaymentMethodResponse{ID: m.ID, Title: m.Title, QRImage: m.QRImage})
	}
	return out
}
