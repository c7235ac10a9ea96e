package usecase

import (
	"github.com/rynok-dev/marketplace-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// CATALOG

// FileUpload представляет файл, загруженный через multipart/form-data.
type FileUpload struct {
	Data     []byte // байты файла
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// CreateProductReq — запрос на создание продукта.
type CreateProductReq struct {
	Title       string
	CategoryID  int64
	Description string
	Price       decimal.Decimal
	MainImage   FileUpload
	Gallery     []FileUpload
}

// UpdateProductReq — запрос на изменение продукта.
// MainImage == nil означает «оставить прежнее главное фото»,
// IsActive == nil — «не менять активность».
type UpdateProductReq struct {
	ProductID   int64
	Title       string
	CategoryID  int64
	Description string
	Price       decimal.Decimal
	IsActive    *bool
	MainImage   *FileUpload
}

// ProductCard — DTO продукта для списков, поиска и кэша.
type ProductCard struct {
	ID          int64
	OwnerID     int64
	Title       string
	CategoryID  int64
	MainImage   string
	Description string
	Price       decimal.Decimal
	IsActive    bool
}

// RatingView — отзыв вместе с ответами продавца.
type RatingView struct {
	Rating  domain.Rating
	Answers []domain.RatingAnswer
}

// ProductDetailRes — карточка продукта: галерея, отзывы, средняя оценка
// и похожие продукты той же категории.
type ProductDetailRes struct {
	Product   ProductCard
	Gallery   []domain.Image
	Ratings   []RatingView
	RatingAvg *float64 // nil — отзывов еще нет
	Similar   []ProductCard
}

// ProductFilter — параметры поиска по каталогу.
type ProductFilter struct {
	TitleSearch string // подстрока названия, без учета регистра
	PriceGte    *decimal.Decimal
	PriceLte    *decimal.Decimal
	CategoryID  *int64
	Page        int
	PageSize    int
}

// SearchRes — страница результатов поиска и общее число совпадений.
type SearchRes struct {
	Products []ProductCard
	Total    int64
	Page     int
	PageSize int
}

// RATINGS

type SubmitRatingReq struct {
	ProductID int64
	Count     int32
	Comment   string
}

type SubmitAnswerReq struct {
	RatingID int64
	Comment  string
}

// PAYMENTS

// CreatePaymentRequestReq — запрос покупателя на создание заявки на оплату.
type CreatePaymentRequestReq struct {
	ProductID int64
	Quantity  int32
	Check     FileUpload // чек об оплате
}

type TransitionReq struct {
	RequestID int64
	Status    domain.RequestStatus
}

// TransitionRes — результат перехода статуса. Changed == false означает,
// что заявка уже была в конечном статусе и состояние не изменилось.
type TransitionRes struct {
	Request *domain.PaymentRequest
	Changed bool
}

// PaymentRequestInfo — заявка вместе со снапшотами названия продукта
// и имени покупателя для очереди продавца.
type PaymentRequestInfo struct {
	Request      domain.PaymentRequest
	ProductTitle string
	BuyerName    string
}

// PaymentsLedger — список подтвержденных платежей продавца и их сумма.
// Сумма пересчитывается по текущим строкам при каждом вызове.
type PaymentsLedger struct {
	Payments []domain.Payment
	Total    decimal.Decimal
}

type CreateMethodReq struct {
	Title string
	QR    FileUpload
}

// INFRASTRUCTURE

// UploadFileReq — запрос на загрузку одного файла в S3.
// Prefix определяет раздел хранилища: check, qr, main_covers, product_file.
type UploadFileReq struct {
	Prefix string
	File   FileUpload
}

type UploadFilesReq struct {
	Prefix string
	Files  []FileUpload
}

type UploadFilesRes struct {
	FileKeys []string
}

type WriteRawMessageReq struct {
	RequestID int64
	Payload   []byte
}

// MAPPERS

func NewProductCard(p *domain.Product) ProductCard {
	return ProductCard{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Title:       p.Title,
		CategoryID:  p.CategoryID,
		MainImage:   p.MainImage,
		Description: p.Description,
		Price:       p.Price,
		IsActive:    p.IsActive,
	}
}

func NewProductCards(products []domain.Product) []ProductCard {
	cards := make([]ProductCard, 0, len(products))
	for i := range products {
		cards = append(cards, NewProductCard(&products[i]))
	}
	return cards
}

func NewTransitionRes(request *domain.PaymentRequest, changed bool) *TransitionRes {
	return &TransitionRes{
		Request: request,
		Changed: changed,
	}
}

func NewPaymentsLedger(payments []domain.Payment, total decimal.Decimal) *PaymentsLedger {
	return &PaymentsLedger{
		Payments: payments,
		Total:    total,
	}
}

func NewUploadFileReq(prefix string, file FileUpload) *UploadFileReq {
	return &UploadFileReq{
		Prefix: prefix,
		File:   file,
	}
}

func NewUploadFilesReq(prefix string, files []FileUpload) *UploadFilesReq {
	return &UploadFilesReq{
		Prefix: prefix,
		Files:  files,
	}
}

func NewUploadFilesRes(fileKeys []string) *UploadFilesRes {
	return &UploadFilesRes{
		FileKeys: fileKeys,
	}
}

func NewWriteRawMessageReq(requestID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		RequestID: requestID,
		Payload:   payload,
	}
}
