package converter

import (
	"time"

	"github.com/rynok-dev/marketplace-backend/internal/domain"
	"github.com/rynok-dev/marketplace-backend/internal/usecase"
	"github.com/shopspring/decimal"
)

// UserModel представляет запись таблицы users в PostgreSQL.
type UserModel struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	FirstName string    `db:"first_name"`
	IsAdmin   bool      `db:"is_admin"`
	CreatedAt time.Time `db:"created_at"`
}

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID        int64      `db:"id"`
	Title     string     `db:"title"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID          int64           `db:"id"`
	OwnerID     int64           `db:"user_id"`
	Title       string          `db:"title"`
	CategoryID  int64           `db:"category_id"`
	MainImage   string          `db:"main_image"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	IsActive    bool            `db:"is_active"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   *time.Time      `db:"updated_at"`
}

// ImageModel представляет запись таблицы images в PostgreSQL.
type ImageModel struct {
	ID      int64  `db:"id"`
	FileKey string `db:"file_key"`
}

// RatingModel представляет запись таблицы ratings в PostgreSQL.
type RatingModel struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	ProductID int64     `db:"product_id"`
	Count     int32     `db:"count"`
	Comment   string    `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
}

// RatingAnswerModel представляет запись таблицы rating_answers в PostgreSQL.
type RatingAnswerModel struct {
	ID        int64      `db:"id"`
	UserID    int64      `db:"user_id"`
	RatingID  int64      `db:"rating_id"`
	Comment   string     `db:"comment"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
	TimeLimit *time.Time `db:"time_limit"`
}

// PaymentMethodModel представляет запись таблицы payment_methods в PostgreSQL.
type PaymentMethodModel struct {
	ID        int64     `db:"id"`
	OwnerID   int64     `db:"user_id"`
	Title     string    `db:"title"`
	QRImage   string    `db:"qr_image"`
	CreatedAt time.Time `db:"created_at"`
}

// PaymentRequestModel представляет запись таблицы payment_requests в PostgreSQL.
type PaymentRequestModel struct {
	ID         int64                `db:"id"`
	BuyerID    int64                `db:"user_id"`
	ProductID  int64                `db:"product_id"`
	Quantity   int32                `db:"quantity"`
	CheckImage string               `db:"check_image"`
	TotalPrice decimal.Decimal      `db:"total_price"`
	Status     domain.RequestStatus `db:"status"`
	CreatedAt  time.Time            `db:"created_at"`
	UpdatedAt  *time.Time           `db:"updated_at"`
}

// PaymentModel представляет запись таблицы payments в PostgreSQL.
type PaymentModel struct {
	ID           int64           `db:"id"`
	SellerID     int64           `db:"seller_id"`
	BuyerName    string          `db:"buyer_name"`
	ProductTitle string          `db:"product_title"`
	Quantity     int32           `db:"quantity"`
	CheckImage   string          `db:"check_image"`
	TotalPrice   decimal.Decimal `db:"total_price"`
	CreatedAt    time.Time       `db:"created_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64                   `db:"id"`
	EventID     string                  `db:"event_id"`
	EventType   usecase.OutboxEventType `db:"event_type"`
	RequestID   int64                   `db:"request_id"`
	Payload     []byte                  `db:"payload"`
	Status      usecase.OutboxStatus    `db:"status"`
	CreatedAt   time.Time               `db:"created_at"`
	ProcessedAt *time.Time              `db:"processed_at"`
}
