package converter

import "github.com/shopspring/decimal"

// ProductCardRedisModel — представление карточки продукта в Redis (JSON).
type ProductCardRedisModel struct {
	ID          int64           `json:"id"`
	OwnerID     int64           `json:"owner_id"`
	Title       string          `json:"title"`
	CategoryID  int64           `json:"category_id"`
	MainImage   string          `json:"main_image"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	IsActive    bool            `json:"is_active"`
}
