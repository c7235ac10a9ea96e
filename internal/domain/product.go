package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product описывает продукт каталога.
// Цена хранится как NUMERIC(8,2); вся арифметика — через decimal.
type Product struct {
	ID          int64
	OwnerID     int64 // владелец-продавец
	Title       string
	CategoryID  int64
	MainImage   string // ключ главного фото в S3
	Description string
	Price       decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func NewProduct(ownerID int64, title string, categoryID int64, mainImage, description string, price decimal.Decimal) *Product {
	return &Product{
		OwnerID:     ownerID,
		Title:       title,
		CategoryID:  categoryID,
		MainImage:   mainImage,
		Description: description,
		Price:       price,
		IsActive:    true,
	}
}
