package domain

import "time"

// Category описывает категорию продукта.
// Удаление категории блокируется, пока на нее ссылается хотя бы один продукт.
type Category struct {
	ID        int64
	Title     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func NewCategory(title string) *Category {
	return &Category{
		Title: title,
	}
}
