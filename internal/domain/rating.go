package domain

import "time"

// Rating описывает отзыв покупателя о продукте.
// Уникальность пары (пользователь, продукт) не требуется: повторная отправка
// создает новую запись, а не редактирует старую.
type Rating struct {
	ID        int64
	UserID    int64
	ProductID int64
	Count     int32 // оценка в диапазоне [1,5]
	Comment   string
	CreatedAt time.Time
}

func NewRating(userID, productID int64, count int32, comment string) *Rating {
	return &Rating{
		UserID:    userID,
		ProductID: productID,
		Count:     count,
		Comment:   comment,
	}
}

// RatingAnswer — ответ продавца на отзыв. Создать его может только владелец
// продукта, к которому относится отзыв.
type RatingAnswer struct {
	ID        int64
	UserID    int64
	RatingID  int64
	Comment   string
	CreatedAt time.Time
	UpdatedAt *time.Time
	TimeLimit *time.Time
}

func NewRatingAnswer(userID, ratingID int64, comment string) *RatingAnswer {
	return &RatingAnswer{
		UserID:   userID,
		RatingID: ratingID,
		Comment:  comment,
	}
}
