package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// 404 Not Found
	ErrProductNotFound        = fmt.Errorf("product not found")
	ErrCategoryNotFound       = fmt.Errorf("category not found")
	ErrRatingNotFound         = fmt.Errorf("rating not found")
	ErrPaymentRequestNotFound = fmt.Errorf("payment request not found")
	ErrUserNotFound           = fmt.Errorf("user not found")

	// 400 Bad Request — ошибки валидации форм
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrMissingFields        = fmt.Errorf("missing required fields")
	ErrInvalidPrice         = fmt.Errorf("invalid price")
	ErrPricePrecision       = fmt.Errorf("price must have at most 2 decimal places")
	ErrInvalidQuantity      = fmt.Errorf("quantity must be a positive integer")
	ErrInvalidFlag          = fmt.Errorf("invalid boolean value")
	ErrRatingCountRange     = fmt.Errorf("rating count must be between 1 and 5")
	ErrCommentTooLong       = fmt.Errorf("comment exceeds 500 characters")
	ErrInvalidStatus        = fmt.Errorf("unknown payment request status")
	ErrNoFile               = fmt.Errorf("no file provided")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrTooManyImages        = fmt.Errorf("too many images")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")

	// 401/403 — аутентификация и права доступа
	ErrUnauthenticated = fmt.Errorf("authentication required")
	ErrForbidden       = fmt.Errorf("access denied")

	// 422 — нарушение бизнес-правил
	ErrQuantityTooSmall = fmt.Errorf("quantity must be at least 1")
	ErrCategoryInUse    = fmt.Errorf("category is referenced by products")

	// 500
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
