package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	"github.com/rynok-dev/marketplace-backend/internal/usecase"
	"github.com/rynok-dev/marketplace-backend/pkg/e"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// ToHTTPResponse отображает ошибку приложения в HTTP-статус.
// Таксономия: 400 — валидация, 401/403 — доступ, 404 — не найдено,
// 422 — нарушение бизнес-правила, остальное — 500 без деталей.
func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrExpectedMultipart),
		errors.Is(err, e.ErrMissingFields),
		errors.Is(err, e.ErrInvalidPrice),
		errors.Is(err, e.ErrPricePrecision),
		errors.Is(err, e.ErrInvalidQuantity),
		errors.Is(err, e.ErrInvalidFlag),
		errors.Is(err, e.ErrRatingCountRange),
		errors.Is(err, e.ErrCommentTooLong),
		errors.Is(err, e.ErrInvalidStatus),
		errors.Is(err, e.ErrNoFile),
		errors.Is(err, e.ErrFileTooLarge),
		errors.Is(err, e.ErrTooManyImages),
		errors.Is(err, e.ErrUnsupportedMediaType):
		return http.StatusBadRequest, unwrapMessage(err)

	case errors.Is(err, e.ErrUnauthenticated):
		return http.StatusUnauthorized, e.ErrUnauthenticated.Error()
	case errors.Is(err, e.ErrForbidden):
		return http.StatusForbidden, e.ErrForbidden.Error()

	case errors.Is(err, e.ErrProductNotFound),
		errors.Is(err, e.ErrCategoryNotFound),
		errors.Is(err, e.ErrRatingNotFound),
		errors.Is(err, e.ErrPaymentRequestNotFound),
		errors.Is(err, e.ErrUserNotFound):
		return http.StatusNotFound, unwrapMessage(err)

	case errors.Is(err, e.ErrQuantityTooSmall),
		errors.Is(err, e.ErrCategoryInUse):
		return http.StatusUnprocessableEntity, unwrapMessage(err)

	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

// unwrapMessage возвращает текст терминальной ошибки без цепочки оберток.
func unwrapMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parsePrice разбирает цену из строки формы в decimal.
// Формат проверяется здесь, диапазон — в usecase-слое.
func parsePrice(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, e.ErrMissingFields
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, e.ErrInvalidPrice
	}
	if d.Exponent() < -2 {
		return decimal.Zero, e.ErrPricePrecision
	}

	return d, nil
}

// parseQuantity разбирает количество из строки формы.
// Ноль и отрицательные значения отклоняет usecase-слой.
func parseQuantity(s string) (int32, error) {
	if strings.TrimSpace(s) == "" {
		return 0, e.ErrMissingFields
	}

	q, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, e.ErrInvalidQuantity
	}

	return int32(q), nil
}

// parseOptionalFlag разбирает необязательное булево поле формы.
// Отсутствующее поле возвращает nil: прежнее значение сохраняется.
func parseOptionalFlag(r *http.Request, field string) (*bool, error) {
	vals, ok := r.MultipartForm.Value[field]
	if !ok || len(vals) == 0 {
		return nil, nil
	}

	v, err := strconv.ParseBool(vals[0])
	if err != nil {
		return nil, e.ErrInvalidFlag
	}
	return &v, nil
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, e.ErrMissingFields
	}
	return id, nil
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	return r.ParseMultipartForm(maxMemory)
}

// parseUpload читает один файл из multipart-формы.
func parseUpload(r *http.Request, field string) (*usecase.FileUpload, error) {
	const maxFileSize = 15 << 20

	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil, e.ErrNoFile
	}

	data, mimeType, err := readFile(files[0], maxFileSize)
	if err != nil {
		return nil, err
	}

	return &usecase.FileUpload{
		Data:     data,
		MimeType: mimeType,
		Size:     int64(len(data)),
		Name:     files[0].Filename,
	}, nil
}

// parseUploads читает файлы галереи из multipart-формы.
// Пустое поле — не ошибка: галерея необязательна.
func parseUploads(files []*multipart.FileHeader) ([]usecase.FileUpload, error) {
	const (
		maxFileCount = 10
		maxFileSize  = 15 << 20
	)

	if len(files) > maxFileCount {
		return nil, e.ErrTooManyImages
	}

	uploads := make([]usecase.FileUpload, 0, len(files))
	for _, fh := range files {
		data, mimeType, err := readFile(fh, maxFileSize)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, usecase.FileUpload{
			Data:     data,
			MimeType: mimeType,
			Size:     int64(len(data)),
			Name:     fh.Filename,
		})
	}
	return uploads, nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}
