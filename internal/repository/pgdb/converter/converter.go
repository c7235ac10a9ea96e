//go:generate goverter gen github.com/rynok-dev/marketplace-backend/internal/repository/pgdb/converter
package converter

import (
	"time"

	"github.com/rynok-dev/marketplace-backend/internal/domain"
	"github.com/rynok-dev/marketplace-backend/internal/usecase"
	"github.com/shopspring/decimal"
)

// UserConverter преобразует сущности User между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
type UserConverter interface {
	ToModel(entity *domain.User) *UserModel
	ToEntity(model *UserModel) *domain.User
}

// CategoryConverter преобразует сущности Category между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
type CategoryConverter interface {
	ToModel(entity *domain.Category) *CategoryModel
	ToEntity(model *CategoryModel) *domain.Category
}

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertDecimal
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
	ToArrEntity(models []*ProductModel) []*domain.Product
}

// RatingConverter преобразует сущности Rating и RatingAnswer между domain
// и моделями PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
type RatingConverter interface {
	ToModel(entity *domain.Rating) *RatingModel
	ToEntity(model *RatingModel) *domain.Rating
	ToAnswerModel(entity *domain.RatingAnswer) *RatingAnswerModel
	ToAnswerEntity(model *RatingAnswerModel) *domain.RatingAnswer
}

// PaymentConverter преобразует сущности платежного контура между domain
// и моделями PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertDecimal
// goverter:extend ConvertRequestStatus
type PaymentConverter interface {
	ToMethodModel(entity *domain.PaymentMethod) *PaymentMethodModel
	ToMethodEntity(model *PaymentMethodModel) *domain.PaymentMethod
	ToRequestModel(entity *domain.PaymentRequest) *PaymentRequestModel
	ToRequestEntity(model *PaymentRequestModel) *domain.PaymentRequest
	ToPaymentModel(entity *domain.Payment) *PaymentModel
	ToPaymentEntity(model *PaymentModel) *domain.Payment
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertOutBoxStatus
// goverter:extend ConvertOutboxEventType
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

func ConvertPointerTime(t *time.Time) *time.Time {
	return t
}

func ConvertTime(t time.Time) time.Time {
	return t
}

func ConvertDecimal(d decimal.Decimal) decimal.Decimal {
	return d
}

func ConvertRequestStatus(s domain.RequestStatus) domain.RequestStatus {
	return s
}

func ConvertOutBoxStatus(s usecase.OutboxStatus) usecase.OutboxStatus {
	return s
}

func ConvertOutboxEventType(t usecase.OutboxEventType) usecase.OutboxEventType {
	return t
}
