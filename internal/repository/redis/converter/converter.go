//go:generate goverter gen github.com/rynok-dev/marketplace-backend/internal/repository/redis/converter

package converter

import (
	"time"

	"github.com/rynok-dev/marketplace-backend/internal/usecase"
	"github.com/shopspring/decimal"
)

// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertDecimal
type ProductCardConverter interface {
	ToRedisModel(entity *usecase.ProductCard) *ProductCardRedisModel
	ToUseCase(model *ProductCardRedisModel) *usecase.ProductCard
	ToArrRedisModel(entities []usecase.ProductCard) []ProductCardRedisModel
	ToArrUseCase(models []ProductCardRedisModel) []usecase.ProductCard
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
