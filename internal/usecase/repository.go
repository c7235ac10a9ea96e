package usecase

import (
	"context"

	"github.com/rynok-dev/marketplace-backend/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// Delete каскадно удаляет пользователя вместе с его продуктами,
	// отзывами, ответами, методами оплаты и заявками. Политика удаления
	// выражена явными запросами в хранилище, а не правилами FK.
	Delete(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	// Delete отклоняет удаление категории, на которую ссылаются продукты
	// (protect-on-delete), возвращая e.ErrCategoryInUse.
	Delete(ctx context.Context, id int64) error
}

type ProductRepository interface {
	// Create вставляет продукт и строки галереи в рамках транзакции из контекста.
	Create(ctx context.Context, product *domain.Product, galleryKeys []string) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetGallery(ctx context.Context, productID int64) ([]domain.Image, error)
	ListActive(ctx context.Context) ([]domain.Product, error)
	// ListSimilar возвращает активные продукты той же категории, исключая сам продукт.
	ListSimilar(ctx context.Context, categoryID, excludeID int64) ([]domain.Product, error)
	Search(ctx context.Context, filter *ProductFilter) ([]domain.Product, int64, error)
}

type RatingRepository interface {
	Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error)
	GetByID(ctx context.Context, id int64) (*domain.Rating, error)
	ListForProduct(ctx context.Context, productID int64) ([]domain.Rating, error)
	// Average возвращает среднюю оценку продукта либо nil, если отзывов нет.
	// nil и 0 — разные значения: ноль средней оценкой быть не может.
	Average(ctx context.Context, productID int64) (*float64, error)
	CreateAnswer(ctx context.Context, answer *domain.RatingAnswer) (*domain.RatingAnswer, error)
	ListAnswers(ctx context.Context, ratingIDs []int64) (map[int64][]domain.RatingAnswer, error)
}

type PaymentMethodRepository interface {
	Create(ctx context.Context, method *domain.PaymentMethod) (*domain.PaymentMethod, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.PaymentMethod, error)
}

type PaymentRequestRepository interface {
	// Create вставляет заявку в рамках транзакции из контекста.
	Create(ctx context.Context, request *domain.PaymentRequest) (*domain.PaymentRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.PaymentRequest, error)
	// UpdateStatusIfInProcessing атомарно меняет статус заявки, только если
	// текущий статус — in_processing. Возвращает актуальную заявку и флаг,
	// произошло ли изменение. Конкурирующие accept не создают двух платежей.
	UpdateStatusIfInProcessing(ctx context.Context, id int64, status domain.RequestStatus) (*domain.PaymentRequest, bool, error)
	ListForSeller(ctx context.Context, sellerID int64, onlyInProcessing bool, limit int) ([]PaymentRequestInfo, error)
}

type PaymentRepository interface {
	// Create вставляет запись платежа в рамках транзакции из контекста.
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	ListForSeller(ctx context.Context, sellerID int64) ([]domain.Payment, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	GetProducts(ctx context.Context, ids []int64) (map[int64]ProductCard, error)
	SetProducts(ctx context.Context, products []ProductCard) error
	DeleteProducts(ctx context.Context, ids []int64) error
}
