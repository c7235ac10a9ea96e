package usecase

import (
	"context"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/rynok-dev/marketplace-backend/internal/domain"
	"github.com/rynok-dev/marketplace-backend/pkg/e"
	"github.com/rynok-dev/marketplace-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// Цена продукта хранится как NUMERIC(8,2): не более шести целых разрядов
// и двух знаков после запятой.
var maxProductPrice = decimal.NewFromInt(1_000_000)

// CatalogUseCase реализует каталог: списки, карточку продукта,
// создание/изменение продуктов и поиск с фильтрами.
type CatalogUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	ratingRepo   RatingRepository
	userRepo     UserRepository
	cacheRepo    CacheRepository
	filesInfra   FilesInfra
	dbPool       transaction.Transactional
	logger       logger.Logger
	pageSize     int
}

func NewCatalogUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	ratingRepo RatingRepository,
	userRepo UserRepository,
	cacheRepo CacheRepository,
	filesInfra FilesInfra,
	dbPool transaction.Transactional,
	logger logger.Logger,
	pageSize int,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		ratingRepo:   ratingRepo,
		userRepo:     userRepo,
		cacheRepo:    cacheRepo,
		filesInfra:   filesInfra,
		dbPool:       dbPool,
		logger:       logger,
		pageSize:     pageSize,
	}
}

// ListActive возвращает активные продукты, новые первыми.
// Неактивные продукты скрываются из списков, но уже созданные заявки
// на оплату по ним остаются действительными.
func (c *CatalogUseCase) ListActive(ctx context.Context) ([]ProductCard, error) {
	const op = "CatalogUseCase.ListActive"

	products, err := c.productRepo.ListActive(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewProductCards(products), nil
}

// GetDetail возвращает карточку продукта: галерею, отзывы с ответами,
// среднюю оценку и похожие продукты той же категории. Карточка продукта
// читается через кэш, отзывы и оценка — всегда из базы.
func (c *CatalogUseCase) GetDetail(ctx context.Context, productID int64) (*ProductDetailRes, error) {
	const op = "CatalogUseCase.GetDetail"

	card, err := c.productCard(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	gallery, err := c.productRepo.GetGallery(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ratings, err := c.ratingViews(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// nil — отзывов нет; ноль средней оценкой быть не может.
	avg, err := c.ratingRepo.Average(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	similar, err := c.productRepo.ListSimilar(ctx, card.CategoryID, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &ProductDetailRes{
		Product:   *card,
		Gallery:   gallery,
		Ratings:   ratings,
		RatingAvg: avg,
		Similar:   NewProductCards(similar),
	}, nil
}

// productCard возвращает карточку продукта из кэша или из базы,
// фоново прогревая кэш при промахе.
func (c *CatalogUseCase) productCard(ctx context.Context, productID int64) (*ProductCard, error) {
	cached, err := c.cacheRepo.GetProducts(ctx, []int64{productID})
	if err == nil {
		if card, ok := cached[productID]; ok {
			return &card, nil
		}
	}

	product, err := c.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	card := NewProductCard(product)

	// Фоновое добавление карточки в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := c.cacheRepo.SetProducts(bgCtx, []ProductCard{card}); err != nil {
			c.logger.Warnf("Failed to cache product card in background: %v", err)
		}
	}()

	return &card, nil
}

func (c *CatalogUseCase) ratingViews(ctx context.Context, productID int64) ([]RatingView, error) {
	ratings, err := c.ratingRepo.ListForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(ratings))
	for i := range ratings {
		ids = append(ids, ratings[i].ID)
	}

	answers, err := c.ratingRepo.ListAnswers(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]RatingView, 0, len(ratings))
	for i := range ratings {
		views = append(views, RatingView{
			Rating:  ratings[i],
			Answers: answers[ratings[i].ID],
		})
	}

	return views, nil
}

// CreateProduct создает продукт с главным фото и галереей.
func (c *CatalogUseCase) CreateProduct(ctx context.Context, principal domain.Principal, req *CreateProductReq) (*domain.Product, error) {
	const op = "CatalogUseCase.CreateProduct"

	var err error
	if err = c.validateProduct(req.Title, req.Description, req.Price); err != nil {
		return nil, e.Wrap(op, err)
	}
	if len(req.MainImage.Data) == 0 {
		return nil, e.Wrap(op, e.ErrNoFile)
	}

	if _, err = c.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		return nil, e.Wrap(op, err)
	}

	mainKey, err := c.filesInfra.UploadFile(ctx, NewUploadFileReq("main_covers", req.MainImage))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	uploadedKeys := []string{mainKey}

	var galleryKeys []string
	if len(req.Gallery) > 0 {
		galleryRes, uploadErr := c.filesInfra.UploadFiles(ctx, NewUploadFilesReq("product_file", req.Gallery))
		if uploadErr != nil {
			err = uploadErr
			c.filesInfra.CleanupFiles(uploadedKeys)
			return nil, e.Wrap(op, err)
		}
		galleryKeys = galleryRes.FileKeys
		uploadedKeys = append(uploadedKeys, galleryKeys...)
	}

	var created *domain.Product

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		c.filesInfra.CleanupFiles(uploadedKeys)
		return nil, e.Wrap(op, err)
	}
	// При ошибке — Rollback и очистка уже загруженных файлов.
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}

			c.logger.Warnf(
				"Cleaning up orphaned product files after transaction failure. title: %s, error: %v",
				req.Title,
				e.Wrap(op, err),
			)
			c.filesInfra.CleanupFiles(uploadedKeys)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	created, err = c.productRepo.Create(ctx, domain.NewProduct(
		principal.UserID, req.Title, req.CategoryID, mainKey, req.Description, req.Price,
	), galleryKeys)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return created, nil
}

// UpdateProduct изменяет продукт. Изменять продукт может только владелец.
func (c *CatalogUseCase) UpdateProduct(ctx context.Context, principal domain.Principal, req *UpdateProductReq) (*domain.Product, error) {
	const op = "CatalogUseCase.UpdateProduct"

	if err := c.validateProduct(req.Title, req.Description, req.Price); err != nil {
		return nil, e.Wrap(op, err)
	}

	product, err := c.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Изменять продукт может только владелец.
	if product.OwnerID != principal.UserID {
		return nil, e.Wrap(op, e.ErrForbidden)
	}

	if _, err = c.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		return nil, e.Wrap(op, err)
	}

	if req.MainImage != nil {
		mainKey, uploadErr := c.filesInfra.UploadFile(ctx, NewUploadFileReq("main_covers", *req.MainImage))
		if uploadErr != nil {
			return nil, e.Wrap(op, uploadErr)
		}
		product.MainImage = mainKey
	}

	product.Title = req.Title
	product.CategoryID = req.CategoryID
	product.Description = req.Description
	product.Price = req.Price
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	updated, err := c.productRepo.Update(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Удаление устаревшей карточки из кэша
	if err := c.cacheRepo.DeleteProducts(ctx, []int64{updated.ID}); err != nil {
		c.logger.Warnf("Failed to invalidate product card: %v", e.Wrap(op, err))
	}

	return updated, nil
}

// Search выполняет поиск по каталогу: подстрока названия без учета регистра,
// диапазон цены, категория. Возвращает страницу и общее число совпадений.
func (c *CatalogUseCase) Search(ctx context.Context, filter *ProductFilter) (*SearchRes, error) {
	const op = "CatalogUseCase.Search"

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = c.pageSize
	}

	products, total, err := c.productRepo.Search(ctx, filter)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &SearchRes{
		Products: NewProductCards(products),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// CreateCategory создает категорию. Повторное создание с тем же названием
// возвращает существующую строку: хранилище делает upsert по title.
// Справочник категорий общий, поэтому менять его может только администратор.
func (c *CatalogUseCase) CreateCategory(ctx context.Context, principal domain.Principal, title string) (*domain.Category, error) {
	const op = "CatalogUseCase.CreateCategory"

	if !principal.IsAdmin {
		return nil, e.Wrap(op, e.ErrForbidden)
	}
	if title == "" {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}

	category, err := c.categoryRepo.Create(ctx, domain.NewCategory(title))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return category, nil
}

// DeleteCategory удаляет категорию; доступно только администратору.
// Хранилище отклонит удаление, пока на категорию ссылается хотя бы
// один продукт (protect-on-delete).
func (c *CatalogUseCase) DeleteCategory(ctx context.Context, principal domain.Principal, categoryID int64) error {
	const op = "CatalogUseCase.DeleteCategory"

	if !principal.IsAdmin {
		return e.Wrap(op, e.ErrForbidden)
	}

	if err := c.categoryRepo.Delete(ctx, categoryID); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// DeleteUser каскадно удаляет пользователя вместе с принадлежащими ему
// продуктами, отзывами и заявками. Удалить учетную запись может сам
// пользователь или администратор. Записи Payment при этом сохраняются:
// это снапшоты, не ссылающиеся на живые строки.
func (c *CatalogUseCase) DeleteUser(ctx context.Context, principal domain.Principal, userID int64) error {
	const op = "CatalogUseCase.DeleteUser"

	if principal.UserID != userID && !principal.IsAdmin {
		return e.Wrap(op, e.ErrForbidden)
	}

	if err := c.userRepo.Delete(ctx, userID); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (c *CatalogUseCase) validateProduct(title, description string, price decimal.Decimal) error {
	if title == "" || description == "" {
		return e.ErrMissingFields
	}
	if price.LessThanOrEqual(decimal.Zero) || price.GreaterThanOrEqual(maxProductPrice) {
		return e.ErrInvalidPrice
	}
	if price.Exponent() < -2 {
		return e.ErrPricePrecision
	}
	return nil
}
