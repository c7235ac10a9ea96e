package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rynok-dev/marketplace-backend/internal/usecase"
	"github.com/rynok-dev/marketplace-backend/pkg/e"
	"github.com/rynok-dev/marketplace-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewProductHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// listProducts
//
//	@Summary		Список активных продуктов
//	@Description	Возвращает активные продукты, новые первыми
//	@Tags			products
//	@Produce		json
//	@Success		200	{array}		ProductResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	cards, err := p.catalogUsecase.ListActive(r.Context())
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductResponses(cards))
}

// getProduct
//
//	@Summary		Карточка продукта
//	@Description	Продукт с галереей, отзывами, средней оценкой и похожими продуктами
//	@Tags			products
//	@Produce		json
//	@Param			id	path		int	true	"ID продукта"
//	@Success		200	{object}	ProductDetailResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	detail, err := p.catalogUsecase.GetDetail(r.Context(), productID)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductDetailResponse(detail))
}

// createProduct
//
//	@Summary		Создание продукта
//	@Description	Создает продукт с главным фото и необязательной галереей
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			title		formData	string	true	"Название"
//	@Param			category_id	formData	int		true	"ID категории"
//	@Param			description	formData	string	true	"Описание"
//	@Param			price		formData	number	true	"Цена"
//	@Param			main_image	formData	file	true	"Главное фото"
//	@Param			gallery		formData	file	false	"Галерея (до 10 файлов)"
//	@Success		201	{object}	ProductResponse
//	@Failure		400	{object}	ErrorResponse
//	@Router			/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 150 << 20
		maxMemory           = 32 << 20
	)

	principal, err := PrincipalFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		p.logger.Warnf("%d: %s", http.StatusBadRequest, r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	req, err := parseProductForm(r)
	if err != nil {
		p.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	created, err := p.catalogUsecase.CreateProduct(r.Context(), principal, req)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, newProductResponse(usecase.NewProductCard(created)))
}

// updateProduct
//
//	@Summary		Изменение продукта
//	@Description	Изменяет продукт; доступно только владельцу
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id			path		int		true	"ID продукта"
//	@Param			title		formData	string	true	"Название"
//	@Param			category_id	formData	int		true	"ID категории"
//	@Param			description	formData	string	true	"Описание"
//	@Param			price		formData	number	true	"Цена"
//	@Param			is_active	formData	boolean	false	"Активность; без поля не меняется"
//	@Param			main_image	formData	file	false	"Новое главное фото"
//	@Success		200	{object}	ProductResponse
//	@Failure		403	{object}	ErrorResponse
//	@Router			/products/{id} [put]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 50 << 20
		maxMemory           = 32 << 20
	)

	principal, err := PrincipalFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	productID, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		p.logger.Warnf("%d: %s", http.StatusBadRequest, r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	base, err := parseProductForm(r)
	if err != nil {
		p.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	isActive, err := parseOptionalFlag(r, "is_active")
	if err != nil {
		p.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	req := &usecase.UpdateProductReq{
		ProductID:   productID,
		Title:       base.Title,
		CategoryID:  base.CategoryID,
		Description: base.Description,
		Price:       base.Price,
		IsActive:    isActive,
	}
	if len(base.MainImage.Data) > 0 {
		req.MainImage = &base.MainImage
	}

	updated, err := p.catalogUsecase.UpdateProduct(r.Context(), principal, req)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductResponse(usecase.NewProductCard(updated)))
}

// searchCatalog
//
//	@Summary		Поиск по каталогу
//	@Description	Фильтры: подстрока названия, диапазон цены, категория; постранично
//	@Tags			catalog
//	@Produce		json
//	@Param			product_search	query		string	false	"Подстрока названия"
//	@Param			price__gte		query		number	false	"Цена от (включительно)"
//	@Param			price__lte		query		number	false	"Цена до (включительно)"
//	@Param			category		query		int		false	"ID категории"
//	@Param			page			query		int		false	"Номер страницы"
//	@Success		200	{object}	SearchResponse
//	@Failure		400	{object}	ErrorResponse
//	@Router			/catalog [get]
func (p *ProductHandler) searchCatalog(w http.ResponseWriter, r *http.Request) {
	filter, err := parseCatalogFilter(r)
	if err != nil {
		p.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	res, err := p.catalogUsecase.Search(r.Context(), filter)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &SearchResponse{
		Products: newProductResponses(res.Products),
		Total:    res.Total,
		Page:     res.Page,
		PageSize: res.PageSize,
	})
}

type createCategoryBody struct {
	Title string `json:"title"`
}

// createCategory
//
//	@Summary		Создание категории
//	@Description	Создает категорию; доступно только администратору. Повторное создание с тем же названием возвращает существующую
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Param			body	body		createCategoryBody	true	"Название категории"
//	@Success		201		{object}	CategoryResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Router			/categories [post]
func (p *ProductHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	principal, err := PrincipalFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var body createCategoryBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		p.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, e.ErrMissingFields)
		return
	}

	category, err := p.catalogUsecase.CreateCategory(r.Context(), principal, body.Title)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, CategoryResponse{ID: category.ID, Title: category.Title})
}

// deleteCategory
//
//	@Summary		Удаление категории
//	@Description	Доступно только администратору; отклоняется, пока на категорию ссылается хотя бы один продукт
//	@Tags			categories
//	@Produce		json
//	@Param			id	path		int	true	"ID категории"
//	@Success		204	"Категория удалена"
//	@Failure		403	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Router			/categories/{id} [delete]
func (p *ProductHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	principal, err := PrincipalFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	categoryID, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := p.catalogUsecase.DeleteCategory(r.Context(), principal, categoryID); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deleteUser
//
//	@Summary		Удаление пользователя
//	@Description	Удаляет свою учетную запись (или любую — для администратора) каскадно с продуктами, отзывами и заявками; записи платежей сохраняются
//	@Tags			users
//	@Produce		json
//	@Param			id	path		int	true	"ID пользователя"
//	@Success		204	"Пользователь удален"
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/users/{id} [delete]
func (p *ProductHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	principal, err := PrincipalFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	userID, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := p.catalogUsecase.DeleteUser(r.Context(), principal, userID); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseProductForm собирает общие поля формы создания/изменения продукта.
func parseProductForm(r *http.Request) (*usecase.CreateProductReq, error) {
	price, err := parsePrice(r.FormValue("price"))
	if err != nil {
		return nil, err
	}

	categoryID, err := strconv.ParseInt(r.FormValue("category_id"), 10, 64)
	if err != nil {
		return nil, e.ErrMissingFields
	}

	req := &usecase.CreateProductReq{
		Title:       r.FormValue("title"),
		CategoryID:  categoryID,
		Description: r.FormValue("description"),
		Price:       price,
	}

	if files := r.MultipartForm.File["main_image"]; len(files) > 0 {
		upload, err := parseUpload(r, "main_image")
		if err != nil {
			return nil, err
		}
		req.MainImage = *upload
	}

	gallery, err := parseUploads(r.MultipartForm.File["gallery"])
	if err != nil {
		return nil, err
	}
	req.Gallery = gallery

	return req, nil
}

// parseCatalogFilter разбирает query-параметры поиска.
// Отсутствующий параметр не фильтрует; пустая строка price — ошибка формата.
func parseCatalogFilter(r *http.Request) (*usecase.ProductFilter, error) {
	q := r.URL.Query()
	filter := &usecase.ProductFilter{
		TitleSearch: q.Get("product_search"),
	}

	if s := q.Get("price__gte"); s != "" {
		gte, err := decimal.NewFromString(s)
		if err != nil {
			return nil, e.ErrInvalidPrice
		}
		filter.PriceGte = &gte
	}
	if s := q.Get("price__lte"); s != "" {
		lte, err := decimal.NewFromString(s)
		if err != nil {
			return nil, e.ErrInvalidPrice
		}
		filter.PriceLte = &lte
	}
	if s := q.Get("category"); s != "" {
		categoryID, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, e.ErrMissingFields
		}
		filter.CategoryID = &categoryID
	}
	if s := q.Get("page"); s != "" {
		page, err := strconv.Atoi(s)
		if err != nil {
			return nil, e.ErrMissingFields
		}
		filter.Page = page
	}

	return filter, nil
}
