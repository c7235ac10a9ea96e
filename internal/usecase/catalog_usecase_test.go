package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/rynok-dev/marketplace-backend/internal/domain"
	"github.com/rynok-dev/marketplace-backend/pkg/e"
	"github.com/shopspring/decimal"
)

type catalogFixture struct {
	uc         *CatalogUseCase
	products   *fakeProductRepo
	categories *fakeCategoryRepo
	ratings    *fakeRatingRepo
	users      *fakeUserRepo
	cache      *fakeCache
	files      *fakeFiles
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()

	f := &catalogFixture{
		products:   newFakeProductRepo(),
		categories: newFakeCategoryRepo(&domain.Category{ID: 1, Title: "Посуда"}),
		ratings:    newFakeRatingRepo(),
		users:      newFakeUserRepo(&domain.User{ID: 1, Username: "seller"}),
		cache:      newFakeCache(),
		files:      &fakeFiles{},
	}
	f.uc = NewCatalogUC(
		f.products, f.categories, f.ratings, f.users, f.cache,
		f.files, fakeDB{}, nopLogger{}, 20,
	)
	return f
}

func boolPtr(b bool) *bool { return &b }

func validCreateReq() *CreateProductReq {
	return &CreateProductReq{
		Title:       "Чайник",
		CategoryID:  1,
		Description: "Эмалированный",
		Price:       decimal.RequireFromString("19.99"),
		MainImage:   FileUpload{Data: []byte("img"), MimeType: "image/png", Size: 3, Name: "main.png"},
	}
}

func TestCreateProduct(t *testing.T) {
	t.Run("creates active product with gallery", func(t *testing.T) {
		f := newCatalogFixture(t)

		req := validCreateReq()
		req.Gallery = []FileUpload{
			{Data: []byte("a"), MimeType: "image/png", Size: 1, Name: "1.png"},
			{Data: []byte("b"), MimeType: "image/png", Size: 1, Name: "2.png"},
		}

		created, err := f.uc.CreateProduct(context.Background(), sellerPrincipal(), req)
		if err != nil {
			t.Fatalf("CreateProduct: %v", err)
		}
		if !created.IsActive {
			t.Error("IsActive = false, want true for a new product")
		}
		if created.OwnerID != 1 {
			t.Errorf("OwnerID = %d, want 1", created.OwnerID)
		}

		gallery, err := f.products.GetGallery(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("GetGallery: %v", err)
		}
		if len(gallery) != 2 {
			t.Errorf("gallery = %d images, want 2", len(gallery))
		}
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*CreateProductReq)
			want   error
		}{
			{"empty title", func(r *CreateProductReq) { r.Title = "" }, e.ErrMissingFields},
			{"empty description", func(r *CreateProductReq) { r.Description = "" }, e.ErrMissingFields},
			{"zero price", func(r *CreateProductReq) { r.Price = decimal.Zero }, e.ErrInvalidPrice},
			{"negative price", func(r *CreateProductReq) { r.Price = decimal.RequireFromString("-1") }, e.ErrInvalidPrice},
			{"price too large", func(r *CreateProductReq) { r.Price = decimal.RequireFromString("1000000") }, e.ErrInvalidPrice},
			{"three decimal places", func(r *CreateProductReq) { r.Price = decimal.RequireFromString("19.999") }, e.ErrPricePrecision},
			{"no main image", func(r *CreateProductReq) { r.MainImage = FileUpload{} }, e.ErrNoFile},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				f := newCatalogFixture(t)
				req := validCreateReq()
				tc.mutate(req)

				_, err := f.uc.CreateProduct(context.Background(), sellerPrincipal(), req)
				if !errors.Is(err, tc.want) {
					t.Fatalf("err = %v, want %v", err, tc.want)
				}
				if len(f.products.products) != 0 {
					t.Errorf("products stored = %d, want 0", len(f.products.products))
				}
			})
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		f := newCatalogFixture(t)
		req := validCreateReq()
		req.CategoryID = 404

		_, err := f.uc.CreateProduct(context.Background(), sellerPrincipal(), req)
		if !errors.Is(err, e.ErrCategoryNotFound) {
			t.Fatalf("err = %v, want %v", err, e.ErrCategoryNotFound)
		}
	})
}

func TestUpdateProduct(t *testing.T) {
	seed := func(t *testing.T, f *catalogFixture) *domain.Product {
		t.Helper()
		created, err := f.uc.CreateProduct(context.Background(), sellerPrincipal(), validCreateReq())
		if err != nil {
			t.Fatalf("seed product: %v", err)
		}
		return created
	}

	t.Run("owner updates and cache entry is invalidated", func(t *testing.T) {
		f := newCatalogFixture(t)
		product := seed(t, f)

		updated, err := f.uc.UpdateProduct(context.Background(), sellerPrincipal(), &UpdateProductReq{
			ProductID:   product.ID,
			Title:       "Чайник со свистком",
			CategoryID:  1,
			Description: "Эмалированный",
			Price:       decimal.RequireFromString("24.99"),
			IsActive:    boolPtr(false),
		})
		if err != nil {
			t.Fatalf("UpdateProduct: %v", err)
		}
		if updated.Title != "Чайник со свистком" || updated.IsActive {
			t.Errorf("updated = %+v", updated)
		}

		invalidated := false
		for _, id := range f.cache.deletedIDs() {
			if id == product.ID {
				invalidated = true
			}
		}
		if !invalidated {
			t.Error("cache entry was not invalidated")
		}
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		f := newCatalogFixture(t)
		product := seed(t, f)

		_, err := f.uc.UpdateProduct(context.Background(), buyerPrincipal(), &UpdateProductReq{
			ProductID:   product.ID,
			Title:       "Чужой чайник",
			CategoryID:  1,
			Description: "x",
			Price:       decimal.RequireFromString("1.00"),
		})
		if !errors.Is(err, e.ErrForbidden) {
			t.Fatalf("err = %v, want %v", err, e.ErrForbidden)
		}

		stored, _ := f.products.GetByID(context.Background(), product.ID)
		if stored.Title != "Чайник" {
			t.Errorf("Title = %q, product modified by non-owner", stored.Title)
		}
	})

	t.Run("deactivated product disappears from listings", func(t *testing.T) {
		f := newCatalogFixture(t)
		product := seed(t, f)

		if _, err := f.uc.UpdateProduct(context.Background(), sellerPrincipal(), &UpdateProductReq{
			ProductID:   product.ID,
			Title:       product.Title,
			CategoryID:  product.CategoryID,
			Description: product.Description,
			Price:       product.Price,
			IsActive:    boolPtr(false),
		}); err != nil {
			t.Fatalf("UpdateProduct: %v", err)
		}

		cards, err := f.uc.ListActive(context.Background())
		if err != nil {
			t.Fatalf("ListActive: %v", err)
		}
		if len(cards) != 0 {
			t.Errorf("ListActive = %d cards, want 0", len(cards))
		}
	})

	t.Run("omitted is_active keeps the product deactivated", func(t *testing.T) {
		f := newCatalogFixture(t)
		product := seed(t, f)

		if _, err := f.uc.UpdateProduct(context.Background(), sellerPrincipal(), &UpdateProductReq{
			ProductID:   product.ID,
			Title:       product.Title,
			CategoryID:  product.CategoryID,
			Description: product.Description,
			Price:       product.Price,
			IsActive:    boolPtr(false),
		}); err != nil {
			t.Fatalf("deactivate: %v", err)
		}

		// Запрос без поля активности не должен включать продукт обратно.
		updated, err := f.uc.UpdateProduct(context.Background(), sellerPrincipal(), &UpdateProductReq{
			ProductID:   product.ID,
			Title:       "Чайник уцененный",
			CategoryID:  product.CategoryID,
			Description: product.Description,
			Price:       decimal.RequireFromString("9.99"),
		})
		if err != nil {
			t.Fatalf("UpdateProduct: %v", err)
		}
		if updated.IsActive {
			t.Error("IsActive = true, update without the field reactivated the product")
		}
	})
}

func TestGetDetail(t *testing.T) {
	t.Run("returns nil average when product has no ratings", func(t *testing.T) {
		f := newCatalogFixture(t)
		created, err := f.uc.CreateProduct(context.Background(), sellerPrincipal(), validCreateReq())
		if err != nil {
			t.Fatalf("seed product: %v", err)
		}

		detail, err := f.uc.GetDetail(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("GetDetail: %v", err)
		}
		if detail.RatingAvg != nil {
			t.Errorf("RatingAvg = %v, want nil", *detail.RatingAvg)
		}
	})

	t.Run("returns ratings with answers and average", func(t *testing.T) {
		f := newCatalogFixture(t)
		created, err := f.uc.CreateProduct(context.Background(), sellerPrincipal(), validCreateReq())
		if err != nil {
			t.Fatalf("seed product: %v", err)
		}

		rating, err := f.ratings.Create(context.Background(), domain.NewRating(2, created.ID, 4, "Хороший"))
		if err != nil {
			t.Fatalf("seed rating: %v", err)
		}
		if _, err := f.ratings.CreateAnswer(context.Background(), domain.NewRatingAnswer(1, rating.ID, "Спасибо")); err != nil {
			t.Fatalf("seed answer: %v", err)
		}
		avg := 4.0
		f.ratings.avg = &avg

		detail, err := f.uc.GetDetail(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("GetDetail: %v", err)
		}
		if len(detail.Ratings) != 1 {
			t.Fatalf("ratings = %d, want 1", len(detail.Ratings))
		}
		if len(detail.Ratings[0].Answers) != 1 {
			t.Errorf("answers = %d, want 1", len(detail.Ratings[0].Answers))
		}
		if detail.RatingAvg == nil || *detail.RatingAvg != 4.0 {
			t.Errorf("RatingAvg = %v, want 4.0", detail.RatingAvg)
		}
	})

	t.Run("serves card from cache when present", func(t *testing.T) {
		f := newCatalogFixture(t)

		card := ProductCard{ID: 77, OwnerID: 1, Title: "Из кэша", CategoryID: 1, Price: decimal.RequireFromString("5.00"), IsActive: true}
		if err := f.cache.SetProducts(context.Background(), []ProductCard{card}); err != nil {
			t.Fatalf("SetProducts: %v", err)
		}

		// Продукта нет в репозитории: карточка должна прийти из кэша.
		detail, err := f.uc.GetDetail(context.Background(), 77)
		if err != nil {
			t.Fatalf("GetDetail: %v", err)
		}
		if detail.Product.Title != "Из кэша" {
			t.Errorf("Title = %q, want cached card", detail.Product.Title)
		}
	})

	t.Run("similar excludes the product itself", func(t *testing.T) {
		f := newCatalogFixture(t)

		first, err := f.uc.CreateProduct(context.Background(), sellerPrincipal(), validCreateReq())
		if err != nil {
			t.Fatalf("seed product: %v", err)
		}
		second := validCreateReq()
		second.Title = "Кастрюля"
		if _, err := f.uc.CreateProduct(context.Background(), sellerPrincipal(), second); err != nil {
			t.Fatalf("seed product: %v", err)
		}

		detail, err := f.uc.GetDetail(context.Background(), first.ID)
		if err != nil {
			t.Fatalf("GetDetail: %v", err)
		}
		if len(detail.Similar) != 1 || detail.Similar[0].Title != "Кастрюля" {
			t.Errorf("Similar = %+v, want only the other product", detail.Similar)
		}
	})
}

func TestSearch(t *testing.T) {
	t.Run("normalizes page and page size", func(t *testing.T) {
		f := newCatalogFixture(t)

		res, err := f.uc.Search(context.Background(), &ProductFilter{Page: 0, PageSize: 0})
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if res.Page != 1 {
			t.Errorf("Page = %d, want 1", res.Page)
		}
		if res.PageSize != 20 {
			t.Errorf("PageSize = %d, want default 20", res.PageSize)
		}
		if f.products.lastFilter.Page != 1 || f.products.lastFilter.PageSize != 20 {
			t.Errorf("filter passed to repo = %+v", f.products.lastFilter)
		}
	})

	t.Run("returns page and total from the store", func(t *testing.T) {
		f := newCatalogFixture(t)
		f.products.searchRes = []domain.Product{
			{ID: 1, Title: "Чайник", Price: decimal.RequireFromString("20.00")},
			{ID: 2, Title: "Самовар", Price: decimal.RequireFromString("30.00")},
		}
		f.products.searchTotal = 12

		res, err := f.uc.Search(context.Background(), &ProductFilter{Page: 2, PageSize: 2})
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(res.Products) != 2 || res.Total != 12 {
			t.Errorf("res = %+v", res)
		}
	})
}

func TestCreateCategory(t *testing.T) {
	t.Run("admin stores category", func(t *testing.T) {
		f := newCatalogFixture(t)

		category, err := f.uc.CreateCategory(context.Background(), adminPrincipal(), "Техника")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if category.Title != "Техника" {
			t.Fatalf("unexpected title: %q", category.Title)
		}
		if _, err := f.uc.CreateCategory(context.Background(), adminPrincipal(), ""); err == nil {
			t.Fatal("expected error for empty title")
		}
	})

	t.Run("non-admin is rejected", func(t *testing.T) {
		f := newCatalogFixture(t)

		_, err := f.uc.CreateCategory(context.Background(), sellerPrincipal(), "Техника")
		if !errors.Is(err, e.ErrForbidden) {
			t.Fatalf("err = %v, want %v", err, e.ErrForbidden)
		}
	})
}

func TestDeletionPolicies(t *testing.T) {
	t.Run("category in use is protected", func(t *testing.T) {
		f := newCatalogFixture(t)
		f.categories.inUse[1] = true

		err := f.uc.DeleteCategory(context.Background(), adminPrincipal(), 1)
		if !errors.Is(err, e.ErrCategoryInUse) {
			t.Fatalf("err = %v, want %v", err, e.ErrCategoryInUse)
		}
	})

	t.Run("unused category is deleted by admin", func(t *testing.T) {
		f := newCatalogFixture(t)

		if err := f.uc.DeleteCategory(context.Background(), adminPrincipal(), 1); err != nil {
			t.Fatalf("DeleteCategory: %v", err)
		}
	})

	t.Run("non-admin cannot delete a category", func(t *testing.T) {
		f := newCatalogFixture(t)

		err := f.uc.DeleteCategory(context.Background(), sellerPrincipal(), 1)
		if !errors.Is(err, e.ErrForbidden) {
			t.Fatalf("err = %v, want %v", err, e.ErrForbidden)
		}
		if _, err := f.categories.GetByID(context.Background(), 1); err != nil {
			t.Error("category deleted by non-admin")
		}
	})

	t.Run("user deletes own account", func(t *testing.T) {
		f := newCatalogFixture(t)

		if err := f.uc.DeleteUser(context.Background(), sellerPrincipal(), 1); err != nil {
			t.Fatalf("DeleteUser: %v", err)
		}
		if len(f.users.deleted) != 1 || f.users.deleted[0] != 1 {
			t.Errorf("deleted = %v, want [1]", f.users.deleted)
		}
	})

	t.Run("user cannot delete another account", func(t *testing.T) {
		f := newCatalogFixture(t)

		err := f.uc.DeleteUser(context.Background(), buyerPrincipal(), 1)
		if !errors.Is(err, e.ErrForbidden) {
			t.Fatalf("err = %v, want %v", err, e.ErrForbidden)
		}
		if len(f.users.deleted) != 0 {
			t.Errorf("deleted = %v, cascade ran for a foreign account", f.users.deleted)
		}
		if _, err := f.users.GetByID(context.Background(), 1); err != nil {
			t.Error("user removed despite forbidden delete")
		}
	})

	t.Run("admin deletes any account", func(t *testing.T) {
		f := newCatalogFixture(t)

		if err := f.uc.DeleteUser(context.Background(), adminPrincipal(), 1); err != nil {
			t.Fatalf("DeleteUser: %v", err)
		}
		if len(f.users.deleted) != 1 || f.users.deleted[0] != 1 {
			t.Errorf("deleted = %v, want [1]", f.users.deleted)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newCatalogFixture(t)

		err := f.uc.DeleteUser(context.Background(), adminPrincipal(), 404)
		if !errors.Is(err, e.ErrUserNotFound) {
			t.Fatalf("err = %v, want %v", err, e.ErrUserNotFound)
		}
	})
}
