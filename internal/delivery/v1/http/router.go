package http

import (
	"github.com/go-chi/chi/v5"
	_ "github.com/rynok-dev/marketplace-backend/docs" // Импорт сгенерированных файлов
	"github.com/rynok-dev/marketplace-backend/internal/usecase"
	"github.com/rynok-dev/marketplace-backend/pkg/logger"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(
	catalogUC usecase.CatalogUC,
	ratingUC usecase.RatingUC,
	paymentUC usecase.PaymentUC,
	userRepo usecase.UserRepository,
) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	authMW := NewAuthMiddleware(userRepo, r.logger)

	r.router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(authMW.Resolve)

		prHandler := NewProductHandler(catalogUC, r.logger)
		rtHandler := NewRatingHandler(ratingUC, r.logger)
		payHandler := NewPaymentHandler(paymentUC, r.logger)

		registerCatalogRoutes(v1, prHandler, rtHandler, payHandler)
		registerPaymentRoutes(v1, payHandler)
	})
}

func registerCatalogRoutes(router chi.Router, prHandler *ProductHandler, rtHandler *RatingHandler, payHandler *PaymentHandler) {
	router.Get("/catalog", prHandler.searchCatalog)

	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", prHandler.listProducts)
		pr.Get("/{id}", prHandler.getProduct)
		pr.Get("/{id}/payment", payHandler.listSellerMethods)

		pr.Group(func(auth chi.Router) {
			auth.Use(RequireAuth)
			auth.Post("/", prHandler.createProduct)
			auth.Put("/{id}", prHandler.updateProduct)
			auth.Post("/{id}/ratings", rtHandler.submitRating)
			auth.Post("/{id}/payment", payHandler.createRequest)
		})
	})

	router.Group(func(auth chi.Router) {
		auth.Use(RequireAuth)
		auth.Post("/ratings/{id}/answers", rtHandler.submitAnswer)
		auth.Post("/categories", prHandler.createCategory)
		auth.Delete("/categories/{id}", prHandler.deleteCategory)
		auth.Delete("/users/{id}", prHandler.deleteUser)
	})
}

func registerPaymentRoutes(router chi.Router, payHandler *PaymentHandler) {
	router.Group(func(auth chi.Router) {
		auth.Use(RequireAuth)
		auth.Get("/profile", payHandler.getProfile)
		auth.Get("/payment-requests", payHandler.listRequests)
		auth.Post("/payment-requests/{id}/status", payHandler.transitionRequest)
		auth.Get("/payments", payHandler.listPayments)
		auth.Post("/payment-methods", payHandler.createMethod)
	})
}
