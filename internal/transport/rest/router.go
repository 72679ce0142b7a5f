package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/topup-commerce/internal/auth"
	"github.com/frahmantamala/topup-commerce/internal/catalog"
	"github.com/frahmantamala/topup-commerce/internal/category"
	"github.com/frahmantamala/topup-commerce/internal/order"
	"github.com/frahmantamala/topup-commerce/internal/payment"
	"github.com/frahmantamala/topup-commerce/internal/promotion"
	"github.com/frahmantamala/topup-commerce/internal/transport/middleware"
	"github.com/frahmantamala/topup-commerce/internal/transport/swagger"
	"github.com/frahmantamala/topup-commerce/internal/user"
)

// Handlers bundles every feature handler the router wires up.
type Handlers struct {
	Auth      *auth.Handler
	User      *user.Handler
	Catalog   *catalog.Handler
	Category  *category.Handler
	Promotion *promotion.Handler
	Order     *order.Handler
	Payment   *payment.Handler
}

// RegisterAllRoutes mounts the public storefront routes, the authenticated
// customer routes and the admin surface under /api/v1.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", h.Auth.Register)
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Public storefront browsing, no auth required
		r.Get("/categories", h.Category.List)
		r.Get("/categories/{id}", h.Category.Get)
		r.Get("/products", h.Catalog.ListProducts)
		r.Get("/products/{productID}", h.Catalog.GetProduct)
		r.Get("/products/{productID}/packages", h.Catalog.ListPackages)
		r.Get("/packages/{packageID}", h.Catalog.GetPackage)

		// Authenticated customer routes
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/profile", h.User.GetProfile)
			pr.Patch("/profile", h.User.UpdateProfile)

			pr.Post("/orders", h.Order.CreateOrder)
			pr.Get("/orders/latest", h.Order.LatestOrder)
			pr.Get("/orders/{orderID}", h.Order.GetOrder)
		})

		// Admin surface
		r.Route("/admin", func(ar chi.Router) {
			ar.Use(h.Auth.AuthMiddleware)
			ar.Use(h.Auth.RequireAdmin)

			ar.Get("/orders", h.Order.OrderLog)
			ar.Patch("/orders/{orderID}/status", h.Order.UpdateStatus)

			ar.Get("/payments", h.Payment.PaymentLog)
			ar.Patch("/payments/{paymentID}/status", h.Payment.UpdateStatus)

			ar.Get("/customers", h.User.CustomerLog)

			ar.Post("/products", h.Catalog.CreateProduct)
			ar.Patch("/products/{productID}", h.Catalog.UpdateProduct)
			ar.Delete("/products/{productID}", h.Catalog.DeleteProduct)
			ar.Post("/packages", h.Catalog.CreatePackage)
			ar.Patch("/packages/{packageID}", h.Catalog.UpdatePackage)
			ar.Delete("/packages/{packageID}", h.Catalog.DeletePackage)

			ar.Post("/categories", h.Category.Create)
			ar.Patch("/categories/{id}", h.Category.Update)
			ar.Delete("/categories/{id}", h.Category.Delete)

			ar.Get("/discounts", h.Promotion.List)
			ar.Get("/discounts/{id}", h.Promotion.Get)
			ar.Post("/discounts", h.Promotion.Create)
			ar.Patch("/discounts/{id}", h.Promotion.Update)
			ar.Delete("/discounts/{id}", h.Promotion.Delete)
		})
	})
}
