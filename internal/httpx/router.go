package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/carlaolanches/printer-server/internal/httpx/middlewares"
)

// NewRouter wires the ingestion boundary (API-key gated JSON endpoints)
// and the operator boundary (admin panel).
func NewRouter(handler *Handler, apiKey string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(middlewares.RequireAPIKey(apiKey))
		r.Post("/orders", handler.CreateOrder)
		r.Get("/orders", handler.ListOrders)
		r.Get("/orders/{id}", handler.GetOrderByID)
	})

	r.Get("/admin", handler.Admin)
	r.Post("/admin/print", handler.AdminPrint)
	return r
}
