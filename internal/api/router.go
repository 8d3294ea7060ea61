package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/samandr77/microservices/invoice/docs" // swagger docs
)

func NewRouter(h *Handler, mw *Middleware) http.Handler {
	mux := chi.NewRouter()
	mux.Use(mw.Log, mw.Recover, mw.Cors)

	mux.Route("/api", func(r chi.Router) {
		r.HandleFunc("/health", h.HealthHandler)
		r.HandleFunc("/swagger/*", httpSwagger.Handler())

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", h.Customers)
			r.Post("/", h.CreateCustomer)
			r.Get("/{id}", h.Customer)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", h.Invoices)
			r.Post("/", h.CreateInvoice)
			r.Get("/{id}", h.Invoice)
			r.Patch("/{id}", h.UpdateInvoice)
			r.Delete("/{id}", h.DeleteInvoice)
			r.Patch("/{id}/mark-paid", h.MarkPaid)
		})
	})

	return mux
}
