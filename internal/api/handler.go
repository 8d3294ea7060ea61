package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/invoice/internal/entity"
)

// @title Invoice API
// @version 1.0
// @description Customers, invoices and their line items.
// @BasePath /api

type Service interface {
	CreateCustomer(ctx context.Context, name, email string) (entity.Customer, error)
	Customer(ctx context.Context, id uuid.UUID) (entity.Customer, error)
	Customers(ctx context.Context, filter entity.CustomerFilter) ([]entity.Customer, int, error)
	CreateInvoice(ctx context.Context, d entity.InvoiceDraft) (entity.Invoice, error)
	Invoice(ctx context.Context, id uuid.UUID) (entity.Invoice, error)
	Invoices(ctx context.Context, filter entity.InvoiceFilter) ([]entity.Invoice, int, error)
	UpdateInvoice(ctx context.Context, id uuid.UUID, p entity.InvoicePatch) (entity.Invoice, error)
	MarkPaid(ctx context.Context, id uuid.UUID) (entity.Invoice, error)
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	s Service
}

func NewHandler(s Service) *Handler {
	return &Handler{
		s: s,
	}
}

// @Tags health
// @Accept text/plain
// @Produce text/plain
// @Success 200 {string} string "Service is up!"
// @Router /health [get]
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, err := w.Write([]byte("Service is up!\n"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Service is down!")
		return
	}
}

func pathID(r *http.Request) (uuid.UUID, error) {
	sID := chi.URLParam(r, "id")
	if sID == "" {
		return uuid.Nil, fmt.Errorf("%w: id is required", entity.ErrInvalidArgument)
	}

	id, err := uuid.FromString(sID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", entity.ErrInvalidArgument, err)
	}

	return id, nil
}

// parsePagination reads limit and page. Bad values fall back to defaults.
func parsePagination(url url.Values) (page, limit uint64) {
	const (
		defaultLimit uint64 = 20
		maxLimit     uint64 = 100
		defaultPage  uint64 = 1
	)

	limit, err := strconv.ParseUint(url.Get("limit"), 10, 64)
	if err != nil || limit == 0 {
		limit = defaultLimit
	}

	if limit > maxLimit {
		limit = maxLimit
	}

	page, err = strconv.ParseUint(url.Get("page"), 10, 64)
	if err != nil || page == 0 {
		page = defaultPage
	}

	return page, limit
}
