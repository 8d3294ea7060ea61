package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/invoice/internal/entity"
)

type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type CustomersResponse struct {
	Customers  []CustomerResponse `json:"customers"`
	TotalCount int                `json:"total_count"`
}

// CreateCustomer
// @Summary Create customer
// @Tags customers
// @Accept json
// @Produce json
// @Param CreateCustomerRequest body CreateCustomerRequest true "Customer"
// @Success 201 {object} CustomerResponse
// @Failure 400 {object} ErrorResponse "Invalid input or email already used"
// @Failure 500 {object} ErrorResponse "Failed to create customer"
// @Router /customers [post]
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateCustomerRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	c, err := h.s.CreateCustomer(ctx, req.Name, req.Email)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to create customer")
		return
	}

	SendJSON(ctx, w, http.StatusCreated, customerToAPI(c))
}

// Customer
// @Summary Get customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} CustomerResponse
// @Failure 400 {object} ErrorResponse "Invalid id"
// @Failure 404 {object} ErrorResponse "Customer not found"
// @Failure 500 {object} ErrorResponse "Failed to get customer"
// @Router /customers/{id} [get]
func (h *Handler) Customer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid id")
		return
	}

	c, err := h.s.Customer(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to get customer")
		return
	}

	SendJSON(ctx, w, http.StatusOK, customerToAPI(c))
}

// Customers
// @Summary List customers
// @Description Newest first. Search matches name or email, case-insensitive.
// @Tags customers
// @Produce json
// @Param search query string false "Part of name or email"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param page query int false "Page number (default 1)"
// @Success 200 {object} CustomersResponse
// @Failure 500 {object} ErrorResponse "Failed to get customers"
// @Router /customers [get]
func (h *Handler) Customers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	customers, totalCount, err := h.s.Customers(ctx, parseCustomerFilter(r.URL.Query()))
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to get customers")
		return
	}

	res := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		res = append(res, customerToAPI(c))
	}

	SendJSON(ctx, w, http.StatusOK, CustomersResponse{Customers: res, TotalCount: totalCount})
}

func parseCustomerFilter(url url.Values) entity.CustomerFilter {
	page, limit := parsePagination(url)

	filter := entity.CustomerFilter{
		Page:  page,
		Limit: limit,
	}

	search := url.Get("search")
	if search != "" {
		filter.Search = &search
	}

	return filter
}

func customerToAPI(c entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}
