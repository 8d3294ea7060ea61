package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/samandr77/microservices/invoice/internal/entity"
)

const dateLayout = time.DateOnly

const (
	msgInvalidUUID   = "Must be a valid UUID."
	msgInvalidDate   = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	msgInvalidString = "Not a valid string."
	msgItemsReadOnly = "Items cannot be changed after the invoice is created."
)

type InvoiceItemRequest struct {
	Description string           `json:"description" example:"Web Development"`
	Quantity    *int64           `json:"quantity" example:"5"`
	UnitPrice   *decimal.Decimal `json:"unit_price" swaggertype:"string" example:"100000.00"`
}

type CreateInvoiceRequest struct {
	Customer  string               `json:"customer" example:"0b7a6f0e-3c1d-4f57-a3a9-7d3f8a1c2b4e"`
	IssueDate string               `json:"issue_date" example:"2026-01-10"`
	DueDate   string               `json:"due_date" example:"2026-02-09"`
	Status    string               `json:"status,omitempty" enums:"pending,paid,overdue"`
	Items     []InvoiceItemRequest `json:"items"`
}

// UpdateInvoiceRequest documents the accepted fields, every one is optional.
type UpdateInvoiceRequest struct {
	Customer  string `json:"customer,omitempty"`
	IssueDate string `json:"issue_date,omitempty" example:"2026-01-10"`
	DueDate   string `json:"due_date,omitempty" example:"2026-02-09"`
	Status    string `json:"status,omitempty" enums:"pending,paid,overdue"`
}

type InvoiceItemResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   string `json:"unit_price" example:"100000.00"`
	Total       string `json:"total" example:"500000.00"`
}

type InvoiceResponse struct {
	ID          uuid.UUID             `json:"id"`
	Customer    uuid.UUID             `json:"customer"`
	IssueDate   string                `json:"issue_date" example:"2026-01-10"`
	DueDate     string                `json:"due_date" example:"2026-02-09"`
	Status      string                `json:"status" enums:"pending,paid,overdue"`
	Items       []InvoiceItemResponse `json:"items"`
	TotalAmount string                `json:"total_amount" example:"800000.00"`
	CreatedAt   time.Time             `json:"created_at"`
}

type InvoicesResponse struct {
	Invoices   []InvoiceResponse `json:"invoices"`
	TotalCount int               `json:"total_count"`
}

// CreateInvoice
// @Summary Create invoice
// @Description Creates an invoice with at least one line item. The due date must not precede the issue date.
// @Tags invoices
// @Accept json
// @Produce json
// @Param CreateInvoiceRequest body CreateInvoiceRequest true "Invoice with items"
// @Success 201 {object} InvoiceResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 500 {object} ErrorResponse "Failed to create invoice"
// @Router /invoices [post]
func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateInvoiceRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	draft, verr := req.toDraft()

	err = verr.Err()
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid input")
		return
	}

	inv, err := h.s.CreateInvoice(ctx, draft)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to create invoice")
		return
	}

	SendJSON(ctx, w, http.StatusCreated, invoiceToAPI(inv))
}

// Invoice
// @Summary Get invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} InvoiceResponse
// @Failure 400 {object} ErrorResponse "Invalid id"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 500 {object} ErrorResponse "Failed to get invoice"
// @Router /invoices/{id} [get]
func (h *Handler) Invoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid id")
		return
	}

	inv, err := h.s.Invoice(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to get invoice")
		return
	}

	SendJSON(ctx, w, http.StatusOK, invoiceToAPI(inv))
}

// Invoices
// @Summary List invoices
// @Description Newest first, every invoice with its items and total.
// @Tags invoices
// @Produce json
// @Param status query string false "Exact status" Enums(pending, paid, overdue)
// @Param customer query string false "Customer ID"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param page query int false "Page number (default 1)"
// @Success 200 {object} InvoicesResponse
// @Failure 400 {object} ErrorResponse "Invalid filter"
// @Failure 500 {object} ErrorResponse "Failed to get invoices"
// @Router /invoices [get]
func (h *Handler) Invoices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, verr := parseInvoiceFilter(r.URL.Query())

	err := verr.Err()
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid filter")
		return
	}

	invoices, totalCount, err := h.s.Invoices(ctx, filter)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to get invoices")
		return
	}

	res := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		res = append(res, invoiceToAPI(inv))
	}

	SendJSON(ctx, w, http.StatusOK, InvoicesResponse{Invoices: res, TotalCount: totalCount})
}

// UpdateInvoice
// @Summary Update invoice
// @Description Partial update of customer, dates and status. Items cannot be changed.
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param UpdateInvoiceRequest body UpdateInvoiceRequest true "Fields to change"
// @Success 200 {object} InvoiceResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 500 {object} ErrorResponse "Failed to update invoice"
// @Router /invoices/{id} [patch]
func (h *Handler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid id")
		return
	}

	var raw map[string]json.RawMessage

	err = json.NewDecoder(r.Body).Decode(&raw)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	patch, verr := parseInvoicePatch(raw)

	err = verr.Err()
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid input")
		return
	}

	inv, err := h.s.UpdateInvoice(ctx, id, patch)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to update invoice")
		return
	}

	SendJSON(ctx, w, http.StatusOK, invoiceToAPI(inv))
}

// MarkPaid
// @Summary Mark invoice as paid
// @Description Sets the status to paid whatever the current status is.
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} InvoiceResponse
// @Failure 400 {object} ErrorResponse "Invalid id"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 500 {object} ErrorResponse "Failed to mark invoice as paid"
// @Router /invoices/{id}/mark-paid [patch]
func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid id")
		return
	}

	inv, err := h.s.MarkPaid(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to mark invoice as paid")
		return
	}

	SendJSON(ctx, w, http.StatusOK, invoiceToAPI(inv))
}

// DeleteInvoice
// @Summary Delete invoice
// @Description Deletes the invoice together with its items.
// @Tags invoices
// @Param id path string true "Invoice ID"
// @Success 204
// @Failure 400 {object} ErrorResponse "Invalid id"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 500 {object} ErrorResponse "Failed to delete invoice"
// @Router /invoices/{id} [delete]
func (h *Handler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid id")
		return
	}

	err = h.s.DeleteInvoice(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to delete invoice")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// toDraft converts the request, reporting values that cannot be parsed.
// Missing values are left zero for the service to report.
func (req CreateInvoiceRequest) toDraft() (entity.InvoiceDraft, *entity.ValidationError) {
	verr := &entity.ValidationError{}

	d := entity.InvoiceDraft{
		CustomerID: parseUUID(verr, "customer", req.Customer),
		IssueDate:  parseDate(verr, "issue_date", req.IssueDate),
		DueDate:    parseDate(verr, "due_date", req.DueDate),
		Status:     entity.InvoiceStatus(req.Status),
		Items:      make([]entity.ItemSpec, 0, len(req.Items)),
	}

	for i, item := range req.Items {
		spec := entity.ItemSpec{Description: item.Description}

		if item.Quantity == nil {
			verr.Add(fmt.Sprintf("items[%d].quantity", i), entity.MsgRequired)
		} else {
			spec.Quantity = *item.Quantity
		}

		if item.UnitPrice == nil {
			verr.Add(fmt.Sprintf("items[%d].unit_price", i), entity.MsgRequired)
		} else {
			spec.UnitPrice = *item.UnitPrice
		}

		d.Items = append(d.Items, spec)
	}

	return d, verr
}

// parseInvoicePatch takes only the keys present in the body. Unknown keys are
// ignored, items are rejected.
func parseInvoicePatch(raw map[string]json.RawMessage) (entity.InvoicePatch, *entity.ValidationError) {
	verr := &entity.ValidationError{}

	var p entity.InvoicePatch

	if _, ok := raw["items"]; ok {
		verr.Add("items", msgItemsReadOnly)
	}

	if v, ok := raw["customer"]; ok {
		if s, ok := rawString(verr, "customer", v); ok {
			id := parseUUID(verr, "customer", s)
			p.CustomerID = &id
		}
	}

	if v, ok := raw["issue_date"]; ok {
		if s, ok := rawString(verr, "issue_date", v); ok {
			date := parseDate(verr, "issue_date", s)
			p.IssueDate = &date
		}
	}

	if v, ok := raw["due_date"]; ok {
		if s, ok := rawString(verr, "due_date", v); ok {
			date := parseDate(verr, "due_date", s)
			p.DueDate = &date
		}
	}

	if v, ok := raw["status"]; ok {
		if s, ok := rawString(verr, "status", v); ok {
			status := entity.InvoiceStatus(s)
			p.Status = &status
		}
	}

	return p, verr
}

func parseInvoiceFilter(url url.Values) (entity.InvoiceFilter, *entity.ValidationError) {
	verr := &entity.ValidationError{}

	page, limit := parsePagination(url)

	filter := entity.InvoiceFilter{
		Page:  page,
		Limit: limit,
	}

	if s := url.Get("status"); s != "" {
		status := entity.InvoiceStatus(s)
		if !status.IsValid() {
			verr.Add("status", entity.MsgInvalidChoice(s))
		}

		filter.Status = &status
	}

	if s := url.Get("customer"); s != "" {
		id := parseUUID(verr, "customer", s)
		filter.CustomerID = &id
	}

	return filter, verr
}

// rawString decodes a JSON string. Null and non-string values are reported.
func rawString(verr *entity.ValidationError, field string, v json.RawMessage) (string, bool) {
	if string(v) == "null" {
		verr.Add(field, "This field may not be null.")
		return "", false
	}

	var s string

	err := json.Unmarshal(v, &s)
	if err != nil {
		verr.Add(field, msgInvalidString)
		return "", false
	}

	return s, true
}

func parseUUID(verr *entity.ValidationError, field, s string) uuid.UUID {
	if s == "" {
		return uuid.Nil
	}

	id, err := uuid.FromString(s)
	if err != nil {
		verr.Add(field, msgInvalidUUID)
		return uuid.Nil
	}

	return id
}

func parseDate(verr *entity.ValidationError, field, s string) time.Time {
	if s == "" {
		return time.Time{}
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		verr.Add(field, msgInvalidDate)
		return time.Time{}
	}

	return t
}

func invoiceToAPI(inv entity.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, InvoiceItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   formatMoney(it.UnitPrice),
			Total:       formatMoney(it.Total()),
		})
	}

	return InvoiceResponse{
		ID:          inv.ID,
		Customer:    inv.CustomerID,
		IssueDate:   inv.IssueDate.Format(dateLayout),
		DueDate:     inv.DueDate.Format(dateLayout),
		Status:      inv.Status.String(),
		Items:       items,
		TotalAmount: formatMoney(inv.Total()),
		CreatedAt:   inv.CreatedAt,
	}
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(entity.UnitPriceDecimalPlaces)
}
