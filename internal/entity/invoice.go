package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}

	return false
}

const (
	MsgRequired  = "This field is required."
	MsgDateOrder = "Due date must be on or after the issue date."
	MsgNoItems   = "An invoice must have at least one line item."
)

func MsgInvalidChoice(v string) string {
	return `"` + v + `" is not a valid choice.`
}

type Invoice struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	IssueDate  time.Time
	DueDate    time.Time
	Status     InvoiceStatus
	Items      []InvoiceItem
	CreatedAt  time.Time
}

// InvoiceDraft is the input of invoice creation.
type InvoiceDraft struct {
	CustomerID uuid.UUID
	IssueDate  time.Time
	DueDate    time.Time
	Status     InvoiceStatus
	Items      []ItemSpec
}

// InvoicePatch holds the fields of a partial update. Nil means unchanged.
type InvoicePatch struct {
	CustomerID *uuid.UUID
	IssueDate  *time.Time
	DueDate    *time.Time
	Status     *InvoiceStatus
}

func (p InvoicePatch) IsEmpty() bool {
	return p.CustomerID == nil && p.IssueDate == nil && p.DueDate == nil && p.Status == nil
}

type InvoiceFilter struct {
	Status     *InvoiceStatus
	CustomerID *uuid.UUID
	Page       uint64
	Limit      uint64
}

// NewInvoice builds an invoice with its items. The item list must not be
// empty; an empty status defaults to pending.
func NewInvoice(
	customerID uuid.UUID,
	issueDate, dueDate time.Time,
	status InvoiceStatus,
	specs []ItemSpec,
	now time.Time,
) (Invoice, error) {
	if status == "" {
		status = InvoiceStatusPending
	}

	inv := Invoice{
		ID:         uuid.Must(uuid.NewV4()),
		CustomerID: customerID,
		IssueDate:  issueDate,
		DueDate:    dueDate,
		Status:     status,
		Items:      make([]InvoiceItem, 0, len(specs)),
		CreatedAt:  now,
	}

	for _, s := range specs {
		inv.Items = append(inv.Items, InvoiceItem{
			InvoiceID:   inv.ID,
			Description: s.Description,
			Quantity:    s.Quantity,
			UnitPrice:   s.UnitPrice,
		})
	}

	verr := inv.validate()

	if len(specs) == 0 {
		verr.Add("items", MsgNoItems)
	}

	err := verr.Err()
	if err != nil {
		return Invoice{}, err
	}

	return inv, nil
}

// Validate checks every constraint an invoice must satisfy before it is
// written. It must be called by every write path.
func (i Invoice) Validate() error {
	return i.validate().Err()
}

func (i Invoice) validate() *ValidationError {
	verr := &ValidationError{}

	if i.CustomerID.IsNil() {
		verr.Add("customer", MsgRequired)
	}

	if !i.Status.IsValid() {
		verr.Add("status", MsgInvalidChoice(i.Status.String()))
	}

	if i.IssueDate.IsZero() {
		verr.Add("issue_date", MsgRequired)
	}

	if i.DueDate.IsZero() {
		verr.Add("due_date", MsgRequired)
	}

	verr.Merge("", validateDateOrder(i.IssueDate, i.DueDate))

	for idx, item := range i.Items {
		verr.Merge(itemField(idx), item.validate())
	}

	return verr
}

// ValidateDateOrder fails when the due date precedes the issue date. Zero
// dates are left to the required-field checks.
func ValidateDateOrder(issueDate, dueDate time.Time) error {
	v := validateDateOrder(issueDate, dueDate)
	if v == nil {
		return nil
	}

	return v
}

func validateDateOrder(issueDate, dueDate time.Time) *ValidationError {
	if issueDate.IsZero() || dueDate.IsZero() {
		return nil
	}

	if dueDate.Before(issueDate) {
		return NewValidationError("due_date", MsgDateOrder)
	}

	return nil
}

// Apply returns a copy of the invoice with the patch applied. Items are kept.
func (i Invoice) Apply(p InvoicePatch) Invoice {
	if p.CustomerID != nil {
		i.CustomerID = *p.CustomerID
	}

	if p.IssueDate != nil {
		i.IssueDate = *p.IssueDate
	}

	if p.DueDate != nil {
		i.DueDate = *p.DueDate
	}

	if p.Status != nil {
		i.Status = *p.Status
	}

	return i
}

// Total is the sum of the item totals, computed from the current items.
func (i Invoice) Total() decimal.Decimal {
	return InvoiceTotal(i.Items)
}
