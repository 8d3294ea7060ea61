package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type InvoiceEventType string

const (
	InvoiceEventCreated InvoiceEventType = "invoice.created"
	InvoiceEventPaid    InvoiceEventType = "invoice.paid"
)

func (t InvoiceEventType) String() string {
	return string(t)
}

// InvoiceEvent is published after an invoice change has been committed.
type InvoiceEvent struct {
	Type        InvoiceEventType
	InvoiceID   uuid.UUID
	CustomerID  uuid.UUID
	Status      InvoiceStatus
	TotalAmount decimal.Decimal
	OccurredAt  time.Time
}

func NewInvoiceEvent(t InvoiceEventType, inv Invoice, now time.Time) InvoiceEvent {
	return InvoiceEvent{
		Type:        t,
		InvoiceID:   inv.ID,
		CustomerID:  inv.CustomerID,
		Status:      inv.Status,
		TotalAmount: inv.Total(),
		OccurredAt:  now,
	}
}
