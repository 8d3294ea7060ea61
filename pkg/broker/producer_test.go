package broker

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/invoice/internal/entity"
)

func TestInvoiceEventMessage(t *testing.T) {
	t.Parallel()

	inv := entity.Invoice{
		ID:         uuid.Must(uuid.NewV4()),
		CustomerID: uuid.Must(uuid.NewV4()),
		Status:     entity.InvoiceStatusPending,
		Items: []entity.InvoiceItem{
			{Quantity: 5, UnitPrice: decimal.RequireFromString("100000")},
			{Quantity: 2, UnitPrice: decimal.RequireFromString("150000.00")},
		},
	}

	occurredAt := time.Date(2026, 1, 1, 13, 0, 0, 0, time.FixedZone("MSK", 3*60*60))

	msg, err := invoiceEventMessage("invoice-events", entity.NewInvoiceEvent(entity.InvoiceEventCreated, inv, occurredAt))
	require.NoError(t, err)
	require.Equal(t, "invoice-events", msg.Topic)
	require.Equal(t, inv.ID.String(), string(msg.Key))

	var got map[string]any

	err = json.Unmarshal(msg.Value, &got)
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"type":         "invoice.created",
		"invoice_id":   inv.ID.String(),
		"customer_id":  inv.CustomerID.String(),
		"status":       "pending",
		"total_amount": "800000.00",
		"occurred_at":  "2026-01-01T10:00:00Z",
	}, got)
}
