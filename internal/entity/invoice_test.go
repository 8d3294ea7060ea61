package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/invoice/internal/entity"
)

func TestItemTotal(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name      string
		quantity  int64
		unitPrice string
		want      string
	}{
		{name: "web development", quantity: 5, unitPrice: "100000.00", want: "500000.00"},
		{name: "design services", quantity: 2, unitPrice: "150000.00", want: "300000.00"},
		{name: "cents", quantity: 3, unitPrice: "0.10", want: "0.30"},
		{name: "odd cents", quantity: 7, unitPrice: "19.99", want: "139.93"},
		{name: "free item", quantity: 4, unitPrice: "0.00", want: "0.00"},
		{name: "max values", quantity: entity.ItemQuantityMax, unitPrice: "99999999.99", want: "214748364678525163.53"},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := entity.ItemTotal(tt.quantity, decimal.RequireFromString(tt.unitPrice))
			want := decimal.RequireFromString(tt.want)

			if !got.Equal(want) {
				t.Errorf("ItemTotal() = %v, want %v", got, want)
			}

			require.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestInvoiceTotal(t *testing.T) {
	t.Parallel()

	t.Run("sum of items", func(t *testing.T) {
		t.Parallel()

		items := []entity.InvoiceItem{
			{Description: "Web Development", Quantity: 5, UnitPrice: decimal.RequireFromString("100000.00")},
			{Description: "Design Services", Quantity: 2, UnitPrice: decimal.RequireFromString("150000.00")},
		}

		require.Equal(t, "500000.00", items[0].Total().StringFixed(2))
		require.Equal(t, "300000.00", items[1].Total().StringFixed(2))
		require.Equal(t, "800000.00", entity.InvoiceTotal(items).StringFixed(2))
		require.True(t, entity.Invoice{Items: items}.Total().Equal(items[0].Total().Add(items[1].Total())))
	})

	t.Run("no drift", func(t *testing.T) {
		t.Parallel()

		items := make([]entity.InvoiceItem, 0, 10)
		for i := 0; i < 10; i++ {
			items = append(items, entity.InvoiceItem{Quantity: 1, UnitPrice: decimal.RequireFromString("0.10")})
		}

		require.True(t, entity.InvoiceTotal(items).Equal(decimal.NewFromInt(1)))
	})

	t.Run("no items", func(t *testing.T) {
		t.Parallel()

		require.True(t, entity.InvoiceTotal(nil).IsZero())
		require.Equal(t, "0.00", entity.Invoice{}.Total().StringFixed(2))
	})
}

func TestNewInvoice(t *testing.T) {
	t.Parallel()

	customerID := uuid.Must(uuid.NewV4())
	issue := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	validItems := []entity.ItemSpec{
		{Description: "Web Development", Quantity: 5, UnitPrice: decimal.RequireFromString("100000.00")},
		{Description: "Design Services", Quantity: 2, UnitPrice: decimal.RequireFromString("150000.00")},
	}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		inv, err := entity.NewInvoice(customerID, issue, issue.AddDate(0, 0, 30), "", validItems, now)
		require.NoError(t, err)
		require.False(t, inv.ID.IsNil())
		require.Equal(t, entity.InvoiceStatusPending, inv.Status)
		require.Len(t, inv.Items, 2)
		require.Equal(t, inv.ID, inv.Items[1].InvoiceID)
		require.Equal(t, "800000.00", inv.Total().StringFixed(2))
	})

	t.Run("same day due date", func(t *testing.T) {
		t.Parallel()

		inv, err := entity.NewInvoice(customerID, issue, issue, entity.InvoiceStatusOverdue, validItems, now)
		require.NoError(t, err)
		require.Equal(t, entity.InvoiceStatusOverdue, inv.Status)
	})

	for _, tt := range []struct {
		name       string
		due        time.Time
		status     entity.InvoiceStatus
		items      []entity.ItemSpec
		wantFields []string
	}{
		{
			name:       "no items",
			due:        issue.AddDate(0, 0, 30),
			items:      nil,
			wantFields: []string{"items"},
		},
		{
			name:       "due date before issue date",
			due:        issue.AddDate(0, 0, -5),
			items:      validItems,
			wantFields: []string{"due_date"},
		},
		{
			name:       "both rules",
			due:        issue.AddDate(0, 0, -1),
			items:      []entity.ItemSpec{},
			wantFields: []string{"due_date", "items"},
		},
		{
			name:       "unknown status",
			due:        issue,
			status:     "cancelled",
			items:      validItems,
			wantFields: []string{"status"},
		},
		{
			name: "bad items",
			due:  issue,
			items: []entity.ItemSpec{
				{Description: " ", Quantity: 0, UnitPrice: decimal.RequireFromString("-1.00")},
				{Description: "ok", Quantity: 1, UnitPrice: decimal.RequireFromString("1.005")},
				{Description: "ok", Quantity: 1, UnitPrice: decimal.RequireFromString("100000000.00")},
			},
			wantFields: []string{
				"items[0].description",
				"items[0].quantity",
				"items[0].unit_price",
				"items[1].unit_price",
				"items[2].unit_price",
			},
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := entity.NewInvoice(customerID, issue, tt.due, tt.status, tt.items, now)
			require.Error(t, err)
			require.ErrorIs(t, err, entity.ErrInvalidArgument)

			var verr *entity.ValidationError
			require.True(t, errors.As(err, &verr))

			got := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				got = append(got, f.Field)
			}

			require.ElementsMatch(t, tt.wantFields, got)
		})
	}
}

func TestInvoice_Validate(t *testing.T) {
	t.Parallel()

	issue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	inv := entity.Invoice{
		ID:         uuid.Must(uuid.NewV4()),
		CustomerID: uuid.Must(uuid.NewV4()),
		IssueDate:  issue,
		DueDate:    issue.AddDate(0, 1, 0),
		Status:     entity.InvoiceStatusPending,
	}

	// Items are not required once the invoice exists.
	require.NoError(t, inv.Validate())

	inv.CustomerID = uuid.Nil
	inv.DueDate = issue.AddDate(0, 0, -1)

	err := inv.Validate()
	require.ErrorIs(t, err, entity.ErrInvalidArgument)

	var verr *entity.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, map[string][]string{
		"customer": {"This field is required."},
		"due_date": {"Due date must be on or after the issue date."},
	}, verr.ByField())
}

func TestValidateDateOrder(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)

	require.NoError(t, entity.ValidateDateOrder(day, day))
	require.NoError(t, entity.ValidateDateOrder(day, day.AddDate(0, 0, 1)))
	require.NoError(t, entity.ValidateDateOrder(time.Time{}, day))
	require.ErrorIs(t, entity.ValidateDateOrder(day, day.AddDate(0, 0, -1)), entity.ErrInvalidArgument)
}

func TestInvoice_Apply(t *testing.T) {
	t.Parallel()

	issue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	items := []entity.InvoiceItem{{ID: 1, Description: "Service", Quantity: 1, UnitPrice: decimal.RequireFromString("100.00")}}

	inv := entity.Invoice{
		ID:         uuid.Must(uuid.NewV4()),
		CustomerID: uuid.Must(uuid.NewV4()),
		IssueDate:  issue,
		DueDate:    issue.AddDate(0, 0, 10),
		Status:     entity.InvoiceStatusPending,
		Items:      items,
	}

	require.True(t, entity.InvoicePatch{}.IsEmpty())
	require.Equal(t, inv, inv.Apply(entity.InvoicePatch{}))

	due := issue.AddDate(0, 0, -3)
	status := entity.InvoiceStatusOverdue

	got := inv.Apply(entity.InvoicePatch{DueDate: &due, Status: &status})
	require.Equal(t, due, got.DueDate)
	require.Equal(t, issue, got.IssueDate)
	require.Equal(t, status, got.Status)
	require.Equal(t, items, got.Items)
	require.Equal(t, issue.AddDate(0, 0, 10), inv.DueDate)
	require.ErrorIs(t, got.Validate(), entity.ErrInvalidArgument)
}
