package entity

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

const (
	ItemDescriptionMaxLen  = 500
	ItemQuantityMax        = 2147483647
	UnitPriceDecimalPlaces = 2
)

// MaxUnitPrice is the exclusive upper bound of NUMERIC(10,2).
var MaxUnitPrice = decimal.New(1, 8)

type InvoiceItem struct {
	ID          int64 // Filled by DB, increases in insertion order.
	InvoiceID   uuid.UUID
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// ItemSpec is a line item requested on invoice creation.
type ItemSpec struct {
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

func (it InvoiceItem) Total() decimal.Decimal {
	return ItemTotal(it.Quantity, it.UnitPrice)
}

func (it InvoiceItem) Validate() error {
	return it.validate().Err()
}

func (it InvoiceItem) validate() *ValidationError {
	verr := &ValidationError{}

	desc := strings.TrimSpace(it.Description)

	switch {
	case desc == "":
		verr.Add("description", "This field may not be blank.")
	case utf8.RuneCountInString(it.Description) > ItemDescriptionMaxLen:
		verr.Add("description", "Ensure this field has no more than 500 characters.")
	}

	switch {
	case it.Quantity < 1:
		verr.Add("quantity", "Ensure this value is greater than or equal to 1.")
	case it.Quantity > ItemQuantityMax:
		verr.Add("quantity", "Ensure this value is less than or equal to 2147483647.")
	}

	switch {
	case it.UnitPrice.IsNegative():
		verr.Add("unit_price", "Ensure this value is greater than or equal to 0.")
	case !it.UnitPrice.Equal(it.UnitPrice.Truncate(UnitPriceDecimalPlaces)):
		verr.Add("unit_price", "Ensure that there are no more than 2 decimal places.")
	case it.UnitPrice.GreaterThanOrEqual(MaxUnitPrice):
		verr.Add("unit_price", "Ensure that there are no more than 8 digits before the decimal point.")
	}

	return verr
}

// ItemTotal returns quantity × unitPrice with exact decimal arithmetic.
func ItemTotal(quantity int64, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}

// InvoiceTotal sums the item totals in item order. Zero for no items.
func InvoiceTotal(items []InvoiceItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Total())
	}

	return total
}

func itemField(idx int) string {
	return "items[" + strconv.Itoa(idx) + "]."
}
