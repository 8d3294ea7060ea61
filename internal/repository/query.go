package repository

import "strings"

const (
	selectCustomer = `SELECT
		id,
		name,
		email,
		created_at
	FROM customers`

	selectInvoice = `SELECT
		id,
		customer_id,
		issue_date,
		due_date,
		status,
		created_at
	FROM invoices`
)

var (
	customerColumns = []string{"id", "name", "email", "created_at"}
	invoiceColumns  = []string{"id", "customer_id", "issue_date", "due_date", "status", "created_at"}
	itemColumns     = []string{"id", "invoice_id", "description", "quantity", "unit_price"}
)

const totalCountColumn = "COUNT(*) OVER() AS total_count"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
