package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/samandr77/microservices/invoice/internal/entity"
)

// CreateInvoice inserts the invoice and its items in one transaction and
// returns the invoice with item ids filled in.
func (r *Repository) CreateInvoice(ctx context.Context, inv entity.Invoice) (entity.Invoice, error) {
	const (
		insertInvoice = `
		INSERT INTO invoices (id, customer_id, issue_date, due_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

		insertItem = `
		INSERT INTO invoice_items (invoice_id, description, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return entity.Invoice{}, err
	}

	defer tx.Rollback(ctx) //nolint:errcheck

	_, err = tx.Exec(ctx, insertInvoice,
		inv.ID,
		inv.CustomerID,
		inv.IssueDate,
		inv.DueDate,
		inv.Status,
		inv.CreatedAt,
	)
	if err != nil {
		return entity.Invoice{}, mapPgError(err)
	}

	items := make([]entity.InvoiceItem, 0, len(inv.Items))

	for _, item := range inv.Items {
		item.InvoiceID = inv.ID

		err = tx.QueryRow(ctx, insertItem,
			item.InvoiceID,
			item.Description,
			item.Quantity,
			item.UnitPrice,
		).Scan(&item.ID)
		if err != nil {
			return entity.Invoice{}, fmt.Errorf("insert item %q: %w", item.Description, mapPgError(err))
		}

		items = append(items, item)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return entity.Invoice{}, err
	}

	inv.Items = items

	return inv, nil
}

func (r *Repository) Invoice(ctx context.Context, id uuid.UUID) (entity.Invoice, error) {
	q := selectInvoice + " WHERE id = $1"

	inv, err := scanInvoice(r.db.QueryRow(ctx, q, id))
	if err != nil {
		return entity.Invoice{}, err
	}

	items, err := r.items(ctx, []uuid.UUID{inv.ID})
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("get items: %w", err)
	}

	inv.Items = items[inv.ID]

	return inv, nil
}

func (r *Repository) Invoices(ctx context.Context, f entity.InvoiceFilter) ([]entity.Invoice, int, error) {
	stmt := sq.Select(append(invoiceColumns, totalCountColumn)...).
		From("invoices").
		PlaceholderFormat(sq.Dollar)

	stmt = applyInvoiceFilter(stmt, f).
		OrderBy("created_at DESC", "id").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit)

	sql, args, err := stmt.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	invoices := make([]entity.Invoice, 0, f.Limit)
	ids := make([]uuid.UUID, 0, f.Limit)

	var totalCount int

	for rows.Next() {
		var inv entity.Invoice

		err = rows.Scan(
			&inv.ID,
			&inv.CustomerID,
			&inv.IssueDate,
			&inv.DueDate,
			&inv.Status,
			&inv.CreatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, err
		}

		invoices = append(invoices, inv)
		ids = append(ids, inv.ID)
	}

	err = rows.Err()
	if err != nil {
		return nil, 0, err
	}

	rows.Close()

	items, err := r.items(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("get items: %w", err)
	}

	for i := range invoices {
		invoices[i].Items = items[invoices[i].ID]
	}

	return invoices, totalCount, nil
}

func applyInvoiceFilter(stmt sq.SelectBuilder, f entity.InvoiceFilter) sq.SelectBuilder {
	if f.Status != nil {
		stmt = stmt.Where(sq.Eq{"status": *f.Status})
	}

	if f.CustomerID != nil {
		stmt = stmt.Where(sq.Eq{"customer_id": *f.CustomerID})
	}

	return stmt
}

// items loads the items of the given invoices in insertion order.
func (r *Repository) items(ctx context.Context, invoiceIDs []uuid.UUID) (map[uuid.UUID][]entity.InvoiceItem, error) {
	res := make(map[uuid.UUID][]entity.InvoiceItem, len(invoiceIDs))
	if len(invoiceIDs) == 0 {
		return res, nil
	}

	sql, args, err := sq.Select(itemColumns...).
		From("invoice_items").
		Where(sq.Eq{"invoice_id": invoiceIDs}).
		OrderBy("id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}

		res[item.InvoiceID] = append(res[item.InvoiceID], item)
	}

	return res, rows.Err()
}

func (r *Repository) UpdateInvoice(ctx context.Context, inv entity.Invoice) error {
	const q = `
	UPDATE invoices
	SET customer_id = $1, issue_date = $2, due_date = $3, status = $4
	WHERE id = $5`

	result, err := r.db.Exec(ctx, q, inv.CustomerID, inv.IssueDate, inv.DueDate, inv.Status, inv.ID)
	if err != nil {
		return mapPgError(err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) UpdateInvoiceStatus(ctx context.Context, id uuid.UUID, status entity.InvoiceStatus) error {
	const q = `UPDATE invoices SET status = $1 WHERE id = $2`

	result, err := r.db.Exec(ctx, q, status, id)
	if err != nil {
		return mapPgError(err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

// DeleteInvoice removes the invoice, its items go with it by cascade.
func (r *Repository) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM invoices WHERE id = $1`

	result, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func scanInvoice(row pgx.Row) (inv entity.Invoice, err error) {
	err = row.Scan(
		&inv.ID,
		&inv.CustomerID,
		&inv.IssueDate,
		&inv.DueDate,
		&inv.Status,
		&inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Invoice{}, entity.ErrNotFound
		}

		return entity.Invoice{}, err
	}

	return inv, nil
}

func scanItem(row pgx.Row) (item entity.InvoiceItem, err error) {
	err = row.Scan(
		&item.ID,
		&item.InvoiceID,
		&item.Description,
		&item.Quantity,
		&item.UnitPrice,
	)

	return item, err
}
