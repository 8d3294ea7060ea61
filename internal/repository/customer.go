package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/samandr77/microservices/invoice/internal/entity"
)

func (r *Repository) CreateCustomer(ctx context.Context, c entity.Customer) error {
	const q = `INSERT INTO customers (id, name, email, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, q, c.ID, c.Name, c.Email, c.CreatedAt)
	if err != nil {
		return mapPgError(err)
	}

	return nil
}

func (r *Repository) Customer(ctx context.Context, id uuid.UUID) (entity.Customer, error) {
	q := selectCustomer + " WHERE id = $1"
	return scanCustomer(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) Customers(ctx context.Context, f entity.CustomerFilter) ([]entity.Customer, int, error) {
	stmt := sq.Select(append(customerColumns, totalCountColumn)...).
		From("customers").
		PlaceholderFormat(sq.Dollar)

	if f.Search != nil && *f.Search != "" {
		pattern := "%" + escapeLike(*f.Search) + "%"
		stmt = stmt.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"email": pattern},
		})
	}

	stmt = stmt.
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

	customers := make([]entity.Customer, 0, f.Limit)

	var totalCount int

	for rows.Next() {
		var c entity.Customer

		err = rows.Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt, &totalCount)
		if err != nil {
			return nil, 0, err
		}

		customers = append(customers, c)
	}

	err = rows.Err()
	if err != nil {
		return nil, 0, err
	}

	return customers, totalCount, nil
}

func scanCustomer(row pgx.Row) (c entity.Customer, err error) {
	err = row.Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Customer{}, entity.ErrNotFound
		}

		return entity.Customer{}, err
	}

	return c, nil
}
