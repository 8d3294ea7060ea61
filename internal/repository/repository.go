package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samandr77/microservices/invoice/internal/entity"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

type Repository struct {
	db *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{
		db: pool,
	}
}

// mapPgError turns integrity violations into domain errors.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		if pgErr.ConstraintName == "customers_email_key" {
			return entity.ErrDuplicateEmail
		}
	case pgForeignKeyViolation:
		if pgErr.TableName == "invoices" {
			return entity.ErrUnknownCustomer
		}
	case pgCheckViolation:
		return errors.Join(entity.ErrInvalidArgument, err)
	}

	return err
}
