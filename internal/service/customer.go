package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/invoice/internal/entity"
)

func (s *Service) CreateCustomer(ctx context.Context, name, email string) (entity.Customer, error) {
	c, err := entity.NewCustomer(name, email, time.Now())
	if err != nil {
		return entity.Customer{}, err
	}

	err = s.repo.CreateCustomer(ctx, c)
	if err != nil {
		if errors.Is(err, entity.ErrDuplicateEmail) {
			return entity.Customer{}, entity.NewValidationError("email", "customer with this email already exists.")
		}

		return entity.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	slog.InfoContext(ctx, fmt.Sprintf("Customer %s created", c.ID))

	return c, nil
}

func (s *Service) Customer(ctx context.Context, id uuid.UUID) (entity.Customer, error) {
	c, err := s.repo.Customer(ctx, id)
	if err != nil {
		return entity.Customer{}, fmt.Errorf("get customer %q: %w", id, err)
	}

	return c, nil
}

func (s *Service) Customers(ctx context.Context, filter entity.CustomerFilter) ([]entity.Customer, int, error) {
	customers, total, err := s.repo.Customers(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("get customers: %w", err)
	}

	return customers, total, nil
}
