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

// CreateInvoice stores a new invoice together with all of its items. Either
// everything is stored or nothing is.
func (s *Service) CreateInvoice(ctx context.Context, d entity.InvoiceDraft) (entity.Invoice, error) {
	verr := validateInvoiceDraft(d)

	if !d.CustomerID.IsNil() {
		err := s.checkCustomer(ctx, d.CustomerID, verr)
		if err != nil {
			return entity.Invoice{}, err
		}
	}

	err := verr.Err()
	if err != nil {
		return entity.Invoice{}, err
	}

	inv, err := entity.NewInvoice(d.CustomerID, d.IssueDate, d.DueDate, d.Status, d.Items, time.Now())
	if err != nil {
		return entity.Invoice{}, err
	}

	err = inv.Validate()
	if err != nil {
		return entity.Invoice{}, err
	}

	inv, err = s.repo.CreateInvoice(ctx, inv)
	if err != nil {
		if errors.Is(err, entity.ErrUnknownCustomer) {
			return entity.Invoice{}, unknownCustomerError(d.CustomerID)
		}

		return entity.Invoice{}, fmt.Errorf("create invoice: %w", err)
	}

	slog.InfoContext(ctx, fmt.Sprintf("Invoice %s for customer %s created with %d items, total %s",
		inv.ID, inv.CustomerID, len(inv.Items), inv.Total().StringFixed(entity.UnitPriceDecimalPlaces)))

	s.producer.SendInvoiceEvent(ctx, entity.NewInvoiceEvent(entity.InvoiceEventCreated, inv, time.Now()))

	return inv, nil
}

func (s *Service) Invoice(ctx context.Context, id uuid.UUID) (entity.Invoice, error) {
	inv, err := s.repo.Invoice(ctx, id)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("get invoice %q: %w", id, err)
	}

	return inv, nil
}

func (s *Service) Invoices(ctx context.Context, filter entity.InvoiceFilter) ([]entity.Invoice, int, error) {
	invoices, total, err := s.repo.Invoices(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("get invoices: %w", err)
	}

	return invoices, total, nil
}

// UpdateInvoice applies a partial update. Items are never touched.
func (s *Service) UpdateInvoice(ctx context.Context, id uuid.UUID, p entity.InvoicePatch) (entity.Invoice, error) {
	cur, err := s.repo.Invoice(ctx, id)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("get invoice %q: %w", id, err)
	}

	verr := validateInvoicePatch(cur, p)

	if p.CustomerID != nil && !p.CustomerID.IsNil() && *p.CustomerID != cur.CustomerID {
		err = s.checkCustomer(ctx, *p.CustomerID, verr)
		if err != nil {
			return entity.Invoice{}, err
		}
	}

	err = verr.Err()
	if err != nil {
		return entity.Invoice{}, err
	}

	if p.IsEmpty() {
		return cur, nil
	}

	inv := cur.Apply(p)

	err = inv.Validate()
	if err != nil {
		return entity.Invoice{}, err
	}

	err = s.repo.UpdateInvoice(ctx, inv)
	if err != nil {
		if errors.Is(err, entity.ErrUnknownCustomer) {
			return entity.Invoice{}, unknownCustomerError(inv.CustomerID)
		}

		return entity.Invoice{}, fmt.Errorf("update invoice %q: %w", id, err)
	}

	return inv, nil
}

// MarkPaid sets the status to paid whatever the current status is. The paid
// event is sent only when the status actually changes.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID) (entity.Invoice, error) {
	inv, err := s.repo.Invoice(ctx, id)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("get invoice %q: %w", id, err)
	}

	prevStatus := inv.Status
	inv.Status = entity.InvoiceStatusPaid

	err = inv.Validate()
	if err != nil {
		return entity.Invoice{}, err
	}

	err = s.repo.UpdateInvoiceStatus(ctx, inv.ID, inv.Status)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("update invoice %q status to %q: %w", id, inv.Status, err)
	}

	if prevStatus != entity.InvoiceStatusPaid {
		slog.InfoContext(ctx, fmt.Sprintf("Invoice %s marked as paid, previous status %q", inv.ID, prevStatus))

		s.producer.SendInvoiceEvent(ctx, entity.NewInvoiceEvent(entity.InvoiceEventPaid, inv, time.Now()))
	}

	return inv, nil
}

func (s *Service) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	err := s.repo.DeleteInvoice(ctx, id)
	if err != nil {
		return fmt.Errorf("delete invoice %q: %w", id, err)
	}

	slog.InfoContext(ctx, fmt.Sprintf("Invoice %s deleted", id))

	return nil
}

// checkCustomer records a field error when the customer does not exist.
func (s *Service) checkCustomer(ctx context.Context, id uuid.UUID, verr *entity.ValidationError) error {
	_, err := s.repo.Customer(ctx, id)
	if err == nil {
		return nil
	}

	if errors.Is(err, entity.ErrNotFound) {
		verr.Merge("", unknownCustomerError(id))
		return nil
	}

	return fmt.Errorf("get customer %q: %w", id, err)
}
