package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/invoice/internal/entity"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=service.go -destination=../mocks/service.go -package=mocks

type Repository interface {
	CreateCustomer(ctx context.Context, c entity.Customer) error
	Customer(ctx context.Context, id uuid.UUID) (entity.Customer, error)
	Customers(ctx context.Context, filter entity.CustomerFilter) ([]entity.Customer, int, error)
	CreateInvoice(ctx context.Context, inv entity.Invoice) (entity.Invoice, error)
	Invoice(ctx context.Context, id uuid.UUID) (entity.Invoice, error)
	Invoices(ctx context.Context, filter entity.InvoiceFilter) ([]entity.Invoice, int, error)
	UpdateInvoice(ctx context.Context, inv entity.Invoice) error
	UpdateInvoiceStatus(ctx context.Context, id uuid.UUID, status entity.InvoiceStatus) error
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
}

type Producer interface {
	SendInvoiceEvent(ctx context.Context, event entity.InvoiceEvent)
}

type Service struct {
	repo     Repository
	producer Producer
}

func New(repo Repository, producer Producer) *Service {
	return &Service{
		repo:     repo,
		producer: producer,
	}
}
