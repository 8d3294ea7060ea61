package service

import (
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/invoice/internal/entity"
)

// validateInvoiceDraft checks the creation input before any entity is built.
func validateInvoiceDraft(d entity.InvoiceDraft) *entity.ValidationError {
	verr := &entity.ValidationError{}

	if d.CustomerID.IsNil() {
		verr.Add("customer", entity.MsgRequired)
	}

	if d.IssueDate.IsZero() {
		verr.Add("issue_date", entity.MsgRequired)
	}

	if d.DueDate.IsZero() {
		verr.Add("due_date", entity.MsgRequired)
	}

	if d.Status != "" && !d.Status.IsValid() {
		verr.Add("status", entity.MsgInvalidChoice(d.Status.String()))
	}

	mergeValidation(verr, "", entity.ValidateDateOrder(d.IssueDate, d.DueDate))

	if len(d.Items) == 0 {
		verr.Add("items", entity.MsgNoItems)
	}

	for i, spec := range d.Items {
		item := entity.InvoiceItem{
			Description: spec.Description,
			Quantity:    spec.Quantity,
			UnitPrice:   spec.UnitPrice,
		}

		mergeValidation(verr, fmt.Sprintf("items[%d].", i), item.Validate())
	}

	return verr
}

// validateInvoicePatch checks the patch against the dates the invoice will
// have once it is applied.
func validateInvoicePatch(cur entity.Invoice, p entity.InvoicePatch) *entity.ValidationError {
	verr := &entity.ValidationError{}

	if p.CustomerID != nil && p.CustomerID.IsNil() {
		verr.Add("customer", entity.MsgRequired)
	}

	if p.Status != nil && !p.Status.IsValid() {
		verr.Add("status", entity.MsgInvalidChoice(p.Status.String()))
	}

	issue, due := cur.IssueDate, cur.DueDate

	if p.IssueDate != nil {
		issue = *p.IssueDate
	}

	if p.DueDate != nil {
		due = *p.DueDate
	}

	mergeValidation(verr, "", entity.ValidateDateOrder(issue, due))

	return verr
}

func mergeValidation(verr *entity.ValidationError, prefix string, err error) {
	var v *entity.ValidationError
	if errors.As(err, &v) {
		verr.Merge(prefix, v)
	}
}

func unknownCustomerError(id uuid.UUID) *entity.ValidationError {
	return entity.NewValidationError("customer", fmt.Sprintf("Invalid pk %q - object does not exist.", id))
}
