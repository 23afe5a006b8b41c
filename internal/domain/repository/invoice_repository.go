package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/hospital-api/internal/domain/entity"
	"github.com/sangkips/hospital-api/internal/domain/enum"
	"github.com/sangkips/hospital-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	// CreateWithItems inserts the invoice and all of its line items in one
	// transaction; a failed item insert rolls back the invoice row.
	CreateWithItems(ctx context.Context, invoice *entity.Invoice, items []entity.InvoiceItem) error

	// GetByID retrieves an invoice with patient, items and payments
	// (payments ordered newest-first) attached
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)

	Update(ctx context.Context, invoice *entity.Invoice) error

	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)

	// ListPaidBetween returns all PAID invoices with date in [start, end],
	// ascending by date, with patient/items/payments attached. Unpaginated.
	ListPaidBetween(ctx context.Context, start, end time.Time) ([]entity.Invoice, error)

	// LatestNumberWithPrefix returns the invoice number of the most recently
	// created invoice whose number starts with prefix, or "" if none exists
	LatestNumberWithPrefix(ctx context.Context, prefix string) (string, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.InvoiceStatus
	PatientID  *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
