package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/hospital-api/internal/domain/entity"
	"github.com/sangkips/hospital-api/internal/domain/enum"
	"github.com/sangkips/hospital-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// CreateWithInvoiceStatus inserts the payment and, when invoiceStatus is
	// non-nil, updates the owning invoice's status in the same transaction
	CreateWithInvoiceStatus(ctx context.Context, payment *entity.Payment, invoiceStatus *enum.InvoiceStatus) error

	// GetByID retrieves a payment with its invoice and the invoice's patient attached
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)

	Update(ctx context.Context, payment *entity.Payment) error

	List(ctx context.Context, params *PaymentFilterParams) ([]entity.Payment, int64, error)

	// SumCompletedByInvoice returns the sum of COMPLETED payment amounts for an invoice
	SumCompletedByInvoice(ctx context.Context, invoiceID uuid.UUID) (decimal.Decimal, error)

	// CountByInvoice counts payments of any status recorded against an invoice
	CountByInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error)

	// LatestNumberWithPrefix returns the payment number of the most recently
	// created payment whose number starts with prefix, or "" if none exists
	LatestNumberWithPrefix(ctx context.Context, prefix string) (string, error)
}

// PaymentFilterParams contains filtering parameters for payment queries
type PaymentFilterParams struct {
	Pagination *pagination.PaginationParams
	InvoiceID  *uuid.UUID
	Method     *enum.PaymentMethod
	Status     *enum.PaymentStatus
	StartDate  *time.Time
	EndDate    *time.Time
}
