package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/hospital-api/internal/domain/entity"
	"github.com/sangkips/hospital-api/internal/domain/enum"
	"github.com/sangkips/hospital-api/internal/domain/repository"
	infraRepo "github.com/sangkips/hospital-api/internal/infrastructure/repository"
	"github.com/sangkips/hospital-api/pkg/apperror"
	"github.com/sangkips/hospital-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// InvoiceService handles invoice-related operations
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	patientRepo repository.PatientRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	patientRepo repository.PatientRepository,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		patientRepo: patientRepo,
	}
}

// InvoiceItemInput represents one line of a new invoice
type InvoiceItemInput struct {
	ItemType    enum.InvoiceItemType
	ItemID      *uuid.UUID
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	TaxRate     decimal.Decimal
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	PatientID      uuid.UUID
	Date           time.Time
	DueDate        time.Time
	DiscountAmount decimal.Decimal
	Notes          *string
	CreatedByID    *uuid.UUID
	Items          []InvoiceItemInput
}

// CreateInvoice creates a new invoice with its line items.
// Line and invoice totals are always recomputed server-side.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Invoice must have at least one item")
	}

	patient, err := s.patientRepo.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}

	hundred := decimal.NewFromInt(100)
	subTotal := decimal.Zero
	taxAmount := decimal.Zero
	items := make([]entity.InvoiceItem, 0, len(input.Items))

	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}

		lineBase := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		afterDiscount := lineBase.Sub(item.Discount)
		lineTax := afterDiscount.Mul(item.TaxRate).Div(hundred)

		subTotal = subTotal.Add(lineBase)
		taxAmount = taxAmount.Add(lineTax)

		items = append(items, entity.InvoiceItem{
			ItemType:    item.ItemType,
			ItemID:      item.ItemID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			TaxRate:     item.TaxRate,
			TotalAmount: afterDiscount.Add(lineTax),
		})
	}

	now := time.Now()
	date := input.Date
	if date.IsZero() {
		date = now
	}
	dueDate := input.DueDate
	if dueDate.IsZero() {
		dueDate = date.AddDate(0, 0, 30)
	}

	prefix := documentPrefix("INV", now)
	latest, err := s.invoiceRepo.LatestNumberWithPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}

	invoice := &entity.Invoice{
		TenantID:       tenantID,
		PatientID:      input.PatientID,
		InvoiceNumber:  nextDocumentNumber(prefix, latest),
		Date:           date,
		DueDate:        dueDate,
		Status:         enum.InvoiceStatusPending,
		SubTotal:       subTotal,
		TaxAmount:      taxAmount,
		DiscountAmount: input.DiscountAmount,
		TotalAmount:    subTotal.Sub(input.DiscountAmount).Add(taxAmount),
		Notes:          input.Notes,
		CreatedByID:    input.CreatedByID,
	}

	if err := s.invoiceRepo.CreateWithItems(ctx, invoice, items); err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetByID(ctx, invoice.ID)
}

// GetInvoice retrieves an invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("Error fetching invoice %s: %v", id, err)
		return nil, apperror.NewBadRequestError("Failed to fetch invoice")
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices with filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		log.Printf("Error listing invoices: %v", err)
		return nil, apperror.NewBadRequestError("Failed to fetch invoices")
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// UpdateInvoiceInput represents the mutable invoice fields
type UpdateInvoiceInput struct {
	Status         *enum.InvoiceStatus
	DueDate        *time.Time
	DiscountAmount *decimal.Decimal
	Notes          *string
	UpdatedByID    *uuid.UUID
}

// UpdateInvoice updates an invoice's mutable fields. Totals are not
// recomputed here; line items are immutable after creation.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uuid.UUID, input *UpdateInvoiceInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	if input.Status != nil {
		invoice.Status = *input.Status
	}
	if input.DueDate != nil {
		invoice.DueDate = *input.DueDate
	}
	if input.DiscountAmount != nil {
		invoice.DiscountAmount = *input.DiscountAmount
	}
	if input.Notes != nil {
		invoice.Notes = input.Notes
	}
	if input.UpdatedByID != nil {
		invoice.UpdatedByID = input.UpdatedByID
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetByID(ctx, id)
}

// CancelInvoice marks an invoice CANCELLED. Paid invoices and invoices with
// any recorded payment cannot be cancelled.
func (s *InvoiceService) CancelInvoice(ctx context.Context, id uuid.UUID, updatedByID *uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	if invoice.Status == enum.InvoiceStatusPaid {
		return nil, apperror.NewBadRequestError("Cannot cancel a paid invoice")
	}

	paymentCount, err := s.paymentRepo.CountByInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if paymentCount > 0 {
		return nil, apperror.NewBadRequestError("Cannot cancel an invoice with recorded payments")
	}

	invoice.Status = enum.InvoiceStatusCancelled
	invoice.UpdatedByID = updatedByID

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetByID(ctx, id)
}
