package service

import (
	"context"
	"fmt"
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

// PaymentService handles payment recording and invoice reconciliation
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	invoiceRepo repository.InvoiceRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	invoiceRepo repository.InvoiceRepository,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
	}
}

// CreatePaymentInput represents the record payment input
type CreatePaymentInput struct {
	InvoiceID       uuid.UUID
	Amount          decimal.Decimal
	PaymentDate     time.Time
	PaymentMethod   enum.PaymentMethod
	ReferenceNumber *string
	Notes           *string
	CreatedByID     *uuid.UUID
}

// CreatePayment records a payment against an invoice and moves the invoice
// to PAID or PARTIALLY_PAID based on the completed-payment balance. Payments
// are recorded as COMPLETED; overpaying the remaining balance is rejected.
func (s *PaymentService) CreatePayment(ctx context.Context, input *CreatePaymentInput) (*entity.Payment, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	if invoice.Status == enum.InvoiceStatusCancelled {
		return nil, apperror.NewBadRequestError("Cannot record a payment against a cancelled invoice")
	}

	totalPaid, err := s.paymentRepo.SumCompletedByInvoice(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}

	remaining := invoice.TotalAmount.Sub(totalPaid)
	if input.Amount.GreaterThan(remaining) {
		return nil, apperror.NewBadRequestError(fmt.Sprintf(
			"Payment amount %s exceeds remaining balance %s",
			input.Amount.StringFixed(2), remaining.StringFixed(2),
		))
	}

	now := time.Now()
	paymentDate := input.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = now
	}

	prefix := documentPrefix("PAY", now)
	latest, err := s.paymentRepo.LatestNumberWithPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		TenantID:        tenantID,
		InvoiceID:       input.InvoiceID,
		PaymentNumber:   nextDocumentNumber(prefix, latest),
		Amount:          input.Amount,
		PaymentDate:     paymentDate,
		PaymentMethod:   input.PaymentMethod,
		ReferenceNumber: input.ReferenceNumber,
		Notes:           input.Notes,
		Status:          enum.PaymentStatusCompleted,
		CreatedByID:     input.CreatedByID,
	}

	newStatus := enum.InvoiceStatusPartiallyPaid
	if totalPaid.Add(input.Amount).GreaterThanOrEqual(invoice.TotalAmount) {
		newStatus = enum.InvoiceStatusPaid
	}

	if err := s.paymentRepo.CreateWithInvoiceStatus(ctx, payment, &newStatus); err != nil {
		return nil, err
	}

	return s.paymentRepo.GetByID(ctx, payment.ID)
}

// GetPayment retrieves a payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("Error fetching payment %s: %v", id, err)
		return nil, apperror.NewBadRequestError("Failed to fetch payment")
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// ListPayments lists payments with filtering
func (s *PaymentService) ListPayments(ctx context.Context, params *repository.PaymentFilterParams) (*pagination.PaginatedResult[entity.Payment], error) {
	payments, total, err := s.paymentRepo.List(ctx, params)
	if err != nil {
		log.Printf("Error listing payments: %v", err)
		return nil, apperror.NewBadRequestError("Failed to fetch payments")
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(payments, pag), nil
}

// UpdatePaymentInput represents the mutable payment fields
type UpdatePaymentInput struct {
	Status      *enum.PaymentStatus
	Notes       *string
	UpdatedByID *uuid.UUID
}

// UpdatePayment updates a payment's status or notes. The owning invoice's
// status is not reconciled here.
func (s *PaymentService) UpdatePayment(ctx context.Context, id uuid.UUID, input *UpdatePaymentInput) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}

	if input.Status != nil {
		payment.Status = *input.Status
	}
	if input.Notes != nil {
		payment.Notes = input.Notes
	}
	if input.UpdatedByID != nil {
		payment.UpdatedByID = input.UpdatedByID
	}

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	return s.paymentRepo.GetByID(ctx, id)
}
