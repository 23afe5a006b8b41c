package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/hospital-api/internal/domain/entity"
	"github.com/sangkips/hospital-api/internal/domain/enum"
	infraRepo "github.com/sangkips/hospital-api/internal/infrastructure/repository"
	"github.com/sangkips/hospital-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentServiceFixture(t *testing.T) (*PaymentService, *fakeInvoiceRepo, context.Context, *entity.Invoice) {
	t.Helper()

	invoiceRepo := newFakeInvoiceRepo()
	paymentRepo := newFakePaymentRepo(invoiceRepo)

	tenantID := uuid.New()
	ctx := infraRepo.WithTenant(context.Background(), tenantID)

	invoice := &entity.Invoice{
		ID:            uuid.New(),
		TenantID:      tenantID,
		PatientID:     uuid.New(),
		InvoiceNumber: "INV-" + time.Now().Format("200601") + "-000001",
		Date:          time.Now(),
		Status:        enum.InvoiceStatusPending,
		SubTotal:      decimal.NewFromInt(3500),
		TaxAmount:     decimal.NewFromInt(576),
		TotalAmount:   decimal.NewFromInt(4076),
	}
	require.NoError(t, invoiceRepo.CreateWithItems(ctx, invoice, nil))

	svc := NewPaymentService(paymentRepo, invoiceRepo)
	return svc, invoiceRepo, ctx, invoice
}

func TestCreatePaymentFullAmountMarksInvoicePaid(t *testing.T) {
	svc, invoiceRepo, ctx, invoice := newPaymentServiceFixture(t)

	payment, err := svc.CreatePayment(ctx, &CreatePaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        decimal.NewFromInt(4076),
		PaymentMethod: enum.PaymentMethodCash,
	})
	require.NoError(t, err)
	require.NotNil(t, payment)

	assert.Equal(t, enum.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, "PAY-"+time.Now().Format("200601")+"-000001", payment.PaymentNumber)
	assert.Equal(t, enum.InvoiceStatusPaid, invoiceRepo.invoices[invoice.ID].Status)
}

func TestCreatePaymentPartialThenSettle(t *testing.T) {
	svc, invoiceRepo, ctx, invoice := newPaymentServiceFixture(t)

	first, err := svc.CreatePayment(ctx, &CreatePaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        decimal.NewFromInt(2000),
		PaymentMethod: enum.PaymentMethodUPI,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPartiallyPaid, invoiceRepo.invoices[invoice.ID].Status)

	second, err := svc.CreatePayment(ctx, &CreatePaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        decimal.NewFromInt(2076),
		PaymentMethod: enum.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPaid, invoiceRepo.invoices[invoice.ID].Status)

	prefix := "PAY-" + time.Now().Format("200601")
	assert.Equal(t, prefix+"-000001", first.PaymentNumber)
	assert.Equal(t, prefix+"-000002", second.PaymentNumber)
}

func TestCreatePaymentRejectsOverpayment(t *testing.T) {
	svc, _, ctx, invoice := newPaymentServiceFixture(t)

	_, err := svc.CreatePayment(ctx, &CreatePaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        decimal.NewFromInt(3000),
		PaymentMethod: enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	_, err = svc.CreatePayment(ctx, &CreatePaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        decimal.NewFromInt(1500),
		PaymentMethod: enum.PaymentMethodCash,
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, "1500.00")
	assert.Contains(t, appErr.Message, "1076.00")
}

func TestCreatePaymentRejectsCancelledInvoice(t *testing.T) {
	svc, invoiceRepo, ctx, invoice := newPaymentServiceFixture(t)

	invoiceRepo.invoices[invoice.ID].Status = enum.InvoiceStatusCancelled

	_, err := svc.CreatePayment(ctx, &CreatePaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: enum.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreatePaymentInvoiceNotFound(t *testing.T) {
	svc, _, ctx, _ := newPaymentServiceFixture(t)

	_, err := svc.CreatePayment(ctx, &CreatePaymentInput{
		InvoiceID:     uuid.New(),
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: enum.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCreatePaymentRejectsNonPositiveAmount(t *testing.T) {
	svc, _, ctx, invoice := newPaymentServiceFixture(t)

	_, err := svc.CreatePayment(ctx, &CreatePaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        decimal.Zero,
		PaymentMethod: enum.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreatePaymentRequiresTenant(t *testing.T) {
	svc, _, _, invoice := newPaymentServiceFixture(t)

	_, err := svc.CreatePayment(context.Background(), &CreatePaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: enum.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestUpdatePaymentLeavesInvoiceAlone(t *testing.T) {
	svc, invoiceRepo, ctx, invoice := newPaymentServiceFixture(t)

	payment, err := svc.CreatePayment(ctx, &CreatePaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        decimal.NewFromInt(4076),
		PaymentMethod: enum.PaymentMethodCash,
	})
	require.NoError(t, err)
	require.Equal(t, enum.InvoiceStatusPaid, invoiceRepo.invoices[invoice.ID].Status)

	refunded := enum.PaymentStatusRefunded
	updated, err := svc.UpdatePayment(ctx, payment.ID, &UpdatePaymentInput{Status: &refunded})
	require.NoError(t, err)

	assert.Equal(t, enum.PaymentStatusRefunded, updated.Status)
	assert.Equal(t, enum.InvoiceStatusPaid, invoiceRepo.invoices[invoice.ID].Status)
}

func TestGetPaymentNotFound(t *testing.T) {
	svc, _, ctx, _ := newPaymentServiceFixture(t)

	_, err := svc.GetPayment(ctx, uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
