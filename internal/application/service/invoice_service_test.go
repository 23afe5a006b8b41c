package service

import (
	"context"
	"strings"
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

func newInvoiceServiceFixture() (*InvoiceService, *fakeInvoiceRepo, *fakePaymentRepo, *fakePatientRepo, context.Context, *entity.Patient) {
	invoiceRepo := newFakeInvoiceRepo()
	paymentRepo := newFakePaymentRepo(invoiceRepo)
	patientRepo := newFakePatientRepo()

	tenantID := uuid.New()
	ctx := infraRepo.WithTenant(context.Background(), tenantID)

	patient := &entity.Patient{
		ID:        uuid.New(),
		TenantID:  tenantID,
		MRN:       "MRN-1A2B3C4D",
		FirstName: "Asha",
		LastName:  "Nair",
	}
	patientRepo.patients[patient.ID] = patient

	svc := NewInvoiceService(invoiceRepo, paymentRepo, patientRepo)
	return svc, invoiceRepo, paymentRepo, patientRepo, ctx, patient
}

func TestCreateInvoiceComputesTotals(t *testing.T) {
	svc, _, _, _, ctx, patient := newInvoiceServiceFixture()

	invoice, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
		PatientID: patient.ID,
		Items: []InvoiceItemInput{
			{
				ItemType:    enum.InvoiceItemTypeConsultation,
				Description: "General consultation",
				Quantity:    1,
				UnitPrice:   decimal.NewFromInt(2000),
				TaxRate:     decimal.NewFromInt(18),
			},
			{
				ItemType:    enum.InvoiceItemTypeLabTest,
				Description: "Complete blood count",
				Quantity:    1,
				UnitPrice:   decimal.NewFromInt(1500),
				Discount:    decimal.NewFromInt(300),
				TaxRate:     decimal.NewFromInt(18),
			},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, invoice)

	assert.True(t, invoice.SubTotal.Equal(decimal.NewFromInt(3500)), "sub total: %s", invoice.SubTotal)
	assert.True(t, invoice.TaxAmount.Equal(decimal.NewFromInt(576)), "tax: %s", invoice.TaxAmount)
	assert.True(t, invoice.TotalAmount.Equal(decimal.NewFromInt(4076)), "total: %s", invoice.TotalAmount)
	assert.Equal(t, enum.InvoiceStatusPending, invoice.Status)

	require.Len(t, invoice.Items, 2)
	assert.True(t, invoice.Items[0].TotalAmount.Equal(decimal.NewFromInt(2360)))
	assert.True(t, invoice.Items[1].TotalAmount.Equal(decimal.NewFromInt(1416)))

	wantPrefix := "INV-" + time.Now().Format("200601") + "-"
	assert.True(t, strings.HasPrefix(invoice.InvoiceNumber, wantPrefix), "number %s", invoice.InvoiceNumber)
	assert.Equal(t, wantPrefix+"000001", invoice.InvoiceNumber)
}

func TestCreateInvoiceSequentialNumbers(t *testing.T) {
	svc, _, _, _, ctx, patient := newInvoiceServiceFixture()

	items := []InvoiceItemInput{{
		Description: "Consultation",
		Quantity:    1,
		UnitPrice:   decimal.NewFromInt(500),
	}}

	first, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{PatientID: patient.ID, Items: items})
	require.NoError(t, err)
	second, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{PatientID: patient.ID, Items: items})
	require.NoError(t, err)

	prefix := "INV-" + time.Now().Format("200601")
	assert.Equal(t, prefix+"-000001", first.InvoiceNumber)
	assert.Equal(t, prefix+"-000002", second.InvoiceNumber)
}

func TestCreateInvoiceInvoiceLevelDiscount(t *testing.T) {
	svc, _, _, _, ctx, patient := newInvoiceServiceFixture()

	invoice, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
		PatientID:      patient.ID,
		DiscountAmount: decimal.NewFromInt(100),
		Items: []InvoiceItemInput{{
			Description: "Dressing change",
			Quantity:    2,
			UnitPrice:   decimal.NewFromInt(250),
		}},
	})
	require.NoError(t, err)

	// total = subTotal - invoice discount + tax
	assert.True(t, invoice.SubTotal.Equal(decimal.NewFromInt(500)))
	assert.True(t, invoice.TotalAmount.Equal(decimal.NewFromInt(400)))
}

func TestCreateInvoicePatientNotFound(t *testing.T) {
	svc, _, _, _, ctx, _ := newInvoiceServiceFixture()

	_, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
		PatientID: uuid.New(),
		Items: []InvoiceItemInput{{
			Description: "Consultation",
			Quantity:    1,
			UnitPrice:   decimal.NewFromInt(100),
		}},
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCreateInvoiceRequiresItems(t *testing.T) {
	svc, _, _, _, ctx, patient := newInvoiceServiceFixture()

	_, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{PatientID: patient.ID})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateInvoiceRejectsNonPositiveQuantity(t *testing.T) {
	svc, _, _, _, ctx, patient := newInvoiceServiceFixture()

	_, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
		PatientID: patient.ID,
		Items: []InvoiceItemInput{{
			Description: "Consultation",
			Quantity:    0,
			UnitPrice:   decimal.NewFromInt(100),
		}},
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateInvoiceRequiresTenant(t *testing.T) {
	svc, _, _, _, _, patient := newInvoiceServiceFixture()

	_, err := svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		PatientID: patient.ID,
		Items: []InvoiceItemInput{{
			Description: "Consultation",
			Quantity:    1,
			UnitPrice:   decimal.NewFromInt(100),
		}},
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestUpdateInvoiceDoesNotRecomputeTotals(t *testing.T) {
	svc, _, _, _, ctx, patient := newInvoiceServiceFixture()

	invoice, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
		PatientID: patient.ID,
		Items: []InvoiceItemInput{{
			Description: "Consultation",
			Quantity:    1,
			UnitPrice:   decimal.NewFromInt(1000),
		}},
	})
	require.NoError(t, err)
	originalTotal := invoice.TotalAmount

	newDiscount := decimal.NewFromInt(200)
	updated, err := svc.UpdateInvoice(ctx, invoice.ID, &UpdateInvoiceInput{
		DiscountAmount: &newDiscount,
	})
	require.NoError(t, err)

	assert.True(t, updated.DiscountAmount.Equal(newDiscount))
	assert.True(t, updated.TotalAmount.Equal(originalTotal), "total should stay %s, got %s", originalTotal, updated.TotalAmount)
}

func TestCancelInvoice(t *testing.T) {
	svc, _, _, _, ctx, patient := newInvoiceServiceFixture()

	invoice, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
		PatientID: patient.ID,
		Items: []InvoiceItemInput{{
			Description: "Consultation",
			Quantity:    1,
			UnitPrice:   decimal.NewFromInt(1000),
		}},
	})
	require.NoError(t, err)

	cancelled, err := svc.CancelInvoice(ctx, invoice.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusCancelled, cancelled.Status)
}

func TestCancelInvoiceRejectsPaid(t *testing.T) {
	svc, invoiceRepo, _, _, ctx, patient := newInvoiceServiceFixture()

	invoice, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
		PatientID: patient.ID,
		Items: []InvoiceItemInput{{
			Description: "Consultation",
			Quantity:    1,
			UnitPrice:   decimal.NewFromInt(1000),
		}},
	})
	require.NoError(t, err)

	invoiceRepo.invoices[invoice.ID].Status = enum.InvoiceStatusPaid

	_, err = svc.CancelInvoice(ctx, invoice.ID, nil)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCancelInvoiceRejectsRecordedPayments(t *testing.T) {
	svc, _, paymentRepo, _, ctx, patient := newInvoiceServiceFixture()

	invoice, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
		PatientID: patient.ID,
		Items: []InvoiceItemInput{{
			Description: "Consultation",
			Quantity:    1,
			UnitPrice:   decimal.NewFromInt(1000),
		}},
	})
	require.NoError(t, err)

	// Any payment blocks cancellation, even a failed one
	paymentRepo.payments = append(paymentRepo.payments, &entity.Payment{
		ID:        uuid.New(),
		InvoiceID: invoice.ID,
		Amount:    decimal.NewFromInt(100),
		Status:    enum.PaymentStatusFailed,
	})

	_, err = svc.CancelInvoice(ctx, invoice.ID, nil)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestGetInvoiceNotFound(t *testing.T) {
	svc, _, _, _, ctx, _ := newInvoiceServiceFixture()

	_, err := svc.GetInvoice(ctx, uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
