package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/hospital-api/internal/domain/entity"
	"github.com/sangkips/hospital-api/internal/domain/enum"
	"github.com/sangkips/hospital-api/internal/domain/repository"
	"github.com/sangkips/hospital-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// In-memory repository fakes. They keep insertion order so the
// latest-number lookups behave like the created_at DESC queries.

type fakePatientRepo struct {
	patients map[uuid.UUID]*entity.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uuid.UUID]*entity.Patient)}
}

func (f *fakePatientRepo) Create(ctx context.Context, patient *entity.Patient) error {
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	f.patients[patient.ID] = patient
	return nil
}

func (f *fakePatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	return f.patients[id], nil
}

func (f *fakePatientRepo) GetByMRN(ctx context.Context, mrn string) (*entity.Patient, error) {
	for _, p := range f.patients {
		if p.MRN == mrn {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePatientRepo) Update(ctx context.Context, patient *entity.Patient) error {
	f.patients[patient.ID] = patient
	return nil
}

func (f *fakePatientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.patients, id)
	return nil
}

func (f *fakePatientRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Patient, int64, error) {
	patients := make([]entity.Patient, 0, len(f.patients))
	for _, p := range f.patients {
		patients = append(patients, *p)
	}
	return patients, int64(len(patients)), nil
}

type fakeInvoiceRepo struct {
	invoices map[uuid.UUID]*entity.Invoice
	order    []uuid.UUID
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[uuid.UUID]*entity.Invoice)}
}

func (f *fakeInvoiceRepo) CreateWithItems(ctx context.Context, invoice *entity.Invoice, items []entity.InvoiceItem) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].InvoiceID = invoice.ID
	}
	invoice.Items = items
	f.invoices[invoice.ID] = invoice
	f.order = append(f.order, invoice.ID)
	return nil
}

func (f *fakeInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return f.invoices[id], nil
}

func (f *fakeInvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	f.invoices[invoice.ID] = invoice
	return nil
}

func (f *fakeInvoiceRepo) List(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	invoices := make([]entity.Invoice, 0, len(f.order))
	for _, id := range f.order {
		invoices = append(invoices, *f.invoices[id])
	}
	return invoices, int64(len(invoices)), nil
}

func (f *fakeInvoiceRepo) ListPaidBetween(ctx context.Context, start, end time.Time) ([]entity.Invoice, error) {
	var paid []entity.Invoice
	for _, id := range f.order {
		inv := f.invoices[id]
		if inv.Status != enum.InvoiceStatusPaid {
			continue
		}
		if inv.Date.Before(start) || inv.Date.After(end) {
			continue
		}
		paid = append(paid, *inv)
	}
	return paid, nil
}

func (f *fakeInvoiceRepo) LatestNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	for i := len(f.order) - 1; i >= 0; i-- {
		inv := f.invoices[f.order[i]]
		if strings.HasPrefix(inv.InvoiceNumber, prefix) {
			return inv.InvoiceNumber, nil
		}
	}
	return "", nil
}

type fakePaymentRepo struct {
	payments []*entity.Payment
	invoices *fakeInvoiceRepo
}

func newFakePaymentRepo(invoices *fakeInvoiceRepo) *fakePaymentRepo {
	return &fakePaymentRepo{invoices: invoices}
}

func (f *fakePaymentRepo) CreateWithInvoiceStatus(ctx context.Context, payment *entity.Payment, invoiceStatus *enum.InvoiceStatus) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	f.payments = append(f.payments, payment)
	if invoiceStatus != nil {
		if inv := f.invoices.invoices[payment.InvoiceID]; inv != nil {
			inv.Status = *invoiceStatus
		}
	}
	return nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	for _, p := range f.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	for i, p := range f.payments {
		if p.ID == payment.ID {
			f.payments[i] = payment
		}
	}
	return nil
}

func (f *fakePaymentRepo) List(ctx context.Context, params *repository.PaymentFilterParams) ([]entity.Payment, int64, error) {
	payments := make([]entity.Payment, 0, len(f.payments))
	for _, p := range f.payments {
		payments = append(payments, *p)
	}
	return payments, int64(len(payments)), nil
}

func (f *fakePaymentRepo) SumCompletedByInvoice(ctx context.Context, invoiceID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range f.payments {
		if p.InvoiceID == invoiceID && p.Status == enum.PaymentStatusCompleted {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

func (f *fakePaymentRepo) CountByInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error) {
	var count int64
	for _, p := range f.payments {
		if p.InvoiceID == invoiceID {
			count++
		}
	}
	return count, nil
}

func (f *fakePaymentRepo) LatestNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	for i := len(f.payments) - 1; i >= 0; i-- {
		if strings.HasPrefix(f.payments[i].PaymentNumber, prefix) {
			return f.payments[i].PaymentNumber, nil
		}
	}
	return "", nil
}
