package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/hospital-api/internal/domain/entity"
	"github.com/sangkips/hospital-api/internal/domain/enum"
	"github.com/sangkips/hospital-api/internal/domain/repository"
	infraRepo "github.com/sangkips/hospital-api/internal/infrastructure/repository"
	"github.com/sangkips/hospital-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStatsRepo computes aggregates over the invoice and payment fakes the
// same way the SQL queries do.
type fakeStatsRepo struct {
	invoices *fakeInvoiceRepo
	payments *fakePaymentRepo
}

func (f *fakeStatsRepo) CountInvoices(ctx context.Context, status *enum.InvoiceStatus) (int64, error) {
	var count int64
	for _, inv := range f.invoices.invoices {
		if status == nil || inv.Status == *status {
			count++
		}
	}
	return count, nil
}

func (f *fakeStatsRepo) CountInvoicesSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	for _, inv := range f.invoices.invoices {
		if !inv.Date.Before(since) {
			count++
		}
	}
	return count, nil
}

func (f *fakeStatsRepo) SumPaidRevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, inv := range f.invoices.invoices {
		if inv.Status == enum.InvoiceStatusPaid && !inv.Date.Before(since) {
			sum = sum.Add(inv.TotalAmount)
		}
	}
	return sum, nil
}

func (f *fakeStatsRepo) CompletedPaymentsByMethod(ctx context.Context, since time.Time) ([]repository.MethodBreakdownResult, error) {
	totals := make(map[enum.PaymentMethod]decimal.Decimal)
	for _, p := range f.payments.payments {
		if p.Status != enum.PaymentStatusCompleted || p.PaymentDate.Before(since) {
			continue
		}
		totals[p.PaymentMethod] = totals[p.PaymentMethod].Add(p.Amount)
	}
	results := make([]repository.MethodBreakdownResult, 0, len(totals))
	for method, amount := range totals {
		results = append(results, repository.MethodBreakdownResult{Method: method, Amount: amount})
	}
	return results, nil
}

func seedInvoice(t *testing.T, repo *fakeInvoiceRepo, ctx context.Context, status enum.InvoiceStatus, total decimal.Decimal, date time.Time) *entity.Invoice {
	t.Helper()
	invoice := &entity.Invoice{
		ID:             uuid.New(),
		PatientID:      uuid.New(),
		Date:           date,
		Status:         status,
		SubTotal:       total,
		TaxAmount:      decimal.Zero,
		DiscountAmount: decimal.Zero,
		TotalAmount:    total,
	}
	require.NoError(t, repo.CreateWithItems(ctx, invoice, nil))
	return invoice
}

func TestGetBillingStats(t *testing.T) {
	invoiceRepo := newFakeInvoiceRepo()
	paymentRepo := newFakePaymentRepo(invoiceRepo)
	statsRepo := &fakeStatsRepo{invoices: invoiceRepo, payments: paymentRepo}

	ctx := infraRepo.WithTenant(context.Background(), uuid.New())
	now := time.Now()

	paid := seedInvoice(t, invoiceRepo, ctx, enum.InvoiceStatusPaid, decimal.NewFromInt(4076), now)
	seedInvoice(t, invoiceRepo, ctx, enum.InvoiceStatusPending, decimal.NewFromInt(1000), now)
	seedInvoice(t, invoiceRepo, ctx, enum.InvoiceStatusPartiallyPaid, decimal.NewFromInt(2000), now.AddDate(0, -2, 0))

	paymentRepo.payments = append(paymentRepo.payments,
		&entity.Payment{
			ID:            uuid.New(),
			InvoiceID:     paid.ID,
			Amount:        decimal.NewFromInt(4076),
			PaymentDate:   now,
			PaymentMethod: enum.PaymentMethodCash,
			Status:        enum.PaymentStatusCompleted,
		},
		&entity.Payment{
			ID:            uuid.New(),
			InvoiceID:     paid.ID,
			Amount:        decimal.NewFromInt(500),
			PaymentDate:   now,
			PaymentMethod: enum.PaymentMethodUPI,
			Status:        enum.PaymentStatusFailed,
		},
	)

	svc := NewBillingStatsService(statsRepo, invoiceRepo)
	stats, err := svc.GetBillingStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalInvoices)
	assert.Equal(t, int64(1), stats.PendingInvoices)
	assert.Equal(t, int64(1), stats.PaidInvoices)
	assert.Equal(t, int64(1), stats.PartiallyPaidInvoices)
	assert.Equal(t, int64(2), stats.InvoicesToday)
	assert.Equal(t, int64(2), stats.InvoicesThisMonth)
	assert.True(t, stats.RevenueToday.Equal(decimal.NewFromInt(4076)))
	assert.True(t, stats.RevenueThisMonth.Equal(decimal.NewFromInt(4076)))

	// Failed payments stay out of the method breakdown
	require.Len(t, stats.PaymentsByMethod, 1)
	assert.Equal(t, enum.PaymentMethodCash, stats.PaymentsByMethod[0].Method)
	assert.True(t, stats.PaymentsByMethod[0].Amount.Equal(decimal.NewFromInt(4076)))
}

func TestGetRevenueReport(t *testing.T) {
	invoiceRepo := newFakeInvoiceRepo()
	paymentRepo := newFakePaymentRepo(invoiceRepo)
	statsRepo := &fakeStatsRepo{invoices: invoiceRepo, payments: paymentRepo}

	ctx := infraRepo.WithTenant(context.Background(), uuid.New())
	now := time.Now()

	inRange := seedInvoice(t, invoiceRepo, ctx, enum.InvoiceStatusPaid, decimal.NewFromInt(4076), now)
	inRange.TaxAmount = decimal.NewFromInt(576)
	inRange.DiscountAmount = decimal.NewFromInt(100)
	seedInvoice(t, invoiceRepo, ctx, enum.InvoiceStatusPaid, decimal.NewFromInt(900), now.AddDate(0, -3, 0))
	seedInvoice(t, invoiceRepo, ctx, enum.InvoiceStatusPending, decimal.NewFromInt(1000), now)

	svc := NewBillingStatsService(statsRepo, invoiceRepo)
	report, err := svc.GetRevenueReport(ctx, now.AddDate(0, 0, -7), now.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, 1, report.InvoiceCount)
	assert.True(t, report.TotalRevenue.Equal(decimal.NewFromInt(4076)))
	assert.True(t, report.TotalTax.Equal(decimal.NewFromInt(576)))
	assert.True(t, report.TotalDiscount.Equal(decimal.NewFromInt(100)))
}

func TestGetRevenueReportRejectsInvertedRange(t *testing.T) {
	invoiceRepo := newFakeInvoiceRepo()
	paymentRepo := newFakePaymentRepo(invoiceRepo)
	statsRepo := &fakeStatsRepo{invoices: invoiceRepo, payments: paymentRepo}

	svc := NewBillingStatsService(statsRepo, invoiceRepo)

	now := time.Now()
	_, err := svc.GetRevenueReport(context.Background(), now, now.AddDate(0, 0, -1))
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}
