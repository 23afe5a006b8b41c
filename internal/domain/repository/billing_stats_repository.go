package repository

import (
	"context"
	"time"

	"github.com/sangkips/hospital-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// MethodBreakdownResult holds completed-payment totals for one payment method
type MethodBreakdownResult struct {
	Method enum.PaymentMethod `json:"method"`
	Amount decimal.Decimal    `json:"amount"`
}

// BillingStatsRepository defines aggregate queries backing the billing dashboard
type BillingStatsRepository interface {
	// CountInvoices counts all invoices for the tenant; status narrows the
	// count when non-nil
	CountInvoices(ctx context.Context, status *enum.InvoiceStatus) (int64, error)

	// CountInvoicesSince counts invoices of any status with date >= since
	CountInvoicesSince(ctx context.Context, since time.Time) (int64, error)

	// SumPaidRevenueSince sums totalAmount over PAID invoices with date >= since
	SumPaidRevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error)

	// CompletedPaymentsByMethod groups completed-payment amounts by method
	// for payments dated >= since
	CompletedPaymentsByMethod(ctx context.Context, since time.Time) ([]MethodBreakdownResult, error)
}
