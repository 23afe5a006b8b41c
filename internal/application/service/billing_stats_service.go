package service

import (
	"context"
	"log"
	"time"

	"github.com/sangkips/hospital-api/internal/domain/entity"
	"github.com/sangkips/hospital-api/internal/domain/enum"
	"github.com/sangkips/hospital-api/internal/domain/repository"
	"github.com/sangkips/hospital-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// BillingStatsService aggregates billing dashboard figures
type BillingStatsService struct {
	statsRepo   repository.BillingStatsRepository
	invoiceRepo repository.InvoiceRepository
}

// NewBillingStatsService creates a new billing stats service
func NewBillingStatsService(
	statsRepo repository.BillingStatsRepository,
	invoiceRepo repository.InvoiceRepository,
) *BillingStatsService {
	return &BillingStatsService{
		statsRepo:   statsRepo,
		invoiceRepo: invoiceRepo,
	}
}

// MethodRevenue holds completed-payment totals for one payment method
type MethodRevenue struct {
	Method enum.PaymentMethod `json:"method"`
	Amount decimal.Decimal    `json:"amount"`
}

// BillingStats is the dashboard snapshot for the current tenant
type BillingStats struct {
	TotalInvoices         int64           `json:"total_invoices"`
	PendingInvoices       int64           `json:"pending_invoices"`
	PaidInvoices          int64           `json:"paid_invoices"`
	PartiallyPaidInvoices int64           `json:"partially_paid_invoices"`
	RevenueToday          decimal.Decimal `json:"revenue_today"`
	RevenueThisMonth      decimal.Decimal `json:"revenue_this_month"`
	InvoicesToday         int64           `json:"invoices_today"`
	InvoicesThisMonth     int64           `json:"invoices_this_month"`
	PaymentsByMethod      []MethodRevenue `json:"payments_by_method"`
}

// GetBillingStats builds the billing dashboard snapshot. Today / this-month
// windows use local midnight and first-of-month boundaries.
func (s *BillingStatsService) GetBillingStats(ctx context.Context) (*BillingStats, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &BillingStats{}

	total, err := s.statsRepo.CountInvoices(ctx, nil)
	if err != nil {
		log.Printf("Error counting invoices: %v", err)
		return nil, apperror.NewBadRequestError("Failed to fetch billing stats")
	}
	stats.TotalInvoices = total

	statusCounts := []struct {
		status enum.InvoiceStatus
		dest   *int64
	}{
		{enum.InvoiceStatusPending, &stats.PendingInvoices},
		{enum.InvoiceStatusPaid, &stats.PaidInvoices},
		{enum.InvoiceStatusPartiallyPaid, &stats.PartiallyPaidInvoices},
	}
	for _, sc := range statusCounts {
		status := sc.status
		count, err := s.statsRepo.CountInvoices(ctx, &status)
		if err != nil {
			log.Printf("Error counting %s invoices: %v", status, err)
			return nil, apperror.NewBadRequestError("Failed to fetch billing stats")
		}
		*sc.dest = count
	}

	if stats.RevenueToday, err = s.statsRepo.SumPaidRevenueSince(ctx, startOfDay); err != nil {
		log.Printf("Error summing today's revenue: %v", err)
		return nil, apperror.NewBadRequestError("Failed to fetch billing stats")
	}
	if stats.RevenueThisMonth, err = s.statsRepo.SumPaidRevenueSince(ctx, startOfMonth); err != nil {
		log.Printf("Error summing this month's revenue: %v", err)
		return nil, apperror.NewBadRequestError("Failed to fetch billing stats")
	}
	if stats.InvoicesToday, err = s.statsRepo.CountInvoicesSince(ctx, startOfDay); err != nil {
		log.Printf("Error counting today's invoices: %v", err)
		return nil, apperror.NewBadRequestError("Failed to fetch billing stats")
	}
	if stats.InvoicesThisMonth, err = s.statsRepo.CountInvoicesSince(ctx, startOfMonth); err != nil {
		log.Printf("Error counting this month's invoices: %v", err)
		return nil, apperror.NewBadRequestError("Failed to fetch billing stats")
	}

	breakdown, err := s.statsRepo.CompletedPaymentsByMethod(ctx, startOfMonth)
	if err != nil {
		log.Printf("Error grouping payments by method: %v", err)
		return nil, apperror.NewBadRequestError("Failed to fetch billing stats")
	}
	stats.PaymentsByMethod = make([]MethodRevenue, 0, len(breakdown))
	for _, b := range breakdown {
		stats.PaymentsByMethod = append(stats.PaymentsByMethod, MethodRevenue{
			Method: b.Method,
			Amount: b.Amount,
		})
	}

	return stats, nil
}

// RevenueReport lists PAID invoices for a date range with aggregates
type RevenueReport struct {
	StartDate     time.Time        `json:"start_date"`
	EndDate       time.Time        `json:"end_date"`
	InvoiceCount  int              `json:"invoice_count"`
	TotalRevenue  decimal.Decimal  `json:"total_revenue"`
	TotalTax      decimal.Decimal  `json:"total_tax"`
	TotalDiscount decimal.Decimal  `json:"total_discount"`
	Invoices      []entity.Invoice `json:"invoices"`
}

// GetRevenueReport returns all PAID invoices dated within [start, end]
// plus revenue, tax and discount totals. The range is inclusive.
func (s *BillingStatsService) GetRevenueReport(ctx context.Context, start, end time.Time) (*RevenueReport, error) {
	if end.Before(start) {
		return nil, apperror.NewBadRequestError("End date must not be before start date")
	}

	invoices, err := s.invoiceRepo.ListPaidBetween(ctx, start, end)
	if err != nil {
		log.Printf("Error building revenue report: %v", err)
		return nil, apperror.NewBadRequestError("Failed to fetch revenue report")
	}

	report := &RevenueReport{
		StartDate:     start,
		EndDate:       end,
		InvoiceCount:  len(invoices),
		TotalRevenue:  decimal.Zero,
		TotalTax:      decimal.Zero,
		TotalDiscount: decimal.Zero,
		Invoices:      invoices,
	}

	for _, invoice := range invoices {
		report.TotalRevenue = report.TotalRevenue.Add(invoice.TotalAmount)
		report.TotalTax = report.TotalTax.Add(invoice.TaxAmount)
		report.TotalDiscount = report.TotalDiscount.Add(invoice.DiscountAmount)
	}

	return report, nil
}
