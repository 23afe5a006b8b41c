package repository

import (
	"context"
	"time"

	"github.com/sangkips/hospital-api/internal/domain/enum"
	domainRepo "github.com/sangkips/hospital-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type billingStatsRepository struct {
	db *gorm.DB
}

// NewBillingStatsRepository creates a new billing stats repository
func NewBillingStatsRepository(db *gorm.DB) domainRepo.BillingStatsRepository {
	return &billingStatsRepository{db: db}
}

func (r *billingStatsRepository) CountInvoices(ctx context.Context, status *enum.InvoiceStatus) (int64, error) {
	tenantID, err := RequireTenantID(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	query := `SELECT COUNT(*) FROM invoices WHERE tenant_id = ? AND deleted_at IS NULL`
	args := []interface{}{tenantID}
	if status != nil {
		query += ` AND status = ?`
		args = append(args, *status)
	}

	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *billingStatsRepository) CountInvoicesSince(ctx context.Context, since time.Time) (int64, error) {
	tenantID, err := RequireTenantID(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM invoices
		WHERE tenant_id = ? AND date >= ? AND deleted_at IS NULL
	`, tenantID, since).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *billingStatsRepository) SumPaidRevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	tenantID, err := RequireTenantID(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	var revenue decimal.Decimal
	err = r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_amount), 0)
		FROM invoices
		WHERE tenant_id = ? AND status = ? AND date >= ? AND deleted_at IS NULL
	`, tenantID, enum.InvoiceStatusPaid, since).Scan(&revenue).Error
	if err != nil {
		return decimal.Zero, err
	}
	return revenue, nil
}

func (r *billingStatsRepository) CompletedPaymentsByMethod(ctx context.Context, since time.Time) ([]domainRepo.MethodBreakdownResult, error) {
	tenantID, err := RequireTenantID(ctx)
	if err != nil {
		return nil, err
	}

	var results []domainRepo.MethodBreakdownResult
	err = r.db.WithContext(ctx).Raw(`
		SELECT
			payment_method as method,
			COALESCE(SUM(amount), 0) as amount
		FROM payments
		WHERE tenant_id = ? AND status = ? AND payment_date >= ? AND deleted_at IS NULL
		GROUP BY payment_method
		ORDER BY amount DESC
	`, tenantID, enum.PaymentStatusCompleted, since).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}
