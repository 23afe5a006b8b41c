package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/hospital-api/internal/domain/entity"
	"github.com/sangkips/hospital-api/internal/domain/enum"
	domainRepo "github.com/sangkips/hospital-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreateWithInvoiceStatus(ctx context.Context, payment *entity.Payment, invoiceStatus *enum.InvoiceStatus) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		if invoiceStatus != nil {
			if err := tx.Model(&entity.Invoice{}).
				Where("id = ? AND tenant_id = ?", payment.InvoiceID, payment.TenantID).
				Update("status", *invoiceStatus).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Invoice").
		Preload("Invoice.Patient").
		First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).Save(payment).Error
}

func (r *paymentRepository) List(ctx context.Context, params *domainRepo.PaymentFilterParams) ([]entity.Payment, int64, error) {
	var payments []entity.Payment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Payment{}).Scopes(TenantScope(ctx))

	if params.InvoiceID != nil {
		query = query.Where("invoice_id = ?", *params.InvoiceID)
	}

	if params.Method != nil {
		query = query.Where("payment_method = ?", *params.Method)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.StartDate != nil {
		query = query.Where("payment_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("payment_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Invoice").
		Order("payment_date DESC").
		Find(&payments).Error

	return payments, total, err
}

func (r *paymentRepository) SumCompletedByInvoice(ctx context.Context, invoiceID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&entity.Payment{}).
		Scopes(TenantScope(ctx)).
		Where("invoice_id = ? AND status = ?", invoiceID, enum.PaymentStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *paymentRepository) CountByInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Payment{}).
		Scopes(TenantScope(ctx)).
		Where("invoice_id = ?", invoiceID).
		Count(&count).Error
	return count, err
}

func (r *paymentRepository) LatestNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	var payment entity.Payment
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Where("payment_number LIKE ?", prefix+"%").
		Order("created_at DESC").
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return payment.PaymentNumber, nil
}
