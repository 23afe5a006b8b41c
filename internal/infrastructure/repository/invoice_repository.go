package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/hospital-api/internal/domain/entity"
	"github.com/sangkips/hospital-api/internal/domain/enum"
	domainRepo "github.com/sangkips/hospital-api/internal/domain/repository"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) CreateWithItems(ctx context.Context, invoice *entity.Invoice, items []entity.InvoiceItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invoice).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].InvoiceID = invoice.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Patient").
		Preload("Items").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date DESC")
		}).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).Save(invoice).Error
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{}).Scopes(TenantScope(ctx))

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.
			Joins("LEFT JOIN patients ON patients.id = invoices.patient_id").
			Where("invoices.invoice_number ILIKE ? OR patients.first_name ILIKE ? OR patients.last_name ILIKE ?",
				pattern, pattern, pattern)
	}

	if params.Status != nil {
		query = query.Where("invoices.status = ?", *params.Status)
	}

	if params.PatientID != nil {
		query = query.Where("invoices.patient_id = ?", *params.PatientID)
	}

	if params.StartDate != nil {
		query = query.Where("invoices.date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("invoices.date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Patient").
		Preload("Items").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date DESC")
		}).
		Order("invoices.created_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) ListPaidBetween(ctx context.Context, start, end time.Time) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Where("status = ?", enum.InvoiceStatusPaid).
		Where("date >= ? AND date <= ?", start, end).
		Preload("Patient").
		Preload("Items").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date DESC")
		}).
		Order("date ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) LatestNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Where("invoice_number LIKE ?", prefix+"%").
		Order("created_at DESC").
		First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return invoice.InvoiceNumber, nil
}
