package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/hospital-api/internal/domain/entity"
	domainRepo "github.com/sangkips/hospital-api/internal/domain/repository"
	"github.com/sangkips/hospital-api/pkg/pagination"
	"gorm.io/gorm"
)

type patientRepository struct {
	db *gorm.DB
}

// NewPatientRepository creates a new patient repository
func NewPatientRepository(db *gorm.DB) domainRepo.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&patient, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) GetByMRN(ctx context.Context, mrn string) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&patient, "mrn = ?", mrn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *entity.Patient) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).Save(patient).Error
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Delete(&entity.Patient{}, "id = ?", id).Error
}

func (r *patientRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Patient, int64, error) {
	var patients []entity.Patient
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Patient{}).Scopes(TenantScope(ctx))

	if search != "" {
		searchPattern := "%" + search + "%"
		query = query.Where(
			"mrn ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ? OR phone ILIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&patients).Error

	return patients, total, err
}
