package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/hospital-api/internal/domain/entity"
	"github.com/sangkips/hospital-api/pkg/pagination"
)

// PatientRepository defines the interface for patient data operations
type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error)
	GetByMRN(ctx context.Context, mrn string) (*entity.Patient, error)
	Update(ctx context.Context, patient *entity.Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Patient, int64, error)
}
