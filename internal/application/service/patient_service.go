package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/hospital-api/internal/domain/entity"
	"github.com/sangkips/hospital-api/internal/domain/repository"
	infraRepo "github.com/sangkips/hospital-api/internal/infrastructure/repository"
	"github.com/sangkips/hospital-api/pkg/apperror"
	"github.com/sangkips/hospital-api/pkg/pagination"
	"github.com/sangkips/hospital-api/pkg/utils"
)

// PatientService handles patient-related operations
type PatientService struct {
	patientRepo repository.PatientRepository
}

// NewPatientService creates a new patient service
func NewPatientService(patientRepo repository.PatientRepository) *PatientService {
	return &PatientService{patientRepo: patientRepo}
}

// CreatePatientInput represents the create patient input
type CreatePatientInput struct {
	FirstName     string
	LastName      string
	DateOfBirth   *time.Time
	Gender        *string
	BloodGroup    *string
	Phone         *string
	Email         *string
	Address       *string
	EmergencyName *string
	EmergencyTel  *string
	CreatedByID   *uuid.UUID
}

// CreatePatient registers a new patient and assigns an MRN
func (s *PatientService) CreatePatient(ctx context.Context, input *CreatePatientInput) (*entity.Patient, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	patient := &entity.Patient{
		TenantID:      tenantID,
		MRN:           utils.GenerateMRN(),
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		DateOfBirth:   input.DateOfBirth,
		Gender:        input.Gender,
		BloodGroup:    input.BloodGroup,
		Phone:         input.Phone,
		Email:         input.Email,
		Address:       input.Address,
		EmergencyName: input.EmergencyName,
		EmergencyTel:  input.EmergencyTel,
		CreatedByID:   input.CreatedByID,
	}

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}

	return patient, nil
}

// GetPatient retrieves a patient by ID
func (s *PatientService) GetPatient(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}
	return patient, nil
}

// GetPatientByMRN retrieves a patient by medical record number
func (s *PatientService) GetPatientByMRN(ctx context.Context, mrn string) (*entity.Patient, error) {
	patient, err := s.patientRepo.GetByMRN(ctx, mrn)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}
	return patient, nil
}

// ListPatients lists patients with optional free-text search
func (s *PatientService) ListPatients(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Patient], error) {
	patients, total, err := s.patientRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(patients, pag), nil
}

// UpdatePatientInput represents the update patient input
type UpdatePatientInput struct {
	FirstName     *string
	LastName      *string
	DateOfBirth   *time.Time
	Gender        *string
	BloodGroup    *string
	Phone         *string
	Email         *string
	Address       *string
	EmergencyName *string
	EmergencyTel  *string
	UpdatedByID   *uuid.UUID
}

// UpdatePatient updates a patient's demographics. The MRN never changes.
func (s *PatientService) UpdatePatient(ctx context.Context, id uuid.UUID, input *UpdatePatientInput) (*entity.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}

	if input.FirstName != nil {
		patient.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		patient.LastName = *input.LastName
	}
	if input.DateOfBirth != nil {
		patient.DateOfBirth = input.DateOfBirth
	}
	if input.Gender != nil {
		patient.Gender = input.Gender
	}
	if input.BloodGroup != nil {
		patient.BloodGroup = input.BloodGroup
	}
	if input.Phone != nil {
		patient.Phone = input.Phone
	}
	if input.Email != nil {
		patient.Email = input.Email
	}
	if input.Address != nil {
		patient.Address = input.Address
	}
	if input.EmergencyName != nil {
		patient.EmergencyName = input.EmergencyName
	}
	if input.EmergencyTel != nil {
		patient.EmergencyTel = input.EmergencyTel
	}
	if input.UpdatedByID != nil {
		patient.UpdatedByID = input.UpdatedByID
	}

	if err := s.patientRepo.Update(ctx, patient); err != nil {
		return nil, err
	}

	return patient, nil
}

// DeletePatient soft-deletes a patient record
func (s *PatientService) DeletePatient(ctx context.Context, id uuid.UUID) error {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if patient == nil {
		return apperror.NewNotFoundError("Patient")
	}

	return s.patientRepo.Delete(ctx, id)
}
