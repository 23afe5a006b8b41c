package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	infraRepo "github.com/sangkips/hospital-api/internal/infrastructure/repository"
	"github.com/sangkips/hospital-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePatientAssignsMRN(t *testing.T) {
	patientRepo := newFakePatientRepo()
	svc := NewPatientService(patientRepo)

	ctx := infraRepo.WithTenant(context.Background(), uuid.New())

	patient, err := svc.CreatePatient(ctx, &CreatePatientInput{
		FirstName: "Asha",
		LastName:  "Nair",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(patient.MRN, "MRN-"), "mrn %s", patient.MRN)
	assert.Len(t, patient.MRN, 12)

	found, err := svc.GetPatientByMRN(ctx, patient.MRN)
	require.NoError(t, err)
	assert.Equal(t, patient.ID, found.ID)
}

func TestCreatePatientRequiresTenant(t *testing.T) {
	svc := NewPatientService(newFakePatientRepo())

	_, err := svc.CreatePatient(context.Background(), &CreatePatientInput{
		FirstName: "Asha",
		LastName:  "Nair",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestUpdatePatientNeverChangesMRN(t *testing.T) {
	patientRepo := newFakePatientRepo()
	svc := NewPatientService(patientRepo)

	ctx := infraRepo.WithTenant(context.Background(), uuid.New())

	patient, err := svc.CreatePatient(ctx, &CreatePatientInput{
		FirstName: "Asha",
		LastName:  "Nair",
	})
	require.NoError(t, err)
	originalMRN := patient.MRN

	newName := "Aisha"
	updated, err := svc.UpdatePatient(ctx, patient.ID, &UpdatePatientInput{
		FirstName: &newName,
	})
	require.NoError(t, err)

	assert.Equal(t, "Aisha", updated.FirstName)
	assert.Equal(t, originalMRN, updated.MRN)
}

func TestGetPatientNotFound(t *testing.T) {
	svc := NewPatientService(newFakePatientRepo())

	_, err := svc.GetPatient(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestGetPatientByMRNNotFound(t *testing.T) {
	svc := NewPatientService(newFakePatientRepo())

	_, err := svc.GetPatientByMRN(context.Background(), "MRN-DEADBEEF")
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
