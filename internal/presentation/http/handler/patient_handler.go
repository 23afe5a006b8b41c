package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/hospital-api/internal/application/service"
	"github.com/sangkips/hospital-api/internal/presentation/http/dto/response"
	"github.com/sangkips/hospital-api/pkg/pagination"
)

// PatientHandler handles patient-related HTTP requests
type PatientHandler struct {
	patientService *service.PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(patientService *service.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

type patientRequest struct {
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	Gender        *string    `json:"gender"`
	BloodGroup    *string    `json:"blood_group"`
	Phone         *string    `json:"phone"`
	Email         *string    `json:"email"`
	Address       *string    `json:"address"`
	EmergencyName *string    `json:"emergency_name"`
	EmergencyTel  *string    `json:"emergency_tel"`
}

// Create handles registering a patient
func (h *PatientHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req patientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		response.BadRequest(c, "First name and last name are required")
		return
	}

	patient, err := h.patientService.CreatePatient(c.Request.Context(), &service.CreatePatientInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DateOfBirth:   req.DateOfBirth,
		Gender:        req.Gender,
		BloodGroup:    req.BloodGroup,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		EmergencyName: req.EmergencyName,
		EmergencyTel:  req.EmergencyTel,
		CreatedByID:   userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Patient registered successfully", patient)
}

// Get handles retrieving a patient by ID
func (h *PatientHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	patient, err := h.patientService.GetPatient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Patient retrieved successfully", patient)
}

// GetByMRN handles retrieving a patient by medical record number
func (h *PatientHandler) GetByMRN(c *gin.Context) {
	mrn := c.Param("mrn")
	if mrn == "" {
		response.BadRequest(c, "MRN is required")
		return
	}

	patient, err := h.patientService.GetPatientByMRN(c.Request.Context(), mrn)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Patient retrieved successfully", patient)
}

// List handles listing patients
func (h *PatientHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	search := c.Query("search")

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.patientService.ListPatients(c.Request.Context(), params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Patients retrieved successfully", result)
}

// Update handles updating a patient's demographics
func (h *PatientHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	var req struct {
		FirstName     *string    `json:"first_name"`
		LastName      *string    `json:"last_name"`
		DateOfBirth   *time.Time `json:"date_of_birth"`
		Gender        *string    `json:"gender"`
		BloodGroup    *string    `json:"blood_group"`
		Phone         *string    `json:"phone"`
		Email         *string    `json:"email"`
		Address       *string    `json:"address"`
		EmergencyName *string    `json:"emergency_name"`
		EmergencyTel  *string    `json:"emergency_tel"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	patient, err := h.patientService.UpdatePatient(c.Request.Context(), id, &service.UpdatePatientInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DateOfBirth:   req.DateOfBirth,
		Gender:        req.Gender,
		BloodGroup:    req.BloodGroup,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		EmergencyName: req.EmergencyName,
		EmergencyTel:  req.EmergencyTel,
		UpdatedByID:   userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Patient updated successfully", patient)
}

// Delete handles removing a patient record
func (h *PatientHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	if err := h.patientService.DeletePatient(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
