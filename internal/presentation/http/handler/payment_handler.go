package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/hospital-api/internal/application/service"
	"github.com/sangkips/hospital-api/internal/domain/enum"
	"github.com/sangkips/hospital-api/internal/domain/repository"
	"github.com/sangkips/hospital-api/internal/presentation/http/dto/response"
	"github.com/sangkips/hospital-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Create handles recording a payment against an invoice
func (h *PaymentHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		InvoiceID       uuid.UUID          `json:"invoice_id" binding:"required"`
		Amount          decimal.Decimal    `json:"amount" binding:"required"`
		PaymentDate     *time.Time         `json:"payment_date"`
		PaymentMethod   enum.PaymentMethod `json:"payment_method"`
		ReferenceNumber *string            `json:"reference_number"`
		Notes           *string            `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreatePaymentInput{
		InvoiceID:       req.InvoiceID,
		Amount:          req.Amount,
		PaymentMethod:   req.PaymentMethod,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
		CreatedByID:     userID,
	}
	if req.PaymentDate != nil {
		input.PaymentDate = *req.PaymentDate
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}

// Get handles retrieving a single payment
func (h *PaymentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment retrieved successfully", payment)
}

// List handles listing payments with filters
func (h *PaymentHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	params := &repository.PaymentFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
	}

	if invoiceIDStr := c.Query("invoice_id"); invoiceIDStr != "" {
		if invoiceID, err := uuid.Parse(invoiceIDStr); err == nil {
			params.InvoiceID = &invoiceID
		}
	}

	if methodStr := c.Query("payment_method"); methodStr != "" {
		if method, ok := enum.ParsePaymentMethod(methodStr); ok {
			params.Method = &method
		}
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if status, ok := enum.ParsePaymentStatus(statusStr); ok {
			params.Status = &status
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.paymentService.ListPayments(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Payments retrieved successfully", result)
}

// Update handles updating a payment's status or notes
func (h *PaymentHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	var req struct {
		Status *enum.PaymentStatus `json:"status"`
		Notes  *string             `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	payment, err := h.paymentService.UpdatePayment(c.Request.Context(), id, &service.UpdatePaymentInput{
		Status:      req.Status,
		Notes:       req.Notes,
		UpdatedByID: userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment updated successfully", payment)
}
