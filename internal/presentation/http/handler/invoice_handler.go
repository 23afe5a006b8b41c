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

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles creating an invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		PatientID      uuid.UUID       `json:"patient_id" binding:"required"`
		Date           *time.Time      `json:"date"`
		DueDate        *time.Time      `json:"due_date"`
		DiscountAmount decimal.Decimal `json:"discount_amount"`
		Notes          *string         `json:"notes"`
		Items          []struct {
			ItemType    enum.InvoiceItemType `json:"item_type"`
			ItemID      *uuid.UUID           `json:"item_id"`
			Description string               `json:"description" binding:"required"`
			Quantity    int                  `json:"quantity" binding:"required"`
			UnitPrice   decimal.Decimal      `json:"unit_price" binding:"required"`
			Discount    decimal.Decimal      `json:"discount"`
			TaxRate     decimal.Decimal      `json:"tax_rate"`
		} `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.InvoiceItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.InvoiceItemInput{
			ItemType:    item.ItemType,
			ItemID:      item.ItemID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			TaxRate:     item.TaxRate,
		}
	}

	input := &service.CreateInvoiceInput{
		PatientID:      req.PatientID,
		DiscountAmount: req.DiscountAmount,
		Notes:          req.Notes,
		CreatedByID:    userID,
		Items:          items,
	}
	if req.Date != nil {
		input.Date = *req.Date
	}
	if req.DueDate != nil {
		input.DueDate = *req.DueDate
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Get handles retrieving a single invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// List handles listing invoices with filters
func (h *InvoiceHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	params := &repository.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if status, ok := enum.ParseInvoiceStatus(statusStr); ok {
			params.Status = &status
		}
	}

	if patientIDStr := c.Query("patient_id"); patientIDStr != "" {
		if patientID, err := uuid.Parse(patientIDStr); err == nil {
			params.PatientID = &patientID
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

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Update handles updating an invoice's mutable fields
func (h *InvoiceHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req struct {
		Status         *enum.InvoiceStatus `json:"status"`
		DueDate        *time.Time          `json:"due_date"`
		DiscountAmount *decimal.Decimal    `json:"discount_amount"`
		Notes          *string             `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), id, &service.UpdateInvoiceInput{
		Status:         req.Status,
		DueDate:        req.DueDate,
		DiscountAmount: req.DiscountAmount,
		Notes:          req.Notes,
		UpdatedByID:    userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// Cancel handles cancelling an invoice
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.CancelInvoice(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice cancelled successfully", invoice)
}
