package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/hospital-api/internal/application/service"
	"github.com/sangkips/hospital-api/internal/presentation/http/dto/response"
)

// BillingHandler serves billing stats and revenue reports
type BillingHandler struct {
	statsService *service.BillingStatsService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(statsService *service.BillingStatsService) *BillingHandler {
	return &BillingHandler{statsService: statsService}
}

// Stats handles the billing dashboard snapshot
func (h *BillingHandler) Stats(c *gin.Context) {
	stats, err := h.statsService.GetBillingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Billing stats retrieved successfully", stats)
}

// RevenueReport handles the PAID-invoice revenue report for a date range
func (h *BillingHandler) RevenueReport(c *gin.Context) {
	startDateStr := c.Query("start_date")
	endDateStr := c.Query("end_date")
	if startDateStr == "" || endDateStr == "" {
		response.BadRequest(c, "start_date and end_date are required")
		return
	}

	startDate, err := time.Parse("2006-01-02", startDateStr)
	if err != nil {
		response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	endDate, err := time.Parse("2006-01-02", endDateStr)
	if err != nil {
		response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
		return
	}

	// Make the end of the range inclusive for timestamped invoice dates
	endDate = endDate.Add(24*time.Hour - time.Nanosecond)

	report, err := h.statsService.GetRevenueReport(c.Request.Context(), startDate, endDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Revenue report retrieved successfully", report)
}
