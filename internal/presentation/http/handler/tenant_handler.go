package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/hospital-api/internal/application/service"
	"github.com/sangkips/hospital-api/internal/domain/entity"
	"github.com/sangkips/hospital-api/internal/presentation/http/dto/response"
	"github.com/sangkips/hospital-api/internal/presentation/http/middleware"
	"github.com/sangkips/hospital-api/pkg/utils"
)

// TenantHandler handles hospital tenant HTTP requests
type TenantHandler struct {
	tenantService *service.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *service.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// Create registers a new hospital tenant owned by the current user
func (h *TenantHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
		Slug string `json:"slug"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), &service.CreateTenantInput{
		Name:    req.Name,
		Slug:    slug,
		OwnerID: *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tenant created successfully", gin.H{
		"tenant": tenant,
	})
}

// GetCurrentTenant returns the current user's active tenant
func (h *TenantHandler) GetCurrentTenant(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	if tenantID == uuid.Nil {
		response.BadRequest(c, "No active tenant")
		return
	}

	tenant, err := h.tenantService.GetTenant(c.Request.Context(), tenantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tenant retrieved successfully", gin.H{
		"tenant": tenant,
	})
}

// ListTenants returns the tenants the current user belongs to
func (h *TenantHandler) ListTenants(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	tenants, err := h.tenantService.GetUserTenants(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tenants retrieved successfully", gin.H{
		"tenants": tenants,
	})
}

// UpdateTenant updates the current tenant's name or settings
func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	if tenantID == uuid.Nil {
		response.BadRequest(c, "No active tenant")
		return
	}

	var req struct {
		Name     string                 `json:"name"`
		Settings *entity.TenantSettings `json:"settings"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tenant, err := h.tenantService.UpdateTenant(c.Request.Context(), &service.UpdateTenantInput{
		ID:       tenantID,
		Name:     req.Name,
		Settings: req.Settings,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tenant updated successfully", gin.H{
		"tenant": tenant,
	})
}

// ListMembers returns all members of the current tenant
func (h *TenantHandler) ListMembers(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	if tenantID == uuid.Nil {
		response.BadRequest(c, "No active tenant")
		return
	}

	members, err := h.tenantService.GetTenantMembers(c.Request.Context(), tenantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Members retrieved successfully", gin.H{
		"members": members,
	})
}

// InviteMember adds a user to the current tenant
func (h *TenantHandler) InviteMember(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	if tenantID == uuid.Nil {
		response.BadRequest(c, "No active tenant")
		return
	}

	var req struct {
		UserID uuid.UUID `json:"user_id" binding:"required"`
		Role   string    `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.tenantService.InviteMember(c.Request.Context(), &service.InviteMemberInput{
		TenantID: tenantID,
		UserID:   req.UserID,
		Role:     req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Member added successfully", nil)
}

// RemoveMember removes a user from the current tenant
func (h *TenantHandler) RemoveMember(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	if tenantID == uuid.Nil {
		response.BadRequest(c, "No active tenant")
		return
	}

	memberID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.tenantService.RemoveMember(c.Request.Context(), tenantID, memberID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
