package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/hospital-api/internal/domain/entity"
)

// TenantRepository defines the interface for tenant data operations
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error)
	Update(ctx context.Context, tenant *entity.Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error

	// GetUserTenants retrieves all tenants a user belongs to
	GetUserTenants(ctx context.Context, userID uuid.UUID) ([]entity.Tenant, error)

	AddMember(ctx context.Context, membership *entity.TenantMembership) error
	RemoveMember(ctx context.Context, tenantID, userID uuid.UUID) error
	GetMembers(ctx context.Context, tenantID uuid.UUID) ([]entity.TenantMembership, error)
	IsMember(ctx context.Context, tenantID, userID uuid.UUID) (bool, error)

	// SlugExists checks if a slug is already taken
	SlugExists(ctx context.Context, slug string) (bool, error)
}
