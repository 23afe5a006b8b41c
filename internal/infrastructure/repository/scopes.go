package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// TenantIDKey is the context key for tenant ID
	TenantIDKey ctxKey = "tenant_id"
)

// ErrNoTenant is returned by aggregate queries when the tenant is missing
// from the request context.
var ErrNoTenant = errors.New("tenant missing from context")

// TenantScope returns a GORM scope that filters by tenant.
// Every query against a tenant-scoped entity must go through this scope;
// when the tenant is missing from the context the scope matches nothing,
// so a wiring mistake can never leak another tenant's rows.
func TenantScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		tenantID, ok := ctx.Value(TenantIDKey).(uuid.UUID)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Where("tenant_id = ?", tenantID)
	}
}

// WithTenant adds tenant ID to context
func WithTenant(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, TenantIDKey, tenantID)
}

// GetTenantID extracts tenant ID from context
func GetTenantID(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(TenantIDKey).(uuid.UUID)
	return tenantID, ok
}

// RequireTenantID extracts the tenant ID or returns ErrNoTenant.
// Raw-SQL aggregate queries cannot use TenantScope and call this instead.
func RequireTenantID(ctx context.Context) (uuid.UUID, error) {
	tenantID, ok := ctx.Value(TenantIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrNoTenant
	}
	return tenantID, nil
}
