package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/hospital-api/internal/application/service"
	"github.com/sangkips/hospital-api/internal/config"
	"github.com/sangkips/hospital-api/internal/domain/entity"
	"github.com/sangkips/hospital-api/internal/presentation/http/handler"
	"github.com/sangkips/hospital-api/internal/presentation/http/middleware"
	"github.com/sangkips/hospital-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTenantRepo struct {
	tenant *entity.Tenant
}

func (s *stubTenantRepo) Create(ctx context.Context, tenant *entity.Tenant) error { return nil }
func (s *stubTenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	return s.tenant, nil
}
func (s *stubTenantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	if s.tenant != nil && s.tenant.Slug == slug {
		return s.tenant, nil
	}
	return nil, nil
}
func (s *stubTenantRepo) Update(ctx context.Context, tenant *entity.Tenant) error { return nil }
func (s *stubTenantRepo) Delete(ctx context.Context, id uuid.UUID) error          { return nil }
func (s *stubTenantRepo) GetUserTenants(ctx context.Context, userID uuid.UUID) ([]entity.Tenant, error) {
	return nil, nil
}
func (s *stubTenantRepo) AddMember(ctx context.Context, membership *entity.TenantMembership) error {
	return nil
}
func (s *stubTenantRepo) RemoveMember(ctx context.Context, tenantID, userID uuid.UUID) error {
	return nil
}
func (s *stubTenantRepo) GetMembers(ctx context.Context, tenantID uuid.UUID) ([]entity.TenantMembership, error) {
	return nil, nil
}
func (s *stubTenantRepo) IsMember(ctx context.Context, tenantID, userID uuid.UUID) (bool, error) {
	return true, nil
}
func (s *stubTenantRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	return false, nil
}

type stubIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func (s *stubIdempotencyRepo) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	return s.keys[key], nil
}
func (s *stubIdempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	s.keys[ikey.Key] = ikey
	return nil
}
func (s *stubIdempotencyRepo) DeleteExpired(ctx context.Context) error { return nil }

// newBillingRouter wires the real route tree over stub repositories. The
// clinical handlers sit behind the idempotency guard, so requests asserted
// here never reach their services.
func newBillingRouter(t *testing.T, idemRepo *stubIdempotencyRepo) (*gin.Engine, http.Header) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtManager := utils.NewJWTManager("unit-test-secret", time.Hour, time.Hour)
	userID := uuid.New()
	token, err := jwtManager.GenerateAccessToken(userID, "clerk@citycare.example", []string{"billing-clerk"},
		[]string{"manage-patients", "manage-invoices", "manage-payments", "view-reports"})
	require.NoError(t, err)

	tenantRepo := &stubTenantRepo{tenant: &entity.Tenant{ID: uuid.New(), Slug: "citycare", Name: "CityCare"}}

	h := &Handlers{
		Auth:    handler.NewAuthHandler(service.NewAuthService(nil, nil, jwtManager)),
		Tenant:  handler.NewTenantHandler(service.NewTenantService(tenantRepo)),
		Patient: handler.NewPatientHandler(service.NewPatientService(nil)),
		Invoice: handler.NewInvoiceHandler(service.NewInvoiceService(nil, nil, nil)),
		Payment: handler.NewPaymentHandler(service.NewPaymentService(nil, nil)),
		Billing: handler.NewBillingHandler(service.NewBillingStatsService(nil, nil)),
	}
	deps := &Deps{
		JWTManager:      jwtManager,
		Cfg:             &config.Config{App: config.AppConfig{Name: "hospital-api"}, RateLimit: config.RateLimitConfig{Requests: 100, Duration: 1}},
		TenantRepo:      tenantRepo,
		IdempotencyRepo: idemRepo,
	}

	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+token)
	headers.Set(middleware.TenantSlugHeader, "citycare")

	return Setup(h, deps), headers
}

func TestCreationRoutesRequireIdempotencyKey(t *testing.T) {
	router, headers := newBillingRouter(t, &stubIdempotencyRepo{keys: map[string]*entity.IdempotencyKey{}})

	for _, path := range []string{"/api/v1/payments", "/api/v1/invoices"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", path, strings.NewReader("{}"))
		req.Header = headers.Clone()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Contains(t, w.Body.String(), "Idempotency-Key header is required", path)
	}
}

func TestPaymentCreateReplaysDuplicateKey(t *testing.T) {
	idemRepo := &stubIdempotencyRepo{keys: map[string]*entity.IdempotencyKey{
		"dup-key-1": {
			Key:          "dup-key-1",
			Endpoint:     "POST /api/v1/payments",
			ResponseCode: 201,
			ResponseBody: `{"success":true,"data":{"payment_number":"PAY-202608-000001"}}`,
			ExpiresAt:    time.Now().Add(time.Hour),
		},
	}}
	router, headers := newBillingRouter(t, idemRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/payments", strings.NewReader("{}"))
	req.Header = headers.Clone()
	req.Header.Set(middleware.IdempotencyKeyHeader, "dup-key-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, 201, w.Code)
	assert.Equal(t, "true", w.Header().Get("X-Idempotency-Replayed"))
	assert.Contains(t, w.Body.String(), "PAY-202608-000001")
}
