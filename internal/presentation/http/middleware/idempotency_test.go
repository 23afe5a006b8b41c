package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/hospital-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func newFakeIdempotencyRepo() *fakeIdempotencyRepo {
	return &fakeIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (f *fakeIdempotencyRepo) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	ikey, ok := f.keys[key+"/"+userID.String()]
	if !ok {
		return nil, nil
	}
	return ikey, nil
}

func (f *fakeIdempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	f.keys[ikey.Key+"/"+ikey.UserID.String()] = ikey
	return nil
}

func (f *fakeIdempotencyRepo) DeleteExpired(ctx context.Context) error {
	return nil
}

func newIdempotencyRouter(repo *fakeIdempotencyRepo, userID uuid.UUID, calls *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/payments",
		func(c *gin.Context) { c.Set("user_id", userID) },
		IdempotencyRequired(IdempotencyConfig{Repo: repo}),
		func(c *gin.Context) {
			(*calls)++
			c.JSON(201, gin.H{"success": true, "payment": *calls})
		})
	return router
}

func TestIdempotencyRequiredRejectsMissingKey(t *testing.T) {
	var calls int
	router := newIdempotencyRouter(newFakeIdempotencyRepo(), uuid.New(), &calls)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/payments", strings.NewReader("{}"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Idempotency-Key header is required")
	assert.Equal(t, 0, calls)
}

func TestIdempotencyRequiredReplaysDuplicate(t *testing.T) {
	repo := newFakeIdempotencyRepo()
	var calls int
	router := newIdempotencyRouter(repo, uuid.New(), &calls)

	first := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/payments", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "dup-key-1")
	router.ServeHTTP(first, req)

	require.Equal(t, 201, first.Code)
	require.Equal(t, 1, calls)

	second := httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/payments", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "dup-key-1")
	router.ServeHTTP(second, req)

	// Same response body, handler not invoked again
	assert.Equal(t, 201, second.Code)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestIdempotencyRequiredScopesKeysPerUser(t *testing.T) {
	repo := newFakeIdempotencyRepo()
	var calls int
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/payments",
		func(c *gin.Context) {
			userID, _ := uuid.Parse(c.GetHeader("X-Test-User"))
			c.Set("user_id", userID)
		},
		IdempotencyRequired(IdempotencyConfig{Repo: repo}),
		func(c *gin.Context) {
			calls++
			c.JSON(201, gin.H{"success": true})
		})

	userA, userB := uuid.New(), uuid.New()
	for _, userID := range []uuid.UUID{userA, userB} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/payments", strings.NewReader("{}"))
		req.Header.Set(IdempotencyKeyHeader, "shared-key")
		req.Header.Set("X-Test-User", userID.String())
		router.ServeHTTP(w, req)
		assert.Equal(t, 201, w.Code)
		assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
	}
	assert.Equal(t, 2, calls)
}

func TestIdempotencyRequiredIgnoresExpiredKey(t *testing.T) {
	repo := newFakeIdempotencyRepo()
	userID := uuid.New()
	repo.keys["stale-key/"+userID.String()] = &entity.IdempotencyKey{
		Key:          "stale-key",
		UserID:       userID,
		ResponseCode: 201,
		ResponseBody: `{"success":true}`,
		ExpiresAt:    time.Now().Add(-time.Hour),
	}

	var calls int
	router := newIdempotencyRouter(repo, userID, &calls)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/payments", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "stale-key")
	router.ServeHTTP(w, req)

	assert.Equal(t, 201, w.Code)
	assert.Equal(t, 1, calls)
	assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
}
