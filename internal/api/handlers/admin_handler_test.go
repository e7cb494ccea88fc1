package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrevistaja/backend/internal/api/middleware"
	"github.com/entrevistaja/backend/internal/models"
)

func newAdminRouter(t *testing.T, role string) (*gin.Engine, *stubBillingRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &stubBillingRepo{subs: map[string]models.SubscriptionRecord{}}
	h := NewAdminHandler(repo)

	r := gin.New()
	grp := r.Group("/admin")
	grp.Use(func(c *gin.Context) {
		if role != "" {
			c.Set("role", role)
		}
	})
	grp.Use(middleware.RequireAdmin())
	grp.GET("/subscriptions/:id", h.GetSubscription)
	return r, repo
}

func TestAdminGetSubscription(t *testing.T) {
	r, repo := newAdminRouter(t, "admin")
	repo.subs["sub_1"] = models.SubscriptionRecord{
		SubscriptionID:   "sub_1",
		UserID:           "uid-1",
		Status:           "active",
		CurrentPeriodEnd: time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/subscriptions/sub_1", nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"userId":"uid-1"`)
	assert.Contains(t, w.Body.String(), `"status":"active"`)
}

func TestAdminGetSubscriptionNotFound(t *testing.T) {
	r, _ := newAdminRouter(t, "admin")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/subscriptions/sub_missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRoutesRejectNonAdminRole(t *testing.T) {
	for _, role := range []string{"", "authenticated"} {
		r, repo := newAdminRouter(t, role)
		repo.subs["sub_1"] = models.SubscriptionRecord{SubscriptionID: "sub_1"}

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/subscriptions/sub_1", nil))

		assert.Equal(t, http.StatusForbidden, w.Code, "role %q", role)
	}
}
