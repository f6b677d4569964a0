package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/efes-rota/rota-planner/sim/mocks"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestChecker_StoreHealthy(t *testing.T) {
	// GIVEN a store that answers capacity reads
	ctrl := gomock.NewController(t)
	src := mocks.NewMockCapacitySource(ctrl)
	src.EXPECT().StationCapacities(gomock.Any()).Return(map[string]float64{"KESIM": 800}, nil)

	// WHEN checked
	status := NewChecker(nil, src, "v1").Check(context.Background())

	// THEN the service is healthy and no redis check ran
	assert.Equal(t, StatusHealthy, status.Status)
	assert.Equal(t, "v1", status.Version)
	assert.Contains(t, status.Checks, "store")
	assert.NotContains(t, status.Checks, "redis")
}

func TestChecker_ReadyHandler_Unhealthy(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// GIVEN a store whose capacity read fails
	ctrl := gomock.NewController(t)
	src := mocks.NewMockCapacitySource(ctrl)
	src.EXPECT().StationCapacities(gomock.Any()).Return(nil, errors.New("connection refused"))

	r := gin.New()
	checker := NewChecker(nil, src, "v1")
	r.GET("/health/ready", checker.ReadyHandler())
	r.GET("/health/live", checker.LiveHandler())

	// WHEN the readiness probe is called
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	// THEN it reports 503 with the failing check
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body HealthStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, StatusUnhealthy, body.Status)
	assert.Equal(t, "connection refused", body.Checks["store"].Error)

	// AND liveness is unaffected
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
