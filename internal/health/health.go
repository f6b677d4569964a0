// Package health serves the liveness and readiness probes of the dashboard.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/efes-rota/rota-planner/sim"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// CheckResult is the outcome of one dependency check.
type CheckResult struct {
	Status    Status `json:"status"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

type HealthStatus struct {
	Status  Status                 `json:"status"`
	Version string                 `json:"version,omitempty"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// Checker pings redis, when configured, and reads the capacity table of the
// order store.
type Checker struct {
	redisClient *redis.Client
	capacities  sim.CapacitySource
	version     string
}

// NewChecker creates a checker. redisClient may be nil for the memory backend.
func NewChecker(redisClient *redis.Client, capacities sim.CapacitySource, version string) *Checker {
	return &Checker{
		redisClient: redisClient,
		capacities:  capacities,
		version:     version,
	}
}

func (c *Checker) Check(ctx context.Context) *HealthStatus {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	status := &HealthStatus{
		Status:  StatusHealthy,
		Version: c.version,
		Checks:  make(map[string]CheckResult),
	}

	if c.redisClient != nil {
		status.add("redis", measure(func() error {
			return c.redisClient.Ping(checkCtx).Err()
		}))
	}
	if c.capacities != nil {
		status.add("store", measure(func() error {
			_, err := c.capacities.StationCapacities(checkCtx)
			return err
		}))
	}
	return status
}

func measure(check func() error) CheckResult {
	start := time.Now()
	if err := check(); err != nil {
		return CheckResult{Status: StatusUnhealthy, Error: err.Error()}
	}
	return CheckResult{Status: StatusHealthy, LatencyMs: time.Since(start).Milliseconds()}
}

func (s *HealthStatus) add(name string, r CheckResult) {
	s.Checks[name] = r
	if r.Status != StatusHealthy {
		s.Status = StatusUnhealthy
	}
}

// LiveHandler returns a Gin handler for liveness probes.
func (c *Checker) LiveHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// ReadyHandler returns a Gin handler for readiness probes.
func (c *Checker) ReadyHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := c.Check(ctx.Request.Context())

		httpStatus := http.StatusOK
		if status.Status != StatusHealthy {
			httpStatus = http.StatusServiceUnavailable
		}
		ctx.JSON(httpStatus, status)
	}
}
