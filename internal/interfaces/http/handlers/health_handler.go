package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/monitoring/logging"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes. Liveness only
// says the process is up; readiness pings every registered dependency.
type HealthHandler struct {
	checks  map[string]Pinger
	logger  logging.Logger
	timeout time.Duration
}

func NewHealthHandler(checks map[string]Pinger, logger logging.Logger) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		logger:  logger,
		timeout: 5 * time.Second,
	}
}

// Liveness handles GET /healthz.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. Any failing dependency makes the
// whole probe fail with 503 and a per-dependency breakdown.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	status := http.StatusOK
	results := make(gin.H, len(h.checks))
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			h.logger.Warn("readiness check failed",
				logging.String("dependency", name),
				logging.Err(err))
			results[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	body := gin.H{"checks": results}
	if status == http.StatusOK {
		body["status"] = "ready"
	} else {
		body["status"] = "not_ready"
	}
	c.JSON(status, body)
}
