package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/monitoring/logging"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func newHealthRouter(checks map[string]Pinger) *gin.Engine {
	h := NewHealthHandler(checks, logging.NewNopLogger())
	r := gin.New()
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)
	return r
}

func TestHealthHandler_Liveness(t *testing.T) {
	w := perform(t, newHealthRouter(nil), http.MethodGet, "/healthz", nil)
	mustStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestHealthHandler_Readiness_AllUp(t *testing.T) {
	checks := map[string]Pinger{
		"postgres": pingerFunc(func(context.Context) error { return nil }),
		"redis":    pingerFunc(func(context.Context) error { return nil }),
	}

	w := perform(t, newHealthRouter(checks), http.MethodGet, "/readyz", nil)
	mustStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), `"status":"ready"`)
	assert.Contains(t, w.Body.String(), `"postgres":"ok"`)
}

func TestHealthHandler_Readiness_DependencyDown(t *testing.T) {
	checks := map[string]Pinger{
		"postgres": pingerFunc(func(context.Context) error { return nil }),
		"redis":    pingerFunc(func(context.Context) error { return assert.AnError }),
	}

	w := perform(t, newHealthRouter(checks), http.MethodGet, "/readyz", nil)
	mustStatus(t, w, http.StatusServiceUnavailable)
	assert.Contains(t, w.Body.String(), `"status":"not_ready"`)
	assert.Contains(t, w.Body.String(), `"redis":"unavailable"`)
	assert.Contains(t, w.Body.String(), `"postgres":"ok"`)
}
