// Package http assembles the gin route tree and the HTTP server around
// it.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/AnswerKey-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/AnswerKey-Intelligence/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handlers and infrastructure needed to
// build the complete route tree.
type RouterConfig struct {
	AnswerHandler    *handlers.AnswerHandler
	ReferenceHandler *handlers.ReferenceHandler
	AnalysisHandler  *handlers.AnalysisHandler
	HealthHandler    *handlers.HealthHandler

	Logger           logging.Logger
	Metrics          *prometheus.AppMetrics
	MetricsCollector prometheus.MetricsCollector
	CORS             *middleware.CORSConfig
	Mode             string
}

// NewRouter builds the gin engine: global middleware, public probe
// endpoints, and the /api/v1 resource groups.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if cfg.Logger != nil {
		r.Use(middleware.RequestLogging(cfg.Logger, middleware.DefaultLoggingConfig()))
	}
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.CORS != nil {
		r.Use(middleware.CORS(*cfg.CORS))
	}

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Liveness)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsCollector.Handler()))
	}

	api := r.Group("/api/v1")
	registerAnswerRoutes(api, cfg.AnswerHandler, cfg.AnalysisHandler)
	registerReferenceRoutes(api, cfg.ReferenceHandler)

	return r
}

// registerAnswerRoutes mounts the answer endpoints, including the
// per-answer analysis resource.
func registerAnswerRoutes(r *gin.RouterGroup, answers *handlers.AnswerHandler, analyses *handlers.AnalysisHandler) {
	if answers != nil {
		r.POST("/answers", answers.Submit)
		r.GET("/answers", answers.List)
		r.GET("/answers/:answerID", answers.Get)
	}
	if analyses != nil {
		r.POST("/answers/:answerID/analysis", analyses.Analyze)
		r.GET("/answers/:answerID/analysis", analyses.Get)
	}
}

// registerReferenceRoutes mounts the topper answer endpoints.
func registerReferenceRoutes(r *gin.RouterGroup, h *handlers.ReferenceHandler) {
	if h == nil {
		return
	}
	r.POST("/reference-answers", h.Ingest)
	r.GET("/reference-answers", h.List)
	r.GET("/reference-answers/:referenceID", h.Get)
}
