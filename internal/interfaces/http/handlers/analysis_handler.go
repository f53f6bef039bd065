package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/AnswerKey-Intelligence/internal/application/analysis"
	"github.com/turtacn/AnswerKey-Intelligence/pkg/errors"
)

// AnalysisHandler serves the similarity analysis endpoints.
type AnalysisHandler struct {
	service analysis.Service
}

func NewAnalysisHandler(service analysis.Service) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// Analyze handles POST /api/v1/answers/:answerID/analysis. Analysis is
// idempotent per answer: repeat requests return the stored result with
// 200 instead of recomputing.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	id := c.Param("answerID")
	if id == "" {
		respondError(c, errors.New(errors.ErrCodeAnswerInvalidID, "answer id is required"))
		return
	}

	dto, err := h.service.AnalyzeAnswer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto)
}

// Get handles GET /api/v1/answers/:answerID/analysis. Unlike Analyze it
// never computes; a missing analysis is a 404.
func (h *AnalysisHandler) Get(c *gin.Context) {
	id := c.Param("answerID")
	if id == "" {
		respondError(c, errors.New(errors.ErrCodeAnswerInvalidID, "answer id is required"))
		return
	}

	dto, err := h.service.GetAnalysis(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto)
}
