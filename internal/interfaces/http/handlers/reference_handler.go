package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/AnswerKey-Intelligence/internal/application/analysis"
	"github.com/turtacn/AnswerKey-Intelligence/pkg/errors"
	atypes "github.com/turtacn/AnswerKey-Intelligence/pkg/types/answer"
)

// ReferenceHandler serves the reference (topper) answer endpoints.
type ReferenceHandler struct {
	service analysis.Service
}

func NewReferenceHandler(service analysis.Service) *ReferenceHandler {
	return &ReferenceHandler{service: service}
}

// Ingest handles POST /api/v1/reference-answers. Features are
// extracted once here and persisted alongside the text.
func (h *ReferenceHandler) Ingest(c *gin.Context) {
	var req atypes.IngestReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	dto, err := h.service.IngestReference(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, dto)
}

// Get handles GET /api/v1/reference-answers/:referenceID.
func (h *ReferenceHandler) Get(c *gin.Context) {
	id := c.Param("referenceID")
	if id == "" {
		respondError(c, errors.New(errors.ErrCodeBadRequest, "reference id is required"))
		return
	}

	dto, err := h.service.GetReference(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto)
}

// List handles GET /api/v1/reference-answers?question_id=…. References
// are returned in ingestion order, the same order analysis compares
// them in.
func (h *ReferenceHandler) List(c *gin.Context) {
	questionID := c.Query("question_id")
	if questionID == "" {
		respondError(c, errors.New(errors.ErrCodeBadRequest, "question_id query parameter is required"))
		return
	}

	dtos, err := h.service.ListReferences(c.Request.Context(), questionID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dtos)
}
