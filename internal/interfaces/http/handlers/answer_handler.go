package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/AnswerKey-Intelligence/internal/application/analysis"
	"github.com/turtacn/AnswerKey-Intelligence/pkg/errors"
	atypes "github.com/turtacn/AnswerKey-Intelligence/pkg/types/answer"
)

// AnswerHandler serves the candidate answer endpoints.
type AnswerHandler struct {
	service analysis.Service
}

func NewAnswerHandler(service analysis.Service) *AnswerHandler {
	return &AnswerHandler{service: service}
}

// Submit handles POST /api/v1/answers.
func (h *AnswerHandler) Submit(c *gin.Context) {
	var req atypes.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	dto, err := h.service.SubmitAnswer(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, dto)
}

// Get handles GET /api/v1/answers/:answerID.
func (h *AnswerHandler) Get(c *gin.Context) {
	id := c.Param("answerID")
	if id == "" {
		respondError(c, errors.New(errors.ErrCodeAnswerInvalidID, "answer id is required"))
		return
	}

	dto, err := h.service.GetAnswer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto)
}

// List handles GET /api/v1/answers?question_id=…&page=…&page_size=….
func (h *AnswerHandler) List(c *gin.Context) {
	questionID := c.Query("question_id")
	if questionID == "" {
		respondError(c, errors.New(errors.ErrCodeBadRequest, "question_id query parameter is required"))
		return
	}

	p := parsePagination(c)
	dtos, total, err := h.service.ListAnswers(c.Request.Context(), questionID, p)
	if err != nil {
		respondError(c, err)
		return
	}
	p.Total = total
	respondPage(c, dtos, p)
}
