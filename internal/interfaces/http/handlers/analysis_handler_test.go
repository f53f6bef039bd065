package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/AnswerKey-Intelligence/pkg/errors"
	atypes "github.com/turtacn/AnswerKey-Intelligence/pkg/types/answer"
	"github.com/turtacn/AnswerKey-Intelligence/pkg/types/common"
)

func newAnalysisRouter(svc *mockService) *gin.Engine {
	h := NewAnalysisHandler(svc)
	r := gin.New()
	r.POST("/api/v1/answers/:answerID/analysis", h.Analyze)
	r.GET("/api/v1/answers/:answerID/analysis", h.Get)
	return r
}

func testAnalysisDTO(answerID string) *atypes.AnalysisDTO {
	return &atypes.AnalysisDTO{
		BaseEntity:      common.BaseEntity{ID: "anl-1"},
		AnswerID:        common.ID(answerID),
		BestReferenceID: "ref-2",
		Scores: atypes.SimilarityScores{
			Content:   0.62,
			Keyword:   0.5,
			Structure: 0.8,
			Theory:    0.33,
			Overall:   0.583,
		},
		Feedback: atypes.FeedbackPayload{
			Text: "Your answer shows good understanding.",
		},
		ComparedCount: 3,
	}
}

func TestAnalysisHandler_Analyze_ReturnsScores(t *testing.T) {
	svc := &mockService{
		analyzeAnswerFunc: func(_ context.Context, answerID string) (*atypes.AnalysisDTO, error) {
			return testAnalysisDTO(answerID), nil
		},
	}

	w := perform(t, newAnalysisRouter(svc), http.MethodPost, "/api/v1/answers/ans-1/analysis", nil)
	mustStatus(t, w, http.StatusOK)

	envelope := decodeEnvelope(t, w)
	var dto atypes.AnalysisDTO
	require.NoError(t, json.Unmarshal(envelope["data"], &dto))
	assert.Equal(t, common.ID("ans-1"), dto.AnswerID)
	assert.Equal(t, common.ID("ref-2"), dto.BestReferenceID)
	assert.InDelta(t, 0.583, dto.Scores.Overall, 1e-9)
	assert.Equal(t, 3, dto.ComparedCount)
}

func TestAnalysisHandler_Analyze_AnswerNotFound(t *testing.T) {
	svc := &mockService{
		analyzeAnswerFunc: func(context.Context, string) (*atypes.AnalysisDTO, error) {
			return nil, errors.New(errors.ErrCodeAnswerNotFound, "answer not found")
		},
	}

	w := perform(t, newAnalysisRouter(svc), http.MethodPost, "/api/v1/answers/missing/analysis", nil)
	mustStatus(t, w, http.StatusNotFound)
	assert.Equal(t, string(errors.ErrCodeAnswerNotFound), decodeErrorCode(t, w))
}

func TestAnalysisHandler_Analyze_NoReferenceData(t *testing.T) {
	svc := &mockService{
		analyzeAnswerFunc: func(context.Context, string) (*atypes.AnalysisDTO, error) {
			return nil, errors.NoReferenceData("no reference answers available for comparison")
		},
	}

	w := perform(t, newAnalysisRouter(svc), http.MethodPost, "/api/v1/answers/ans-1/analysis", nil)
	mustStatus(t, w, http.StatusNotFound)
	assert.Equal(t, string(errors.ErrCodeNoReferenceData), decodeErrorCode(t, w))
}

func TestAnalysisHandler_Get_StoredOnly(t *testing.T) {
	svc := &mockService{
		getAnalysisFunc: func(_ context.Context, answerID string) (*atypes.AnalysisDTO, error) {
			return testAnalysisDTO(answerID), nil
		},
	}

	w := perform(t, newAnalysisRouter(svc), http.MethodGet, "/api/v1/answers/ans-1/analysis", nil)
	mustStatus(t, w, http.StatusOK)
}

func TestAnalysisHandler_Get_NotYetAnalyzed(t *testing.T) {
	svc := &mockService{
		getAnalysisFunc: func(context.Context, string) (*atypes.AnalysisDTO, error) {
			return nil, errors.New(errors.ErrCodeAnalysisNotFound, "analysis not found")
		},
	}

	w := perform(t, newAnalysisRouter(svc), http.MethodGet, "/api/v1/answers/ans-1/analysis", nil)
	mustStatus(t, w, http.StatusNotFound)
	assert.Equal(t, string(errors.ErrCodeAnalysisNotFound), decodeErrorCode(t, w))
}
