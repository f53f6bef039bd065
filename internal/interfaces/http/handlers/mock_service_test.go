package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/AnswerKey-Intelligence/internal/application/analysis"
	atypes "github.com/turtacn/AnswerKey-Intelligence/pkg/types/answer"
	"github.com/turtacn/AnswerKey-Intelligence/pkg/types/common"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockService implements analysis.Service with overridable funcs; the
// zero value panics on use, so each test sets only what it exercises.
type mockService struct {
	submitAnswerFunc    func(ctx context.Context, req *atypes.SubmitAnswerRequest) (*atypes.AnswerDTO, error)
	getAnswerFunc       func(ctx context.Context, id string) (*atypes.AnswerDTO, error)
	listAnswersFunc     func(ctx context.Context, questionID string, p common.Pagination) ([]*atypes.AnswerDTO, int64, error)
	ingestReferenceFunc func(ctx context.Context, req *atypes.IngestReferenceRequest) (*atypes.ReferenceAnswerDTO, error)
	getReferenceFunc    func(ctx context.Context, id string) (*atypes.ReferenceAnswerDTO, error)
	listReferencesFunc  func(ctx context.Context, questionID string) ([]*atypes.ReferenceAnswerDTO, error)
	extractFeaturesFunc func(text string) atypes.FeatureSet
	compareFunc         func(req *atypes.CompareRequest) (*analysis.ComparisonResult, error)
	analyzeAnswerFunc   func(ctx context.Context, answerID string) (*atypes.AnalysisDTO, error)
	getAnalysisFunc     func(ctx context.Context, answerID string) (*atypes.AnalysisDTO, error)
}

var _ analysis.Service = (*mockService)(nil)

func (m *mockService) SubmitAnswer(ctx context.Context, req *atypes.SubmitAnswerRequest) (*atypes.AnswerDTO, error) {
	return m.submitAnswerFunc(ctx, req)
}

func (m *mockService) GetAnswer(ctx context.Context, id string) (*atypes.AnswerDTO, error) {
	return m.getAnswerFunc(ctx, id)
}

func (m *mockService) ListAnswers(ctx context.Context, questionID string, p common.Pagination) ([]*atypes.AnswerDTO, int64, error) {
	return m.listAnswersFunc(ctx, questionID, p)
}

func (m *mockService) IngestReference(ctx context.Context, req *atypes.IngestReferenceRequest) (*atypes.ReferenceAnswerDTO, error) {
	return m.ingestReferenceFunc(ctx, req)
}

func (m *mockService) GetReference(ctx context.Context, id string) (*atypes.ReferenceAnswerDTO, error) {
	return m.getReferenceFunc(ctx, id)
}

func (m *mockService) ListReferences(ctx context.Context, questionID string) ([]*atypes.ReferenceAnswerDTO, error) {
	return m.listReferencesFunc(ctx, questionID)
}

func (m *mockService) ExtractFeatures(text string) atypes.FeatureSet {
	return m.extractFeaturesFunc(text)
}

func (m *mockService) Compare(req *atypes.CompareRequest) (*analysis.ComparisonResult, error) {
	return m.compareFunc(req)
}

func (m *mockService) AnalyzeAnswer(ctx context.Context, answerID string) (*atypes.AnalysisDTO, error) {
	return m.analyzeAnswerFunc(ctx, answerID)
}

func (m *mockService) GetAnalysis(ctx context.Context, answerID string) (*atypes.AnalysisDTO, error) {
	return m.getAnalysisFunc(ctx, answerID)
}

// perform runs one request through a routed engine and returns the
// recorded response.
func perform(t *testing.T, r *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeEnvelope unpacks the standard response wrapper.
func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func decodeErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	envelope := decodeEnvelope(t, w)
	var detail struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(envelope["error"], &detail))
	return detail.Code
}

func mustStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "body: %s", w.Body.String())
}
