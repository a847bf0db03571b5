package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/queue"
)

type receiveDeps struct {
	repo     *MockAnalysisRepository
	events   *MockEventPublisher
	archive  *MockPayloadArchiver
	reporter *MockErrorReporter
}

func newReceiveUseCase() (*ReceiveAnalysisUseCase, receiveDeps) {
	d := receiveDeps{
		repo:     new(MockAnalysisRepository),
		events:   new(MockEventPublisher),
		archive:  new(MockPayloadArchiver),
		reporter: new(MockErrorReporter),
	}
	uc := NewReceiveAnalysisUseCase(d.repo, d.events, d.archive, d.reporter, zap.NewNop())
	uc.Clock = fixedClock{time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	return uc, d
}

const validAnalysis = `{
	"domain": "https://www.Acme.com/",
	"analysis_data": {"summary": "good", "score": 81, "recommendations": ["x"]}
}`

func TestReceiveAnalysisSuccess(t *testing.T) {
	uc, d := newReceiveUseCase()

	d.repo.On("Upsert", mock.Anything, mock.MatchedBy(func(r *entity.AnalysisResult) bool {
		return r.Domain == "acme.com" && r.Status == entity.AnalysisCompleted && r.AnalysisData["sentiment_trends"] != nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.AnalysisResult).ID = "an-1"
	}).Return(nil)
	d.archive.On("Archive", mock.Anything, "acme.com", []byte(validAnalysis)).Return("analysis/acme.com/x.json", nil)
	d.events.On("PublishAnalysisReceived", mock.Anything, mock.MatchedBy(func(e queue.AnalysisReceivedEvent) bool {
		return e.AnalysisID == "an-1" && e.Domain == "acme.com" && e.Status == "completed" && e.EventID != ""
	})).Return(nil)

	out, err := uc.Execute(context.Background(), []byte(validAnalysis))

	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "an-1", out.ID)
	assert.Equal(t, "acme.com", out.Domain)
	assert.Equal(t, 60, out.DataSummary.CompletenessScore)
	d.repo.AssertExpectations(t)
	d.archive.AssertExpectations(t)
	d.events.AssertExpectations(t)
	d.reporter.AssertNotCalled(t, "Report", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReceiveAnalysisAcceptsArrayAndStatus(t *testing.T) {
	uc, d := newReceiveUseCase()
	uc.Events = nil
	uc.Archive = nil

	d.repo.On("Upsert", mock.Anything, mock.MatchedBy(func(r *entity.AnalysisResult) bool {
		return r.Status == entity.AnalysisFailed
	})).Return(nil)

	body := `[{"domain": "acme.com", "status": "failed", "analysis_data": {"summary": "s", "score": 0, "recommendations": []}}]`
	_, err := uc.Execute(context.Background(), []byte(body))

	require.NoError(t, err)
	d.repo.AssertExpectations(t)
}

func TestReceiveAnalysisValidation(t *testing.T) {
	cases := map[string]string{
		"invalid json":        `{`,
		"empty array":         `[]`,
		"missing domain":      `{"analysis_data": {"summary": "s", "score": 1, "recommendations": []}}`,
		"missing data":        `{"domain": "acme.com"}`,
		"score not a number":  `{"domain": "acme.com", "analysis_data": {"summary": "s", "score": "1", "recommendations": []}}`,
		"empty summary":       `{"domain": "acme.com", "analysis_data": {"summary": "", "score": 1, "recommendations": []}}`,
		"recommendations obj": `{"domain": "acme.com", "analysis_data": {"summary": "s", "score": 1, "recommendations": {}}}`,
		"unknown status":      `{"domain": "acme.com", "status": "done", "analysis_data": {"summary": "s", "score": 1, "recommendations": []}}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			uc, d := newReceiveUseCase()
			d.reporter.On("Report", mock.Anything, "receive-analysis", mock.Anything, mock.Anything).Maybe()

			_, err := uc.Execute(context.Background(), []byte(body))

			var de *DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, CodeValidation, de.Code)
			d.repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}

func TestReceiveAnalysisRejectionsAreReported(t *testing.T) {
	cases := map[string]struct {
		body string
		step string
	}{
		"invalid json":   {`{"domain":`, "JSON parse"},
		"not an object":  {`"acme.com"`, "JSON parse"},
		"unknown status": {`{"domain": "acme.com", "status": "done", "analysis_data": {"summary": "s", "score": 1, "recommendations": []}}`, "Validation - invalid status"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			uc, d := newReceiveUseCase()
			d.reporter.On("Report", mock.Anything, "receive-analysis", mock.Anything, mock.MatchedBy(func(details map[string]any) bool {
				return details["step"] == tc.step && details["error_code"] == CodeValidation
			})).Once()

			_, err := uc.Execute(context.Background(), []byte(tc.body))

			require.Error(t, err)
			d.reporter.AssertExpectations(t)
		})
	}
}

func TestReceiveAnalysisDatabaseFailureIsReported(t *testing.T) {
	uc, d := newReceiveUseCase()
	dbErr := errors.New("db down")

	d.repo.On("Upsert", mock.Anything, mock.Anything).Return(dbErr)
	d.reporter.On("Report", mock.Anything, "receive-analysis", dbErr, mock.Anything).Once()

	_, err := uc.Execute(context.Background(), []byte(validAnalysis))

	var te *TechnicalError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, CodeDatabase, te.Code)
	assert.ErrorIs(t, err, dbErr)
	d.reporter.AssertExpectations(t)
	d.events.AssertNotCalled(t, "PublishAnalysisReceived", mock.Anything, mock.Anything)
}

func TestReceiveAnalysisSideEffectFailuresAreNotFatal(t *testing.T) {
	uc, d := newReceiveUseCase()

	d.repo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	d.archive.On("Archive", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("minio down"))
	d.events.On("PublishAnalysisReceived", mock.Anything, mock.Anything).Return(errors.New("channel closed"))

	out, err := uc.Execute(context.Background(), []byte(validAnalysis))

	require.NoError(t, err)
	assert.True(t, out.Success)
}
