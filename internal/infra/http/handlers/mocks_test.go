package handlers

import (
	"context"
	"errors"

	"github.com/stretchr/testify/mock"

	"github.com/promptmetrics/promptmetrics-api/internal/infra/worker"
	"github.com/promptmetrics/promptmetrics-api/internal/usecase"
)

type MockAnalysisTrigger struct{ mock.Mock }

func (m *MockAnalysisTrigger) Execute(ctx context.Context, input usecase.TriggerAnalysisInput) (*usecase.TriggerAnalysisOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.TriggerAnalysisOutput), args.Error(1)
}

type MockAnalysisReceiver struct{ mock.Mock }

func (m *MockAnalysisReceiver) Execute(ctx context.Context, raw []byte) (*usecase.ReceiveAnalysisOutput, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ReceiveAnalysisOutput), args.Error(1)
}

type MockAnalysisReader struct{ mock.Mock }

func (m *MockAnalysisReader) Execute(ctx context.Context, input usecase.GetAnalysisDataInput) (*usecase.GetAnalysisDataOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.GetAnalysisDataOutput), args.Error(1)
}

type MockRankLLMTrigger struct{ mock.Mock }

func (m *MockRankLLMTrigger) Execute(ctx context.Context, input usecase.TriggerRankLLMInput) (*usecase.TriggerRankLLMOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.TriggerRankLLMOutput), args.Error(1)
}

type MockRankLLMReader struct{ mock.Mock }

func (m *MockRankLLMReader) Execute(ctx context.Context, input usecase.GetRankLLMDataInput) (*usecase.GetRankLLMDataOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.GetRankLLMDataOutput), args.Error(1)
}

type MockWaitlistSubmitter struct{ mock.Mock }

func (m *MockWaitlistSubmitter) Execute(ctx context.Context, input usecase.SubmitWaitlistInput) (*usecase.SubmitWaitlistOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SubmitWaitlistOutput), args.Error(1)
}

type MockOrganizationCreator struct{ mock.Mock }

func (m *MockOrganizationCreator) Execute(ctx context.Context, input usecase.CreateOrganizationInput) (*usecase.CreateOrganizationOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CreateOrganizationOutput), args.Error(1)
}

type MockDashboardReader struct{ mock.Mock }

func (m *MockDashboardReader) Execute(ctx context.Context, input usecase.DashboardInput) (*usecase.DashboardOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.DashboardOutput), args.Error(1)
}

type MockRedirectResolver struct{ mock.Mock }

func (m *MockRedirectResolver) ExecuteForUser(ctx context.Context, userID string) (usecase.RedirectResult, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(usecase.RedirectResult), args.Error(1)
}

type fakeVerifier struct{}

func (fakeVerifier) UserID(h string) (string, error) {
	if h == "Bearer valid" {
		return "user-1", nil
	}
	return "", errors.New("invalid token")
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

type fakeBroker struct{ closed bool }

func (b fakeBroker) IsClosed() bool { return b.closed }

type fakeRankLLMStatus struct{ status worker.RankLLMStatus }

func (f fakeRankLLMStatus) Status() worker.RankLLMStatus { return f.status }
