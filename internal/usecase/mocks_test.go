package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/integration/n8n"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/integration/rankllm"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/integration/waitlist"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/queue"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// MockProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id string) (*entity.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockProfileRepository) AssignOrganization(ctx context.Context, profileID, organizationID string) error {
	return m.Called(ctx, profileID, organizationID).Error(0)
}

func (m *MockProfileRepository) ListEmailsByOrganization(ctx context.Context, organizationID string) ([]string, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockOrganizationRepository
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) Create(ctx context.Context, org *entity.Organization) error {
	return m.Called(ctx, org).Error(0)
}

func (m *MockOrganizationRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrganizationRepository) find(args mock.Arguments) (*entity.Organization, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) FindByID(ctx context.Context, id string) (*entity.Organization, error) {
	return m.find(m.Called(ctx, id))
}

func (m *MockOrganizationRepository) FindBySlug(ctx context.Context, slug string) (*entity.Organization, error) {
	return m.find(m.Called(ctx, slug))
}

func (m *MockOrganizationRepository) FindByDomain(ctx context.Context, domain string) (*entity.Organization, error) {
	return m.find(m.Called(ctx, domain))
}

// MockAnalysisRepository
type MockAnalysisRepository struct {
	mock.Mock
}

func (m *MockAnalysisRepository) Upsert(ctx context.Context, result *entity.AnalysisResult) error {
	return m.Called(ctx, result).Error(0)
}

func (m *MockAnalysisRepository) FindLatestByDomain(ctx context.Context, domain string) (*entity.AnalysisResult, error) {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AnalysisResult), args.Error(1)
}

// MockRankLLMRepository
type MockRankLLMRepository struct {
	mock.Mock
}

func (m *MockRankLLMRepository) Create(ctx context.Context, result *entity.RankLLMResult) error {
	return m.Called(ctx, result).Error(0)
}

func (m *MockRankLLMRepository) ListByDomain(ctx context.Context, domain string, limit int) ([]*entity.RankLLMResult, error) {
	args := m.Called(ctx, domain, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.RankLLMResult), args.Error(1)
}

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, email, status string) error {
	return m.Called(ctx, email, status).Error(0)
}

// MockAuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Insert(ctx context.Context, event *entity.AuditEvent) error {
	return m.Called(ctx, event).Error(0)
}

// MockAnalysisTrigger
type MockAnalysisTrigger struct {
	mock.Mock
}

func (m *MockAnalysisTrigger) Configured() bool {
	return m.Called().Bool(0)
}

func (m *MockAnalysisTrigger) Trigger(ctx context.Context, payload n8n.TriggerPayload) (*n8n.TriggerResult, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*n8n.TriggerResult), args.Error(1)
}

// MockReranker
type MockReranker struct {
	mock.Mock
}

func (m *MockReranker) Configured() bool {
	return m.Called().Bool(0)
}

func (m *MockReranker) Rerank(ctx context.Context, input rankllm.RerankRequest) (*rankllm.RerankResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rankllm.RerankResponse), args.Error(1)
}

// MockWaitlistForwarder
type MockWaitlistForwarder struct {
	mock.Mock
}

func (m *MockWaitlistForwarder) Configured() bool {
	return m.Called().Bool(0)
}

func (m *MockWaitlistForwarder) Submit(ctx context.Context, form waitlist.Form) (*waitlist.Reply, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*waitlist.Reply), args.Error(1)
}

// MockErrorReporter
type MockErrorReporter struct {
	mock.Mock
}

func (m *MockErrorReporter) Report(ctx context.Context, function string, err error, details map[string]any) {
	m.Called(ctx, function, err, details)
}

// MockEventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishAnalysisReceived(ctx context.Context, event queue.AnalysisReceivedEvent) error {
	return m.Called(ctx, event).Error(0)
}

// MockPayloadArchiver
type MockPayloadArchiver struct {
	mock.Mock
}

func (m *MockPayloadArchiver) Archive(ctx context.Context, domain string, payload []byte) (string, error) {
	args := m.Called(ctx, domain, payload)
	return args.String(0), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendAnalysisReady(to, domain, dashboardURL string) error {
	return m.Called(to, domain, dashboardURL).Error(0)
}

func (m *MockEmailService) SendWaitlistConfirmation(to, name string) error {
	return m.Called(to, name).Error(0)
}
