package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/queue"
)

// NotifyAnalysisReadyUseCase consome analysis.received e avisa os membros da
// organização dona do domínio.
type NotifyAnalysisReadyUseCase struct {
	Orgs         entity.OrganizationRepositoryInterface
	Profiles     entity.ProfileRepositoryInterface
	EmailService EmailService
	AppURL       string
	Logger       *zap.Logger
}

func NewNotifyAnalysisReadyUseCase(
	orgs entity.OrganizationRepositoryInterface,
	profiles entity.ProfileRepositoryInterface,
	emailService EmailService,
	appURL string,
	logger *zap.Logger,
) *NotifyAnalysisReadyUseCase {
	return &NotifyAnalysisReadyUseCase{
		Orgs:         orgs,
		Profiles:     profiles,
		EmailService: emailService,
		AppURL:       strings.TrimRight(appURL, "/"),
		Logger:       logger,
	}
}

func (uc *NotifyAnalysisReadyUseCase) Handle(ctx context.Context, event queue.AnalysisReceivedEvent) error {
	if event.Status != string(entity.AnalysisCompleted) {
		uc.Logger.Debug("skipping notification for non-completed analysis",
			zap.String("domain", event.Domain), zap.String("status", event.Status))
		return nil
	}

	org, err := uc.Orgs.FindByDomain(ctx, event.Domain)
	if errors.Is(err, entity.ErrNotFound) {
		uc.Logger.Info("no organization for analyzed domain", zap.String("domain", event.Domain))
		return nil
	}
	if err != nil {
		return fmt.Errorf("erro ao buscar organização de %s: %w", event.Domain, err)
	}

	emails, err := uc.Profiles.ListEmailsByOrganization(ctx, org.ID)
	if err != nil {
		return fmt.Errorf("erro ao listar membros de %s: %w", org.ID, err)
	}

	link := uc.AppURL + "/home/" + org.Slug
	var errs []error
	for _, to := range emails {
		if err := uc.EmailService.SendAnalysisReady(to, event.Domain, link); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", MaskEmail(to), err))
		}
	}

	uc.Logger.Info("analysis ready notification sent",
		zap.String("domain", event.Domain),
		zap.Int("recipients", len(emails)),
		zap.Int("failures", len(errs)),
	)
	return errors.Join(errs...)
}
