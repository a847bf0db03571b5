package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/integration/waitlist"
)

const waitlistReceived = "received"

type SubmitWaitlistInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type SubmitWaitlistOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SubmitWaitlistUseCase struct {
	Leads        entity.LeadRepositoryInterface
	Webhook      WaitlistForwarder
	EmailService EmailService
	Logger       *zap.Logger
}

func NewSubmitWaitlistUseCase(leads entity.LeadRepositoryInterface, webhook WaitlistForwarder, emailService EmailService, logger *zap.Logger) *SubmitWaitlistUseCase {
	return &SubmitWaitlistUseCase{
		Leads:        leads,
		Webhook:      webhook,
		EmailService: emailService,
		Logger:       logger,
	}
}

func (uc *SubmitWaitlistUseCase) Execute(ctx context.Context, input SubmitWaitlistInput) (*SubmitWaitlistOutput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)

	if errs := ValidateWaitlistInput(input); len(errs) > 0 {
		return nil, validationError("Invalid waitlist submission", errs)
	}

	lead := &entity.Lead{Email: input.Email, Name: input.Name, Phone: input.Phone}
	if err := uc.Leads.Upsert(ctx, lead); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "Failed to save waitlist entry", Err: err}
	}

	if !uc.Webhook.Configured() {
		uc.Logger.Error("waitlist webhook url not configured")
		return nil, &TechnicalError{Code: CodeMisconfigured, Message: "Webhook URL not configured"}
	}

	reply, err := uc.Webhook.Submit(ctx, waitlist.Form{Name: input.Name, Email: input.Email, Phone: input.Phone})
	if err == nil && reply.Status != waitlistReceived {
		err = &waitlist.StatusError{StatusCode: 200, Body: "unexpected status: " + reply.Status}
	}
	if err != nil {
		uc.Logger.Error("waitlist webhook failed", zap.String("email", MaskEmail(input.Email)), zap.Error(err))
		uc.markLead(ctx, input.Email, entity.LeadFailed)
		return nil, &TechnicalError{
			Code:    CodeUpstreamDown,
			Message: "Failed to submit to waitlist, please try again later",
			Err:     err,
		}
	}

	uc.markLead(ctx, input.Email, entity.LeadForwarded)

	if uc.EmailService != nil {
		go func() {
			if err := uc.EmailService.SendWaitlistConfirmation(input.Email, input.Name); err != nil {
				uc.Logger.Warn("waitlist confirmation email failed", zap.String("email", MaskEmail(input.Email)), zap.Error(err))
			}
		}()
	}

	msg := "Successfully joined the waitlist"
	if reply.Message != "" {
		msg = reply.Message
	}
	return &SubmitWaitlistOutput{Success: true, Message: msg}, nil
}

func (uc *SubmitWaitlistUseCase) markLead(ctx context.Context, email, status string) {
	if err := uc.Leads.UpdateStatus(ctx, email, status); err != nil {
		uc.Logger.Warn("failed to update lead status", zap.String("status", status), zap.Error(err))
	}
}
