package usecases

import (
	"context"

	"fitout/internal/domain/issue"
	"fitout/internal/domain/shared/events"
	"fitout/internal/domain/vendor"
	"fitout/internal/infrastructure/email"
	apperrors "fitout/internal/shared/errors"
	"fitout/internal/shared/logger"
)

type SendManualMessageCommand struct {
	IssueSID string
	SenderID uint
	Subject  string
	Body     string
}

type SendManualMessageResult struct {
	MessageID uint
	Status    string
}

// SendManualMessageUseCase delivers an operator-written email on an issue
// thread, bypassing AI drafting but keeping the correlation headers.
type SendManualMessageUseCase struct {
	issues     issue.IssueRepository
	vendors    vendor.Repository
	composer   *email.Composer
	dispatcher events.EventPublisher
	logger     logger.Interface
}

func NewSendManualMessageUseCase(
	issues issue.IssueRepository,
	vendors vendor.Repository,
	composer *email.Composer,
	dispatcher events.EventPublisher,
	log logger.Interface,
) *SendManualMessageUseCase {
	return &SendManualMessageUseCase{
		issues:     issues,
		vendors:    vendors,
		composer:   composer,
		dispatcher: dispatcher,
		logger:     log,
	}
}

func (uc *SendManualMessageUseCase) Execute(ctx context.Context, cmd SendManualMessageCommand) (*SendManualMessageResult, error) {
	if len(cmd.Body) == 0 {
		return nil, apperrors.NewValidationError("body is required")
	}

	iss, err := uc.issues.GetBySID(ctx, cmd.IssueSID)
	if err != nil {
		return nil, err
	}
	if iss.Status().IsClosed() {
		return nil, apperrors.NewValidationError("cannot send messages on a closed issue")
	}
	if iss.ThreadToken() == "" {
		return nil, apperrors.NewValidationError("conversation has not been started for this issue")
	}

	vnd, err := uc.vendors.GetByID(ctx, iss.VendorID())
	if err != nil {
		return nil, err
	}
	if !vnd.HasEmail() {
		return nil, apperrors.NewValidationError("vendor has no email address")
	}

	subject := cmd.Subject
	if subject == "" {
		subject = "Re: " + iss.IssueType() + " issue"
	}

	msg, err := uc.composer.SendManual(ctx, iss, vnd.Email(), subject, cmd.Body)
	if err != nil {
		uc.logger.Errorw("manual message delivery failed", "error", err, "sid", cmd.IssueSID)
		return nil, err
	}

	publishEvent(uc.dispatcher, uc.logger, issue.NewMessageSentEvent(iss, msg.ID(), vnd.Email()))
	uc.logger.Infow("manual message sent", "sid", cmd.IssueSID, "message_id", msg.ID(), "sender_id", cmd.SenderID)

	return &SendManualMessageResult{
		MessageID: msg.ID(),
		Status:    msg.Status().String(),
	}, nil
}
