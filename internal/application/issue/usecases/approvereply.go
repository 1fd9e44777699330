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

type ApproveReplyCommand struct {
	IssueSID   string
	MessageID  uint
	ApproverID uint
	// EditedBody optionally replaces the draft text before sending.
	EditedBody string
}

type ApproveReplyResult struct {
	MessageID uint
	Status    string
}

type ApproveReplyUseCase struct {
	issues     issue.IssueRepository
	messages   issue.MessageRepository
	vendors    vendor.Repository
	composer   *email.Composer
	dispatcher events.EventPublisher
	logger     logger.Interface
}

func NewApproveReplyUseCase(
	issues issue.IssueRepository,
	messages issue.MessageRepository,
	vendors vendor.Repository,
	composer *email.Composer,
	dispatcher events.EventPublisher,
	log logger.Interface,
) *ApproveReplyUseCase {
	return &ApproveReplyUseCase{
		issues:     issues,
		messages:   messages,
		vendors:    vendors,
		composer:   composer,
		dispatcher: dispatcher,
		logger:     log,
	}
}

func (uc *ApproveReplyUseCase) Execute(ctx context.Context, cmd ApproveReplyCommand) (*ApproveReplyResult, error) {
	iss, err := uc.issues.GetBySID(ctx, cmd.IssueSID)
	if err != nil {
		return nil, err
	}

	draft, err := uc.messages.GetByID(ctx, cmd.MessageID)
	if err != nil {
		return nil, err
	}
	if draft.IssueID() != iss.ID() {
		return nil, apperrors.NewValidationError("message does not belong to this issue")
	}
	if !draft.Status().IsPendingApproval() {
		return nil, apperrors.NewValidationError("only pending drafts can be approved")
	}

	if cmd.EditedBody != "" {
		if err := draft.EditBody(cmd.EditedBody); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if err := draft.Approve(cmd.ApproverID); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.messages.Update(ctx, draft); err != nil {
		return nil, err
	}

	vnd, err := uc.vendors.GetByID(ctx, iss.VendorID())
	if err != nil {
		return nil, err
	}
	if !vnd.HasEmail() {
		return nil, apperrors.NewValidationError("vendor has no email address")
	}

	sent, err := uc.composer.SendReply(ctx, iss, draft, vnd.Email())
	if err != nil {
		uc.logger.Errorw("approved reply delivery failed", "error", err, "sid", cmd.IssueSID, "message_id", cmd.MessageID)
		return nil, err
	}

	if sent.ID() != draft.ID() {
		// Duplicate-send guard fired: nothing went out, so report the
		// message that was already sent instead of a fresh delivery.
		uc.logger.Infow("duplicate reply suppressed, returning prior message",
			"sid", cmd.IssueSID, "message_id", cmd.MessageID, "prior_message_id", sent.ID())
		return &ApproveReplyResult{
			MessageID: sent.ID(),
			Status:    sent.Status().String(),
		}, nil
	}

	publishEvent(uc.dispatcher, uc.logger, issue.NewMessageSentEvent(iss, draft.ID(), vnd.Email()))
	uc.logger.Infow("reply approved and sent",
		"sid", cmd.IssueSID, "message_id", cmd.MessageID, "approver_id", cmd.ApproverID)

	return &ApproveReplyResult{
		MessageID: draft.ID(),
		Status:    draft.Status().String(),
	}, nil
}
