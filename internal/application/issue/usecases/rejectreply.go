package usecases

import (
	"context"
	"fmt"

	"fitout/internal/domain/issue"
	apperrors "fitout/internal/shared/errors"
	"fitout/internal/shared/logger"
)

type RejectReplyCommand struct {
	IssueSID   string
	MessageID  uint
	RejectorID uint
	Reason     string
}

type RejectReplyResult struct {
	MessageID uint
	Status    string
}

type RejectReplyUseCase struct {
	issues   issue.IssueRepository
	messages issue.MessageRepository
	logger   logger.Interface
}

func NewRejectReplyUseCase(issues issue.IssueRepository, messages issue.MessageRepository, log logger.Interface) *RejectReplyUseCase {
	return &RejectReplyUseCase{issues: issues, messages: messages, logger: log}
}

func (uc *RejectReplyUseCase) Execute(ctx context.Context, cmd RejectReplyCommand) (*RejectReplyResult, error) {
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
		return nil, apperrors.NewValidationError("only pending drafts can be rejected")
	}

	if err := draft.MarkFailed(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.messages.Update(ctx, draft); err != nil {
		return nil, err
	}

	noteBody := fmt.Sprintf("Draft %d rejected by user %d.", draft.ID(), cmd.RejectorID)
	if cmd.Reason != "" {
		noteBody += " Reason: " + cmd.Reason
	}
	if note, noteErr := issue.NewSystemNote(iss.ID(), noteBody); noteErr == nil {
		if err := uc.messages.Save(ctx, note); err != nil {
			uc.logger.Warnw("failed to log rejection note", "error", err, "sid", cmd.IssueSID)
		}
	}

	uc.logger.Infow("reply draft rejected",
		"sid", cmd.IssueSID, "message_id", cmd.MessageID, "rejector_id", cmd.RejectorID)

	return &RejectReplyResult{
		MessageID: draft.ID(),
		Status:    draft.Status().String(),
	}, nil
}
