package usecases

import (
	"context"

	"fitout/internal/application/issue/dto"
	"fitout/internal/domain/issue"
	"fitout/internal/domain/shared/events"
	apperrors "fitout/internal/shared/errors"
	"fitout/internal/shared/logger"
)

type CloseIssueCommand struct {
	SID string
	// Note is an optional internal remark logged alongside the close.
	Note string
	// ClosedBy is the acting user, recorded in the note.
	ClosedBy uint
}

type CloseIssueUseCase struct {
	issues     issue.IssueRepository
	messages   issue.MessageRepository
	dispatcher events.EventPublisher
	logger     logger.Interface
}

func NewCloseIssueUseCase(issues issue.IssueRepository, messages issue.MessageRepository, dispatcher events.EventPublisher, log logger.Interface) *CloseIssueUseCase {
	return &CloseIssueUseCase{issues: issues, messages: messages, dispatcher: dispatcher, logger: log}
}

func (uc *CloseIssueUseCase) Execute(ctx context.Context, cmd CloseIssueCommand) (*dto.IssueDTO, error) {
	iss, err := uc.issues.GetBySID(ctx, cmd.SID)
	if err != nil {
		return nil, err
	}

	oldStatus := iss.Status().String()
	if err := iss.Close(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.issues.Update(ctx, iss); err != nil {
		uc.logger.Errorw("failed to close issue", "error", err, "sid", cmd.SID)
		return nil, err
	}
	if newStatus := iss.Status().String(); newStatus != oldStatus {
		publishEvent(uc.dispatcher, uc.logger, issue.NewIssueStatusChangedEvent(iss, oldStatus, newStatus))
	}

	if cmd.Note != "" {
		note, err := issue.NewSystemNote(iss.ID(), cmd.Note)
		if err == nil {
			if err := uc.messages.Save(ctx, note); err != nil {
				uc.logger.Warnw("failed to log close note", "error", err, "sid", cmd.SID)
			}
		}
	}

	uc.logger.Infow("issue closed", "sid", cmd.SID, "closed_by", cmd.ClosedBy)
	return dto.IssueFromDomain(iss), nil
}
