package usecases

import (
	"context"

	"fitout/internal/application/issue/dto"
	"fitout/internal/domain/issue"
	vo "fitout/internal/domain/issue/valueobjects"
	apperrors "fitout/internal/shared/errors"
	"fitout/internal/shared/logger"
)

type UpdateIssueCommand struct {
	SID         string
	IssueType   string
	Description string
	Impact      string
}

type UpdateIssueUseCase struct {
	issues issue.IssueRepository
	logger logger.Interface
}

func NewUpdateIssueUseCase(issues issue.IssueRepository, log logger.Interface) *UpdateIssueUseCase {
	return &UpdateIssueUseCase{issues: issues, logger: log}
}

func (uc *UpdateIssueUseCase) Execute(ctx context.Context, cmd UpdateIssueCommand) (*dto.IssueDTO, error) {
	iss, err := uc.issues.GetBySID(ctx, cmd.SID)
	if err != nil {
		return nil, err
	}

	if err := iss.UpdateDetails(cmd.IssueType, cmd.Description, cmd.Impact); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.issues.Update(ctx, iss); err != nil {
		uc.logger.Errorw("failed to update issue", "error", err, "sid", cmd.SID)
		return nil, err
	}

	uc.logger.Infow("issue updated", "sid", cmd.SID)
	return dto.IssueFromDomain(iss), nil
}

type ChangePriorityCommand struct {
	SID      string
	Priority string
}

type ChangePriorityUseCase struct {
	issues issue.IssueRepository
	logger logger.Interface
}

func NewChangePriorityUseCase(issues issue.IssueRepository, log logger.Interface) *ChangePriorityUseCase {
	return &ChangePriorityUseCase{issues: issues, logger: log}
}

func (uc *ChangePriorityUseCase) Execute(ctx context.Context, cmd ChangePriorityCommand) (*dto.IssueDTO, error) {
	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	iss, err := uc.issues.GetBySID(ctx, cmd.SID)
	if err != nil {
		return nil, err
	}

	if err := iss.ChangePriority(priority); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.issues.Update(ctx, iss); err != nil {
		uc.logger.Errorw("failed to change issue priority", "error", err, "sid", cmd.SID)
		return nil, err
	}

	uc.logger.Infow("issue priority changed", "sid", cmd.SID, "priority", cmd.Priority)
	return dto.IssueFromDomain(iss), nil
}
