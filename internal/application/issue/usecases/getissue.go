package usecases

import (
	"context"

	"fitout/internal/application/issue/dto"
	"fitout/internal/domain/issue"
	"fitout/internal/shared/logger"
)

type GetIssueQuery struct {
	SID string
}

type GetIssueUseCase struct {
	issues issue.IssueRepository
	logger logger.Interface
}

func NewGetIssueUseCase(issues issue.IssueRepository, log logger.Interface) *GetIssueUseCase {
	return &GetIssueUseCase{issues: issues, logger: log}
}

func (uc *GetIssueUseCase) Execute(ctx context.Context, query GetIssueQuery) (*dto.IssueDTO, error) {
	iss, err := uc.issues.GetBySID(ctx, query.SID)
	if err != nil {
		return nil, err
	}
	return dto.IssueFromDomain(iss), nil
}
