package usecases

import (
	"context"

	"fitout/internal/application/issue/dto"
	"fitout/internal/domain/issue"
	vo "fitout/internal/domain/issue/valueobjects"
	apperrors "fitout/internal/shared/errors"
	"fitout/internal/shared/logger"
)

type ListIssuesQuery struct {
	Status      string
	Priority    string
	VendorID    *uint
	ApartmentID *uint
	AIActivated *bool
	Search      string
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}

type ListIssuesResult struct {
	Issues []*dto.IssueDTO
	Total  int64
}

type ListIssuesUseCase struct {
	issues issue.IssueRepository
	logger logger.Interface
}

func NewListIssuesUseCase(issues issue.IssueRepository, log logger.Interface) *ListIssuesUseCase {
	return &ListIssuesUseCase{issues: issues, logger: log}
}

func (uc *ListIssuesUseCase) Execute(ctx context.Context, query ListIssuesQuery) (*ListIssuesResult, error) {
	filter := issue.IssueFilter{
		VendorID:    query.VendorID,
		ApartmentID: query.ApartmentID,
		AIActivated: query.AIActivated,
		Search:      query.Search,
		Page:        query.Page,
		PageSize:    query.PageSize,
		SortBy:      query.SortBy,
		SortOrder:   query.SortOrder,
	}

	if query.Status != "" {
		status, err := vo.NewIssueStatus(query.Status)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	if query.Priority != "" {
		priority, err := vo.NewPriority(query.Priority)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		filter.Priority = &priority
	}

	issues, total, err := uc.issues.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list issues", "error", err)
		return nil, err
	}

	dtos := make([]*dto.IssueDTO, 0, len(issues))
	for _, iss := range issues {
		dtos = append(dtos, dto.IssueFromDomain(iss))
	}

	return &ListIssuesResult{Issues: dtos, Total: total}, nil
}
