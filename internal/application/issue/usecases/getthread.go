package usecases

import (
	"context"

	"fitout/internal/application/issue/dto"
	"fitout/internal/domain/issue"
	"fitout/internal/shared/logger"
)

type GetThreadQuery struct {
	SID string
}

// GetThreadUseCase returns an issue together with its full conversation
// log, oldest message first.
type GetThreadUseCase struct {
	issues   issue.IssueRepository
	messages issue.MessageRepository
	logger   logger.Interface
}

func NewGetThreadUseCase(issues issue.IssueRepository, messages issue.MessageRepository, log logger.Interface) *GetThreadUseCase {
	return &GetThreadUseCase{issues: issues, messages: messages, logger: log}
}

func (uc *GetThreadUseCase) Execute(ctx context.Context, query GetThreadQuery) (*dto.ThreadDTO, error) {
	iss, err := uc.issues.GetBySID(ctx, query.SID)
	if err != nil {
		return nil, err
	}

	msgs, err := uc.messages.ListByIssueID(ctx, iss.ID())
	if err != nil {
		uc.logger.Errorw("failed to load issue thread", "error", err, "sid", query.SID)
		return nil, err
	}

	messageDTOs := make([]dto.MessageDTO, 0, len(msgs))
	for _, m := range msgs {
		messageDTOs = append(messageDTOs, dto.MessageFromDomain(m))
	}

	return &dto.ThreadDTO{
		Issue:    dto.IssueFromDomain(iss),
		Messages: messageDTOs,
	}, nil
}
