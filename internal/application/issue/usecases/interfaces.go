package usecases

import (
	"context"

	"fitout/internal/application/issue/dto"
)

type CreateIssueExecutor interface {
	Execute(ctx context.Context, cmd CreateIssueCommand) (*CreateIssueResult, error)
}

type UpdateIssueExecutor interface {
	Execute(ctx context.Context, cmd UpdateIssueCommand) (*dto.IssueDTO, error)
}

type ChangePriorityExecutor interface {
	Execute(ctx context.Context, cmd ChangePriorityCommand) (*dto.IssueDTO, error)
}

type CloseIssueExecutor interface {
	Execute(ctx context.Context, cmd CloseIssueCommand) (*dto.IssueDTO, error)
}

type GetIssueExecutor interface {
	Execute(ctx context.Context, query GetIssueQuery) (*dto.IssueDTO, error)
}

type ListIssuesExecutor interface {
	Execute(ctx context.Context, query ListIssuesQuery) (*ListIssuesResult, error)
}

type GetThreadExecutor interface {
	Execute(ctx context.Context, query GetThreadQuery) (*dto.ThreadDTO, error)
}

type StartConversationExecutor interface {
	Execute(ctx context.Context, cmd StartConversationCommand) (*StartConversationResult, error)
}

type BulkStartConversationsExecutor interface {
	Execute(ctx context.Context, cmd BulkStartConversationsCommand) (*BulkStartConversationsResult, error)
}

type DraftReplyExecutor interface {
	Execute(ctx context.Context, cmd DraftReplyCommand) (*DraftReplyResult, error)
}

type ApproveReplyExecutor interface {
	Execute(ctx context.Context, cmd ApproveReplyCommand) (*ApproveReplyResult, error)
}

type RejectReplyExecutor interface {
	Execute(ctx context.Context, cmd RejectReplyCommand) (*RejectReplyResult, error)
}

type SendManualMessageExecutor interface {
	Execute(ctx context.Context, cmd SendManualMessageCommand) (*SendManualMessageResult, error)
}
