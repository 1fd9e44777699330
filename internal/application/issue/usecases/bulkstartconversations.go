package usecases

import (
	"context"

	"fitout/internal/shared/logger"
)

type BulkStartConversationsCommand struct {
	IssueSIDs []string
}

// BulkStartItemResult is the outcome for one issue in a bulk start. A failed
// issue never aborts the rest of the batch.
type BulkStartItemResult struct {
	IssueSID string
	Started  bool
	Error    string
}

type BulkStartConversationsResult struct {
	Results []BulkStartItemResult
	Started int
	Failed  int
}

type BulkStartConversationsUseCase struct {
	start  StartConversationExecutor
	logger logger.Interface
}

func NewBulkStartConversationsUseCase(start StartConversationExecutor, log logger.Interface) *BulkStartConversationsUseCase {
	return &BulkStartConversationsUseCase{start: start, logger: log}
}

// Execute starts conversations one issue at a time. Sequential processing
// keeps SMTP connections and AI calls bounded without extra coordination.
func (uc *BulkStartConversationsUseCase) Execute(ctx context.Context, cmd BulkStartConversationsCommand) (*BulkStartConversationsResult, error) {
	result := &BulkStartConversationsResult{
		Results: make([]BulkStartItemResult, 0, len(cmd.IssueSIDs)),
	}

	for _, sid := range cmd.IssueSIDs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		_, err := uc.start.Execute(ctx, StartConversationCommand{IssueSID: sid})
		item := BulkStartItemResult{IssueSID: sid, Started: err == nil}
		if err != nil {
			item.Error = err.Error()
			result.Failed++
			uc.logger.Warnw("bulk conversation start failed for issue", "sid", sid, "error", err)
		} else {
			result.Started++
		}
		result.Results = append(result.Results, item)
	}

	uc.logger.Infow("bulk conversation start completed",
		"requested", len(cmd.IssueSIDs), "started", result.Started, "failed", result.Failed)
	return result, nil
}
