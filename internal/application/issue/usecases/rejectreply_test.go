package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitout/internal/domain/issue"
	vo "fitout/internal/domain/issue/valueobjects"
	apperrors "fitout/internal/shared/errors"
	"fitout/internal/shared/logger"
)

func TestRejectReply_MarksDraftFailedAndLogsNote(t *testing.T) {
	issues := &mockIssueRepo{}
	messages := &mockMessageRepo{}
	uc := NewRejectReplyUseCase(issues, messages, logger.NewLogger())

	iss := newTestIssue(t, vo.StatusPendingVendor, "tok1234567890abc")
	draft := newPendingDraft(t, iss.ID())
	issues.getBySIDFunc = func(ctx context.Context, sid string) (*issue.Issue, error) { return iss, nil }
	messages.getByIDFunc = func(ctx context.Context, messageID uint) (*issue.Message, error) { return draft, nil }

	result, err := uc.Execute(context.Background(), RejectReplyCommand{
		IssueSID:   iss.SID(),
		MessageID:  draft.ID(),
		RejectorID: 42,
		Reason:     "tone too apologetic",
	})
	require.NoError(t, err)

	assert.Equal(t, vo.MessageStatusFailed.String(), result.Status)
	assert.True(t, draft.Status().IsFailed())
	require.Len(t, messages.updated, 1)

	require.Len(t, messages.saved, 1)
	note := messages.saved[0]
	assert.Equal(t, vo.SenderSystem, note.Sender())
	assert.Contains(t, note.Body(), "rejected by user 42")
	assert.Contains(t, note.Body(), "tone too apologetic")
}

func TestRejectReply_RejectsNonPendingDraft(t *testing.T) {
	issues := &mockIssueRepo{}
	messages := &mockMessageRepo{}
	uc := NewRejectReplyUseCase(issues, messages, logger.NewLogger())

	iss := newTestIssue(t, vo.StatusPendingVendor, "tok1234567890abc")
	draft := newPendingDraft(t, iss.ID())
	require.NoError(t, draft.MarkFailed())
	issues.getBySIDFunc = func(ctx context.Context, sid string) (*issue.Issue, error) { return iss, nil }
	messages.getByIDFunc = func(ctx context.Context, messageID uint) (*issue.Message, error) { return draft, nil }

	_, err := uc.Execute(context.Background(), RejectReplyCommand{
		IssueSID:   iss.SID(),
		MessageID:  draft.ID(),
		RejectorID: 42,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	assert.Empty(t, messages.updated)
}
