package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitout/internal/domain/issue"
	vo "fitout/internal/domain/issue/valueobjects"
	"fitout/internal/shared/logger"
)

func TestCloseIssue_ClosesAndLogsNote(t *testing.T) {
	issues := &mockIssueRepo{}
	messages := &mockMessageRepo{}
	publisher := &mockEventPublisher{}
	uc := NewCloseIssueUseCase(issues, messages, publisher, logger.NewLogger())

	iss := newTestIssue(t, vo.StatusResolutionAgreed, "tok1234567890abc")
	issues.getBySIDFunc = func(ctx context.Context, sid string) (*issue.Issue, error) { return iss, nil }

	result, err := uc.Execute(context.Background(), CloseIssueCommand{
		SID:      iss.SID(),
		Note:     "Replacement panel confirmed for Friday.",
		ClosedBy: 42,
	})
	require.NoError(t, err)

	assert.Equal(t, vo.StatusClosed.String(), result.Status)
	assert.NotNil(t, iss.ClosedAt())
	require.Len(t, issues.updated, 1)

	require.Len(t, messages.saved, 1)
	note := messages.saved[0]
	assert.Equal(t, vo.SenderSystem, note.Sender())
	assert.Equal(t, "Replacement panel confirmed for Friday.", note.Body())

	assert.Equal(t, []string{issue.EventIssueStatusChanged}, publisher.typesPublished())
}

func TestCloseIssue_AlreadyClosedIsIdempotent(t *testing.T) {
	issues := &mockIssueRepo{}
	messages := &mockMessageRepo{}
	uc := NewCloseIssueUseCase(issues, messages, &mockEventPublisher{}, logger.NewLogger())

	iss := newTestIssue(t, vo.StatusClosed, "tok1234567890abc")
	issues.getBySIDFunc = func(ctx context.Context, sid string) (*issue.Issue, error) { return iss, nil }

	result, err := uc.Execute(context.Background(), CloseIssueCommand{SID: iss.SID()})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusClosed.String(), result.Status)
	assert.Empty(t, messages.saved)
}

func TestGetThread_ReturnsIssueWithMessages(t *testing.T) {
	issues := &mockIssueRepo{}
	messages := &mockMessageRepo{}
	uc := NewGetThreadUseCase(issues, messages, logger.NewLogger())

	iss := newTestIssue(t, vo.StatusPendingVendor, "tok1234567890abc")
	issues.getBySIDFunc = func(ctx context.Context, sid string) (*issue.Issue, error) { return iss, nil }

	vendorMsg, err := issue.NewVendorMessage(iss.ID(), "Re: issue", "We will check.", "mika@nordicjoinery.test", "<m1@v>", "")
	require.NoError(t, err)
	require.NoError(t, vendorMsg.SetID(3))
	messages.listByIssueIDFunc = func(ctx context.Context, issueID uint) ([]*issue.Message, error) {
		return []*issue.Message{vendorMsg}, nil
	}

	thread, err := uc.Execute(context.Background(), GetThreadQuery{SID: iss.SID()})
	require.NoError(t, err)

	assert.Equal(t, iss.SID(), thread.Issue.SID)
	require.Len(t, thread.Messages, 1)
	assert.Equal(t, uint(3), thread.Messages[0].ID)
	assert.Equal(t, vo.SenderVendor.String(), thread.Messages[0].Sender)
}
