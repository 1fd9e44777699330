package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitout/internal/domain/issue"
	vo "fitout/internal/domain/issue/valueobjects"
	"fitout/internal/domain/vendor"
	"fitout/internal/infrastructure/ai"
	"fitout/internal/shared/logger"
)

type draftReplyFixture struct {
	uc       *DraftReplyUseCase
	issues   *mockIssueRepo
	messages *mockMessageRepo
	drafter  *mockDrafter
}

func newDraftReplyFixture(t *testing.T) *draftReplyFixture {
	t.Helper()
	f := &draftReplyFixture{
		issues:   &mockIssueRepo{},
		messages: &mockMessageRepo{},
		drafter:  &mockDrafter{},
	}
	f.uc = NewDraftReplyUseCase(
		f.issues,
		f.messages,
		&mockVendorRepo{getByIDFunc: func(ctx context.Context, id uint) (*vendor.Vendor, error) {
			return newTestVendor(t, "mika@nordicjoinery.test"), nil
		}},
		&mockApartmentRepo{},
		f.drafter,
		logger.NewLogger(),
	)
	return f
}

func TestDraftReply_QueuesDraftForApproval(t *testing.T) {
	f := newDraftReplyFixture(t)
	iss := newTestIssue(t, vo.StatusPendingVendor, "tok1234567890abc")
	f.issues.getBySIDFunc = func(ctx context.Context, sid string) (*issue.Issue, error) {
		return iss, nil
	}
	f.messages.listByIssueIDFunc = func(ctx context.Context, issueID uint) ([]*issue.Message, error) {
		msg, err := issue.NewVendorMessage(issueID, "Re: damage", "We need a photo of the scratch.",
			"mika@nordicjoinery.test", "<reply-1@nordicjoinery.test>", "")
		require.NoError(t, err)
		return []*issue.Message{msg}, nil
	}

	var gotLatest string
	f.drafter.draftReplyFunc = func(ctx context.Context, issueCtx ai.IssueContext, history []ai.ConversationEntry, latest string) (*ai.ReplyDraft, error) {
		gotLatest = latest
		return &ai.ReplyDraft{Reply: "Photos attached, please advise.", Confidence: 0.92, GeneratedBy: "mock"}, nil
	}

	result, err := f.uc.Execute(context.Background(), DraftReplyCommand{IssueSID: "iss_test1234"})
	require.NoError(t, err)

	assert.Equal(t, "We need a photo of the scratch.", gotLatest)
	assert.InDelta(t, 0.92, result.Confidence, 0.001)
	assert.False(t, result.Fallback)

	require.Len(t, f.messages.saved, 1)
	draft := f.messages.saved[0]
	assert.Equal(t, vo.SenderAI, draft.Sender())
	assert.True(t, draft.Status().IsPendingApproval())
	assert.Equal(t, "Photos attached, please advise.", draft.Body())
	assert.Equal(t, result.MessageID, draft.ID())
}

func TestDraftReply_HighConfidenceStillNeedsApproval(t *testing.T) {
	f := newDraftReplyFixture(t)
	iss := newTestIssue(t, vo.StatusPendingVendor, "tok1234567890abc")
	f.issues.getBySIDFunc = func(ctx context.Context, sid string) (*issue.Issue, error) {
		return iss, nil
	}
	f.drafter.draftReplyFunc = func(ctx context.Context, issueCtx ai.IssueContext, history []ai.ConversationEntry, latest string) (*ai.ReplyDraft, error) {
		return &ai.ReplyDraft{Reply: "Confirmed.", Confidence: 0.99, GeneratedBy: "mock"}, nil
	}

	result, err := f.uc.Execute(context.Background(), DraftReplyCommand{IssueSID: "iss_test1234"})
	require.NoError(t, err)

	assert.Equal(t, vo.MessageStatusPendingApproval.String(), result.Status)
}

func TestDraftReply_ClosedIssueRejected(t *testing.T) {
	f := newDraftReplyFixture(t)
	iss := newTestIssue(t, vo.StatusClosed, "tok1234567890abc")
	f.issues.getBySIDFunc = func(ctx context.Context, sid string) (*issue.Issue, error) {
		return iss, nil
	}

	_, err := f.uc.Execute(context.Background(), DraftReplyCommand{IssueSID: "iss_test1234"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed issue")
	assert.Empty(t, f.messages.saved)
}

func TestDraftReply_ConversationNotStarted(t *testing.T) {
	f := newDraftReplyFixture(t)
	iss := newTestIssue(t, vo.StatusOpen, "")
	f.issues.getBySIDFunc = func(ctx context.Context, sid string) (*issue.Issue, error) {
		return iss, nil
	}

	_, err := f.uc.Execute(context.Background(), DraftReplyCommand{IssueSID: "iss_test1234"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has not been started")
}

func TestDraftReply_DrafterFailureSurfaced(t *testing.T) {
	f := newDraftReplyFixture(t)
	iss := newTestIssue(t, vo.StatusPendingVendor, "tok1234567890abc")
	f.issues.getBySIDFunc = func(ctx context.Context, sid string) (*issue.Issue, error) {
		return iss, nil
	}
	f.drafter.draftReplyFunc = func(ctx context.Context, issueCtx ai.IssueContext, history []ai.ConversationEntry, latest string) (*ai.ReplyDraft, error) {
		return nil, fmt.Errorf("provider unavailable")
	}

	_, err := f.uc.Execute(context.Background(), DraftReplyCommand{IssueSID: "iss_test1234"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to draft reply")
	assert.Empty(t, f.messages.saved)
}
