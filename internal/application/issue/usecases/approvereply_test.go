package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitout/internal/domain/issue"
	vo "fitout/internal/domain/issue/valueobjects"
	"fitout/internal/domain/vendor"
	apperrors "fitout/internal/shared/errors"
	"fitout/internal/shared/logger"
)

func newApproveReplyFixture(t *testing.T) (*ApproveReplyUseCase, *mockIssueRepo, *mockMessageRepo, *mockMailer) {
	t.Helper()
	issues := &mockIssueRepo{}
	messages := &mockMessageRepo{}
	mailer := &mockMailer{}
	uc := NewApproveReplyUseCase(
		issues,
		messages,
		&mockVendorRepo{getByIDFunc: func(ctx context.Context, id uint) (*vendor.Vendor, error) {
			return newTestVendor(t, "mika@nordicjoinery.test"), nil
		}},
		newTestComposer(t, mailer, messages),
		&mockEventPublisher{},
		logger.NewLogger(),
	)
	return uc, issues, messages, mailer
}

func TestApproveReply_SendsApprovedDraft(t *testing.T) {
	uc, issues, messages, mailer := newApproveReplyFixture(t)

	iss := newTestIssue(t, vo.StatusPendingVendor, "tok1234567890abc")
	draft := newPendingDraft(t, iss.ID())
	issues.getBySIDFunc = func(ctx context.Context, sid string) (*issue.Issue, error) { return iss, nil }
	messages.getByIDFunc = func(ctx context.Context, messageID uint) (*issue.Message, error) { return draft, nil }

	result, err := uc.Execute(context.Background(), ApproveReplyCommand{
		IssueSID:   iss.SID(),
		MessageID:  draft.ID(),
		ApproverID: 42,
	})
	require.NoError(t, err)

	assert.Equal(t, draft.ID(), result.MessageID)
	assert.Equal(t, vo.MessageStatusSent.String(), result.Status)
	require.NotNil(t, draft.ApproverID())
	assert.Equal(t, uint(42), *draft.ApproverID())
	require.Len(t, mailer.sent, 1)
	// One update for the approval stamp, one when the composer marks it sent.
	require.Len(t, messages.updated, 2)
}

func TestApproveReply_EditedBodyReplacesDraft(t *testing.T) {
	uc, issues, messages, mailer := newApproveReplyFixture(t)

	iss := newTestIssue(t, vo.StatusPendingVendor, "tok1234567890abc")
	draft := newPendingDraft(t, iss.ID())
	issues.getBySIDFunc = func(ctx context.Context, sid string) (*issue.Issue, error) { return iss, nil }
	messages.getByIDFunc = func(ctx context.Context, messageID uint) (*issue.Message, error) { return draft, nil }

	_, err := uc.Execute(context.Background(), ApproveReplyCommand{
		IssueSID:   iss.SID(),
		MessageID:  draft.ID(),
		ApproverID: 42,
		EditedBody: "Please deliver the replacement panel by Friday.",
	})
	require.NoError(t, err)

	assert.Equal(t, "Please deliver the replacement panel by Friday.", draft.Body())
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].mail.PlainBody, "replacement panel by Friday")
}

func TestApproveReply_DuplicateSendReturnsPriorMessage(t *testing.T) {
	issues := &mockIssueRepo{}
	messages := &mockMessageRepo{}
	mailer := &mockMailer{}
	publisher := &mockEventPublisher{}
	uc := NewApproveReplyUseCase(
		issues,
		messages,
		&mockVendorRepo{getByIDFunc: func(ctx context.Context, id uint) (*vendor.Vendor, error) {
			return newTestVendor(t, "mika@nordicjoinery.test"), nil
		}},
		newTestComposer(t, mailer, messages),
		publisher,
		logger.NewLogger(),
	)

	iss := newTestIssue(t, vo.StatusPendingVendor, "tok1234567890abc")
	draft := newPendingDraft(t, iss.ID())
	prior, err := issue.NewMessage(iss.ID(), vo.SenderAI, vo.MessageStatusSent, "[Issue #iss_test1234] Re: damage issue", draft.Body())
	require.NoError(t, err)
	require.NoError(t, prior.SetID(draft.ID()+50))
	prior.SetRFCMessageID("<prior@fitout.test>")

	issues.getBySIDFunc = func(ctx context.Context, sid string) (*issue.Issue, error) { return iss, nil }
	messages.getByIDFunc = func(ctx context.Context, messageID uint) (*issue.Message, error) { return draft, nil }
	messages.findRecentSentFunc = func(ctx context.Context, issueID uint, to, subject, body string, since time.Time) (*issue.Message, error) {
		return prior, nil
	}

	result, err := uc.Execute(context.Background(), ApproveReplyCommand{
		IssueSID:   iss.SID(),
		MessageID:  draft.ID(),
		ApproverID: 42,
	})
	require.NoError(t, err)

	// The response points at the mail that already went out; nothing new is
	// delivered and no sent event fires.
	assert.Equal(t, prior.ID(), result.MessageID)
	assert.Equal(t, vo.MessageStatusSent.String(), result.Status)
	assert.Empty(t, mailer.sent)
	assert.Empty(t, publisher.published)
	assert.Equal(t, vo.MessageStatusFailed, draft.Status())
}

func TestApproveReply_RejectsForeignDraft(t *testing.T) {
	uc, issues, messages, mailer := newApproveReplyFixture(t)

	iss := newTestIssue(t, vo.StatusPendingVendor, "tok1234567890abc")
	foreign := newPendingDraft(t, iss.ID()+99)
	issues.getBySIDFunc = func(ctx context.Context, sid string) (*issue.Issue, error) { return iss, nil }
	messages.getByIDFunc = func(ctx context.Context, messageID uint) (*issue.Message, error) { return foreign, nil }

	_, err := uc.Execute(context.Background(), ApproveReplyCommand{
		IssueSID:   iss.SID(),
		MessageID:  foreign.ID(),
		ApproverID: 42,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	assert.Empty(t, mailer.sent)
}

func TestApproveReply_RejectsNonPendingDraft(t *testing.T) {
	uc, issues, messages, mailer := newApproveReplyFixture(t)

	iss := newTestIssue(t, vo.StatusPendingVendor, "tok1234567890abc")
	draft := newPendingDraft(t, iss.ID())
	require.NoError(t, draft.MarkFailed())
	issues.getBySIDFunc = func(ctx context.Context, sid string) (*issue.Issue, error) { return iss, nil }
	messages.getByIDFunc = func(ctx context.Context, messageID uint) (*issue.Message, error) { return draft, nil }

	_, err := uc.Execute(context.Background(), ApproveReplyCommand{
		IssueSID:   iss.SID(),
		MessageID:  draft.ID(),
		ApproverID: 42,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	assert.Empty(t, mailer.sent)
}
