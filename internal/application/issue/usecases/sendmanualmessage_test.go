package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitout/internal/domain/issue"
	vo "fitout/internal/domain/issue/valueobjects"
	"fitout/internal/domain/vendor"
	apperrors "fitout/internal/shared/errors"
	"fitout/internal/shared/logger"
)

func newManualMessageFixture(t *testing.T) (*SendManualMessageUseCase, *mockIssueRepo, *mockMessageRepo, *mockMailer) {
	t.Helper()
	issues := &mockIssueRepo{}
	messages := &mockMessageRepo{}
	mailer := &mockMailer{}
	uc := NewSendManualMessageUseCase(
		issues,
		&mockVendorRepo{getByIDFunc: func(ctx context.Context, id uint) (*vendor.Vendor, error) {
			return newTestVendor(t, "mika@nordicjoinery.test"), nil
		}},
		newTestComposer(t, mailer, messages),
		&mockEventPublisher{},
		logger.NewLogger(),
	)
	return uc, issues, messages, mailer
}

func TestSendManualMessage_Success(t *testing.T) {
	uc, issues, messages, mailer := newManualMessageFixture(t)

	iss := newTestIssue(t, vo.StatusPendingVendor, "tok1234567890abc")
	issues.getBySIDFunc = func(ctx context.Context, sid string) (*issue.Issue, error) { return iss, nil }

	result, err := uc.Execute(context.Background(), SendManualMessageCommand{
		IssueSID: iss.SID(),
		SenderID: 42,
		Body:     "Calling you tomorrow morning to agree on a date.",
	})
	require.NoError(t, err)

	assert.Equal(t, vo.MessageStatusSent.String(), result.Status)
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].mail.Subject, "[Issue #"+iss.SID()+"] Re: damage issue")

	require.Len(t, messages.saved, 1)
	assert.Equal(t, vo.SenderAdmin, messages.saved[0].Sender())
}

func TestSendManualMessage_RequiresBody(t *testing.T) {
	uc, _, _, mailer := newManualMessageFixture(t)

	_, err := uc.Execute(context.Background(), SendManualMessageCommand{IssueSID: "iss_test1234"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	assert.Empty(t, mailer.sent)
}

func TestSendManualMessage_RejectsClosedIssue(t *testing.T) {
	uc, issues, _, mailer := newManualMessageFixture(t)

	iss := newTestIssue(t, vo.StatusClosed, "tok1234567890abc")
	issues.getBySIDFunc = func(ctx context.Context, sid string) (*issue.Issue, error) { return iss, nil }

	_, err := uc.Execute(context.Background(), SendManualMessageCommand{
		IssueSID: iss.SID(),
		Body:     "hello",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	assert.Empty(t, mailer.sent)
}

func TestSendManualMessage_RequiresStartedConversation(t *testing.T) {
	uc, issues, _, mailer := newManualMessageFixture(t)

	iss := newTestIssue(t, vo.StatusOpen, "")
	issues.getBySIDFunc = func(ctx context.Context, sid string) (*issue.Issue, error) { return iss, nil }

	_, err := uc.Execute(context.Background(), SendManualMessageCommand{
		IssueSID: iss.SID(),
		Body:     "hello",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	assert.Empty(t, mailer.sent)
}
