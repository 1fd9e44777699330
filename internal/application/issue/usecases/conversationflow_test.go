package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitout/internal/domain/issue"
	vo "fitout/internal/domain/issue/valueobjects"
	"fitout/internal/domain/vendor"
	"fitout/internal/infrastructure/imap"
	apperrors "fitout/internal/shared/errors"
	"fitout/internal/shared/logger"
	"fitout/internal/shared/token"
)

// Chains activation, inbound correlation, and reply handling through the
// real composer and matcher: the outbound report's own headers and subject
// must route the vendor's answer back to the same issue, and handling that
// answer must log the vendor message and queue a follow-up draft.
func TestConversationFlow_ActivateMatchDraft(t *testing.T) {
	issues := &mockIssueRepo{}
	messages := &mockMessageRepo{}
	mailer := &mockMailer{}
	drafter := &mockDrafter{}
	notifier := &mockNotifier{}
	vendors := &mockVendorRepo{getByIDFunc: func(ctx context.Context, id uint) (*vendor.Vendor, error) {
		return newTestVendor(t, "mika@nordicjoinery.test"), nil
	}}
	composer := newTestComposer(t, mailer, messages)
	log := logger.NewLogger()

	iss := newTestIssue(t, vo.StatusOpen, "")
	issues.getBySIDFunc = func(ctx context.Context, sid string) (*issue.Issue, error) {
		if sid == iss.SID() {
			return iss, nil
		}
		return nil, apperrors.NewNotFoundError("issue not found")
	}
	issues.getByThreadTokenFunc = func(ctx context.Context, tok string) (*issue.Issue, error) {
		if tok != "" && tok == iss.ThreadToken() {
			return iss, nil
		}
		return nil, apperrors.NewNotFoundError("issue not found")
	}

	publisher := &mockEventPublisher{}
	start := NewStartConversationUseCase(issues, vendors, &mockApartmentRepo{}, drafter, composer, publisher, log)
	result, err := start.Execute(context.Background(), StartConversationCommand{IssueSID: iss.SID()})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusPendingVendor.String(), result.Status)

	require.Len(t, mailer.sent, 1)
	initial := mailer.sent[0].mail

	signer, err := token.NewSigner("test-secret")
	require.NoError(t, err)
	matcher := imap.NewMatcher(issues, signer, log)

	reply := &imap.InboundEmail{
		Subject:      "Re: " + initial.Subject,
		FromAddress:  "mika@nordicjoinery.test",
		RFCMessageID: "<reply-1@nordicjoinery.test>",
		IssueToken:   initial.Headers["X-Issue-Token"],
		ThreadSlug:   initial.Headers["X-Issue-Thread"],
		Body:         "We will send a replacement panel next week.",
	}

	matched, err := matcher.Match(context.Background(), reply)
	require.NoError(t, err)
	require.NotNil(t, matched)
	assert.Equal(t, iss.SID(), matched.SID())

	// A vendor mail system that strips custom headers still correlates
	// through the quoted subject tag.
	stripped := &imap.InboundEmail{
		Subject: "Re: " + initial.Subject,
		Body:    "See attached photos.",
	}
	matchedBySubject, err := matcher.Match(context.Background(), stripped)
	require.NoError(t, err)
	require.NotNil(t, matchedBySubject)
	assert.Equal(t, iss.SID(), matchedBySubject.SID())

	handle := NewHandleInboundUseCase(
		issues, messages, vendors, &mockApartmentRepo{},
		drafter, composer, notifier, publisher,
		false, 0.8, log,
	)
	require.NoError(t, handle.HandleInbound(context.Background(), matched, reply))

	// Initial report, logged vendor reply, queued AI draft.
	require.Len(t, messages.saved, 3)
	assert.Equal(t, vo.MessageStatusSent, messages.saved[0].Status())

	vendorMsg := messages.saved[1]
	assert.Equal(t, vo.SenderVendor, vendorMsg.Sender())
	assert.Equal(t, iss.ID(), vendorMsg.IssueID())
	assert.Equal(t, "<reply-1@nordicjoinery.test>", vendorMsg.RFCMessageID())

	draft := messages.saved[2]
	assert.Equal(t, vo.SenderAI, draft.Sender())
	assert.True(t, draft.Status().IsPendingApproval())

	// The draft awaits approval, so only the initial report went out.
	assert.Len(t, mailer.sent, 1)
	require.Len(t, notifier.calls, 1)

	types := publisher.typesPublished()
	for _, expected := range []string{
		issue.EventConversationStarted,
		issue.EventMessageSent,
		issue.EventIssueStatusChanged,
		issue.EventVendorReplyReceived,
		issue.EventDraftPendingApproval,
	} {
		assert.Contains(t, types, expected)
	}
}
