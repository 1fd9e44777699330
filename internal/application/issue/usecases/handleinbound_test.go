package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitout/internal/domain/issue"
	vo "fitout/internal/domain/issue/valueobjects"
	"fitout/internal/domain/notification"
	"fitout/internal/domain/vendor"
	"fitout/internal/infrastructure/ai"
	"fitout/internal/infrastructure/imap"
	"fitout/internal/shared/logger"
)

type inboundFixture struct {
	uc        *HandleInboundUseCase
	issues    *mockIssueRepo
	messages  *mockMessageRepo
	drafter   *mockDrafter
	notifier  *mockNotifier
	mailer    *mockMailer
	publisher *mockEventPublisher
}

func newInboundFixture(t *testing.T, autoApprove bool, threshold float64) *inboundFixture {
	t.Helper()
	f := &inboundFixture{
		issues:    &mockIssueRepo{},
		messages:  &mockMessageRepo{},
		drafter:   &mockDrafter{},
		notifier:  &mockNotifier{},
		mailer:    &mockMailer{},
		publisher: &mockEventPublisher{},
	}
	f.uc = NewHandleInboundUseCase(
		f.issues,
		f.messages,
		&mockVendorRepo{getByIDFunc: func(ctx context.Context, id uint) (*vendor.Vendor, error) {
			return newTestVendor(t, "mika@nordicjoinery.test"), nil
		}},
		&mockApartmentRepo{},
		f.drafter,
		newTestComposer(t, f.mailer, f.messages),
		f.notifier,
		f.publisher,
		autoApprove,
		threshold,
		logger.NewLogger(),
	)
	return f
}

func vendorReply(body string) *imap.InboundEmail {
	return &imap.InboundEmail{
		Subject:      "Re: [Issue #iss_test1234] Damage issue report",
		FromAddress:  "mika@nordicjoinery.test",
		RFCMessageID: "<reply-1@nordicjoinery.test>",
		InReplyTo:    "<initial@fitout.test>",
		Body:         body,
	}
}

func TestHandleInbound_QueuesDraftForApproval(t *testing.T) {
	f := newInboundFixture(t, false, 0.8)
	iss := newTestIssue(t, vo.StatusPendingVendor, "tok1234567890abc")

	err := f.uc.HandleInbound(context.Background(), iss, vendorReply("We will look into it."))
	require.NoError(t, err)

	require.Len(t, f.messages.saved, 2)
	vendorMsg := f.messages.saved[0]
	assert.Equal(t, vo.SenderVendor, vendorMsg.Sender())
	assert.Equal(t, "<reply-1@nordicjoinery.test>", vendorMsg.RFCMessageID())
	assert.Equal(t, "issue-tok1234567890abc", vendorMsg.ThreadID())

	draft := f.messages.saved[1]
	assert.Equal(t, vo.SenderAI, draft.Sender())
	assert.True(t, draft.Status().IsPendingApproval())
	assert.Equal(t, "<reply-1@nordicjoinery.test>", draft.InReplyTo())

	assert.Empty(t, f.mailer.sent)
	require.Len(t, f.notifier.calls, 1)
	assert.Equal(t, notification.TypePendingApproval, f.notifier.calls[0].ntype)

	assert.NotNil(t, iss.LastVendorReplyAt())
	require.Len(t, f.issues.updated, 1)

	assert.Equal(t,
		[]string{issue.EventVendorReplyReceived, issue.EventDraftPendingApproval},
		f.publisher.typesPublished())
}

func TestHandleInbound_AutoSendsHighConfidenceReply(t *testing.T) {
	f := newInboundFixture(t, true, 0.8)
	iss := newTestIssue(t, vo.StatusPendingVendor, "tok1234567890abc")

	err := f.uc.HandleInbound(context.Background(), iss, vendorReply("Understood, sending a replacement."))
	require.NoError(t, err)

	require.Len(t, f.mailer.sent, 1)
	assert.Contains(t, f.mailer.sent[0].mail.Subject, "[Issue #"+iss.SID()+"]")

	require.Len(t, f.messages.saved, 2)
	assert.Equal(t, vo.MessageStatusSent, f.messages.saved[1].Status())
	assert.Empty(t, f.notifier.calls)
}

func TestHandleInbound_DuplicateAutoReplySuppressed(t *testing.T) {
	f := newInboundFixture(t, true, 0.8)
	iss := newTestIssue(t, vo.StatusPendingVendor, "tok1234567890abc")

	prior, err := issue.NewMessage(iss.ID(), vo.SenderAI, vo.MessageStatusSent, "[Issue #iss_test1234] Re: damage issue", "Thanks for the update.")
	require.NoError(t, err)
	require.NoError(t, prior.SetID(99))
	f.messages.findRecentSentFunc = func(ctx context.Context, issueID uint, to, subject, body string, since time.Time) (*issue.Message, error) {
		return prior, nil
	}

	err = f.uc.HandleInbound(context.Background(), iss, vendorReply("Understood, sending a replacement."))
	require.NoError(t, err)

	// The identical mail already went out, so nothing is delivered and no
	// sent event fires for the suppressed draft.
	assert.Empty(t, f.mailer.sent)
	assert.NotContains(t, f.publisher.typesPublished(), issue.EventMessageSent)

	require.Len(t, f.messages.saved, 2)
	assert.Equal(t, vo.MessageStatusFailed, f.messages.saved[1].Status())
}

func TestHandleInbound_FallbackDraftNeverAutoSent(t *testing.T) {
	f := newInboundFixture(t, true, 0.8)
	f.drafter.draftReplyFunc = func(ctx context.Context, issueCtx ai.IssueContext, history []ai.ConversationEntry, latest string) (*ai.ReplyDraft, error) {
		return &ai.ReplyDraft{Reply: "Thank you, we will follow up.", Confidence: 0.95, Fallback: true}, nil
	}
	iss := newTestIssue(t, vo.StatusPendingVendor, "tok1234567890abc")

	err := f.uc.HandleInbound(context.Background(), iss, vendorReply("ok"))
	require.NoError(t, err)

	assert.Empty(t, f.mailer.sent)
	require.Len(t, f.notifier.calls, 1)
	assert.Equal(t, notification.TypePendingApproval, f.notifier.calls[0].ntype)
}

func TestHandleInbound_ResolutionIntentAdvancesStatus(t *testing.T) {
	f := newInboundFixture(t, false, 0.8)
	f.drafter.analyzeFunc = func(ctx context.Context, issueCtx ai.IssueContext, body string) (*ai.ReplyAnalysis, error) {
		return &ai.ReplyAnalysis{
			Sentiment:  ai.SentimentPositive,
			Intent:     ai.IntentAcceptingResponsibility,
			Summary:    "Vendor accepted responsibility and will replace the panel.",
			NextAction: "Confirm the replacement date.",
			Confidence: 0.9,
		}, nil
	}
	iss := newTestIssue(t, vo.StatusPendingVendor, "tok1234567890abc")

	err := f.uc.HandleInbound(context.Background(), iss, vendorReply("Our fault, we will replace it."))
	require.NoError(t, err)

	assert.Equal(t, vo.StatusResolutionAgreed, iss.Status())
	assert.Equal(t, "Vendor accepted responsibility and will replace the panel.", iss.AISummary())
	assert.Equal(t, "Confirm the replacement date.", iss.NextAction())
	assert.Contains(t, f.publisher.typesPublished(), issue.EventIssueStatusChanged)
}

func TestHandleInbound_EscalationRaisesPriorityAndNotifies(t *testing.T) {
	f := newInboundFixture(t, false, 0.8)
	f.drafter.analyzeFunc = func(ctx context.Context, issueCtx ai.IssueContext, body string) (*ai.ReplyAnalysis, error) {
		return &ai.ReplyAnalysis{
			Sentiment:             ai.SentimentNegative,
			Intent:                ai.IntentDisputing,
			EscalationRecommended: true,
			Summary:               "Vendor refuses responsibility.",
			NextAction:            "Escalate to the account manager.",
			Confidence:            0.85,
		}, nil
	}
	iss := newTestIssue(t, vo.StatusPendingVendor, "tok1234567890abc")

	err := f.uc.HandleInbound(context.Background(), iss, vendorReply("This is not our fault."))
	require.NoError(t, err)

	assert.Equal(t, vo.PriorityCritical, iss.Priority())

	var escalated bool
	for _, call := range f.notifier.calls {
		if call.ntype == notification.TypeIssueEscalated {
			escalated = true
			require.NotNil(t, call.issueID)
			assert.Equal(t, iss.ID(), *call.issueID)
		}
	}
	assert.True(t, escalated)
	assert.Contains(t, f.publisher.typesPublished(), issue.EventIssueEscalated)
}

func TestHandleInbound_ClosedIssueLogsWithoutDrafting(t *testing.T) {
	f := newInboundFixture(t, true, 0.8)
	f.drafter.draftReplyFunc = func(ctx context.Context, issueCtx ai.IssueContext, history []ai.ConversationEntry, latest string) (*ai.ReplyDraft, error) {
		t.Fatal("drafting must not run for a closed issue")
		return nil, nil
	}
	iss := newTestIssue(t, vo.StatusClosed, "tok1234567890abc")

	err := f.uc.HandleInbound(context.Background(), iss, vendorReply("Late reply."))
	require.NoError(t, err)

	require.Len(t, f.messages.saved, 1)
	assert.Equal(t, vo.SenderVendor, f.messages.saved[0].Sender())
	assert.Empty(t, f.mailer.sent)

	require.Len(t, f.notifier.calls, 1)
	assert.Equal(t, notification.TypeVendorReply, f.notifier.calls[0].ntype)
	require.Len(t, f.issues.updated, 1)
}

func TestHandleInbound_DraftingFailureLeavesSystemNote(t *testing.T) {
	f := newInboundFixture(t, false, 0.8)
	f.drafter.draftReplyFunc = func(ctx context.Context, issueCtx ai.IssueContext, history []ai.ConversationEntry, latest string) (*ai.ReplyDraft, error) {
		return nil, fmt.Errorf("provider timeout")
	}
	iss := newTestIssue(t, vo.StatusPendingVendor, "tok1234567890abc")

	err := f.uc.HandleInbound(context.Background(), iss, vendorReply("Any update?"))
	require.NoError(t, err)

	require.Len(t, f.messages.saved, 2)
	note := f.messages.saved[1]
	assert.Equal(t, vo.SenderSystem, note.Sender())
	assert.Contains(t, note.Body(), "manual response is required")

	// The vendor message and reply stamp survive the drafting failure.
	assert.NotNil(t, iss.LastVendorReplyAt())
	require.Len(t, f.issues.updated, 1)
}

func TestHandleInbound_HistoryExcludesInternalNotes(t *testing.T) {
	f := newInboundFixture(t, false, 0.8)
	iss := newTestIssue(t, vo.StatusPendingVendor, "tok1234567890abc")

	note, err := issue.NewSystemNote(iss.ID(), "internal only")
	require.NoError(t, err)
	vendorMsg, err := issue.NewVendorMessage(iss.ID(), "Re: issue", "We will check.", "mika@nordicjoinery.test", "<m1@v>", "")
	require.NoError(t, err)
	f.messages.listByIssueIDFunc = func(ctx context.Context, issueID uint) ([]*issue.Message, error) {
		return []*issue.Message{note, vendorMsg}, nil
	}

	var seen []ai.ConversationEntry
	f.drafter.draftReplyFunc = func(ctx context.Context, issueCtx ai.IssueContext, history []ai.ConversationEntry, latest string) (*ai.ReplyDraft, error) {
		seen = history
		return &ai.ReplyDraft{Reply: "Noted.", Confidence: 0.9}, nil
	}

	err = f.uc.HandleInbound(context.Background(), iss, vendorReply("We will check."))
	require.NoError(t, err)

	require.Len(t, seen, 1)
	assert.Equal(t, vo.SenderVendor.String(), seen[0].Sender)
}
