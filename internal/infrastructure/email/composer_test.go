package email

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitout/internal/domain/issue"
	vo "fitout/internal/domain/issue/valueobjects"
	"fitout/internal/shared/constants"
	"fitout/internal/shared/logger"
	"fitout/internal/shared/token"
)

type mockMailer struct {
	sendFunc func(mail *OutboundMail) (string, error)
	sent     []*OutboundMail
}

func (m *mockMailer) Send(mail *OutboundMail) (string, error) {
	m.sent = append(m.sent, mail)
	if m.sendFunc != nil {
		return m.sendFunc(mail)
	}
	return "<generated@test.local>", nil
}

type mockMessageRepo struct {
	saveFunc           func(ctx context.Context, msg *issue.Message) error
	updateFunc         func(ctx context.Context, msg *issue.Message) error
	findRecentSentFunc func(ctx context.Context, issueID uint, to, subject, body string, since time.Time) (*issue.Message, error)
	saved              []*issue.Message
}

func (m *mockMessageRepo) Save(ctx context.Context, msg *issue.Message) error {
	m.saved = append(m.saved, msg)
	if m.saveFunc != nil {
		return m.saveFunc(ctx, msg)
	}
	return msg.SetID(uint(len(m.saved)))
}

func (m *mockMessageRepo) Update(ctx context.Context, msg *issue.Message) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, msg)
	}
	return nil
}

func (m *mockMessageRepo) GetByID(ctx context.Context, messageID uint) (*issue.Message, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockMessageRepo) GetByRFCMessageID(ctx context.Context, rfcMessageID string) (*issue.Message, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockMessageRepo) ListByIssueID(ctx context.Context, issueID uint) ([]*issue.Message, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockMessageRepo) FindRecentSent(ctx context.Context, issueID uint, to, subject, body string, since time.Time) (*issue.Message, error) {
	if m.findRecentSentFunc != nil {
		return m.findRecentSentFunc(ctx, issueID, to, subject, body, since)
	}
	return nil, nil
}

func (m *mockMessageRepo) CountPendingApproval(ctx context.Context, olderThan time.Time) (int64, error) {
	return 0, nil
}

func (m *mockMessageRepo) ListPendingApproval(ctx context.Context, olderThan time.Time) ([]*issue.Message, error) {
	return nil, nil
}

func testIssue(t *testing.T) *issue.Issue {
	t.Helper()
	iss, err := issue.NewIssue(1, 2, "damage", "scratched tabletop on delivery", "table unusable", vo.PriorityMedium)
	require.NoError(t, err)
	require.NoError(t, iss.SetID(42))
	require.NoError(t, iss.SetSID("iss_abc123"))
	require.NoError(t, iss.SetThreadToken("tok-1234567890"))
	return iss
}

func newTestComposer(t *testing.T, mailer *mockMailer, repo *mockMessageRepo) *Composer {
	t.Helper()
	signer, err := token.NewSigner("test-secret")
	require.NoError(t, err)
	return NewComposer(mailer, repo, signer, "Fitout Issues", logger.NewLogger())
}

func TestFormatSubject(t *testing.T) {
	tests := []struct {
		name     string
		sid      string
		subject  string
		expected string
	}{
		{
			name:     "prepends issue tag",
			sid:      "iss_abc123",
			subject:  "Damaged tabletop",
			expected: "[Issue #iss_abc123] Damaged tabletop",
		},
		{
			name:     "keeps existing tag",
			sid:      "iss_abc123",
			subject:  "Re: [Issue #iss_abc123] Damaged tabletop",
			expected: "Re: [Issue #iss_abc123] Damaged tabletop",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatSubject(tt.sid, tt.subject))
		})
	}
}

func TestComposer_SendInitialReport(t *testing.T) {
	t.Run("sends mail and stamps first sent", func(t *testing.T) {
		mailer := &mockMailer{}
		repo := &mockMessageRepo{}
		composer := newTestComposer(t, mailer, repo)
		iss := testIssue(t)

		msg, err := composer.SendInitialReport(context.Background(), iss, "Acme GmbH", "vendor@acme.test", "Damaged tabletop", "The tabletop arrived scratched.\n\nPlease advise.")

		require.NoError(t, err)
		require.NotNil(t, msg)
		assert.Equal(t, vo.MessageStatusSent, msg.Status())
		assert.Equal(t, "<generated@test.local>", msg.RFCMessageID())
		assert.Equal(t, "[Issue #iss_abc123] Damaged tabletop", msg.Subject())
		assert.Equal(t, "vendor@acme.test", msg.ToAddress())
		assert.Equal(t, "issue-tok-1234567890", msg.ThreadID())

		require.Len(t, mailer.sent, 1)
		mail := mailer.sent[0]
		assert.Equal(t, "iss_abc123", mail.Headers[constants.HeaderIssueID])
		assert.Equal(t, "issue-tok-1234567890", mail.Headers[constants.HeaderIssueThread])
		assert.True(t, strings.HasPrefix(mail.Headers[constants.HeaderIssueToken], "iss_abc123."))
		assert.Contains(t, mail.HTMLBody, "Acme GmbH")
		assert.Contains(t, mail.PlainBody, "The tabletop arrived scratched.")
		assert.NotContains(t, mail.PlainBody, "<p>")

		require.NotNil(t, iss.FirstSentAt())
		assert.Equal(t, vo.StatusPendingVendor, iss.Status())
	})

	t.Run("suppresses duplicate within window", func(t *testing.T) {
		prior, err := issue.NewMessage(42, vo.SenderAI, vo.MessageStatusSent, "[Issue #iss_abc123] Damaged tabletop", "body")
		require.NoError(t, err)
		prior.SetRFCMessageID("<prior@test.local>")

		mailer := &mockMailer{}
		repo := &mockMessageRepo{
			findRecentSentFunc: func(ctx context.Context, issueID uint, to, subject, body string, since time.Time) (*issue.Message, error) {
				assert.Equal(t, uint(42), issueID)
				return prior, nil
			},
		}
		composer := newTestComposer(t, mailer, repo)
		iss := testIssue(t)

		msg, err := composer.SendInitialReport(context.Background(), iss, "Acme GmbH", "vendor@acme.test", "Damaged tabletop", "body")

		require.NoError(t, err)
		assert.Same(t, prior, msg)
		assert.Empty(t, mailer.sent)
		assert.Empty(t, repo.saved)
	})

	t.Run("logs failed row when delivery errors", func(t *testing.T) {
		mailer := &mockMailer{
			sendFunc: func(mail *OutboundMail) (string, error) {
				return "", fmt.Errorf("smtp: connection refused")
			},
		}
		repo := &mockMessageRepo{}
		composer := newTestComposer(t, mailer, repo)
		iss := testIssue(t)

		msg, err := composer.SendInitialReport(context.Background(), iss, "Acme GmbH", "vendor@acme.test", "Damaged tabletop", "body")

		require.Error(t, err)
		require.NotNil(t, msg)
		assert.Equal(t, vo.MessageStatusFailed, msg.Status())
		assert.Empty(t, msg.RFCMessageID())
		require.Len(t, repo.saved, 1)
		assert.Nil(t, iss.FirstSentAt())
		assert.Equal(t, vo.StatusOpen, iss.Status())
	})
}

func TestComposer_SendReply(t *testing.T) {
	t.Run("marks approved draft sent", func(t *testing.T) {
		mailer := &mockMailer{}
		repo := &mockMessageRepo{}
		composer := newTestComposer(t, mailer, repo)
		iss := testIssue(t)

		draft, err := issue.NewAIDraft(iss.ID(), "Damaged tabletop", "We accept the replacement proposal.", 0.92)
		require.NoError(t, err)
		require.NoError(t, draft.Approve(7))

		sent, err := composer.SendReply(context.Background(), iss, draft, "vendor@acme.test")

		require.NoError(t, err)
		assert.Same(t, draft, sent)
		assert.Equal(t, vo.MessageStatusSent, draft.Status())
		assert.Equal(t, "<generated@test.local>", draft.RFCMessageID())
		assert.Equal(t, "vendor@acme.test", draft.ToAddress())
		require.Len(t, mailer.sent, 1)
	})

	t.Run("includes threading headers when replying to a vendor message", func(t *testing.T) {
		mailer := &mockMailer{}
		repo := &mockMessageRepo{}
		composer := newTestComposer(t, mailer, repo)
		iss := testIssue(t)

		draft, err := issue.ReconstructMessage(
			5, iss.ID(), vo.SenderAI, vo.MessageStatusPendingApproval,
			"Damaged tabletop", "Reply body", "", "", "", "",
			"<vendor-msg@acme.test>", "", nil, nil, nil,
			time.Now().UTC(), time.Now().UTC(),
		)
		require.NoError(t, err)

		_, err = composer.SendReply(context.Background(), iss, draft, "vendor@acme.test")
		require.NoError(t, err)

		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "<vendor-msg@acme.test>", mailer.sent[0].Headers["In-Reply-To"])
		assert.Equal(t, "<vendor-msg@acme.test>", mailer.sent[0].Headers["References"])
	})

	t.Run("marks draft failed when delivery errors", func(t *testing.T) {
		mailer := &mockMailer{
			sendFunc: func(mail *OutboundMail) (string, error) {
				return "", fmt.Errorf("smtp: timeout")
			},
		}
		repo := &mockMessageRepo{}
		composer := newTestComposer(t, mailer, repo)
		iss := testIssue(t)

		draft, err := issue.NewAIDraft(iss.ID(), "Damaged tabletop", "Reply body", 0.9)
		require.NoError(t, err)

		_, err = composer.SendReply(context.Background(), iss, draft, "vendor@acme.test")

		require.Error(t, err)
		assert.Equal(t, vo.MessageStatusFailed, draft.Status())
	})

	t.Run("suppresses duplicate and returns the prior message", func(t *testing.T) {
		prior, err := issue.NewMessage(42, vo.SenderAI, vo.MessageStatusSent, "[Issue #iss_abc123] Damaged tabletop", "Reply body")
		require.NoError(t, err)
		require.NoError(t, prior.SetID(17))
		prior.SetRFCMessageID("<prior@test.local>")

		mailer := &mockMailer{}
		repo := &mockMessageRepo{
			findRecentSentFunc: func(ctx context.Context, issueID uint, to, subject, body string, since time.Time) (*issue.Message, error) {
				return prior, nil
			},
		}
		composer := newTestComposer(t, mailer, repo)
		iss := testIssue(t)

		draft, err := issue.NewAIDraft(iss.ID(), "Damaged tabletop", "Reply body", 0.9)
		require.NoError(t, err)

		sent, err := composer.SendReply(context.Background(), iss, draft, "vendor@acme.test")
		require.NoError(t, err)
		assert.Same(t, prior, sent)
		assert.Empty(t, mailer.sent)
		assert.Equal(t, vo.MessageStatusFailed, draft.Status())
	})
}

func TestComposer_SendManual(t *testing.T) {
	mailer := &mockMailer{}
	repo := &mockMessageRepo{}
	composer := newTestComposer(t, mailer, repo)
	iss := testIssue(t)

	msg, err := composer.SendManual(context.Background(), iss, "vendor@acme.test", "Schedule question", "When can you deliver the replacement?")

	require.NoError(t, err)
	assert.Equal(t, vo.SenderAdmin, msg.Sender())
	assert.Equal(t, vo.MessageStatusSent, msg.Status())
	require.Len(t, mailer.sent, 1)
}

func TestHTMLToPlainText(t *testing.T) {
	html := "<html><body><p>First line<br>second line</p>\n<p>Next paragraph &amp; more</p></body></html>"

	text := htmlToPlainText(html)

	assert.Equal(t, "First line\nsecond line\n\nNext paragraph & more", text)
}
