package imap

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitout/internal/domain/issue"
	vo "fitout/internal/domain/issue/valueobjects"
	apperrors "fitout/internal/shared/errors"
	"fitout/internal/shared/logger"
	"fitout/internal/shared/token"
)

type mockIssueRepo struct {
	getBySIDFunc         func(ctx context.Context, sid string) (*issue.Issue, error)
	getByThreadTokenFunc func(ctx context.Context, threadToken string) (*issue.Issue, error)
}

func (m *mockIssueRepo) Save(ctx context.Context, iss *issue.Issue) error   { return nil }
func (m *mockIssueRepo) Update(ctx context.Context, iss *issue.Issue) error { return nil }
func (m *mockIssueRepo) Delete(ctx context.Context, issueID uint) error     { return nil }

func (m *mockIssueRepo) GetByID(ctx context.Context, issueID uint) (*issue.Issue, error) {
	return nil, apperrors.NewNotFoundError("issue not found")
}

func (m *mockIssueRepo) GetBySID(ctx context.Context, sid string) (*issue.Issue, error) {
	if m.getBySIDFunc != nil {
		return m.getBySIDFunc(ctx, sid)
	}
	return nil, apperrors.NewNotFoundError("issue not found")
}

func (m *mockIssueRepo) GetByThreadToken(ctx context.Context, threadToken string) (*issue.Issue, error) {
	if m.getByThreadTokenFunc != nil {
		return m.getByThreadTokenFunc(ctx, threadToken)
	}
	return nil, apperrors.NewNotFoundError("issue not found")
}

func (m *mockIssueRepo) List(ctx context.Context, filter issue.IssueFilter) ([]*issue.Issue, int64, error) {
	return nil, 0, nil
}

func newMatcherIssue(t *testing.T) *issue.Issue {
	t.Helper()
	iss, err := issue.NewIssue(1, 2, "damage", "scratched tabletop", "table unusable", vo.PriorityMedium)
	require.NoError(t, err)
	require.NoError(t, iss.SetID(42))
	require.NoError(t, iss.SetSID("iss_abc123"))
	require.NoError(t, iss.SetThreadToken("tok-1234567890"))
	return iss
}

func newTestMatcher(t *testing.T, repo *mockIssueRepo) (*Matcher, *token.Signer) {
	t.Helper()
	signer, err := token.NewSigner("test-secret")
	require.NoError(t, err)
	return NewMatcher(repo, signer, logger.NewLogger()), signer
}

func TestMatcher_Match(t *testing.T) {
	t.Run("signed token header wins", func(t *testing.T) {
		iss := newMatcherIssue(t)
		repo := &mockIssueRepo{
			getBySIDFunc: func(ctx context.Context, sid string) (*issue.Issue, error) {
				assert.Equal(t, "iss_abc123", sid)
				return iss, nil
			},
		}
		matcher, signer := newTestMatcher(t, repo)

		matched, err := matcher.Match(context.Background(), &InboundEmail{
			IssueToken: signer.Sign("iss_abc123"),
			Subject:    "totally unrelated subject",
		})

		require.NoError(t, err)
		assert.Same(t, iss, matched)
	})

	t.Run("tampered token falls through to thread header", func(t *testing.T) {
		iss := newMatcherIssue(t)
		repo := &mockIssueRepo{
			getBySIDFunc: func(ctx context.Context, sid string) (*issue.Issue, error) {
				t.Fatal("sid lookup should not run for an invalid token")
				return nil, nil
			},
			getByThreadTokenFunc: func(ctx context.Context, threadToken string) (*issue.Issue, error) {
				assert.Equal(t, "tok-1234567890", threadToken)
				return iss, nil
			},
		}
		matcher, _ := newTestMatcher(t, repo)

		matched, err := matcher.Match(context.Background(), &InboundEmail{
			IssueToken: "iss_abc123.forgedsignature",
			ThreadSlug: "issue-tok-1234567890",
		})

		require.NoError(t, err)
		assert.Same(t, iss, matched)
	})

	t.Run("subject tag pattern", func(t *testing.T) {
		iss := newMatcherIssue(t)
		repo := &mockIssueRepo{
			getBySIDFunc: func(ctx context.Context, sid string) (*issue.Issue, error) {
				if sid == "iss_abc123" {
					return iss, nil
				}
				return nil, apperrors.NewNotFoundError("issue not found")
			},
		}
		matcher, _ := newTestMatcher(t, repo)

		matched, err := matcher.Match(context.Background(), &InboundEmail{
			Subject: "Re: [Issue #iss_abc123] Damaged tabletop",
		})

		require.NoError(t, err)
		assert.Same(t, iss, matched)
	})

	t.Run("thread token in body", func(t *testing.T) {
		iss := newMatcherIssue(t)
		repo := &mockIssueRepo{
			getByThreadTokenFunc: func(ctx context.Context, threadToken string) (*issue.Issue, error) {
				if threadToken == "tok-1234567890" {
					return iss, nil
				}
				return nil, apperrors.NewNotFoundError("issue not found")
			},
		}
		matcher, _ := newTestMatcher(t, repo)

		matched, err := matcher.Match(context.Background(), &InboundEmail{
			Subject: "Your delivery",
			Body:    "Regarding your case issue-tok-1234567890, we will replace the item.",
		})

		require.NoError(t, err)
		assert.Same(t, iss, matched)
	})

	t.Run("short id in body", func(t *testing.T) {
		iss := newMatcherIssue(t)
		repo := &mockIssueRepo{
			getBySIDFunc: func(ctx context.Context, sid string) (*issue.Issue, error) {
				if sid == "iss_abc123" {
					return iss, nil
				}
				return nil, apperrors.NewNotFoundError("issue not found")
			},
		}
		matcher, _ := newTestMatcher(t, repo)

		matched, err := matcher.Match(context.Background(), &InboundEmail{
			Body: "your reference iss_abc123 noted",
		})

		require.NoError(t, err)
		assert.Same(t, iss, matched)
	})

	t.Run("unmatched returns nil without error", func(t *testing.T) {
		matcher, _ := newTestMatcher(t, &mockIssueRepo{})

		matched, err := matcher.Match(context.Background(), &InboundEmail{
			Subject: "Newsletter: spring collection",
			Body:    "Nothing to see here.",
		})

		require.NoError(t, err)
		assert.Nil(t, matched)
	})
}

func TestParseInbound(t *testing.T) {
	raw := strings.Join([]string{
		"From: Acme GmbH <vendor@acme.test>",
		"To: issues@fitout.local",
		"Subject: Re: [Issue #iss_abc123] Damaged tabletop",
		"Message-Id: <reply-1@acme.test>",
		"In-Reply-To: <initial@fitout.local>",
		"X-Issue-Token: iss_abc123.deadbeef",
		"X-Issue-Thread: issue-tok-1234567890",
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"We will replace the tabletop next week.",
		"",
	}, "\r\n")

	inbound, err := ParseInbound(strings.NewReader(raw))

	require.NoError(t, err)
	assert.Equal(t, "Re: [Issue #iss_abc123] Damaged tabletop", inbound.Subject)
	assert.Equal(t, "vendor@acme.test", inbound.FromAddress)
	assert.Equal(t, "<reply-1@acme.test>", inbound.RFCMessageID)
	assert.Equal(t, "<initial@fitout.local>", inbound.InReplyTo)
	assert.Equal(t, "iss_abc123.deadbeef", inbound.IssueToken)
	assert.Equal(t, "issue-tok-1234567890", inbound.ThreadSlug)
	assert.Equal(t, "We will replace the tabletop next week.", inbound.Body)
}

func TestParseInbound_HTMLOnly(t *testing.T) {
	raw := strings.Join([]string{
		"From: vendor@acme.test",
		"Subject: Reply",
		"Message-Id: <reply-2@acme.test>",
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=utf-8",
		"",
		"<html><body><p>We <b>accept</b> the claim.</p></body></html>",
		"",
	}, "\r\n")

	inbound, err := ParseInbound(strings.NewReader(raw))

	require.NoError(t, err)
	assert.Equal(t, "We accept the claim.", inbound.Body)
}
