package usecases

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fitout/internal/domain/apartment"
	"fitout/internal/domain/issue"
	vo "fitout/internal/domain/issue/valueobjects"
	"fitout/internal/domain/vendor"
	"fitout/internal/infrastructure/email"
	"fitout/internal/shared/logger"
	"fitout/internal/shared/token"
)

func newTestIssue(t *testing.T, status vo.IssueStatus, threadToken string) *issue.Issue {
	t.Helper()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	var firstSentAt *time.Time
	if threadToken != "" {
		firstSentAt = &now
	}
	iss, err := issue.ReconstructIssue(
		1, "iss_test1234", 10, 20, nil, nil,
		"damage", "Cabinet arrived with a deep scratch on the front panel.", "Client move-in is blocked",
		vo.PriorityHigh, status, threadToken != "", threadToken,
		firstSentAt, nil, "", "", now, now, nil,
	)
	require.NoError(t, err)
	return iss
}

func newTestVendor(t *testing.T, email string) *vendor.Vendor {
	t.Helper()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	vnd, err := vendor.ReconstructVendor(
		20, "vnd_abc123def456", "Nordic Joinery", "Mika Tanner", email, "+358 40 1234567",
		[]string{"carpentry"}, 4.5, true, now, now,
	)
	require.NoError(t, err)
	return vnd
}

func newTestApartment(t *testing.T) *apartment.Apartment {
	t.Helper()
	now := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	apt, err := apartment.ReconstructApartment(
		10, "apt_abc123def456", 5, "Mannerheimintie 12 A 4, Helsinki", "3", "A4",
		62.5, apartment.StatusFurnishing, "", now, now,
	)
	require.NoError(t, err)
	return apt
}

func newTestComposer(t *testing.T, mailer *mockMailer, messages *mockMessageRepo) *email.Composer {
	t.Helper()
	signer, err := token.NewSigner("test-secret")
	require.NoError(t, err)
	return email.NewComposer(mailer, messages, signer, "Fitout Issues", logger.NewLogger())
}

func newPendingDraft(t *testing.T, issueID uint) *issue.Message {
	t.Helper()
	draft, err := issue.NewAIDraft(issueID, "[Issue #iss_test1234] Re: damage issue", "We can offer a replacement panel.", 0.82)
	require.NoError(t, err)
	require.NoError(t, draft.SetID(7))
	return draft
}
