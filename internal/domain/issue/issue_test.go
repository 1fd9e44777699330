package issue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "fitout/internal/domain/issue/valueobjects"
)

func newTestIssue(t *testing.T) *Issue {
	t.Helper()
	iss, err := NewIssue(1, 2, "damaged_on_arrival", "Three chairs arrived with broken legs", "Living room unusable", vo.PriorityMedium)
	require.NoError(t, err)
	return iss
}

func TestNewIssue(t *testing.T) {
	tests := []struct {
		name        string
		apartmentID uint
		vendorID    uint
		issueType   string
		description string
		priority    vo.Priority
		wantErr     string
	}{
		{
			name:        "valid issue",
			apartmentID: 1,
			vendorID:    2,
			issueType:   "damaged_on_arrival",
			description: "broken legs",
			priority:    vo.PriorityMedium,
		},
		{
			name:        "missing apartment",
			vendorID:    2,
			issueType:   "damaged_on_arrival",
			description: "broken legs",
			priority:    vo.PriorityMedium,
			wantErr:     "apartment ID is required",
		},
		{
			name:        "missing vendor",
			apartmentID: 1,
			issueType:   "damaged_on_arrival",
			description: "broken legs",
			priority:    vo.PriorityMedium,
			wantErr:     "vendor ID is required",
		},
		{
			name:        "missing issue type",
			apartmentID: 1,
			vendorID:    2,
			description: "broken legs",
			priority:    vo.PriorityMedium,
			wantErr:     "issue type is required",
		},
		{
			name:        "missing description",
			apartmentID: 1,
			vendorID:    2,
			issueType:   "damaged_on_arrival",
			priority:    vo.PriorityMedium,
			wantErr:     "description is required",
		},
		{
			name:        "invalid priority",
			apartmentID: 1,
			vendorID:    2,
			issueType:   "damaged_on_arrival",
			description: "broken legs",
			priority:    vo.Priority("urgent"),
			wantErr:     "invalid priority",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iss, err := NewIssue(tt.apartmentID, tt.vendorID, tt.issueType, tt.description, "", tt.priority)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, vo.StatusOpen, iss.Status())
			assert.False(t, iss.AIActivated())
			assert.Nil(t, iss.FirstSentAt())
		})
	}
}

func TestIssue_MarkFirstSent(t *testing.T) {
	iss := newTestIssue(t)
	sentAt := time.Now().UTC()

	require.NoError(t, iss.MarkFirstSent(sentAt))
	assert.Equal(t, vo.StatusPendingVendor, iss.Status())
	require.NotNil(t, iss.FirstSentAt())
	assert.Equal(t, sentAt, *iss.FirstSentAt())

	// A second send must not move the first-sent timestamp.
	later := sentAt.Add(time.Hour)
	require.NoError(t, iss.MarkFirstSent(later))
	assert.Equal(t, sentAt, *iss.FirstSentAt())
}

func TestIssue_MarkFirstSentOnClosedIssue(t *testing.T) {
	iss := newTestIssue(t)
	require.NoError(t, iss.Close())

	err := iss.MarkFirstSent(time.Now().UTC())
	assert.Error(t, err)
}

func TestIssue_StatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    vo.IssueStatus
		to      vo.IssueStatus
		allowed bool
	}{
		{"open to pending_vendor", vo.StatusOpen, vo.StatusPendingVendor, true},
		{"open to closed", vo.StatusOpen, vo.StatusClosed, true},
		{"open to resolution_agreed", vo.StatusOpen, vo.StatusResolutionAgreed, false},
		{"pending_vendor to resolution_agreed", vo.StatusPendingVendor, vo.StatusResolutionAgreed, true},
		{"pending_vendor to closed", vo.StatusPendingVendor, vo.StatusClosed, true},
		{"pending_vendor to open", vo.StatusPendingVendor, vo.StatusOpen, false},
		{"resolution_agreed to closed", vo.StatusResolutionAgreed, vo.StatusClosed, true},
		{"resolution_agreed to pending_vendor", vo.StatusResolutionAgreed, vo.StatusPendingVendor, false},
		{"closed is terminal", vo.StatusClosed, vo.StatusOpen, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestIssue_Escalate(t *testing.T) {
	iss := newTestIssue(t)
	require.NoError(t, iss.MarkFirstSent(time.Now().UTC()))

	require.NoError(t, iss.Escalate())
	assert.Equal(t, vo.PriorityCritical, iss.Priority())
	// Escalation raises priority without touching the status.
	assert.Equal(t, vo.StatusPendingVendor, iss.Status())

	// Escalating again is a no-op.
	require.NoError(t, iss.Escalate())
	assert.Equal(t, vo.PriorityCritical, iss.Priority())
}

func TestIssue_EscalateClosedIssue(t *testing.T) {
	iss := newTestIssue(t)
	require.NoError(t, iss.Close())
	assert.Error(t, iss.Escalate())
}

func TestIssue_ActivateAI(t *testing.T) {
	iss := newTestIssue(t)

	require.NoError(t, iss.ActivateAI())
	assert.True(t, iss.AIActivated())

	err := iss.ActivateAI()
	assert.Error(t, err, "double activation must be rejected")
}

func TestIssue_Close(t *testing.T) {
	iss := newTestIssue(t)
	require.NoError(t, iss.Close())
	assert.Equal(t, vo.StatusClosed, iss.Status())
	assert.NotNil(t, iss.ClosedAt())

	// Closing twice is a no-op.
	require.NoError(t, iss.Close())
}

func TestIssue_AgreeResolution(t *testing.T) {
	iss := newTestIssue(t)
	require.NoError(t, iss.MarkFirstSent(time.Now().UTC()))

	require.NoError(t, iss.AgreeResolution())
	assert.Equal(t, vo.StatusResolutionAgreed, iss.Status())
}

func TestIssue_RecordVendorReply(t *testing.T) {
	iss := newTestIssue(t)
	replyAt := time.Now().UTC()

	iss.RecordVendorReply(replyAt)
	require.NotNil(t, iss.LastVendorReplyAt())
	assert.Equal(t, replyAt, *iss.LastVendorReplyAt())
}

func TestIssue_SetSIDOnce(t *testing.T) {
	iss := newTestIssue(t)
	require.NoError(t, iss.SetSID("iss_a1B2c3D4e5F6"))
	assert.Error(t, iss.SetSID("iss_other"))
}

func TestIssue_SetThreadTokenOnce(t *testing.T) {
	iss := newTestIssue(t)
	require.NoError(t, iss.SetThreadToken("f2b4a7c0-1111-2222-3333-444455556666"))
	assert.Error(t, iss.SetThreadToken("other"))
}

func TestIssue_UpdateAISummary(t *testing.T) {
	iss := newTestIssue(t)

	iss.UpdateAISummary("vendor acknowledged damage", "await replacement ETA")
	assert.Equal(t, "vendor acknowledged damage", iss.AISummary())
	assert.Equal(t, "await replacement ETA", iss.NextAction())

	// Empty fields leave the previous values intact.
	iss.UpdateAISummary("", "")
	assert.Equal(t, "vendor acknowledged damage", iss.AISummary())
	assert.Equal(t, "await replacement ETA", iss.NextAction())
}
