package ai

import (
	"context"
	"fmt"
	"strings"
)

const (
	mockConfidence     = 0.9
	fallbackConfidence = 0.2
)

// MockDrafter produces deterministic templated drafts. It backs development
// and test environments where no AI provider is configured.
type MockDrafter struct{}

func NewMockDrafter() *MockDrafter {
	return &MockDrafter{}
}

func (d *MockDrafter) DraftInitialReport(ctx context.Context, issueCtx IssueContext) (*InitialDraft, error) {
	draft := templatedInitialReport(issueCtx)
	draft.Confidence = mockConfidence
	draft.GeneratedBy = "mock"
	draft.Fallback = false
	return draft, nil
}

func (d *MockDrafter) DraftReply(ctx context.Context, issueCtx IssueContext, history []ConversationEntry, latest string) (*ReplyDraft, error) {
	draft := templatedReply(issueCtx)
	draft.Confidence = mockConfidence
	draft.GeneratedBy = "mock"
	draft.Fallback = false
	return draft, nil
}

func (d *MockDrafter) AnalyzeReply(ctx context.Context, issueCtx IssueContext, body string) (*ReplyAnalysis, error) {
	lower := strings.ToLower(body)

	analysis := neutralAnalysis()
	analysis.Confidence = mockConfidence

	switch {
	case strings.Contains(lower, "replace") || strings.Contains(lower, "refund") || strings.Contains(lower, "repair"):
		analysis.Sentiment = SentimentPositive
		analysis.Intent = IntentProposingSolution
		analysis.Summary = "Vendor proposed a remedy."
		analysis.NextAction = "Confirm the proposed remedy and schedule."
	case strings.Contains(lower, "sorry") || strings.Contains(lower, "apolog") || strings.Contains(lower, "our fault"):
		analysis.Sentiment = SentimentPositive
		analysis.Intent = IntentAcceptingResponsibility
		analysis.Summary = "Vendor accepted responsibility."
		analysis.NextAction = "Agree on the concrete remedy."
	case strings.Contains(lower, "not our") || strings.Contains(lower, "dispute") || strings.Contains(lower, "reject"):
		analysis.Sentiment = SentimentNegative
		analysis.Intent = IntentDisputing
		analysis.EscalationRecommended = true
		analysis.Summary = "Vendor disputes the claim."
		analysis.NextAction = "Escalate to an operator with the evidence."
	case strings.Contains(lower, "photo") || strings.Contains(lower, "which") || strings.Contains(lower, "?"):
		analysis.Intent = IntentRequestingInfo
		analysis.Summary = "Vendor asked for more information."
		analysis.NextAction = "Provide the requested details."
	}

	return analysis, nil
}

// templatedInitialReport renders the deterministic report used by the mock
// drafter and as the fallback when a provider call fails.
func templatedInitialReport(issueCtx IssueContext) *InitialDraft {
	var sb strings.Builder
	fmt.Fprintf(&sb, "We are reporting a %s issue with a recent delivery", issueCtx.IssueType)
	if issueCtx.ApartmentAddress != "" {
		fmt.Fprintf(&sb, " to %s", issueCtx.ApartmentAddress)
	}
	sb.WriteString(".\n\n")
	fmt.Fprintf(&sb, "Details: %s", issueCtx.Description)
	if issueCtx.Impact != "" {
		fmt.Fprintf(&sb, "\nImpact: %s", issueCtx.Impact)
	}
	if len(issueCtx.Items) > 0 {
		sb.WriteString("\n\nAffected items:")
		for _, item := range issueCtx.Items {
			fmt.Fprintf(&sb, "\n- %dx %s", item.Quantity, item.ProductName)
			if item.Description != "" {
				fmt.Fprintf(&sb, " (%s)", item.Description)
			}
		}
	}

	return &InitialDraft{
		Subject: fmt.Sprintf("%s issue report", capitalize(issueCtx.IssueType)),
		Opening: sb.String(),
		Closing: "Please confirm receipt of this report and let us know how you propose to resolve it.",
	}
}

func templatedReply(issueCtx IssueContext) *ReplyDraft {
	return &ReplyDraft{
		Reply: fmt.Sprintf(
			"Thank you for your reply regarding case %s. We have noted your response and will come back to you with the next steps shortly.",
			issueCtx.IssueSID),
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func neutralAnalysis() *ReplyAnalysis {
	return &ReplyAnalysis{
		Sentiment:  SentimentNeutral,
		Intent:     IntentUnclear,
		Summary:    "",
		NextAction: "Review the vendor reply manually.",
		Confidence: 0,
	}
}
