// Package ai generates vendor-facing issue correspondence. Drafting never
// fails hard: provider errors degrade to templated fallback drafts so the
// conversation flow can continue under human review.
package ai

import (
	"context"
	"fmt"

	sharedConfig "fitout/internal/shared/config"
	"fitout/internal/shared/logger"
)

// Vendor reply intents recognized by analysis.
const (
	IntentAcceptingResponsibility = "accepting_responsibility"
	IntentProposingSolution       = "proposing_solution"
	IntentRequestingInfo          = "requesting_info"
	IntentDisputing               = "disputing"
	IntentUnclear                 = "unclear"
)

const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// ItemContext describes one affected item for prompt building.
type ItemContext struct {
	ProductName string
	Quantity    int
	Tags        []string
	Description string
}

// IssueContext carries everything a drafter needs to know about the case.
type IssueContext struct {
	IssueSID         string
	IssueType        string
	Description      string
	Impact           string
	Priority         string
	VendorName       string
	ApartmentAddress string
	Items            []ItemContext
}

// ConversationEntry is one prior message in the thread, oldest first.
type ConversationEntry struct {
	Sender string
	Body   string
}

type InitialDraft struct {
	Subject     string
	Opening     string
	Closing     string
	Confidence  float64
	GeneratedBy string
	// Fallback marks a templated draft produced because the provider failed.
	Fallback bool
}

// Body joins the drafted sections into the outbound mail body.
func (d *InitialDraft) Body() string {
	return d.Opening + "\n\n" + d.Closing
}

type ReplyDraft struct {
	Reply       string
	Confidence  float64
	GeneratedBy string
	Fallback    bool
}

type ReplyAnalysis struct {
	Sentiment             string
	Intent                string
	EscalationRecommended bool
	Summary               string
	NextAction            string
	Confidence            float64
}

type Drafter interface {
	DraftInitialReport(ctx context.Context, issueCtx IssueContext) (*InitialDraft, error)
	DraftReply(ctx context.Context, issueCtx IssueContext, history []ConversationEntry, latest string) (*ReplyDraft, error)
	AnalyzeReply(ctx context.Context, issueCtx IssueContext, body string) (*ReplyAnalysis, error)
}

// NewDrafter selects the drafting backend from configuration. An openai
// provider without an API key falls back to the mock drafter.
func NewDrafter(cfg *sharedConfig.AIConfig, log logger.Interface) (Drafter, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.APIKey == "" {
			log.Warn("ai provider is openai but no api key is configured, using mock drafter")
			return NewMockDrafter(), nil
		}
		return NewOpenAIDrafter(cfg, log), nil
	case "", "mock":
		return NewMockDrafter(), nil
	default:
		return nil, fmt.Errorf("unknown ai provider: %s", cfg.Provider)
	}
}
