package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	sharedConfig "fitout/internal/shared/config"
	"fitout/internal/shared/logger"
)

// chatCompleter is the slice of the OpenAI client the drafter uses. Tests
// substitute a stub.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIDrafter drafts correspondence through the OpenAI chat completion API
// with a strict JSON response contract. Drafting calls never surface provider
// errors: they degrade to the templated fallback with low confidence, and
// analysis degrades to a neutral result.
type OpenAIDrafter struct {
	client  chatCompleter
	model   string
	timeout time.Duration
	log     logger.Interface
}

func NewOpenAIDrafter(cfg *sharedConfig.AIConfig, log logger.Interface) *OpenAIDrafter {
	return &OpenAIDrafter{
		client:  openai.NewClient(cfg.APIKey),
		model:   cfg.Model,
		timeout: time.Duration(cfg.RequestTimeoutSecs) * time.Second,
		log:     log.Named("ai"),
	}
}

type initialDraftPayload struct {
	Subject    string  `json:"subject"`
	Opening    string  `json:"opening"`
	Closing    string  `json:"closing"`
	Confidence float64 `json:"confidence"`
}

type replyDraftPayload struct {
	Reply      string  `json:"reply"`
	Confidence float64 `json:"confidence"`
}

type analysisPayload struct {
	Sentiment             string  `json:"sentiment"`
	Intent                string  `json:"intent"`
	EscalationRecommended bool    `json:"escalation_recommended"`
	Summary               string  `json:"summary"`
	NextAction            string  `json:"next_action"`
	Confidence            float64 `json:"confidence"`
}

const initialReportSystemPrompt = `You write professional, factual B2B emails reporting furniture and fit-out issues to vendors on behalf of a property operations team.
Respond with a single JSON object: {"subject": string, "opening": string, "closing": string, "confidence": number between 0 and 1}.
The opening states the issue and affected items; the closing asks the vendor to confirm receipt and propose a resolution. Do not invent facts.`

const replySystemPrompt = `You continue an existing issue conversation with a vendor on behalf of a property operations team. Stay factual and courteous, push toward a concrete resolution.
Respond with a single JSON object: {"reply": string, "confidence": number between 0 and 1}.`

const analysisSystemPrompt = `You classify a vendor's reply in an issue conversation.
Respond with a single JSON object: {"sentiment": "positive"|"neutral"|"negative", "intent": "accepting_responsibility"|"proposing_solution"|"requesting_info"|"disputing"|"unclear", "escalation_recommended": boolean, "summary": string, "next_action": string, "confidence": number between 0 and 1}.`

func (d *OpenAIDrafter) DraftInitialReport(ctx context.Context, issueCtx IssueContext) (*InitialDraft, error) {
	var payload initialDraftPayload
	if err := d.complete(ctx, initialReportSystemPrompt, describeIssue(issueCtx), &payload); err != nil {
		d.log.Warnw("initial report drafting failed, using fallback",
			"issue_sid", issueCtx.IssueSID, "error", err)
		draft := templatedInitialReport(issueCtx)
		draft.Confidence = fallbackConfidence
		draft.GeneratedBy = d.model
		draft.Fallback = true
		return draft, nil
	}

	return &InitialDraft{
		Subject:     payload.Subject,
		Opening:     payload.Opening,
		Closing:     payload.Closing,
		Confidence:  clampConfidence(payload.Confidence),
		GeneratedBy: d.model,
	}, nil
}

func (d *OpenAIDrafter) DraftReply(ctx context.Context, issueCtx IssueContext, history []ConversationEntry, latest string) (*ReplyDraft, error) {
	prompt := describeIssue(issueCtx) + "\n\nConversation so far:\n" + describeHistory(history) +
		"\n\nLatest vendor message:\n" + latest + "\n\nDraft our reply."

	var payload replyDraftPayload
	if err := d.complete(ctx, replySystemPrompt, prompt, &payload); err != nil {
		d.log.Warnw("reply drafting failed, using fallback",
			"issue_sid", issueCtx.IssueSID, "error", err)
		draft := templatedReply(issueCtx)
		draft.Confidence = fallbackConfidence
		draft.GeneratedBy = d.model
		draft.Fallback = true
		return draft, nil
	}

	return &ReplyDraft{
		Reply:       payload.Reply,
		Confidence:  clampConfidence(payload.Confidence),
		GeneratedBy: d.model,
	}, nil
}

func (d *OpenAIDrafter) AnalyzeReply(ctx context.Context, issueCtx IssueContext, body string) (*ReplyAnalysis, error) {
	prompt := describeIssue(issueCtx) + "\n\nVendor reply to classify:\n" + body

	var payload analysisPayload
	if err := d.complete(ctx, analysisSystemPrompt, prompt, &payload); err != nil {
		d.log.Warnw("reply analysis failed, using neutral result",
			"issue_sid", issueCtx.IssueSID, "error", err)
		return neutralAnalysis(), nil
	}

	return &ReplyAnalysis{
		Sentiment:             payload.Sentiment,
		Intent:                payload.Intent,
		EscalationRecommended: payload.EscalationRecommended,
		Summary:               payload.Summary,
		NextAction:            payload.NextAction,
		Confidence:            clampConfidence(payload.Confidence),
	}, nil
}

func (d *OpenAIDrafter) complete(ctx context.Context, systemPrompt, userPrompt string, out any) error {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: d.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("chat completion returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("failed to parse completion payload: %w", err)
	}
	return nil
}

func describeIssue(issueCtx IssueContext) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Case %s, vendor %s.\n", issueCtx.IssueSID, issueCtx.VendorName)
	fmt.Fprintf(&sb, "Issue type: %s, priority %s.\n", issueCtx.IssueType, issueCtx.Priority)
	fmt.Fprintf(&sb, "Description: %s\n", issueCtx.Description)
	if issueCtx.Impact != "" {
		fmt.Fprintf(&sb, "Impact: %s\n", issueCtx.Impact)
	}
	if issueCtx.ApartmentAddress != "" {
		fmt.Fprintf(&sb, "Delivery address: %s\n", issueCtx.ApartmentAddress)
	}
	for _, item := range issueCtx.Items {
		fmt.Fprintf(&sb, "Item: %dx %s", item.Quantity, item.ProductName)
		if len(item.Tags) > 0 {
			fmt.Fprintf(&sb, " [%s]", strings.Join(item.Tags, ", "))
		}
		if item.Description != "" {
			fmt.Fprintf(&sb, " (%s)", item.Description)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func describeHistory(history []ConversationEntry) string {
	if len(history) == 0 {
		return "(no prior messages)"
	}
	var sb strings.Builder
	for _, entry := range history {
		fmt.Fprintf(&sb, "[%s] %s\n", entry.Sender, entry.Body)
	}
	return sb.String()
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
