package ai

import (
	"context"
	"fmt"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedConfig "fitout/internal/shared/config"
	"fitout/internal/shared/logger"
)

func configAI(provider, apiKey string) *sharedConfig.AIConfig {
	return &sharedConfig.AIConfig{
		Provider:           provider,
		APIKey:             apiKey,
		Model:              "gpt-4o-mini",
		RequestTimeoutSecs: 5,
	}
}

func testIssueContext() IssueContext {
	return IssueContext{
		IssueSID:    "iss_abc123",
		IssueType:   "damage",
		Description: "Tabletop arrived scratched",
		Impact:      "Table unusable",
		Priority:    "medium",
		VendorName:  "Acme GmbH",
		Items: []ItemContext{
			{ProductName: "Oak dining table", Quantity: 1, Tags: []string{"scratched"}},
		},
	}
}

func TestMockDrafter_DraftInitialReport(t *testing.T) {
	drafter := NewMockDrafter()

	draft, err := drafter.DraftInitialReport(context.Background(), testIssueContext())

	require.NoError(t, err)
	assert.Equal(t, "Damage issue report", draft.Subject)
	assert.Contains(t, draft.Opening, "Tabletop arrived scratched")
	assert.Contains(t, draft.Opening, "1x Oak dining table")
	assert.NotEmpty(t, draft.Closing)
	assert.Equal(t, mockConfidence, draft.Confidence)
	assert.False(t, draft.Fallback)

	// Drafting is deterministic.
	again, err := drafter.DraftInitialReport(context.Background(), testIssueContext())
	require.NoError(t, err)
	assert.Equal(t, draft, again)
}

func TestMockDrafter_AnalyzeReply(t *testing.T) {
	tests := []struct {
		name             string
		body             string
		expectedIntent   string
		expectEscalation bool
	}{
		{
			name:           "remedy offer",
			body:           "We will replace the tabletop next week.",
			expectedIntent: IntentProposingSolution,
		},
		{
			name:           "apology",
			body:           "We are sorry, this should not have happened.",
			expectedIntent: IntentAcceptingResponsibility,
		},
		{
			name:             "dispute",
			body:             "This is not our responsibility, the damage happened after delivery.",
			expectedIntent:   IntentDisputing,
			expectEscalation: true,
		},
		{
			name:           "question",
			body:           "Could you send a photo of the damage?",
			expectedIntent: IntentRequestingInfo,
		},
		{
			name:           "unclear",
			body:           "Noted.",
			expectedIntent: IntentUnclear,
		},
	}

	drafter := NewMockDrafter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := drafter.AnalyzeReply(context.Background(), testIssueContext(), tt.body)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedIntent, analysis.Intent)
			assert.Equal(t, tt.expectEscalation, analysis.EscalationRecommended)
		})
	}
}

type stubCompleter struct {
	content string
	err     error
}

func (s *stubCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: s.content}},
		},
	}, nil
}

func newStubbedDrafter(stub *stubCompleter) *OpenAIDrafter {
	return &OpenAIDrafter{
		client:  stub,
		model:   "gpt-4o-mini",
		timeout: time.Second,
		log:     logger.NewLogger(),
	}
}

func TestOpenAIDrafter_DraftInitialReport(t *testing.T) {
	t.Run("parses structured payload", func(t *testing.T) {
		drafter := newStubbedDrafter(&stubCompleter{
			content: `{"subject": "Scratched tabletop", "opening": "We received a damaged table.", "closing": "Please advise.", "confidence": 0.93}`,
		})

		draft, err := drafter.DraftInitialReport(context.Background(), testIssueContext())

		require.NoError(t, err)
		assert.Equal(t, "Scratched tabletop", draft.Subject)
		assert.Equal(t, "We received a damaged table.", draft.Opening)
		assert.Equal(t, 0.93, draft.Confidence)
		assert.Equal(t, "gpt-4o-mini", draft.GeneratedBy)
		assert.False(t, draft.Fallback)
	})

	t.Run("falls back on api error", func(t *testing.T) {
		drafter := newStubbedDrafter(&stubCompleter{err: fmt.Errorf("rate limited")})

		draft, err := drafter.DraftInitialReport(context.Background(), testIssueContext())

		require.NoError(t, err)
		assert.True(t, draft.Fallback)
		assert.Equal(t, fallbackConfidence, draft.Confidence)
		assert.Contains(t, draft.Opening, "Tabletop arrived scratched")
	})

	t.Run("falls back on malformed payload", func(t *testing.T) {
		drafter := newStubbedDrafter(&stubCompleter{content: "sure, here is the email you asked for"})

		draft, err := drafter.DraftInitialReport(context.Background(), testIssueContext())

		require.NoError(t, err)
		assert.True(t, draft.Fallback)
	})
}

func TestOpenAIDrafter_DraftReply(t *testing.T) {
	t.Run("clamps out of range confidence", func(t *testing.T) {
		drafter := newStubbedDrafter(&stubCompleter{
			content: `{"reply": "We accept the replacement.", "confidence": 1.7}`,
		})

		draft, err := drafter.DraftReply(context.Background(), testIssueContext(), nil, "We can replace it.")

		require.NoError(t, err)
		assert.Equal(t, "We accept the replacement.", draft.Reply)
		assert.Equal(t, 1.0, draft.Confidence)
	})

	t.Run("falls back on api error", func(t *testing.T) {
		drafter := newStubbedDrafter(&stubCompleter{err: fmt.Errorf("timeout")})

		draft, err := drafter.DraftReply(context.Background(), testIssueContext(), nil, "We can replace it.")

		require.NoError(t, err)
		assert.True(t, draft.Fallback)
		assert.Contains(t, draft.Reply, "iss_abc123")
	})
}

func TestOpenAIDrafter_AnalyzeReply(t *testing.T) {
	t.Run("parses analysis payload", func(t *testing.T) {
		drafter := newStubbedDrafter(&stubCompleter{
			content: `{"sentiment": "positive", "intent": "proposing_solution", "escalation_recommended": false, "summary": "Vendor offers replacement.", "next_action": "Confirm delivery date.", "confidence": 0.88}`,
		})

		analysis, err := drafter.AnalyzeReply(context.Background(), testIssueContext(), "We will replace it.")

		require.NoError(t, err)
		assert.Equal(t, SentimentPositive, analysis.Sentiment)
		assert.Equal(t, IntentProposingSolution, analysis.Intent)
		assert.Equal(t, "Vendor offers replacement.", analysis.Summary)
	})

	t.Run("neutral fallback on error", func(t *testing.T) {
		drafter := newStubbedDrafter(&stubCompleter{err: fmt.Errorf("boom")})

		analysis, err := drafter.AnalyzeReply(context.Background(), testIssueContext(), "We will replace it.")

		require.NoError(t, err)
		assert.Equal(t, SentimentNeutral, analysis.Sentiment)
		assert.Equal(t, IntentUnclear, analysis.Intent)
		assert.False(t, analysis.EscalationRecommended)
		assert.Zero(t, analysis.Confidence)
	})
}

func TestNewDrafter(t *testing.T) {
	log := logger.NewLogger()

	t.Run("mock provider", func(t *testing.T) {
		d, err := NewDrafter(configAI("mock", ""), log)
		require.NoError(t, err)
		assert.IsType(t, &MockDrafter{}, d)
	})

	t.Run("openai without key degrades to mock", func(t *testing.T) {
		d, err := NewDrafter(configAI("openai", ""), log)
		require.NoError(t, err)
		assert.IsType(t, &MockDrafter{}, d)
	})

	t.Run("openai with key", func(t *testing.T) {
		d, err := NewDrafter(configAI("openai", "sk-test"), log)
		require.NoError(t, err)
		assert.IsType(t, &OpenAIDrafter{}, d)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewDrafter(configAI("bedrock", ""), log)
		assert.Error(t, err)
	})
}
