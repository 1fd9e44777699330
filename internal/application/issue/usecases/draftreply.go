package usecases

import (
	"context"
	"fmt"

	"fitout/internal/domain/apartment"
	"fitout/internal/domain/issue"
	"fitout/internal/domain/vendor"
	"fitout/internal/infrastructure/ai"
	"fitout/internal/infrastructure/email"
	apperrors "fitout/internal/shared/errors"
	"fitout/internal/shared/logger"
)

type DraftReplyCommand struct {
	IssueSID string
}

type DraftReplyResult struct {
	MessageID  uint
	Status     string
	Confidence float64
	// Fallback reports that the drafter degraded to the canned template.
	Fallback bool
}

// DraftReplyUseCase produces an AI reply draft on operator demand. The
// draft is always queued for approval, never auto-sent; the operator asked
// for something to review.
type DraftReplyUseCase struct {
	issues     issue.IssueRepository
	messages   issue.MessageRepository
	vendors    vendor.Repository
	apartments apartment.Repository
	drafter    ai.Drafter
	logger     logger.Interface
}

func NewDraftReplyUseCase(
	issues issue.IssueRepository,
	messages issue.MessageRepository,
	vendors vendor.Repository,
	apartments apartment.Repository,
	drafter ai.Drafter,
	log logger.Interface,
) *DraftReplyUseCase {
	return &DraftReplyUseCase{
		issues:     issues,
		messages:   messages,
		vendors:    vendors,
		apartments: apartments,
		drafter:    drafter,
		logger:     log,
	}
}

func (uc *DraftReplyUseCase) Execute(ctx context.Context, cmd DraftReplyCommand) (*DraftReplyResult, error) {
	iss, err := uc.issues.GetBySID(ctx, cmd.IssueSID)
	if err != nil {
		return nil, err
	}

	if iss.Status().IsClosed() {
		return nil, apperrors.NewValidationError("cannot draft a reply on a closed issue")
	}
	if iss.ThreadToken() == "" {
		return nil, apperrors.NewValidationError("conversation has not been started for this issue")
	}

	vnd, err := uc.vendors.GetByID(ctx, iss.VendorID())
	if err != nil {
		return nil, err
	}

	history, err := uc.messages.ListByIssueID(ctx, iss.ID())
	if err != nil {
		return nil, err
	}

	entries := conversationHistory(history)
	latest := ""
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Sender().IsVendor() {
			latest = history[i].Body()
			break
		}
	}

	issueCtx := buildIssueContext(ctx, iss, vnd, uc.apartments)
	reply, err := uc.drafter.DraftReply(ctx, issueCtx, entries, latest)
	if err != nil || reply == nil {
		return nil, fmt.Errorf("failed to draft reply: %w", err)
	}

	draft, err := issue.NewAIDraft(iss.ID(), email.FormatSubject(iss.SID(), "Re: "+iss.IssueType()+" issue"), reply.Reply, reply.Confidence)
	if err != nil {
		return nil, err
	}

	if err := uc.messages.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to save reply draft: %w", err)
	}

	uc.logger.Infow("on-demand reply draft created",
		"sid", iss.SID(), "message_id", draft.ID(), "confidence", reply.Confidence, "fallback", reply.Fallback)

	return &DraftReplyResult{
		MessageID:  draft.ID(),
		Status:     draft.Status().String(),
		Confidence: reply.Confidence,
		Fallback:   reply.Fallback,
	}, nil
}
