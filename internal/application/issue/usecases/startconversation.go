package usecases

import (
	"context"
	"sync"

	"fitout/internal/domain/apartment"
	"fitout/internal/domain/issue"
	"fitout/internal/domain/shared/events"
	"fitout/internal/domain/vendor"
	"fitout/internal/infrastructure/ai"
	"fitout/internal/infrastructure/email"
	apperrors "fitout/internal/shared/errors"
	"fitout/internal/shared/id"
	"fitout/internal/shared/logger"
)

// threadTokenLength sizes the opaque token embedded in outbound mail headers.
const threadTokenLength = 16

type StartConversationCommand struct {
	IssueSID string
}

type StartConversationResult struct {
	IssueSID   string
	MessageID  uint
	Status     string
	Confidence float64
	// Fallback reports that the initial mail used the templated draft
	// because the AI provider was unavailable.
	Fallback bool
}

// StartConversationUseCase activates AI handling on an issue, drafts the
// initial vendor report and sends it. Concurrent starts for the same issue
// are rejected; the duplicate-send guard in the composer covers retries that
// slip past process restarts.
type StartConversationUseCase struct {
	issues     issue.IssueRepository
	vendors    vendor.Repository
	apartments apartment.Repository
	drafter    ai.Drafter
	composer   *email.Composer
	dispatcher events.EventPublisher
	logger     logger.Interface

	mu      sync.Mutex
	running map[uint]bool
}

func NewStartConversationUseCase(
	issues issue.IssueRepository,
	vendors vendor.Repository,
	apartments apartment.Repository,
	drafter ai.Drafter,
	composer *email.Composer,
	dispatcher events.EventPublisher,
	log logger.Interface,
) *StartConversationUseCase {
	return &StartConversationUseCase{
		issues:     issues,
		vendors:    vendors,
		apartments: apartments,
		drafter:    drafter,
		composer:   composer,
		dispatcher: dispatcher,
		logger:     log,
		running:    make(map[uint]bool),
	}
}

func (uc *StartConversationUseCase) Execute(ctx context.Context, cmd StartConversationCommand) (*StartConversationResult, error) {
	iss, err := uc.issues.GetBySID(ctx, cmd.IssueSID)
	if err != nil {
		return nil, err
	}
	if iss.Status().IsClosed() {
		return nil, apperrors.NewValidationError("cannot start a conversation on a closed issue")
	}

	vnd, err := uc.vendors.GetByID(ctx, iss.VendorID())
	if err != nil {
		return nil, err
	}
	if !vnd.HasEmail() {
		return nil, apperrors.NewValidationError("vendor has no email address")
	}

	if !uc.markRunning(iss.ID()) {
		return nil, apperrors.NewConflictError("conversation start already in progress for this issue")
	}
	defer uc.unmarkRunning(iss.ID())

	if !iss.AIActivated() {
		if err := iss.ActivateAI(); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if iss.ThreadToken() == "" {
		token, err := id.Generate(threadTokenLength)
		if err != nil {
			return nil, err
		}
		if err := iss.SetThreadToken(token); err != nil {
			return nil, err
		}
	}

	oldStatus := iss.Status().String()

	issueCtx := buildIssueContext(ctx, iss, vnd, uc.apartments)
	draft, err := uc.drafter.DraftInitialReport(ctx, issueCtx)
	if err != nil {
		return nil, err
	}

	msg, sendErr := uc.composer.SendInitialReport(ctx, iss, issueCtx.VendorName, vnd.Email(), draft.Subject, draft.Body())

	// The AI flag, thread token and first-sent stamp live on the aggregate;
	// persist them even when delivery failed so a retry reuses the token.
	if err := uc.issues.Update(ctx, iss); err != nil {
		uc.logger.Errorw("failed to persist issue after conversation start", "error", err, "sid", cmd.IssueSID)
		return nil, err
	}

	if sendErr != nil {
		uc.logger.Errorw("initial report delivery failed", "error", sendErr, "sid", cmd.IssueSID)
		return nil, sendErr
	}

	publishEvent(uc.dispatcher, uc.logger, issue.NewConversationStartedEvent(iss, vnd.Email()))
	publishEvent(uc.dispatcher, uc.logger, issue.NewMessageSentEvent(iss, msg.ID(), vnd.Email()))
	if newStatus := iss.Status().String(); newStatus != oldStatus {
		publishEvent(uc.dispatcher, uc.logger, issue.NewIssueStatusChangedEvent(iss, oldStatus, newStatus))
	}

	uc.logger.Infow("conversation started",
		"sid", cmd.IssueSID, "message_id", msg.ID(), "fallback", draft.Fallback, "confidence", draft.Confidence)

	return &StartConversationResult{
		IssueSID:   iss.SID(),
		MessageID:  msg.ID(),
		Status:     iss.Status().String(),
		Confidence: draft.Confidence,
		Fallback:   draft.Fallback,
	}, nil
}

func (uc *StartConversationUseCase) markRunning(issueID uint) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.running[issueID] {
		return false
	}
	uc.running[issueID] = true
	return true
}

func (uc *StartConversationUseCase) unmarkRunning(issueID uint) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.running, issueID)
}
