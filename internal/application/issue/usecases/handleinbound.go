package usecases

import (
	"context"
	"fmt"

	"fitout/internal/domain/apartment"
	"fitout/internal/domain/issue"
	"fitout/internal/domain/notification"
	"fitout/internal/domain/shared/events"
	"fitout/internal/domain/vendor"
	"fitout/internal/infrastructure/ai"
	"fitout/internal/infrastructure/email"
	"fitout/internal/infrastructure/imap"
	"fitout/internal/shared/biztime"
	"fitout/internal/shared/logger"
)

// Notifier fans a notification out to every active admin user.
type Notifier interface {
	NotifyAdmins(ctx context.Context, ntype notification.NotificationType, title, content string, relatedIssueID *uint) error
}

// HandleInboundUseCase is the conversation orchestrator for vendor replies.
// It logs the inbound message, analyzes it, advances the issue state, and
// produces the next outbound reply, either auto-sent or queued for approval.
type HandleInboundUseCase struct {
	issues     issue.IssueRepository
	messages   issue.MessageRepository
	vendors    vendor.Repository
	apartments apartment.Repository
	drafter    ai.Drafter
	composer   *email.Composer
	notifier   Notifier
	dispatcher events.EventPublisher

	autoApprove         bool
	confidenceThreshold float64
	logger              logger.Interface
}

func NewHandleInboundUseCase(
	issues issue.IssueRepository,
	messages issue.MessageRepository,
	vendors vendor.Repository,
	apartments apartment.Repository,
	drafter ai.Drafter,
	composer *email.Composer,
	notifier Notifier,
	dispatcher events.EventPublisher,
	autoApprove bool,
	confidenceThreshold float64,
	log logger.Interface,
) *HandleInboundUseCase {
	return &HandleInboundUseCase{
		issues:              issues,
		messages:            messages,
		vendors:             vendors,
		apartments:          apartments,
		drafter:             drafter,
		composer:            composer,
		notifier:            notifier,
		dispatcher:          dispatcher,
		autoApprove:         autoApprove,
		confidenceThreshold: confidenceThreshold,
		logger:              log,
	}
}

// HandleInbound processes one matched vendor reply. The message is always
// logged, even when the issue is closed or later steps fail.
func (uc *HandleInboundUseCase) HandleInbound(ctx context.Context, iss *issue.Issue, mail *imap.InboundEmail) error {
	msg, err := issue.NewVendorMessage(iss.ID(), mail.Subject, mail.Body, mail.FromAddress, mail.RFCMessageID, mail.InReplyTo)
	if err != nil {
		return fmt.Errorf("failed to build vendor message: %w", err)
	}
	if iss.ThreadToken() != "" {
		msg.SetThreadID("issue-" + iss.ThreadToken())
	}
	if err := uc.messages.Save(ctx, msg); err != nil {
		return fmt.Errorf("failed to log vendor message: %w", err)
	}

	iss.RecordVendorReply(biztime.NowUTC())
	publishEvent(uc.dispatcher, uc.logger, issue.NewVendorReplyReceivedEvent(iss, msg.ID()))

	if iss.Status().IsClosed() {
		uc.logger.Infow("vendor replied on closed issue, skipping drafting", "sid", iss.SID())
		uc.notify(ctx, iss, notification.TypeVendorReply,
			fmt.Sprintf("Vendor replied on closed issue %s", iss.SID()),
			fmt.Sprintf("A vendor reply arrived on closed issue **%s** and was logged without an automatic response.", iss.SID()))
		return uc.issues.Update(ctx, iss)
	}

	vnd, err := uc.vendors.GetByID(ctx, iss.VendorID())
	if err != nil {
		return err
	}
	issueCtx := buildIssueContext(ctx, iss, vnd, uc.apartments)

	uc.applyAnalysis(ctx, iss, issueCtx, mail.Body)

	if err := uc.draftNextReply(ctx, iss, issueCtx, vnd.Email(), mail.RFCMessageID); err != nil {
		uc.logger.Errorw("failed to produce reply draft", "error", err, "sid", iss.SID())
	}

	if err := uc.issues.Update(ctx, iss); err != nil {
		return fmt.Errorf("failed to persist issue after inbound reply: %w", err)
	}

	uc.logger.Infow("vendor reply processed", "sid", iss.SID(), "message_id", msg.ID())
	return nil
}

// applyAnalysis classifies the reply and advances the issue accordingly.
// Analysis failures degrade to a neutral result inside the drafter, so the
// workflow never stalls on provider errors.
func (uc *HandleInboundUseCase) applyAnalysis(ctx context.Context, iss *issue.Issue, issueCtx ai.IssueContext, body string) {
	analysis, err := uc.drafter.AnalyzeReply(ctx, issueCtx, body)
	if err != nil || analysis == nil {
		uc.logger.Warnw("reply analysis unavailable", "error", err, "sid", iss.SID())
		return
	}

	iss.UpdateAISummary(analysis.Summary, analysis.NextAction)

	switch analysis.Intent {
	case ai.IntentAcceptingResponsibility, ai.IntentProposingSolution:
		oldStatus := iss.Status().String()
		if err := iss.AgreeResolution(); err != nil {
			uc.logger.Debugw("resolution transition not applicable", "sid", iss.SID(), "error", err)
		} else {
			publishEvent(uc.dispatcher, uc.logger, issue.NewIssueStatusChangedEvent(iss, oldStatus, iss.Status().String()))
		}
	}

	if analysis.EscalationRecommended {
		oldPriority := iss.Priority().String()
		if err := iss.Escalate(); err != nil {
			uc.logger.Warnw("failed to escalate issue", "error", err, "sid", iss.SID())
		} else {
			publishEvent(uc.dispatcher, uc.logger, issue.NewIssueEscalatedEvent(iss, oldPriority, analysis.Intent))
			uc.notify(ctx, iss, notification.TypeIssueEscalated,
				fmt.Sprintf("Issue %s escalated", iss.SID()),
				fmt.Sprintf("The vendor reply on issue **%s** was classified as *%s* and the issue was escalated to critical.\n\nSuggested next action: %s",
					iss.SID(), analysis.Intent, analysis.NextAction))
		}
	}
}

// draftNextReply generates the response to the vendor. High-confidence
// drafts are sent immediately when auto-approval is on; everything else
// waits for a human.
func (uc *HandleInboundUseCase) draftNextReply(ctx context.Context, iss *issue.Issue, issueCtx ai.IssueContext, vendorEmail, inReplyTo string) error {
	history, err := uc.messages.ListByIssueID(ctx, iss.ID())
	if err != nil {
		return err
	}

	entries := conversationHistory(history)
	latest := ""
	if len(entries) > 0 {
		latest = entries[len(entries)-1].Body
	}

	reply, err := uc.drafter.DraftReply(ctx, issueCtx, entries, latest)
	if err != nil || reply == nil {
		uc.logger.Errorw("reply drafting failed", "error", err, "sid", iss.SID())
		note, noteErr := issue.NewSystemNote(iss.ID(), "Automatic reply drafting failed; a manual response is required.")
		if noteErr == nil {
			if saveErr := uc.messages.Save(ctx, note); saveErr != nil {
				uc.logger.Warnw("failed to log drafting failure note", "error", saveErr, "sid", iss.SID())
			}
		}
		return err
	}

	draft, err := issue.NewAIDraft(iss.ID(), email.FormatSubject(iss.SID(), "Re: "+iss.IssueType()+" issue"), reply.Reply, reply.Confidence)
	if err != nil {
		return err
	}
	draft.SetInReplyTo(inReplyTo)

	if err := uc.messages.Save(ctx, draft); err != nil {
		return fmt.Errorf("failed to save reply draft: %w", err)
	}

	if uc.autoApprove && !reply.Fallback && reply.Confidence >= uc.confidenceThreshold {
		sent, err := uc.composer.SendReply(ctx, iss, draft, vendorEmail)
		if err != nil {
			uc.logger.Errorw("auto-approved reply delivery failed", "error", err, "sid", iss.SID())
			return err
		}
		if sent.ID() != draft.ID() {
			uc.logger.Infow("duplicate auto-reply suppressed", "sid", iss.SID(), "prior_message_id", sent.ID())
			return nil
		}
		publishEvent(uc.dispatcher, uc.logger, issue.NewMessageSentEvent(iss, draft.ID(), vendorEmail))
		uc.logger.Infow("reply auto-sent", "sid", iss.SID(), "confidence", reply.Confidence)
		return nil
	}

	publishEvent(uc.dispatcher, uc.logger, issue.NewDraftPendingApprovalEvent(iss, draft.ID(), reply.Confidence))
	uc.notify(ctx, iss, notification.TypePendingApproval,
		fmt.Sprintf("Reply draft for issue %s awaits approval", iss.SID()),
		fmt.Sprintf("An AI reply draft for issue **%s** (confidence %.2f) is waiting for approval.", iss.SID(), reply.Confidence))

	uc.logger.Infow("reply draft queued for approval", "sid", iss.SID(), "confidence", reply.Confidence, "fallback", reply.Fallback)
	return nil
}

func (uc *HandleInboundUseCase) notify(ctx context.Context, iss *issue.Issue, ntype notification.NotificationType, title, content string) {
	if uc.notifier == nil {
		return
	}
	issueID := iss.ID()
	if err := uc.notifier.NotifyAdmins(ctx, ntype, title, content, &issueID); err != nil {
		uc.logger.Warnw("failed to notify admins", "error", err, "sid", iss.SID(), "type", ntype.String())
	}
}
