package imap

import (
	"context"
	"fmt"

	"fitout/internal/domain/issue"
	apperrors "fitout/internal/shared/errors"
	"fitout/internal/shared/logger"
)

// Fetcher pulls recent mailbox messages. The IMAP Client implements it;
// tests substitute a stub.
type Fetcher interface {
	FetchRecent(ctx context.Context, window int) ([]*InboundEmail, error)
}

// Handler processes a matched vendor reply. The conversation orchestrator
// implements it.
type Handler interface {
	HandleInbound(ctx context.Context, iss *issue.Issue, mail *InboundEmail) error
}

// Poller fetches a bounded window of recent mail, drops everything already
// logged or unmatchable, and hands the rest to the conversation handler.
// One failing message never aborts the rest of the window.
type Poller struct {
	fetcher  Fetcher
	matcher  *Matcher
	messages issue.MessageRepository
	handler  Handler
	window   int
	log      logger.Interface
}

func NewPoller(fetcher Fetcher, matcher *Matcher, messages issue.MessageRepository, handler Handler, window int, log logger.Interface) *Poller {
	return &Poller{
		fetcher:  fetcher,
		matcher:  matcher,
		messages: messages,
		handler:  handler,
		window:   window,
		log:      log.Named("imap.poller"),
	}
}

func (p *Poller) Poll(ctx context.Context) error {
	mails, err := p.fetcher.FetchRecent(ctx, p.window)
	if err != nil {
		return fmt.Errorf("inbound poll failed: %w", err)
	}

	for _, mail := range mails {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.process(ctx, mail); err != nil {
			p.log.Errorw("failed to process inbound message",
				"rfc_message_id", mail.RFCMessageID, "from", mail.FromAddress, "error", err)
		}
	}
	return nil
}

func (p *Poller) process(ctx context.Context, mail *InboundEmail) error {
	if mail.RFCMessageID != "" {
		_, err := p.messages.GetByRFCMessageID(ctx, mail.RFCMessageID)
		if err == nil {
			return nil
		}
		if !apperrors.IsNotFoundError(err) {
			return fmt.Errorf("dedupe lookup failed: %w", err)
		}
	}

	iss, err := p.matcher.Match(ctx, mail)
	if err != nil {
		return err
	}
	if iss == nil {
		p.log.Debugw("inbound message matched no issue, skipping",
			"rfc_message_id", mail.RFCMessageID, "subject", mail.Subject)
		return nil
	}

	return p.handler.HandleInbound(ctx, iss, mail)
}
