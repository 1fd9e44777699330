package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fitout/internal/domain/issue"
	vo "fitout/internal/domain/issue/valueobjects"
	"fitout/internal/shared/biztime"
	"fitout/internal/shared/constants"
	"fitout/internal/shared/logger"
	"fitout/internal/shared/token"
)

// DuplicateSendWindow is how far back the duplicate-send guard looks for an
// identical message to the same recipient.
const DuplicateSendWindow = 2 * time.Minute

// Composer renders issue mail, applies the duplicate-send guard, delivers
// through the Mailer and logs the resulting conversation row. Callers are
// responsible for persisting changes made to the Issue aggregate itself.
type Composer struct {
	mailer   Mailer
	messages issue.MessageRepository
	signer   *token.Signer
	fromName string
	log      logger.Interface
}

func NewComposer(mailer Mailer, messages issue.MessageRepository, signer *token.Signer, fromName string, log logger.Interface) *Composer {
	return &Composer{
		mailer:   mailer,
		messages: messages,
		signer:   signer,
		fromName: fromName,
		log:      log.Named("email"),
	}
}

// FormatSubject embeds the issue reference so vendor replies can be matched
// back even when every correlation header is stripped.
func FormatSubject(sid, subject string) string {
	tag := fmt.Sprintf("[Issue #%s]", sid)
	if strings.Contains(subject, tag) {
		return subject
	}
	return tag + " " + subject
}

// SendInitialReport delivers the first outbound mail of a conversation and
// stamps the aggregate's first-sent time, which advances its status to
// pending_vendor.
func (c *Composer) SendInitialReport(ctx context.Context, iss *issue.Issue, vendorName, vendorEmail, subject, body string) (*issue.Message, error) {
	fullSubject := FormatSubject(iss.SID(), subject)

	if prior, err := c.findDuplicate(ctx, iss.ID(), vendorEmail, fullSubject, body); err != nil {
		return nil, err
	} else if prior != nil {
		c.log.Infow("duplicate initial report suppressed",
			"issue_sid", iss.SID(), "prior_message_id", prior.RFCMessageID())
		return prior, nil
	}

	htmlBody, err := renderInitialReport(templateData{
		VendorName: vendorName,
		IssueRef:   iss.SID(),
		FromName:   c.fromName,
		BodyHTML:   bodyToHTML(body),
	})
	if err != nil {
		return nil, err
	}

	msg, err := c.deliver(ctx, iss, vo.SenderAI, vendorEmail, fullSubject, body, htmlBody, "")
	if err != nil {
		return msg, err
	}

	if err := iss.MarkFirstSent(biztime.NowUTC()); err != nil {
		return msg, err
	}
	return msg, nil
}

// SendReply delivers an approved draft and returns the message that
// represents the mail on the wire. Normally that is the draft itself, marked
// sent or failed in place. When the duplicate-send guard finds an identical
// recent mail, nothing is delivered: the draft is closed out as failed and
// the prior sent message is returned so callers can surface its id instead
// of reporting a fresh send.
func (c *Composer) SendReply(ctx context.Context, iss *issue.Issue, draft *issue.Message, vendorEmail string) (*issue.Message, error) {
	fullSubject := FormatSubject(iss.SID(), draft.Subject())

	if prior, err := c.findDuplicate(ctx, iss.ID(), vendorEmail, fullSubject, draft.Body()); err != nil {
		return nil, err
	} else if prior != nil {
		c.log.Infow("duplicate reply suppressed",
			"issue_sid", iss.SID(), "prior_message_id", prior.RFCMessageID())
		if err := draft.MarkFailed(); err != nil {
			return nil, err
		}
		if err := c.messages.Update(ctx, draft); err != nil {
			return nil, err
		}
		return prior, nil
	}

	htmlBody, err := renderReply(templateData{
		IssueRef: iss.SID(),
		FromName: c.fromName,
		BodyHTML: bodyToHTML(draft.Body()),
	})
	if err != nil {
		return nil, err
	}

	rfcMessageID, sendErr := c.mailer.Send(&OutboundMail{
		To:        vendorEmail,
		Subject:   fullSubject,
		HTMLBody:  htmlBody,
		PlainBody: htmlToPlainText(htmlBody),
		Headers:   c.correlationHeaders(iss, draft.InReplyTo()),
	})

	draft.SetAddresses("", vendorEmail)
	draft.SetThreadID("issue-" + iss.ThreadToken())
	draft.SetHTMLBody(htmlBody)

	if sendErr != nil {
		c.log.Errorw("reply delivery failed", "issue_sid", iss.SID(), "error", sendErr)
		if err := draft.MarkFailed(); err != nil {
			return nil, err
		}
		if err := c.messages.Update(ctx, draft); err != nil {
			return nil, err
		}
		return draft, sendErr
	}

	if err := draft.MarkSent(rfcMessageID); err != nil {
		return nil, err
	}
	if err := c.messages.Update(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SendManual delivers an operator-written message outside the AI drafting
// flow.
func (c *Composer) SendManual(ctx context.Context, iss *issue.Issue, vendorEmail, subject, body string) (*issue.Message, error) {
	fullSubject := FormatSubject(iss.SID(), subject)

	if prior, err := c.findDuplicate(ctx, iss.ID(), vendorEmail, fullSubject, body); err != nil {
		return nil, err
	} else if prior != nil {
		c.log.Infow("duplicate manual message suppressed",
			"issue_sid", iss.SID(), "prior_message_id", prior.RFCMessageID())
		return prior, nil
	}

	htmlBody, err := renderReply(templateData{
		IssueRef: iss.SID(),
		FromName: c.fromName,
		BodyHTML: bodyToHTML(body),
	})
	if err != nil {
		return nil, err
	}

	return c.deliver(ctx, iss, vo.SenderAdmin, vendorEmail, fullSubject, body, htmlBody, "")
}

// deliver sends the mail and logs a new conversation row, sent on success or
// failed when SMTP delivery errors.
func (c *Composer) deliver(ctx context.Context, iss *issue.Issue, sender vo.Sender, to, subject, body, htmlBody, inReplyTo string) (*issue.Message, error) {
	rfcMessageID, sendErr := c.mailer.Send(&OutboundMail{
		To:        to,
		Subject:   subject,
		HTMLBody:  htmlBody,
		PlainBody: htmlToPlainText(htmlBody),
		Headers:   c.correlationHeaders(iss, inReplyTo),
	})

	status := vo.MessageStatusSent
	if sendErr != nil {
		status = vo.MessageStatusFailed
		c.log.Errorw("mail delivery failed", "issue_sid", iss.SID(), "error", sendErr)
	}

	msg, err := issue.NewMessage(iss.ID(), sender, status, subject, body)
	if err != nil {
		return nil, err
	}
	msg.SetAddresses("", to)
	msg.SetThreadID("issue-" + iss.ThreadToken())
	msg.SetHTMLBody(htmlBody)
	if sendErr == nil {
		msg.SetRFCMessageID(rfcMessageID)
	}

	if err := c.messages.Save(ctx, msg); err != nil {
		return nil, err
	}
	if sendErr != nil {
		return msg, sendErr
	}
	return msg, nil
}

func (c *Composer) findDuplicate(ctx context.Context, issueID uint, to, subject, body string) (*issue.Message, error) {
	since := biztime.NowUTC().Add(-DuplicateSendWindow)
	prior, err := c.messages.FindRecentSent(ctx, issueID, to, subject, body, since)
	if err != nil {
		return nil, fmt.Errorf("duplicate-send lookup failed: %w", err)
	}
	return prior, nil
}

func (c *Composer) correlationHeaders(iss *issue.Issue, inReplyTo string) map[string]string {
	headers := map[string]string{
		constants.HeaderIssueID:     iss.SID(),
		constants.HeaderIssueThread: "issue-" + iss.ThreadToken(),
		constants.HeaderIssueToken:  c.signer.Sign(iss.SID()),
	}
	if inReplyTo != "" {
		headers["In-Reply-To"] = inReplyTo
		headers["References"] = inReplyTo
	}
	return headers
}
