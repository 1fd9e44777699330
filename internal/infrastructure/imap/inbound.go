// Package imap polls the operations mailbox for vendor replies and
// correlates them back to issue conversations.
package imap

import (
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-message/mail"
	"github.com/microcosm-cc/bluemonday"

	"fitout/internal/shared/constants"
)

// InboundEmail is a parsed mailbox message with the correlation material
// extracted from its headers.
type InboundEmail struct {
	Subject      string
	FromAddress  string
	RFCMessageID string
	InReplyTo    string
	// IssueToken is the raw X-Issue-Token header, unverified.
	IssueToken string
	// ThreadSlug is the raw X-Issue-Thread header ("issue-<token>").
	ThreadSlug string
	Body       string
}

var htmlStripPolicy = bluemonday.StrictPolicy()

// ParseInbound reads a raw RFC822 message and extracts the fields the
// matcher and conversation log need. Multipart messages prefer the
// text/plain part; HTML-only mail is stripped to text.
func ParseInbound(r io.Reader) (*InboundEmail, error) {
	mr, err := mail.CreateReader(r)
	if err != nil && mr == nil {
		return nil, fmt.Errorf("failed to parse inbound message: %w", err)
	}

	inbound := &InboundEmail{
		Subject:      headerValue(mr, "Subject"),
		RFCMessageID: headerValue(mr, "Message-Id"),
		InReplyTo:    headerValue(mr, "In-Reply-To"),
		IssueToken:   headerValue(mr, constants.HeaderIssueToken),
		ThreadSlug:   headerValue(mr, constants.HeaderIssueThread),
	}
	if subject, err := mr.Header.Subject(); err == nil && subject != "" {
		inbound.Subject = subject
	}
	if addrs, err := mr.Header.AddressList("From"); err == nil && len(addrs) > 0 {
		inbound.FromAddress = addrs[0].Address
	}

	var plainBody, htmlBody string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Tolerate unknown charsets and malformed trailing parts.
			break
		}

		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, _ := header.ContentType()
		content, readErr := io.ReadAll(part.Body)
		if readErr != nil {
			continue
		}

		switch contentType {
		case "text/plain":
			if plainBody == "" {
				plainBody = string(content)
			}
		case "text/html":
			if htmlBody == "" {
				htmlBody = string(content)
			}
		}
	}

	switch {
	case plainBody != "":
		inbound.Body = strings.TrimSpace(plainBody)
	case htmlBody != "":
		inbound.Body = strings.TrimSpace(htmlStripPolicy.Sanitize(htmlBody))
	}

	return inbound, nil
}

func headerValue(mr *mail.Reader, key string) string {
	return strings.TrimSpace(mr.Header.Get(key))
}
