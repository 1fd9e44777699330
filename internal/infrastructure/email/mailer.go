// Package email composes and delivers issue conversation mail over SMTP.
package email

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	sharedConfig "fitout/internal/shared/config"
)

// OutboundMail is a fully composed message ready for delivery.
type OutboundMail struct {
	To        string
	Subject   string
	HTMLBody  string
	PlainBody string
	// Headers carries the issue correlation headers and threading headers.
	Headers map[string]string
}

// Mailer delivers composed mail and reports the RFC message id it was sent
// under.
type Mailer interface {
	Send(mail *OutboundMail) (rfcMessageID string, err error)
}

type SMTPMailer struct {
	cfg    *sharedConfig.EmailConfig
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg *sharedConfig.EmailConfig) *SMTPMailer {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)

	return &SMTPMailer{
		cfg:    cfg,
		dialer: dialer,
	}
}

func (s *SMTPMailer) Send(mail *OutboundMail) (string, error) {
	messageID := newRFCMessageID(s.cfg.FromAddress)

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromAddress, s.cfg.FromName)
	m.SetHeader("To", mail.To)
	m.SetHeader("Subject", mail.Subject)
	m.SetHeader("Message-ID", messageID)
	if s.cfg.ReplyTo != "" {
		m.SetHeader("Reply-To", s.cfg.ReplyTo)
	}
	for name, value := range mail.Headers {
		m.SetHeader(name, value)
	}
	m.SetBody("text/plain", mail.PlainBody)
	m.AddAlternative("text/html", mail.HTMLBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return messageID, nil
}

func newRFCMessageID(fromAddress string) string {
	domain := "fitout.local"
	if at := strings.LastIndex(fromAddress, "@"); at >= 0 && at < len(fromAddress)-1 {
		domain = fromAddress[at+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}
