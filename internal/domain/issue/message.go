package issue

import (
	"fmt"
	"time"

	vo "fitout/internal/domain/issue/valueobjects"
	"fitout/internal/shared/biztime"
)

// Message is one entry in an issue's conversation log. The log is
// append-only: messages are never deleted and only pending_approval drafts
// change status after creation.
type Message struct {
	id           uint
	issueID      uint
	sender       vo.Sender
	status       vo.MessageStatus
	subject      string
	body         string
	htmlBody     string
	fromAddress  string
	toAddress    string
	rfcMessageID string
	inReplyTo    string
	threadID     string
	aiConfidence *float64
	approverID   *uint
	approvedAt   *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

func NewMessage(
	issueID uint,
	sender vo.Sender,
	status vo.MessageStatus,
	subject string,
	body string,
) (*Message, error) {
	if issueID == 0 {
		return nil, fmt.Errorf("issue ID is required")
	}
	if !sender.IsValid() {
		return nil, fmt.Errorf("invalid sender")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid message status")
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("body cannot be empty")
	}

	now := biztime.NowUTC()
	return &Message{
		issueID:   issueID,
		sender:    sender,
		status:    status,
		subject:   subject,
		body:      body,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// NewVendorMessage logs an inbound vendor email.
func NewVendorMessage(issueID uint, subject, body, from, rfcMessageID, inReplyTo string) (*Message, error) {
	m, err := NewMessage(issueID, vo.SenderVendor, vo.MessageStatusReceived, subject, body)
	if err != nil {
		return nil, err
	}
	m.fromAddress = from
	m.rfcMessageID = rfcMessageID
	m.inReplyTo = inReplyTo
	return m, nil
}

// NewAIDraft creates an AI-generated reply awaiting human approval.
func NewAIDraft(issueID uint, subject, body string, confidence float64) (*Message, error) {
	m, err := NewMessage(issueID, vo.SenderAI, vo.MessageStatusPendingApproval, subject, body)
	if err != nil {
		return nil, err
	}
	m.aiConfidence = &confidence
	return m, nil
}

// NewSystemNote logs an internal note that is never emailed to the vendor.
func NewSystemNote(issueID uint, body string) (*Message, error) {
	return NewMessage(issueID, vo.SenderSystem, vo.MessageStatusInternal, "", body)
}

func ReconstructMessage(
	id uint,
	issueID uint,
	sender vo.Sender,
	status vo.MessageStatus,
	subject string,
	body string,
	htmlBody string,
	fromAddress string,
	toAddress string,
	rfcMessageID string,
	inReplyTo string,
	threadID string,
	aiConfidence *float64,
	approverID *uint,
	approvedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Message, error) {
	if id == 0 {
		return nil, fmt.Errorf("message ID cannot be zero")
	}
	if issueID == 0 {
		return nil, fmt.Errorf("issue ID is required")
	}
	if !sender.IsValid() {
		return nil, fmt.Errorf("invalid sender")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid message status")
	}

	return &Message{
		id:           id,
		issueID:      issueID,
		sender:       sender,
		status:       status,
		subject:      subject,
		body:         body,
		htmlBody:     htmlBody,
		fromAddress:  fromAddress,
		toAddress:    toAddress,
		rfcMessageID: rfcMessageID,
		inReplyTo:    inReplyTo,
		threadID:     threadID,
		aiConfidence: aiConfidence,
		approverID:   approverID,
		approvedAt:   approvedAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (m *Message) ID() uint                 { return m.id }
func (m *Message) IssueID() uint            { return m.issueID }
func (m *Message) Sender() vo.Sender        { return m.sender }
func (m *Message) Status() vo.MessageStatus { return m.status }
func (m *Message) Subject() string          { return m.subject }
func (m *Message) Body() string             { return m.body }
func (m *Message) HTMLBody() string         { return m.htmlBody }
func (m *Message) FromAddress() string      { return m.fromAddress }
func (m *Message) ToAddress() string        { return m.toAddress }
func (m *Message) RFCMessageID() string     { return m.rfcMessageID }
func (m *Message) InReplyTo() string        { return m.inReplyTo }
func (m *Message) ThreadID() string         { return m.threadID }
func (m *Message) AIConfidence() *float64   { return m.aiConfidence }
func (m *Message) ApproverID() *uint        { return m.approverID }
func (m *Message) ApprovedAt() *time.Time   { return m.approvedAt }
func (m *Message) CreatedAt() time.Time     { return m.createdAt }
func (m *Message) UpdatedAt() time.Time     { return m.updatedAt }

func (m *Message) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("message ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("message ID cannot be zero")
	}
	m.id = id
	return nil
}

func (m *Message) SetAddresses(from, to string) {
	m.fromAddress = from
	m.toAddress = to
}

func (m *Message) SetThreadID(threadID string) {
	m.threadID = threadID
}

func (m *Message) SetRFCMessageID(rfcMessageID string) {
	m.rfcMessageID = rfcMessageID
}

// SetInReplyTo records which vendor message a draft answers so the outbound
// mail carries the right threading headers.
func (m *Message) SetInReplyTo(inReplyTo string) {
	m.inReplyTo = inReplyTo
}

func (m *Message) SetHTMLBody(htmlBody string) {
	m.htmlBody = htmlBody
}

// EditBody replaces the draft body before approval. Only pending drafts
// may be edited.
func (m *Message) EditBody(body string) error {
	if !m.status.IsPendingApproval() {
		return fmt.Errorf("only pending drafts can be edited")
	}
	if len(body) == 0 {
		return fmt.Errorf("body cannot be empty")
	}
	m.body = body
	m.updatedAt = biztime.NowUTC()
	return nil
}

// Approve records the human approver on a pending draft. The status change
// to sent happens in MarkSent after the SMTP send succeeds.
func (m *Message) Approve(approverID uint) error {
	if !m.status.IsPendingApproval() {
		return fmt.Errorf("only pending drafts can be approved")
	}
	if approverID == 0 {
		return fmt.Errorf("approver ID is required")
	}
	now := biztime.NowUTC()
	m.approverID = &approverID
	m.approvedAt = &now
	m.updatedAt = now
	return nil
}

// MarkSent transitions the message to sent and records the RFC message id
// assigned by the mailer.
func (m *Message) MarkSent(rfcMessageID string) error {
	if !m.status.CanTransitionTo(vo.MessageStatusSent) {
		return fmt.Errorf("cannot mark message with status %s as sent", m.status)
	}
	m.status = vo.MessageStatusSent
	m.rfcMessageID = rfcMessageID
	m.updatedAt = biztime.NowUTC()
	return nil
}

// MarkFailed transitions a pending draft to failed. Rejection by a human
// reviewer uses the same terminal state.
func (m *Message) MarkFailed() error {
	if !m.status.CanTransitionTo(vo.MessageStatusFailed) {
		return fmt.Errorf("cannot mark message with status %s as failed", m.status)
	}
	m.status = vo.MessageStatusFailed
	m.updatedAt = biztime.NowUTC()
	return nil
}
