package issue

import (
	"fitout/internal/domain/shared/events"
)

const (
	EventIssueCreated         = "issue.created"
	EventIssueStatusChanged   = "issue.status_changed"
	EventIssueEscalated       = "issue.escalated"
	EventConversationStarted  = "issue.conversation_started"
	EventVendorReplyReceived  = "issue.vendor_reply_received"
	EventDraftPendingApproval = "issue.draft_pending_approval"
	EventMessageSent          = "issue.message_sent"
)

type IssueCreatedEvent struct {
	events.BaseEvent
	IssueID   uint
	VendorID  uint
	Priority  string
	IssueType string
}

func NewIssueCreatedEvent(iss *Issue) IssueCreatedEvent {
	return IssueCreatedEvent{
		BaseEvent: events.NewBaseEvent(iss.SID(), EventIssueCreated),
		IssueID:   iss.ID(),
		VendorID:  iss.VendorID(),
		Priority:  iss.Priority().String(),
		IssueType: iss.IssueType(),
	}
}

type IssueStatusChangedEvent struct {
	events.BaseEvent
	IssueID   uint
	OldStatus string
	NewStatus string
}

func NewIssueStatusChangedEvent(iss *Issue, oldStatus, newStatus string) IssueStatusChangedEvent {
	return IssueStatusChangedEvent{
		BaseEvent: events.NewBaseEvent(iss.SID(), EventIssueStatusChanged),
		IssueID:   iss.ID(),
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}
}

type IssueEscalatedEvent struct {
	events.BaseEvent
	IssueID     uint
	OldPriority string
	Reason      string
}

func NewIssueEscalatedEvent(iss *Issue, oldPriority, reason string) IssueEscalatedEvent {
	return IssueEscalatedEvent{
		BaseEvent:   events.NewBaseEvent(iss.SID(), EventIssueEscalated),
		IssueID:     iss.ID(),
		OldPriority: oldPriority,
		Reason:      reason,
	}
}

type ConversationStartedEvent struct {
	events.BaseEvent
	IssueID     uint
	VendorEmail string
}

func NewConversationStartedEvent(iss *Issue, vendorEmail string) ConversationStartedEvent {
	return ConversationStartedEvent{
		BaseEvent:   events.NewBaseEvent(iss.SID(), EventConversationStarted),
		IssueID:     iss.ID(),
		VendorEmail: vendorEmail,
	}
}

type VendorReplyReceivedEvent struct {
	events.BaseEvent
	IssueID   uint
	MessageID uint
}

func NewVendorReplyReceivedEvent(iss *Issue, messageID uint) VendorReplyReceivedEvent {
	return VendorReplyReceivedEvent{
		BaseEvent: events.NewBaseEvent(iss.SID(), EventVendorReplyReceived),
		IssueID:   iss.ID(),
		MessageID: messageID,
	}
}

type DraftPendingApprovalEvent struct {
	events.BaseEvent
	IssueID    uint
	MessageID  uint
	Confidence float64
}

func NewDraftPendingApprovalEvent(iss *Issue, messageID uint, confidence float64) DraftPendingApprovalEvent {
	return DraftPendingApprovalEvent{
		BaseEvent:  events.NewBaseEvent(iss.SID(), EventDraftPendingApproval),
		IssueID:    iss.ID(),
		MessageID:  messageID,
		Confidence: confidence,
	}
}

type MessageSentEvent struct {
	events.BaseEvent
	IssueID   uint
	MessageID uint
	ToAddress string
}

func NewMessageSentEvent(iss *Issue, messageID uint, toAddress string) MessageSentEvent {
	return MessageSentEvent{
		BaseEvent: events.NewBaseEvent(iss.SID(), EventMessageSent),
		IssueID:   iss.ID(),
		MessageID: messageID,
		ToAddress: toAddress,
	}
}
