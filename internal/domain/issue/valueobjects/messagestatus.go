package valueobjects

import "fmt"

// MessageStatus tracks the delivery state of a conversation message.
// Only pending_approval has outgoing transitions; every other state is final
// because the conversation log is append-only.
type MessageStatus string

const (
	MessageStatusReceived        MessageStatus = "received"
	MessageStatusSent            MessageStatus = "sent"
	MessageStatusPendingApproval MessageStatus = "pending_approval"
	MessageStatusFailed          MessageStatus = "failed"
	MessageStatusInternal        MessageStatus = "internal"
)

var validMessageStatuses = map[MessageStatus]bool{
	MessageStatusReceived:        true,
	MessageStatusSent:            true,
	MessageStatusPendingApproval: true,
	MessageStatusFailed:          true,
	MessageStatusInternal:        true,
}

var messageStatusTransitions = map[MessageStatus][]MessageStatus{
	MessageStatusReceived:        {},
	MessageStatusSent:            {},
	MessageStatusPendingApproval: {MessageStatusSent, MessageStatusFailed},
	MessageStatusFailed:          {},
	MessageStatusInternal:        {},
}

func (ms MessageStatus) String() string {
	return string(ms)
}

func (ms MessageStatus) IsValid() bool {
	return validMessageStatuses[ms]
}

func (ms MessageStatus) CanTransitionTo(newStatus MessageStatus) bool {
	allowedTransitions, ok := messageStatusTransitions[ms]
	if !ok {
		return false
	}

	for _, allowed := range allowedTransitions {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

func (ms MessageStatus) IsPendingApproval() bool {
	return ms == MessageStatusPendingApproval
}

func (ms MessageStatus) IsSent() bool {
	return ms == MessageStatusSent
}

func (ms MessageStatus) IsReceived() bool {
	return ms == MessageStatusReceived
}

func (ms MessageStatus) IsFailed() bool {
	return ms == MessageStatusFailed
}

func (ms MessageStatus) IsInternal() bool {
	return ms == MessageStatusInternal
}

func NewMessageStatus(s string) (MessageStatus, error) {
	ms := MessageStatus(s)
	if !ms.IsValid() {
		return "", fmt.Errorf("invalid message status: %s", s)
	}
	return ms, nil
}
