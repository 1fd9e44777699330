package valueobjects

import "fmt"

// Sender identifies who produced a conversation message.
type Sender string

const (
	SenderAI     Sender = "ai"
	SenderVendor Sender = "vendor"
	SenderAdmin  Sender = "admin"
	SenderSystem Sender = "system"
)

var validSenders = map[Sender]bool{
	SenderAI:     true,
	SenderVendor: true,
	SenderAdmin:  true,
	SenderSystem: true,
}

func (s Sender) String() string {
	return string(s)
}

func (s Sender) IsValid() bool {
	return validSenders[s]
}

func (s Sender) IsAI() bool {
	return s == SenderAI
}

func (s Sender) IsVendor() bool {
	return s == SenderVendor
}

func (s Sender) IsSystem() bool {
	return s == SenderSystem
}

func NewSender(s string) (Sender, error) {
	sender := Sender(s)
	if !sender.IsValid() {
		return "", fmt.Errorf("invalid sender: %s", s)
	}
	return sender, nil
}
