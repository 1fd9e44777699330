package dto

import (
	"time"

	"fitout/internal/domain/issue"
)

type IssueDTO struct {
	ID                uint       `json:"id"`
	SID               string     `json:"sid"`
	ApartmentID       uint       `json:"apartment_id"`
	VendorID          uint       `json:"vendor_id"`
	ProductID         *uint      `json:"product_id"`
	OrderID           *uint      `json:"order_id"`
	IssueType         string     `json:"issue_type"`
	Description       string     `json:"description"`
	Impact            string     `json:"impact"`
	Priority          string     `json:"priority"`
	Status            string     `json:"status"`
	AIActivated       bool       `json:"ai_activated"`
	FirstSentAt       *time.Time `json:"first_sent_at"`
	LastVendorReplyAt *time.Time `json:"last_vendor_reply_at"`
	AISummary         string     `json:"ai_summary"`
	NextAction        string     `json:"next_action"`
	Items             []ItemDTO  `json:"items"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	ClosedAt          *time.Time `json:"closed_at"`
}

type ItemDTO struct {
	ID          uint     `json:"id"`
	ProductName string   `json:"product_name"`
	Quantity    int      `json:"quantity"`
	IssueTags   []string `json:"issue_tags"`
	Description string   `json:"description"`
	ImageRef    string   `json:"image_ref"`
}

type MessageDTO struct {
	ID           uint       `json:"id"`
	Sender       string     `json:"sender"`
	Status       string     `json:"status"`
	Subject      string     `json:"subject"`
	Body         string     `json:"body"`
	FromAddress  string     `json:"from_address"`
	ToAddress    string     `json:"to_address"`
	AIConfidence *float64   `json:"ai_confidence"`
	ApproverID   *uint      `json:"approver_id"`
	ApprovedAt   *time.Time `json:"approved_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ThreadDTO is the full conversation view of an issue.
type ThreadDTO struct {
	Issue    *IssueDTO    `json:"issue"`
	Messages []MessageDTO `json:"messages"`
}

func IssueFromDomain(iss *issue.Issue) *IssueDTO {
	if iss == nil {
		return nil
	}

	items := make([]ItemDTO, 0, len(iss.Items()))
	for _, item := range iss.Items() {
		items = append(items, ItemDTO{
			ID:          item.ID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			IssueTags:   item.IssueTags(),
			Description: item.Description(),
			ImageRef:    item.ImageRef(),
		})
	}

	return &IssueDTO{
		ID:                iss.ID(),
		SID:               iss.SID(),
		ApartmentID:       iss.ApartmentID(),
		VendorID:          iss.VendorID(),
		ProductID:         iss.ProductID(),
		OrderID:           iss.OrderID(),
		IssueType:         iss.IssueType(),
		Description:       iss.Description(),
		Impact:            iss.Impact(),
		Priority:          iss.Priority().String(),
		Status:            iss.Status().String(),
		AIActivated:       iss.AIActivated(),
		FirstSentAt:       iss.FirstSentAt(),
		LastVendorReplyAt: iss.LastVendorReplyAt(),
		AISummary:         iss.AISummary(),
		NextAction:        iss.NextAction(),
		Items:             items,
		CreatedAt:         iss.CreatedAt(),
		UpdatedAt:         iss.UpdatedAt(),
		ClosedAt:          iss.ClosedAt(),
	}
}

func MessageFromDomain(m *issue.Message) MessageDTO {
	return MessageDTO{
		ID:           m.ID(),
		Sender:       m.Sender().String(),
		Status:       m.Status().String(),
		Subject:      m.Subject(),
		Body:         m.Body(),
		FromAddress:  m.FromAddress(),
		ToAddress:    m.ToAddress(),
		AIConfidence: m.AIConfidence(),
		ApproverID:   m.ApproverID(),
		ApprovedAt:   m.ApprovedAt(),
		CreatedAt:    m.CreatedAt(),
	}
}
