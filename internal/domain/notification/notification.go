// Package notification holds in-app notifications for admin console users.
// Bodies are authored in markdown and stored alongside sanitized HTML.
package notification

import (
	"fmt"
	"time"

	"fitout/internal/shared/biztime"
)

type NotificationType string

const (
	TypeIssueEscalated   NotificationType = "issue_escalated"
	TypePendingApproval  NotificationType = "pending_approval"
	TypeDeliveryFailed   NotificationType = "delivery_failed"
	TypeDeliveryOverdue  NotificationType = "delivery_overdue"
	TypeVendorReply      NotificationType = "vendor_reply"
	TypeSystemAnnouncing NotificationType = "system"
)

var validNotificationTypes = map[NotificationType]bool{
	TypeIssueEscalated:   true,
	TypePendingApproval:  true,
	TypeDeliveryFailed:   true,
	TypeDeliveryOverdue:  true,
	TypeVendorReply:      true,
	TypeSystemAnnouncing: true,
}

func (t NotificationType) String() string { return string(t) }
func (t NotificationType) IsValid() bool  { return validNotificationTypes[t] }

func NewNotificationType(s string) (NotificationType, error) {
	t := NotificationType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid notification type: %s", s)
	}
	return t, nil
}

type Notification struct {
	id               uint
	userID           uint
	notificationType NotificationType
	title            string
	content          string
	contentHTML      string
	relatedIssueID   *uint
	read             bool
	readAt           *time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

func NewNotification(
	userID uint,
	notificationType NotificationType,
	title string,
	content string,
	relatedIssueID *uint,
) (*Notification, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !notificationType.IsValid() {
		return nil, fmt.Errorf("invalid notification type")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("content is required")
	}

	now := biztime.NowUTC()
	return &Notification{
		userID:           userID,
		notificationType: notificationType,
		title:            title,
		content:          content,
		relatedIssueID:   relatedIssueID,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func ReconstructNotification(
	id uint,
	userID uint,
	notificationType NotificationType,
	title string,
	content string,
	contentHTML string,
	relatedIssueID *uint,
	read bool,
	readAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Notification, error) {
	if id == 0 {
		return nil, fmt.Errorf("notification ID cannot be zero")
	}
	if !notificationType.IsValid() {
		return nil, fmt.Errorf("invalid notification type")
	}
	return &Notification{
		id:               id,
		userID:           userID,
		notificationType: notificationType,
		title:            title,
		content:          content,
		contentHTML:      contentHTML,
		relatedIssueID:   relatedIssueID,
		read:             read,
		readAt:           readAt,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func (n *Notification) ID() uint               { return n.id }
func (n *Notification) UserID() uint           { return n.userID }
func (n *Notification) Type() NotificationType { return n.notificationType }
func (n *Notification) Title() string          { return n.title }
func (n *Notification) Content() string        { return n.content }
func (n *Notification) ContentHTML() string    { return n.contentHTML }
func (n *Notification) RelatedIssueID() *uint  { return n.relatedIssueID }
func (n *Notification) IsRead() bool           { return n.read }
func (n *Notification) ReadAt() *time.Time     { return n.readAt }
func (n *Notification) CreatedAt() time.Time   { return n.createdAt }
func (n *Notification) UpdatedAt() time.Time   { return n.updatedAt }

func (n *Notification) SetID(id uint) error {
	if n.id != 0 {
		return fmt.Errorf("notification ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("notification ID cannot be zero")
	}
	n.id = id
	return nil
}

// SetContentHTML stores the rendered, sanitized HTML body.
func (n *Notification) SetContentHTML(html string) {
	n.contentHTML = html
}

func (n *Notification) MarkRead() {
	if n.read {
		return
	}
	now := biztime.NowUTC()
	n.read = true
	n.readAt = &now
	n.updatedAt = now
}
