package models

import "gorm.io/datatypes"

type IssueModel struct {
	ID                uint   `gorm:"primaryKey"`
	SID               string `gorm:"column:sid;uniqueIndex;size:32;not null"`
	ApartmentID       uint   `gorm:"not null;index"`
	VendorID          uint   `gorm:"not null;index"`
	ProductID         *uint  `gorm:"index"`
	OrderID           *uint  `gorm:"index"`
	IssueType         string `gorm:"size:100;not null"`
	Description       string `gorm:"type:text;not null"`
	Impact            string `gorm:"type:text"`
	Priority          string `gorm:"size:20;not null;index"`
	Status            string `gorm:"size:30;not null;index"`
	AIActivated       bool   `gorm:"not null;default:false"`
	// Nullable so issues without a started conversation do not collide on
	// the unique index.
	ThreadToken       *string `gorm:"uniqueIndex;size:64"`
	FirstSentAt       *int64
	LastVendorReplyAt *int64
	AISummary         string  `gorm:"type:text"`
	NextAction        string  `gorm:"type:text"`
	CreatedAt         int64   `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt         int64   `gorm:"autoUpdateTime:milli;not null"`
	ClosedAt          *int64

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (IssueModel) TableName() string {
	return "issues"
}

type IssueItemModel struct {
	ID          uint           `gorm:"primaryKey"`
	IssueID     uint           `gorm:"not null;index"`
	ProductName string         `gorm:"size:200;not null"`
	Quantity    int            `gorm:"not null;default:1"`
	IssueTags   datatypes.JSON `gorm:"type:json"`
	Description string         `gorm:"type:text"`
	ImageRef    string         `gorm:"size:500"`
	CreatedAt   int64          `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt   int64          `gorm:"autoUpdateTime:milli;not null"`
}

func (IssueItemModel) TableName() string {
	return "issue_items"
}

type MessageModel struct {
	ID           uint   `gorm:"primaryKey"`
	IssueID      uint   `gorm:"not null;index"`
	Sender       string `gorm:"size:20;not null;index"`
	Status       string `gorm:"size:30;not null;index"`
	Subject      string `gorm:"size:500"`
	Body         string `gorm:"type:text;not null"`
	HTMLBody     string `gorm:"type:text"`
	FromAddress  string `gorm:"size:320"`
	ToAddress    string `gorm:"size:320"`
	RFCMessageID string `gorm:"size:500;index"`
	InReplyTo    string `gorm:"size:500"`
	ThreadID     string `gorm:"size:100;index"`
	AIConfidence *float64
	ApproverID   *uint `gorm:"index"`
	ApprovedAt   *int64
	CreatedAt    int64 `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt    int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (MessageModel) TableName() string {
	return "issue_messages"
}
