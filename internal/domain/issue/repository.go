package issue

import (
	"context"
	"time"

	vo "fitout/internal/domain/issue/valueobjects"
)

type IssueRepository interface {
	Save(ctx context.Context, iss *Issue) error
	Update(ctx context.Context, iss *Issue) error
	Delete(ctx context.Context, issueID uint) error
	GetByID(ctx context.Context, issueID uint) (*Issue, error)
	GetBySID(ctx context.Context, sid string) (*Issue, error)
	GetByThreadToken(ctx context.Context, token string) (*Issue, error)
	List(ctx context.Context, filter IssueFilter) ([]*Issue, int64, error)
}

type IssueFilter struct {
	Status      *vo.IssueStatus
	Priority    *vo.Priority
	VendorID    *uint
	ApartmentID *uint
	AIActivated *bool
	Search      string
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}

type MessageRepository interface {
	Save(ctx context.Context, msg *Message) error
	Update(ctx context.Context, msg *Message) error
	GetByID(ctx context.Context, messageID uint) (*Message, error)
	GetByRFCMessageID(ctx context.Context, rfcMessageID string) (*Message, error)
	ListByIssueID(ctx context.Context, issueID uint) ([]*Message, error)
	// FindRecentSent looks up a sent message matching recipient, subject and
	// body newer than the cutoff. Used by the duplicate-send guard.
	FindRecentSent(ctx context.Context, issueID uint, toAddress, subject, body string, since time.Time) (*Message, error)
	CountPendingApproval(ctx context.Context, olderThan time.Time) (int64, error)
	ListPendingApproval(ctx context.Context, olderThan time.Time) ([]*Message, error)
}
