package notification

import "context"

type Repository interface {
	Save(ctx context.Context, n *Notification) error
	Update(ctx context.Context, n *Notification) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Notification, error)
	List(ctx context.Context, filter Filter) ([]*Notification, int64, error)
	MarkAllRead(ctx context.Context, userID uint) error
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

type Filter struct {
	UserID    *uint
	Type      *NotificationType
	Unread    *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
