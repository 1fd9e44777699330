// Package notification provides application services for in-app
// notifications. Bodies are markdown rendered to sanitized HTML.
package notification

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"fitout/internal/domain/issue"
	"fitout/internal/domain/notification"
	"fitout/internal/domain/user"
	"fitout/internal/shared/biztime"
	"fitout/internal/shared/logger"
)

// PendingApprovalReminderAge is how long a draft may sit in approval before
// the reminder job flags it.
const PendingApprovalReminderAge = 6 * time.Hour

type Service struct {
	notifications notification.Repository
	users         user.Repository
	messages      issue.MessageRepository
	markdown      goldmark.Markdown
	sanitizer     *bluemonday.Policy
	logger        logger.Interface
}

func NewService(
	notifications notification.Repository,
	users user.Repository,
	messages issue.MessageRepository,
	log logger.Interface,
) *Service {
	return &Service{
		notifications: notifications,
		users:         users,
		messages:      messages,
		markdown:      goldmark.New(),
		sanitizer:     bluemonday.UGCPolicy(),
		logger:        log.Named("notification"),
	}
}

// Create stores a notification for one user. The markdown content is
// rendered and sanitized; a render failure falls back to the raw text.
func (s *Service) Create(
	ctx context.Context,
	userID uint,
	ntype notification.NotificationType,
	title, content string,
	relatedIssueID *uint,
) (*notification.Notification, error) {
	n, err := notification.NewNotification(userID, ntype, title, content, relatedIssueID)
	if err != nil {
		return nil, err
	}
	n.SetContentHTML(s.renderHTML(content))

	if err := s.notifications.Save(ctx, n); err != nil {
		s.logger.Errorw("failed to save notification", "error", err, "user_id", userID, "type", ntype.String())
		return nil, err
	}

	s.logger.Debugw("notification created", "id", n.ID(), "user_id", userID, "type", ntype.String())
	return n, nil
}

// NotifyAdmins creates the same notification for every active admin user.
func (s *Service) NotifyAdmins(
	ctx context.Context,
	ntype notification.NotificationType,
	title, content string,
	relatedIssueID *uint,
) error {
	active := true
	admins, _, err := s.users.List(ctx, user.Filter{Active: &active, PageSize: 200})
	if err != nil {
		return fmt.Errorf("failed to list users for admin notification: %w", err)
	}

	notified := 0
	for _, u := range admins {
		if !u.Role().IsAdmin() {
			continue
		}
		if _, err := s.Create(ctx, u.ID(), ntype, title, content, relatedIssueID); err != nil {
			s.logger.Warnw("failed to notify admin", "error", err, "user_id", u.ID())
			continue
		}
		notified++
	}

	s.logger.Infow("admins notified", "type", ntype.String(), "title", title, "count", notified)
	return nil
}

func (s *Service) List(ctx context.Context, filter notification.Filter) ([]*notification.Notification, int64, error) {
	return s.notifications.List(ctx, filter)
}

func (s *Service) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.notifications.CountUnread(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, notificationID, userID uint) error {
	n, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.UserID() != userID {
		return fmt.Errorf("notification does not belong to user")
	}

	n.MarkRead()
	return s.notifications.Update(ctx, n)
}

func (s *Service) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notifications.MarkAllRead(ctx, userID)
}

// ProcessPendingApprovalReminders raises an aggregated admin notification
// when AI drafts have been waiting for approval longer than the reminder age.
func (s *Service) ProcessPendingApprovalReminders(ctx context.Context) error {
	cutoff := biztime.NowUTC().Add(-PendingApprovalReminderAge)
	count, err := s.messages.CountPendingApproval(ctx, cutoff)
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}

	title := fmt.Sprintf("%d drafts awaiting approval", count)
	content := fmt.Sprintf(
		"There are **%d** AI reply drafts that have been waiting for approval for more than %s.",
		count, PendingApprovalReminderAge,
	)
	return s.NotifyAdmins(ctx, notification.TypePendingApproval, title, content, nil)
}

func (s *Service) renderHTML(markdown string) string {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(markdown), &buf); err != nil {
		s.logger.Warnw("failed to render notification markdown", "error", err)
		return markdown
	}
	return s.sanitizer.Sanitize(buf.String())
}
