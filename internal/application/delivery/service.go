// Package delivery provides application services for delivery tracking,
// including the periodic overdue sweep.
package delivery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fitout/internal/domain/delivery"
	"fitout/internal/domain/notification"
	"fitout/internal/domain/order"
	"fitout/internal/shared/biztime"
	"fitout/internal/shared/id"
	"fitout/internal/shared/logger"
)

// AdminNotifier fans a notification out to every active admin user.
type AdminNotifier interface {
	NotifyAdmins(ctx context.Context, ntype notification.NotificationType, title, content string, relatedIssueID *uint) error
}

type Service struct {
	deliveries delivery.Repository
	orders     order.Repository
	notifier   AdminNotifier
	logger     logger.Interface
}

func NewService(deliveries delivery.Repository, orders order.Repository, notifier AdminNotifier, log logger.Interface) *Service {
	return &Service{
		deliveries: deliveries,
		orders:     orders,
		notifier:   notifier,
		logger:     log.Named("delivery"),
	}
}

func (s *Service) Create(ctx context.Context, orderSID string, scheduledDate time.Time, carrier, trackingCode string) (*delivery.Delivery, error) {
	o, err := s.orders.GetBySID(ctx, orderSID)
	if err != nil {
		return nil, err
	}

	d, err := delivery.NewDelivery(o.ID(), scheduledDate, carrier, trackingCode)
	if err != nil {
		return nil, err
	}

	sid, err := id.GenerateWithPrefix(id.PrefixDelivery, id.DefaultLength)
	if err != nil {
		return nil, err
	}
	if err := d.SetSID(sid); err != nil {
		return nil, err
	}

	if err := s.deliveries.Save(ctx, d); err != nil {
		s.logger.Errorw("failed to save delivery", "error", err, "order_sid", orderSID)
		return nil, err
	}

	s.logger.Infow("delivery created", "sid", d.SID(), "order_id", d.OrderID(), "scheduled_date", scheduledDate)
	return d, nil
}

func (s *Service) Get(ctx context.Context, sid string) (*delivery.Delivery, error) {
	return s.deliveries.GetBySID(ctx, sid)
}

func (s *Service) List(ctx context.Context, filter delivery.Filter) ([]*delivery.Delivery, int64, error) {
	return s.deliveries.List(ctx, filter)
}

func (s *Service) ChangeStatus(ctx context.Context, sid string, status delivery.DeliveryStatus) (*delivery.Delivery, error) {
	d, err := s.deliveries.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}

	if status == delivery.StatusDelivered {
		err = d.MarkDelivered(biztime.NowUTC())
	} else {
		err = d.ChangeStatus(status)
	}
	if err != nil {
		return nil, err
	}

	if err := s.deliveries.Update(ctx, d); err != nil {
		s.logger.Errorw("failed to update delivery status", "error", err, "sid", sid)
		return nil, err
	}

	if status == delivery.StatusFailed && s.notifier != nil {
		title := fmt.Sprintf("Delivery %s failed", d.SID())
		content := fmt.Sprintf("Delivery **%s** (carrier %s) was marked as failed and needs rescheduling.", d.SID(), d.Carrier())
		if err := s.notifier.NotifyAdmins(ctx, notification.TypeDeliveryFailed, title, content, nil); err != nil {
			s.logger.Warnw("failed to notify admins about failed delivery", "error", err, "sid", sid)
		}
	}

	s.logger.Infow("delivery status changed", "sid", sid, "status", status.String())
	return d, nil
}

func (s *Service) Reschedule(ctx context.Context, sid string, newDate time.Time) (*delivery.Delivery, error) {
	d, err := s.deliveries.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}

	if err := d.Reschedule(newDate); err != nil {
		return nil, err
	}

	if err := s.deliveries.Update(ctx, d); err != nil {
		s.logger.Errorw("failed to reschedule delivery", "error", err, "sid", sid)
		return nil, err
	}

	s.logger.Infow("delivery rescheduled", "sid", sid, "scheduled_date", newDate)
	return d, nil
}

func (s *Service) SetNotes(ctx context.Context, sid, notes string) (*delivery.Delivery, error) {
	d, err := s.deliveries.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}

	d.SetNotes(notes)

	if err := s.deliveries.Update(ctx, d); err != nil {
		s.logger.Errorw("failed to update delivery notes", "error", err, "sid", sid)
		return nil, err
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, sid string) error {
	d, err := s.deliveries.GetBySID(ctx, sid)
	if err != nil {
		return err
	}

	if err := s.deliveries.Delete(ctx, d.ID()); err != nil {
		s.logger.Errorw("failed to delete delivery", "error", err, "sid", sid)
		return err
	}

	s.logger.Infow("delivery deleted", "sid", sid)
	return nil
}

// SweepOverdueDeliveries finds open deliveries past their scheduled date and
// raises a single aggregated admin notification. It returns the number of
// overdue deliveries found.
func (s *Service) SweepOverdueDeliveries(ctx context.Context) (int, error) {
	now := biztime.NowUTC()
	overdue, err := s.deliveries.ListOverdue(ctx, now)
	if err != nil {
		return 0, err
	}
	if len(overdue) == 0 {
		return 0, nil
	}

	var lines []string
	for _, d := range overdue {
		lines = append(lines, fmt.Sprintf("- **%s** scheduled %s (%s)",
			d.SID(), d.ScheduledDate().Format("2006-01-02"), d.Status().String()))
	}

	title := fmt.Sprintf("%d overdue deliveries", len(overdue))
	content := "The following deliveries are past their scheduled date:\n\n" + strings.Join(lines, "\n")

	if s.notifier != nil {
		if err := s.notifier.NotifyAdmins(ctx, notification.TypeDeliveryOverdue, title, content, nil); err != nil {
			s.logger.Warnw("failed to notify admins about overdue deliveries", "error", err)
		}
	}

	s.logger.Infow("overdue delivery sweep completed", "overdue", len(overdue))
	return len(overdue), nil
}
