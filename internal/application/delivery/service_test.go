package delivery

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitout/internal/domain/delivery"
	"fitout/internal/domain/notification"
	"fitout/internal/domain/order"
	apperrors "fitout/internal/shared/errors"
	"fitout/internal/shared/logger"
)

type mockDeliveryRepo struct {
	getBySIDFunc    func(ctx context.Context, sid string) (*delivery.Delivery, error)
	listOverdueFunc func(ctx context.Context, cutoff time.Time) ([]*delivery.Delivery, error)

	saved   []*delivery.Delivery
	updated []*delivery.Delivery
}

func (m *mockDeliveryRepo) Save(ctx context.Context, d *delivery.Delivery) error {
	m.saved = append(m.saved, d)
	if d.ID() == 0 {
		_ = d.SetID(uint(len(m.saved)))
	}
	return nil
}

func (m *mockDeliveryRepo) Update(ctx context.Context, d *delivery.Delivery) error {
	m.updated = append(m.updated, d)
	return nil
}

func (m *mockDeliveryRepo) Delete(ctx context.Context, id uint) error { return nil }

func (m *mockDeliveryRepo) GetByID(ctx context.Context, id uint) (*delivery.Delivery, error) {
	return nil, apperrors.NewNotFoundError("delivery not found")
}

func (m *mockDeliveryRepo) GetBySID(ctx context.Context, sid string) (*delivery.Delivery, error) {
	if m.getBySIDFunc != nil {
		return m.getBySIDFunc(ctx, sid)
	}
	return nil, apperrors.NewNotFoundError("delivery not found")
}

func (m *mockDeliveryRepo) List(ctx context.Context, filter delivery.Filter) ([]*delivery.Delivery, int64, error) {
	return nil, 0, nil
}

func (m *mockDeliveryRepo) ListOverdue(ctx context.Context, cutoff time.Time) ([]*delivery.Delivery, error) {
	if m.listOverdueFunc != nil {
		return m.listOverdueFunc(ctx, cutoff)
	}
	return nil, nil
}

type mockOrderRepo struct {
	getBySIDFunc func(ctx context.Context, sid string) (*order.Order, error)
}

func (m *mockOrderRepo) Save(ctx context.Context, o *order.Order) error   { return nil }
func (m *mockOrderRepo) Update(ctx context.Context, o *order.Order) error { return nil }
func (m *mockOrderRepo) Delete(ctx context.Context, id uint) error        { return nil }

func (m *mockOrderRepo) GetByID(ctx context.Context, id uint) (*order.Order, error) {
	return nil, apperrors.NewNotFoundError("order not found")
}

func (m *mockOrderRepo) GetBySID(ctx context.Context, sid string) (*order.Order, error) {
	if m.getBySIDFunc != nil {
		return m.getBySIDFunc(ctx, sid)
	}
	return nil, apperrors.NewNotFoundError("order not found")
}

func (m *mockOrderRepo) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	return nil, apperrors.NewNotFoundError("order not found")
}

func (m *mockOrderRepo) List(ctx context.Context, filter order.Filter) ([]*order.Order, int64, error) {
	return nil, 0, nil
}

type notifyCall struct {
	ntype   notification.NotificationType
	title   string
	content string
}

type mockNotifier struct {
	calls []notifyCall
	err   error
}

func (m *mockNotifier) NotifyAdmins(ctx context.Context, ntype notification.NotificationType, title, content string, relatedIssueID *uint) error {
	m.calls = append(m.calls, notifyCall{ntype: ntype, title: title, content: content})
	return m.err
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	o, err := order.ReconstructOrder(
		42, "ord_abc123def456", "ORD-20250301-0001", 10, 20,
		order.StatusConfirmed, "EUR", 125000, "", now, now,
	)
	require.NoError(t, err)
	return o
}

func newTestDelivery(t *testing.T, id uint, sid string, status delivery.DeliveryStatus, scheduled time.Time) *delivery.Delivery {
	t.Helper()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	d, err := delivery.ReconstructDelivery(
		id, sid, 42, status, scheduled, nil, "DHL", "JD014600003828", "", now, now,
	)
	require.NoError(t, err)
	return d
}

func TestService_Create(t *testing.T) {
	deliveries := &mockDeliveryRepo{}
	orders := &mockOrderRepo{getBySIDFunc: func(ctx context.Context, sid string) (*order.Order, error) {
		return newTestOrder(t), nil
	}}
	svc := NewService(deliveries, orders, &mockNotifier{}, logger.NewLogger())

	scheduled := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	d, err := svc.Create(context.Background(), "ord_abc123def456", scheduled, "DHL", "JD014600003828")
	require.NoError(t, err)

	assert.Equal(t, uint(42), d.OrderID())
	assert.True(t, strings.HasPrefix(d.SID(), "dlv_"))
	assert.Equal(t, delivery.StatusScheduled, d.Status())
	require.Len(t, deliveries.saved, 1)
}

func TestService_Create_OrderNotFound(t *testing.T) {
	svc := NewService(&mockDeliveryRepo{}, &mockOrderRepo{}, &mockNotifier{}, logger.NewLogger())

	_, err := svc.Create(context.Background(), "ord_missing", time.Now(), "DHL", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestService_ChangeStatus_FailedNotifiesAdmins(t *testing.T) {
	scheduled := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	deliveries := &mockDeliveryRepo{getBySIDFunc: func(ctx context.Context, sid string) (*delivery.Delivery, error) {
		return newTestDelivery(t, 1, "dlv_abc123def456", delivery.StatusInTransit, scheduled), nil
	}}
	notifier := &mockNotifier{}
	svc := NewService(deliveries, &mockOrderRepo{}, notifier, logger.NewLogger())

	d, err := svc.ChangeStatus(context.Background(), "dlv_abc123def456", delivery.StatusFailed)
	require.NoError(t, err)

	assert.Equal(t, delivery.StatusFailed, d.Status())
	require.Len(t, deliveries.updated, 1)
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, notification.TypeDeliveryFailed, notifier.calls[0].ntype)
	assert.Contains(t, notifier.calls[0].title, "dlv_abc123def456")
}

func TestService_ChangeStatus_DeliveredSetsDate(t *testing.T) {
	scheduled := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	deliveries := &mockDeliveryRepo{getBySIDFunc: func(ctx context.Context, sid string) (*delivery.Delivery, error) {
		return newTestDelivery(t, 1, "dlv_abc123def456", delivery.StatusInTransit, scheduled), nil
	}}
	notifier := &mockNotifier{}
	svc := NewService(deliveries, &mockOrderRepo{}, notifier, logger.NewLogger())

	d, err := svc.ChangeStatus(context.Background(), "dlv_abc123def456", delivery.StatusDelivered)
	require.NoError(t, err)

	assert.Equal(t, delivery.StatusDelivered, d.Status())
	require.NotNil(t, d.DeliveredDate())
	assert.Empty(t, notifier.calls)
}

func TestService_Reschedule(t *testing.T) {
	scheduled := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	deliveries := &mockDeliveryRepo{getBySIDFunc: func(ctx context.Context, sid string) (*delivery.Delivery, error) {
		return newTestDelivery(t, 1, "dlv_abc123def456", delivery.StatusScheduled, scheduled), nil
	}}
	svc := NewService(deliveries, &mockOrderRepo{}, &mockNotifier{}, logger.NewLogger())

	newDate := time.Date(2025, 4, 22, 0, 0, 0, 0, time.UTC)
	d, err := svc.Reschedule(context.Background(), "dlv_abc123def456", newDate)
	require.NoError(t, err)

	assert.Equal(t, newDate, d.ScheduledDate())
	require.Len(t, deliveries.updated, 1)
}

func TestService_SweepOverdueDeliveries(t *testing.T) {
	scheduled := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	deliveries := &mockDeliveryRepo{listOverdueFunc: func(ctx context.Context, cutoff time.Time) ([]*delivery.Delivery, error) {
		return []*delivery.Delivery{
			newTestDelivery(t, 1, "dlv_abc123def456", delivery.StatusScheduled, scheduled),
			newTestDelivery(t, 2, "dlv_def456abc123", delivery.StatusInTransit, scheduled),
		}, nil
	}}
	notifier := &mockNotifier{}
	svc := NewService(deliveries, &mockOrderRepo{}, notifier, logger.NewLogger())

	count, err := svc.SweepOverdueDeliveries(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, notification.TypeDeliveryOverdue, notifier.calls[0].ntype)
	assert.Contains(t, notifier.calls[0].title, "2 overdue")
	assert.Contains(t, notifier.calls[0].content, "dlv_abc123def456")
	assert.Contains(t, notifier.calls[0].content, "dlv_def456abc123")
}

func TestService_SweepOverdueDeliveries_NoneFound(t *testing.T) {
	notifier := &mockNotifier{}
	svc := NewService(&mockDeliveryRepo{}, &mockOrderRepo{}, notifier, logger.NewLogger())

	count, err := svc.SweepOverdueDeliveries(context.Background())
	require.NoError(t, err)

	assert.Zero(t, count)
	assert.Empty(t, notifier.calls)
}
