// Package delivery tracks scheduled deliveries for placed orders.
package delivery

import (
	"fmt"
	"time"

	"fitout/internal/shared/biztime"
)

type DeliveryStatus string

const (
	StatusScheduled DeliveryStatus = "scheduled"
	StatusInTransit DeliveryStatus = "in_transit"
	StatusDelivered DeliveryStatus = "delivered"
	StatusFailed    DeliveryStatus = "failed"
)

var validDeliveryStatuses = map[DeliveryStatus]bool{
	StatusScheduled: true,
	StatusInTransit: true,
	StatusDelivered: true,
	StatusFailed:    true,
}

var deliveryStatusTransitions = map[DeliveryStatus][]DeliveryStatus{
	StatusScheduled: {StatusInTransit, StatusDelivered, StatusFailed},
	StatusInTransit: {StatusDelivered, StatusFailed},
	StatusDelivered: {},
	// Failed deliveries can be rescheduled.
	StatusFailed: {StatusScheduled},
}

func (s DeliveryStatus) String() string { return string(s) }
func (s DeliveryStatus) IsValid() bool  { return validDeliveryStatuses[s] }

func (s DeliveryStatus) CanTransitionTo(newStatus DeliveryStatus) bool {
	for _, allowed := range deliveryStatusTransitions[s] {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

func NewDeliveryStatus(s string) (DeliveryStatus, error) {
	status := DeliveryStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid delivery status: %s", s)
	}
	return status, nil
}

type Delivery struct {
	id            uint
	sid           string
	orderID       uint
	status        DeliveryStatus
	scheduledDate time.Time
	deliveredDate *time.Time
	carrier       string
	trackingCode  string
	notes         string
	createdAt     time.Time
	updatedAt     time.Time
}

func NewDelivery(orderID uint, scheduledDate time.Time, carrier, trackingCode string) (*Delivery, error) {
	if orderID == 0 {
		return nil, fmt.Errorf("order ID is required")
	}
	if scheduledDate.IsZero() {
		return nil, fmt.Errorf("scheduled date is required")
	}

	now := biztime.NowUTC()
	return &Delivery{
		orderID:       orderID,
		status:        StatusScheduled,
		scheduledDate: scheduledDate,
		carrier:       carrier,
		trackingCode:  trackingCode,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructDelivery(
	id uint,
	sid string,
	orderID uint,
	status DeliveryStatus,
	scheduledDate time.Time,
	deliveredDate *time.Time,
	carrier, trackingCode, notes string,
	createdAt, updatedAt time.Time,
) (*Delivery, error) {
	if id == 0 {
		return nil, fmt.Errorf("delivery ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid delivery status")
	}
	return &Delivery{
		id:            id,
		sid:           sid,
		orderID:       orderID,
		status:        status,
		scheduledDate: scheduledDate,
		deliveredDate: deliveredDate,
		carrier:       carrier,
		trackingCode:  trackingCode,
		notes:         notes,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (d *Delivery) ID() uint                  { return d.id }
func (d *Delivery) SID() string               { return d.sid }
func (d *Delivery) OrderID() uint             { return d.orderID }
func (d *Delivery) Status() DeliveryStatus    { return d.status }
func (d *Delivery) ScheduledDate() time.Time  { return d.scheduledDate }
func (d *Delivery) DeliveredDate() *time.Time { return d.deliveredDate }
func (d *Delivery) Carrier() string           { return d.carrier }
func (d *Delivery) TrackingCode() string      { return d.trackingCode }
func (d *Delivery) Notes() string             { return d.notes }
func (d *Delivery) CreatedAt() time.Time      { return d.createdAt }
func (d *Delivery) UpdatedAt() time.Time      { return d.updatedAt }

func (d *Delivery) SetID(id uint) error {
	if d.id != 0 {
		return fmt.Errorf("delivery ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("delivery ID cannot be zero")
	}
	d.id = id
	return nil
}

func (d *Delivery) SetSID(sid string) error {
	if len(d.sid) > 0 {
		return fmt.Errorf("delivery SID is already set")
	}
	if len(sid) == 0 {
		return fmt.Errorf("delivery SID cannot be empty")
	}
	d.sid = sid
	return nil
}

func (d *Delivery) SetNotes(notes string) {
	d.notes = notes
	d.updatedAt = biztime.NowUTC()
}

func (d *Delivery) ChangeStatus(newStatus DeliveryStatus) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid delivery status: %s", newStatus)
	}
	if d.status == newStatus {
		return nil
	}
	if !d.status.CanTransitionTo(newStatus) {
		return fmt.Errorf("cannot transition delivery from %s to %s", d.status, newStatus)
	}
	d.status = newStatus
	d.updatedAt = biztime.NowUTC()
	return nil
}

// MarkDelivered completes the delivery and stamps the delivered date.
func (d *Delivery) MarkDelivered(at time.Time) error {
	if err := d.ChangeStatus(StatusDelivered); err != nil {
		return err
	}
	d.deliveredDate = &at
	return nil
}

// Reschedule moves a failed delivery back to scheduled with a new date.
func (d *Delivery) Reschedule(newDate time.Time) error {
	if newDate.IsZero() {
		return fmt.Errorf("scheduled date is required")
	}
	if err := d.ChangeStatus(StatusScheduled); err != nil {
		return err
	}
	d.scheduledDate = newDate
	d.deliveredDate = nil
	return nil
}

// IsOverdue reports whether a still-open delivery is past its scheduled date.
func (d *Delivery) IsOverdue(now time.Time) bool {
	if d.status == StatusDelivered || d.status == StatusFailed {
		return false
	}
	return now.After(d.scheduledDate)
}
