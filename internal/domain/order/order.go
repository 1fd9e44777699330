// Package order holds the purchase order aggregate and its line items.
package order

import (
	"fmt"
	"time"

	"fitout/internal/shared/biztime"
)

type OrderStatus string

const (
	StatusDraft      OrderStatus = "draft"
	StatusPlaced     OrderStatus = "placed"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusInDelivery OrderStatus = "in_delivery"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

var validOrderStatuses = map[OrderStatus]bool{
	StatusDraft:      true,
	StatusPlaced:     true,
	StatusConfirmed:  true,
	StatusInDelivery: true,
	StatusDelivered:  true,
	StatusCancelled:  true,
}

var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	StatusDraft:      {StatusPlaced, StatusCancelled},
	StatusPlaced:     {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInDelivery, StatusCancelled},
	StatusInDelivery: {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func (s OrderStatus) String() string { return string(s) }
func (s OrderStatus) IsValid() bool  { return validOrderStatuses[s] }

func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	for _, allowed := range orderStatusTransitions[s] {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

func NewOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid order status: %s", s)
	}
	return status, nil
}

type Order struct {
	id          uint
	sid         string
	number      string
	apartmentID uint
	vendorID    uint
	status      OrderStatus
	currency    string
	totalAmount int64
	notes       string
	items       []*Item
	createdAt   time.Time
	updatedAt   time.Time
}

func NewOrder(apartmentID, vendorID uint, currency string) (*Order, error) {
	if apartmentID == 0 {
		return nil, fmt.Errorf("apartment ID is required")
	}
	if vendorID == 0 {
		return nil, fmt.Errorf("vendor ID is required")
	}
	if len(currency) != 3 {
		return nil, fmt.Errorf("currency must be a 3-letter ISO code")
	}

	now := biztime.NowUTC()
	return &Order{
		apartmentID: apartmentID,
		vendorID:    vendorID,
		status:      StatusDraft,
		currency:    currency,
		items:       []*Item{},
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructOrder(
	id uint,
	sid string,
	number string,
	apartmentID, vendorID uint,
	status OrderStatus,
	currency string,
	totalAmount int64,
	notes string,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	if id == 0 {
		return nil, fmt.Errorf("order ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid order status")
	}
	return &Order{
		id:          id,
		sid:         sid,
		number:      number,
		apartmentID: apartmentID,
		vendorID:    vendorID,
		status:      status,
		currency:    currency,
		totalAmount: totalAmount,
		notes:       notes,
		items:       []*Item{},
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (o *Order) ID() uint             { return o.id }
func (o *Order) SID() string          { return o.sid }
func (o *Order) Number() string       { return o.number }
func (o *Order) ApartmentID() uint    { return o.apartmentID }
func (o *Order) VendorID() uint       { return o.vendorID }
func (o *Order) Status() OrderStatus  { return o.status }
func (o *Order) Currency() string     { return o.currency }
func (o *Order) TotalAmount() int64   { return o.totalAmount }
func (o *Order) Notes() string        { return o.notes }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

func (o *Order) Items() []*Item {
	itemsCopy := make([]*Item, len(o.items))
	copy(itemsCopy, o.items)
	return itemsCopy
}

func (o *Order) SetID(id uint) error {
	if o.id != 0 {
		return fmt.Errorf("order ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("order ID cannot be zero")
	}
	o.id = id
	return nil
}

func (o *Order) SetSID(sid string) error {
	if len(o.sid) > 0 {
		return fmt.Errorf("order SID is already set")
	}
	if len(sid) == 0 {
		return fmt.Errorf("order SID cannot be empty")
	}
	o.sid = sid
	return nil
}

func (o *Order) SetNumber(number string) error {
	if len(o.number) > 0 {
		return fmt.Errorf("order number is already set")
	}
	if len(number) == 0 {
		return fmt.Errorf("order number cannot be empty")
	}
	o.number = number
	return nil
}

func (o *Order) SetNotes(notes string) {
	o.notes = notes
	o.updatedAt = biztime.NowUTC()
}

// AddItem appends a line item and recalculates the order total. Items can
// only be changed while the order is a draft.
func (o *Order) AddItem(item *Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}
	if o.status != StatusDraft {
		return fmt.Errorf("items can only be added to draft orders")
	}
	o.items = append(o.items, item)
	o.recalculateTotal()
	o.updatedAt = biztime.NowUTC()
	return nil
}

func (o *Order) ReplaceItems(items []*Item) error {
	if o.status != StatusDraft {
		return fmt.Errorf("items can only be replaced on draft orders")
	}
	if items == nil {
		items = []*Item{}
	}
	o.items = items
	o.recalculateTotal()
	o.updatedAt = biztime.NowUTC()
	return nil
}

// LoadItems attaches persisted items without the draft-only restriction.
func (o *Order) LoadItems(items []*Item) {
	if items == nil {
		items = []*Item{}
	}
	o.items = items
}

func (o *Order) recalculateTotal() {
	var total int64
	for _, item := range o.items {
		total += item.LineTotal()
	}
	o.totalAmount = total
}

func (o *Order) ChangeStatus(newStatus OrderStatus) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid order status: %s", newStatus)
	}
	if o.status == newStatus {
		return nil
	}
	if !o.status.CanTransitionTo(newStatus) {
		return fmt.Errorf("cannot transition order from %s to %s", o.status, newStatus)
	}
	o.status = newStatus
	o.updatedAt = biztime.NowUTC()
	return nil
}

func (o *Order) Place() error {
	if len(o.items) == 0 {
		return fmt.Errorf("cannot place an order without items")
	}
	return o.ChangeStatus(StatusPlaced)
}

func (o *Order) Cancel() error {
	return o.ChangeStatus(StatusCancelled)
}
