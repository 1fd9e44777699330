package order

import (
	"fmt"
	"time"

	"fitout/internal/shared/biztime"
)

// Item is an order line. Product name and unit price are snapshotted at
// order time so later catalog edits do not rewrite history.
type Item struct {
	id          uint
	orderID     uint
	productID   uint
	productName string
	quantity    int
	unitPrice   int64
	createdAt   time.Time
}

func NewItem(productID uint, productName string, quantity int, unitPrice int64) (*Item, error) {
	if productID == 0 {
		return nil, fmt.Errorf("product ID is required")
	}
	if len(productName) == 0 {
		return nil, fmt.Errorf("product name is required")
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}
	if unitPrice < 0 {
		return nil, fmt.Errorf("unit price cannot be negative")
	}

	return &Item{
		productID:   productID,
		productName: productName,
		quantity:    quantity,
		unitPrice:   unitPrice,
		createdAt:   biztime.NowUTC(),
	}, nil
}

func ReconstructItem(
	id uint,
	orderID uint,
	productID uint,
	productName string,
	quantity int,
	unitPrice int64,
	createdAt time.Time,
) (*Item, error) {
	if id == 0 {
		return nil, fmt.Errorf("item ID cannot be zero")
	}
	return &Item{
		id:          id,
		orderID:     orderID,
		productID:   productID,
		productName: productName,
		quantity:    quantity,
		unitPrice:   unitPrice,
		createdAt:   createdAt,
	}, nil
}

func (i *Item) ID() uint             { return i.id }
func (i *Item) OrderID() uint        { return i.orderID }
func (i *Item) ProductID() uint      { return i.productID }
func (i *Item) ProductName() string  { return i.productName }
func (i *Item) Quantity() int        { return i.quantity }
func (i *Item) UnitPrice() int64     { return i.unitPrice }
func (i *Item) CreatedAt() time.Time { return i.createdAt }

// LineTotal returns quantity times unit price in minor units.
func (i *Item) LineTotal() int64 {
	return int64(i.quantity) * i.unitPrice
}

func (i *Item) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("item ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("item ID cannot be zero")
	}
	i.id = id
	return nil
}

func (i *Item) SetOrderID(orderID uint) error {
	if i.orderID != 0 {
		return fmt.Errorf("item order ID is already set")
	}
	if orderID == 0 {
		return fmt.Errorf("order ID cannot be zero")
	}
	i.orderID = orderID
	return nil
}
