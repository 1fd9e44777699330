package delivery

import (
	"context"
	"time"
)

type Repository interface {
	Save(ctx context.Context, d *Delivery) error
	Update(ctx context.Context, d *Delivery) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Delivery, error)
	GetBySID(ctx context.Context, sid string) (*Delivery, error)
	List(ctx context.Context, filter Filter) ([]*Delivery, int64, error)
	// ListOverdue returns open deliveries whose scheduled date is before the
	// cutoff. Used by the daily delivery sweep.
	ListOverdue(ctx context.Context, cutoff time.Time) ([]*Delivery, error)
}

type Filter struct {
	OrderID   *uint
	Status    *DeliveryStatus
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
