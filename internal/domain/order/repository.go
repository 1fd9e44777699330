package order

import "context"

type Repository interface {
	Save(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Order, error)
	GetBySID(ctx context.Context, sid string) (*Order, error)
	GetByNumber(ctx context.Context, number string) (*Order, error)
	List(ctx context.Context, filter Filter) ([]*Order, int64, error)
}

type Filter struct {
	ApartmentID *uint
	VendorID    *uint
	Status      *OrderStatus
	Search      string
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}
