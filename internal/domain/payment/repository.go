package payment

import "context"

type Repository interface {
	Save(ctx context.Context, p *Payment) error
	Update(ctx context.Context, p *Payment) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Payment, error)
	GetBySID(ctx context.Context, sid string) (*Payment, error)
	List(ctx context.Context, filter Filter) ([]*Payment, int64, error)
}

type Filter struct {
	OrderID   *uint
	Status    *PaymentStatus
	Method    *PaymentMethod
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
