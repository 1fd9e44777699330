package product

import "context"

type Repository interface {
	Save(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Product, error)
	GetBySID(ctx context.Context, sid string) (*Product, error)
	List(ctx context.Context, filter Filter) ([]*Product, int64, error)
}

type Filter struct {
	VendorID  *uint
	Category  string
	Active    *bool
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
