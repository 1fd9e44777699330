package apartment

import "context"

type Repository interface {
	Save(ctx context.Context, a *Apartment) error
	Update(ctx context.Context, a *Apartment) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Apartment, error)
	GetBySID(ctx context.Context, sid string) (*Apartment, error)
	List(ctx context.Context, filter Filter) ([]*Apartment, int64, error)
}

type Filter struct {
	ClientID  *uint
	Status    *FurnishingStatus
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
