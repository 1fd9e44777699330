package client

import "context"

type Repository interface {
	Save(ctx context.Context, c *Client) error
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Client, error)
	GetBySID(ctx context.Context, sid string) (*Client, error)
	List(ctx context.Context, filter Filter) ([]*Client, int64, error)
}

type Filter struct {
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
