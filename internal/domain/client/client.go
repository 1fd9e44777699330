// Package client holds the client aggregate. Clients own apartments by
// reference only.
package client

import (
	"fmt"
	"strings"
	"time"

	"fitout/internal/shared/biztime"
)

type Client struct {
	id        uint
	sid       string
	name      string
	email     string
	phone     string
	notes     string
	createdAt time.Time
	updatedAt time.Time
}

func NewClient(name, email, phone, notes string) (*Client, error) {
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}
	if len(name) > 200 {
		return nil, fmt.Errorf("name exceeds maximum length of 200 characters")
	}
	if email != "" && !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address")
	}

	now := biztime.NowUTC()
	return &Client{
		name:      name,
		email:     email,
		phone:     phone,
		notes:     notes,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructClient(id uint, sid, name, email, phone, notes string, createdAt, updatedAt time.Time) (*Client, error) {
	if id == 0 {
		return nil, fmt.Errorf("client ID cannot be zero")
	}
	return &Client{
		id:        id,
		sid:       sid,
		name:      name,
		email:     email,
		phone:     phone,
		notes:     notes,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (c *Client) ID() uint             { return c.id }
func (c *Client) SID() string          { return c.sid }
func (c *Client) Name() string         { return c.name }
func (c *Client) Email() string        { return c.email }
func (c *Client) Phone() string        { return c.phone }
func (c *Client) Notes() string        { return c.notes }
func (c *Client) CreatedAt() time.Time { return c.createdAt }
func (c *Client) UpdatedAt() time.Time { return c.updatedAt }

func (c *Client) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("client ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("client ID cannot be zero")
	}
	c.id = id
	return nil
}

func (c *Client) SetSID(sid string) error {
	if len(c.sid) > 0 {
		return fmt.Errorf("client SID is already set")
	}
	if len(sid) == 0 {
		return fmt.Errorf("client SID cannot be empty")
	}
	c.sid = sid
	return nil
}

func (c *Client) Update(name, email, phone, notes string) error {
	if len(name) == 0 {
		return fmt.Errorf("name is required")
	}
	if email != "" && !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email address")
	}
	c.name = name
	c.email = email
	c.phone = phone
	c.notes = notes
	c.updatedAt = biztime.NowUTC()
	return nil
}
