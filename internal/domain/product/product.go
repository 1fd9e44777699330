// Package product holds the vendor catalog entries referenced by orders.
package product

import (
	"fmt"
	"time"

	"fitout/internal/shared/biztime"
)

// Prices are stored in minor units (cents) to avoid floating point drift.
type Product struct {
	id           uint
	sid          string
	vendorID     uint
	name         string
	sku          string
	category     string
	unitPrice    int64
	currency     string
	leadTimeDays int
	active       bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewProduct(vendorID uint, name, sku, category string, unitPrice int64, currency string, leadTimeDays int) (*Product, error) {
	if vendorID == 0 {
		return nil, fmt.Errorf("vendor ID is required")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}
	if unitPrice < 0 {
		return nil, fmt.Errorf("unit price cannot be negative")
	}
	if len(currency) != 3 {
		return nil, fmt.Errorf("currency must be a 3-letter ISO code")
	}
	if leadTimeDays < 0 {
		return nil, fmt.Errorf("lead time cannot be negative")
	}

	now := biztime.NowUTC()
	return &Product{
		vendorID:     vendorID,
		name:         name,
		sku:          sku,
		category:     category,
		unitPrice:    unitPrice,
		currency:     currency,
		leadTimeDays: leadTimeDays,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructProduct(
	id uint,
	sid string,
	vendorID uint,
	name, sku, category string,
	unitPrice int64,
	currency string,
	leadTimeDays int,
	active bool,
	createdAt, updatedAt time.Time,
) (*Product, error) {
	if id == 0 {
		return nil, fmt.Errorf("product ID cannot be zero")
	}
	return &Product{
		id:           id,
		sid:          sid,
		vendorID:     vendorID,
		name:         name,
		sku:          sku,
		category:     category,
		unitPrice:    unitPrice,
		currency:     currency,
		leadTimeDays: leadTimeDays,
		active:       active,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (p *Product) ID() uint             { return p.id }
func (p *Product) SID() string          { return p.sid }
func (p *Product) VendorID() uint       { return p.vendorID }
func (p *Product) Name() string         { return p.name }
func (p *Product) SKU() string          { return p.sku }
func (p *Product) Category() string     { return p.category }
func (p *Product) UnitPrice() int64     { return p.unitPrice }
func (p *Product) Currency() string     { return p.currency }
func (p *Product) LeadTimeDays() int    { return p.leadTimeDays }
func (p *Product) IsActive() bool       { return p.active }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }

func (p *Product) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("product ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("product ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Product) SetSID(sid string) error {
	if len(p.sid) > 0 {
		return fmt.Errorf("product SID is already set")
	}
	if len(sid) == 0 {
		return fmt.Errorf("product SID cannot be empty")
	}
	p.sid = sid
	return nil
}

func (p *Product) Update(name, sku, category string, unitPrice int64, currency string, leadTimeDays int) error {
	if len(name) == 0 {
		return fmt.Errorf("name is required")
	}
	if unitPrice < 0 {
		return fmt.Errorf("unit price cannot be negative")
	}
	if len(currency) != 3 {
		return fmt.Errorf("currency must be a 3-letter ISO code")
	}
	if leadTimeDays < 0 {
		return fmt.Errorf("lead time cannot be negative")
	}
	p.name = name
	p.sku = sku
	p.category = category
	p.unitPrice = unitPrice
	p.currency = currency
	p.leadTimeDays = leadTimeDays
	p.updatedAt = biztime.NowUTC()
	return nil
}

func (p *Product) Activate() {
	p.active = true
	p.updatedAt = biztime.NowUTC()
}

func (p *Product) Deactivate() {
	p.active = false
	p.updatedAt = biztime.NowUTC()
}
