// Package apartment holds the apartment aggregate being furnished for a client.
package apartment

import (
	"fmt"
	"time"

	"fitout/internal/shared/biztime"
)

// FurnishingStatus tracks the overall furnishing progress of an apartment.
type FurnishingStatus string

const (
	StatusPlanning   FurnishingStatus = "planning"
	StatusFurnishing FurnishingStatus = "furnishing"
	StatusCompleted  FurnishingStatus = "completed"
)

var validFurnishingStatuses = map[FurnishingStatus]bool{
	StatusPlanning:   true,
	StatusFurnishing: true,
	StatusCompleted:  true,
}

func (s FurnishingStatus) String() string { return string(s) }
func (s FurnishingStatus) IsValid() bool  { return validFurnishingStatuses[s] }

func NewFurnishingStatus(s string) (FurnishingStatus, error) {
	status := FurnishingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid furnishing status: %s", s)
	}
	return status, nil
}

type Apartment struct {
	id        uint
	sid       string
	clientID  uint
	address   string
	floor     string
	unit      string
	areaSqm   float64
	status    FurnishingStatus
	notes     string
	createdAt time.Time
	updatedAt time.Time
}

func NewApartment(clientID uint, address, floor, unit string, areaSqm float64) (*Apartment, error) {
	if clientID == 0 {
		return nil, fmt.Errorf("client ID is required")
	}
	if len(address) == 0 {
		return nil, fmt.Errorf("address is required")
	}
	if areaSqm < 0 {
		return nil, fmt.Errorf("area cannot be negative")
	}

	now := biztime.NowUTC()
	return &Apartment{
		clientID:  clientID,
		address:   address,
		floor:     floor,
		unit:      unit,
		areaSqm:   areaSqm,
		status:    StatusPlanning,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructApartment(
	id uint,
	sid string,
	clientID uint,
	address, floor, unit string,
	areaSqm float64,
	status FurnishingStatus,
	notes string,
	createdAt, updatedAt time.Time,
) (*Apartment, error) {
	if id == 0 {
		return nil, fmt.Errorf("apartment ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid furnishing status")
	}
	return &Apartment{
		id:        id,
		sid:       sid,
		clientID:  clientID,
		address:   address,
		floor:     floor,
		unit:      unit,
		areaSqm:   areaSqm,
		status:    status,
		notes:     notes,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (a *Apartment) ID() uint                 { return a.id }
func (a *Apartment) SID() string              { return a.sid }
func (a *Apartment) ClientID() uint           { return a.clientID }
func (a *Apartment) Address() string          { return a.address }
func (a *Apartment) Floor() string            { return a.floor }
func (a *Apartment) Unit() string             { return a.unit }
func (a *Apartment) AreaSqm() float64         { return a.areaSqm }
func (a *Apartment) Status() FurnishingStatus { return a.status }
func (a *Apartment) Notes() string            { return a.notes }
func (a *Apartment) CreatedAt() time.Time     { return a.createdAt }
func (a *Apartment) UpdatedAt() time.Time     { return a.updatedAt }

func (a *Apartment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("apartment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("apartment ID cannot be zero")
	}
	a.id = id
	return nil
}

func (a *Apartment) SetSID(sid string) error {
	if len(a.sid) > 0 {
		return fmt.Errorf("apartment SID is already set")
	}
	if len(sid) == 0 {
		return fmt.Errorf("apartment SID cannot be empty")
	}
	a.sid = sid
	return nil
}

func (a *Apartment) Update(address, floor, unit string, areaSqm float64, notes string) error {
	if len(address) == 0 {
		return fmt.Errorf("address is required")
	}
	if areaSqm < 0 {
		return fmt.Errorf("area cannot be negative")
	}
	a.address = address
	a.floor = floor
	a.unit = unit
	a.areaSqm = areaSqm
	a.notes = notes
	a.updatedAt = biztime.NowUTC()
	return nil
}

func (a *Apartment) ChangeStatus(status FurnishingStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid furnishing status: %s", status)
	}
	a.status = status
	a.updatedAt = biztime.NowUTC()
	return nil
}
