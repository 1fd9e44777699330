// Package user holds the admin console account aggregate. Passwords are
// stored as bcrypt hashes; hashing lives in the infrastructure layer.
package user

import (
	"fmt"
	"strings"
	"time"

	"fitout/internal/shared/authorization"
	"fitout/internal/shared/biztime"
)

type User struct {
	id           uint
	email        string
	name         string
	passwordHash string
	role         authorization.UserRole
	active       bool
	lastLoginAt  *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(email, name, passwordHash string, role authorization.UserRole) (*User, error) {
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}
	if len(passwordHash) == 0 {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role")
	}

	now := biztime.NowUTC()
	return &User{
		email:        strings.ToLower(email),
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructUser(
	id uint,
	email, name, passwordHash string,
	role authorization.UserRole,
	active bool,
	lastLoginAt *time.Time,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role")
	}
	return &User{
		id:           id,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		active:       active,
		lastLoginAt:  lastLoginAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint                     { return u.id }
func (u *User) Email() string                { return u.email }
func (u *User) Name() string                 { return u.name }
func (u *User) PasswordHash() string         { return u.passwordHash }
func (u *User) Role() authorization.UserRole { return u.role }
func (u *User) IsActive() bool               { return u.active }
func (u *User) LastLoginAt() *time.Time      { return u.lastLoginAt }
func (u *User) CreatedAt() time.Time         { return u.createdAt }
func (u *User) UpdatedAt() time.Time         { return u.updatedAt }

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

func (u *User) UpdateProfile(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("name is required")
	}
	u.name = name
	u.updatedAt = biztime.NowUTC()
	return nil
}

func (u *User) ChangePassword(passwordHash string) error {
	if len(passwordHash) == 0 {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = passwordHash
	u.updatedAt = biztime.NowUTC()
	return nil
}

func (u *User) ChangeRole(role authorization.UserRole) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role")
	}
	u.role = role
	u.updatedAt = biztime.NowUTC()
	return nil
}

func (u *User) RecordLogin(at time.Time) {
	u.lastLoginAt = &at
	u.updatedAt = biztime.NowUTC()
}

func (u *User) Activate() {
	u.active = true
	u.updatedAt = biztime.NowUTC()
}

func (u *User) Deactivate() {
	u.active = false
	u.updatedAt = biztime.NowUTC()
}
