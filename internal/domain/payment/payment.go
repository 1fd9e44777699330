// Package payment records payments against orders.
package payment

import (
	"fmt"
	"time"

	"fitout/internal/shared/biztime"
)

type PaymentMethod string

const (
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCard         PaymentMethod = "card"
	MethodCash         PaymentMethod = "cash"
)

var validPaymentMethods = map[PaymentMethod]bool{
	MethodBankTransfer: true,
	MethodCard:         true,
	MethodCash:         true,
}

func (m PaymentMethod) String() string { return string(m) }
func (m PaymentMethod) IsValid() bool  { return validPaymentMethods[m] }

func NewPaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid payment method: %s", s)
	}
	return m, nil
}

type PaymentStatus string

const (
	StatusPending  PaymentStatus = "pending"
	StatusPaid     PaymentStatus = "paid"
	StatusFailed   PaymentStatus = "failed"
	StatusRefunded PaymentStatus = "refunded"
)

var validPaymentStatuses = map[PaymentStatus]bool{
	StatusPending:  true,
	StatusPaid:     true,
	StatusFailed:   true,
	StatusRefunded: true,
}

var paymentStatusTransitions = map[PaymentStatus][]PaymentStatus{
	StatusPending:  {StatusPaid, StatusFailed},
	StatusPaid:     {StatusRefunded},
	StatusFailed:   {StatusPending},
	StatusRefunded: {},
}

func (s PaymentStatus) String() string { return string(s) }
func (s PaymentStatus) IsValid() bool  { return validPaymentStatuses[s] }

func (s PaymentStatus) CanTransitionTo(newStatus PaymentStatus) bool {
	for _, allowed := range paymentStatusTransitions[s] {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

func NewPaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid payment status: %s", s)
	}
	return status, nil
}

type Payment struct {
	id          uint
	sid         string
	orderID     uint
	amount      int64
	currency    string
	method      PaymentMethod
	status      PaymentStatus
	paidAt      *time.Time
	externalRef string
	createdAt   time.Time
	updatedAt   time.Time
}

func NewPayment(orderID uint, amount int64, currency string, method PaymentMethod) (*Payment, error) {
	if orderID == 0 {
		return nil, fmt.Errorf("order ID is required")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if len(currency) != 3 {
		return nil, fmt.Errorf("currency must be a 3-letter ISO code")
	}
	if !method.IsValid() {
		return nil, fmt.Errorf("invalid payment method")
	}

	now := biztime.NowUTC()
	return &Payment{
		orderID:   orderID,
		amount:    amount,
		currency:  currency,
		method:    method,
		status:    StatusPending,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructPayment(
	id uint,
	sid string,
	orderID uint,
	amount int64,
	currency string,
	method PaymentMethod,
	status PaymentStatus,
	paidAt *time.Time,
	externalRef string,
	createdAt, updatedAt time.Time,
) (*Payment, error) {
	if id == 0 {
		return nil, fmt.Errorf("payment ID cannot be zero")
	}
	if !method.IsValid() {
		return nil, fmt.Errorf("invalid payment method")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid payment status")
	}
	return &Payment{
		id:          id,
		sid:         sid,
		orderID:     orderID,
		amount:      amount,
		currency:    currency,
		method:      method,
		status:      status,
		paidAt:      paidAt,
		externalRef: externalRef,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (p *Payment) ID() uint              { return p.id }
func (p *Payment) SID() string           { return p.sid }
func (p *Payment) OrderID() uint         { return p.orderID }
func (p *Payment) Amount() int64         { return p.amount }
func (p *Payment) Currency() string      { return p.currency }
func (p *Payment) Method() PaymentMethod { return p.method }
func (p *Payment) Status() PaymentStatus { return p.status }
func (p *Payment) PaidAt() *time.Time    { return p.paidAt }
func (p *Payment) ExternalRef() string   { return p.externalRef }
func (p *Payment) CreatedAt() time.Time  { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time  { return p.updatedAt }

func (p *Payment) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("payment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("payment ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Payment) SetSID(sid string) error {
	if len(p.sid) > 0 {
		return fmt.Errorf("payment SID is already set")
	}
	if len(sid) == 0 {
		return fmt.Errorf("payment SID cannot be empty")
	}
	p.sid = sid
	return nil
}

// MarkPaid completes the payment and records the external reference from
// the payment provider or bank statement.
func (p *Payment) MarkPaid(at time.Time, externalRef string) error {
	if !p.status.CanTransitionTo(StatusPaid) {
		return fmt.Errorf("cannot mark payment with status %s as paid", p.status)
	}
	p.status = StatusPaid
	p.paidAt = &at
	p.externalRef = externalRef
	p.updatedAt = biztime.NowUTC()
	return nil
}

func (p *Payment) MarkFailed() error {
	if !p.status.CanTransitionTo(StatusFailed) {
		return fmt.Errorf("cannot mark payment with status %s as failed", p.status)
	}
	p.status = StatusFailed
	p.updatedAt = biztime.NowUTC()
	return nil
}

func (p *Payment) Refund() error {
	if !p.status.CanTransitionTo(StatusRefunded) {
		return fmt.Errorf("cannot refund payment with status %s", p.status)
	}
	p.status = StatusRefunded
	p.updatedAt = biztime.NowUTC()
	return nil
}

// Retry moves a failed payment back to pending.
func (p *Payment) Retry() error {
	if !p.status.CanTransitionTo(StatusPending) {
		return fmt.Errorf("cannot retry payment with status %s", p.status)
	}
	p.status = StatusPending
	p.updatedAt = biztime.NowUTC()
	return nil
}
