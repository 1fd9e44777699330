// Package payment provides application services for order payments.
package payment

import (
	"context"

	"fitout/internal/domain/order"
	"fitout/internal/domain/payment"
	"fitout/internal/shared/biztime"
	"fitout/internal/shared/id"
	"fitout/internal/shared/logger"
)

type Service struct {
	payments payment.Repository
	orders   order.Repository
	logger   logger.Interface
}

func NewService(payments payment.Repository, orders order.Repository, log logger.Interface) *Service {
	return &Service{
		payments: payments,
		orders:   orders,
		logger:   log.Named("payment"),
	}
}

func (s *Service) Create(ctx context.Context, orderSID string, amount int64, currency string, method payment.PaymentMethod) (*payment.Payment, error) {
	o, err := s.orders.GetBySID(ctx, orderSID)
	if err != nil {
		return nil, err
	}

	p, err := payment.NewPayment(o.ID(), amount, currency, method)
	if err != nil {
		return nil, err
	}

	sid, err := id.GenerateWithPrefix(id.PrefixPayment, id.DefaultLength)
	if err != nil {
		return nil, err
	}
	if err := p.SetSID(sid); err != nil {
		return nil, err
	}

	if err := s.payments.Save(ctx, p); err != nil {
		s.logger.Errorw("failed to save payment", "error", err, "order_sid", orderSID)
		return nil, err
	}

	s.logger.Infow("payment created", "sid", p.SID(), "order_id", p.OrderID(), "amount", amount)
	return p, nil
}

func (s *Service) Get(ctx context.Context, sid string) (*payment.Payment, error) {
	return s.payments.GetBySID(ctx, sid)
}

func (s *Service) List(ctx context.Context, filter payment.Filter) ([]*payment.Payment, int64, error) {
	return s.payments.List(ctx, filter)
}

func (s *Service) MarkPaid(ctx context.Context, sid, externalRef string) (*payment.Payment, error) {
	return s.mutate(ctx, sid, "payment marked paid", func(p *payment.Payment) error {
		return p.MarkPaid(biztime.NowUTC(), externalRef)
	})
}

func (s *Service) MarkFailed(ctx context.Context, sid string) (*payment.Payment, error) {
	return s.mutate(ctx, sid, "payment marked failed", func(p *payment.Payment) error {
		return p.MarkFailed()
	})
}

func (s *Service) Refund(ctx context.Context, sid string) (*payment.Payment, error) {
	return s.mutate(ctx, sid, "payment refunded", func(p *payment.Payment) error {
		return p.Refund()
	})
}

func (s *Service) Retry(ctx context.Context, sid string) (*payment.Payment, error) {
	return s.mutate(ctx, sid, "payment retried", func(p *payment.Payment) error {
		return p.Retry()
	})
}

func (s *Service) Delete(ctx context.Context, sid string) error {
	p, err := s.payments.GetBySID(ctx, sid)
	if err != nil {
		return err
	}

	if err := s.payments.Delete(ctx, p.ID()); err != nil {
		s.logger.Errorw("failed to delete payment", "error", err, "sid", sid)
		return err
	}

	s.logger.Infow("payment deleted", "sid", sid)
	return nil
}

func (s *Service) mutate(ctx context.Context, sid, logMsg string, fn func(p *payment.Payment) error) (*payment.Payment, error) {
	p, err := s.payments.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}

	if err := fn(p); err != nil {
		return nil, err
	}

	if err := s.payments.Update(ctx, p); err != nil {
		s.logger.Errorw("failed to update payment", "error", err, "sid", sid)
		return nil, err
	}

	s.logger.Infow(logMsg, "sid", sid, "status", p.Status().String())
	return p, nil
}
