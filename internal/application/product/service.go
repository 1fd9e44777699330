// Package product provides application services for the vendor catalog.
package product

import (
	"context"

	"fitout/internal/domain/product"
	"fitout/internal/domain/vendor"
	"fitout/internal/shared/id"
	"fitout/internal/shared/logger"
)

type Service struct {
	products product.Repository
	vendors  vendor.Repository
	logger   logger.Interface
}

func NewService(products product.Repository, vendors vendor.Repository, log logger.Interface) *Service {
	return &Service{
		products: products,
		vendors:  vendors,
		logger:   log.Named("product"),
	}
}

func (s *Service) Create(ctx context.Context, vendorSID, name, sku, category string, unitPrice int64, currency string, leadTimeDays int) (*product.Product, error) {
	v, err := s.vendors.GetBySID(ctx, vendorSID)
	if err != nil {
		return nil, err
	}

	p, err := product.NewProduct(v.ID(), name, sku, category, unitPrice, currency, leadTimeDays)
	if err != nil {
		return nil, err
	}

	sid, err := id.GenerateWithPrefix(id.PrefixProduct, id.DefaultLength)
	if err != nil {
		return nil, err
	}
	if err := p.SetSID(sid); err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, p); err != nil {
		s.logger.Errorw("failed to save product", "error", err, "vendor_sid", vendorSID, "name", name)
		return nil, err
	}

	s.logger.Infow("product created", "sid", p.SID(), "vendor_id", p.VendorID(), "name", p.Name())
	return p, nil
}

func (s *Service) Get(ctx context.Context, sid string) (*product.Product, error) {
	return s.products.GetBySID(ctx, sid)
}

func (s *Service) List(ctx context.Context, filter product.Filter) ([]*product.Product, int64, error) {
	return s.products.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, sid, name, sku, category string, unitPrice int64, currency string, leadTimeDays int) (*product.Product, error) {
	p, err := s.products.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}

	if err := p.Update(name, sku, category, unitPrice, currency, leadTimeDays); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, p); err != nil {
		s.logger.Errorw("failed to update product", "error", err, "sid", sid)
		return nil, err
	}

	s.logger.Infow("product updated", "sid", sid)
	return p, nil
}

func (s *Service) SetActive(ctx context.Context, sid string, active bool) (*product.Product, error) {
	p, err := s.products.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}

	if active {
		p.Activate()
	} else {
		p.Deactivate()
	}

	if err := s.products.Update(ctx, p); err != nil {
		s.logger.Errorw("failed to update product active flag", "error", err, "sid", sid)
		return nil, err
	}

	s.logger.Infow("product active flag updated", "sid", sid, "active", active)
	return p, nil
}

func (s *Service) Delete(ctx context.Context, sid string) error {
	p, err := s.products.GetBySID(ctx, sid)
	if err != nil {
		return err
	}

	if err := s.products.Delete(ctx, p.ID()); err != nil {
		s.logger.Errorw("failed to delete product", "error", err, "sid", sid)
		return err
	}

	s.logger.Infow("product deleted", "sid", sid)
	return nil
}
