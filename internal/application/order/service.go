// Package order provides application services for purchase orders.
package order

import (
	"context"

	"fitout/internal/domain/apartment"
	"fitout/internal/domain/order"
	"fitout/internal/domain/product"
	"fitout/internal/domain/vendor"
	"fitout/internal/shared/db"
	apperrors "fitout/internal/shared/errors"
	"fitout/internal/shared/id"
	"fitout/internal/shared/logger"
)

// ItemInput is one requested order line. Product name and price are
// snapshotted from the catalog at creation time.
type ItemInput struct {
	ProductSID string
	Quantity   int
}

type Service struct {
	orders     order.Repository
	apartments apartment.Repository
	vendors    vendor.Repository
	products   product.Repository
	txManager  *db.TransactionManager
	logger     logger.Interface
}

func NewService(
	orders order.Repository,
	apartments apartment.Repository,
	vendors vendor.Repository,
	products product.Repository,
	txManager *db.TransactionManager,
	log logger.Interface,
) *Service {
	return &Service{
		orders:     orders,
		apartments: apartments,
		vendors:    vendors,
		products:   products,
		txManager:  txManager,
		logger:     log.Named("order"),
	}
}

// Create builds a draft order with snapshotted line items. All products must
// belong to the order's vendor.
func (s *Service) Create(ctx context.Context, apartmentSID, vendorSID, currency, notes string, items []ItemInput) (*order.Order, error) {
	apt, err := s.apartments.GetBySID(ctx, apartmentSID)
	if err != nil {
		return nil, err
	}
	vnd, err := s.vendors.GetBySID(ctx, vendorSID)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(apt.ID(), vnd.ID(), currency)
	if err != nil {
		return nil, err
	}
	if notes != "" {
		o.SetNotes(notes)
	}

	sid, err := id.GenerateWithPrefix(id.PrefixOrder, id.DefaultLength)
	if err != nil {
		return nil, err
	}
	if err := o.SetSID(sid); err != nil {
		return nil, err
	}
	number, err := id.NewOrderNumber()
	if err != nil {
		return nil, err
	}
	if err := o.SetNumber(number); err != nil {
		return nil, err
	}

	for _, input := range items {
		p, err := s.products.GetBySID(ctx, input.ProductSID)
		if err != nil {
			return nil, err
		}
		if p.VendorID() != vnd.ID() {
			return nil, apperrors.NewValidationError("product does not belong to the order vendor")
		}
		item, err := order.NewItem(p.ID(), p.Name(), input.Quantity, p.UnitPrice())
		if err != nil {
			return nil, err
		}
		if err := o.AddItem(item); err != nil {
			return nil, err
		}
	}

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return s.orders.Save(txCtx, o)
	})
	if err != nil {
		s.logger.Errorw("failed to save order", "error", err, "apartment_sid", apartmentSID, "vendor_sid", vendorSID)
		return nil, err
	}

	s.logger.Infow("order created", "sid", o.SID(), "number", o.Number(), "total", o.TotalAmount())
	return o, nil
}

func (s *Service) Get(ctx context.Context, sid string) (*order.Order, error) {
	return s.orders.GetBySID(ctx, sid)
}

func (s *Service) List(ctx context.Context, filter order.Filter) ([]*order.Order, int64, error) {
	return s.orders.List(ctx, filter)
}

// ReplaceItems swaps the line items of a draft order.
func (s *Service) ReplaceItems(ctx context.Context, sid string, items []ItemInput) (*order.Order, error) {
	o, err := s.orders.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}

	newItems := make([]*order.Item, 0, len(items))
	for _, input := range items {
		p, err := s.products.GetBySID(ctx, input.ProductSID)
		if err != nil {
			return nil, err
		}
		if p.VendorID() != o.VendorID() {
			return nil, apperrors.NewValidationError("product does not belong to the order vendor")
		}
		item, err := order.NewItem(p.ID(), p.Name(), input.Quantity, p.UnitPrice())
		if err != nil {
			return nil, err
		}
		newItems = append(newItems, item)
	}

	if err := o.ReplaceItems(newItems); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return s.orders.Update(txCtx, o)
	})
	if err != nil {
		s.logger.Errorw("failed to replace order items", "error", err, "sid", sid)
		return nil, err
	}

	s.logger.Infow("order items replaced", "sid", sid, "items", len(newItems), "total", o.TotalAmount())
	return o, nil
}

// Place moves a draft order with at least one item to placed.
func (s *Service) Place(ctx context.Context, sid string) (*order.Order, error) {
	return s.mutate(ctx, sid, "order placed", func(o *order.Order) error {
		return o.Place()
	})
}

func (s *Service) ChangeStatus(ctx context.Context, sid string, status order.OrderStatus) (*order.Order, error) {
	return s.mutate(ctx, sid, "order status changed", func(o *order.Order) error {
		return o.ChangeStatus(status)
	})
}

func (s *Service) Cancel(ctx context.Context, sid string) (*order.Order, error) {
	return s.mutate(ctx, sid, "order cancelled", func(o *order.Order) error {
		return o.Cancel()
	})
}

func (s *Service) SetNotes(ctx context.Context, sid, notes string) (*order.Order, error) {
	return s.mutate(ctx, sid, "order notes updated", func(o *order.Order) error {
		o.SetNotes(notes)
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, sid string) error {
	o, err := s.orders.GetBySID(ctx, sid)
	if err != nil {
		return err
	}
	if o.Status() != order.StatusDraft {
		return apperrors.NewValidationError("only draft orders can be deleted")
	}

	if err := s.orders.Delete(ctx, o.ID()); err != nil {
		s.logger.Errorw("failed to delete order", "error", err, "sid", sid)
		return err
	}

	s.logger.Infow("order deleted", "sid", sid)
	return nil
}

func (s *Service) mutate(ctx context.Context, sid, logMsg string, fn func(o *order.Order) error) (*order.Order, error) {
	o, err := s.orders.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}

	if err := fn(o); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return s.orders.Update(txCtx, o)
	})
	if err != nil {
		s.logger.Errorw("failed to update order", "error", err, "sid", sid)
		return nil, err
	}

	s.logger.Infow(logMsg, "sid", sid, "status", o.Status().String())
	return o, nil
}
