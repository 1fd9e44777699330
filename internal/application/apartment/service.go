// Package apartment provides application services for apartment management.
package apartment

import (
	"context"

	"fitout/internal/domain/apartment"
	"fitout/internal/domain/client"
	"fitout/internal/shared/id"
	"fitout/internal/shared/logger"
)

type Service struct {
	apartments apartment.Repository
	clients    client.Repository
	logger     logger.Interface
}

func NewService(apartments apartment.Repository, clients client.Repository, log logger.Interface) *Service {
	return &Service{
		apartments: apartments,
		clients:    clients,
		logger:     log.Named("apartment"),
	}
}

func (s *Service) Create(ctx context.Context, clientSID, address, floor, unit string, areaSqm float64) (*apartment.Apartment, error) {
	owner, err := s.clients.GetBySID(ctx, clientSID)
	if err != nil {
		return nil, err
	}

	a, err := apartment.NewApartment(owner.ID(), address, floor, unit, areaSqm)
	if err != nil {
		return nil, err
	}

	sid, err := id.GenerateWithPrefix(id.PrefixApartment, id.DefaultLength)
	if err != nil {
		return nil, err
	}
	if err := a.SetSID(sid); err != nil {
		return nil, err
	}

	if err := s.apartments.Save(ctx, a); err != nil {
		s.logger.Errorw("failed to save apartment", "error", err, "client_sid", clientSID)
		return nil, err
	}

	s.logger.Infow("apartment created", "sid", a.SID(), "client_id", a.ClientID())
	return a, nil
}

func (s *Service) Get(ctx context.Context, sid string) (*apartment.Apartment, error) {
	return s.apartments.GetBySID(ctx, sid)
}

func (s *Service) List(ctx context.Context, filter apartment.Filter) ([]*apartment.Apartment, int64, error) {
	return s.apartments.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, sid, address, floor, unit string, areaSqm float64, notes string) (*apartment.Apartment, error) {
	a, err := s.apartments.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}

	if err := a.Update(address, floor, unit, areaSqm, notes); err != nil {
		return nil, err
	}

	if err := s.apartments.Update(ctx, a); err != nil {
		s.logger.Errorw("failed to update apartment", "error", err, "sid", sid)
		return nil, err
	}

	s.logger.Infow("apartment updated", "sid", sid)
	return a, nil
}

func (s *Service) ChangeStatus(ctx context.Context, sid string, status apartment.FurnishingStatus) (*apartment.Apartment, error) {
	a, err := s.apartments.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}

	if err := a.ChangeStatus(status); err != nil {
		return nil, err
	}

	if err := s.apartments.Update(ctx, a); err != nil {
		s.logger.Errorw("failed to update apartment status", "error", err, "sid", sid)
		return nil, err
	}

	s.logger.Infow("apartment status changed", "sid", sid, "status", status.String())
	return a, nil
}

func (s *Service) Delete(ctx context.Context, sid string) error {
	a, err := s.apartments.GetBySID(ctx, sid)
	if err != nil {
		return err
	}

	if err := s.apartments.Delete(ctx, a.ID()); err != nil {
		s.logger.Errorw("failed to delete apartment", "error", err, "sid", sid)
		return err
	}

	s.logger.Infow("apartment deleted", "sid", sid)
	return nil
}
