// Package client provides application services for client management.
package client

import (
	"context"

	"fitout/internal/domain/client"
	"fitout/internal/shared/id"
	"fitout/internal/shared/logger"
)

type Service struct {
	clients client.Repository
	logger  logger.Interface
}

func NewService(clients client.Repository, log logger.Interface) *Service {
	return &Service{
		clients: clients,
		logger:  log.Named("client"),
	}
}

func (s *Service) Create(ctx context.Context, name, email, phone, notes string) (*client.Client, error) {
	c, err := client.NewClient(name, email, phone, notes)
	if err != nil {
		return nil, err
	}

	sid, err := id.GenerateWithPrefix(id.PrefixClient, id.DefaultLength)
	if err != nil {
		return nil, err
	}
	if err := c.SetSID(sid); err != nil {
		return nil, err
	}

	if err := s.clients.Save(ctx, c); err != nil {
		s.logger.Errorw("failed to save client", "error", err, "name", name)
		return nil, err
	}

	s.logger.Infow("client created", "sid", c.SID(), "name", c.Name())
	return c, nil
}

func (s *Service) Get(ctx context.Context, sid string) (*client.Client, error) {
	return s.clients.GetBySID(ctx, sid)
}

func (s *Service) List(ctx context.Context, filter client.Filter) ([]*client.Client, int64, error) {
	return s.clients.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, sid, name, email, phone, notes string) (*client.Client, error) {
	c, err := s.clients.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}

	if err := c.Update(name, email, phone, notes); err != nil {
		return nil, err
	}

	if err := s.clients.Update(ctx, c); err != nil {
		s.logger.Errorw("failed to update client", "error", err, "sid", sid)
		return nil, err
	}

	s.logger.Infow("client updated", "sid", sid)
	return c, nil
}

func (s *Service) Delete(ctx context.Context, sid string) error {
	c, err := s.clients.GetBySID(ctx, sid)
	if err != nil {
		return err
	}

	if err := s.clients.Delete(ctx, c.ID()); err != nil {
		s.logger.Errorw("failed to delete client", "error", err, "sid", sid)
		return err
	}

	s.logger.Infow("client deleted", "sid", sid)
	return nil
}
