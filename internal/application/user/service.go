// Package user provides application services for admin console accounts
// and authentication.
package user

import (
	"context"
	"strings"

	"fitout/internal/domain/user"
	"fitout/internal/infrastructure/auth"
	"fitout/internal/shared/authorization"
	"fitout/internal/shared/biztime"
	apperrors "fitout/internal/shared/errors"
	"fitout/internal/shared/logger"
)

// PasswordHasher abstracts the bcrypt implementation for tests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// TokenIssuer abstracts JWT generation for tests.
type TokenIssuer interface {
	Generate(userID uint, role authorization.UserRole) (*auth.TokenPair, error)
	Refresh(refreshToken string) (*auth.TokenPair, error)
}

type Service struct {
	users  user.Repository
	hasher PasswordHasher
	tokens TokenIssuer
	logger logger.Interface
}

func NewService(users user.Repository, hasher PasswordHasher, tokens TokenIssuer, log logger.Interface) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: log.Named("user"),
	}
}

const minPasswordLength = 8

// Login verifies credentials and issues a token pair. Inactive accounts are
// rejected with the same error as a bad password.
func (s *Service) Login(ctx context.Context, email, password string) (*auth.TokenPair, *user.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, nil, apperrors.NewUnauthorizedError("invalid email or password")
		}
		return nil, nil, err
	}

	if !u.IsActive() {
		s.logger.Warnw("login attempt on inactive account", "user_id", u.ID())
		return nil, nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	if err := s.hasher.Verify(password, u.PasswordHash()); err != nil {
		s.logger.Warnw("login failed", "user_id", u.ID())
		return nil, nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	pair, err := s.tokens.Generate(u.ID(), u.Role())
	if err != nil {
		return nil, nil, err
	}

	u.RecordLogin(biztime.NowUTC())
	if err := s.users.Update(ctx, u); err != nil {
		s.logger.Warnw("failed to record login time", "error", err, "user_id", u.ID())
	}

	s.logger.Infow("user logged in", "user_id", u.ID())
	return pair, u, nil
}

// Refresh rotates a refresh token into a new token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	pair, err := s.tokens.Refresh(refreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid refresh token")
	}
	return pair, nil
}

func (s *Service) Create(ctx context.Context, email, name, password string, role authorization.UserRole) (*user.User, error) {
	if len(password) < minPasswordLength {
		return nil, apperrors.NewValidationError("password must be at least 8 characters")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u, err := user.NewUser(email, name, hash, role)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.users.Save(ctx, u); err != nil {
		s.logger.Errorw("failed to save user", "error", err, "email", email)
		return nil, err
	}

	s.logger.Infow("user created", "user_id", u.ID(), "role", role.String())
	return u, nil
}

func (s *Service) Get(ctx context.Context, userID uint) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) List(ctx context.Context, filter user.Filter) ([]*user.User, int64, error) {
	return s.users.List(ctx, filter)
}

func (s *Service) UpdateProfile(ctx context.Context, userID uint, name string) (*user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := u.UpdateProfile(name); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword verifies the current password before setting a new one.
func (s *Service) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperrors.NewValidationError("password must be at least 8 characters")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.hasher.Verify(currentPassword, u.PasswordHash()); err != nil {
		return apperrors.NewUnauthorizedError("current password is incorrect")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := u.ChangePassword(hash); err != nil {
		return err
	}

	if err := s.users.Update(ctx, u); err != nil {
		return err
	}

	s.logger.Infow("user password changed", "user_id", userID)
	return nil
}

func (s *Service) ChangeRole(ctx context.Context, userID uint, role authorization.UserRole) (*user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := u.ChangeRole(role); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Infow("user role changed", "user_id", userID, "role", role.String())
	return u, nil
}

func (s *Service) SetActive(ctx context.Context, userID uint, active bool) (*user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if active {
		u.Activate()
	} else {
		u.Deactivate()
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Infow("user active flag updated", "user_id", userID, "active", active)
	return u, nil
}

func (s *Service) Delete(ctx context.Context, userID uint) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		s.logger.Errorw("failed to delete user", "error", err, "user_id", userID)
		return err
	}
	s.logger.Infow("user deleted", "user_id", userID)
	return nil
}
