package user

import (
	"context"
	"fmt"
	"time"

	"service-parcel/internal/apperr"
	"service-parcel/internal/domain"
)

// Service is the user directory: registration, role lookups and promotions.
type Service struct {
	repo             userRepository
	operationTimeout time.Duration
}

// NewService creates and configures a user Service.
func NewService(r userRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// List returns every registered user.
func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx)
}

// IsAdmin reports whether the user stored under email has the Admin role.
// Callers may only ask about themselves.
func (s *Service) IsAdmin(ctx context.Context, email, callerEmail string) (bool, error) {
	return s.hasRole(ctx, email, callerEmail, domain.RoleAdmin)
}

// IsDeliveryMan reports whether the user stored under email has the DeliveryMen role.
// Callers may only ask about themselves.
func (s *Service) IsDeliveryMan(ctx context.Context, email, callerEmail string) (bool, error) {
	return s.hasRole(ctx, email, callerEmail, domain.RoleDeliveryMan)
}

func (s *Service) hasRole(ctx context.Context, email, callerEmail string, role domain.Role) (bool, error) {
	if email != callerEmail {
		return false, apperr.ErrForbidden
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return u != nil && u.Role == role, nil
}

// Register stores u unless a user with the same email already exists, in which
// case nothing is written and the result carries MsgUserExists.
func (s *Service) Register(ctx context.Context, u *domain.User) (domain.RegisterResult, error) {
	if u == nil {
		return domain.RegisterResult{}, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	existing, err := s.repo.GetByEmail(ctx, u.Email)
	if err != nil {
		return domain.RegisterResult{}, err
	}
	if existing != nil {
		return domain.RegisterResult{Message: domain.MsgUserExists}, nil
	}

	res, err := s.repo.Create(ctx, u)
	if err != nil {
		return domain.RegisterResult{}, err
	}
	id := res.InsertedID
	return domain.RegisterResult{Acknowledged: res.Acknowledged, InsertedID: &id}, nil
}

// PromoteToDeliveryMan sets the DeliveryMen role on the user with the given id.
// An unknown id yields zero counts.
func (s *Service) PromoteToDeliveryMan(ctx context.Context, id string) (domain.UpdateResult, error) {
	return s.setRole(ctx, id, domain.RoleDeliveryMan)
}

// PromoteToAdmin sets the Admin role on the user with the given id.
// An unknown id yields zero counts.
func (s *Service) PromoteToAdmin(ctx context.Context, id string) (domain.UpdateResult, error) {
	return s.setRole(ctx, id, domain.RoleAdmin)
}

func (s *Service) setRole(ctx context.Context, rawID string, role domain.Role) (domain.UpdateResult, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.repo.SetRole(ctx, id, role)
	if err != nil {
		return domain.UpdateResult{}, fmt.Errorf("set role %s: %w", role, err)
	}
	return res, nil
}
