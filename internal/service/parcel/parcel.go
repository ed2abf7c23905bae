package parcel

import (
	"context"
	"time"

	"service-parcel/internal/apperr"
	"service-parcel/internal/domain"
)

// Service is the parcel registry. Status is always written by the server.
type Service struct {
	repo             parcelRepository
	operationTimeout time.Duration
}

// NewService creates and configures a parcel Service.
func NewService(r parcelRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Create books a new parcel in the pending state.
func (s *Service) Create(ctx context.Context, p *domain.Parcel) (domain.InsertResult, error) {
	if p == nil {
		return domain.InsertResult{}, apperr.ErrInvalid
	}
	p.Status = domain.ParcelStatusPending

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Create(ctx, p)
}

// List returns every parcel.
func (s *Service) List(ctx context.Context) ([]domain.Parcel, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx)
}

// ListByOwner returns parcels booked under email. An empty email only matches
// parcels stored with an empty email.
func (s *Service) ListByOwner(ctx context.Context, email string) ([]domain.Parcel, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListByEmail(ctx, email)
}

// Get returns the parcel or nil when no parcel has that id.
func (s *Service) Get(ctx context.Context, rawID string) (*domain.Parcel, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Get(ctx, id)
}

// Replace overwrites the booking fields of a parcel and resets it to pending.
func (s *Service) Replace(ctx context.Context, rawID string, p domain.Parcel) (domain.UpdateResult, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	p.Status = domain.ParcelStatusPending

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Replace(ctx, id, p)
}

// Delete removes a parcel. A missing id reports zero deletions.
func (s *Service) Delete(ctx context.Context, rawID string) (domain.DeleteResult, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Delete(ctx, id)
}

// MarkEnRoute moves a parcel to "On the Way". Repeating it is harmless.
func (s *Service) MarkEnRoute(ctx context.Context, rawID string) (domain.UpdateResult, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.SetStatus(ctx, id, domain.ParcelStatusOnTheWay)
}
