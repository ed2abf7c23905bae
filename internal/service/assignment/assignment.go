package assignment

import (
	"context"
	"time"

	"service-parcel/internal/apperr"
	"service-parcel/internal/domain"
	"service-parcel/internal/logx"
)

// Service appends delivery assignments. It never touches the parcel itself.
type Service struct {
	repo             assignmentRepository
	publisher        Publisher
	logger           logx.Logger
	now              func() time.Time
	operationTimeout time.Duration
}

// Option customizes a Service.
type Option func(*Service)

// WithPublisher announces every stored assignment through p.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithLogger sets the logger used for publish failures.
func WithLogger(l logx.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates and configures an assignment Service.
func NewService(r assignmentRepository, timeout time.Duration, opts ...Option) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	s := &Service{
		repo:             r,
		logger:           logx.Nop(),
		now:              time.Now,
		operationTimeout: timeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record stores a verbatim and, when a publisher is configured, announces it.
// Only assignments whose parcelId is a string are announced. A failed
// announcement is logged and does not fail the call.
func (s *Service) Record(ctx context.Context, a *domain.Assignment) (domain.InsertResult, error) {
	if a == nil {
		return domain.InsertResult{}, apperr.ErrInvalid
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	res, err := s.repo.Create(storeCtx, a)
	cancel()
	if err != nil {
		return domain.InsertResult{}, err
	}

	if s.publisher != nil {
		s.publish(ctx, res, a)
	}
	return res, nil
}

func (s *Service) publish(ctx context.Context, res domain.InsertResult, a *domain.Assignment) {
	e := domain.AssignmentRecorded{
		AssignmentID:  res.InsertedID.Hex(),
		ParcelID:      a.ParcelID(),
		DeliveryManID: a.DeliveryManID(),
		RecordedAt:    s.now().UTC(),
	}
	if e.ParcelID == "" {
		s.logger.Debug("assignment event skipped: no string parcelId",
			logx.String("assignment_id", e.AssignmentID),
		)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()
	if err := s.publisher.PublishAssignment(ctx, e); err != nil {
		s.logger.Warn("assignment event not published",
			logx.String("assignment_id", e.AssignmentID),
			logx.String("parcel_id", e.ParcelID),
			logx.Err(err),
		)
	}
}
