package handlers

import (
	"context"

	"service-parcel/internal/auth"
	"service-parcel/internal/domain"
	"service-parcel/internal/service/assignment"
	"service-parcel/internal/service/parcel"
	"service-parcel/internal/service/user"
)

type tokenIssuer interface {
	Issue(identity auth.Identity) (string, error)
}

// NewTokenIssuer wires a TokenService into a tokenIssuer.
func NewTokenIssuer(s *auth.TokenService) tokenIssuer {
	return s
}

type userUsecase interface {
	List(ctx context.Context) ([]domain.User, error)
	IsAdmin(ctx context.Context, email, callerEmail string) (bool, error)
	IsDeliveryMan(ctx context.Context, email, callerEmail string) (bool, error)
	Register(ctx context.Context, u *domain.User) (domain.RegisterResult, error)
	PromoteToDeliveryMan(ctx context.Context, id string) (domain.UpdateResult, error)
	PromoteToAdmin(ctx context.Context, id string) (domain.UpdateResult, error)
}

// NewUserUsecase wires a user.Service into a userUsecase.
func NewUserUsecase(s *user.Service) userUsecase {
	return s
}

type parcelUsecase interface {
	Create(ctx context.Context, p *domain.Parcel) (domain.InsertResult, error)
	List(ctx context.Context) ([]domain.Parcel, error)
	ListByOwner(ctx context.Context, email string) ([]domain.Parcel, error)
	Get(ctx context.Context, id string) (*domain.Parcel, error)
	Replace(ctx context.Context, id string, p domain.Parcel) (domain.UpdateResult, error)
	Delete(ctx context.Context, id string) (domain.DeleteResult, error)
	MarkEnRoute(ctx context.Context, id string) (domain.UpdateResult, error)
}

// NewParcelUsecase wires a parcel.Service into a parcelUsecase.
func NewParcelUsecase(s *parcel.Service) parcelUsecase {
	return s
}

type assignmentUsecase interface {
	Record(ctx context.Context, a *domain.Assignment) (domain.InsertResult, error)
}

// NewAssignmentUsecase wires an assignment.Service into an assignmentUsecase.
func NewAssignmentUsecase(s *assignment.Service) assignmentUsecase {
	return s
}
