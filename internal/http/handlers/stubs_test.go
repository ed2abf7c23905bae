package handlers_test

import (
	"context"
	"net/http"
	"strings"

	"service-parcel/internal/auth"
	"service-parcel/internal/domain"

	"github.com/go-chi/chi/v5"
)

type stubIssuer struct {
	issueFn func(identity auth.Identity) (string, error)
}

func (s *stubIssuer) Issue(identity auth.Identity) (string, error) { return s.issueFn(identity) }

type stubUserUsecase struct {
	listFn          func(ctx context.Context) ([]domain.User, error)
	isAdminFn       func(ctx context.Context, email, caller string) (bool, error)
	isDeliveryManFn func(ctx context.Context, email, caller string) (bool, error)
	registerFn      func(ctx context.Context, u *domain.User) (domain.RegisterResult, error)
	promoteDMFn     func(ctx context.Context, id string) (domain.UpdateResult, error)
	promoteAdminFn  func(ctx context.Context, id string) (domain.UpdateResult, error)
}

func (s *stubUserUsecase) List(ctx context.Context) ([]domain.User, error) { return s.listFn(ctx) }

func (s *stubUserUsecase) IsAdmin(ctx context.Context, email, caller string) (bool, error) {
	return s.isAdminFn(ctx, email, caller)
}

func (s *stubUserUsecase) IsDeliveryMan(ctx context.Context, email, caller string) (bool, error) {
	return s.isDeliveryManFn(ctx, email, caller)
}

func (s *stubUserUsecase) Register(ctx context.Context, u *domain.User) (domain.RegisterResult, error) {
	return s.registerFn(ctx, u)
}

func (s *stubUserUsecase) PromoteToDeliveryMan(ctx context.Context, id string) (domain.UpdateResult, error) {
	return s.promoteDMFn(ctx, id)
}

func (s *stubUserUsecase) PromoteToAdmin(ctx context.Context, id string) (domain.UpdateResult, error) {
	return s.promoteAdminFn(ctx, id)
}

type stubParcelUsecase struct {
	createFn      func(ctx context.Context, p *domain.Parcel) (domain.InsertResult, error)
	listFn        func(ctx context.Context) ([]domain.Parcel, error)
	listByOwnerFn func(ctx context.Context, email string) ([]domain.Parcel, error)
	getFn         func(ctx context.Context, id string) (*domain.Parcel, error)
	replaceFn     func(ctx context.Context, id string, p domain.Parcel) (domain.UpdateResult, error)
	deleteFn      func(ctx context.Context, id string) (domain.DeleteResult, error)
	markFn        func(ctx context.Context, id string) (domain.UpdateResult, error)
}

func (s *stubParcelUsecase) Create(ctx context.Context, p *domain.Parcel) (domain.InsertResult, error) {
	return s.createFn(ctx, p)
}

func (s *stubParcelUsecase) List(ctx context.Context) ([]domain.Parcel, error) { return s.listFn(ctx) }

func (s *stubParcelUsecase) ListByOwner(ctx context.Context, email string) ([]domain.Parcel, error) {
	return s.listByOwnerFn(ctx, email)
}

func (s *stubParcelUsecase) Get(ctx context.Context, id string) (*domain.Parcel, error) {
	return s.getFn(ctx, id)
}

func (s *stubParcelUsecase) Replace(ctx context.Context, id string, p domain.Parcel) (domain.UpdateResult, error) {
	return s.replaceFn(ctx, id, p)
}

func (s *stubParcelUsecase) Delete(ctx context.Context, id string) (domain.DeleteResult, error) {
	return s.deleteFn(ctx, id)
}

func (s *stubParcelUsecase) MarkEnRoute(ctx context.Context, id string) (domain.UpdateResult, error) {
	return s.markFn(ctx, id)
}

type stubAssignmentUsecase struct {
	recordFn func(ctx context.Context, a *domain.Assignment) (domain.InsertResult, error)
}

func (s *stubAssignmentUsecase) Record(ctx context.Context, a *domain.Assignment) (domain.InsertResult, error) {
	return s.recordFn(ctx, a)
}

// withURLParams attaches chi route params to r as if the router had matched it.
func withURLParams(r *http.Request, kv ...string) *http.Request {
	rc := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rc.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rc))
}

func jsonBody(s string) *strings.Reader { return strings.NewReader(s) }
