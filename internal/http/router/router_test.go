package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/require"

	"service-parcel/internal/auth"
	"service-parcel/internal/domain"
	"service-parcel/internal/http/handlers"
	"service-parcel/internal/http/middleware"
	"service-parcel/internal/http/router"
	"service-parcel/internal/metrics"
)

type fakeUsers struct {
	lastPromoted string
}

func (f *fakeUsers) List(context.Context) ([]domain.User, error) { return []domain.User{}, nil }

func (f *fakeUsers) IsAdmin(context.Context, string, string) (bool, error) { return true, nil }

func (f *fakeUsers) IsDeliveryMan(context.Context, string, string) (bool, error) { return false, nil }

func (f *fakeUsers) Register(context.Context, *domain.User) (domain.RegisterResult, error) {
	return domain.RegisterResult{Message: domain.MsgUserExists}, nil
}

func (f *fakeUsers) PromoteToDeliveryMan(_ context.Context, id string) (domain.UpdateResult, error) {
	f.lastPromoted = "dm:" + id
	return domain.UpdateResult{Acknowledged: true}, nil
}

func (f *fakeUsers) PromoteToAdmin(_ context.Context, id string) (domain.UpdateResult, error) {
	f.lastPromoted = "admin:" + id
	return domain.UpdateResult{Acknowledged: true}, nil
}

type fakeParcels struct {
	lastCall string
}

func (f *fakeParcels) Create(context.Context, *domain.Parcel) (domain.InsertResult, error) {
	f.lastCall = "create"
	return domain.InsertResult{Acknowledged: true}, nil
}

func (f *fakeParcels) List(context.Context) ([]domain.Parcel, error) {
	f.lastCall = "list"
	return []domain.Parcel{}, nil
}

func (f *fakeParcels) ListByOwner(_ context.Context, email string) ([]domain.Parcel, error) {
	f.lastCall = "mine:" + email
	return []domain.Parcel{}, nil
}

func (f *fakeParcels) Get(_ context.Context, id string) (*domain.Parcel, error) {
	f.lastCall = "get:" + id
	return nil, nil
}

func (f *fakeParcels) Replace(_ context.Context, id string, _ domain.Parcel) (domain.UpdateResult, error) {
	f.lastCall = "replace:" + id
	return domain.UpdateResult{Acknowledged: true}, nil
}

func (f *fakeParcels) Delete(_ context.Context, id string) (domain.DeleteResult, error) {
	f.lastCall = "delete:" + id
	return domain.DeleteResult{Acknowledged: true}, nil
}

func (f *fakeParcels) MarkEnRoute(_ context.Context, id string) (domain.UpdateResult, error) {
	f.lastCall = "onTheWay:" + id
	return domain.UpdateResult{Acknowledged: true}, nil
}

type fakeAssignments struct{}

func (fakeAssignments) Record(context.Context, *domain.Assignment) (domain.InsertResult, error) {
	return domain.InsertResult{Acknowledged: true}, nil
}

type fixture struct {
	handler http.Handler
	tokens  *auth.TokenService
	users   *fakeUsers
	parcels *fakeParcels
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tokens, err := auth.NewTokenService("router-secret", time.Hour)
	require.NoError(t, err)

	users := &fakeUsers{}
	parcels := &fakeParcels{}
	reg := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTP()
	require.NoError(t, metrics.Register(reg, httpMetrics.Collectors()...))

	h := router.New(router.Routes{
		Base:        handlers.New(nil),
		Tokens:      handlers.NewTokenHandler(nil, tokens),
		Users:       handlers.NewUserHandler(nil, users),
		Parcels:     handlers.NewParcelHandler(nil, parcels),
		Assignments: handlers.NewAssignmentHandler(nil, fakeAssignments{}),
	}, router.Middlewares{
		Auth:        middleware.NewAuth(tokens, nil, nil),
		HTTPMetrics: httpMetrics,
		Metrics:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSOrigins: []string{"*"},
	})
	return &fixture{handler: h, tokens: tokens, users: users, parcels: parcels}
}

func (f *fixture) do(t *testing.T, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func (f *fixture) token(t *testing.T, email string) string {
	t.Helper()

	tok, err := f.tokens.Issue(auth.Identity{"email": email})
	require.NoError(t, err)
	return tok
}

func TestNew_RequiresAuth(t *testing.T) {
	t.Parallel()

	require.PanicsWithValue(t, "router: auth middleware is required", func() {
		router.New(router.Routes{
			Base:        handlers.New(nil),
			Tokens:      handlers.NewTokenHandler(nil, nil),
			Users:       handlers.NewUserHandler(nil, &fakeUsers{}),
			Parcels:     handlers.NewParcelHandler(nil, &fakeParcels{}),
			Assignments: handlers.NewAssignmentHandler(nil, fakeAssignments{}),
		}, router.Middlewares{})
	})
}

func TestRouter_ServiceEndpoints(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	rr := f.do(t, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "Percel App is running!", rr.Body.String())

	rr = f.do(t, http.MethodGet, "/ping", "", "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = f.do(t, http.MethodHead, "/healthcheck", "", "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = f.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "http_requests_total")
}

func TestRouter_Fallbacks(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	rr := f.do(t, http.MethodGet, "/nope", "", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.JSONEq(t, `{"message":"route not found"}`, rr.Body.String())

	rr = f.do(t, http.MethodPut, "/parcels", "", "")
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	require.JSONEq(t, `{"message":"method not allowed"}`, rr.Body.String())
}

func TestRouter_JWTThenProtectedList(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	rr := f.do(t, http.MethodGet, "/users", "", "")
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.JSONEq(t, `{"message":"unauthorized access"}`, rr.Body.String())

	rr = f.do(t, http.MethodPost, "/jwt", `{"email":"a@x.com"}`, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"token"`)

	rr = f.do(t, http.MethodGet, "/users", "", f.token(t, "a@x.com"))
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `[]`, rr.Body.String())
}

func TestRouter_RoleChecksRequireMatchingEmail(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	tok := f.token(t, "a@x.com")

	rr := f.do(t, http.MethodGet, "/users/admin/a@x.com", "", tok)
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"admin":true}`, rr.Body.String())

	rr = f.do(t, http.MethodGet, "/users/admin/b@x.com", "", tok)
	require.Equal(t, http.StatusForbidden, rr.Code)
	require.JSONEq(t, `{"message":"forbidden access"}`, rr.Body.String())

	rr = f.do(t, http.MethodGet, "/users/deliveryMen/a@x.com", "", "")
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = f.do(t, http.MethodGet, "/users/deliveryMen/a@x.com", "", tok)
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"deliveryMen":false}`, rr.Body.String())
}

func TestRouter_PromotionsArePublicAndUseIDParam(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	rr := f.do(t, http.MethodPatch, "/users/admin/665f1c2a9d1e8a0012345678", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "admin:665f1c2a9d1e8a0012345678", f.users.lastPromoted)

	rr = f.do(t, http.MethodPatch, "/users/deliveryman/665f1c2a9d1e8a0012345679", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "dm:665f1c2a9d1e8a0012345679", f.users.lastPromoted)

	rr = f.do(t, http.MethodPost, "/users", `{"email":"a@x.com"}`, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"message":"User already exists","insertedId":null}`, rr.Body.String())
}

func TestRouter_ParcelRoutes(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	tests := []struct {
		method, target, body, want string
	}{
		{http.MethodPost, "/parcels", `{"email":"b@x.com"}`, "create"},
		{http.MethodGet, "/parcels", "", "list"},
		{http.MethodGet, "/myParcels?email=b@x.com", "", "mine:b@x.com"},
		{http.MethodGet, "/parcels/p1", "", "get:p1"},
		{http.MethodPatch, "/parcels/p1", `{"name":"n"}`, "replace:p1"},
		{http.MethodPatch, "/parcels/p1/onTheWay", "", "onTheWay:p1"},
		{http.MethodDelete, "/parcels/p1", "", "delete:p1"},
	}
	for _, tt := range tests {
		rr := f.do(t, tt.method, tt.target, tt.body, "")
		require.Equal(t, http.StatusOK, rr.Code, "%s %s", tt.method, tt.target)
		require.Equal(t, tt.want, f.parcels.lastCall, "%s %s", tt.method, tt.target)
	}

	rr := f.do(t, http.MethodPost, "/deliveryAssign", `{"parcelId":"p1"}`, "")
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	req := httptest.NewRequest(http.MethodOptions, "/parcels", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)

	require.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
