package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/service/auth"
	"github.com/heartmarshall/healthtrack-backend/internal/service/events"
	"github.com/heartmarshall/healthtrack-backend/internal/service/tracking"
	"github.com/heartmarshall/healthtrack-backend/pkg/ctxutil"
)

// Stubs embed the service interface; calling a method that a test did not
// override panics, which surfaces unexpected routing.

type trackingStub struct {
	trackingService
	createVital  func(ctx context.Context, in tracking.CreateVitalInput) (domain.Vital, error)
	listVitals   func(ctx context.Context, p domain.ListParams) (domain.Page[domain.Vital], error)
	listGoals    func(ctx context.Context, p domain.ListParams) (domain.Page[domain.Goal], error)
	deleteRecord func(ctx context.Context, kind domain.RecordKind, id uuid.UUID) error
	completeGoal func(ctx context.Context, id uuid.UUID) (domain.Goal, error)
}

func (s *trackingStub) CreateVital(ctx context.Context, in tracking.CreateVitalInput) (domain.Vital, error) {
	return s.createVital(ctx, in)
}

func (s *trackingStub) ListVitals(ctx context.Context, p domain.ListParams) (domain.Page[domain.Vital], error) {
	return s.listVitals(ctx, p)
}

func (s *trackingStub) ListGoals(ctx context.Context, p domain.ListParams) (domain.Page[domain.Goal], error) {
	return s.listGoals(ctx, p)
}

func (s *trackingStub) Delete(ctx context.Context, kind domain.RecordKind, id uuid.UUID) error {
	return s.deleteRecord(ctx, kind, id)
}

func (s *trackingStub) CompleteGoal(ctx context.Context, id uuid.UUID) (domain.Goal, error) {
	return s.completeGoal(ctx, id)
}

type insightsStub struct {
	overview func(ctx context.Context, w domain.Window) (domain.Overview, error)
	trends   func(ctx context.Context, days int) (domain.Trends, error)
}

func (s *insightsStub) Overview(ctx context.Context, w domain.Window) (domain.Overview, error) {
	return s.overview(ctx, w)
}

func (s *insightsStub) Trends(ctx context.Context, days int) (domain.Trends, error) {
	return s.trends(ctx, days)
}

type authStub struct {
	authService
	register func(ctx context.Context, in auth.RegisterInput) (*domain.User, error)
	login    func(ctx context.Context, in auth.LoginInput) (*auth.Result, error)
}

func (s *authStub) Register(ctx context.Context, in auth.RegisterInput) (*domain.User, error) {
	return s.register(ctx, in)
}

func (s *authStub) Login(ctx context.Context, in auth.LoginInput) (*auth.Result, error) {
	return s.login(ctx, in)
}

type userStub struct {
	userService
	getProfile func(ctx context.Context) (*domain.User, error)
}

func (s *userStub) GetProfile(ctx context.Context) (*domain.User, error) {
	return s.getProfile(ctx)
}

type eventStub struct {
	ingest func(ctx context.Context, in events.IngestInput) (int, error)
	list   func(ctx context.Context, page, limit int) (domain.Page[domain.Event], error)
}

func (s *eventStub) Ingest(ctx context.Context, in events.IngestInput) (int, error) {
	return s.ingest(ctx, in)
}

func (s *eventStub) List(ctx context.Context, page, limit int) (domain.Page[domain.Event], error) {
	return s.list(ctx, page, limit)
}

type pingOK struct{}

func (pingOK) Ping(context.Context) error { return nil }

type services struct {
	tracking *trackingStub
	insights *insightsStub
	auth     *authStub
	user     *userStub
	events   *eventStub
}

func newTestRouter(s services) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if s.tracking == nil {
		s.tracking = &trackingStub{}
	}
	if s.insights == nil {
		s.insights = &insightsStub{}
	}
	if s.auth == nil {
		s.auth = &authStub{}
	}
	if s.user == nil {
		s.user = &userStub{}
	}
	if s.events == nil {
		s.events = &eventStub{}
	}
	return NewRouter(Handlers{
		Health:   NewHealthHandler(pingOK{}, nil, "healthtrack", "test"),
		Auth:     NewAuthHandler(s.auth, log),
		User:     NewUserHandler(s.user, log),
		Records:  NewRecordHandler(s.tracking, log),
		Insights: NewInsightsHandler(s.insights, log),
		Events:   NewEventHandler(s.events, log),
	})
}

func request(method, target, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func as(req *http.Request, userID uuid.UUID, role string) *http.Request {
	ctx := ctxutil.WithUserRole(ctxutil.WithUserID(req.Context(), userID), role)
	return req.WithContext(ctx)
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func ptr[T any](v T) *T { return &v }
