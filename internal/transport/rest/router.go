package rest

import (
	"net/http"

	"github.com/heartmarshall/healthtrack-backend/internal/transport/middleware"
)

// Handlers groups every REST handler mounted by NewRouter.
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	User     *UserHandler
	Records  *RecordHandler
	Insights *InsightsHandler
	Events   *EventHandler
	// Metrics serves the Prometheus exposition; nil disables it.
	Metrics     http.Handler
	MetricsPath string
}

// NewRouter builds the route table. Authentication must already have run:
// protected routes only check the identity placed in the request context.
func NewRouter(h Handlers) http.Handler {
	mux := http.NewServeMux()

	public := func(pattern string, fn http.HandlerFunc) { mux.Handle(pattern, fn) }
	user := func(pattern string, fn http.HandlerFunc) { mux.Handle(pattern, middleware.RequireAuth(fn)) }
	admin := func(pattern string, fn http.HandlerFunc) { mux.Handle(pattern, middleware.RequireAdmin(fn)) }

	public("GET /live", h.Health.Live)
	public("GET /ready", h.Health.Ready)
	public("GET /health", h.Health.Health)
	public("GET /api/health", h.Health.APIHealth)
	if h.Metrics != nil {
		mux.Handle("GET "+h.MetricsPath, h.Metrics)
	}

	public("POST /api/auth/register", h.Auth.Register)
	public("POST /api/auth/login", h.Auth.Login)
	public("POST /api/auth/refresh", h.Auth.Refresh)
	user("POST /api/auth/logout", h.Auth.Logout)

	user("GET /api/me", h.User.Me)
	user("DELETE /api/me", h.User.DeleteMe)
	admin("GET /api/admin/users", h.User.ListUsers)
	admin("PUT /api/admin/users/{id}/role", h.User.SetRole)

	r := h.Records
	user("POST /api/vitals", r.CreateVital)
	user("GET /api/vitals", r.ListVitals)
	user("POST /api/workouts", r.CreateWorkout)
	user("GET /api/workouts", r.ListWorkouts)
	user("POST /api/sleep", r.CreateSleep)
	user("GET /api/sleep", r.ListSleep)
	user("POST /api/meals", r.CreateMeal)
	user("GET /api/meals", r.ListMeals)
	user("POST /api/measurements", r.CreateMeasurement)
	user("GET /api/measurements", r.ListMeasurements)
	user("POST /api/goals", r.CreateGoal)
	user("GET /api/goals", r.ListGoals)
	user("POST /api/goals/{id}/complete", r.CompleteGoal)
	user("POST /api/reminders", r.CreateReminder)
	user("GET /api/reminders", r.ListReminders)
	user("POST /api/reminders/{id}/sent", r.MarkReminderSent)
	user("DELETE /api/{kind}/{id}", r.Delete)

	user("GET /api/insights/overview", h.Insights.Overview)
	user("GET /api/insights/trends", h.Insights.Trends)

	public("POST /api/track", h.Events.Track)
	admin("GET /api/events", h.Events.List)

	return middleware.Metrics(mux)
}
