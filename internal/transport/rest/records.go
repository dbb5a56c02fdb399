package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/service/tracking"
)

type trackingService interface {
	CreateVital(ctx context.Context, in tracking.CreateVitalInput) (domain.Vital, error)
	CreateWorkout(ctx context.Context, in tracking.CreateWorkoutInput) (domain.Workout, error)
	CreateSleep(ctx context.Context, in tracking.CreateSleepInput) (domain.Sleep, error)
	CreateMeal(ctx context.Context, in tracking.CreateMealInput) (domain.Meal, error)
	CreateMeasurement(ctx context.Context, in tracking.CreateMeasurementInput) (domain.Measurement, error)
	CreateGoal(ctx context.Context, in tracking.CreateGoalInput) (domain.Goal, error)
	CreateReminder(ctx context.Context, in tracking.CreateReminderInput) (domain.Reminder, error)

	ListVitals(ctx context.Context, p domain.ListParams) (domain.Page[domain.Vital], error)
	ListWorkouts(ctx context.Context, p domain.ListParams) (domain.Page[domain.Workout], error)
	ListSleep(ctx context.Context, p domain.ListParams) (domain.Page[domain.Sleep], error)
	ListMeals(ctx context.Context, p domain.ListParams) (domain.Page[domain.Meal], error)
	ListMeasurements(ctx context.Context, p domain.ListParams) (domain.Page[domain.Measurement], error)
	ListGoals(ctx context.Context, p domain.ListParams) (domain.Page[domain.Goal], error)
	ListReminders(ctx context.Context, p domain.ListParams) (domain.Page[domain.Reminder], error)

	Delete(ctx context.Context, kind domain.RecordKind, id uuid.UUID) error
	CompleteGoal(ctx context.Context, id uuid.UUID) (domain.Goal, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID) (domain.Reminder, error)
}

// RecordHandler serves create, list and delete endpoints for every record
// kind.
type RecordHandler struct {
	svc trackingService
	log *slog.Logger
}

// NewRecordHandler creates a RecordHandler.
func NewRecordHandler(svc trackingService, logger *slog.Logger) *RecordHandler {
	return &RecordHandler{svc: svc, log: logger.With("handler", "records")}
}

// createRecord decodes a request DTO, calls create and writes 201 with the
// converted record.
func createRecord[Req interface{ input() In }, In, T, D any](
	h *RecordHandler, w http.ResponseWriter, r *http.Request,
	create func(context.Context, In) (T, error), conv func(T) D,
) {
	var req Req
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	rec, err := create(r.Context(), req.input())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, conv(rec))
}

func listRecords[T, D any](
	h *RecordHandler, w http.ResponseWriter, r *http.Request,
	list func(context.Context, domain.ListParams) (domain.Page[T], error), conv func(T) D,
) {
	page, err := list(r.Context(), listParams(r))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toPage(page, conv))
}

// CreateVital handles POST /api/vitals.
func (h *RecordHandler) CreateVital(w http.ResponseWriter, r *http.Request) {
	createRecord[vitalRequest](h, w, r, h.svc.CreateVital, toVital)
}

// ListVitals handles GET /api/vitals.
func (h *RecordHandler) ListVitals(w http.ResponseWriter, r *http.Request) {
	listRecords(h, w, r, h.svc.ListVitals, toVital)
}

func (h *RecordHandler) CreateWorkout(w http.ResponseWriter, r *http.Request) {
	createRecord[workoutRequest](h, w, r, h.svc.CreateWorkout, toWorkout)
}

func (h *RecordHandler) ListWorkouts(w http.ResponseWriter, r *http.Request) {
	listRecords(h, w, r, h.svc.ListWorkouts, toWorkout)
}

func (h *RecordHandler) CreateSleep(w http.ResponseWriter, r *http.Request) {
	createRecord[sleepRequest](h, w, r, h.svc.CreateSleep, toSleep)
}

func (h *RecordHandler) ListSleep(w http.ResponseWriter, r *http.Request) {
	listRecords(h, w, r, h.svc.ListSleep, toSleep)
}

func (h *RecordHandler) CreateMeal(w http.ResponseWriter, r *http.Request) {
	createRecord[mealRequest](h, w, r, h.svc.CreateMeal, toMeal)
}

func (h *RecordHandler) ListMeals(w http.ResponseWriter, r *http.Request) {
	listRecords(h, w, r, h.svc.ListMeals, toMeal)
}

func (h *RecordHandler) CreateMeasurement(w http.ResponseWriter, r *http.Request) {
	createRecord[measurementRequest](h, w, r, h.svc.CreateMeasurement, toMeasurement)
}

func (h *RecordHandler) ListMeasurements(w http.ResponseWriter, r *http.Request) {
	listRecords(h, w, r, h.svc.ListMeasurements, toMeasurement)
}

func (h *RecordHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	createRecord[goalRequest](h, w, r, h.svc.CreateGoal, toGoal)
}

func (h *RecordHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	listRecords(h, w, r, h.svc.ListGoals, toGoal)
}

func (h *RecordHandler) CreateReminder(w http.ResponseWriter, r *http.Request) {
	createRecord[reminderRequest](h, w, r, h.svc.CreateReminder, toReminder)
}

func (h *RecordHandler) ListReminders(w http.ResponseWriter, r *http.Request) {
	listRecords(h, w, r, h.svc.ListReminders, toReminder)
}

// CompleteGoal handles POST /api/goals/{id}/complete.
func (h *RecordHandler) CompleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	goal, err := h.svc.CompleteGoal(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoal(goal))
}

// MarkReminderSent handles POST /api/reminders/{id}/sent.
func (h *RecordHandler) MarkReminderSent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	rem, err := h.svc.MarkReminderSent(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toReminder(rem))
}

// Delete handles DELETE /api/{kind}/{id}. Unknown kinds and foreign or
// missing records all yield 404.
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	kind := domain.RecordKind(r.PathValue("kind"))
	if !kind.IsValid() {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if err := h.svc.Delete(r.Context(), kind, id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
