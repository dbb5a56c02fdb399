// Package schema names the tables and columns of the record store. Services
// build query predicates from these names and repositories select with them.
package schema

// Columns shared by every per-user record table.
const (
	ID        = "id"
	UserID    = "user_id"
	CreatedAt = "created_at"
	Note      = "note"
)

type vitals struct {
	Name, HeartRate, Systolic, Diastolic, SpO2, Temperature, Mood string
}

// Vitals is the vitals table.
var Vitals = vitals{
	Name:        "vitals",
	HeartRate:   "heart_rate",
	Systolic:    "systolic",
	Diastolic:   "diastolic",
	SpO2:        "spo2",
	Temperature: "temperature",
	Mood:        "mood",
}

func (t vitals) Columns() []string {
	return []string{ID, UserID, t.HeartRate, t.Systolic, t.Diastolic, t.SpO2, t.Temperature, t.Mood, Note, CreatedAt}
}

type workouts struct {
	Name, Type, DurationMin, Calories, DistanceKm, Intensity, StartedAt string
}

// Workouts is the workouts table.
var Workouts = workouts{
	Name:        "workouts",
	Type:        "type",
	DurationMin: "duration_min",
	Calories:    "calories",
	DistanceKm:  "distance_km",
	Intensity:   "intensity",
	StartedAt:   "started_at",
}

func (t workouts) Columns() []string {
	return []string{ID, UserID, t.Type, t.DurationMin, t.Calories, t.DistanceKm, t.Intensity, Note, t.StartedAt, CreatedAt}
}

type sleep struct {
	Name, StartAt, EndAt, Quality, Awakenings string
}

// Sleep is the sleep table.
var Sleep = sleep{
	Name:       "sleep",
	StartAt:    "start_at",
	EndAt:      "end_at",
	Quality:    "quality",
	Awakenings: "awakenings",
}

func (t sleep) Columns() []string {
	return []string{ID, UserID, t.StartAt, t.EndAt, t.Quality, t.Awakenings, Note, CreatedAt}
}

type meals struct {
	Name, WhenAt, MealType, Calories, Protein, Carbs, Fat string
}

// Meals is the meals table.
var Meals = meals{
	Name:     "meals",
	WhenAt:   "when_at",
	MealType: "meal_type",
	Calories: "calories",
	Protein:  "protein",
	Carbs:    "carbs",
	Fat:      "fat",
}

func (t meals) Columns() []string {
	return []string{ID, UserID, t.WhenAt, t.MealType, t.Calories, t.Protein, t.Carbs, t.Fat, Note, CreatedAt}
}

type measurements struct {
	Name, WeightKg, BodyFatPct, WaistCm, HipCm string
}

// Measurements is the measurements table.
var Measurements = measurements{
	Name:       "measurements",
	WeightKg:   "weight_kg",
	BodyFatPct: "body_fat_pct",
	WaistCm:    "waist_cm",
	HipCm:      "hip_cm",
}

func (t measurements) Columns() []string {
	return []string{ID, UserID, t.WeightKg, t.BodyFatPct, t.WaistCm, t.HipCm, Note, CreatedAt}
}

type goals struct {
	Name, Title, Metric, Target, DueDate, Completed string
}

// Goals is the goals table.
var Goals = goals{
	Name:      "goals",
	Title:     "title",
	Metric:    "metric",
	Target:    "target",
	DueDate:   "due_date",
	Completed: "completed",
}

func (t goals) Columns() []string {
	return []string{ID, UserID, t.Title, t.Metric, t.Target, t.DueDate, t.Completed, CreatedAt}
}

type reminders struct {
	Name, Title, At, RepeatRule, Sent string
}

// Reminders is the reminders table.
var Reminders = reminders{
	Name:       "reminders",
	Title:      "title",
	At:         "at",
	RepeatRule: "repeat_rule",
	Sent:       "sent",
}

func (t reminders) Columns() []string {
	return []string{ID, UserID, t.Title, t.At, t.RepeatRule, Note, t.Sent, CreatedAt}
}

type events struct {
	Name, SessionID, Event, Props, UserAgent, IP string
}

// Events is the analytics events table.
var Events = events{
	Name:      "events",
	SessionID: "session_id",
	Event:     "event",
	Props:     "props",
	UserAgent: "user_agent",
	IP:        "ip",
}

func (t events) Columns() []string {
	return []string{ID, UserID, t.SessionID, t.Event, t.Props, t.UserAgent, t.IP, CreatedAt}
}
