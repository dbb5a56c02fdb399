package tracking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
)

const (
	MaxNoteLen  = 512
	MaxLabelLen = 32
	MaxTitleLen = 200
)

// CreateVitalInput holds the parameters for logging vital signs.
type CreateVitalInput struct {
	HeartRate   *float64
	Systolic    *float64
	Diastolic   *float64
	SpO2        *float64
	Temperature *float64
	Mood        *string
	Note        *string
	CreatedAt   *time.Time // nil = now
}

// Validate checks all fields and collects all errors.
func (i CreateVitalInput) Validate() error {
	var v validator
	v.between("heartRate", i.HeartRate, 20, 250)
	v.between("systolic", i.Systolic, 60, 250)
	v.between("diastolic", i.Diastolic, 30, 180)
	v.between("spo2", i.SpO2, 50, 100)
	v.between("temperature", i.Temperature, 30, 45)
	v.maxLen("mood", i.Mood, MaxLabelLen)
	v.maxLen("note", i.Note, MaxNoteLen)
	return v.err()
}

// CreateWorkoutInput holds the parameters for logging a workout.
type CreateWorkoutInput struct {
	Type        string
	DurationMin *float64
	Calories    *float64
	DistanceKm  *float64
	Intensity   *string
	Note        *string
	StartedAt   *time.Time
}

// Validate checks all fields and collects all errors.
func (i CreateWorkoutInput) Validate() error {
	var v validator
	typ := strings.TrimSpace(i.Type)
	if typ == "" {
		v.add("type", "required")
	}
	v.maxLen("type", &typ, MaxLabelLen)
	if i.DurationMin == nil {
		v.add("durationMin", "required")
	}
	v.nonNegative("durationMin", i.DurationMin)
	v.nonNegative("calories", i.Calories)
	v.nonNegative("distanceKm", i.DistanceKm)
	v.maxLen("intensity", i.Intensity, MaxLabelLen)
	v.maxLen("note", i.Note, MaxNoteLen)
	v.required("startedAt", i.StartedAt)
	return v.err()
}

// CreateSleepInput holds the parameters for logging a sleep period.
// End before Start is accepted.
type CreateSleepInput struct {
	Start      *time.Time
	End        *time.Time
	Quality    *float64
	Awakenings *int
	Note       *string
}

// Validate checks all fields and collects all errors.
func (i CreateSleepInput) Validate() error {
	var v validator
	v.required("start", i.Start)
	v.required("end", i.End)
	v.between("quality", i.Quality, 1, 5)
	if i.Awakenings != nil && *i.Awakenings < 0 {
		v.add("awakenings", "must be >= 0")
	}
	v.maxLen("note", i.Note, MaxNoteLen)
	return v.err()
}

// CreateMealInput holds the parameters for logging a meal.
type CreateMealInput struct {
	WhenAt   *time.Time
	MealType *string
	Calories *float64
	Protein  *float64
	Carbs    *float64
	Fat      *float64
	Note     *string
}

// Validate checks all fields and collects all errors.
func (i CreateMealInput) Validate() error {
	var v validator
	v.required("whenAt", i.WhenAt)
	v.maxLen("mealType", i.MealType, MaxLabelLen)
	v.nonNegative("calories", i.Calories)
	v.nonNegative("protein", i.Protein)
	v.nonNegative("carbs", i.Carbs)
	v.nonNegative("fat", i.Fat)
	v.maxLen("note", i.Note, MaxNoteLen)
	return v.err()
}

// CreateMeasurementInput holds the parameters for logging body measurements.
type CreateMeasurementInput struct {
	WeightKg   *float64
	BodyFatPct *float64
	WaistCm    *float64
	HipCm      *float64
	Note       *string
	CreatedAt  *time.Time // nil = now
}

// Validate checks all fields and collects all errors.
func (i CreateMeasurementInput) Validate() error {
	var v validator
	v.nonNegative("weightKg", i.WeightKg)
	v.between("bodyFatPct", i.BodyFatPct, 0, 100)
	v.nonNegative("waistCm", i.WaistCm)
	v.nonNegative("hipCm", i.HipCm)
	v.maxLen("note", i.Note, MaxNoteLen)
	return v.err()
}

// CreateGoalInput holds the parameters for creating a goal.
type CreateGoalInput struct {
	Title   string
	Metric  *string
	Target  *float64
	DueDate *time.Time
}

// Validate checks all fields and collects all errors.
func (i CreateGoalInput) Validate() error {
	var v validator
	v.title(i.Title)
	v.maxLen("metric", i.Metric, MaxLabelLen)
	return v.err()
}

// CreateReminderInput holds the parameters for creating a reminder.
type CreateReminderInput struct {
	Title      string
	At         *time.Time
	RepeatRule *string
	Note       *string
}

// Validate checks all fields and collects all errors.
func (i CreateReminderInput) Validate() error {
	var v validator
	v.title(i.Title)
	v.required("at", i.At)
	v.maxLen("repeatRule", i.RepeatRule, MaxLabelLen)
	v.maxLen("note", i.Note, MaxNoteLen)
	return v.err()
}

// validator collects field errors.
type validator struct {
	errs []domain.FieldError
}

func (v *validator) add(field, message string) {
	v.errs = append(v.errs, domain.FieldError{Field: field, Message: message})
}

func (v *validator) between(field string, x *float64, lo, hi float64) {
	if x != nil && (*x < lo || *x > hi) {
		v.add(field, fmt.Sprintf("must be between %g and %g", lo, hi))
	}
}

func (v *validator) nonNegative(field string, x *float64) {
	if x != nil && *x < 0 {
		v.add(field, "must be >= 0")
	}
}

func (v *validator) maxLen(field string, s *string, n int) {
	if s != nil && utf8.RuneCountInString(strings.TrimSpace(*s)) > n {
		v.add(field, fmt.Sprintf("max %d characters", n))
	}
}

func (v *validator) required(field string, t *time.Time) {
	if t == nil || t.IsZero() {
		v.add(field, "required")
	}
}

func (v *validator) title(title string) {
	t := strings.TrimSpace(title)
	if t == "" {
		v.add("title", "required")
	}
	v.maxLen("title", &t, MaxTitleLen)
}

func (v *validator) err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return domain.NewValidationErrors(v.errs)
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func utcOr(t *time.Time, fallback time.Time) time.Time {
	if t == nil || t.IsZero() {
		return fallback.UTC()
	}
	return t.UTC()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
