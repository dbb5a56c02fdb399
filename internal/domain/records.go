package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vital is a point-in-time reading of vital signs. Every reading is optional.
type Vital struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	HeartRate   *float64
	Systolic    *float64
	Diastolic   *float64
	SpO2        *float64
	Temperature *float64
	Mood        *string
	Note        *string
	CreatedAt   time.Time
}

// Workout is a single training session.
type Workout struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        string
	DurationMin float64
	Calories    *float64
	DistanceKm  *float64
	Intensity   *string
	Note        *string
	StartedAt   time.Time
	CreatedAt   time.Time
}

// Sleep is one sleep period. End may precede Start; such entries are
// stored as given and filtered where a duration must be positive.
type Sleep struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Start      time.Time
	End        time.Time
	Quality    *float64
	Awakenings *int
	Note       *string
	CreatedAt  time.Time
}

// Duration returns End minus Start, which may be zero or negative.
func (s Sleep) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Meal is a logged meal with optional macro-nutrients.
type Meal struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	WhenAt    time.Time
	MealType  *string
	Calories  *float64
	Protein   *float64
	Carbs     *float64
	Fat       *float64
	Note      *string
	CreatedAt time.Time
}

// Measurement is a body measurement snapshot.
type Measurement struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	WeightKg   *float64
	BodyFatPct *float64
	WaistCm    *float64
	HipCm      *float64
	Note       *string
	CreatedAt  time.Time
}

// Goal is a user goal. Completed only ever moves from false to true.
type Goal struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Metric    *string
	Target    *float64
	DueDate   *time.Time
	Completed bool
	CreatedAt time.Time
}

// Reminder is a scheduled reminder. Sent only ever moves from false to true.
type Reminder struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Title      string
	At         time.Time
	RepeatRule *string
	Note       *string
	Sent       bool
	CreatedAt  time.Time
}

// Event is an analytics event. UserID is nil for anonymous clients.
type Event struct {
	ID        uuid.UUID
	UserID    *uuid.UUID
	SessionID *string
	Event     string
	Props     *string
	UserAgent *string
	IP        *string
	CreatedAt time.Time
}
