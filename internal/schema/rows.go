package schema

import (
	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/query"
)

// The functions below expose records as column-addressed rows so that
// predicates can be evaluated in memory with query.Match.

func VitalRow(v domain.Vital) query.Row {
	return query.Columns{
		ID: v.ID, UserID: v.UserID,
		Vitals.HeartRate: v.HeartRate, Vitals.Systolic: v.Systolic, Vitals.Diastolic: v.Diastolic,
		Vitals.SpO2: v.SpO2, Vitals.Temperature: v.Temperature, Vitals.Mood: v.Mood,
		Note: v.Note, CreatedAt: v.CreatedAt,
	}
}

func WorkoutRow(w domain.Workout) query.Row {
	return query.Columns{
		ID: w.ID, UserID: w.UserID,
		Workouts.Type: w.Type, Workouts.DurationMin: w.DurationMin, Workouts.Calories: w.Calories,
		Workouts.DistanceKm: w.DistanceKm, Workouts.Intensity: w.Intensity,
		Note: w.Note, Workouts.StartedAt: w.StartedAt, CreatedAt: w.CreatedAt,
	}
}

func SleepRow(s domain.Sleep) query.Row {
	return query.Columns{
		ID: s.ID, UserID: s.UserID,
		Sleep.StartAt: s.Start, Sleep.EndAt: s.End, Sleep.Quality: s.Quality, Sleep.Awakenings: s.Awakenings,
		Note: s.Note, CreatedAt: s.CreatedAt,
	}
}

func MealRow(m domain.Meal) query.Row {
	return query.Columns{
		ID: m.ID, UserID: m.UserID,
		Meals.WhenAt: m.WhenAt, Meals.MealType: m.MealType, Meals.Calories: m.Calories,
		Meals.Protein: m.Protein, Meals.Carbs: m.Carbs, Meals.Fat: m.Fat,
		Note: m.Note, CreatedAt: m.CreatedAt,
	}
}

func MeasurementRow(m domain.Measurement) query.Row {
	return query.Columns{
		ID: m.ID, UserID: m.UserID,
		Measurements.WeightKg: m.WeightKg, Measurements.BodyFatPct: m.BodyFatPct,
		Measurements.WaistCm: m.WaistCm, Measurements.HipCm: m.HipCm,
		Note: m.Note, CreatedAt: m.CreatedAt,
	}
}

func GoalRow(g domain.Goal) query.Row {
	return query.Columns{
		ID: g.ID, UserID: g.UserID,
		Goals.Title: g.Title, Goals.Metric: g.Metric, Goals.Target: g.Target,
		Goals.DueDate: g.DueDate, Goals.Completed: g.Completed, CreatedAt: g.CreatedAt,
	}
}

func ReminderRow(r domain.Reminder) query.Row {
	return query.Columns{
		ID: r.ID, UserID: r.UserID,
		Reminders.Title: r.Title, Reminders.At: r.At, Reminders.RepeatRule: r.RepeatRule,
		Note: r.Note, Reminders.Sent: r.Sent, CreatedAt: r.CreatedAt,
	}
}

func EventRow(e domain.Event) query.Row {
	return query.Columns{
		ID: e.ID, UserID: e.UserID,
		Events.SessionID: e.SessionID, Events.Event: e.Event, Events.Props: e.Props,
		Events.UserAgent: e.UserAgent, Events.IP: e.IP, CreatedAt: e.CreatedAt,
	}
}
