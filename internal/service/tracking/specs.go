package tracking

import (
	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/schema"
	"github.com/heartmarshall/healthtrack-backend/internal/service/listing"
)

// Specs holds the list configuration of every record kind.
var Specs = map[domain.RecordKind]listing.Spec{
	domain.KindVitals: {
		DateColumn: schema.CreatedAt,
		SortColumns: map[string]string{
			"createdAt":   schema.CreatedAt,
			"heartRate":   schema.Vitals.HeartRate,
			"systolic":    schema.Vitals.Systolic,
			"diastolic":   schema.Vitals.Diastolic,
			"spo2":        schema.Vitals.SpO2,
			"temperature": schema.Vitals.Temperature,
		},
		TextColumns: []string{schema.Vitals.Mood, schema.Note},
	},
	domain.KindWorkouts: {
		DateColumn: schema.Workouts.StartedAt,
		SortColumns: map[string]string{
			"createdAt":   schema.CreatedAt,
			"startedAt":   schema.Workouts.StartedAt,
			"type":        schema.Workouts.Type,
			"durationMin": schema.Workouts.DurationMin,
			"calories":    schema.Workouts.Calories,
			"distanceKm":  schema.Workouts.DistanceKm,
		},
		TextColumns: []string{schema.Workouts.Type, schema.Workouts.Intensity, schema.Note},
	},
	domain.KindSleep: {
		DateColumn: schema.Sleep.StartAt,
		SortColumns: map[string]string{
			"createdAt": schema.CreatedAt,
			"start":     schema.Sleep.StartAt,
			"end":       schema.Sleep.EndAt,
			"quality":   schema.Sleep.Quality,
		},
		TextColumns: []string{schema.Note},
	},
	domain.KindMeals: {
		DateColumn: schema.Meals.WhenAt,
		SortColumns: map[string]string{
			"createdAt": schema.CreatedAt,
			"whenAt":    schema.Meals.WhenAt,
			"calories":  schema.Meals.Calories,
			"protein":   schema.Meals.Protein,
			"carbs":     schema.Meals.Carbs,
			"fat":       schema.Meals.Fat,
		},
		TextColumns: []string{schema.Meals.MealType, schema.Note},
	},
	domain.KindMeasurements: {
		DateColumn: schema.CreatedAt,
		SortColumns: map[string]string{
			"createdAt":  schema.CreatedAt,
			"weightKg":   schema.Measurements.WeightKg,
			"bodyFatPct": schema.Measurements.BodyFatPct,
			"waistCm":    schema.Measurements.WaistCm,
			"hipCm":      schema.Measurements.HipCm,
		},
		TextColumns: []string{schema.Note},
	},
	domain.KindGoals: {
		DateColumn: schema.CreatedAt,
		SortColumns: map[string]string{
			"createdAt": schema.CreatedAt,
			"title":     schema.Goals.Title,
			"dueDate":   schema.Goals.DueDate,
			"target":    schema.Goals.Target,
		},
	},
	domain.KindReminders: {
		DateColumn: schema.Reminders.At,
		SortColumns: map[string]string{
			"createdAt": schema.CreatedAt,
			"at":        schema.Reminders.At,
			"title":     schema.Reminders.Title,
		},
		TextColumns: []string{schema.Note},
	},
}
