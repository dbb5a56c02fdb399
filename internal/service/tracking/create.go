package tracking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
)

// CreateVital logs a vitals reading for the current user.
func (s *Service) CreateVital(ctx context.Context, in CreateVitalInput) (domain.Vital, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return domain.Vital{}, err
	}
	if err := in.Validate(); err != nil {
		return domain.Vital{}, err
	}

	return create(ctx, s, domain.KindVitals, s.repos.Vitals, userID, domain.Vital{
		ID:          uuid.New(),
		UserID:      userID,
		HeartRate:   in.HeartRate,
		Systolic:    in.Systolic,
		Diastolic:   in.Diastolic,
		SpO2:        in.SpO2,
		Temperature: in.Temperature,
		Mood:        trimOrNil(in.Mood),
		Note:        trimOrNil(in.Note),
		CreatedAt:   utcOr(in.CreatedAt, time.Now()),
	})
}

// CreateWorkout logs a workout for the current user.
func (s *Service) CreateWorkout(ctx context.Context, in CreateWorkoutInput) (domain.Workout, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return domain.Workout{}, err
	}
	if err := in.Validate(); err != nil {
		return domain.Workout{}, err
	}

	return create(ctx, s, domain.KindWorkouts, s.repos.Workouts, userID, domain.Workout{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        strings.TrimSpace(in.Type),
		DurationMin: *in.DurationMin,
		Calories:    in.Calories,
		DistanceKm:  in.DistanceKm,
		Intensity:   trimOrNil(in.Intensity),
		Note:        trimOrNil(in.Note),
		StartedAt:   in.StartedAt.UTC(),
		CreatedAt:   time.Now().UTC(),
	})
}

// CreateSleep logs a sleep period for the current user.
func (s *Service) CreateSleep(ctx context.Context, in CreateSleepInput) (domain.Sleep, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return domain.Sleep{}, err
	}
	if err := in.Validate(); err != nil {
		return domain.Sleep{}, err
	}

	return create(ctx, s, domain.KindSleep, s.repos.Sleep, userID, domain.Sleep{
		ID:         uuid.New(),
		UserID:     userID,
		Start:      in.Start.UTC(),
		End:        in.End.UTC(),
		Quality:    in.Quality,
		Awakenings: in.Awakenings,
		Note:       trimOrNil(in.Note),
		CreatedAt:  time.Now().UTC(),
	})
}

// CreateMeal logs a meal for the current user.
func (s *Service) CreateMeal(ctx context.Context, in CreateMealInput) (domain.Meal, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return domain.Meal{}, err
	}
	if err := in.Validate(); err != nil {
		return domain.Meal{}, err
	}

	return create(ctx, s, domain.KindMeals, s.repos.Meals, userID, domain.Meal{
		ID:        uuid.New(),
		UserID:    userID,
		WhenAt:    in.WhenAt.UTC(),
		MealType:  trimOrNil(in.MealType),
		Calories:  in.Calories,
		Protein:   in.Protein,
		Carbs:     in.Carbs,
		Fat:       in.Fat,
		Note:      trimOrNil(in.Note),
		CreatedAt: time.Now().UTC(),
	})
}

// CreateMeasurement logs body measurements for the current user.
func (s *Service) CreateMeasurement(ctx context.Context, in CreateMeasurementInput) (domain.Measurement, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return domain.Measurement{}, err
	}
	if err := in.Validate(); err != nil {
		return domain.Measurement{}, err
	}

	return create(ctx, s, domain.KindMeasurements, s.repos.Measurements, userID, domain.Measurement{
		ID:         uuid.New(),
		UserID:     userID,
		WeightKg:   in.WeightKg,
		BodyFatPct: in.BodyFatPct,
		WaistCm:    in.WaistCm,
		HipCm:      in.HipCm,
		Note:       trimOrNil(in.Note),
		CreatedAt:  utcOr(in.CreatedAt, time.Now()),
	})
}

// CreateGoal creates an open goal for the current user.
func (s *Service) CreateGoal(ctx context.Context, in CreateGoalInput) (domain.Goal, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return domain.Goal{}, err
	}
	if err := in.Validate(); err != nil {
		return domain.Goal{}, err
	}

	return create[domain.Goal](ctx, s, domain.KindGoals, s.repos.Goals, userID, domain.Goal{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     strings.TrimSpace(in.Title),
		Metric:    trimOrNil(in.Metric),
		Target:    in.Target,
		DueDate:   utcPtr(in.DueDate),
		CreatedAt: time.Now().UTC(),
	})
}

// CreateReminder schedules a reminder for the current user.
func (s *Service) CreateReminder(ctx context.Context, in CreateReminderInput) (domain.Reminder, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return domain.Reminder{}, err
	}
	if err := in.Validate(); err != nil {
		return domain.Reminder{}, err
	}

	return create[domain.Reminder](ctx, s, domain.KindReminders, s.repos.Reminders, userID, domain.Reminder{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      strings.TrimSpace(in.Title),
		At:         in.At.UTC(),
		RepeatRule: trimOrNil(in.RepeatRule),
		Note:       trimOrNil(in.Note),
		CreatedAt:  time.Now().UTC(),
	})
}
