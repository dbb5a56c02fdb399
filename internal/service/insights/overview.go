package insights

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/query"
	"github.com/heartmarshall/healthtrack-backend/internal/schema"
)

// Overview summarises the current user's most recent records inside the
// optional inclusive window.
func (s *Service) Overview(ctx context.Context, w domain.Window) (domain.Overview, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return domain.Overview{}, err
	}

	return cached(ctx, s, userID, overviewKey(w), func() (domain.Overview, error) {
		var (
			vitals   []domain.Vital
			workouts []domain.Workout
			sleep    []domain.Sleep
			meals    []domain.Meal
		)

		owned := query.Eq{Column: schema.UserID, Value: userID}
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			vitals, err = recent(gctx, s.readers.Vitals, owned, w, schema.CreatedAt, s.cfg.VitalsLimit)
			return err
		})
		g.Go(func() (err error) {
			workouts, err = recent(gctx, s.readers.Workouts, owned, w, schema.Workouts.StartedAt, s.cfg.WorkoutsLimit)
			return err
		})
		g.Go(func() (err error) {
			sleep, err = recent(gctx, s.readers.Sleep, owned, w, schema.Sleep.StartAt, s.cfg.SleepLimit)
			return err
		})
		g.Go(func() (err error) {
			meals, err = recent(gctx, s.readers.Meals, owned, w, schema.Meals.WhenAt, s.cfg.MealsLimit)
			return err
		})
		if err := g.Wait(); err != nil {
			return domain.Overview{}, fmt.Errorf("overview: %w", err)
		}

		return domain.Overview{
			Vitals:    summarizeVitals(vitals),
			Workouts:  summarizeWorkouts(workouts),
			Sleep:     summarizeSleep(sleep),
			Nutrition: summarizeMeals(meals),
		}, nil
	})
}

// recent fetches at most limit rows inside w, newest first.
func recent[T any](ctx context.Context, r recordReader[T], owned query.Predicate, w domain.Window, dateColumn string, limit int) ([]T, error) {
	where := query.And{owned, query.Range{Column: dateColumn, From: w.From, To: w.To}}
	order := []query.Order{query.Desc(dateColumn), query.Desc(schema.ID)}
	return r.Find(ctx, where, order, limit, 0)
}

func summarizeVitals(vs []domain.Vital) domain.VitalsSummary {
	var hr, sys, dia, spo2, temp mean
	for _, v := range vs {
		hr.add(v.HeartRate)
		sys.add(v.Systolic)
		dia.add(v.Diastolic)
		spo2.add(v.SpO2)
		temp.add(v.Temperature)
	}
	return domain.VitalsSummary{
		AvgHeartRate: roundInt(hr.value()),
		AvgBP: domain.BloodPressure{
			Systolic:  roundInt(sys.value()),
			Diastolic: roundInt(dia.value()),
		},
		AvgSpO2: roundInt(spo2.value()),
		AvgTemp: round(temp.value(), 1),
	}
}

func summarizeWorkouts(ws []domain.Workout) domain.WorkoutsSummary {
	var minutes, calories float64
	for _, w := range ws {
		minutes += w.DurationMin
		calories += total(w.Calories)
	}
	return domain.WorkoutsSummary{
		Sessions:      len(ws),
		TotalMinutes:  roundInt(minutes),
		TotalCalories: roundInt(calories),
	}
}

// summarizeSleep averages hours over entries with a positive duration only.
func summarizeSleep(ss []domain.Sleep) domain.SleepSummary {
	var hours, quality mean
	for _, s := range ss {
		if d := s.Duration(); d > 0 {
			hours.addValue(d.Hours())
		}
		quality.add(s.Quality)
	}
	return domain.SleepSummary{
		Entries:    len(ss),
		AvgHours:   round(hours.value(), 2),
		AvgQuality: round(quality.value(), 2),
	}
}

func summarizeMeals(ms []domain.Meal) domain.NutritionSummary {
	days := make(map[string]struct{})
	var calories float64
	var protein, carbs, fat mean
	for _, m := range ms {
		days[domain.DayOf(m.WhenAt)] = struct{}{}
		calories += total(m.Calories)
		protein.add(m.Protein)
		carbs.add(m.Carbs)
		fat.add(m.Fat)
	}
	return domain.NutritionSummary{
		Days:          len(days),
		TotalCalories: roundInt(calories),
		AvgProtein:    round(protein.value(), 1),
		AvgCarbs:      round(carbs.value(), 1),
		AvgFat:        round(fat.value(), 1),
	}
}

func overviewKey(w domain.Window) string {
	return "overview:" + bound(w.From) + ":" + bound(w.To)
}
