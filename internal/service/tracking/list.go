package tracking

import (
	"context"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
)

func (s *Service) ListVitals(ctx context.Context, p domain.ListParams) (domain.Page[domain.Vital], error) {
	return list(ctx, s, domain.KindVitals, s.repos.Vitals, p)
}

func (s *Service) ListWorkouts(ctx context.Context, p domain.ListParams) (domain.Page[domain.Workout], error) {
	return list(ctx, s, domain.KindWorkouts, s.repos.Workouts, p)
}

func (s *Service) ListSleep(ctx context.Context, p domain.ListParams) (domain.Page[domain.Sleep], error) {
	return list(ctx, s, domain.KindSleep, s.repos.Sleep, p)
}

func (s *Service) ListMeals(ctx context.Context, p domain.ListParams) (domain.Page[domain.Meal], error) {
	return list(ctx, s, domain.KindMeals, s.repos.Meals, p)
}

func (s *Service) ListMeasurements(ctx context.Context, p domain.ListParams) (domain.Page[domain.Measurement], error) {
	return list(ctx, s, domain.KindMeasurements, s.repos.Measurements, p)
}

func (s *Service) ListGoals(ctx context.Context, p domain.ListParams) (domain.Page[domain.Goal], error) {
	return list[domain.Goal](ctx, s, domain.KindGoals, s.repos.Goals, p)
}

func (s *Service) ListReminders(ctx context.Context, p domain.ListParams) (domain.Page[domain.Reminder], error) {
	return list[domain.Reminder](ctx, s, domain.KindReminders, s.repos.Reminders, p)
}
