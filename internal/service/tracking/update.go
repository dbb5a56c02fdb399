package tracking

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/metrics"
)

type deleter interface {
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// Delete removes one of the current user's records. A missing or foreign
// record yields domain.ErrNotFound.
func (s *Service) Delete(ctx context.Context, kind domain.RecordKind, id uuid.UUID) error {
	userID, err := s.userID(ctx)
	if err != nil {
		return err
	}

	repo, err := s.deleterFor(kind)
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}

	s.invalidate(ctx, userID)
	metrics.RecordWrite(kind.String(), "delete")
	s.log.InfoContext(ctx, "record deleted",
		slog.String("kind", kind.String()),
		slog.String("id", id.String()),
		slog.String("user_id", userID.String()),
	)
	return nil
}

// CompleteGoal marks the goal completed. Completing twice is not an error.
func (s *Service) CompleteGoal(ctx context.Context, id uuid.UUID) (domain.Goal, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return domain.Goal{}, err
	}
	g, err := s.repos.Goals.Complete(ctx, userID, id)
	if err != nil {
		return domain.Goal{}, fmt.Errorf("complete goal: %w", err)
	}
	return g, nil
}

// MarkReminderSent marks the reminder as sent. Marking twice is not an error.
func (s *Service) MarkReminderSent(ctx context.Context, id uuid.UUID) (domain.Reminder, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return domain.Reminder{}, err
	}
	r, err := s.repos.Reminders.MarkSent(ctx, userID, id)
	if err != nil {
		return domain.Reminder{}, fmt.Errorf("mark reminder sent: %w", err)
	}
	return r, nil
}

func (s *Service) deleterFor(kind domain.RecordKind) (deleter, error) {
	switch kind {
	case domain.KindVitals:
		return s.repos.Vitals, nil
	case domain.KindWorkouts:
		return s.repos.Workouts, nil
	case domain.KindSleep:
		return s.repos.Sleep, nil
	case domain.KindMeals:
		return s.repos.Meals, nil
	case domain.KindMeasurements:
		return s.repos.Measurements, nil
	case domain.KindGoals:
		return s.repos.Goals, nil
	case domain.KindReminders:
		return s.repos.Reminders, nil
	}
	return nil, domain.NewValidationError("kind", fmt.Sprintf("unknown record kind %q", kind))
}
