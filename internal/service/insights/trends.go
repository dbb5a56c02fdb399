package insights

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/query"
	"github.com/heartmarshall/healthtrack-backend/internal/schema"
)

// Trends returns the heart, sleep and workout series of the current user,
// each over its own most recent days that have data, ascending by day.
// days is clamped to the configured bounds; 0 selects the default.
func (s *Service) Trends(ctx context.Context, days int) (domain.Trends, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return domain.Trends{}, err
	}
	days = s.cfg.ClampTrendDays(days)

	return cached(ctx, s, userID, "trends:"+strconv.Itoa(days), func() (domain.Trends, error) {
		var (
			vitals   []domain.Vital
			sleep    []domain.Sleep
			workouts []domain.Workout
		)

		owned := query.Eq{Column: schema.UserID, Value: userID}
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			withHR := query.And{owned, query.NotNull{Column: schema.Vitals.HeartRate}}
			vitals, err = s.readers.Vitals.FindRecentDays(gctx, withHR, days)
			return err
		})
		g.Go(func() (err error) {
			sleep, err = s.readers.Sleep.FindRecentDays(gctx, owned, days)
			return err
		})
		g.Go(func() (err error) {
			workouts, err = s.readers.Workouts.FindRecentDays(gctx, owned, days)
			return err
		})
		if err := g.Wait(); err != nil {
			return domain.Trends{}, fmt.Errorf("trends: %w", err)
		}

		return domain.Trends{
			Heart:    heartSeries(vitals),
			Sleep:    sleepSeries(sleep),
			Workouts: workoutSeries(workouts),
		}, nil
	})
}

func heartSeries(vs []domain.Vital) []domain.HeartPoint {
	b := newBuckets[mean]()
	for _, v := range vs {
		if v.HeartRate != nil {
			b.at(domain.DayOf(v.CreatedAt)).addValue(*v.HeartRate)
		}
	}

	out := make([]domain.HeartPoint, 0, len(b.by))
	for _, day := range b.days() {
		m := b.by[day]
		out = append(out, domain.HeartPoint{Day: day, AvgHR: round(m.value(), 1), Count: m.n})
	}
	return out
}

// sleepSeries buckets by the day of Start and sums every duration,
// non-positive ones included.
func sleepSeries(ss []domain.Sleep) []domain.SleepPoint {
	b := newBuckets[time.Duration]()
	for _, s := range ss {
		*b.at(domain.DayOf(s.Start)) += s.Duration()
	}

	out := make([]domain.SleepPoint, 0, len(b.by))
	for _, day := range b.days() {
		out = append(out, domain.SleepPoint{Day: day, Hours: round(b.by[day].Hours(), 2)})
	}
	return out
}

func workoutSeries(ws []domain.Workout) []domain.WorkoutPoint {
	b := newBuckets[float64]()
	for _, w := range ws {
		*b.at(domain.DayOf(w.StartedAt)) += w.DurationMin
	}

	out := make([]domain.WorkoutPoint, 0, len(b.by))
	for _, day := range b.days() {
		out = append(out, domain.WorkoutPoint{Day: day, TotalMin: *b.by[day]})
	}
	return out
}

func bound(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339Nano)
}
