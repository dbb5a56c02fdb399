package insights_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/healthtrack-backend/internal/config"
	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/query/memtable"
	"github.com/heartmarshall/healthtrack-backend/internal/schema"
	"github.com/heartmarshall/healthtrack-backend/internal/service/insights"
	"github.com/heartmarshall/healthtrack-backend/pkg/ctxutil"
)

type store struct {
	vitals   *memtable.Table[domain.Vital]
	workouts *memtable.Table[domain.Workout]
	sleep    *memtable.Table[domain.Sleep]
	meals    *memtable.Table[domain.Meal]
}

func newStore() store {
	return store{
		vitals:   memtable.New(schema.CreatedAt, schema.VitalRow),
		workouts: memtable.New(schema.Workouts.StartedAt, schema.WorkoutRow),
		sleep:    memtable.New(schema.Sleep.StartAt, schema.SleepRow),
		meals:    memtable.New(schema.Meals.WhenAt, schema.MealRow),
	}
}

func defaultConfig() config.InsightsConfig {
	return config.InsightsConfig{
		VitalsLimit:      500,
		WorkoutsLimit:    500,
		SleepLimit:       200,
		MealsLimit:       500,
		TrendDaysDefault: 30,
		TrendDaysMin:     7,
		TrendDaysMax:     60,
	}
}

func newService(st store, cfg config.InsightsConfig, cache *cacheMock) *insights.Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	readers := insights.Readers{
		Vitals:   st.vitals,
		Workouts: st.workouts,
		Sleep:    st.sleep,
		Meals:    st.meals,
	}
	if cache == nil {
		return insights.NewService(log, readers, cfg, nil)
	}
	return insights.NewService(log, readers, cfg, cache)
}

type cacheMock struct {
	GetFunc func(key string, dst any) bool
	version int64
	sets    []string
	setVers []int64
}

func (m *cacheMock) Get(_ context.Context, _ uuid.UUID, key string, dst any) (int64, bool) {
	if m.GetFunc == nil {
		return m.version, false
	}
	return m.version, m.GetFunc(key, dst)
}

func (m *cacheMock) Set(_ context.Context, _ uuid.UUID, ver int64, key string, _ any) {
	m.sets = append(m.sets, key)
	m.setVers = append(m.setVers, ver)
}

func ptr[T any](v T) *T { return &v }

func at(day, hour int) time.Time {
	return time.Date(2024, time.March, day, hour, 0, 0, 0, time.UTC)
}

func TestOverview_VitalRoundTrip(t *testing.T) {
	t.Parallel()
	st := newStore()
	userID := uuid.New()
	st.vitals.Add(domain.Vital{ID: uuid.New(), UserID: userID, HeartRate: ptr(72.0), SpO2: ptr(98.0), CreatedAt: at(1, 9)})

	got, err := newService(st, defaultConfig(), nil).Overview(ctxutil.WithUserID(context.Background(), userID), domain.Window{})
	require.NoError(t, err)

	assert.Equal(t, 72, got.Vitals.AvgHeartRate)
	assert.Equal(t, 98, got.Vitals.AvgSpO2)
	assert.Zero(t, got.Vitals.AvgBP.Systolic)
	assert.Zero(t, got.Vitals.AvgTemp)
}

func TestOverview_Empty(t *testing.T) {
	t.Parallel()
	st := newStore()
	st.vitals.Add(domain.Vital{ID: uuid.New(), UserID: uuid.New(), HeartRate: ptr(90.0), CreatedAt: at(1, 9)})

	got, err := newService(st, defaultConfig(), nil).Overview(ctxutil.WithUserID(context.Background(), uuid.New()), domain.Window{})
	require.NoError(t, err)
	assert.Equal(t, domain.Overview{}, got)
}

func TestOverview_Aggregates(t *testing.T) {
	t.Parallel()
	st := newStore()
	u := uuid.New()

	st.vitals.Add(
		domain.Vital{ID: uuid.New(), UserID: u, HeartRate: ptr(70.0), Systolic: ptr(120.0), Diastolic: ptr(80.0), Temperature: ptr(36.6), CreatedAt: at(1, 8)},
		domain.Vital{ID: uuid.New(), UserID: u, HeartRate: ptr(75.0), Systolic: ptr(121.0), Temperature: ptr(36.8), CreatedAt: at(2, 8)},
		domain.Vital{ID: uuid.New(), UserID: u, Mood: ptr("ok"), CreatedAt: at(3, 8)},
	)
	st.workouts.Add(
		domain.Workout{ID: uuid.New(), UserID: u, Type: "run", DurationMin: 30.4, Calories: ptr(250.0), StartedAt: at(1, 7)},
		domain.Workout{ID: uuid.New(), UserID: u, Type: "yoga", DurationMin: 45.3, StartedAt: at(2, 7)},
	)
	st.sleep.Add(
		domain.Sleep{ID: uuid.New(), UserID: u, Start: at(1, 23), End: at(2, 6), Quality: ptr(4.0)},
		domain.Sleep{ID: uuid.New(), UserID: u, Start: at(2, 22), End: at(3, 6), Quality: ptr(3.0)},
		domain.Sleep{ID: uuid.New(), UserID: u, Start: at(4, 8), End: at(4, 7)},
	)
	st.meals.Add(
		domain.Meal{ID: uuid.New(), UserID: u, WhenAt: at(1, 8), Calories: ptr(400.0), Protein: ptr(20.0), Carbs: ptr(50.0)},
		domain.Meal{ID: uuid.New(), UserID: u, WhenAt: at(1, 13), Calories: ptr(700.4), Protein: ptr(35.0), Fat: ptr(12.0)},
		domain.Meal{ID: uuid.New(), UserID: u, WhenAt: at(2, 19), Calories: ptr(600.0)},
	)

	got, err := newService(st, defaultConfig(), nil).Overview(ctxutil.WithUserID(context.Background(), u), domain.Window{})
	require.NoError(t, err)

	assert.Equal(t, domain.VitalsSummary{
		AvgHeartRate: 73,
		AvgBP:        domain.BloodPressure{Systolic: 121, Diastolic: 80},
		AvgTemp:      36.7,
	}, got.Vitals)
	assert.Equal(t, domain.WorkoutsSummary{Sessions: 2, TotalMinutes: 76, TotalCalories: 250}, got.Workouts)

	// The negative entry counts as an entry but not towards the hours.
	assert.Equal(t, 3, got.Sleep.Entries)
	assert.InDelta(t, 7.5, got.Sleep.AvgHours, 1e-9)
	assert.InDelta(t, 3.5, got.Sleep.AvgQuality, 1e-9)

	assert.Equal(t, 2, got.Nutrition.Days)
	assert.Equal(t, 1700, got.Nutrition.TotalCalories)
	assert.InDelta(t, 27.5, got.Nutrition.AvgProtein, 1e-9)
	assert.InDelta(t, 50.0, got.Nutrition.AvgCarbs, 1e-9)
	assert.InDelta(t, 12.0, got.Nutrition.AvgFat, 1e-9)
}

func TestOverview_WindowAndFetchCap(t *testing.T) {
	t.Parallel()
	st := newStore()
	u := uuid.New()
	for day, hr := range map[int]float64{1: 60, 2: 70, 3: 80, 4: 90} {
		st.vitals.Add(domain.Vital{ID: uuid.New(), UserID: u, HeartRate: ptr(hr), CreatedAt: at(day, 12)})
	}
	ctx := ctxutil.WithUserID(context.Background(), u)

	from, to := at(2, 0), at(3, 23)
	got, err := newService(st, defaultConfig(), nil).Overview(ctx, domain.Window{From: &from, To: &to})
	require.NoError(t, err)
	assert.Equal(t, 75, got.Vitals.AvgHeartRate)

	cfg := defaultConfig()
	cfg.VitalsLimit = 2
	got, err = newService(st, cfg, nil).Overview(ctx, domain.Window{})
	require.NoError(t, err)
	assert.Equal(t, 85, got.Vitals.AvgHeartRate, "only the two most recent readings")
}

func TestTrends_SleepBucketedOnStartDay(t *testing.T) {
	t.Parallel()
	st := newStore()
	u := uuid.New()
	st.sleep.Add(domain.Sleep{ID: uuid.New(), UserID: u, Start: at(1, 23), End: at(2, 6)})

	got, err := newService(st, defaultConfig(), nil).Trends(ctxutil.WithUserID(context.Background(), u), 0)
	require.NoError(t, err)
	assert.Equal(t, []domain.SleepPoint{{Day: "2024-03-01", Hours: 7}}, got.Sleep)
}

func TestTrends_SleepIncludesNonPositiveDurations(t *testing.T) {
	t.Parallel()
	st := newStore()
	u := uuid.New()
	st.sleep.Add(
		domain.Sleep{ID: uuid.New(), UserID: u, Start: at(1, 1), End: at(1, 9)},
		domain.Sleep{ID: uuid.New(), UserID: u, Start: at(1, 14), End: at(1, 12)},
		domain.Sleep{ID: uuid.New(), UserID: u, Start: at(2, 10), End: at(2, 10)},
	)
	ctx := ctxutil.WithUserID(context.Background(), u)

	got, err := newService(st, defaultConfig(), nil).Trends(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []domain.SleepPoint{
		{Day: "2024-03-01", Hours: 6},
		{Day: "2024-03-02", Hours: 0},
	}, got.Sleep)

	ov, err := newService(st, defaultConfig(), nil).Overview(ctx, domain.Window{})
	require.NoError(t, err)
	assert.InDelta(t, 8.0, ov.Sleep.AvgHours, 1e-9)
}

func TestTrends_AscendingWithGapsAndLimit(t *testing.T) {
	t.Parallel()
	st := newStore()
	u := uuid.New()

	// Heart data on every other day from Mar 1 to Mar 19: ten days.
	for day := 1; day <= 19; day += 2 {
		st.vitals.Add(
			domain.Vital{ID: uuid.New(), UserID: u, HeartRate: ptr(60.0), CreatedAt: at(day, 8)},
			domain.Vital{ID: uuid.New(), UserID: u, HeartRate: ptr(65.0), CreatedAt: at(day, 20)},
		)
	}
	// A reading without heart rate does not make its day count.
	st.vitals.Add(domain.Vital{ID: uuid.New(), UserID: u, SpO2: ptr(97.0), CreatedAt: at(20, 8)})
	st.workouts.Add(
		domain.Workout{ID: uuid.New(), UserID: u, Type: "run", DurationMin: 20, StartedAt: at(5, 7)},
		domain.Workout{ID: uuid.New(), UserID: u, Type: "bike", DurationMin: 40.5, StartedAt: at(5, 18)},
		domain.Workout{ID: uuid.New(), UserID: u, Type: "swim", DurationMin: 30, StartedAt: at(2, 7)},
	)

	got, err := newService(st, defaultConfig(), nil).Trends(ctxutil.WithUserID(context.Background(), u), 7)
	require.NoError(t, err)

	require.Len(t, got.Heart, 7)
	wantDays := []string{"2024-03-07", "2024-03-09", "2024-03-11", "2024-03-13", "2024-03-15", "2024-03-17", "2024-03-19"}
	for i, p := range got.Heart {
		assert.Equal(t, wantDays[i], p.Day)
		assert.InDelta(t, 62.5, p.AvgHR, 1e-9)
		assert.Equal(t, 2, p.Count)
	}

	assert.Equal(t, []domain.WorkoutPoint{
		{Day: "2024-03-02", TotalMin: 30},
		{Day: "2024-03-05", TotalMin: 60.5},
	}, got.Workouts)
	assert.Empty(t, got.Sleep)
}

func TestTrends_LimitIsClamped(t *testing.T) {
	t.Parallel()
	st := newStore()
	u := uuid.New()
	for day := 1; day <= 10; day++ {
		st.vitals.Add(domain.Vital{ID: uuid.New(), UserID: u, HeartRate: ptr(70.0), CreatedAt: at(day, 8)})
	}

	got, err := newService(st, defaultConfig(), nil).Trends(ctxutil.WithUserID(context.Background(), u), 2)
	require.NoError(t, err)
	assert.Len(t, got.Heart, 7)
}

func TestInsights_StorageError(t *testing.T) {
	t.Parallel()
	st := newStore()
	st.meals.Err = errors.New("connection reset")
	st.sleep.Err = st.meals.Err
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())
	svc := newService(st, defaultConfig(), nil)

	_, err := svc.Overview(ctx, domain.Window{})
	assert.ErrorIs(t, err, st.meals.Err)

	_, err = svc.Trends(ctx, 30)
	assert.ErrorIs(t, err, st.meals.Err)
}

func TestInsights_RequiresUser(t *testing.T) {
	t.Parallel()
	svc := newService(newStore(), defaultConfig(), nil)

	_, err := svc.Overview(context.Background(), domain.Window{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = svc.Trends(context.Background(), 30)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestInsights_Cache(t *testing.T) {
	t.Parallel()
	st := newStore()
	u := uuid.New()
	st.vitals.Add(domain.Vital{ID: uuid.New(), UserID: u, HeartRate: ptr(72.0), CreatedAt: at(1, 9)})
	ctx := ctxutil.WithUserID(context.Background(), u)

	miss := &cacheMock{version: 7}
	_, err := newService(st, defaultConfig(), miss).Trends(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"trends:30"}, miss.sets)
	assert.Equal(t, []int64{7}, miss.setVers, "stores under the version seen by the lookup")

	hit := &cacheMock{GetFunc: func(key string, dst any) bool {
		ov, ok := dst.(*domain.Overview)
		if !ok || key != "overview:-:-" {
			return false
		}
		ov.Vitals.AvgHeartRate = 999
		return true
	}}
	st.vitals.Err = errors.New("must not be read")
	got, err := newService(st, defaultConfig(), hit).Overview(ctx, domain.Window{})
	require.NoError(t, err)
	assert.Equal(t, 999, got.Vitals.AvgHeartRate)
	assert.Empty(t, hit.sets)
}
