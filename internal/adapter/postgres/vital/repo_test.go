package vital_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres/vital"
	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/query"
	"github.com/heartmarshall/healthtrack-backend/internal/schema"
)

func seedVitals(t *testing.T, repo *vital.Repo, userID uuid.UUID, base time.Time, n int) []domain.Vital {
	t.Helper()
	out := make([]domain.Vital, 0, n)
	for i := range n {
		v := domain.Vital{
			ID:        uuid.New(),
			UserID:    userID,
			HeartRate: testhelper.Ptr(float64(60 + i)),
			Note:      testhelper.Ptr("reading"),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, repo.Insert(context.Background(), v))
		out = append(out, v)
	}
	return out
}

func ownedBy(id uuid.UUID) query.Predicate {
	return query.Eq{Column: schema.UserID, Value: id}
}

func TestRepo_FindPagination(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := vital.New(pool)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	seeded := seedVitals(t, repo, user.ID, base, 5)

	order := []query.Order{query.Desc(schema.CreatedAt), query.Asc(schema.ID)}
	seen := map[uuid.UUID]bool{}
	for offset := 0; offset < 6; offset += 2 {
		page, err := repo.Find(ctx, ownedBy(user.ID), order, 2, offset)
		require.NoError(t, err)
		for _, v := range page {
			assert.False(t, seen[v.ID], "row returned twice")
			seen[v.ID] = true
		}
	}
	assert.Len(t, seen, len(seeded))

	first, err := repo.Find(ctx, ownedBy(user.ID), order, 1, 0)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, seeded[4].ID, first[0].ID)
	assert.InDelta(t, 64, *first[0].HeartRate, 0.001)

	total, err := repo.Count(ctx, ownedBy(user.ID))
	require.NoError(t, err)
	assert.Equal(t, 5, total)
}

func TestRepo_FindFilters(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := vital.New(pool)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	other := testhelper.SeedUser(t, pool)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	seedVitals(t, repo, user.ID, base, 4)
	seedVitals(t, repo, other.ID, base, 3)

	from := base.Add(time.Hour)
	to := base.Add(2 * time.Hour)
	where := query.And{
		ownedBy(user.ID),
		query.Range{Column: schema.CreatedAt, From: &from, To: &to},
	}
	got, err := repo.Find(ctx, where, []query.Order{query.Asc(schema.CreatedAt)}, 0, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].CreatedAt.Equal(from))
	assert.True(t, got[1].CreatedAt.Equal(to))

	none, err := repo.Find(ctx, query.And{
		ownedBy(user.ID),
		query.Contains{Columns: []string{schema.Note}, Text: "100%_match"},
	}, nil, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)

	hit, err := repo.Count(ctx, query.And{
		ownedBy(user.ID),
		query.Contains{Columns: []string{schema.Note}, Text: "READ"},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, hit)
}

func TestRepo_FindRecentDays(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := vital.New(pool)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	for _, day := range []int{1, 2, 2, 5, 9} {
		require.NoError(t, repo.Insert(ctx, domain.Vital{
			ID:        uuid.New(),
			UserID:    user.ID,
			HeartRate: testhelper.Ptr(70.0),
			CreatedAt: time.Date(2024, 1, day, 12, 0, 0, 0, time.UTC),
		}))
	}

	got, err := repo.FindRecentDays(ctx, ownedBy(user.ID), 3)
	require.NoError(t, err)

	days := make([]string, 0, len(got))
	for _, v := range got {
		days = append(days, domain.DayOf(v.CreatedAt))
	}
	assert.Equal(t, []string{"2024-01-02", "2024-01-02", "2024-01-05", "2024-01-09"}, days)
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := vital.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	stranger := testhelper.SeedUser(t, pool)
	v := seedVitals(t, repo, owner.ID, time.Now().UTC().Truncate(time.Second), 1)[0]

	assert.ErrorIs(t, repo.Delete(ctx, stranger.ID, v.ID), domain.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, owner.ID, v.ID))
	assert.ErrorIs(t, repo.Delete(ctx, owner.ID, v.ID), domain.ErrNotFound)
}
