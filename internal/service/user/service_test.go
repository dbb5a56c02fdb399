package user

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/pkg/ctxutil"
)

type userRepoMock struct {
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	UpdateRoleFunc func(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error)
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
	ListFunc       func(ctx context.Context, limit, offset int) ([]domain.User, error)
	CountFunc      func(ctx context.Context) (int, error)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *userRepoMock) UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error) {
	return m.UpdateRoleFunc(ctx, id, role)
}

func (m *userRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

func (m *userRepoMock) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return m.ListFunc(ctx, limit, offset)
}

func (m *userRepoMock) Count(ctx context.Context) (int, error) {
	return m.CountFunc(ctx)
}

type revokerMock struct{ calls []uuid.UUID }

func (m *revokerMock) RevokeAllByUser(_ context.Context, userID uuid.UUID) error {
	m.calls = append(m.calls, userID)
	return nil
}

type invalidatorMock struct{ calls []uuid.UUID }

func (m *invalidatorMock) Invalidate(_ context.Context, userID uuid.UUID) {
	m.calls = append(m.calls, userID)
}

func newTestService(users userRepo, tokens *revokerMock, cache invalidator) *Service {
	if tokens == nil {
		tokens = &revokerMock{}
	}
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), users, tokens, cache)
}

func adminCtx(id uuid.UUID) context.Context {
	return ctxutil.WithUserRole(ctxutil.WithUserID(context.Background(), id), "admin")
}

func TestService_GetProfile(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	want := &domain.User{ID: userID, Email: "a@example.com", Role: domain.UserRoleUser}
	users := &userRepoMock{GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
		assert.Equal(t, userID, id)
		return want, nil
	}}
	svc := newTestService(users, nil, nil)

	got, err := svc.GetProfile(ctxutil.WithUserID(context.Background(), userID))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = svc.GetProfile(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestService_DeleteAccount(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	var deleted uuid.UUID
	users := &userRepoMock{DeleteFunc: func(_ context.Context, id uuid.UUID) error {
		deleted = id
		return nil
	}}
	cache := &invalidatorMock{}
	svc := newTestService(users, nil, cache)

	require.NoError(t, svc.DeleteAccount(ctxutil.WithUserID(context.Background(), userID)))
	assert.Equal(t, userID, deleted)
	assert.Equal(t, []uuid.UUID{userID}, cache.calls)

	assert.ErrorIs(t, svc.DeleteAccount(context.Background()), domain.ErrUnauthorized)
}

func TestService_DeleteAccount_NilCache(t *testing.T) {
	t.Parallel()

	users := &userRepoMock{DeleteFunc: func(context.Context, uuid.UUID) error { return domain.ErrNotFound }}
	svc := newTestService(users, nil, nil)

	err := svc.DeleteAccount(ctxutil.WithUserID(context.Background(), uuid.New()))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_SetUserRole(t *testing.T) {
	t.Parallel()

	callerID := uuid.New()
	targetID := uuid.New()

	tests := []struct {
		name    string
		ctx     context.Context
		target  uuid.UUID
		role    domain.UserRole
		wantErr error
	}{
		{"not admin", ctxutil.WithUserID(context.Background(), callerID), targetID, domain.UserRoleAdmin, domain.ErrForbidden},
		{"invalid role", adminCtx(callerID), targetID, domain.UserRole("root"), domain.ErrValidation},
		{"self demotion", adminCtx(callerID), callerID, domain.UserRoleUser, domain.ErrValidation},
		{"promotes", adminCtx(callerID), targetID, domain.UserRoleAdmin, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			users := &userRepoMock{UpdateRoleFunc: func(_ context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error) {
				return &domain.User{ID: id, Role: role}, nil
			}}
			tokens := &revokerMock{}
			got, err := newTestService(users, tokens, nil).SetUserRole(tt.ctx, tt.target, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, tokens.calls)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.role, got.Role)
			assert.Equal(t, []uuid.UUID{tt.target}, tokens.calls)
		})
	}
}

func TestService_Promote(t *testing.T) {
	t.Parallel()

	plain := &domain.User{ID: uuid.New(), Email: "p@example.com", Role: domain.UserRoleUser}
	admin := &domain.User{ID: uuid.New(), Email: "q@example.com", Role: domain.UserRoleAdmin}
	updates := 0
	users := &userRepoMock{
		GetByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			switch email {
			case plain.Email:
				return plain, nil
			case admin.Email:
				return admin, nil
			}
			return nil, domain.ErrNotFound
		},
		UpdateRoleFunc: func(_ context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error) {
			updates++
			return &domain.User{ID: id, Email: plain.Email, Role: role}, nil
		},
	}
	svc := newTestService(users, nil, nil)

	got, err := svc.Promote(context.Background(), plain.Email)
	require.NoError(t, err)
	assert.True(t, got.Role.IsAdmin())

	got, err = svc.Promote(context.Background(), admin.Email)
	require.NoError(t, err)
	assert.Equal(t, admin, got)
	assert.Equal(t, 1, updates, "already-admin user must not be updated")

	_, err = svc.Promote(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_ListUsers(t *testing.T) {
	t.Parallel()

	var gotLimit, gotOffset int
	users := &userRepoMock{
		ListFunc: func(_ context.Context, limit, offset int) ([]domain.User, error) {
			gotLimit, gotOffset = limit, offset
			return []domain.User{{ID: uuid.New()}}, nil
		},
		CountFunc: func(context.Context) (int, error) { return 301, nil },
	}
	svc := newTestService(users, nil, nil)

	_, err := svc.ListUsers(ctxutil.WithUserID(context.Background(), uuid.New()), 1, 10)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	page, err := svc.ListUsers(adminCtx(uuid.New()), 3, 1000)
	require.NoError(t, err)
	assert.Equal(t, maxListLimit, gotLimit)
	assert.Equal(t, 2*maxListLimit, gotOffset)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 301, page.Total)
	assert.Len(t, page.Items, 1)

	page, err = svc.ListUsers(adminCtx(uuid.New()), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, defaultListLimit, gotLimit)
	assert.Zero(t, gotOffset)
}

func TestService_ListUsers_RepoError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	users := &userRepoMock{ListFunc: func(context.Context, int, int) ([]domain.User, error) { return nil, boom }}
	_, err := newTestService(users, nil, nil).ListUsers(adminCtx(uuid.New()), 1, 10)
	assert.ErrorIs(t, err, boom)
}
