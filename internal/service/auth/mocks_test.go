package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/healthtrack-backend/internal/auth"
	"github.com/heartmarshall/healthtrack-backend/internal/domain"
)

var (
	_ userRepo     = &userRepoMock{}
	_ tokenRepo    = &tokenRepoMock{}
	_ txManager    = &txManagerMock{}
	_ tokenManager = &tokenManagerMock{}
)

type userRepoMock struct {
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	CreateFunc     func(ctx context.Context, user *domain.User) (*domain.User, error)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc == nil {
		panic("userRepoMock.GetByEmailFunc: method is nil but userRepo.GetByEmail was just called")
	}
	return m.GetByEmailFunc(ctx, email)
}

func (m *userRepoMock) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if m.CreateFunc == nil {
		panic("userRepoMock.CreateFunc: method is nil but userRepo.Create was just called")
	}
	return m.CreateFunc(ctx, user)
}

type tokenRepoMock struct {
	CreateFunc          func(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.RefreshToken, error)
	GetByHashFunc       func(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeByIDFunc      func(ctx context.Context, id uuid.UUID) error
	RevokeAllByUserFunc func(ctx context.Context, userID uuid.UUID) error

	mu      sync.Mutex
	created []string
	revoked []uuid.UUID
}

func (m *tokenRepoMock) Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.RefreshToken, error) {
	m.mu.Lock()
	m.created = append(m.created, tokenHash)
	m.mu.Unlock()
	if m.CreateFunc == nil {
		return &domain.RefreshToken{ID: uuid.New(), UserID: userID, TokenHash: tokenHash, ExpiresAt: expiresAt}, nil
	}
	return m.CreateFunc(ctx, userID, tokenHash, expiresAt)
}

func (m *tokenRepoMock) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	if m.GetByHashFunc == nil {
		panic("tokenRepoMock.GetByHashFunc: method is nil but tokenRepo.GetByHash was just called")
	}
	return m.GetByHashFunc(ctx, tokenHash)
}

func (m *tokenRepoMock) RevokeByID(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	m.revoked = append(m.revoked, id)
	m.mu.Unlock()
	if m.RevokeByIDFunc == nil {
		return nil
	}
	return m.RevokeByIDFunc(ctx, id)
}

func (m *tokenRepoMock) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	if m.RevokeAllByUserFunc == nil {
		panic("tokenRepoMock.RevokeAllByUserFunc: method is nil but tokenRepo.RevokeAllByUser was just called")
	}
	return m.RevokeAllByUserFunc(ctx, userID)
}

type txManagerMock struct{}

func (txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type tokenManagerMock struct {
	IssueAccessFunc func(id auth.Identity) (auth.AccessToken, error)
	VerifyFunc      func(token string) (auth.Identity, error)
}

func (m *tokenManagerMock) IssueAccess(id auth.Identity) (auth.AccessToken, error) {
	if m.IssueAccessFunc == nil {
		return auth.AccessToken{Token: "access-" + id.UserID.String(), ExpiresAt: time.Now().Add(time.Minute)}, nil
	}
	return m.IssueAccessFunc(id)
}

func (m *tokenManagerMock) Verify(token string) (auth.Identity, error) {
	if m.VerifyFunc == nil {
		panic("tokenManagerMock.VerifyFunc: method is nil but tokenManager.Verify was just called")
	}
	return m.VerifyFunc(token)
}
