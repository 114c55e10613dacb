package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/duel-labs/roadmap-service/internal/auth"
	"github.com/duel-labs/roadmap-service/internal/config"
	"github.com/duel-labs/roadmap-service/internal/domain"
	"github.com/duel-labs/roadmap-service/internal/repository"
	"github.com/duel-labs/roadmap-service/internal/store"
)

// TokenPair bundles the credentials returned by login and refresh.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// AuthService coordinates join, login, refresh and logout. A user has at
// most one live session: issuing a new refresh token overwrites the session
// marker and invalidates the previous one.
type AuthService struct {
	users      repository.UserRepository
	sessions   *store.SessionStore
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Sessions *store.SessionStore
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		sessions:   deps.Sessions,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL(), cfg.Auth.RefreshTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Join creates a new member account.
func (s *AuthService) Join(ctx context.Context, name, email, password, passwordConfirm string) error {
	if password != passwordConfirm {
		return ErrPasswordConfirmMismatch
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return ErrEmailDuplicated
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Image:        domain.DefaultProfileImage,
		Role:         domain.RoleUser,
	}
	return s.users.Create(ctx, user)
}

// Login authenticates a member and opens their single live session.
// Unknown email and wrong password surface as distinct errors.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrPasswordWrong
	}

	return s.issuePair(ctx, user)
}

// Refresh rotates the token pair. The refresh token must verify and its
// subject must still own the live session marker; after rotation the
// presented token is dead even though it has not expired.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokenMgr.Verify(refreshToken)
	if err != nil {
		return nil, translateTokenErr(err)
	}

	stored, err := s.sessions.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionRevoked
		}
		return nil, translateStoreErr(err)
	}
	// A well-formed token that no longer matches the marker was superseded
	// by a later login or refresh.
	if stored != refreshToken {
		return nil, ErrSessionRevoked
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.issuePair(ctx, user)
}

// Logout revokes the caller's session. Deleting an already absent marker
// is fine.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokenMgr.Verify(refreshToken)
	if err != nil {
		return translateTokenErr(err)
	}
	if err := s.sessions.Delete(ctx, claims.UserID); err != nil {
		return translateStoreErr(err)
	}
	return nil
}

// ChangePassword re-hashes and persists the new password. Live sessions
// stay valid; only future logins require the new password.
func (s *AuthService) ChangePassword(ctx context.Context, email, newPassword string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// Profile returns the account backing a principal.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issuePair(ctx context.Context, user *domain.User) (*TokenPair, error) {
	access, accessExp, err := s.tokenMgr.IssueAccess(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.tokenMgr.IssueRefresh(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	// Last write wins: a concurrent login or refresh for the same user
	// leaves exactly one marker, and only that refresh token stays usable.
	if err := s.sessions.Save(ctx, user.ID, refresh, s.tokenMgr.RefreshTTL()); err != nil {
		return nil, translateStoreErr(err)
	}

	return &TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func translateTokenErr(err error) error {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, auth.ErrTokenSignatureInvalid):
		return ErrTokenSignatureInvalid
	case errors.Is(err, auth.ErrTokenMalformed):
		return ErrTokenMalformed
	default:
		return err
	}
}

func translateStoreErr(err error) error {
	if errors.Is(err, store.ErrUnavailable) {
		return ErrStoreUnavailable
	}
	return err
}
