package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/duel-labs/roadmap-service/internal/config"
	"github.com/duel-labs/roadmap-service/internal/store"
)

func newTestAuthService(t *testing.T) (*AuthService, *memUserRepo, *store.SessionStore, *miniredis.Miniredis) {
	t.Helper()

	ephemeral, mr := newTestEphemeral(t)
	sessions := store.NewSessionStore(ephemeral)
	users := newMemUserRepo()

	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:             "service-test-secret",
		AccessTokenTTLMinutes: 30,
		RefreshTokenTTLDays:   1,
		BcryptCost:            bcrypt.MinCost,
	}}

	svc := NewAuthService(cfg, AuthDependencies{UserRepo: users, Sessions: sessions})
	return svc, users, sessions, mr
}

func join(t *testing.T, svc *AuthService, email, password string) {
	t.Helper()
	require.NoError(t, svc.Join(context.Background(), "tester", email, password, password))
}

func TestJoinAndLogin(t *testing.T) {
	svc, _, sessions, _ := newTestAuthService(t)
	ctx := context.Background()

	join(t, svc, "a@x.com", "pw")

	pair, err := svc.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	claims, err := svc.TokenManager().Verify(pair.AccessToken)
	require.NoError(t, err)

	live, err := sessions.Exists(ctx, claims.UserID)
	require.NoError(t, err)
	require.True(t, live)
}

func TestJoinValidation(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	ctx := context.Background()

	require.ErrorIs(t, svc.Join(ctx, "tester", "a@x.com", "pw", "other"), ErrPasswordConfirmMismatch)

	join(t, svc, "a@x.com", "pw")
	require.ErrorIs(t, svc.Join(ctx, "tester", "a@x.com", "pw", "pw"), ErrEmailDuplicated)
}

func TestLoginFailures(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	ctx := context.Background()

	join(t, svc, "a@x.com", "pw")

	_, err := svc.Login(ctx, "nobody@x.com", "pw")
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Login(ctx, "a@x.com", "wrong")
	require.ErrorIs(t, err, ErrPasswordWrong)
}

func TestRefreshRotation(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	ctx := context.Background()

	join(t, svc, "a@x.com", "pw")
	first, err := svc.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The rotated-out token is dead even though it has not expired.
	_, err = svc.Refresh(ctx, first.RefreshToken)
	require.ErrorIs(t, err, ErrSessionRevoked)

	// The current token keeps working.
	_, err = svc.Refresh(ctx, second.RefreshToken)
	require.NoError(t, err)
}

func TestLoginSupersedesSession(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	ctx := context.Background()

	join(t, svc, "a@x.com", "pw")
	first, err := svc.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, first.RefreshToken)
	require.ErrorIs(t, err, ErrSessionRevoked)
}

func TestLogoutRevokes(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	ctx := context.Background()

	join(t, svc, "a@x.com", "pw")
	pair, err := svc.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrSessionRevoked)

	// Logging out twice is harmless.
	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))
}

func TestRefreshBadTokens(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Refresh(ctx, "garbage")
	require.ErrorIs(t, err, ErrTokenMalformed)

	otherCfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:             "another-secret",
		AccessTokenTTLMinutes: 30,
		RefreshTokenTTLDays:   1,
		BcryptCost:            bcrypt.MinCost,
	}}
	other := NewAuthService(otherCfg, AuthDependencies{UserRepo: newMemUserRepo(), Sessions: nil})
	forged, _, err := other.TokenManager().IssueRefresh("user-1", "ROLE_USER")
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, forged)
	require.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

func TestRefreshStoreUnavailable(t *testing.T) {
	svc, _, _, mr := newTestAuthService(t)
	ctx := context.Background()

	join(t, svc, "a@x.com", "pw")
	pair, err := svc.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)

	mr.Close()

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestChangePasswordKeepsSession(t *testing.T) {
	svc, _, sessions, _ := newTestAuthService(t)
	ctx := context.Background()

	join(t, svc, "a@x.com", "pw")
	pair, err := svc.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(ctx, "a@x.com", "new-pw"))

	// The live session survives the password change.
	claims, err := svc.TokenManager().Verify(pair.RefreshToken)
	require.NoError(t, err)
	live, err := sessions.Exists(ctx, claims.UserID)
	require.NoError(t, err)
	require.True(t, live)

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@x.com", "pw")
	require.ErrorIs(t, err, ErrPasswordWrong)
	_, err = svc.Login(ctx, "a@x.com", "new-pw")
	require.NoError(t, err)
}

func TestChangePasswordUnknownEmail(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	require.ErrorIs(t, svc.ChangePassword(context.Background(), "nobody@x.com", "pw"), ErrUserNotFound)
}
