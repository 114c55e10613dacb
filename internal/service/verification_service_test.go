package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/duel-labs/roadmap-service/internal/domain"
	"github.com/duel-labs/roadmap-service/internal/store"
)

func newTestVerificationService(t *testing.T) (*VerificationService, *memUserRepo, *captureSender, func(d time.Duration)) {
	t.Helper()

	ephemeral, mr := newTestEphemeral(t)
	codes := store.NewCodeStore(ephemeral)
	users := newMemUserRepo()
	sender := &captureSender{}

	svc := NewVerificationService(users, codes, sender, 5*time.Minute, zap.NewNop())
	return svc, users, sender, mr.FastForward
}

func registered(t *testing.T, users *memUserRepo, email string) {
	t.Helper()
	require.NoError(t, users.Create(context.Background(), &domain.User{
		Name:  "tester",
		Email: email,
		Role:  domain.RoleUser,
	}))
}

func TestCheckEmailDuplicate(t *testing.T) {
	svc, users, _, _ := newTestVerificationService(t)
	registered(t, users, "taken@x.com")

	require.ErrorIs(t, svc.CheckEmail(context.Background(), "taken@x.com"), ErrEmailDuplicated)
}

func TestCheckEmailIssuesCode(t *testing.T) {
	svc, _, sender, _ := newTestVerificationService(t)
	ctx := context.Background()

	require.NoError(t, svc.CheckEmail(ctx, "new@x.com"))
	require.Equal(t, "new@x.com", sender.email)
	require.Len(t, sender.code, codeLength)

	require.NoError(t, svc.CheckCode(ctx, "new@x.com", sender.code))
}

func TestSendCodeUnknownUser(t *testing.T) {
	svc, _, _, _ := newTestVerificationService(t)
	require.ErrorIs(t, svc.SendCode(context.Background(), "nobody@x.com"), ErrUserNotFound)
}

func TestCodeSucceedsExactlyOnce(t *testing.T) {
	svc, users, sender, _ := newTestVerificationService(t)
	ctx := context.Background()
	registered(t, users, "a@x.com")

	require.NoError(t, svc.SendCode(ctx, "a@x.com"))
	code := sender.code

	// A mismatch keeps the record, so the right code still works after it.
	require.ErrorIs(t, svc.CheckCode(ctx, "a@x.com", "000000x"), ErrCodeMismatch)
	require.NoError(t, svc.CheckCode(ctx, "a@x.com", code))

	// The successful check consumed the record; absence reads as expiry.
	require.ErrorIs(t, svc.CheckCode(ctx, "a@x.com", code), ErrCodeExpired)
}

func TestCodeExpires(t *testing.T) {
	svc, users, sender, fastForward := newTestVerificationService(t)
	ctx := context.Background()
	registered(t, users, "a@x.com")

	require.NoError(t, svc.SendCode(ctx, "a@x.com"))
	fastForward(10 * time.Minute)

	require.ErrorIs(t, svc.CheckCode(ctx, "a@x.com", sender.code), ErrCodeExpired)
}

func TestMailFailureKeepsCode(t *testing.T) {
	svc, users, sender, _ := newTestVerificationService(t)
	ctx := context.Background()
	registered(t, users, "a@x.com")
	sender.fail = true

	require.ErrorIs(t, svc.SendCode(ctx, "a@x.com"), ErrMailDeliveryFailed)

	// The stored code stands despite the delivery failure.
	require.NoError(t, svc.CheckCode(ctx, "a@x.com", sender.code))
}

func TestGenerateCodeDigits(t *testing.T) {
	code, err := generateCode(codeLength)
	require.NoError(t, err)
	require.Len(t, code, codeLength)
	for _, c := range code {
		require.True(t, c >= '0' && c <= '9', "non-digit %q in code %q", c, code)
	}
}
