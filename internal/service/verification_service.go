package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/duel-labs/roadmap-service/internal/mail"
	"github.com/duel-labs/roadmap-service/internal/repository"
	"github.com/duel-labs/roadmap-service/internal/store"
)

const codeLength = 6

// VerificationService issues and validates one-time email codes. A code
// survives until its TTL runs out or it is consumed by a successful check,
// whichever comes first.
type VerificationService struct {
	users   repository.UserRepository
	codes   *store.CodeStore
	sender  mail.Sender
	codeTTL time.Duration
	logger  *zap.Logger
}

// NewVerificationService builds the service.
func NewVerificationService(users repository.UserRepository, codes *store.CodeStore, sender mail.Sender, codeTTL time.Duration, logger *zap.Logger) *VerificationService {
	if codeTTL <= 0 {
		codeTTL = 5 * time.Minute
	}
	return &VerificationService{users: users, codes: codes, sender: sender, codeTTL: codeTTL, logger: logger}
}

// CheckEmail verifies the address is not registered yet, then sends a
// verification code. Used during join.
func (s *VerificationService) CheckEmail(ctx context.Context, email string) error {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return ErrEmailDuplicated
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	return s.issueCode(ctx, email)
}

// SendCode sends a verification code to an already registered address.
// Used for password reset.
func (s *VerificationService) SendCode(ctx context.Context, email string) error {
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	return s.issueCode(ctx, email)
}

// CheckCode validates a submitted code. An absent record reads as expiry,
// also after a successful consumption. A mismatch keeps the record, so the
// user may retry until the TTL elapses. A match consumes the record; it
// cannot succeed twice.
func (s *VerificationService) CheckCode(ctx context.Context, email, submitted string) error {
	stored, err := s.codes.Get(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCodeExpired
		}
		return translateStoreErr(err)
	}

	if stored != submitted {
		return ErrCodeMismatch
	}

	if err := s.codes.Delete(ctx, email); err != nil {
		return translateStoreErr(err)
	}
	return nil
}

func (s *VerificationService) issueCode(ctx context.Context, email string) error {
	code, err := generateCode(codeLength)
	if err != nil {
		return err
	}

	if err := s.codes.Save(ctx, email, code, s.codeTTL); err != nil {
		return translateStoreErr(err)
	}

	// The stored code stands even when delivery fails; a retried send
	// before expiry simply issues a fresh one.
	if err := s.sender.SendCode(email, code); err != nil {
		s.logger.Error("verification mail delivery failed", zap.Error(err), zap.String("email", email))
		return ErrMailDeliveryFailed
	}
	return nil
}

func generateCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
