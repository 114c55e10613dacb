package service

import (
	"net/http"

	apperrors "github.com/duel-labs/roadmap-service/pkg/util"
)

// Stable domain errors surfaced by the auth and verification flows. Each
// carries its wire code and status class; handlers return them as-is and
// the error middleware renders the envelope.
var (
	ErrUserNotFound = apperrors.NewDomainError(
		"USER_NOT_FOUND", "user not found", http.StatusNotFound, nil)
	ErrEmailDuplicated = apperrors.NewDomainError(
		"EMAIL_DUPLICATED", "email already in use", http.StatusBadRequest, nil)
	ErrPasswordWrong = apperrors.NewDomainError(
		"USER_PASSWORD_WRONG", "wrong password", http.StatusBadRequest, nil)
	ErrPasswordConfirmMismatch = apperrors.NewDomainError(
		"PASSWORD_CONFIRM_MISMATCH", "password confirmation does not match", http.StatusBadRequest, nil)

	ErrCodeExpired = apperrors.NewDomainError(
		"CODE_EXPIRED", "verification code expired", http.StatusBadRequest, nil)
	ErrCodeMismatch = apperrors.NewDomainError(
		"CODE_WRONG", "wrong verification code", http.StatusBadRequest, nil)

	ErrTokenMalformed = apperrors.NewDomainError(
		"TOKEN_MALFORMED", "malformed token", http.StatusUnauthorized, nil)
	ErrTokenSignatureInvalid = apperrors.NewDomainError(
		"TOKEN_INVALID_SIGNATURE", "invalid token signature", http.StatusUnauthorized, nil)
	ErrTokenExpired = apperrors.NewDomainError(
		"TOKEN_EXPIRED", "token expired", http.StatusUnauthorized, nil)
	ErrSessionRevoked = apperrors.NewDomainError(
		"SESSION_REVOKED", "session revoked or superseded", http.StatusUnauthorized, nil)

	ErrStoreUnavailable = apperrors.NewDomainError(
		"STORE_UNAVAILABLE", "session store unavailable", http.StatusServiceUnavailable, nil)
	ErrMailDeliveryFailed = apperrors.NewDomainError(
		"MAIL_DELIVERY_FAILED", "could not deliver verification mail", http.StatusServiceUnavailable, nil)
)
