package dto

import "time"

// CheckEmailRequest payload for the join-time duplicate check.
type CheckEmailRequest struct {
	Email string `json:"email"`
}

// SendCodeRequest payload for re-sending a code to an existing account.
type SendCodeRequest struct {
	Email string `json:"email"`
}

// CheckCodeRequest payload for validating a verification code.
type CheckCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// JoinRequest payload for new members.
type JoinRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest payload for the password reset flow.
type ChangePasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the access token; the refresh token travels in the
// cookie only.
type AuthResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// UserResponse is the profile view of an account.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
	Role  string `json:"role"`
}
