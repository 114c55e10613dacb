package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/duel-labs/roadmap-service/internal/api/dto"
	"github.com/duel-labs/roadmap-service/internal/auth"
	"github.com/duel-labs/roadmap-service/internal/config"
	"github.com/duel-labs/roadmap-service/internal/service"
)

// UsersHandler exposes the join, login, refresh and verification endpoints.
type UsersHandler struct {
	auth         *service.AuthService
	verification *service.VerificationService
	authCfg      config.AuthConfig
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, verification *service.VerificationService, authCfg config.AuthConfig) *UsersHandler {
	return &UsersHandler{auth: authService, verification: verification, authCfg: authCfg}
}

// CheckEmail handles POST /api/email/check.
func (h *UsersHandler) CheckEmail(c *fiber.Ctx) error {
	var req dto.CheckEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "email required")
	}

	if err := h.verification.CheckEmail(c.Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": nil})
}

// SendCode handles POST /api/email/code.
func (h *UsersHandler) SendCode(c *fiber.Ctx) error {
	var req dto.SendCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "email required")
	}

	if err := h.verification.SendCode(c.Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": nil})
}

// CheckCode handles POST /api/email/code/check.
func (h *UsersHandler) CheckCode(c *fiber.Ctx) error {
	var req dto.CheckCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Code == "" {
		return fiber.NewError(http.StatusBadRequest, "email and code required")
	}

	if err := h.verification.CheckCode(c.Context(), req.Email, req.Code); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"email": req.Email}})
}

// Join handles POST /api/join.
func (h *UsersHandler) Join(c *fiber.Ctx) error {
	var req dto.JoinRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	if err := h.auth.Join(c.Context(), req.Name, req.Email, req.Password, req.PasswordConfirm); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": nil})
}

// Login handles POST /api/login. The access token is returned in the body;
// the refresh token only ever travels in the cookie.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	pair, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshExpiresAt)
	return c.JSON(fiber.Map{"data": dto.AuthResponse{
		AccessToken: pair.AccessToken,
		ExpiresAt:   pair.AccessExpiresAt,
	}})
}

// Refresh handles GET /api/refresh, rotating the pair carried by the cookie.
func (h *UsersHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(h.authCfg.RefreshCookieName)
	if refreshToken == "" {
		return fiber.NewError(http.StatusUnauthorized, "missing refresh token")
	}

	pair, err := h.auth.Refresh(c.Context(), refreshToken)
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshExpiresAt)
	return c.JSON(fiber.Map{"data": dto.AuthResponse{
		AccessToken: pair.AccessToken,
		ExpiresAt:   pair.AccessExpiresAt,
	}})
}

// Logout handles POST /api/auth/logout, revoking the live session.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	refreshToken := c.Cookies(h.authCfg.RefreshCookieName)
	if refreshToken == "" {
		return fiber.NewError(http.StatusUnauthorized, "missing refresh token")
	}

	if err := h.auth.Logout(c.Context(), refreshToken); err != nil {
		return err
	}

	h.clearRefreshCookie(c)
	return c.JSON(fiber.Map{"data": nil})
}

// ChangePassword handles POST /api/password/change.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	if err := h.auth.ChangePassword(c.Context(), req.Email, req.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": nil})
}

// Me handles GET /api/users.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.auth.Profile(c.Context(), principal.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Image: user.Image,
		Role:  string(user.Role),
	}})
}

func (h *UsersHandler) setRefreshCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     h.authCfg.RefreshCookieName,
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   h.authCfg.RefreshCookieSecure,
		SameSite: fiber.CookieSameSiteNoneMode,
		Path:     "/",
	})
}

func (h *UsersHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.authCfg.RefreshCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.authCfg.RefreshCookieSecure,
		SameSite: fiber.CookieSameSiteNoneMode,
		Path:     "/",
	})
}
