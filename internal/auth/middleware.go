package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/duel-labs/roadmap-service/internal/domain"
	"github.com/duel-labs/roadmap-service/internal/repository"
	apperrors "github.com/duel-labs/roadmap-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. It is built fresh per
// request and never persisted.
type Principal struct {
	UserID string
	Role   domain.Role
}

// Gatekeeper classifies every request against the policy table and attaches
// a principal before business handlers run.
type Gatekeeper struct {
	tokens *TokenManager
	users  repository.UserRepository
	policy PolicyTable
}

// NewGatekeeper constructs the middleware.
func NewGatekeeper(tokens *TokenManager, users repository.UserRepository, policy PolicyTable) *Gatekeeper {
	return &Gatekeeper{tokens: tokens, users: users, policy: policy}
}

// Handle enforces the route policy. Public routes pass through with no
// principal; protected routes require a valid bearer token.
func (g *Gatekeeper) Handle(c *fiber.Ctx) error {
	if g.policy.Classify(c.Method(), c.Path()) == AccessPublic {
		return c.Next()
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := g.tokens.Verify(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	user, err := g.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("user not found")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{UserID: user.ID, Role: user.Role})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// RequirePrincipal ensures a caller is attached, for handlers reachable
// through public patterns that still need identity.
func RequirePrincipal(c *fiber.Ctx) (*Principal, error) {
	principal, ok := PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return principal, nil
}

// RequireRole ensures the principal holds one of the allowed roles.
// Failures are forbidden, not unauthorized: the caller is known.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
