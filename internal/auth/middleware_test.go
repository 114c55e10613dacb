package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	httptransport "github.com/duel-labs/roadmap-service/internal/api/http"
	"github.com/duel-labs/roadmap-service/internal/auth"
	"github.com/duel-labs/roadmap-service/internal/config"
	"github.com/duel-labs/roadmap-service/internal/domain"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func newTestApp(t *testing.T) (*fiber.App, *auth.TokenManager) {
	t.Helper()

	tm := auth.NewTokenManager("gatekeeper-test-secret", 30*time.Minute, 24*time.Hour)
	repo := &fakeUserRepo{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Name: "tester", Email: "tester@example.com", Role: domain.RoleUser},
	}}
	gatekeeper := auth.NewGatekeeper(tm, repo, auth.DefaultPolicy())

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), nil, 0, config.CORSConfig{AllowMethods: "GET,POST,PUT,DELETE"})
	app.Use(gatekeeper.Handle)

	app.Get("/api/roadmaps", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": []string{}})
	})
	app.Get("/api/users", func(c *fiber.Ctx) error {
		principal, ok := auth.PrincipalFromContext(c)
		if !ok {
			t.Error("no principal attached on protected route")
			return fiber.ErrInternalServerError
		}
		return c.JSON(fiber.Map{"data": principal.UserID})
	})

	return app, tm
}

func TestGatekeeperPublicRouteNoCredential(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/roadmaps", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestGatekeeperProtectedRouteNoCredential(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestGatekeeperProtectedRouteValidToken(t *testing.T) {
	app, tm := newTestApp(t)

	token, _, err := tm.IssueAccess("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestGatekeeperRejectsBadCredentials(t *testing.T) {
	app, tm := newTestApp(t)

	unknown, _, err := tm.IssueAccess("user-404", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	forged, _, err := auth.NewTokenManager("other-secret", time.Minute, time.Hour).
		IssueAccess("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"garbage token", "Bearer not-a-token"},
		{"wrong scheme", "Basic dXNlcjpwdw=="},
		{"forged signature", "Bearer " + forged},
		{"unknown subject", "Bearer " + unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			req.Header.Set(fiber.HeaderAuthorization, tt.header)

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", resp.StatusCode)
			}
		})
	}
}
