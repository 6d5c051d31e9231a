package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/notes-service/internal/domain"
	apperrors "github.com/spec-kit/notes-service/pkg/util"
)

func newProtectedApp(t *testing.T, tm *TokenManager) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code})
		},
	})
	app.Get("/protected", NewMiddleware(tm).Handle, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			t.Error("handler reached without principal")
			return fiber.ErrInternalServerError
		}
		return c.JSON(fiber.Map{"tenant_id": principal.TenantID, "role": string(principal.Role)})
	})
	return app
}

func TestMiddlewareRejectsBadHeaders(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	token, _, err := tm.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	app := newProtectedApp(t, tm)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"lowercase scheme", "bearer " + token},
		{"wrong scheme", "Basic " + token},
		{"scheme only", "Bearer"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", resp.StatusCode)
			}
		})
	}
}

func TestMiddlewareAcceptsValidToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	token, _, err := tm.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	app := newProtectedApp(t, tm)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestRequireRole(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code})
		},
	})
	app.Post("/admin", NewMiddleware(tm).Handle, RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	member := &domain.User{ID: "u2", Role: domain.RoleMember, TenantID: "tenant-1"}
	memberToken, _, err := tm.Issue(member)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	adminToken, _, err := tm.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+memberToken)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("member status = %d, want 403", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("admin status = %d, want 200", resp.StatusCode)
	}
}
