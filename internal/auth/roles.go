package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/notes-service/internal/domain"
	apperrors "github.com/spec-kit/notes-service/pkg/util"
)

// RequireRole gates a route on the role already derived by Middleware.Handle.
// It never re-parses the token; if no Principal is present the auth
// middleware did not run, which is a wiring error surfaced as unauthorized.
func RequireRole(required domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Role != required {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
