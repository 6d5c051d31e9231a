package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/notes-service/internal/domain"
	apperrors "github.com/spec-kit/notes-service/pkg/util"
)

const principalKey = "auth_principal"

const bearerPrefix = "Bearer "

// Principal is the verified identity/tenant/role triple for the current
// request. It is produced only here, lives for one request, and is the sole
// source handlers may derive a tenant from.
type Principal struct {
	UserID   string
	TenantID string
	Role     domain.Role
}

// Middleware derives the Principal from the Authorization header. Requests
// that fail any check never reach the handler.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the auth middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. The header must match
// "Bearer <token>" exactly: case-sensitive scheme, a single space, non-empty
// token. Anything else is rejected before the token service is consulted.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || token == "" {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.Verify(token)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	c.Locals(principalKey, &Principal{
		UserID:   claims.UserID,
		TenantID: claims.TenantID,
		Role:     claims.Role,
	})
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
