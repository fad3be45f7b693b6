package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/course-service/internal/domain"
	apperrors "github.com/spec-kit/course-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal is the decoded identity attached to a request after token
// verification. The role travels in the token; it is not re-read from the
// store, so a stale token keeps its old role until it expires.
type Principal struct {
	UID   string
	Email string
	Role  domain.Role
}

// AuthMiddleware validates bearer tokens and attaches principals.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	c.Locals(principalKey, &Principal{
		UID:   claims.UID,
		Email: claims.Email,
		Role:  claims.Role,
	})
	return c.Next()
}

// RequireAdmin ensures the attached principal carries the admin role claim.
// It assumes Handle already ran and populated the principal.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || !principal.Role.IsAdmin() {
			return apperrors.NewForbidden("admins only")
		}
		return c.Next()
	}
}

// PrincipalFromContext retrieves the authenticated identity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
