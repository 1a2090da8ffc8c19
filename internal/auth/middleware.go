package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/doctor-portal/internal/domain"
	apperrors "github.com/spec-kit/doctor-portal/pkg/util/errorutil"
)

const sessionKey = "auth_session"

// SessionMiddleware decodes the session cookie and rejects requests without a valid one.
type SessionMiddleware struct {
	codec SessionCodec
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(codec SessionCodec) *SessionMiddleware {
	return &SessionMiddleware{codec: codec}
}

// Handle enforces an authenticated session for protected routes.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	session := m.codec.Decode(c.Cookies(SessionCookieName))
	if session == nil {
		return apperrors.NewUnauthorized("unauthorized")
	}
	c.Locals(sessionKey, session)
	return c.Next()
}

// SessionFromContext retrieves the decoded session, or nil.
func SessionFromContext(c *fiber.Ctx) *domain.Session {
	session, _ := c.Locals(sessionKey).(*domain.Session)
	return session
}

// RequireRole rejects sessions whose role is not among allowed.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		session := SessionFromContext(c)
		if session == nil {
			return apperrors.NewUnauthorized("unauthorized")
		}
		if _, ok := allowedSet[session.Role]; !ok {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
