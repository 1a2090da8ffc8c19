package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the single cookie carrying the session token.
const SessionCookieName = "session"

// CookieOptions holds the attributes applied to the session cookie.
type CookieOptions struct {
	Secure bool
	Domain string
}

// SetSessionCookie installs the token with an explicit max-age.
func SetSessionCookie(c *fiber.Ctx, token string, ttl time.Duration, opts CookieOptions) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   opts.Domain,
		MaxAge:   int(ttl / time.Second),
		Secure:   opts.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearSessionCookie expires the cookie client-side. Issued tokens stay valid until
// their own expiry; there is no server-side revocation.
func ClearSessionCookie(c *fiber.Ctx, opts CookieOptions) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   opts.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   opts.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
