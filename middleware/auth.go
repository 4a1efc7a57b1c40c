// middleware/auth.go
package middleware

import (
	"log"
	"strings"

	"game-record-system/models"
	"game-record-system/store"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TokenParser validates a raw bearer token and returns its subject
// username. Satisfied by services.TokenService.
type TokenParser interface {
	Parse(token string) (string, error)
}

// Locals keys set by the authentication middleware.
const (
	LocalUser      = "user"
	LocalTransport = "auth_transport"
)

const (
	TransportBearer = "bearer"
	TransportCookie = "cookie"
)

// CookieName is the cookie carrying the access token for browser sessions.
const CookieName = "access_token"

// Authenticate validates the caller's token and loads the matching user
// into c.Locals. The token may arrive either as the access_token cookie
// (web-session flows) or as an Authorization: Bearer header (API flows);
// both are validated identically.
//
// Failure behavior differs by transport on purpose: bearer callers get a
// 401 JSON body, cookie callers get bounced to the login page. That
// asymmetry is the intended UX, not an accident.
func Authenticate(db *gorm.DB, tokens TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := resolveUser(c, db, tokens); err != nil {
			return err
		}
		if CurrentUser(c) == nil {
			return Deny(c, fiber.StatusUnauthorized, "missing credentials")
		}
		return c.Next()
	}
}

// OptionalAuthenticate resolves the caller when a valid token is present
// but lets the request through either way. The generic /:endpoint routes
// use it because some of their segments (login, register) are public;
// handlers enforce roles per endpoint with Authorize + Deny.
func OptionalAuthenticate(db *gorm.DB, tokens TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := resolveUser(c, db, tokens); err != nil {
			return err
		}
		return c.Next()
	}
}

// resolveUser stores the auth transport and, when the token checks out, the
// user in c.Locals. An unresolvable user is not an error here; the caller
// decides whether anonymous access is acceptable.
func resolveUser(c *fiber.Ctx, db *gorm.DB, tokens TokenParser) error {
	raw, transport := extractToken(c)
	c.Locals(LocalTransport, transport)
	if raw == "" {
		return nil
	}

	username, err := tokens.Parse(raw)
	if err != nil {
		return nil
	}

	user, err := store.GetByField[models.User](db, "username", username)
	if err != nil {
		// A well-signed token for a vanished user counts as anonymous;
		// anything else from the store is a server fault.
		if err == store.ErrNotFound {
			return nil
		}
		log.Printf("[AUTH] user lookup failed for %q: %v", username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	c.Locals(LocalUser, user)
	return nil
}

// RequireAction gates a route on the authorization policy. Must run after
// Authenticate or OptionalAuthenticate.
func RequireAction(action Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return Deny(c, fiber.StatusUnauthorized, "missing credentials")
		}
		if !Authorize(user.Role, action) {
			return Deny(c, fiber.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated user stored by the middleware, or
// nil for anonymous requests.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(LocalUser).(*models.User)
	return user
}

// Deny rejects the request with the transport-appropriate response: JSON
// status for bearer flows, a redirect to the login page for cookie flows.
func Deny(c *fiber.Ctx, status int, msg string) error {
	if transportOf(c) == TransportBearer {
		if status == fiber.StatusUnauthorized {
			c.Set("WWW-Authenticate", "Bearer")
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}

func transportOf(c *fiber.Ctx) string {
	if t, ok := c.Locals(LocalTransport).(string); ok {
		return t
	}
	return TransportCookie
}

// extractToken pulls the raw token and names the transport it arrived on.
// A bearer header wins over a cookie when both are present. With no token
// at all, API-looking requests (no text/html in Accept) count as bearer so
// they get a status code instead of a redirect.
func extractToken(c *fiber.Ctx) (string, string) {
	if header := c.Get("Authorization"); header != "" {
		if token := strings.TrimPrefix(header, "Bearer "); token != header {
			return token, TransportBearer
		}
	}
	if cookie := c.Cookies(CookieName); cookie != "" {
		return cookie, TransportCookie
	}
	if !strings.Contains(c.Get("Accept"), "text/html") {
		return "", TransportBearer
	}
	return "", TransportCookie
}
