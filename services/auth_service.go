// services/auth_service.go
package services

import (
	"log"
	"time"

	"game-record-system/middleware"
	"game-record-system/models"
	"game-record-system/store"
	"game-record-system/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthService struct {
	DB     *gorm.DB
	Tokens *TokenService
}

func NewAuthService(db *gorm.DB, tokens *TokenService) *AuthService {
	return &AuthService{DB: db, Tokens: tokens}
}

// Token exchanges form credentials (username, password) for a bearer token.
// On success the token is returned as JSON and also set as the session
// cookie, so the same endpoint serves both API clients and the login form.
func (s *AuthService) Token(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return unauthorized(c)
	}

	user, err := store.GetByField[models.User](s.DB, "username", username)
	if err != nil {
		if err != store.ErrNotFound {
			log.Printf("[AUTH] lookup %q: %v", username, err)
		}
		// Unknown user and wrong password are indistinguishable to clients.
		return unauthorized(c)
	}

	match, err := utils.VerifyPassword(password, user.Password)
	if err != nil {
		log.Printf("[AUTH] stored hash for %q is unreadable: %v", username, err)
		return unauthorized(c)
	}
	if !match {
		return unauthorized(c)
	}

	token, err := s.Tokens.Issue(user.Username)
	if err != nil {
		log.Printf("[AUTH] issue token for %q: %v", username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.Tokens.TTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(models.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Logout clears the session cookie. Tokens themselves stay valid until
// expiry; there is no server-side revocation list.
func (s *AuthService) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.SendStatus(fiber.StatusNoContent)
}

// Me returns the authenticated caller. Password never appears: the model
// serializes it as json:"-".
func (s *AuthService) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	return c.JSON(user)
}

func unauthorized(c *fiber.Ctx) error {
	c.Set("WWW-Authenticate", "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "incorrect username or password"})
}
