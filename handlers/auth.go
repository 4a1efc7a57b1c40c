// handlers/auth.go
package handlers

import (
	"game-record-system/middleware"
	"game-record-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB, authService *services.AuthService) {
	// Public: credential exchange. Sets the session cookie and returns the
	// bearer token so both browser and API flows use the same endpoint.
	app.Post("/token", authService.Token)
	app.Post("/logout", authService.Logout)

	secured := app.Group("/users", middleware.Authenticate(db, authService.Tokens))
	secured.Get("/me", authService.Me)
}
