// handlers/match.go
package handlers

import (
	"game-record-system/middleware"
	"game-record-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupMatchRoutes(app *fiber.App, db *gorm.DB, matchService *services.MatchService, tokens middleware.TokenParser) {
	// Registered before the /:endpoint wildcards so the static segments
	// win. Both views are read-only and open to any authenticated role.
	// Middleware is attached per route, not via a group: a group on "/"
	// would install a catch-all Use and lock out the public endpoints.
	auth := middleware.Authenticate(db, tokens)
	read := middleware.RequireAction(middleware.ActionReadRecords)
	app.Get("/leaderboard", auth, read, matchService.Leaderboard)
	app.Get("/match/:id", auth, read, matchService.GetMatch)
}
