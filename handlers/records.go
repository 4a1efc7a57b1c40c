// handlers/records.go
package handlers

import (
	"game-record-system/middleware"
	"game-record-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRecordRoutes(app *fiber.App, db *gorm.DB, recordService *services.RecordService, tokens middleware.TokenParser) {
	// User search backs the new-match player picker.
	app.Get("/users",
		middleware.Authenticate(db, tokens),
		recordService.SearchUsers)

	// The generic record routes share one wildcard per verb, so role
	// checks cannot live on the route: login and register are public while
	// games and match are not. OptionalAuthenticate resolves the caller
	// when a token is present and the handlers enforce the policy per
	// classified endpoint.
	optional := middleware.OptionalAuthenticate(db, tokens)
	app.Get("/:endpoint", optional, recordService.ListRecords)
	app.Post("/:endpoint", optional, recordService.CreateRecord)
	app.Patch("/:endpoint/:id", optional, recordService.UpdateRecord)
	app.Delete("/:endpoint/:id", optional, recordService.DeleteRecord)
}
