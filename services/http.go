// services/http.go
package services

import (
	"log"
	"strconv"

	"game-record-system/middleware"

	"github.com/gofiber/fiber/v2"
)

// created finishes a successful create the way the caller's transport
// expects: browsers are redirected back to the relevant list page, API
// clients get 201 with the stored record (ids assigned).
func created(c *fiber.Ctx, redirectTo string, record any) error {
	if transport, _ := c.Locals(middleware.LocalTransport).(string); transport == middleware.TransportCookie {
		return c.Redirect(redirectTo, fiber.StatusSeeOther)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// storageFault logs the underlying persistence failure and answers with a
// generic 500. Internal detail never reaches the client.
func storageFault(c *fiber.Ctx, err error) error {
	log.Printf("[STORE] %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}

// pickFields whitelists the client-settable columns of a partial update.
// Anything outside the allowed set is silently dropped.
func pickFields(body map[string]any, allowed ...string) map[string]any {
	fields := make(map[string]any, len(allowed))
	for _, key := range allowed {
		if v, ok := body[key]; ok {
			fields[key] = v
		}
	}
	return fields
}
