// services/record_service.go
package services

import (
	"log"
	"strconv"
	"strings"

	"game-record-system/middleware"
	"game-record-system/models"
	"game-record-system/store"
	"game-record-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// RecordService implements the generic record endpoints. Every handler
// resolves the :endpoint path segment through models.Classify and then
// dispatches on the closed endpoint set. The switch statements below are
// the only places that know which entity a segment maps to.
type RecordService struct {
	DB      *gorm.DB
	Matches *MatchService
}

func NewRecordService(db *gorm.DB, matches *MatchService) *RecordService {
	return &RecordService{DB: db, Matches: matches}
}

// ListRecords serves GET /:endpoint. games and new_match require an
// authenticated caller; login and register are the public entry pages and
// return only their form metadata since rendering happens client-side.
func (s *RecordService) ListRecords(c *fiber.Ctx) error {
	endpoint, ok := models.Classify(c.Params("endpoint"))
	if !ok {
		return fiber.ErrNotFound
	}

	switch endpoint {
	case models.EndpointGames:
		if ok, err := s.requireAction(c, middleware.ActionReadRecords); !ok {
			return err
		}
		games, err := store.ListAll[models.Game](s.DB)
		if err != nil {
			return storageFault(c, err)
		}
		user := middleware.CurrentUser(c)
		return c.JSON(fiber.Map{
			"games":      games,
			"can_mutate": user != nil && user.Role == models.RoleTeacher,
		})

	case models.EndpointNewMatch:
		// Dropdown data for the record-a-match form.
		if ok, err := s.requireAction(c, middleware.ActionRecordMatch); !ok {
			return err
		}
		games, err := store.ListAll[models.Game](s.DB)
		if err != nil {
			return storageFault(c, err)
		}
		users, err := store.ListAll[models.User](s.DB)
		if err != nil {
			return storageFault(c, err)
		}
		return c.JSON(fiber.Map{"games": games, "users": users})

	case models.EndpointMatch:
		if ok, err := s.requireAction(c, middleware.ActionReadRecords); !ok {
			return err
		}
		matches, err := store.ListAll[models.Match](s.DB)
		if err != nil {
			return storageFault(c, err)
		}
		return c.JSON(fiber.Map{"matches": matches})

	case models.EndpointLogin:
		return c.JSON(fiber.Map{"fields": []string{"username", "password"}})

	case models.EndpointRegister:
		return c.JSON(fiber.Map{
			"fields": []string{"email", "username", "password", "role", "first_name", "last_name"},
			"roles":  []string{models.RoleTeacher, models.RoleLeader, models.RoleStudent},
		})

	default:
		return fiber.ErrNotFound
	}
}

// CreateRecord serves POST /:endpoint. register is public; games needs the
// teacher role; match and new_match need teacher or leader. Browser (cookie)
// callers are redirected back to the list view on success, API callers get
// the created record as JSON, the same asymmetry as the deny paths.
func (s *RecordService) CreateRecord(c *fiber.Ctx) error {
	endpoint, ok := models.Classify(c.Params("endpoint"))
	if !ok {
		return fiber.ErrNotFound
	}

	switch endpoint {
	case models.EndpointGames:
		if ok, err := s.requireAction(c, middleware.ActionCreateGame); !ok {
			return err
		}
		return s.createGame(c)

	case models.EndpointRegister:
		return s.registerUser(c)

	case models.EndpointMatch, models.EndpointNewMatch:
		if ok, err := s.requireAction(c, middleware.ActionRecordMatch); !ok {
			return err
		}
		return s.Matches.CreateMatch(c)

	default:
		// login and leaderboard are not record collections.
		return fiber.ErrNotFound
	}
}

// UpdateRecord serves PATCH /:endpoint/:id with a partial JSON field set.
// 204 on success, 404 for ids that never existed, 410 for ids that did,
// 409 on uniqueness conflicts.
func (s *RecordService) UpdateRecord(c *fiber.Ctx) error {
	endpoint, ok := models.Classify(c.Params("endpoint"))
	if !ok {
		return fiber.ErrNotFound
	}
	id, err := parseID(c)
	if err != nil {
		return fiber.ErrNotFound
	}

	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}

	switch endpoint {
	case models.EndpointGames:
		if ok, err := s.requireAction(c, middleware.ActionUpdateGame); !ok {
			return err
		}
		fields := pickFields(body, "name", "description")
		if name, ok := fields["name"].(string); ok {
			fields["slug"] = slug.Make(name)
		}
		if len(fields) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no updatable fields"})
		}
		return s.finishUpdate(c, store.UpdateByID[models.Game](s.DB, id, fields), func() (bool, error) {
			return store.HasExisted[models.Game](s.DB, id)
		})

	case models.EndpointMatch, models.EndpointNewMatch:
		if ok, err := s.requireAction(c, middleware.ActionRecordMatch); !ok {
			return err
		}
		fields := pickFields(body, "game_id", "played_at")
		if len(fields) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no updatable fields"})
		}
		return s.finishUpdate(c, store.UpdateByID[models.Match](s.DB, id, fields), func() (bool, error) {
			return store.HasExisted[models.Match](s.DB, id)
		})

	default:
		return fiber.ErrNotFound
	}
}

// DeleteRecord serves DELETE /:endpoint/:id. Idempotent: deleting an id
// that does not exist still answers 204. A game still referenced by
// matches is protected by the FK and answers 409.
func (s *RecordService) DeleteRecord(c *fiber.Ctx) error {
	endpoint, ok := models.Classify(c.Params("endpoint"))
	if !ok {
		return fiber.ErrNotFound
	}
	id, err := parseID(c)
	if err != nil {
		return fiber.ErrNotFound
	}

	switch endpoint {
	case models.EndpointGames:
		if ok, err := s.requireAction(c, middleware.ActionDeleteGame); !ok {
			return err
		}
		return s.finishDelete(c, store.DeleteByID[models.Game](s.DB, id))

	case models.EndpointMatch, models.EndpointNewMatch:
		if ok, err := s.requireAction(c, middleware.ActionDeleteMatch); !ok {
			return err
		}
		return s.finishDelete(c, store.DeleteByID[models.Match](s.DB, id))

	default:
		return fiber.ErrNotFound
	}
}

// SearchUsers serves GET /users?q= for the new-match player picker.
func (s *RecordService) SearchUsers(c *fiber.Ctx) error {
	if ok, err := s.requireAction(c, middleware.ActionReadRecords); !ok {
		return err
	}
	query := strings.TrimSpace(c.Query("q"))
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	db := s.DB.Model(&models.User{}).Limit(limit).Order("username ASC")
	if query != "" {
		term := "%" + strings.ToLower(query) + "%"
		db = db.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", term, term)
	}

	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		return storageFault(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

func (s *RecordService) createGame(c *fiber.Ctx) error {
	var req models.CreateGameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	game := models.Game{
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
	}
	if err := store.Insert(s.DB, &game); err != nil {
		if err == store.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "a game with that name already exists"})
		}
		return storageFault(c, err)
	}
	return created(c, "/games", game)
}

func (s *RecordService) registerUser(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email, username and password are required"})
	}
	if req.Role == "" {
		req.Role = models.RoleStudent
	}
	if !models.ValidRole(req.Role) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown role"})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("[AUTH] hash password: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	user := models.User{
		Email:     req.Email,
		Username:  req.Username,
		Password:  hash,
		Role:      req.Role,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := store.Insert(s.DB, &user); err != nil {
		if err == store.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "email or username already taken"})
		}
		return storageFault(c, err)
	}
	return created(c, "/login", user)
}

func (s *RecordService) finishUpdate(c *fiber.Ctx, err error, hasExisted func() (bool, error)) error {
	switch {
	case err == nil:
		return c.SendStatus(fiber.StatusNoContent)
	case err == store.ErrConflict:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "update conflicts with an existing record"})
	case err == store.ErrNotFound:
		existed, exErr := hasExisted()
		if exErr != nil {
			return storageFault(c, exErr)
		}
		if existed {
			return c.SendStatus(fiber.StatusGone)
		}
		return fiber.ErrNotFound
	default:
		return storageFault(c, err)
	}
}

func (s *RecordService) finishDelete(c *fiber.Ctx, err error) error {
	switch {
	case err == nil:
		return c.SendStatus(fiber.StatusNoContent)
	case err == store.ErrConflict:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "record is still referenced"})
	default:
		return storageFault(c, err)
	}
}

// requireAction checks the authorization policy for endpoints that share a
// wildcard route and so cannot be gated by per-route middleware. On denial
// the response has already been written; the caller just returns err.
func (s *RecordService) requireAction(c *fiber.Ctx, action middleware.Action) (bool, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return false, middleware.Deny(c, fiber.StatusUnauthorized, "missing credentials")
	}
	if !middleware.Authorize(user.Role, action) {
		return false, middleware.Deny(c, fiber.StatusForbidden, "insufficient role")
	}
	return true, nil
}
