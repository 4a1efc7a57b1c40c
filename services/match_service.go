// services/match_service.go
package services

import (
	"errors"
	"log"
	"sort"
	"time"

	"game-record-system/middleware"
	"game-record-system/models"
	"game-record-system/store"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MatchService owns everything that touches more than one match table at a
// time: recording a match (match + players + result in one transaction),
// the joined detail view, and the leaderboard aggregate.
type MatchService struct {
	DB *gorm.DB
}

func NewMatchService(db *gorm.DB) *MatchService {
	return &MatchService{DB: db}
}

// CreateMatch records a played match. The match row, both MatchPlayer rows
// and the MatchResult row commit atomically. A failure anywhere rolls the
// whole thing back, so a match can never exist half-recorded.
//
// Role checks happen in the caller (the generic create dispatcher); this
// handler assumes an authenticated teacher or leader.
func (s *MatchService) CreateMatch(c *fiber.Ctx) error {
	var req models.CreateMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.GameID == 0 || req.WinnerID == 0 || req.LoserID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "game_id, winner_id and loser_id are required"})
	}
	if req.WinnerID == req.LoserID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "winner and loser must be different players"})
	}

	creator := middleware.CurrentUser(c)
	if creator == nil {
		return middleware.Deny(c, fiber.StatusUnauthorized, "missing credentials")
	}

	playedAt := time.Now().UTC()
	if req.PlayedAt != nil {
		playedAt = *req.PlayedAt
	}

	// Referenced rows are checked up front so bad ids come back as 404
	// instead of a raw FK failure.
	if _, err := store.GetByID[models.Game](s.DB, req.GameID); err != nil {
		return s.referenceFault(c, err, "game")
	}
	for _, playerID := range []uint{req.WinnerID, req.LoserID} {
		if _, err := store.GetByID[models.User](s.DB, playerID); err != nil {
			return s.referenceFault(c, err, "player")
		}
	}

	match := models.Match{
		GameID:    req.GameID,
		CreatorID: creator.ID,
		PlayedAt:  playedAt,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&match).Error; err != nil {
			return err
		}
		players := []models.MatchPlayer{
			{MatchID: match.ID, PlayerID: req.WinnerID},
			{MatchID: match.ID, PlayerID: req.LoserID},
		}
		if err := tx.Create(&players).Error; err != nil {
			return err
		}
		result := models.MatchResult{
			MatchID: match.ID,
			WonID:   req.WinnerID,
			LostID:  req.LoserID,
		}
		return tx.Create(&result).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "match already has a result"})
		}
		return storageFault(c, err)
	}

	return created(c, "/match", match)
}

// GetMatch serves GET /match/:id: the match with its game, creator,
// players and result joined in.
func (s *MatchService) GetMatch(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fiber.ErrNotFound
	}

	var match models.Match
	err = s.DB.
		Preload("Game").
		Preload("Creator").
		Preload("Players.Player").
		Preload("Result.Won").
		Preload("Result.Lost").
		First(&match, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return storageFault(c, err)
	}
	return c.JSON(match)
}

// LeaderboardEntry is one row of the wins ranking.
type LeaderboardEntry struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Wins     int64  `json:"wins"`
}

const leaderboardSize = 10

// Leaderboard serves GET /leaderboard: win counts per user, descending,
// ties broken by username ascending so equal counts render in a stable
// order.
func (s *MatchService) Leaderboard(c *fiber.Ctx) error {
	counts, err := store.CountGroupedByField[models.MatchResult](s.DB, "won_id", 0)
	if err != nil {
		return storageFault(c, err)
	}

	entries := make([]LeaderboardEntry, 0, len(counts))
	for _, gc := range counts {
		user, err := store.GetByID[models.User](s.DB, uint(gc.Value))
		if err != nil {
			if err == store.ErrNotFound {
				// Winner deleted since; skip rather than show a ghost row.
				continue
			}
			return storageFault(c, err)
		}
		entries = append(entries, LeaderboardEntry{
			UserID:   user.ID,
			Username: user.Username,
			Wins:     gc.Count,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		return entries[i].Username < entries[j].Username
	})
	if len(entries) > leaderboardSize {
		entries = entries[:leaderboardSize]
	}
	return c.JSON(fiber.Map{"leaderboard": entries})
}

// RecomputeStats refreshes the denormalized games_played / games_won
// counters on users from the match tables. Called on a schedule, never
// from a request handler.
func (s *MatchService) RecomputeStats() error {
	err := s.DB.Exec(`
		UPDATE users SET
			games_played = (SELECT COUNT(*) FROM match_players mp WHERE mp.player_id = users.id),
			games_won    = (SELECT COUNT(*) FROM match_results mr WHERE mr.won_id = users.id)
	`).Error
	if err != nil {
		log.Printf("[STATS] recompute failed: %v", err)
	}
	return err
}

func (s *MatchService) referenceFault(c *fiber.Ctx, err error, what string) error {
	if err == store.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown " + what})
	}
	return storageFault(c, err)
}
