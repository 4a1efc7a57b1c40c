// models/game.go
package models

import "time"

// Game is a playable game that matches can be recorded against.
// Name and Slug are both unique; Slug is derived from Name on create/update.
type Game struct {
	ID          uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex"`
	Description string `json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Matches reference this game with the default ON DELETE NO ACTION:
	// deleting a game that already has recorded matches is rejected at the
	// DB level and surfaced as a 409. The default is used deliberately, a
	// RESTRICT action is enforced via internal triggers on sqlite and its
	// error code would not translate to the conflict sentinel.
	Matches []Match `json:"-" gorm:"foreignKey:GameID"`
}

type CreateGameRequest struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}
