// models/match.go
package models

import "time"

// Match records one played game session. A match owns its MatchPlayer rows
// and its single MatchResult row: all three are written in one transaction
// at creation time and the FKs cascade on match deletion.
type Match struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	GameID    uint      `json:"game_id" gorm:"index;not null"`
	CreatorID uint      `json:"creator_id" gorm:"index;not null"`
	PlayedAt  time.Time `json:"played_at"`
	CreatedAt time.Time `json:"created_at"`

	Game    Game          `json:"game,omitempty" gorm:"foreignKey:GameID"`
	Creator User          `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Players []MatchPlayer `json:"players,omitempty" gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
	Result  *MatchResult  `json:"result,omitempty" gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
}

// MatchPlayer links a participating user to a match. The observed workflow
// creates exactly two rows per match (winner and loser) but the schema does
// not cap participation.
type MatchPlayer struct {
	ID       uint `json:"id" gorm:"primaryKey;autoIncrement"`
	MatchID  uint `json:"match_id" gorm:"index;not null"`
	PlayerID uint `json:"player_id" gorm:"index;not null"`

	Player User `json:"player,omitempty" gorm:"foreignKey:PlayerID"`
}

// MatchResult holds the win/loss outcome. At most one result per match.
type MatchResult struct {
	ID      uint `json:"id" gorm:"primaryKey;autoIncrement"`
	MatchID uint `json:"match_id" gorm:"uniqueIndex;not null"`
	WonID   uint `json:"won_id" gorm:"index;not null"`
	LostID  uint `json:"lost_id" gorm:"not null"`

	Won  User `json:"won,omitempty" gorm:"foreignKey:WonID"`
	Lost User `json:"lost,omitempty" gorm:"foreignKey:LostID"`
}

type CreateMatchRequest struct {
	GameID   uint       `json:"game_id" form:"game_id"`
	WinnerID uint       `json:"winner_id" form:"winner_id"`
	LoserID  uint       `json:"loser_id" form:"loser_id"`
	PlayedAt *time.Time `json:"played_at" form:"played_at"`
}
