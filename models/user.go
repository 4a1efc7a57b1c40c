// models/user.go
package models

import "time"

// Caller roles. Role is assigned at registration and never changed after;
// there is no role-change endpoint.
const (
	RoleTeacher = "teacher"
	RoleLeader  = "leader"
	RoleStudent = "student"
)

// ValidRole reports whether s is one of the three recognized roles.
func ValidRole(s string) bool {
	return s == RoleTeacher || s == RoleLeader || s == RoleStudent
}

// User is an account that can log in and, depending on role, record games
// and matches. Password holds the argon2id hash and is never serialized.
type User struct {
	ID        uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	Username  string `json:"username" gorm:"uniqueIndex;not null"`
	Password  string `json:"-" gorm:"not null"`
	Role      string `json:"role" gorm:"not null;default:'student'"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// Denormalized counters, recomputed periodically from the match tables
	// by the stats scheduler. Reads only; never written by request handlers.
	GamesPlayed int `json:"games_played" gorm:"default:0"`
	GamesWon    int `json:"games_won" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
}

type RegisterRequest struct {
	Email     string `json:"email" form:"email"`
	Username  string `json:"username" form:"username"`
	Password  string `json:"password" form:"password"`
	Role      string `json:"role" form:"role"`
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
