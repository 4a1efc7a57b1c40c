// middleware/policy.go
package middleware

import "game-record-system/models"

// Action is the closed set of things a caller can ask the service to do.
type Action int

const (
	ActionReadRecords Action = iota
	ActionCreateGame
	ActionUpdateGame
	ActionDeleteGame
	ActionRecordMatch
	ActionDeleteMatch
	ActionRegister
)

// allowedRoles is the whole authorization policy in one table. An action
// missing from the table is denied for every role; ActionRegister is public
// and handled before authentication runs, it never reaches Authorize.
var allowedRoles = map[Action][]string{
	ActionReadRecords: {models.RoleTeacher, models.RoleLeader, models.RoleStudent},
	ActionCreateGame:  {models.RoleTeacher},
	ActionUpdateGame:  {models.RoleTeacher},
	ActionDeleteGame:  {models.RoleTeacher},
	ActionRecordMatch: {models.RoleTeacher, models.RoleLeader},
	ActionDeleteMatch: {models.RoleTeacher, models.RoleLeader},
}

// Authorize decides whether a caller with the given role may perform the
// action. Pure table lookup, no I/O.
func Authorize(role string, action Action) bool {
	for _, allowed := range allowedRoles[action] {
		if role == allowed {
			return true
		}
	}
	return false
}
