package middleware

import (
	"testing"

	"game-record-system/models"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		role   string
		action Action
		want   bool
	}{
		{models.RoleTeacher, ActionCreateGame, true},
		{models.RoleTeacher, ActionUpdateGame, true},
		{models.RoleTeacher, ActionDeleteGame, true},
		{models.RoleTeacher, ActionRecordMatch, true},
		{models.RoleTeacher, ActionReadRecords, true},

		{models.RoleLeader, ActionCreateGame, false},
		{models.RoleLeader, ActionUpdateGame, false},
		{models.RoleLeader, ActionDeleteGame, false},
		{models.RoleLeader, ActionRecordMatch, true},
		{models.RoleLeader, ActionDeleteMatch, true},
		{models.RoleLeader, ActionReadRecords, true},

		{models.RoleStudent, ActionCreateGame, false},
		{models.RoleStudent, ActionRecordMatch, false},
		{models.RoleStudent, ActionDeleteMatch, false},
		{models.RoleStudent, ActionReadRecords, true},

		// Roles outside the closed set get nothing.
		{"admin", ActionReadRecords, false},
		{"", ActionCreateGame, false},
	}
	for _, tt := range tests {
		if got := Authorize(tt.role, tt.action); got != tt.want {
			t.Errorf("Authorize(%q, %v) = %v, want %v", tt.role, tt.action, got, tt.want)
		}
	}
}
