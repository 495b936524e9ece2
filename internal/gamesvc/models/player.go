package models

import "time"

// Player roles.
const (
	RoleCivilian   = "civilian"
	RoleUndercover = "undercover"
	RoleMrX        = "mrx"
)

// Player is a room membership record, distinct from an account.
// One membership per (room, account) is enforced by the store.
type Player struct {
	ID           string    `json:"id"`
	RoomID       string    `json:"room_id"`
	AccountID    string    `json:"account_id"`
	Username     string    `json:"username"` // display name, may differ from the account's
	Role         string    `json:"role"`
	Word         string    `json:"word,omitempty"` // empty for Mr. X, deliberately
	IsAlive      bool      `json:"is_alive"`
	HasGivenClue bool      `json:"has_given_clue"`
	Clue         string    `json:"clue,omitempty"`
	Score        int       `json:"score"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Public strips everything only the player themselves may see.
// Roles and words stay hidden until the room is finished.
func (p Player) Public(roomStatus string) Player {
	if roomStatus != RoomFinished {
		p.Role = ""
		p.Word = ""
	}
	return p
}
