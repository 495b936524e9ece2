package models

import "time"

// Vote is immutable once recorded. At most one vote per
// (room, voter, round), enforced by a unique index.
type Vote struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	VoterID   string    `json:"voter_id"`  // FK to players(id)
	TargetID  string    `json:"target_id"` // FK to players(id)
	Round     int       `json:"round"`
	CreatedAt time.Time `json:"created_at"`
}
