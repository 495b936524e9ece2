package models

import (
	"time"
)

// Room status values. Transitions are forward-only:
// waiting -> playing -> finished.
const (
	RoomWaiting  = "waiting"
	RoomPlaying  = "playing"
	RoomFinished = "finished"
)

// Room modes. Classic is the two-faction game with a ratio-derived
// undercover count; MrX adds a wordless third faction with explicit counts.
const (
	ModeClassic = "classic"
	ModeMrX     = "mrx"
)

// Winner values recorded on a finished room. WinnerDraw marks a game
// that hit the round limit with no faction win.
const (
	WinnerCivilians  = "civilians"
	WinnerUndercover = "undercover"
	WinnerMrX        = "mrx"
	WinnerDraw       = "draw"
)

type Room struct {
	ID              string    `json:"id"`
	RoomCode        string    `json:"room_code"` // 6-digit numeric, unique among rooms of the last 24h
	HostID          string    `json:"host_id"`   // account id of the creator
	Status          string    `json:"status"`
	Mode            string    `json:"mode"`
	CurrentRound    int       `json:"current_round"`
	MaxPlayers      int       `json:"max_players"`
	MaxRounds       int       `json:"max_rounds"`
	UndercoverCount int       `json:"undercover_count"` // explicit count, mrx mode only
	MrXCount        int       `json:"mrx_count"`        // explicit count, mrx mode only
	CivilianWord    string    `json:"civilian_word,omitempty"`
	UndercoverWord  string    `json:"undercover_word,omitempty"`
	Winner          string    `json:"winner,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Public returns a copy safe to hand to any room member while the game
// is still running: the secret pair is only exposed once the room is
// finished. Per-player words travel through the player-scoped query only.
func (r Room) Public() Room {
	if r.Status != RoomFinished {
		r.CivilianWord = ""
		r.UndercoverWord = ""
	}
	return r
}
