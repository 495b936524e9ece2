package comm

import (
	"encoding/json"
	"time"

	"github.com/guesswhonow/guesswho-services/internal/gamesvc/models"
)

type WSMessage struct {
	Type     string          `json:"type"` // e.g. "watch-room", "room-event"
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid"`
}

// Room event types published by the game service after each mutation.
const (
	EventRoomCreated      = "room_created"
	EventPlayerJoined     = "player_joined"
	EventGameStarted      = "game_started"
	EventClueSubmitted    = "clue_submitted"
	EventVoteSubmitted    = "vote_submitted"
	EventPlayerEliminated = "player_eliminated"
	EventRoundAdvanced    = "round_advanced"
	EventGameFinished     = "game_finished"
)

// RoomEvent is the change-feed record that fans out to every socket
// watching a room. It only ever carries public state; roles and secret
// words never travel through the feed.
type RoomEvent struct {
	Type      string          `json:"type"`
	RoomID    string          `json:"room_id"`
	RoomCode  string          `json:"room_code"`
	Round     int             `json:"round"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// WatchRoom is the payload a web client sends to start receiving the
// change feed of a room.
type WatchRoom struct {
	RoomCode string `json:"room_code"`
}

// RoomState is the public snapshot attached to most room events.
type RoomState struct {
	Room    models.Room     `json:"room"`
	Players []models.Player `json:"players"`
}

type ServiceHeartbeat struct {
	ID        string    `json:"id"` // service id
	Timestamp time.Time `json:"timestamp"`
}
