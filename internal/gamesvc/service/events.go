package service

import (
	"encoding/json"
	"time"

	"github.com/guesswhonow/guesswho-services/internal/comm"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/models"
	log "github.com/sirupsen/logrus"
)

// publishState pushes a room event carrying the public snapshot of the
// room. Secret words and unrevealed roles are stripped before anything
// hits the feed.
func publishState(pub Publisher, eventType string, room *models.Room, players []models.Player) {
	if pub == nil || room == nil {
		return
	}

	state := comm.RoomState{
		Room:    room.Public(),
		Players: make([]models.Player, 0, len(players)),
	}
	for _, p := range players {
		state.Players = append(state.Players, p.Public(room.Status))
	}

	data, err := json.Marshal(state)
	if err != nil {
		log.Errorf("Failed to marshal room state for event %s: %v", eventType, err)
		return
	}

	pub.PublishRoomEvent(comm.RoomEvent{
		Type:      eventType,
		RoomID:    room.ID,
		RoomCode:  room.RoomCode,
		Round:     room.CurrentRound,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}
