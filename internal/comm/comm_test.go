package comm

import (
	"encoding/json"
	"testing"

	"github.com/guesswhonow/guesswho-services/internal/gamesvc/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWSMessage_WatchRoomPayload(t *testing.T) {
	raw := []byte(`{"type":"watch-room","data":{"room_code":"042137"}}`)

	var msg WSMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, "watch-room", msg.Type)

	var payload WatchRoom
	require.NoError(t, json.Unmarshal(msg.Data, &payload))
	assert.Equal(t, "042137", payload.RoomCode)
}

func TestRoomEvent_CarriesRedactedState(t *testing.T) {
	state := RoomState{
		Room: models.Room{ID: "room-1", RoomCode: "042137", Status: models.RoomPlaying}.Public(),
		Players: []models.Player{
			models.Player{ID: "p1", Role: models.RoleUndercover, Word: "Orange", IsAlive: true}.Public(models.RoomPlaying),
		},
	}
	data, err := json.Marshal(state)
	require.NoError(t, err)

	event := RoomEvent{Type: EventVoteSubmitted, RoomID: "room-1", RoomCode: "042137", Round: 1, Data: data}
	wire, err := json.Marshal(event)
	require.NoError(t, err)

	assert.NotContains(t, string(wire), "Orange")
	assert.Contains(t, string(wire), `"role":""`)
}
