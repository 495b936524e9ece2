package broker

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/guesswhonow/guesswho-services/internal/comm"
	"github.com/guesswhonow/guesswho-services/internal/socketsvc/ws"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// Broker bridges the NATS room change feed onto websockets. Every
// event published by the game service lands here once and fans out to
// the sockets watching that room.
type Broker struct {
	Conn *nats.Conn
	Ws   *ws.Ws
}

func NewBroker(nc *nats.Conn, sockets *ws.Ws) *Broker {
	return &Broker{Conn: nc, Ws: sockets}
}

// SubscribeRoomEvents listens on the wildcard room subject.
func (b *Broker) SubscribeRoomEvents() (*nats.Subscription, error) {
	return b.Conn.Subscribe("room.events.>", b.handleRoomEvent)
}

func (b *Broker) handleRoomEvent(msgNat *nats.Msg) {
	event := &comm.RoomEvent{}
	if err := json.Unmarshal(msgNat.Data, event); err != nil {
		log.Errorf("Error nats message %s", err)
		return
	}

	sockets, found := b.Ws.GetRoomSockets(event.RoomCode)
	if !found {
		return
	}

	out := comm.WSMessage{Type: "room-event", Data: msgNat.Data}
	raw, err := json.Marshal(out)
	if err != nil {
		log.Errorf("Failed to marshal room event for sockets: %v", err)
		return
	}

	for _, socketId := range sockets {
		conn, ok := b.Ws.GetConnection(socketId)
		if !ok {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			log.Errorf("Failed to deliver %s to socket %s: %v", event.Type, socketId, err)
		}
	}
}
