package broker

import (
	"encoding/json"

	"github.com/guesswhonow/guesswho-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// RoomEventsSubject is the per-room change-feed subject. The socket
// service subscribes to the wildcard and fans events out to watching
// clients.
const RoomEventsSubject = "room.events."

// Broker publishes room mutations onto NATS. Delivery is best effort:
// a failed publish is logged, never surfaced to the request that
// caused the mutation.
type Broker struct {
	Conn *nats.Conn
}

func NewBroker(nc *nats.Conn) *Broker {
	return &Broker{Conn: nc}
}

func (b *Broker) PublishRoomEvent(event comm.RoomEvent) {
	if b == nil || b.Conn == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Errorf("Failed to marshal room event %s: %v", event.Type, err)
		return
	}

	topic := RoomEventsSubject + event.RoomCode
	if err := b.Conn.Publish(topic, data); err != nil {
		log.Errorf("Failed to publish %s to %s: %v", event.Type, topic, err)
		return
	}

	log.Debugf("published %s for room %s round %d", event.Type, event.RoomCode, event.Round)
}
