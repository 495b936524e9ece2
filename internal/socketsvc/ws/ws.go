package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/guesswhonow/guesswho-services/internal/comm"
	log "github.com/sirupsen/logrus"
)

type Ws struct {
	connMap sync.Map // socketId -> *websocket.Conn
	roomMap sync.Map // socketId -> room code being watched
}

func NewWs() *Ws {
	return &Ws{}
}

// SocketMessage handles a message from a web client.
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	switch message.Type {
	case "watch-room":
		s.handleWatchRoom(socketId, message)
	case "unwatch-room":
		s.roomMap.Delete(socketId)
	default:
		log.Warnf("unknown event received: %s", message.Type)
	}
}

// handleWatchRoom registers the socket for a room's change feed. A
// socket watches one room at a time; watching another room replaces
// the old registration.
func (s *Ws) handleWatchRoom(socketId string, msg *comm.WSMessage) {
	var payload comm.WatchRoom
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		log.Errorf("Error: invalid watch-room payload %s", err)
		return
	}

	if payload.RoomCode == "" {
		log.Error("Invalid watch-room payload: missing room code")
		return
	}

	s.roomMap.Store(socketId, payload.RoomCode)
	log.Infof("socket %s watching room %s", socketId, payload.RoomCode)
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, conn)
}

func (s *Ws) GetConnection(socketId string) (*websocket.Conn, bool) {
	conn, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return conn.(*websocket.Conn), true
}

func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
	s.roomMap.Delete(socketId)
}

// GetRoomSockets returns every socket watching the room code.
func (s *Ws) GetRoomSockets(roomCode string) ([]string, bool) {
	var sockets []string
	found := false

	s.roomMap.Range(func(key, value interface{}) bool {
		if value.(string) == roomCode {
			sockets = append(sockets, key.(string))
			found = true
		}
		return true // continue iterating
	})

	return sockets, found
}
