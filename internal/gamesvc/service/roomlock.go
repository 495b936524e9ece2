package service

import "sync"

// RoomLocks serializes game actions per room. Clue and vote writes race
// the phase-advance check, and startGame must only succeed once; a
// keyed mutex around each room's critical sections is the discipline
// that keeps two writers from both deciding they completed a phase.
// The storage layer's conditional updates back this up across
// instances.
type RoomLocks struct {
	locks sync.Map // roomID -> *sync.Mutex
}

func NewRoomLocks() *RoomLocks {
	return &RoomLocks{}
}

// Lock takes the room's mutex and returns the unlock func.
func (l *RoomLocks) Lock(roomID string) func() {
	m, _ := l.locks.LoadOrStore(roomID, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
