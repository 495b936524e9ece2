package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/guesswhonow/guesswho-services/internal/comm"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/game"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/models"
)

type PlayerService struct {
	rooms   RoomStore
	players PlayerStore
	locks   *RoomLocks
	pub     Publisher
}

func NewPlayerService(rooms RoomStore, players PlayerStore, locks *RoomLocks, pub Publisher) *PlayerService {
	return &PlayerService{rooms: rooms, players: players, locks: locks, pub: pub}
}

// Join adds an account to the room behind the code. Capacity and the
// one-membership-per-account rule are enforced in the store under a
// room-row lock.
func (s *PlayerService) Join(ctx context.Context, code, accountID, username string) (*models.Player, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is empty", game.ErrValidation)
	}

	room, err := s.rooms.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	player, err := s.players.CreatePlayerIfJoinable(ctx, room.ID, accountID, username)
	if err != nil {
		return nil, err
	}

	roster, err := s.players.ListByRoom(ctx, room.ID)
	if err == nil {
		publishState(s.pub, comm.EventPlayerJoined, room, roster)
	}

	return player, nil
}

// Me returns the caller's own membership, including the secret role and
// word. This is the only read path that ever reveals them; room-wide
// queries and the change feed stay redacted.
func (s *PlayerService) Me(ctx context.Context, roomID, accountID string) (*models.Player, error) {
	return s.players.GetByRoomAndAccount(ctx, roomID, accountID)
}

// SubmitClue records the caller's clue for the current round. Re-submitting
// before the phase completes overwrites: last write wins.
func (s *PlayerService) SubmitClue(ctx context.Context, roomID, accountID, text string) (*models.Player, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false, fmt.Errorf("%w: clue is empty", game.ErrValidation)
	}

	unlock := s.locks.Lock(roomID)
	defer unlock()

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, false, err
	}
	if room.Status != models.RoomPlaying {
		return nil, false, game.ErrInvalidPhase
	}

	player, err := s.players.GetByRoomAndAccount(ctx, roomID, accountID)
	if err != nil {
		return nil, false, err
	}
	if !player.IsAlive {
		return nil, false, game.ErrInvalidPhase
	}

	player, err = s.players.SubmitClue(ctx, player.ID, text)
	if err != nil {
		return nil, false, err
	}

	roster, err := s.players.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, false, err
	}
	done := game.AllCluesIn(roster)

	publishState(s.pub, comm.EventClueSubmitted, room, roster)

	return player, done, nil
}

// SetScore writes an externally decided score onto a room member.
// Host only; the module has no award policy of its own.
func (s *PlayerService) SetScore(ctx context.Context, roomID, accountID, playerID string, score int) error {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return err
	}
	if room.HostID != accountID {
		return game.ErrUnauthorized
	}

	player, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return err
	}
	if player.RoomID != roomID {
		return fmt.Errorf("%w: player %s is not in room %s", game.ErrValidation, playerID, roomID)
	}

	return s.players.SetScore(ctx, playerID, score)
}
