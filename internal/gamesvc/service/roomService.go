package service

import (
	"context"
	crand "crypto/rand"
	"fmt"
	"math/big"
	"math/rand"
	"time"

	"github.com/guesswhonow/guesswho-services/internal/comm"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/game"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/models"
)

const (
	minPlayersToStart = 3
	defaultMaxRounds  = 8

	// collision retries before giving up on a free code
	roomCodeAttempts = 25
)

type RoomService struct {
	rooms   RoomStore
	players PlayerStore
	packs   WordPackStore
	locks   *RoomLocks
	pub     Publisher
}

func NewRoomService(rooms RoomStore, players PlayerStore, packs WordPackStore, locks *RoomLocks, pub Publisher) *RoomService {
	return &RoomService{rooms: rooms, players: players, packs: packs, locks: locks, pub: pub}
}

// CreateRoomParams carries the host's room settings. Zero values fall
// back to defaults; counts only matter in mrx mode.
type CreateRoomParams struct {
	MaxPlayers      int
	MaxRounds       int
	Mode            string
	UndercoverCount int
	MrXCount        int
}

// generateRoomCode produces a random 6-digit numeric code, leading
// zeros included.
func generateRoomCode() string {
	n, err := crand.Int(crand.Reader, big.NewInt(1000000))
	if err != nil {
		// fallback to math/rand if crypto fails
		return fmt.Sprintf("%06d", rand.Intn(1000000))
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// CreateRoom allocates a code unused by any room of the last 24 hours
// and inserts the room in waiting status at round 1.
func (s *RoomService) CreateRoom(ctx context.Context, hostID string, params CreateRoomParams) (*models.Room, error) {
	if params.MaxPlayers < minPlayersToStart {
		return nil, fmt.Errorf("%w: max_players must be at least %d", game.ErrValidation, minPlayersToStart)
	}
	if params.MaxRounds <= 0 {
		params.MaxRounds = defaultMaxRounds
	}
	switch params.Mode {
	case "":
		params.Mode = models.ModeClassic
	case models.ModeClassic:
	case models.ModeMrX:
		if params.UndercoverCount < 1 || params.MrXCount < 1 {
			return nil, fmt.Errorf("%w: mrx mode needs explicit undercover and mrx counts", game.ErrValidation)
		}
		if params.UndercoverCount+params.MrXCount > params.MaxPlayers-1 {
			return nil, fmt.Errorf("%w: minority counts leave no civilians", game.ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", game.ErrValidation, params.Mode)
	}

	for attempt := 0; attempt < roomCodeAttempts; attempt++ {
		code := generateRoomCode()
		used, err := s.rooms.CodeInUse(ctx, code)
		if err != nil {
			return nil, err
		}
		if used {
			continue
		}

		room, err := s.rooms.CreateRoom(ctx, models.Room{
			RoomCode:        code,
			HostID:          hostID,
			Mode:            params.Mode,
			MaxPlayers:      params.MaxPlayers,
			MaxRounds:       params.MaxRounds,
			UndercoverCount: params.UndercoverCount,
			MrXCount:        params.MrXCount,
		})
		if err != nil {
			return nil, err
		}

		publishState(s.pub, comm.EventRoomCreated, room, nil)
		return room, nil
	}

	return nil, game.ErrRoomCodeExhausted
}

func (s *RoomService) GetRoomByCode(ctx context.Context, code string) (*models.Room, error) {
	return s.rooms.GetByCode(ctx, code)
}

// Snapshot returns the public view of a room and its roster.
func (s *RoomService) Snapshot(ctx context.Context, roomID string) (*comm.RoomState, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	players, err := s.players.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	state := &comm.RoomState{Room: room.Public()}
	for _, p := range players {
		state.Players = append(state.Players, p.Public(room.Status))
	}
	return state, nil
}

// StartGame moves a waiting room into play: draws one pair from the
// chosen pack, partitions the roster into factions, and writes each
// player's secret role and word. Only the host may start, and the
// conditional status flip in the store makes a double start lose with
// ErrInvalidPhase instead of re-dealing roles.
func (s *RoomService) StartGame(ctx context.Context, accountID, roomID, packID string) (*models.Room, error) {
	unlock := s.locks.Lock(roomID)
	defer unlock()

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.HostID != accountID {
		return nil, game.ErrUnauthorized
	}
	if room.Status != models.RoomWaiting {
		return nil, game.ErrInvalidPhase
	}

	players, err := s.players.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if len(players) < minPlayersToStart {
		return nil, game.ErrInsufficientPlayers
	}

	pack, err := s.packs.GetByID(ctx, packID)
	if err != nil {
		return nil, err
	}
	if err := game.ValidatePack(pack); err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrValidation, err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	pair, err := game.SelectPair(pack, rng)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrValidation, err)
	}

	var majority game.RoleSpec
	var minorities []game.RoleSpec
	if room.Mode == models.ModeMrX {
		majority, minorities = game.MrXSpecs(pair, room.UndercoverCount, room.MrXCount)
	} else {
		majority, minorities = game.ClassicSpecs(pair)
	}

	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	assignments, err := game.AssignRoles(ids, majority, minorities, rng)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrValidation, err)
	}

	// Win the status race first; the loser never writes roles.
	room, err = s.rooms.StartGame(ctx, roomID, pair)
	if err != nil {
		return nil, err
	}
	if err := s.players.ApplyAssignments(ctx, roomID, assignments); err != nil {
		return nil, err
	}

	players, err = s.players.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	publishState(s.pub, comm.EventGameStarted, room, players)

	return room, nil
}

// SpeakingOrder computes the clue order for the current round.
func (s *RoomService) SpeakingOrder(ctx context.Context, roomID string) ([]string, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status != models.RoomPlaying {
		return nil, game.ErrInvalidPhase
	}

	players, err := s.players.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return game.SpeakingOrder(players, rng), nil
}
