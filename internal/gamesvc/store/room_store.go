package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/guesswhonow/guesswho-services/internal/gamesvc/game"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const roomColumns = `id, room_code, host_id, status, mode, current_round, max_players,
	max_rounds, undercover_count, mrx_count, civilian_word, undercover_word, winner,
	created_at, updated_at`

type RoomStore struct {
	db *pgxpool.Pool
}

func NewRoomStore(db *pgxpool.Pool) *RoomStore {
	return &RoomStore{db: db}
}

func scanRoom(row pgx.Row) (*models.Room, error) {
	r := &models.Room{}
	err := row.Scan(
		&r.ID,
		&r.RoomCode,
		&r.HostID,
		&r.Status,
		&r.Mode,
		&r.CurrentRound,
		&r.MaxPlayers,
		&r.MaxRounds,
		&r.UndercoverCount,
		&r.MrXCount,
		&r.CivilianWord,
		&r.UndercoverWord,
		&r.Winner,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// CodeInUse reports whether a room created within the last 24 hours
// already holds the code. Uniqueness of codes is recency-scoped, not
// global.
func (s *RoomStore) CodeInUse(ctx context.Context, code string) (bool, error) {
	var used bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM rooms
			WHERE room_code = $1 AND created_at > now() - INTERVAL '24 hours'
		)
	`, code).Scan(&used)
	if err != nil {
		return false, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}
	return used, nil
}

func (s *RoomStore) CreateRoom(ctx context.Context, room models.Room) (*models.Room, error) {
	query := `
		INSERT INTO rooms (room_code, host_id, mode, max_players, max_rounds,
			undercover_count, mrx_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + roomColumns

	created, err := scanRoom(s.db.QueryRow(ctx, query,
		room.RoomCode, room.HostID, room.Mode, room.MaxPlayers, room.MaxRounds,
		room.UndercoverCount, room.MrXCount))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}
	return created, nil
}

func (s *RoomStore) GetByID(ctx context.Context, roomID string) (*models.Room, error) {
	room, err := scanRoom(s.db.QueryRow(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = $1`, roomID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, game.ErrRoomNotFound
		}
		return nil, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}
	return room, nil
}

// GetByCode resolves the most recently created room for a code. Codes
// recycle after 24 hours, so newest wins.
func (s *RoomStore) GetByCode(ctx context.Context, code string) (*models.Room, error) {
	room, err := scanRoom(s.db.QueryRow(ctx, `
		SELECT `+roomColumns+`
		FROM rooms
		WHERE room_code = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, game.ErrRoomNotFound
		}
		return nil, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}
	return room, nil
}

// StartGame transitions waiting -> playing and records the drawn pair.
// The status predicate in the UPDATE makes a concurrent double start
// lose cleanly: zero rows means someone else already moved the room on.
func (s *RoomStore) StartGame(ctx context.Context, roomID string, pair models.WordPair) (*models.Room, error) {
	room, err := scanRoom(s.db.QueryRow(ctx, `
		UPDATE rooms
		SET status = 'playing', civilian_word = $2, undercover_word = $3, updated_at = now()
		WHERE id = $1 AND status = 'waiting'
		RETURNING `+roomColumns, roomID, pair.Civilian, pair.Undercover))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, game.ErrInvalidPhase
		}
		return nil, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}
	return room, nil
}

// AdvanceRound bumps current_round, conditional on the round the caller
// resolved. A stale caller gets ErrInvalidPhase instead of advancing twice.
func (s *RoomStore) AdvanceRound(ctx context.Context, roomID string, fromRound int) (*models.Room, error) {
	room, err := scanRoom(s.db.QueryRow(ctx, `
		UPDATE rooms
		SET current_round = current_round + 1, updated_at = now()
		WHERE id = $1 AND current_round = $2 AND status = 'playing'
		RETURNING `+roomColumns, roomID, fromRound))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, game.ErrInvalidPhase
		}
		return nil, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}
	return room, nil
}

func (s *RoomStore) FinishRoom(ctx context.Context, roomID, winner string) (*models.Room, error) {
	room, err := scanRoom(s.db.QueryRow(ctx, `
		UPDATE rooms
		SET status = 'finished', winner = $2, updated_at = now()
		WHERE id = $1 AND status = 'playing'
		RETURNING `+roomColumns, roomID, winner))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, game.ErrInvalidPhase
		}
		return nil, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}
	return room, nil
}
