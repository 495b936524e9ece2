package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/guesswhonow/guesswho-services/internal/gamesvc/game"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const playerColumns = `id, room_id, account_id, username, role, word, is_alive,
	has_given_clue, clue, score, created_at, updated_at`

type PlayerStore struct {
	db *pgxpool.Pool
}

func NewPlayerStore(db *pgxpool.Pool) *PlayerStore {
	return &PlayerStore{db: db}
}

func scanPlayer(row pgx.Row) (*models.Player, error) {
	p := &models.Player{}
	err := row.Scan(
		&p.ID,
		&p.RoomID,
		&p.AccountID,
		&p.Username,
		&p.Role,
		&p.Word,
		&p.IsAlive,
		&p.HasGivenClue,
		&p.Clue,
		&p.Score,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreatePlayerIfJoinable inserts a membership under a room-row lock.
// The CTE takes FOR UPDATE on the room and only admits the insert while
// the room is waiting and below capacity, so two concurrent joins can
// never both take the last seat. It fails with:
// - ErrAlreadyJoined on the (room, account) unique constraint,
// - ErrRoomNotFound / ErrInvalidPhase / ErrRoomFull when the insert
//   produced no row, disambiguated by a follow-up read.
func (s *PlayerStore) CreatePlayerIfJoinable(ctx context.Context, roomID, accountID, username string) (*models.Player, error) {
	const query = `
WITH locked_room AS (
  SELECT id, max_players
  FROM rooms
  WHERE id = $1
    AND status = 'waiting'
  FOR UPDATE
)
INSERT INTO players (room_id, account_id, username)
SELECT lr.id, $2, $3
FROM locked_room lr
WHERE (SELECT COUNT(*) FROM players p WHERE p.room_id = lr.id) < lr.max_players
RETURNING ` + playerColumns

	player, err := scanPlayer(s.db.QueryRow(ctx, query, roomID, accountID, username))
	if err == nil {
		return player, nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if pgErr.ConstraintName == "unique_room_account" {
				return nil, game.ErrAlreadyJoined
			}
		case "23503": // foreign_key_violation
			return nil, game.ErrRoomNotFound
		}
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}

	// zero rows: figure out which precondition failed
	var status string
	err = s.db.QueryRow(ctx, `SELECT status FROM rooms WHERE id = $1`, roomID).Scan(&status)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, game.ErrRoomNotFound
	case err != nil:
		return nil, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	case status != models.RoomWaiting:
		return nil, game.ErrInvalidPhase
	default:
		return nil, game.ErrRoomFull
	}
}

func (s *PlayerStore) GetByID(ctx context.Context, playerID string) (*models.Player, error) {
	player, err := scanPlayer(s.db.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE id = $1`, playerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, game.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}
	return player, nil
}

func (s *PlayerStore) GetByRoomAndAccount(ctx context.Context, roomID, accountID string) (*models.Player, error) {
	player, err := scanPlayer(s.db.QueryRow(ctx, `
		SELECT `+playerColumns+`
		FROM players
		WHERE room_id = $1 AND account_id = $2
	`, roomID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, game.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}
	return player, nil
}

func (s *PlayerStore) ListByRoom(ctx context.Context, roomID string) ([]models.Player, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+playerColumns+`
		FROM players
		WHERE room_id = $1
		ORDER BY created_at
	`, roomID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
		}
		players = append(players, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}

	return players, nil
}

// ApplyAssignments writes the secret roles and words of a fresh game in
// one transaction, resetting alive/clue state as it goes.
func (s *PlayerStore) ApplyAssignments(ctx context.Context, roomID string, assignments []game.Assignment) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}
	defer tx.Rollback(ctx)

	for _, a := range assignments {
		tag, err := tx.Exec(ctx, `
			UPDATE players
			SET role = $3, word = $4, is_alive = TRUE, has_given_clue = FALSE,
				clue = '', updated_at = now()
			WHERE id = $1 AND room_id = $2
		`, a.PlayerID, roomID, a.Role, a.Word)
		if err != nil {
			return fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
		}
		if tag.RowsAffected() == 0 {
			return game.ErrPlayerNotFound
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *PlayerStore) SubmitClue(ctx context.Context, playerID, text string) (*models.Player, error) {
	player, err := scanPlayer(s.db.QueryRow(ctx, `
		UPDATE players
		SET clue = $2, has_given_clue = TRUE, updated_at = now()
		WHERE id = $1 AND is_alive = TRUE
		RETURNING `+playerColumns, playerID, text))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, game.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}
	return player, nil
}

// Eliminate flips is_alive to false. The flip is permanent: no code path
// in this module sets it back.
func (s *PlayerStore) Eliminate(ctx context.Context, playerID string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE players
		SET is_alive = FALSE, updated_at = now()
		WHERE id = $1
	`, playerID)
	if err != nil {
		return fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return game.ErrPlayerNotFound
	}
	return nil
}

// ResetClues clears per-round clue state for everyone in the room when
// a new round begins.
func (s *PlayerStore) ResetClues(ctx context.Context, roomID string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE players
		SET has_given_clue = FALSE, clue = '', updated_at = now()
		WHERE room_id = $1
	`, roomID)
	if err != nil {
		return fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}
	return nil
}

// SetScore stores an externally decided score. Point-award policy lives
// outside this module.
func (s *PlayerStore) SetScore(ctx context.Context, playerID string, score int) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE players
		SET score = $2, updated_at = now()
		WHERE id = $1
	`, playerID, score)
	if err != nil {
		return fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return game.ErrPlayerNotFound
	}
	return nil
}
