package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/guesswhonow/guesswho-services/internal/gamesvc/game"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VoteStore struct {
	db *pgxpool.Pool
}

func NewVoteStore(db *pgxpool.Pool) *VoteStore {
	return &VoteStore{db: db}
}

// Insert records a vote. A second vote by the same voter in the same
// room and round hits the unique_room_voter_round constraint and comes
// back as ErrDuplicateVote; the original row stays untouched.
func (s *VoteStore) Insert(ctx context.Context, roomID, voterID, targetID string, round int) (*models.Vote, error) {
	v := &models.Vote{}
	err := s.db.QueryRow(ctx, `
		INSERT INTO votes (room_id, voter_id, target_id, round)
		VALUES ($1, $2, $3, $4)
		RETURNING id, room_id, voter_id, target_id, round, created_at
	`, roomID, voterID, targetID, round).Scan(
		&v.ID,
		&v.RoomID,
		&v.VoterID,
		&v.TargetID,
		&v.Round,
		&v.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return nil, game.ErrDuplicateVote
			case "23503": // foreign_key_violation
				return nil, game.ErrPlayerNotFound
			}
		}
		return nil, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}
	return v, nil
}

// ListByRound returns every vote of one round. Tallies only ever run
// over the round being resolved.
func (s *VoteStore) ListByRound(ctx context.Context, roomID string, round int) ([]models.Vote, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, room_id, voter_id, target_id, round, created_at
		FROM votes
		WHERE room_id = $1 AND round = $2
	`, roomID, round)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var votes []models.Vote
	for rows.Next() {
		var v models.Vote
		err := rows.Scan(&v.ID, &v.RoomID, &v.VoterID, &v.TargetID, &v.Round, &v.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}

	return votes, nil
}
