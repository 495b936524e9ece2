package service

import (
	"context"
	"fmt"

	"github.com/guesswhonow/guesswho-services/internal/comm"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/game"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/models"
	log "github.com/sirupsen/logrus"
)

type VoteService struct {
	rooms   RoomStore
	players PlayerStore
	votes   VoteStore
	locks   *RoomLocks
	pub     Publisher

	// OnGameEnd awards points when a room finishes. Nil means scores
	// stay wherever they were set externally.
	OnGameEnd ScoreHook
}

func NewVoteService(rooms RoomStore, players PlayerStore, votes VoteStore, locks *RoomLocks, pub Publisher) *VoteService {
	return &VoteService{rooms: rooms, players: players, votes: votes, locks: locks, pub: pub}
}

// VoteOutcome reports what a vote submission did. Resolved stays false
// until the last alive voter lands their vote; after that the round's
// elimination, any win, and the round advance are all in here.
type VoteOutcome struct {
	VotesCast  int    `json:"votes_cast"`
	Resolved   bool   `json:"resolved"`
	Eliminated string `json:"eliminated,omitempty"`
	Tied       bool   `json:"tied,omitempty"`
	Finished   bool   `json:"finished"`
	Winner     string `json:"winner,omitempty"`
	NextRound  int    `json:"next_round,omitempty"`
}

// SubmitVote records one vote and, when it completes the round,
// resolves it: strict-max target eliminated, exact tie eliminates
// nobody, then the win evaluator runs over the remaining roster.
func (s *VoteService) SubmitVote(ctx context.Context, roomID, accountID, targetID string, round int) (*VoteOutcome, error) {
	unlock := s.locks.Lock(roomID)
	defer unlock()

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status != models.RoomPlaying {
		return nil, game.ErrInvalidPhase
	}
	if round != room.CurrentRound {
		return nil, game.ErrInvalidPhase
	}

	voter, err := s.players.GetByRoomAndAccount(ctx, roomID, accountID)
	if err != nil {
		return nil, err
	}
	if !voter.IsAlive {
		return nil, game.ErrInvalidPhase
	}

	target, err := s.players.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target.RoomID != roomID {
		return nil, fmt.Errorf("%w: target is not in this room", game.ErrValidation)
	}
	if !target.IsAlive {
		return nil, fmt.Errorf("%w: target is already eliminated", game.ErrValidation)
	}
	if target.ID == voter.ID {
		return nil, fmt.Errorf("%w: voting for yourself", game.ErrValidation)
	}

	if _, err := s.votes.Insert(ctx, roomID, voter.ID, target.ID, round); err != nil {
		return nil, err
	}

	votes, err := s.votes.ListByRound(ctx, roomID, round)
	if err != nil {
		return nil, err
	}
	roster, err := s.players.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	publishState(s.pub, comm.EventVoteSubmitted, room, roster)

	if !game.AllVotesIn(roster, votes) {
		return &VoteOutcome{VotesCast: len(votes)}, nil
	}

	return s.resolveRound(ctx, room, roster, votes)
}

// resolveRound runs inside the room lock once every alive player has
// voted.
func (s *VoteService) resolveRound(ctx context.Context, room *models.Room, roster []models.Player, votes []models.Vote) (*VoteOutcome, error) {
	tally := game.Tally(votes)
	outcome := &VoteOutcome{
		VotesCast:  len(votes),
		Resolved:   true,
		Eliminated: tally.Eliminated,
		Tied:       tally.Tied,
	}

	if tally.Eliminated != "" {
		if err := s.players.Eliminate(ctx, tally.Eliminated); err != nil {
			return nil, err
		}
		for i := range roster {
			if roster[i].ID == tally.Eliminated {
				roster[i].IsAlive = false
			}
		}
		publishState(s.pub, comm.EventPlayerEliminated, room, roster)
	}

	verdict := game.EvaluateWinner(roster)
	switch {
	case verdict.Finished:
		return s.finish(ctx, room, roster, verdict.Winner, outcome)
	case room.CurrentRound >= room.MaxRounds:
		// round limit hit with no faction win: a draw, not a winner
		return s.finish(ctx, room, roster, models.WinnerDraw, outcome)
	}

	room, err := s.rooms.AdvanceRound(ctx, room.ID, room.CurrentRound)
	if err != nil {
		return nil, err
	}
	if err := s.players.ResetClues(ctx, room.ID); err != nil {
		return nil, err
	}
	outcome.NextRound = room.CurrentRound

	roster, err = s.players.ListByRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	publishState(s.pub, comm.EventRoundAdvanced, room, roster)

	return outcome, nil
}

func (s *VoteService) finish(ctx context.Context, room *models.Room, roster []models.Player, winner string, outcome *VoteOutcome) (*VoteOutcome, error) {
	room, err := s.rooms.FinishRoom(ctx, room.ID, winner)
	if err != nil {
		return nil, err
	}
	outcome.Finished = true
	outcome.Winner = winner

	s.applyScoreHook(ctx, room, roster)

	roster, err = s.players.ListByRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	publishState(s.pub, comm.EventGameFinished, room, roster)

	return outcome, nil
}

func (s *VoteService) applyScoreHook(ctx context.Context, room *models.Room, roster []models.Player) {
	if s.OnGameEnd == nil {
		return
	}
	for playerID, score := range s.OnGameEnd(ctx, *room, roster) {
		if err := s.players.SetScore(ctx, playerID, score); err != nil {
			log.Errorf("Failed to apply score for player %s: %v", playerID, err)
		}
	}
}

// GuessOutcome reports a Mr. X word guess.
type GuessOutcome struct {
	Correct  bool   `json:"correct"`
	Finished bool   `json:"finished"`
	Winner   string `json:"winner,omitempty"`
}

// Guess is Mr. X's independent win path: a case-insensitive exact match
// on the civilian word ends the game immediately, whatever the round
// state. A wrong guess eliminates Mr. X and re-runs the win evaluator.
func (s *VoteService) Guess(ctx context.Context, roomID, accountID, word string) (*GuessOutcome, error) {
	unlock := s.locks.Lock(roomID)
	defer unlock()

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status != models.RoomPlaying {
		return nil, game.ErrInvalidPhase
	}

	player, err := s.players.GetByRoomAndAccount(ctx, roomID, accountID)
	if err != nil {
		return nil, err
	}
	if player.Role != models.RoleMrX || !player.IsAlive {
		return nil, fmt.Errorf("%w: only an alive Mr. X may guess the word", game.ErrValidation)
	}

	roster, err := s.players.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if game.GuessMatches(word, room.CivilianWord) {
		outcome := &VoteOutcome{}
		if _, err := s.finish(ctx, room, roster, models.WinnerMrX, outcome); err != nil {
			return nil, err
		}
		return &GuessOutcome{Correct: true, Finished: true, Winner: models.WinnerMrX}, nil
	}

	// wrong guess knocks Mr. X out
	if err := s.players.Eliminate(ctx, player.ID); err != nil {
		return nil, err
	}
	for i := range roster {
		if roster[i].ID == player.ID {
			roster[i].IsAlive = false
		}
	}
	publishState(s.pub, comm.EventPlayerEliminated, room, roster)

	verdict := game.EvaluateWinner(roster)
	if verdict.Finished {
		outcome := &VoteOutcome{}
		if _, err := s.finish(ctx, room, roster, verdict.Winner, outcome); err != nil {
			return nil, err
		}
		return &GuessOutcome{Finished: true, Winner: verdict.Winner}, nil
	}

	return &GuessOutcome{}, nil
}
