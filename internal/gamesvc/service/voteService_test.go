package service

import (
	"context"
	"testing"

	"github.com/guesswhonow/guesswho-services/internal/comm"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/game"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newVoteFixture() (*MockRoomStore, *MockPlayerStore, *MockVoteStore, *RecordingPublisher, *VoteService) {
	rooms := new(MockRoomStore)
	players := new(MockPlayerStore)
	votes := new(MockVoteStore)
	pub := &RecordingPublisher{}
	svc := NewVoteService(rooms, players, votes, NewRoomLocks(), pub)
	return rooms, players, votes, pub, svc
}

func playingRoom() *models.Room {
	room := waitingRoom()
	room.Status = models.RoomPlaying
	room.CivilianWord = "Apple"
	room.UndercoverWord = "Orange"
	return room
}

// playingRoster builds civs civilians plus one undercover, all alive.
func playingRoster(civs int) []models.Player {
	players := make([]models.Player, 0, civs+1)
	for i := 0; i < civs; i++ {
		players = append(players, models.Player{
			ID:        "civ-" + string(rune('1'+i)),
			RoomID:    "room-1",
			AccountID: "acct-civ-" + string(rune('1'+i)),
			Role:      models.RoleCivilian,
			Word:      "Apple",
			IsAlive:   true,
		})
	}
	players = append(players, models.Player{
		ID:        "uc-1",
		RoomID:    "room-1",
		AccountID: "acct-uc-1",
		Role:      models.RoleUndercover,
		Word:      "Orange",
		IsAlive:   true,
	})
	return players
}

func castVotes(targets map[string]string) []models.Vote {
	votes := make([]models.Vote, 0, len(targets))
	for voter, target := range targets {
		votes = append(votes, models.Vote{RoomID: "room-1", VoterID: voter, TargetID: target, Round: 1})
	}
	return votes
}

func TestSubmitVote_Guards(t *testing.T) {
	t.Run("room already finished", func(t *testing.T) {
		rooms, _, _, _, svc := newVoteFixture()
		room := playingRoom()
		room.Status = models.RoomFinished
		rooms.On("GetByID", mock.Anything, "room-1").Return(room, nil)

		_, err := svc.SubmitVote(context.Background(), "room-1", "acct-civ-1", "uc-1", 1)

		assert.ErrorIs(t, err, game.ErrInvalidPhase)
	})

	t.Run("stale round number", func(t *testing.T) {
		rooms, _, _, _, svc := newVoteFixture()
		room := playingRoom()
		room.CurrentRound = 3
		rooms.On("GetByID", mock.Anything, "room-1").Return(room, nil)

		_, err := svc.SubmitVote(context.Background(), "room-1", "acct-civ-1", "uc-1", 2)

		assert.ErrorIs(t, err, game.ErrInvalidPhase)
	})

	t.Run("eliminated voter", func(t *testing.T) {
		rooms, players, _, _, svc := newVoteFixture()
		rooms.On("GetByID", mock.Anything, "room-1").Return(playingRoom(), nil)
		players.On("GetByRoomAndAccount", mock.Anything, "room-1", "acct-civ-1").
			Return(&models.Player{ID: "civ-1", RoomID: "room-1", IsAlive: false}, nil)

		_, err := svc.SubmitVote(context.Background(), "room-1", "acct-civ-1", "uc-1", 1)

		assert.ErrorIs(t, err, game.ErrInvalidPhase)
	})

	t.Run("target outside the room", func(t *testing.T) {
		rooms, players, _, _, svc := newVoteFixture()
		rooms.On("GetByID", mock.Anything, "room-1").Return(playingRoom(), nil)
		players.On("GetByRoomAndAccount", mock.Anything, "room-1", "acct-civ-1").
			Return(&models.Player{ID: "civ-1", RoomID: "room-1", IsAlive: true}, nil)
		players.On("GetByID", mock.Anything, "stranger").
			Return(&models.Player{ID: "stranger", RoomID: "room-other", IsAlive: true}, nil)

		_, err := svc.SubmitVote(context.Background(), "room-1", "acct-civ-1", "stranger", 1)

		assert.ErrorIs(t, err, game.ErrValidation)
	})

	t.Run("dead target", func(t *testing.T) {
		rooms, players, _, _, svc := newVoteFixture()
		rooms.On("GetByID", mock.Anything, "room-1").Return(playingRoom(), nil)
		players.On("GetByRoomAndAccount", mock.Anything, "room-1", "acct-civ-1").
			Return(&models.Player{ID: "civ-1", RoomID: "room-1", IsAlive: true}, nil)
		players.On("GetByID", mock.Anything, "uc-1").
			Return(&models.Player{ID: "uc-1", RoomID: "room-1", IsAlive: false}, nil)

		_, err := svc.SubmitVote(context.Background(), "room-1", "acct-civ-1", "uc-1", 1)

		assert.ErrorIs(t, err, game.ErrValidation)
	})

	t.Run("voting for yourself", func(t *testing.T) {
		rooms, players, _, _, svc := newVoteFixture()
		rooms.On("GetByID", mock.Anything, "room-1").Return(playingRoom(), nil)
		players.On("GetByRoomAndAccount", mock.Anything, "room-1", "acct-civ-1").
			Return(&models.Player{ID: "civ-1", RoomID: "room-1", IsAlive: true}, nil)
		players.On("GetByID", mock.Anything, "civ-1").
			Return(&models.Player{ID: "civ-1", RoomID: "room-1", IsAlive: true}, nil)

		_, err := svc.SubmitVote(context.Background(), "room-1", "acct-civ-1", "civ-1", 1)

		assert.ErrorIs(t, err, game.ErrValidation)
	})

	t.Run("second vote in the same round", func(t *testing.T) {
		rooms, players, votes, _, svc := newVoteFixture()
		rooms.On("GetByID", mock.Anything, "room-1").Return(playingRoom(), nil)
		players.On("GetByRoomAndAccount", mock.Anything, "room-1", "acct-civ-1").
			Return(&models.Player{ID: "civ-1", RoomID: "room-1", IsAlive: true}, nil)
		players.On("GetByID", mock.Anything, "uc-1").
			Return(&models.Player{ID: "uc-1", RoomID: "room-1", IsAlive: true}, nil)
		votes.On("Insert", mock.Anything, "room-1", "civ-1", "uc-1", 1).
			Return(nil, game.ErrDuplicateVote)

		_, err := svc.SubmitVote(context.Background(), "room-1", "acct-civ-1", "uc-1", 1)

		assert.ErrorIs(t, err, game.ErrDuplicateVote)
	})
}

func TestSubmitVote_WaitsForRemainingVoters(t *testing.T) {
	rooms, players, votes, pub, svc := newVoteFixture()
	roster := playingRoster(3)

	rooms.On("GetByID", mock.Anything, "room-1").Return(playingRoom(), nil)
	players.On("GetByRoomAndAccount", mock.Anything, "room-1", "acct-civ-1").Return(&roster[0], nil)
	players.On("GetByID", mock.Anything, "uc-1").Return(&roster[3], nil)
	votes.On("Insert", mock.Anything, "room-1", "civ-1", "uc-1", 1).Return(&models.Vote{}, nil)
	votes.On("ListByRound", mock.Anything, "room-1", 1).
		Return(castVotes(map[string]string{"civ-1": "uc-1"}), nil)
	players.On("ListByRoom", mock.Anything, "room-1").Return(roster, nil)

	outcome, err := svc.SubmitVote(context.Background(), "room-1", "acct-civ-1", "uc-1", 1)

	require.NoError(t, err)
	assert.False(t, outcome.Resolved)
	assert.Equal(t, 1, outcome.VotesCast)
	assert.Equal(t, []string{comm.EventVoteSubmitted}, pub.Types())
	rooms.AssertNotCalled(t, "AdvanceRound", mock.Anything, mock.Anything, mock.Anything)
	rooms.AssertNotCalled(t, "FinishRoom", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitVote_MajorityOnUndercoverEndsGame(t *testing.T) {
	rooms, players, votes, pub, svc := newVoteFixture()
	roster := playingRoster(3)

	finished := playingRoom()
	finished.Status = models.RoomFinished
	finished.Winner = models.WinnerCivilians

	rooms.On("GetByID", mock.Anything, "room-1").Return(playingRoom(), nil)
	players.On("GetByRoomAndAccount", mock.Anything, "room-1", "acct-civ-3").Return(&roster[2], nil)
	players.On("GetByID", mock.Anything, "uc-1").Return(&roster[3], nil)
	votes.On("Insert", mock.Anything, "room-1", "civ-3", "uc-1", 1).Return(&models.Vote{}, nil)
	votes.On("ListByRound", mock.Anything, "room-1", 1).Return(castVotes(map[string]string{
		"civ-1": "uc-1",
		"civ-2": "uc-1",
		"civ-3": "uc-1",
		"uc-1":  "civ-1",
	}), nil)
	players.On("ListByRoom", mock.Anything, "room-1").Return(roster, nil)
	players.On("Eliminate", mock.Anything, "uc-1").Return(nil)
	rooms.On("FinishRoom", mock.Anything, "room-1", models.WinnerCivilians).Return(finished, nil)

	outcome, err := svc.SubmitVote(context.Background(), "room-1", "acct-civ-3", "uc-1", 1)

	require.NoError(t, err)
	assert.True(t, outcome.Resolved)
	assert.Equal(t, "uc-1", outcome.Eliminated)
	assert.True(t, outcome.Finished)
	assert.Equal(t, models.WinnerCivilians, outcome.Winner)
	assert.Equal(t,
		[]string{comm.EventVoteSubmitted, comm.EventPlayerEliminated, comm.EventGameFinished},
		pub.Types())
	rooms.AssertNotCalled(t, "AdvanceRound", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitVote_CivilianOutAdvancesRound(t *testing.T) {
	rooms, players, votes, pub, svc := newVoteFixture()
	roster := playingRoster(4)

	advanced := playingRoom()
	advanced.CurrentRound = 2

	rooms.On("GetByID", mock.Anything, "room-1").Return(playingRoom(), nil)
	players.On("GetByRoomAndAccount", mock.Anything, "room-1", "acct-civ-1").Return(&roster[0], nil)
	players.On("GetByID", mock.Anything, "civ-4").Return(&roster[3], nil)
	votes.On("Insert", mock.Anything, "room-1", "civ-1", "civ-4", 1).Return(&models.Vote{}, nil)
	votes.On("ListByRound", mock.Anything, "room-1", 1).Return(castVotes(map[string]string{
		"civ-1": "civ-4",
		"civ-2": "civ-4",
		"civ-3": "civ-4",
		"civ-4": "uc-1",
		"uc-1":  "civ-4",
	}), nil)
	players.On("ListByRoom", mock.Anything, "room-1").Return(roster, nil)
	players.On("Eliminate", mock.Anything, "civ-4").Return(nil)
	rooms.On("AdvanceRound", mock.Anything, "room-1", 1).Return(advanced, nil)
	players.On("ResetClues", mock.Anything, "room-1").Return(nil)

	outcome, err := svc.SubmitVote(context.Background(), "room-1", "acct-civ-1", "civ-4", 1)

	require.NoError(t, err)
	assert.True(t, outcome.Resolved)
	assert.Equal(t, "civ-4", outcome.Eliminated)
	assert.False(t, outcome.Finished)
	assert.Equal(t, 2, outcome.NextRound)
	assert.Equal(t,
		[]string{comm.EventVoteSubmitted, comm.EventPlayerEliminated, comm.EventRoundAdvanced},
		pub.Types())
	rooms.AssertNotCalled(t, "FinishRoom", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitVote_TieEliminatesNobody(t *testing.T) {
	rooms, players, votes, _, svc := newVoteFixture()
	roster := playingRoster(3)

	advanced := playingRoom()
	advanced.CurrentRound = 2

	rooms.On("GetByID", mock.Anything, "room-1").Return(playingRoom(), nil)
	players.On("GetByRoomAndAccount", mock.Anything, "room-1", "acct-civ-1").Return(&roster[0], nil)
	players.On("GetByID", mock.Anything, "uc-1").Return(&roster[3], nil)
	votes.On("Insert", mock.Anything, "room-1", "civ-1", "uc-1", 1).Return(&models.Vote{}, nil)
	votes.On("ListByRound", mock.Anything, "room-1", 1).Return(castVotes(map[string]string{
		"civ-1": "uc-1",
		"civ-2": "uc-1",
		"civ-3": "civ-1",
		"uc-1":  "civ-1",
	}), nil)
	players.On("ListByRoom", mock.Anything, "room-1").Return(roster, nil)
	rooms.On("AdvanceRound", mock.Anything, "room-1", 1).Return(advanced, nil)
	players.On("ResetClues", mock.Anything, "room-1").Return(nil)

	outcome, err := svc.SubmitVote(context.Background(), "room-1", "acct-civ-1", "uc-1", 1)

	require.NoError(t, err)
	assert.True(t, outcome.Tied)
	assert.Empty(t, outcome.Eliminated)
	assert.Equal(t, 2, outcome.NextRound)
	players.AssertNotCalled(t, "Eliminate", mock.Anything, mock.Anything)
}

func TestSubmitVote_RoundLimitDraws(t *testing.T) {
	rooms, players, votes, _, svc := newVoteFixture()
	roster := playingRoster(3)

	last := playingRoom()
	last.CurrentRound = 8
	finished := playingRoom()
	finished.Status = models.RoomFinished
	finished.Winner = models.WinnerDraw

	rooms.On("GetByID", mock.Anything, "room-1").Return(last, nil)
	players.On("GetByRoomAndAccount", mock.Anything, "room-1", "acct-civ-1").Return(&roster[0], nil)
	players.On("GetByID", mock.Anything, "uc-1").Return(&roster[3], nil)
	votes.On("Insert", mock.Anything, "room-1", "civ-1", "uc-1", 8).Return(&models.Vote{}, nil)
	votes.On("ListByRound", mock.Anything, "room-1", 8).Return(castVotes(map[string]string{
		"civ-1": "uc-1",
		"civ-2": "uc-1",
		"civ-3": "civ-1",
		"uc-1":  "civ-1",
	}), nil)
	players.On("ListByRoom", mock.Anything, "room-1").Return(roster, nil)
	rooms.On("FinishRoom", mock.Anything, "room-1", models.WinnerDraw).Return(finished, nil)

	outcome, err := svc.SubmitVote(context.Background(), "room-1", "acct-civ-1", "uc-1", 8)

	require.NoError(t, err)
	assert.True(t, outcome.Finished)
	assert.Equal(t, models.WinnerDraw, outcome.Winner)
	rooms.AssertNotCalled(t, "AdvanceRound", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitVote_ScoreHookRunsOnFinish(t *testing.T) {
	rooms, players, votes, _, svc := newVoteFixture()
	roster := playingRoster(3)

	finished := playingRoom()
	finished.Status = models.RoomFinished
	finished.Winner = models.WinnerCivilians

	svc.OnGameEnd = func(ctx context.Context, room models.Room, roster []models.Player) map[string]int {
		awards := make(map[string]int)
		for _, p := range roster {
			if p.Role == models.RoleCivilian {
				awards[p.ID] = 2
			}
		}
		return awards
	}

	rooms.On("GetByID", mock.Anything, "room-1").Return(playingRoom(), nil)
	players.On("GetByRoomAndAccount", mock.Anything, "room-1", "acct-civ-3").Return(&roster[2], nil)
	players.On("GetByID", mock.Anything, "uc-1").Return(&roster[3], nil)
	votes.On("Insert", mock.Anything, "room-1", "civ-3", "uc-1", 1).Return(&models.Vote{}, nil)
	votes.On("ListByRound", mock.Anything, "room-1", 1).Return(castVotes(map[string]string{
		"civ-1": "uc-1",
		"civ-2": "uc-1",
		"civ-3": "uc-1",
		"uc-1":  "civ-1",
	}), nil)
	players.On("ListByRoom", mock.Anything, "room-1").Return(roster, nil)
	players.On("Eliminate", mock.Anything, "uc-1").Return(nil)
	rooms.On("FinishRoom", mock.Anything, "room-1", models.WinnerCivilians).Return(finished, nil)
	for _, id := range []string{"civ-1", "civ-2", "civ-3"} {
		players.On("SetScore", mock.Anything, id, 2).Return(nil)
	}

	_, err := svc.SubmitVote(context.Background(), "room-1", "acct-civ-3", "uc-1", 1)

	require.NoError(t, err)
	players.AssertExpectations(t)
}

func TestGuess_OnlyAliveMrX(t *testing.T) {
	rooms, players, _, _, svc := newVoteFixture()
	rooms.On("GetByID", mock.Anything, "room-1").Return(playingRoom(), nil)
	players.On("GetByRoomAndAccount", mock.Anything, "room-1", "acct-civ-1").
		Return(&models.Player{ID: "civ-1", RoomID: "room-1", Role: models.RoleCivilian, IsAlive: true}, nil)

	_, err := svc.Guess(context.Background(), "room-1", "acct-civ-1", "Apple")

	assert.ErrorIs(t, err, game.ErrValidation)
}

func TestGuess_CorrectWordWinsImmediately(t *testing.T) {
	rooms, players, _, pub, svc := newVoteFixture()
	roster := append(playingRoster(3), models.Player{
		ID: "mrx-1", RoomID: "room-1", AccountID: "acct-mrx-1", Role: models.RoleMrX, IsAlive: true,
	})

	finished := playingRoom()
	finished.Status = models.RoomFinished
	finished.Winner = models.WinnerMrX

	rooms.On("GetByID", mock.Anything, "room-1").Return(playingRoom(), nil)
	players.On("GetByRoomAndAccount", mock.Anything, "room-1", "acct-mrx-1").Return(&roster[4], nil)
	players.On("ListByRoom", mock.Anything, "room-1").Return(roster, nil)
	rooms.On("FinishRoom", mock.Anything, "room-1", models.WinnerMrX).Return(finished, nil)

	outcome, err := svc.Guess(context.Background(), "room-1", "acct-mrx-1", " apple ")

	require.NoError(t, err)
	assert.True(t, outcome.Correct)
	assert.True(t, outcome.Finished)
	assert.Equal(t, models.WinnerMrX, outcome.Winner)
	assert.Contains(t, pub.Types(), comm.EventGameFinished)
	players.AssertNotCalled(t, "Eliminate", mock.Anything, mock.Anything)
}

func TestGuess_WrongWordEliminatesMrX(t *testing.T) {
	rooms, players, _, pub, svc := newVoteFixture()
	roster := append(playingRoster(3), models.Player{
		ID: "mrx-1", RoomID: "room-1", AccountID: "acct-mrx-1", Role: models.RoleMrX, IsAlive: true,
	})

	rooms.On("GetByID", mock.Anything, "room-1").Return(playingRoom(), nil)
	players.On("GetByRoomAndAccount", mock.Anything, "room-1", "acct-mrx-1").Return(&roster[4], nil)
	players.On("ListByRoom", mock.Anything, "room-1").Return(roster, nil)
	players.On("Eliminate", mock.Anything, "mrx-1").Return(nil)

	outcome, err := svc.Guess(context.Background(), "room-1", "acct-mrx-1", "Banana")

	require.NoError(t, err)
	assert.False(t, outcome.Correct)
	assert.False(t, outcome.Finished, "civilians and the undercover play on")
	assert.Equal(t, []string{comm.EventPlayerEliminated}, pub.Types())
	rooms.AssertNotCalled(t, "FinishRoom", mock.Anything, mock.Anything, mock.Anything)
}

func TestGuess_WrongWordCanEndGame(t *testing.T) {
	rooms, players, _, _, svc := newVoteFixture()
	// one civilian, one undercover, one Mr. X: knocking Mr. X out leaves
	// the undercover at parity with the civilians
	roster := append(playingRoster(1), models.Player{
		ID: "mrx-1", RoomID: "room-1", AccountID: "acct-mrx-1", Role: models.RoleMrX, IsAlive: true,
	})

	finished := playingRoom()
	finished.Status = models.RoomFinished
	finished.Winner = models.WinnerUndercover

	rooms.On("GetByID", mock.Anything, "room-1").Return(playingRoom(), nil)
	players.On("GetByRoomAndAccount", mock.Anything, "room-1", "acct-mrx-1").Return(&roster[2], nil)
	players.On("ListByRoom", mock.Anything, "room-1").Return(roster, nil)
	players.On("Eliminate", mock.Anything, "mrx-1").Return(nil)
	rooms.On("FinishRoom", mock.Anything, "room-1", models.WinnerUndercover).Return(finished, nil)

	outcome, err := svc.Guess(context.Background(), "room-1", "acct-mrx-1", "Banana")

	require.NoError(t, err)
	assert.True(t, outcome.Finished)
	assert.Equal(t, models.WinnerUndercover, outcome.Winner)
}
