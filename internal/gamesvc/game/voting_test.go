package game

import (
	"testing"

	"github.com/guesswhonow/guesswho-services/internal/gamesvc/models"
	"github.com/stretchr/testify/assert"
)

func votesFor(targets ...string) []models.Vote {
	votes := make([]models.Vote, len(targets))
	for i, target := range targets {
		votes[i] = models.Vote{
			VoterID:  string(rune('a' + i)),
			TargetID: target,
			Round:    1,
		}
	}
	return votes
}

func TestTally(t *testing.T) {
	tests := []struct {
		name       string
		votes      []models.Vote
		eliminated string
		tied       bool
	}{
		{
			name:       "two leaders tie",
			votes:      votesFor("x", "x", "x", "y", "y", "z", "z", "z"),
			eliminated: "",
			tied:       true,
		},
		{
			name:       "clear winner",
			votes:      votesFor("x", "x", "x", "y", "y", "z"),
			eliminated: "x",
		},
		{
			name:       "scenario: 3 votes x, 2 each on three others",
			votes:      votesFor("x", "x", "x", "a", "a", "b", "b", "c"),
			eliminated: "x",
		},
		{
			name:  "exact tie eliminates nobody",
			votes: votesFor("x", "x", "y", "y"),
			tied:  true,
		},
		{
			name:  "no votes",
			votes: nil,
		},
		{
			name:       "single vote",
			votes:      votesFor("x"),
			eliminated: "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Tally(tt.votes)
			assert.Equal(t, tt.eliminated, result.Eliminated)
			assert.Equal(t, tt.tied, result.Tied)
		})
	}
}

func TestTally_Deterministic(t *testing.T) {
	// same vote set, many runs: the result must never depend on
	// incidental map iteration order
	votes := votesFor("x", "x", "y", "y", "z")
	first := Tally(votes)
	for i := 0; i < 100; i++ {
		again := Tally(votes)
		assert.Equal(t, first.Eliminated, again.Eliminated)
		assert.Equal(t, first.Tied, again.Tied)
	}
}

func alivePlayer(id string, clueGiven bool) models.Player {
	return models.Player{ID: id, IsAlive: true, HasGivenClue: clueGiven}
}

func TestAllCluesIn(t *testing.T) {
	dead := models.Player{ID: "dead", IsAlive: false}

	assert.True(t, AllCluesIn([]models.Player{
		alivePlayer("a", true), alivePlayer("b", true), dead,
	}), "eliminated players do not block the phase")

	assert.False(t, AllCluesIn([]models.Player{
		alivePlayer("a", true), alivePlayer("b", false),
	}))

	assert.False(t, AllCluesIn(nil), "empty roster never completes a phase")
}

func TestAllVotesIn(t *testing.T) {
	players := []models.Player{
		alivePlayer("a", false),
		alivePlayer("b", false),
		{ID: "c", IsAlive: false},
	}

	votes := []models.Vote{
		{VoterID: "a", TargetID: "b"},
	}
	assert.False(t, AllVotesIn(players, votes))

	votes = append(votes, models.Vote{VoterID: "b", TargetID: "a"})
	assert.True(t, AllVotesIn(players, votes), "dead player c owes no vote")
}
