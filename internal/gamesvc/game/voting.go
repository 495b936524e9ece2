package game

import "github.com/guesswhonow/guesswho-services/internal/gamesvc/models"

// TallyResult is the outcome of counting one round of votes.
// Eliminated is empty when nobody goes out, either because no votes
// were cast or because the top targets tied.
type TallyResult struct {
	Counts     map[string]int
	Eliminated string
	Tied       bool
}

// Tally counts votes per target and picks the target with the strict
// maximum. An exact tie between top targets eliminates nobody; the
// policy is deterministic and does not depend on map iteration order.
func Tally(votes []models.Vote) TallyResult {
	counts := make(map[string]int, len(votes))
	for _, v := range votes {
		counts[v.TargetID]++
	}

	max := 0
	top := ""
	tied := false
	for target, count := range counts {
		switch {
		case count > max:
			max = count
			top = target
			tied = false
		case count == max:
			tied = true
			top = ""
		}
	}

	return TallyResult{Counts: counts, Eliminated: top, Tied: tied}
}

// PhaseComplete reports whether every alive player has done the thing
// the phase is waiting on.
func PhaseComplete(players []models.Player, done func(models.Player) bool) bool {
	any := false
	for _, p := range players {
		if !p.IsAlive {
			continue
		}
		any = true
		if !done(p) {
			return false
		}
	}
	return any
}

// AllCluesIn reports whether every alive player has submitted a clue
// this round.
func AllCluesIn(players []models.Player) bool {
	return PhaseComplete(players, func(p models.Player) bool { return p.HasGivenClue })
}

// AllVotesIn reports whether each alive player has a recorded vote in
// the given set.
func AllVotesIn(players []models.Player, votes []models.Vote) bool {
	voted := make(map[string]bool, len(votes))
	for _, v := range votes {
		voted[v.VoterID] = true
	}
	return PhaseComplete(players, func(p models.Player) bool { return voted[p.ID] })
}
