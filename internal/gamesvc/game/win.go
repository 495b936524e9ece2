package game

import (
	"strings"

	"github.com/guesswhonow/guesswho-services/internal/gamesvc/models"
)

// Outcome is the verdict of the win evaluator. Finished false means the
// game goes on. A Finished outcome with an empty Winner never happens
// here; the draw on round exhaustion is decided by the caller, which
// knows the round limit.
type Outcome struct {
	Finished bool
	Winner   string
}

// EvaluateWinner decides whether a faction has won, given the roster.
// It is a pure function of the alive/role partition, so calling it
// twice on the same snapshot yields the same result.
//
// Civilians win when every minority player is gone. Undercover wins
// once Mr. X (if any) is out and undercovers have reached parity with
// civilians. Mr. X wins by outlasting the combined opposition. The
// guess-the-word win path for Mr. X is separate, see GuessMatches.
func EvaluateWinner(players []models.Player) Outcome {
	var civAlive, ucAlive, mrxAlive int
	for _, p := range players {
		if !p.IsAlive {
			continue
		}
		switch p.Role {
		case models.RoleUndercover:
			ucAlive++
		case models.RoleMrX:
			mrxAlive++
		default:
			civAlive++
		}
	}

	switch {
	case ucAlive == 0 && mrxAlive == 0:
		return Outcome{Finished: true, Winner: models.WinnerCivilians}
	case mrxAlive > 0 && civAlive+ucAlive <= mrxAlive:
		return Outcome{Finished: true, Winner: models.WinnerMrX}
	case mrxAlive == 0 && ucAlive > 0 && ucAlive >= civAlive:
		return Outcome{Finished: true, Winner: models.WinnerUndercover}
	}

	return Outcome{}
}

// GuessMatches reports whether a Mr. X guess hits the civilian word.
// Case-insensitive exact match; a correct guess ends the game
// immediately regardless of round state.
func GuessMatches(guess, civilianWord string) bool {
	return civilianWord != "" && strings.EqualFold(strings.TrimSpace(guess), civilianWord)
}
