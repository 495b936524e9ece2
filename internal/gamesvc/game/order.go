package game

import (
	"math/rand"

	"github.com/guesswhonow/guesswho-services/internal/gamesvc/models"
)

// SpeakingOrder shuffles the alive roster into a clue-giving order.
// A wordless role never goes first: opening with a player who has no
// word to riff on is an instant tell. This is a cosmetic heuristic,
// not a rule the server enforces during clue submission.
func SpeakingOrder(players []models.Player, rng *rand.Rand) []string {
	alive := make([]models.Player, 0, len(players))
	for _, p := range players {
		if p.IsAlive {
			alive = append(alive, p)
		}
	}

	rng.Shuffle(len(alive), func(i, j int) {
		alive[i], alive[j] = alive[j], alive[i]
	})

	if len(alive) > 1 && alive[0].Role == models.RoleMrX {
		for i := 1; i < len(alive); i++ {
			if alive[i].Role != models.RoleMrX {
				alive[0], alive[i] = alive[i], alive[0]
				break
			}
		}
	}

	order := make([]string, len(alive))
	for i, p := range alive {
		order[i] = p.ID
	}
	return order
}
