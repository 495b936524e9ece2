package game

import (
	"fmt"
	"math/rand"

	"github.com/guesswhonow/guesswho-services/internal/gamesvc/models"
)

// RoleSpec describes one faction handed to AssignRoles. Count takes
// precedence when set; otherwise the faction size is derived as
// max(1, floor(n * Ratio)) from the player count. Factions without a
// secret word leave Word empty.
type RoleSpec struct {
	Role    string
	Count   int
	Ratio   float64
	HasWord bool
	Word    string
}

// Assignment is one player's secret role and word for a game.
type Assignment struct {
	PlayerID string
	Role     string
	Word     string
}

// ClassicSpecs is the two-faction configuration: civilians against a
// minority of undercovers sized at a quarter of the roster, at least one.
func ClassicSpecs(pair models.WordPair) (RoleSpec, []RoleSpec) {
	majority := RoleSpec{Role: models.RoleCivilian, HasWord: true, Word: pair.Civilian}
	minorities := []RoleSpec{
		{Role: models.RoleUndercover, Ratio: 0.25, HasWord: true, Word: pair.Undercover},
	}
	return majority, minorities
}

// MrXSpecs is the three-faction configuration with explicit counts.
// Mr. X carries no word at all.
func MrXSpecs(pair models.WordPair, undercoverCount, mrxCount int) (RoleSpec, []RoleSpec) {
	majority := RoleSpec{Role: models.RoleCivilian, HasWord: true, Word: pair.Civilian}
	minorities := []RoleSpec{
		{Role: models.RoleUndercover, Count: undercoverCount, HasWord: true, Word: pair.Undercover},
		{Role: models.RoleMrX, Count: mrxCount},
	}
	return majority, minorities
}

func factionSize(n int, s RoleSpec) int {
	if s.Count > 0 {
		return s.Count
	}
	c := int(float64(n) * s.Ratio)
	if c < 1 {
		c = 1
	}
	return c
}

// AssignRoles partitions playerIDs into the majority faction and the
// given minority factions using a uniform shuffle. The combined minority
// size must leave at least one majority player. Every player ends up in
// exactly one faction.
func AssignRoles(playerIDs []string, majority RoleSpec, minorities []RoleSpec, rng *rand.Rand) ([]Assignment, error) {
	n := len(playerIDs)
	if n < 3 {
		return nil, fmt.Errorf("need at least 3 players, have %d", n)
	}

	total := 0
	for _, s := range minorities {
		total += factionSize(n, s)
	}
	if total > n-1 {
		return nil, fmt.Errorf("minority factions take %d of %d players, none left for %s", total, n, majority.Role)
	}

	shuffled := make([]string, n)
	copy(shuffled, playerIDs)
	rng.Shuffle(n, func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	assignments := make([]Assignment, 0, n)
	idx := 0
	for _, s := range minorities {
		for i := 0; i < factionSize(n, s); i++ {
			assignments = append(assignments, Assignment{
				PlayerID: shuffled[idx],
				Role:     s.Role,
				Word:     s.Word,
			})
			idx++
		}
	}
	for ; idx < n; idx++ {
		assignments = append(assignments, Assignment{
			PlayerID: shuffled[idx],
			Role:     majority.Role,
			Word:     majority.Word,
		})
	}

	return assignments, nil
}

// SelectPair draws one word pair uniformly at random from the pack.
func SelectPair(pack *models.WordPack, rng *rand.Rand) (models.WordPair, error) {
	if pack == nil || len(pack.Content) == 0 {
		return models.WordPair{}, fmt.Errorf("word pack has no pairs")
	}
	return pack.Content[rng.Intn(len(pack.Content))], nil
}
