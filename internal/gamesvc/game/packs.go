package game

import (
	"fmt"
	"strings"

	"github.com/guesswhonow/guesswho-services/internal/gamesvc/models"
)

// Builtins is the seed catalog inserted at service start. Titles are
// stable keys; seeding is idempotent on title.
func Builtins() []models.WordPack {
	return []models.WordPack{
		{
			Title:       "General",
			Description: "Everyday things everyone can clue around",
			Type:        models.PackCurated,
			Difficulty:  models.DifficultyEasy,
			Language:    "en",
			IsPublic:    true,
			Content: []models.WordPair{
				{Civilian: "Apple", Undercover: "Orange"},
				{Civilian: "Coffee", Undercover: "Tea"},
				{Civilian: "Beach", Undercover: "Pool"},
				{Civilian: "Dog", Undercover: "Cat"},
				{Civilian: "Pizza", Undercover: "Burger"},
				{Civilian: "Train", Undercover: "Bus"},
				{Civilian: "Winter", Undercover: "Autumn"},
				{Civilian: "Guitar", Undercover: "Violin"},
				{Civilian: "Soccer", Undercover: "Basketball"},
				{Civilian: "Mountain", Undercover: "Hill"},
			},
		},
		{
			Title:       "Culture",
			Description: "Film, music and stories",
			Type:        models.PackCurated,
			Difficulty:  models.DifficultyMedium,
			Language:    "en",
			IsPublic:    true,
			Content: []models.WordPair{
				{Civilian: "Cinema", Undercover: "Theater"},
				{Civilian: "Novel", Undercover: "Biography"},
				{Civilian: "Opera", Undercover: "Musical"},
				{Civilian: "Painting", Undercover: "Sculpture"},
				{Civilian: "Jazz", Undercover: "Blues"},
				{Civilian: "Poem", Undercover: "Song"},
				{Civilian: "Museum", Undercover: "Gallery"},
				{Civilian: "Comedy", Undercover: "Satire"},
			},
		},
		{
			Title:       "Technology",
			Description: "Gadgets and the people who argue about them",
			Type:        models.PackCurated,
			Difficulty:  models.DifficultyMedium,
			Language:    "en",
			IsPublic:    true,
			Content: []models.WordPair{
				{Civilian: "Laptop", Undercover: "Tablet"},
				{Civilian: "Email", Undercover: "Letter"},
				{Civilian: "Keyboard", Undercover: "Touchscreen"},
				{Civilian: "Robot", Undercover: "Drone"},
				{Civilian: "Password", Undercover: "Fingerprint"},
				{Civilian: "Headphones", Undercover: "Speakers"},
				{Civilian: "Browser", Undercover: "App"},
				{Civilian: "Cloud", Undercover: "Server"},
			},
		},
	}
}

// ValidatePack checks the shape of a pack before it is admitted to the
// catalog. Externally generated packs pass through here too: the only
// contract is a non-empty pair list where each pair holds two distinct
// non-empty words.
func ValidatePack(p *models.WordPack) error {
	if p == nil {
		return fmt.Errorf("pack is nil")
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("pack title is empty")
	}
	switch p.Type {
	case models.PackCurated, models.PackCustom, models.PackAI, models.PackCommunity:
	default:
		return fmt.Errorf("unknown pack type %q", p.Type)
	}
	switch p.Difficulty {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
	default:
		return fmt.Errorf("unknown pack difficulty %q", p.Difficulty)
	}
	if len(p.Content) == 0 {
		return fmt.Errorf("pack %q has no word pairs", p.Title)
	}
	for i, pair := range p.Content {
		civ := strings.TrimSpace(pair.Civilian)
		uc := strings.TrimSpace(pair.Undercover)
		if civ == "" || uc == "" {
			return fmt.Errorf("pack %q pair %d has an empty word", p.Title, i)
		}
		if strings.EqualFold(civ, uc) {
			return fmt.Errorf("pack %q pair %d repeats the same word %q", p.Title, i, civ)
		}
	}
	return nil
}
