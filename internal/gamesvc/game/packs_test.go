package game

import (
	"testing"

	"github.com/guesswhonow/guesswho-services/internal/gamesvc/models"
	"github.com/stretchr/testify/assert"
)

func TestBuiltins_AllValid(t *testing.T) {
	packs := Builtins()
	assert.GreaterOrEqual(t, len(packs), 2, "seed catalog carries a few packs")

	titles := map[string]bool{}
	for i := range packs {
		assert.NoError(t, ValidatePack(&packs[i]), "builtin %q", packs[i].Title)
		assert.True(t, packs[i].IsPublic, "builtin %q must be public", packs[i].Title)
		assert.False(t, titles[packs[i].Title], "duplicate builtin title %q", packs[i].Title)
		titles[packs[i].Title] = true
	}
}

func TestValidatePack(t *testing.T) {
	valid := func() models.WordPack {
		return models.WordPack{
			Title:      "Test",
			Type:       models.PackCustom,
			Difficulty: models.DifficultyEasy,
			Content:    []models.WordPair{{Civilian: "Apple", Undercover: "Orange"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*models.WordPack)
		wantErr bool
	}{
		{name: "valid", mutate: func(p *models.WordPack) {}},
		{name: "empty title", mutate: func(p *models.WordPack) { p.Title = "  " }, wantErr: true},
		{name: "bad type", mutate: func(p *models.WordPack) { p.Type = "stolen" }, wantErr: true},
		{name: "bad difficulty", mutate: func(p *models.WordPack) { p.Difficulty = "impossible" }, wantErr: true},
		{name: "no pairs", mutate: func(p *models.WordPack) { p.Content = nil }, wantErr: true},
		{
			name:    "empty word in pair",
			mutate:  func(p *models.WordPack) { p.Content[0].Undercover = " " },
			wantErr: true,
		},
		{
			name:    "identical words",
			mutate:  func(p *models.WordPack) { p.Content[0].Undercover = "apple" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pack := valid()
			tt.mutate(&pack)
			err := ValidatePack(&pack)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.Error(t, ValidatePack(nil))
}
