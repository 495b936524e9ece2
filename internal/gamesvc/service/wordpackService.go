package service

import (
	"context"
	"fmt"

	"github.com/guesswhonow/guesswho-services/internal/gamesvc/game"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/models"
)

type WordPackService struct {
	packs WordPackStore
}

func NewWordPackService(packs WordPackStore) *WordPackService {
	return &WordPackService{packs: packs}
}

// SeedBuiltins loads the built-in catalog. Called once at service
// start; reruns are no-ops.
func (s *WordPackService) SeedBuiltins(ctx context.Context) error {
	return s.packs.SeedBuiltins(ctx, game.Builtins())
}

// ListPublic returns the public catalog, newest first.
func (s *WordPackService) ListPublic(ctx context.Context) ([]models.WordPack, error) {
	return s.packs.ListPublic(ctx)
}

// Admit validates the shape of an externally produced pack (community
// or AI generated) and adds it to the catalog. Only shape is checked:
// non-empty pair list, each pair two distinct non-empty words.
func (s *WordPackService) Admit(ctx context.Context, pack models.WordPack) (*models.WordPack, error) {
	if err := game.ValidatePack(&pack); err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrValidation, err)
	}
	return s.packs.Insert(ctx, pack)
}
