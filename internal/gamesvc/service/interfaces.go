package service

import (
	"context"

	"github.com/guesswhonow/guesswho-services/internal/comm"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/game"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/models"
)

// Store interfaces consumed by the services. The pgx stores in the
// store package satisfy them; tests swap in mocks.

type RoomStore interface {
	CodeInUse(ctx context.Context, code string) (bool, error)
	CreateRoom(ctx context.Context, room models.Room) (*models.Room, error)
	GetByID(ctx context.Context, roomID string) (*models.Room, error)
	GetByCode(ctx context.Context, code string) (*models.Room, error)
	StartGame(ctx context.Context, roomID string, pair models.WordPair) (*models.Room, error)
	AdvanceRound(ctx context.Context, roomID string, fromRound int) (*models.Room, error)
	FinishRoom(ctx context.Context, roomID, winner string) (*models.Room, error)
}

type PlayerStore interface {
	CreatePlayerIfJoinable(ctx context.Context, roomID, accountID, username string) (*models.Player, error)
	GetByID(ctx context.Context, playerID string) (*models.Player, error)
	GetByRoomAndAccount(ctx context.Context, roomID, accountID string) (*models.Player, error)
	ListByRoom(ctx context.Context, roomID string) ([]models.Player, error)
	ApplyAssignments(ctx context.Context, roomID string, assignments []game.Assignment) error
	SubmitClue(ctx context.Context, playerID, text string) (*models.Player, error)
	Eliminate(ctx context.Context, playerID string) error
	ResetClues(ctx context.Context, roomID string) error
	SetScore(ctx context.Context, playerID string, score int) error
}

type VoteStore interface {
	Insert(ctx context.Context, roomID, voterID, targetID string, round int) (*models.Vote, error)
	ListByRound(ctx context.Context, roomID string, round int) ([]models.Vote, error)
}

type WordPackStore interface {
	GetByID(ctx context.Context, packID string) (*models.WordPack, error)
	ListPublic(ctx context.Context) ([]models.WordPack, error)
	Insert(ctx context.Context, pack models.WordPack) (*models.WordPack, error)
	SeedBuiltins(ctx context.Context, packs []models.WordPack) error
}

// Publisher pushes room events onto the change feed. Delivery is best
// effort; a publish failure never fails the request that caused it.
type Publisher interface {
	PublishRoomEvent(event comm.RoomEvent)
}

// ScoreHook decides point awards when a game ends. The module stores
// scores but deliberately has no award policy of its own; wire one in
// or leave it nil.
type ScoreHook func(ctx context.Context, room models.Room, players []models.Player) map[string]int
