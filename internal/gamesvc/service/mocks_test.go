package service

import (
	"context"

	"github.com/guesswhonow/guesswho-services/internal/comm"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/game"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/models"
	"github.com/stretchr/testify/mock"
)

// --- RoomStore ---

type MockRoomStore struct {
	mock.Mock
}

func (m *MockRoomStore) CodeInUse(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoomStore) CreateRoom(ctx context.Context, room models.Room) (*models.Room, error) {
	args := m.Called(ctx, room)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomStore) GetByID(ctx context.Context, roomID string) (*models.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomStore) GetByCode(ctx context.Context, code string) (*models.Room, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomStore) StartGame(ctx context.Context, roomID string, pair models.WordPair) (*models.Room, error) {
	args := m.Called(ctx, roomID, pair)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomStore) AdvanceRound(ctx context.Context, roomID string, fromRound int) (*models.Room, error) {
	args := m.Called(ctx, roomID, fromRound)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomStore) FinishRoom(ctx context.Context, roomID, winner string) (*models.Room, error) {
	args := m.Called(ctx, roomID, winner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

// --- PlayerStore ---

type MockPlayerStore struct {
	mock.Mock
}

func (m *MockPlayerStore) CreatePlayerIfJoinable(ctx context.Context, roomID, accountID, username string) (*models.Player, error) {
	args := m.Called(ctx, roomID, accountID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerStore) GetByID(ctx context.Context, playerID string) (*models.Player, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerStore) GetByRoomAndAccount(ctx context.Context, roomID, accountID string) (*models.Player, error) {
	args := m.Called(ctx, roomID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerStore) ListByRoom(ctx context.Context, roomID string) ([]models.Player, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Player), args.Error(1)
}

func (m *MockPlayerStore) ApplyAssignments(ctx context.Context, roomID string, assignments []game.Assignment) error {
	args := m.Called(ctx, roomID, assignments)
	return args.Error(0)
}

func (m *MockPlayerStore) SubmitClue(ctx context.Context, playerID, text string) (*models.Player, error) {
	args := m.Called(ctx, playerID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerStore) Eliminate(ctx context.Context, playerID string) error {
	args := m.Called(ctx, playerID)
	return args.Error(0)
}

func (m *MockPlayerStore) ResetClues(ctx context.Context, roomID string) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

func (m *MockPlayerStore) SetScore(ctx context.Context, playerID string, score int) error {
	args := m.Called(ctx, playerID, score)
	return args.Error(0)
}

// --- VoteStore ---

type MockVoteStore struct {
	mock.Mock
}

func (m *MockVoteStore) Insert(ctx context.Context, roomID, voterID, targetID string, round int) (*models.Vote, error) {
	args := m.Called(ctx, roomID, voterID, targetID, round)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vote), args.Error(1)
}

func (m *MockVoteStore) ListByRound(ctx context.Context, roomID string, round int) ([]models.Vote, error) {
	args := m.Called(ctx, roomID, round)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vote), args.Error(1)
}

// --- WordPackStore ---

type MockWordPackStore struct {
	mock.Mock
}

func (m *MockWordPackStore) GetByID(ctx context.Context, packID string) (*models.WordPack, error) {
	args := m.Called(ctx, packID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WordPack), args.Error(1)
}

func (m *MockWordPackStore) ListPublic(ctx context.Context) ([]models.WordPack, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WordPack), args.Error(1)
}

func (m *MockWordPackStore) Insert(ctx context.Context, pack models.WordPack) (*models.WordPack, error) {
	args := m.Called(ctx, pack)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WordPack), args.Error(1)
}

func (m *MockWordPackStore) SeedBuiltins(ctx context.Context, packs []models.WordPack) error {
	args := m.Called(ctx, packs)
	return args.Error(0)
}

// --- Publisher ---

// RecordingPublisher collects room events so tests can assert on the
// change feed without NATS.
type RecordingPublisher struct {
	Events []comm.RoomEvent
}

func (p *RecordingPublisher) PublishRoomEvent(event comm.RoomEvent) {
	p.Events = append(p.Events, event)
}

func (p *RecordingPublisher) Types() []string {
	types := make([]string, len(p.Events))
	for i, e := range p.Events {
		types[i] = e.Type
	}
	return types
}
