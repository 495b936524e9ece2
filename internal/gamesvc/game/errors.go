package game

import "errors"

// Caller-visible failure conditions. None of these are transient, so
// nothing in this module retries them; handlers map each to an HTTP
// status. Storage trouble surfaces as ErrStorageUnavailable instead of
// being retried, so a duplicate-submission race never hides behind a
// silent replay.
var (
	ErrUnauthorized        = errors.New("missing or invalid caller identity")
	ErrRoomNotFound        = errors.New("room not found")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrRoomFull            = errors.New("room is full")
	ErrAlreadyJoined       = errors.New("account already joined this room")
	ErrInvalidPhase        = errors.New("operation not valid in current room phase")
	ErrInsufficientPlayers = errors.New("not enough players to start")
	ErrDuplicateVote       = errors.New("already voted this round")
	ErrRoomCodeExhausted   = errors.New("could not allocate a free room code")
	ErrValidation          = errors.New("invalid payload")
	ErrStorageUnavailable  = errors.New("storage unavailable")
)
