package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/go-chi/jwtauth"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/game"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/service"
)

type Handler struct {
	tokenAuth *jwtauth.JWTAuth

	roomService     *service.RoomService
	playerService   *service.PlayerService
	voteService     *service.VoteService
	wordPackService *service.WordPackService
}

func NewHandler(roomService *service.RoomService, playerService *service.PlayerService,
	voteService *service.VoteService, wordPackService *service.WordPackService) *Handler {
	return &Handler{
		roomService:     roomService,
		playerService:   playerService,
		voteService:     voteService,
		wordPackService: wordPackService,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	json.NewEncoder(w).Encode(rsp)
}

// Identity is the already-validated caller identity extracted from the
// JWT. Token issuance and verification live outside this service.
type Identity struct {
	AccountID string
	Username  string
}

func (h *Handler) identity(r *http.Request) (Identity, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return Identity{}, game.ErrUnauthorized
	}

	accountID, _ := claims["account_id"].(string)
	username, _ := claims["username"].(string)
	if accountID == "" {
		return Identity{}, game.ErrUnauthorized
	}

	return Identity{AccountID: accountID, Username: username}, nil
}

// StatusFor maps the error taxonomy onto HTTP statuses.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, game.ErrRoomNotFound), errors.Is(err, game.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrInsufficientPlayers):
		return http.StatusUnprocessableEntity
	case errors.Is(err, game.ErrRoomFull),
		errors.Is(err, game.ErrAlreadyJoined),
		errors.Is(err, game.ErrInvalidPhase),
		errors.Is(err, game.ErrDuplicateVote),
		errors.Is(err, game.ErrRoomCodeExhausted):
		return http.StatusConflict
	case errors.Is(err, game.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorKind gives every failure a short machine-readable kind next to
// the human message.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, game.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, game.ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, game.ErrPlayerNotFound):
		return "player_not_found"
	case errors.Is(err, game.ErrRoomFull):
		return "capacity_exceeded"
	case errors.Is(err, game.ErrAlreadyJoined):
		return "already_joined"
	case errors.Is(err, game.ErrInvalidPhase):
		return "invalid_phase_transition"
	case errors.Is(err, game.ErrInsufficientPlayers):
		return "insufficient_players"
	case errors.Is(err, game.ErrDuplicateVote):
		return "duplicate_vote"
	case errors.Is(err, game.ErrRoomCodeExhausted):
		return "room_code_exhausted"
	case errors.Is(err, game.ErrValidation):
		return "validation_error"
	case errors.Is(err, game.ErrStorageUnavailable):
		return "storage_unavailable"
	default:
		return "internal"
	}
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	h.CreateResponse(w, Response{
		Message: err.Error(),
		Code:    StatusFor(err),
		Error:   ErrorKind(err),
	})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.CreateResponse(w, Response{
			Message: "malformed request body",
			Code:    http.StatusBadRequest,
			Error:   "validation_error",
		})
		return false
	}
	return true
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "game service is running at port " + os.Getenv("GAME_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	json.NewEncoder(w).Encode(rsp)
}
