package handlers

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/service"
	qrcode "github.com/skip2/go-qrcode"
	log "github.com/sirupsen/logrus"
)

type createRoomRequest struct {
	MaxPlayers      int    `json:"max_players"`
	MaxRounds       int    `json:"max_rounds"`
	Mode            string `json:"mode"`
	UndercoverCount int    `json:"undercover_count"`
	MrXCount        int    `json:"mrx_count"`
}

func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	caller, err := h.identity(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	var req createRoomRequest
	if !h.decode(w, r, &req) {
		return
	}

	room, err := h.roomService.CreateRoom(r.Context(), caller.AccountID, service.CreateRoomParams{
		MaxPlayers:      req.MaxPlayers,
		MaxRounds:       req.MaxRounds,
		Mode:            req.Mode,
		UndercoverCount: req.UndercoverCount,
		MrXCount:        req.MrXCount,
	})
	if err != nil {
		h.fail(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "room created",
		Code:    http.StatusCreated,
		Data:    room.Public(),
	})
}

func (h *Handler) GetRoomByCode(w http.ResponseWriter, r *http.Request) {
	if _, err := h.identity(r); err != nil {
		h.fail(w, err)
		return
	}

	room, err := h.roomService.GetRoomByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.fail(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "room",
		Code:    http.StatusOK,
		Data:    room.Public(),
	})
}

type joinRoomRequest struct {
	Username string `json:"username"`
}

func (h *Handler) JoinRoom(w http.ResponseWriter, r *http.Request) {
	caller, err := h.identity(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	var req joinRoomRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Username == "" {
		req.Username = caller.Username
	}

	player, err := h.playerService.Join(r.Context(), chi.URLParam(r, "code"), caller.AccountID, req.Username)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "joined",
		Code:    http.StatusCreated,
		Data:    player,
	})
}

type startGameRequest struct {
	WordPackID string `json:"word_pack_id"`
}

func (h *Handler) StartGame(w http.ResponseWriter, r *http.Request) {
	caller, err := h.identity(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	var req startGameRequest
	if !h.decode(w, r, &req) {
		return
	}

	room, err := h.roomService.StartGame(r.Context(), caller.AccountID, chi.URLParam(r, "roomID"), req.WordPackID)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "game started",
		Code:    http.StatusOK,
		Data:    room.Public(),
	})
}

func (h *Handler) RoomState(w http.ResponseWriter, r *http.Request) {
	if _, err := h.identity(r); err != nil {
		h.fail(w, err)
		return
	}

	state, err := h.roomService.Snapshot(r.Context(), chi.URLParam(r, "roomID"))
	if err != nil {
		h.fail(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "room state",
		Code:    http.StatusOK,
		Data:    state,
	})
}

// ListPlayers serves the roster with secrecy applied: roles, words and
// clues of other players stay hidden until the room finishes.
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	if _, err := h.identity(r); err != nil {
		h.fail(w, err)
		return
	}

	state, err := h.roomService.Snapshot(r.Context(), chi.URLParam(r, "roomID"))
	if err != nil {
		h.fail(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "players",
		Code:    http.StatusOK,
		Data:    state.Players,
	})
}

func (h *Handler) SpeakingOrder(w http.ResponseWriter, r *http.Request) {
	if _, err := h.identity(r); err != nil {
		h.fail(w, err)
		return
	}

	order, err := h.roomService.SpeakingOrder(r.Context(), chi.URLParam(r, "roomID"))
	if err != nil {
		h.fail(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "speaking order",
		Code:    http.StatusOK,
		Data:    order,
	})
}

// RoomQRHandler renders a QR code of the join link so a host can put
// it on a shared screen. Public route: the code alone carries no
// secrets.
func (h *Handler) RoomQRHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if _, err := h.roomService.GetRoomByCode(r.Context(), code); err != nil {
		h.fail(w, err)
		return
	}

	joinURL := fmt.Sprintf("%s/join/%s", os.Getenv("PUBLIC_WEB_URL"), code)
	png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
	if err != nil {
		log.Errorf("Failed to encode QR for room %s: %v", code, err)
		h.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
