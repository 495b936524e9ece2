package handlers

import (
	"net/http"

	"github.com/go-chi/chi"
)

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	caller, err := h.identity(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	// per-player-scoped read: the one place a role and word are revealed
	player, err := h.playerService.Me(r.Context(), chi.URLParam(r, "roomID"), caller.AccountID)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "your player",
		Code:    http.StatusOK,
		Data:    player,
	})
}

type submitClueRequest struct {
	Text string `json:"text"`
}

func (h *Handler) SubmitClue(w http.ResponseWriter, r *http.Request) {
	caller, err := h.identity(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	var req submitClueRequest
	if !h.decode(w, r, &req) {
		return
	}

	player, cluesDone, err := h.playerService.SubmitClue(r.Context(), chi.URLParam(r, "roomID"), caller.AccountID, req.Text)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "clue recorded",
		Code:    http.StatusOK,
		Data: map[string]interface{}{
			"player_id":  player.ID,
			"clues_done": cluesDone,
		},
	})
}

type submitVoteRequest struct {
	TargetID string `json:"target_id"`
	Round    int    `json:"round"`
}

func (h *Handler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	caller, err := h.identity(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	var req submitVoteRequest
	if !h.decode(w, r, &req) {
		return
	}

	outcome, err := h.voteService.SubmitVote(r.Context(), chi.URLParam(r, "roomID"), caller.AccountID, req.TargetID, req.Round)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "vote recorded",
		Code:    http.StatusOK,
		Data:    outcome,
	})
}

type guessRequest struct {
	Word string `json:"word"`
}

func (h *Handler) Guess(w http.ResponseWriter, r *http.Request) {
	caller, err := h.identity(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	var req guessRequest
	if !h.decode(w, r, &req) {
		return
	}

	outcome, err := h.voteService.Guess(r.Context(), chi.URLParam(r, "roomID"), caller.AccountID, req.Word)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "guess evaluated",
		Code:    http.StatusOK,
		Data:    outcome,
	})
}

type setScoreRequest struct {
	Score int `json:"score"`
}

func (h *Handler) SetScore(w http.ResponseWriter, r *http.Request) {
	caller, err := h.identity(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	var req setScoreRequest
	if !h.decode(w, r, &req) {
		return
	}

	err = h.playerService.SetScore(r.Context(), chi.URLParam(r, "roomID"), caller.AccountID,
		chi.URLParam(r, "playerID"), req.Score)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "score updated",
		Code:    http.StatusOK,
	})
}
