package handlers

import (
	"net/http"

	"github.com/guesswhonow/guesswho-services/internal/gamesvc/models"
)

func (h *Handler) ListPacks(w http.ResponseWriter, r *http.Request) {
	if _, err := h.identity(r); err != nil {
		h.fail(w, err)
		return
	}

	packs, err := h.wordPackService.ListPublic(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "word packs",
		Code:    http.StatusOK,
		Data:    packs,
	})
}

func (h *Handler) AdmitPack(w http.ResponseWriter, r *http.Request) {
	if _, err := h.identity(r); err != nil {
		h.fail(w, err)
		return
	}

	var pack models.WordPack
	if !h.decode(w, r, &pack) {
		return
	}

	created, err := h.wordPackService.Admit(r.Context(), pack)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "word pack admitted",
		Code:    http.StatusCreated,
		Data:    created,
	})
}
