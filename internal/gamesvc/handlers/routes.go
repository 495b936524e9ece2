package handlers

import (
	"os"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {

		// public routes
		r.Get("/health", h.HealthHandler)
		r.Get("/rooms/code/{code}/qr", h.RoomQRHandler)

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Post("/rooms", h.CreateRoom)
			r.Get("/rooms/code/{code}", h.GetRoomByCode)
			r.Post("/rooms/code/{code}/join", h.JoinRoom)

			r.Post("/rooms/{roomID}/start", h.StartGame)
			r.Get("/rooms/{roomID}/state", h.RoomState)
			r.Get("/rooms/{roomID}/players", h.ListPlayers)
			r.Get("/rooms/{roomID}/me", h.Me)
			r.Get("/rooms/{roomID}/order", h.SpeakingOrder)
			r.Post("/rooms/{roomID}/clue", h.SubmitClue)
			r.Post("/rooms/{roomID}/vote", h.SubmitVote)
			r.Post("/rooms/{roomID}/guess", h.Guess)
			r.Post("/rooms/{roomID}/players/{playerID}/score", h.SetScore)

			r.Get("/packs", h.ListPacks)
			r.Post("/packs", h.AdmitPack)
		})
	})
}

func (h *Handler) InitAuth() {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)

	expirationTime := time.Now().Add(7 * 24 * time.Hour).Unix()

	_, tokenString, _ := h.tokenAuth.Encode(map[string]interface{}{
		"account_id": "dev-account",
		"username":   "dev",
		"exp":        expirationTime,
	})

	// For debugging only, comment it out in production
	log.Infof("DEBUG: JWT for testing expires soon : %s", tokenString)
}
