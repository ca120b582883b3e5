package rest

import "net/http"

// NewRouter registers all REST routes on a fresh mux. The literal
// /api/wishcards/locked route takes precedence over the {id} wildcard.
func NewRouter(cards *WishCardHandler, health *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /health/live", health.Live)
	mux.HandleFunc("GET /health/ready", health.Ready)

	mux.HandleFunc("POST /api/wishcards", cards.Create)
	mux.HandleFunc("GET /api/wishcards", cards.List)
	mux.HandleFunc("GET /api/wishcards/search", cards.Search)
	mux.HandleFunc("GET /api/wishcards/locked", cards.LockedByMe)
	mux.HandleFunc("GET /api/wishcards/{id}", cards.Get)
	mux.HandleFunc("PATCH /api/wishcards/{id}", cards.Update)
	mux.HandleFunc("DELETE /api/wishcards/{id}", cards.Delete)
	mux.HandleFunc("POST /api/wishcards/{id}/lock", cards.Lock)
	mux.HandleFunc("DELETE /api/wishcards/{id}/lock", cards.Unlock)

	mux.HandleFunc("GET /api/agencies/{id}/wishcards", cards.ByAgency)
	mux.HandleFunc("GET /api/admin/wishcards", cards.ListAll)

	return mux
}
