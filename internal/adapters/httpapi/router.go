// Package httpapi exposes the voting and results services as a JSON HTTP API.
package httpapi

import (
	"net/http"

	"github.com/example/ballot/internal/version"
)

// NewRouter registers every route on a new ServeMux.
func NewRouter(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		JSONResponse(w, http.StatusOK, map[string]string{"status": "ok", "version": version.String()})
	})

	route := func(pattern string, fn http.HandlerFunc) {
		mux.HandleFunc(pattern, WithVoter(WithLogging(fn)))
	}

	route("GET /elections", h.ListElections)
	route("GET /elections/{id}", h.GetElection)
	route("GET /elections/{id}/candidates", h.ListCandidates)
	route("POST /elections/{id}/ballots", h.CastBallot)
	route("GET /elections/{id}/my-ballot", h.GetMyBallot)
	route("GET /elections/{id}/results", h.GetResults)

	return mux
}
