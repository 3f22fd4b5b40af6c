package devserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// router builds the dev HTTP surface: artifact/graph inspection endpoints
// plus the reload websocket.
func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Get("/querido/artifacts", s.handleArtifacts)
	r.Get("/querido/graph", s.handleGraph)
	r.Get("/querido/healthz", s.handleHealthz)
	r.Get("/querido/reload", s.reload.handle)
	return r
}

func (s *Server) handleArtifacts(w http.ResponseWriter, r *http.Request) {
	s.withResult(func(result CompileResult) {
		writeJSON(w, result)
	})
}

// graphSummary is a coarse snapshot of the query engine's current state,
// enough for a dev-tools panel to show recomputation activity without
// exposing internal node identities.
type graphSummary struct {
	Epoch            uint64 `json:"epoch"`
	TrackedLiterals  int    `json:"trackedLiterals"`
	LastRecalculated bool   `json:"lastRecalculated"`
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	s.run(func() {
		summary := graphSummary{
			Epoch:            uint64(s.db.CurrentEpoch()),
			TrackedLiterals:  len(s.contentSources),
			LastRecalculated: s.lastRecalculated,
		}
		writeJSON(w, summary)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
