package server

import (
	"net/http"
	"strings"

	"github.com/alexedwards/flow"
)

// handleRate serves the last-known quote for the configured pair. The poller
// owns freshness; a stale quote is served as-is with its fetch timestamp so
// the client can decide how to present it.
func (s *Service) handleRate(w http.ResponseWriter, r *http.Request) {
	pair := strings.ToUpper(flow.Param(r.Context(), "pair"))

	rate, ok := s.ratesPoller.Rate()
	if !ok || rate.Pair != pair {
		s.respondError(w, http.StatusNotFound, "no quote available for pair")
		return
	}

	s.respondJSON(w, http.StatusOK, rate)
}
