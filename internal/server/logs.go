package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rsclarke/hooktrap/internal/db"
	"github.com/rsclarke/hooktrap/internal/logging"
	"github.com/rsclarke/hooktrap/internal/models"
)

// maxLogCount caps how many records one retrieval can return, regardless of
// what the caller asked for.
const maxLogCount = 1000

// handleGetLogs returns up to count captured requests for the token, most
// recent first. The token's existence is deliberately not checked: an unknown
// or deleted token yields an empty list, since the read is non-destructive.
func (s *Server) handleGetLogs(w http.ResponseWriter, r *http.Request) {
	tokenValue := chi.URLParam(r, "token")

	count, err := strconv.ParseUint(chi.URLParam(r, "count"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidCount)
		return
	}
	if count > maxLogCount {
		count = maxLogCount
	}

	requests, err := db.ListRequests(s.DB, tokenValue, int(count))
	if err != nil {
		s.Logger.Error("list requests failed", logging.Token(tokenValue), zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if requests == nil {
		requests = []models.CapturedRequest{}
	}

	s.Logger.Debug("logs retrieved", logging.Token(tokenValue), logging.Count(len(requests)))
	writeJSON(w, http.StatusOK, requests)
}
