package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rsclarke/hooktrap/internal/api"
	"github.com/rsclarke/hooktrap/internal/db"
	"github.com/rsclarke/hooktrap/internal/logging"
	"github.com/rsclarke/hooktrap/internal/models"
	"github.com/rsclarke/hooktrap/internal/token"
)

func (s *Server) handleCreateToken(w http.ResponseWriter, r *http.Request) {
	tok := models.Token{
		Token:     token.Generate(),
		CreatedAt: time.Now().UTC().Format(models.TimeFormat),
	}
	tok.WebhookURL = DeriveWebhookURL(s.BaseURL, r, tok.Token)

	if err := db.CreateToken(s.DB, tok); err != nil {
		s.Logger.Error("create token failed", logging.Token(tok.Token), zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	s.Logger.Info("token created", logging.Token(tok.Token))
	writeJSON(w, http.StatusOK, tok)
}

func (s *Server) handleListTokens(w http.ResponseWriter, r *http.Request) {
	tokens, err := db.ListTokens(s.DB)
	if err != nil {
		s.Logger.Error("list tokens failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if tokens == nil {
		tokens = []models.Token{}
	}
	writeJSON(w, http.StatusOK, tokens)
}

func (s *Server) handleDeleteToken(w http.ResponseWriter, r *http.Request) {
	tokenValue := chi.URLParam(r, "token")

	// Idempotent: deleting an absent token still succeeds.
	if err := db.DeleteToken(s.DB, tokenValue); err != nil {
		s.Logger.Error("delete token failed", logging.Token(tokenValue), zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	s.Logger.Info("token deleted", logging.Token(tokenValue))
	writeJSON(w, http.StatusOK, api.DeleteTokenResponse{Status: "deleted"})
}
