package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rsclarke/hooktrap/internal/api"
	"github.com/rsclarke/hooktrap/internal/db"
	"github.com/rsclarke/hooktrap/internal/logging"
	"github.com/rsclarke/hooktrap/internal/models"
	"github.com/rsclarke/hooktrap/internal/token"
)

// Files browsers request on their own. Rejected before UUID parsing so they
// never show up as invalid-token noise.
var browserFiles = map[string]bool{
	"favicon.ico":   true,
	"robots.txt":    true,
	"sitemap.xml":   true,
	"manifest.json": true,
}

// handleCapture turns an inbound request addressed to a token into a stored
// record. Validation runs cheapest-first: token syntax, token existence, size
// cap, then normalization and the single write. A storage fault means the
// event was not captured and the caller is told so.
func (s *Server) handleCapture(w http.ResponseWriter, r *http.Request) {
	tokenValue := chi.URLParam(r, "token")

	if browserFiles[tokenValue] {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	if err := token.Validate(tokenValue); err != nil {
		s.Logger.Warn("invalid token", logging.Token(tokenValue), zap.Error(err))
		writeError(w, http.StatusBadRequest, msgInvalidToken)
		return
	}

	exists, err := db.TokenExists(s.DB, tokenValue)
	if err != nil {
		s.Logger.Error("token lookup failed", logging.Token(tokenValue), zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if !exists {
		writeError(w, http.StatusNotFound, msgTokenNotFound)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, s.MaxBodySize+1))
	if err != nil {
		s.Logger.Error("read body failed", logging.Token(tokenValue), zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if int64(len(body)) > s.MaxBodySize {
		writeError(w, http.StatusRequestEntityTooLarge, msgPayloadTooLarge)
		return
	}

	req := models.CapturedRequest{
		ID:            uuid.NewString(),
		Date:          time.Now().UTC().Format(models.TimeFormat),
		TokenID:       tokenValue,
		MessageObject: normalize(r, body),
	}

	if err := db.StoreRequest(s.DB, req); err != nil {
		s.Logger.Error("store request failed", logging.Token(tokenValue), zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	s.Logger.Info("request captured",
		logging.Token(tokenValue),
		logging.Method(r.Method),
		logging.RequestID(req.ID))

	writeJSON(w, http.StatusOK, api.CaptureResponse{
		Status:    "received",
		ID:        req.ID,
		Timestamp: req.Date,
	})
}

// normalize flattens the inbound request into the stored message shape. A
// body that is not valid UTF-8 is treated as empty; a body that fails to
// parse as JSON keeps only its text form. Neither is an error.
func normalize(r *http.Request, body []byte) models.MessageObject {
	headers := make(map[string][]string, len(r.Header)+1)
	// net/http strips Host into r.Host; put it back so the record matches
	// what was on the wire.
	if r.Host != "" {
		headers["Host"] = []string{r.Host}
	}
	for name, values := range r.Header {
		headers[name] = append([]string(nil), values...)
	}

	obj := models.MessageObject{
		Method:          r.Method,
		Value:           r.URL.RequestURI(),
		Headers:         headers,
		QueryParameters: parseQueryPairs(r.URL.RawQuery),
	}

	if !utf8.Valid(body) {
		body = nil
	}
	if len(body) > 0 {
		text := string(body)
		obj.Body = &text
		if json.Valid(body) {
			obj.BodyObject = json.RawMessage(append([]byte(nil), body...))
		}
	}

	return obj
}

// parseQueryPairs decodes a raw query string into literal key=value strings,
// preserving order and duplicates. Empty segments are skipped.
func parseQueryPairs(rawQuery string) []string {
	pairs := []string{}
	for _, segment := range strings.Split(rawQuery, "&") {
		if segment == "" {
			continue
		}
		key, value, _ := strings.Cut(segment, "=")
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if v, err := url.QueryUnescape(value); err == nil {
			value = v
		}
		pairs = append(pairs, key+"="+value)
	}
	return pairs
}
