package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rsclarke/hooktrap/internal/db"
	"github.com/rsclarke/hooktrap/internal/models"
)

func storeTestRequests(t *testing.T, srv *Server, tok models.Token, n int) {
	t.Helper()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		req := models.CapturedRequest{
			ID:      fmt.Sprintf("aaaaaaaa-0000-0000-0000-%012d", i),
			Date:    base.Add(time.Duration(i) * time.Millisecond).Format(models.TimeFormat),
			TokenID: tok.Token,
			MessageObject: models.MessageObject{
				Method:          "GET",
				Value:           "/" + tok.Token,
				Headers:         map[string][]string{},
				QueryParameters: []string{},
			},
		}
		if err := db.StoreRequest(srv.DB, req); err != nil {
			t.Fatalf("StoreRequest %d failed: %v", i, err)
		}
	}
}

func getLogs(t *testing.T, srv *Server, token string, count string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("GET", "/"+token+"/log/"+count, nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestGetLogsOrder(t *testing.T) {
	srv := setupTestServer(t)
	tok := createTestToken(t, srv)
	storeTestRequests(t, srv, tok, 3)

	w := getLogs(t, srv, tok.Token, "3")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var requests []models.CapturedRequest
	if err := json.NewDecoder(w.Body).Decode(&requests); err != nil {
		t.Fatalf("decode requests: %v", err)
	}
	if len(requests) != 3 {
		t.Fatalf("len(requests) = %d, want 3", len(requests))
	}

	// Reverse chronological order.
	for i := 1; i < len(requests); i++ {
		if requests[i-1].Date < requests[i].Date {
			t.Errorf("requests[%d].Date %q is older than requests[%d].Date %q",
				i-1, requests[i-1].Date, i, requests[i].Date)
		}
	}
}

func TestGetLogsClampsCount(t *testing.T) {
	srv := setupTestServer(t)
	tok := createTestToken(t, srv)
	storeTestRequests(t, srv, tok, 1010)

	w := getLogs(t, srv, tok.Token, "5000")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var requests []models.CapturedRequest
	if err := json.NewDecoder(w.Body).Decode(&requests); err != nil {
		t.Fatalf("decode requests: %v", err)
	}
	if len(requests) != 1000 {
		t.Errorf("len(requests) = %d, want 1000", len(requests))
	}
}

func TestGetLogsUnknownTokenEmpty(t *testing.T) {
	srv := setupTestServer(t)

	w := getLogs(t, srv, "550e8400-e29b-41d4-a716-446655440000", "10")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}

func TestGetLogsInvalidCount(t *testing.T) {
	srv := setupTestServer(t)
	tok := createTestToken(t, srv)

	w := getLogs(t, srv, tok.Token, "abc")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if resp := decodeError(t, w); resp.Error != msgInvalidCount {
		t.Errorf("error = %q, want %q", resp.Error, msgInvalidCount)
	}
}

func TestGetLogsAfterCaptureRoundTrip(t *testing.T) {
	srv := setupTestServer(t)
	tok := createTestToken(t, srv)

	capReq := httptest.NewRequest("POST", "/"+tok.Token+"?x=1&x=2", strings.NewReader(`{"k":1}`))
	capReq.Header.Add("X-Foo", "a")
	capReq.Header.Add("X-Foo", "b")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, capReq)
	if w.Code != http.StatusOK {
		t.Fatalf("capture status = %d, want 200", w.Code)
	}

	w = getLogs(t, srv, tok.Token, "10")
	if w.Code != http.StatusOK {
		t.Fatalf("logs status = %d, want 200", w.Code)
	}

	var requests []models.CapturedRequest
	if err := json.NewDecoder(w.Body).Decode(&requests); err != nil {
		t.Fatalf("decode requests: %v", err)
	}
	if len(requests) != 1 {
		t.Fatalf("len(requests) = %d, want 1", len(requests))
	}

	got := requests[0]
	if got.MessageObject.Headers["X-Foo"][0] != "a" || got.MessageObject.Headers["X-Foo"][1] != "b" {
		t.Errorf("X-Foo header = %v, want [a b]", got.MessageObject.Headers["X-Foo"])
	}
	if got.MessageObject.QueryParameters[0] != "x=1" || got.MessageObject.QueryParameters[1] != "x=2" {
		t.Errorf("query parameters = %v, want [x=1 x=2]", got.MessageObject.QueryParameters)
	}
	if got.MessageObject.Body == nil || *got.MessageObject.Body != `{"k":1}` {
		t.Errorf("body = %v, want {\"k\":1}", got.MessageObject.Body)
	}
}
