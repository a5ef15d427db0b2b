package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rsclarke/hooktrap/internal/models"
)

// StoreRequest inserts one captured request row. Headers, query parameters,
// and the parsed body object are serialized as JSON text so the stored form
// round-trips exactly: same keys, same value order, duplicates intact.
func StoreRequest(d *sql.DB, req models.CapturedRequest) error {
	headersJSON, err := json.Marshal(req.MessageObject.Headers)
	if err != nil {
		return fmt.Errorf("marshal headers: %w", err)
	}
	queryJSON, err := json.Marshal(req.MessageObject.QueryParameters)
	if err != nil {
		return fmt.Errorf("marshal query parameters: %w", err)
	}

	var bodyObject *string
	if req.MessageObject.BodyObject != nil {
		s := string(req.MessageObject.BodyObject)
		bodyObject = &s
	}

	_, err = d.Exec(
		`INSERT INTO requests
		(id, date, token_id, method, value, headers, query_parameters, body, body_object, message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.Date, req.TokenID,
		req.MessageObject.Method, req.MessageObject.Value,
		string(headersJSON), string(queryJSON),
		req.MessageObject.Body, bodyObject, req.Message,
	)
	return err
}

// ListRequests returns up to limit captured requests for the token, most
// recent first. An unknown token yields an empty result, not an error.
func ListRequests(d *sql.DB, tokenID string, limit int) ([]models.CapturedRequest, error) {
	rows, err := d.Query(
		`SELECT id, date, token_id, method, value, headers, query_parameters, body, body_object, message
		FROM requests
		WHERE token_id = ?
		ORDER BY date DESC
		LIMIT ?`,
		tokenID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.CapturedRequest
	for rows.Next() {
		var req models.CapturedRequest
		var headersJSON, queryJSON string
		var body, bodyObject, msg sql.NullString
		err := rows.Scan(
			&req.ID, &req.Date, &req.TokenID,
			&req.MessageObject.Method, &req.MessageObject.Value,
			&headersJSON, &queryJSON,
			&body, &bodyObject, &msg,
		)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(headersJSON), &req.MessageObject.Headers); err != nil {
			return nil, fmt.Errorf("unmarshal headers for request %s: %w", req.ID, err)
		}
		if err := json.Unmarshal([]byte(queryJSON), &req.MessageObject.QueryParameters); err != nil {
			return nil, fmt.Errorf("unmarshal query parameters for request %s: %w", req.ID, err)
		}
		if body.Valid {
			req.MessageObject.Body = &body.String
		}
		if bodyObject.Valid {
			req.MessageObject.BodyObject = json.RawMessage(bodyObject.String)
		}
		if msg.Valid {
			req.Message = &msg.String
		}

		requests = append(requests, req)
	}
	return requests, rows.Err()
}
