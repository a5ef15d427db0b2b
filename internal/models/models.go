// Package models defines the database entity types.
package models

import "encoding/json"

// TimeFormat is the timestamp layout used for created_at and date columns.
// Fixed-width fractional seconds keep lexical order equal to chronological
// order, so the date index sorts correctly.
const TimeFormat = "2006-01-02T15:04:05.000000Z07:00"

// Token represents one webhook inbox: an unguessable identifier plus the
// externally visible URL producers should send requests to. The URL is
// computed once at creation time and stored, never recomputed.
type Token struct {
	Token      string `json:"token"`
	CreatedAt  string `json:"created_at"`
	WebhookURL string `json:"webhook_url"`
}

// CapturedRequest is one immutable record of an inbound HTTP request
// received at a token's inbox.
type CapturedRequest struct {
	ID            string        `json:"Id"`
	Date          string        `json:"Date"`
	TokenID       string        `json:"TokenId"`
	MessageObject MessageObject `json:"MessageObject"`
	// Message is reserved for future annotation and never populated by the
	// capture path.
	Message *string `json:"Message"`
}

// MessageObject holds the normalized content of a captured request.
type MessageObject struct {
	Method string `json:"Method"`
	// Value is the raw request target (path plus query string) as received.
	Value string `json:"Value"`
	// Headers maps header names to their values in order of occurrence.
	Headers map[string][]string `json:"Headers"`
	// QueryParameters are literal key=value strings, duplicates and order
	// preserved.
	QueryParameters []string `json:"QueryParameters"`
	Body            *string  `json:"Body"`
	// BodyObject is the body as JSON when it parses as such, else null.
	BodyObject json.RawMessage `json:"BodyObject"`
}
