// Package api defines the wire types shared by the server and client.
package api

// CaptureResponse acknowledges a captured webhook request. It carries no
// information about how the body was interpreted.
type CaptureResponse struct {
	Status    string `json:"status"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
}

// DeleteTokenResponse acknowledges a token deletion.
type DeleteTokenResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the structured error body returned for every failure. The
// status code is mirrored in the body; no internal error detail is exposed.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}
