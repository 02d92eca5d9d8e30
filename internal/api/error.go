package api

import (
	"encoding/json"
	"fmt"
)

// Error is the typed failure raised for any non-2xx backend response.
// StatusCode always carries the HTTP status; Message carries the
// server-supplied message when the error body could be parsed.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d - %s", e.StatusCode, e.Message)
}

// errorBody is the JSON shape every backend error response is expected to
// carry. Absent or malformed bodies degrade to a generic message.
type errorBody struct {
	Message string `json:"message"`
}

// newError builds an [Error] from a response status and raw body.
func newError(statusCode int, body []byte) *Error {
	message := "HTTP Error"

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		message = parsed.Message
	}

	return &Error{StatusCode: statusCode, Message: message}
}
