// ABOUTME: API error types for the Trackdemic backend client
// ABOUTME: Parses DRF error payloads into detail messages and field error maps

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrSessionExpired is returned when a token refresh fails. Callers should
// treat it as a forced logout and send the user back to the login screen.
var ErrSessionExpired = errors.New("session expired, please log in again")

// APIError represents a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Detail     string              // single-message payloads ("detail", "error", "message")
	Fields     map[string][]string // validation payloads keyed by field name
	Raw        json.RawMessage     // original body for callers that need it
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if len(e.Fields) > 0 {
		return e.fieldSummary()
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// Message returns a user-facing message following the error taxonomy:
// validation payloads verbatim, server failures as a generic retry message.
func (e *APIError) Message() string {
	if e.StatusCode >= 500 {
		return "Something went wrong on the server. Please try again later."
	}
	return e.Error()
}

// fieldSummary flattens field errors into "field: msg" lines in stable order.
func (e *APIError) fieldSummary() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], "; ")))
	}
	return strings.Join(lines, "\n")
}

// IsAuthFailure reports whether err is an unauthorized response.
func IsAuthFailure(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// parseAPIError builds an APIError from a response body. DRF returns either a
// single-message object or a mapping of field name to a list of messages.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Raw: body}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}

	// Single-message keys win when present
	for _, key := range []string{"detail", "error", "message"} {
		var msg string
		if raw, ok := payload[key]; ok && json.Unmarshal(raw, &msg) == nil {
			apiErr.Detail = msg
			return apiErr
		}
	}

	// Otherwise treat string and string-list values as field errors
	fields := map[string][]string{}
	for name, raw := range payload {
		var list []string
		if json.Unmarshal(raw, &list) == nil {
			fields[name] = list
			continue
		}
		var single string
		if json.Unmarshal(raw, &single) == nil {
			fields[name] = []string{single}
		}
	}
	if len(fields) > 0 {
		apiErr.Fields = fields
	}
	return apiErr
}
