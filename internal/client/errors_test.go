// ABOUTME: Tests for API error payload parsing
// ABOUTME: Covers detail messages, field error maps, and the error taxonomy

package client

import (
	"net/http"
	"strings"
	"testing"
)

func TestParseDetailPayload(t *testing.T) {
	err := parseAPIError(http.StatusBadRequest, []byte(`{"detail":"Invalid credentials"}`))
	if err.Detail != "Invalid credentials" {
		t.Errorf("expected detail message, got %+v", err)
	}
	if err.Error() != "Invalid credentials" {
		t.Errorf("unexpected Error(): %s", err.Error())
	}
}

func TestParseErrorKeyPayload(t *testing.T) {
	err := parseAPIError(http.StatusForbidden, []byte(`{"error":"Admin access required"}`))
	if err.Detail != "Admin access required" {
		t.Errorf("expected error key to be picked up, got %+v", err)
	}
}

func TestParseFieldErrors(t *testing.T) {
	body := `{"username":["A user with that username already exists."],"email":["Enter a valid email address.","This field is required."]}`
	err := parseAPIError(http.StatusBadRequest, []byte(body))

	if len(err.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Fields))
	}
	if len(err.Fields["email"]) != 2 {
		t.Errorf("expected 2 email messages, got %v", err.Fields["email"])
	}

	// Flattened message lists fields in stable alphabetical order
	msg := err.Error()
	if !strings.Contains(msg, "username: A user with that username already exists.") {
		t.Errorf("expected username line in %q", msg)
	}
	if strings.Index(msg, "email") > strings.Index(msg, "username") {
		t.Errorf("expected fields sorted alphabetically: %q", msg)
	}
}

func TestParseNonJSONBody(t *testing.T) {
	err := parseAPIError(http.StatusBadGateway, []byte("<html>bad gateway</html>"))
	if err.Detail != "" || err.Fields != nil {
		t.Errorf("expected bare status error, got %+v", err)
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("expected status in message, got %q", err.Error())
	}
}

func TestServerFailureMessageIsGeneric(t *testing.T) {
	err := parseAPIError(http.StatusInternalServerError, []byte(`{"error":"stack trace details"}`))
	if strings.Contains(err.Message(), "stack trace") {
		t.Errorf("5xx message should be generic, got %q", err.Message())
	}
}

func TestValidationMessageIsVerbatim(t *testing.T) {
	err := parseAPIError(http.StatusBadRequest, []byte(`{"detail":"Maximum attempts reached"}`))
	if err.Message() != "Maximum attempts reached" {
		t.Errorf("4xx message should be verbatim, got %q", err.Message())
	}
}

func TestIsAuthFailure(t *testing.T) {
	if !IsAuthFailure(parseAPIError(http.StatusUnauthorized, []byte(`{}`))) {
		t.Error("expected 401 to be an auth failure")
	}
	if IsAuthFailure(parseAPIError(http.StatusForbidden, []byte(`{}`))) {
		t.Error("403 is not an auth failure")
	}
}
