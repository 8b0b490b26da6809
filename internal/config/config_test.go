// ABOUTME: Tests for configuration loading
// ABOUTME: Covers env precedence, defaults, and URL scheme handling

package config

import "testing"

func TestDefaults(t *testing.T) {
	t.Setenv("TRACKDEMIC_API_URL", "")
	t.Setenv("TRACKDEMIC_DEBUG", "")

	cfg := Load()
	if cfg.APIURL != "http://localhost:8000" {
		t.Errorf("expected default API URL, got %s", cfg.APIURL)
	}
	if cfg.Debug {
		t.Error("expected debug off by default")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TRACKDEMIC_API_URL", "https://lms.example.com/")
	t.Setenv("TRACKDEMIC_DEBUG", "true")
	t.Setenv("TRACKDEMIC_CONFIG_DIR", "/tmp/trackdemic-test")

	cfg := Load()
	if cfg.APIURL != "https://lms.example.com" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.APIURL)
	}
	if !cfg.Debug {
		t.Error("expected debug enabled")
	}
	if cfg.ConfigDir != "/tmp/trackdemic-test" {
		t.Errorf("expected config dir override, got %s", cfg.ConfigDir)
	}
}

func TestEnsureScheme(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"lms.example.com", "https://lms.example.com"},
		{"http://localhost:8000", "http://localhost:8000"},
		{"https://lms.example.com/", "https://lms.example.com"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := ensureScheme(tc.in); got != tc.want {
			t.Errorf("ensureScheme(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestInvalidBoolFallsBack(t *testing.T) {
	t.Setenv("TRACKDEMIC_DEBUG", "banana")
	if Load().Debug {
		t.Error("expected invalid bool to fall back to default")
	}
}
