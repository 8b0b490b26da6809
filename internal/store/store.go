// ABOUTME: Durable key-value storage for session credentials and cached records
// ABOUTME: Persists tokens and user data as JSON in the XDG config directory

package store

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Storage keys. These are the only keys the client persists.
const (
	KeyAccessToken    = "access_token"
	KeyRefreshToken   = "refresh_token"
	KeyUser           = "user"
	KeyFacultyProfile = "facultyProfile"
)

// allKeys is the full set cleared by Clear.
var allKeys = []string{KeyAccessToken, KeyRefreshToken, KeyUser, KeyFacultyProfile}

// Store is a file-backed key-value store. Every write is flushed to disk
// immediately so later reads (including reads from a new process) see it.
type Store struct {
	configDir string
	values    map[string]string
	loaded    bool
}

// New creates a store rooted at the given config directory.
func New(configDir string) *Store {
	return &Store{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following XDG conventions
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "trackdemic")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "trackdemic")
}

// storeFile returns the path to the credentials JSON
func (s *Store) storeFile() string {
	return filepath.Join(s.configDir, "credentials.json")
}

// load reads the store file into memory. Missing or corrupt files start fresh.
func (s *Store) load() {
	if s.loaded {
		return
	}
	s.values = map[string]string{}
	s.loaded = true

	data, err := os.ReadFile(s.storeFile())
	if err != nil {
		return
	}
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return
	}
	s.values = values
}

// flush writes the in-memory values to disk. Tokens are credentials, so the
// file is not group or world readable.
func (s *Store) flush() error {
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.storeFile(), data, 0600)
}

// Get returns the value for key and whether it is present.
func (s *Store) Get(key string) (string, bool) {
	s.load()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and persists immediately.
func (s *Store) Set(key, value string) error {
	s.load()
	s.values[key] = value
	return s.flush()
}

// Remove deletes key and persists immediately. Removing an absent key is a no-op.
func (s *Store) Remove(key string) error {
	s.load()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flush()
}

// Clear removes every session key. All logout paths converge here.
func (s *Store) Clear() error {
	s.load()
	for _, key := range allKeys {
		delete(s.values, key)
	}
	return s.flush()
}
