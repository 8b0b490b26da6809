// ABOUTME: Local draft cache for faculty profile edits
// ABOUTME: Persists unsaved form values so they survive restarts

package profile

import (
	"encoding/json"

	"github.com/trackdemic/trackdemic-cli/internal/client"
	"github.com/trackdemic/trackdemic-cli/internal/store"
)

// LoadDraft returns a locally cached faculty profile draft, if one exists.
// A corrupt draft is discarded.
func LoadDraft(st *store.Store) (*client.FacultyProfile, bool) {
	raw, ok := st.Get(store.KeyFacultyProfile)
	if !ok {
		return nil, false
	}
	var draft client.FacultyProfile
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		_ = st.Remove(store.KeyFacultyProfile)
		return nil, false
	}
	return &draft, true
}

// SaveDraft caches in-progress faculty profile edits locally.
func SaveDraft(st *store.Store, draft *client.FacultyProfile) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return st.Set(store.KeyFacultyProfile, string(data))
}

// ClearDraft removes the cached draft, called after a successful save.
func ClearDraft(st *store.Store) error {
	return st.Remove(store.KeyFacultyProfile)
}
