// ABOUTME: Field-level merge of cached and server user records
// ABOUTME: Server fields win; cached fields survive when the response omits them

package session

import (
	"encoding/json"

	"github.com/trackdemic/trackdemic-cli/internal/client"
)

// mergeUser overlays the fresh server record onto the cached one. Both inputs
// are JSON objects; fields present in fresh overwrite, fields only in cached
// are retained. A nil or invalid cache means the fresh record stands alone.
// Returns the merged map (for persistence) and the typed user decoded from it.
func mergeUser(cached, fresh json.RawMessage) (map[string]any, *client.User, error) {
	merged := map[string]any{}
	if len(cached) > 0 {
		// A corrupt cache is discarded rather than failing the session
		var cachedMap map[string]any
		if err := json.Unmarshal(cached, &cachedMap); err == nil {
			merged = cachedMap
		}
	}

	var freshMap map[string]any
	if err := json.Unmarshal(fresh, &freshMap); err != nil {
		return nil, nil, err
	}
	for key, value := range freshMap {
		merged[key] = value
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return nil, nil, err
	}
	var user client.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, nil, err
	}
	return merged, &user, nil
}
