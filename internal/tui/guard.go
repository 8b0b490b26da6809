// ABOUTME: Route guard gating screens on session state and allowed roles
// ABOUTME: Pure decision function; the app model acts on the verdict

package tui

import (
	"slices"

	"github.com/trackdemic/trackdemic-cli/internal/session"
)

// Access is the guard's verdict for a protected screen.
type Access int

const (
	// AccessPending means the startup check is still running; render a
	// neutral pending indicator and make no redirect decision yet.
	AccessPending Access = iota
	// AccessLogin means the user must authenticate first. The app remembers
	// the requested screen and returns there after login.
	AccessLogin
	// AccessDenied means the user is authenticated but lacks the role.
	// Renders a static access-denied view; no redirect.
	AccessDenied
	// AccessGranted renders the protected screen unchanged.
	AccessGranted
)

// Authorize decides whether the session may see a screen restricted to the
// given roles. An empty allow-list only requires authentication. The user's
// effective role accounts for the superuser override.
func Authorize(snap session.Snapshot, allowedRoles ...string) Access {
	if snap.Loading {
		return AccessPending
	}
	if !snap.IsAuthenticated {
		return AccessLogin
	}
	if len(allowedRoles) > 0 && !slices.Contains(allowedRoles, snap.EffectiveRole()) {
		return AccessDenied
	}
	return AccessGranted
}
