// ABOUTME: Tests for the route guard decision function
// ABOUTME: Validates pending, login redirect, role denial, and superuser override

package tui

import (
	"testing"

	"github.com/trackdemic/trackdemic-cli/internal/client"
	"github.com/trackdemic/trackdemic-cli/internal/session"
)

func TestPendingWhileLoading(t *testing.T) {
	// Loading always renders the pending indicator, never a redirect,
	// regardless of what the other fields claim
	snaps := []session.Snapshot{
		{Loading: true},
		{Loading: true, IsAuthenticated: true, User: &client.User{UserType: "student"}},
	}
	for _, snap := range snaps {
		if got := Authorize(snap, "student"); got != AccessPending {
			t.Errorf("expected pending for %+v, got %v", snap, got)
		}
	}
}

func TestUnauthenticatedRedirectsToLogin(t *testing.T) {
	snap := session.Snapshot{State: session.StateAnonymous}
	if got := Authorize(snap, "student"); got != AccessLogin {
		t.Errorf("expected login redirect, got %v", got)
	}
	if got := Authorize(snap); got != AccessLogin {
		t.Errorf("expected login redirect with empty allow-list, got %v", got)
	}
}

func TestRoleMismatchIsDenied(t *testing.T) {
	snap := session.Snapshot{
		State:           session.StateAuthenticated,
		IsAuthenticated: true,
		User:            &client.User{UserType: "student"},
	}
	if got := Authorize(snap, "faculty", "admin"); got != AccessDenied {
		t.Errorf("expected denied, got %v", got)
	}
}

func TestMatchingRoleIsGranted(t *testing.T) {
	snap := session.Snapshot{
		State:           session.StateAuthenticated,
		IsAuthenticated: true,
		User:            &client.User{UserType: "faculty"},
	}
	if got := Authorize(snap, "faculty"); got != AccessGranted {
		t.Errorf("expected granted, got %v", got)
	}
}

func TestEmptyAllowListOnlyRequiresAuth(t *testing.T) {
	snap := session.Snapshot{
		State:           session.StateAuthenticated,
		IsAuthenticated: true,
		User:            &client.User{UserType: "student"},
	}
	if got := Authorize(snap); got != AccessGranted {
		t.Errorf("expected granted, got %v", got)
	}
}

func TestSuperuserRoutesAsAdmin(t *testing.T) {
	snap := session.Snapshot{
		State:           session.StateAuthenticated,
		IsAuthenticated: true,
		User:            &client.User{UserType: "student", IsSuperuser: true},
	}
	if got := Authorize(snap, "admin"); got != AccessGranted {
		t.Errorf("expected superuser to pass admin gate, got %v", got)
	}
	if got := Authorize(snap, "student"); got != AccessDenied {
		t.Errorf("expected superuser to route as admin only, got %v", got)
	}
}
