// ABOUTME: Tests for the faculty profile draft cache
// ABOUTME: Covers persistence round-trips and corrupt draft recovery

package profile

import (
	"testing"

	"github.com/trackdemic/trackdemic-cli/internal/client"
	"github.com/trackdemic/trackdemic-cli/internal/store"
)

func TestDraftRoundTrip(t *testing.T) {
	st := store.New(t.TempDir())

	draft := &client.FacultyProfile{
		Department:     "Mathematics",
		Designation:    "Associate Professor",
		Specialization: "Topology",
	}
	if err := SaveDraft(st, draft); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	got, ok := LoadDraft(st)
	if !ok {
		t.Fatal("expected a draft")
	}
	if got.Department != "Mathematics" || got.Designation != "Associate Professor" {
		t.Errorf("draft fields lost: %+v", got)
	}
}

func TestDraftSurvivesReload(t *testing.T) {
	dir := t.TempDir()
	st := store.New(dir)
	if err := SaveDraft(st, &client.FacultyProfile{Department: "Physics"}); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	reloaded := store.New(dir)
	got, ok := LoadDraft(reloaded)
	if !ok {
		t.Fatal("expected the draft after reload")
	}
	if got.Department != "Physics" {
		t.Errorf("expected Physics, got %q", got.Department)
	}
}

func TestClearDraft(t *testing.T) {
	st := store.New(t.TempDir())
	if err := SaveDraft(st, &client.FacultyProfile{Department: "CS"}); err != nil {
		t.Fatalf("save draft: %v", err)
	}
	if err := ClearDraft(st); err != nil {
		t.Fatalf("clear draft: %v", err)
	}
	if _, ok := LoadDraft(st); ok {
		t.Error("expected no draft after clear")
	}
}

func TestCorruptDraftDiscarded(t *testing.T) {
	st := store.New(t.TempDir())
	if err := st.Set(store.KeyFacultyProfile, "{not json"); err != nil {
		t.Fatalf("seed corrupt draft: %v", err)
	}

	if _, ok := LoadDraft(st); ok {
		t.Fatal("corrupt draft should not load")
	}
	if _, ok := st.Get(store.KeyFacultyProfile); ok {
		t.Error("corrupt draft should be removed")
	}
}
