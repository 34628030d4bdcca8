package postgres

import (
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/Himanshu-Rajkumar/notes-app/internal/storage"
)

// Integration tests; run with NOTES_TEST_DSN pointing at a disposable
// database.
func testStorage(t *testing.T) *Storage {
	t.Helper()

	dsn := os.Getenv("NOTES_TEST_DSN")
	if dsn == "" {
		t.Skip("NOTES_TEST_DSN is not set")
	}

	s, err := New(dsn)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return s
}

func uniqueEmail() string {
	return uuid.New().String() + "@example.com"
}

func TestSaveUser_DuplicateEmail(t *testing.T) {
	s := testStorage(t)

	email := uniqueEmail()
	if _, err := s.SaveUser("Alice", email, "digest", "user"); err != nil {
		t.Fatalf("SaveUser error: %v", err)
	}

	_, err := s.SaveUser("Other Alice", email, "digest2", "admin")
	if !errors.Is(err, storage.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestGetUserByEmail(t *testing.T) {
	s := testStorage(t)

	email := uniqueEmail()
	userID, err := s.SaveUser("Alice", email, "digest", "user")
	if err != nil {
		t.Fatalf("SaveUser error: %v", err)
	}

	u, err := s.GetUserByEmail(email)
	if err != nil {
		t.Fatalf("GetUserByEmail error: %v", err)
	}
	if u.ID != userID || u.Name != "Alice" || u.Role != "user" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := s.GetUserByEmail(uniqueEmail()); !errors.Is(err, storage.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestNoteOwnership(t *testing.T) {
	s := testStorage(t)

	aliceID, err := s.SaveUser("Alice", uniqueEmail(), "digest", "user")
	if err != nil {
		t.Fatalf("SaveUser error: %v", err)
	}
	bobID, err := s.SaveUser("Bob", uniqueEmail(), "digest", "user")
	if err != nil {
		t.Fatalf("SaveUser error: %v", err)
	}

	noteID, err := s.SaveNote(aliceID, "Alice", "t", "d")
	if err != nil {
		t.Fatalf("SaveNote error: %v", err)
	}

	if _, err := s.UpdateNote(noteID, bobID, "stolen", ""); !errors.Is(err, storage.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner update, got %v", err)
	}
	if err := s.DeleteNote(noteID, bobID); !errors.Is(err, storage.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner delete, got %v", err)
	}

	updated, err := s.UpdateNote(noteID, aliceID, "t2", "")
	if err != nil {
		t.Fatalf("UpdateNote error: %v", err)
	}
	if updated.Title != "t2" || updated.Description != "d" {
		t.Fatalf("unexpected patch result: %+v", updated)
	}

	if err := s.DeleteNote(noteID, aliceID); err != nil {
		t.Fatalf("DeleteNote error: %v", err)
	}
	if _, err := s.GetNote(noteID); !errors.Is(err, storage.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound after delete, got %v", err)
	}
}

func TestGetNotesByOwner_CreationOrder(t *testing.T) {
	s := testStorage(t)

	ownerID, err := s.SaveUser("Alice", uniqueEmail(), "digest", "user")
	if err != nil {
		t.Fatalf("SaveUser error: %v", err)
	}

	for _, title := range []string{"first", "second", "third"} {
		if _, err := s.SaveNote(ownerID, "Alice", title, "d"); err != nil {
			t.Fatalf("SaveNote error: %v", err)
		}
	}

	notes, err := s.GetNotesByOwner(ownerID, 0, 0)
	if err != nil {
		t.Fatalf("GetNotesByOwner error: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(notes))
	}
	for i, want := range []string{"first", "second", "third"} {
		if notes[i].Title != want {
			t.Fatalf("note %d: got %q want %q", i, notes[i].Title, want)
		}
	}
}
