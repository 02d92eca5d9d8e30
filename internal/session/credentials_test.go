package session

import (
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mwhitfield/clavier/internal/models"
	"github.com/mwhitfield/clavier/internal/shared"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestCredentialStore(t *testing.T) {
	user := models.AuthUser{ID: "u1", Email: "ada@example.com", Name: "Ada"}

	t.Run("Load Without Credentials", func(t *testing.T) {
		store := NewCredentialStore(newTestDB(t))

		_, _, err := store.Load()
		if !errors.Is(err, shared.ErrNoCredentials) {
			t.Errorf("expected ErrNoCredentials, got %v", err)
		}
	})

	t.Run("Save Then Load Round Trip", func(t *testing.T) {
		store := NewCredentialStore(newTestDB(t))

		if err := store.Save(user, "tok-123"); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		loaded, token, err := store.Load()
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if token != "tok-123" {
			t.Errorf("expected token preserved, got %q", token)
		}
		if loaded == nil || loaded.Email != user.Email || loaded.ID != user.ID {
			t.Errorf("unexpected user %+v", loaded)
		}
	})

	t.Run("Save Replaces Previous Credentials", func(t *testing.T) {
		store := NewCredentialStore(newTestDB(t))

		if err := store.Save(user, "first"); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		second := models.AuthUser{ID: "u2", Email: "b@example.com", Name: "Bea"}
		if err := store.Save(second, "second"); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		loaded, token, err := store.Load()
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if token != "second" || loaded.ID != "u2" {
			t.Errorf("previous credentials not replaced: %+v / %q", loaded, token)
		}
	})

	t.Run("SaveUser Keeps Token", func(t *testing.T) {
		store := NewCredentialStore(newTestDB(t))

		if err := store.Save(user, "tok"); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		refreshed := models.AuthUser{ID: "u1", Email: "ada@example.com", Name: "Ada Lovelace"}
		if err := store.SaveUser(refreshed); err != nil {
			t.Fatalf("save user failed: %v", err)
		}

		loaded, token, err := store.Load()
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if token != "tok" {
			t.Errorf("token lost: %q", token)
		}
		if loaded.Name != "Ada Lovelace" {
			t.Errorf("user not refreshed: %+v", loaded)
		}
	})

	t.Run("Clear Removes Everything", func(t *testing.T) {
		store := NewCredentialStore(newTestDB(t))

		if err := store.Save(user, "tok"); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		if err := store.Clear(); err != nil {
			t.Fatalf("clear failed: %v", err)
		}

		_, _, err := store.Load()
		if !errors.Is(err, shared.ErrNoCredentials) {
			t.Errorf("expected ErrNoCredentials after clear, got %v", err)
		}
	})

	t.Run("Empty Token Counts as No Credentials", func(t *testing.T) {
		store := NewCredentialStore(newTestDB(t))

		if err := store.Save(user, ""); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		_, _, err := store.Load()
		if !errors.Is(err, shared.ErrNoCredentials) {
			t.Errorf("expected ErrNoCredentials for empty token, got %v", err)
		}
	})
}
