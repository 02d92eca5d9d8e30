package session

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mwhitfield/clavier/internal/models"
	"github.com/mwhitfield/clavier/internal/shared"
)

const (
	credentialUserKey  = "user"
	credentialTokenKey = "token"
)

// CredentialStore persists the serialized current user and the raw token
// in the local database, read once at startup and written on every login
// and logout.
type CredentialStore struct {
	db *sql.DB
}

// NewCredentialStore creates a CredentialStore over an open database. The
// credentials table is expected to exist (see clavier setup).
func NewCredentialStore(db *sql.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// Save persists the user and token, replacing any previous credentials.
func (s *CredentialStore) Save(user models.AuthUser, token string) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	if err := s.put(credentialUserKey, string(data)); err != nil {
		return err
	}
	return s.put(credentialTokenKey, token)
}

// SaveUser refreshes only the persisted user copy, keeping the token.
func (s *CredentialStore) SaveUser(user models.AuthUser) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	return s.put(credentialUserKey, string(data))
}

// Load reads the persisted user and token. Returns
// [shared.ErrNoCredentials] when no token is stored.
func (s *CredentialStore) Load() (*models.AuthUser, string, error) {
	token, err := s.get(credentialTokenKey)
	if err == sql.ErrNoRows {
		return nil, "", shared.ErrNoCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to read token: %w", err)
	}
	if token == "" {
		return nil, "", shared.ErrNoCredentials
	}

	raw, err := s.get(credentialUserKey)
	if err != nil && err != sql.ErrNoRows {
		return nil, "", fmt.Errorf("failed to read user: %w", err)
	}

	var user *models.AuthUser
	if raw != "" {
		user = &models.AuthUser{}
		if err := json.Unmarshal([]byte(raw), user); err != nil {
			return nil, "", fmt.Errorf("failed to decode user: %w", err)
		}
	}

	return user, token, nil
}

// Clear removes all persisted credentials.
func (s *CredentialStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM credentials"); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

func (s *CredentialStore) put(key, value string) error {
	query := `
		INSERT INTO credentials (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

func (s *CredentialStore) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM credentials WHERE key = ?", key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}
