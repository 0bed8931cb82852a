// ABOUTME: Key/value local state for the auth token, cached profile, and last answers.
// ABOUTME: Values are stored as JSON text in the local_state table.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harperreed/fitforge/internal/models"
)

// Keys shared by every Repository backend.
const (
	KeyToken      = "token"
	KeyProfile    = "profile"
	KeyOnboarding = "onboarding:last"
)

// SaveToken stores the bearer token used for API calls.
func (d *DB) SaveToken(token string) error {
	return d.putState(KeyToken, token)
}

// GetToken returns the stored token, or ErrNotFound when signed out.
func (d *DB) GetToken() (string, error) {
	var token string
	if err := d.getState(KeyToken, &token); err != nil {
		return "", err
	}
	return token, nil
}

// ClearToken removes the stored token.
func (d *DB) ClearToken() error {
	return d.deleteState(KeyToken)
}

// SaveProfile caches the user profile.
func (d *DB) SaveProfile(p *models.UserProfile) error {
	return d.putState(KeyProfile, p)
}

// GetProfile returns the cached profile.
func (d *DB) GetProfile() (*models.UserProfile, error) {
	var p models.UserProfile
	if err := d.getState(KeyProfile, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ClearProfile removes the cached profile.
func (d *DB) ClearProfile() error {
	return d.deleteState(KeyProfile)
}

// SaveOnboardingAnswers stores the last submitted onboarding record.
func (d *DB) SaveOnboardingAnswers(r *models.Record) error {
	return d.putState(KeyOnboarding, r)
}

// GetOnboardingAnswers returns the last submitted onboarding record.
func (d *DB) GetOnboardingAnswers() (*models.Record, error) {
	var r models.Record
	if err := d.getState(KeyOnboarding, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (d *DB) putState(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	_, err = d.db.Exec(`
		INSERT INTO local_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, string(data))
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (d *DB) getState(key string, dest any) error {
	var value string
	err := d.db.QueryRow(`SELECT value FROM local_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(value), dest); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (d *DB) deleteState(key string) error {
	if _, err := d.db.Exec(`DELETE FROM local_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
