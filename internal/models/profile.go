// ABOUTME: Cached user profile and the onboarding outbox entry model.
// ABOUTME: Both live in local storage between CLI runs.
package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// UserProfile is the locally cached view of the signed-in user.
type UserProfile struct {
	ID                  uuid.UUID       `json:"id"`
	Name                string          `json:"name,omitempty"`
	Email               string          `json:"email,omitempty"`
	OnboardingCompleted bool            `json:"onboarding_completed"`
	Onboarding          json.RawMessage `json:"onboarding,omitempty"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// NewUserProfile creates a profile with a generated ID.
func NewUserProfile(name, email string) *UserProfile {
	return &UserProfile{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		UpdatedAt: time.Now(),
	}
}

// OutboxKind names the API call an outbox entry replays.
type OutboxKind string

const (
	OutboxSaveOnboarding OutboxKind = "save_onboarding"
)

// OutboxEntry is a request that failed and is waiting to be retried.
type OutboxEntry struct {
	ID        string          `json:"id"`
	Kind      OutboxKind      `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	Attempts  int             `json:"attempts"`
	LastError string          `json:"last_error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewOutboxEntry creates an entry with a time-sortable ULID.
func NewOutboxEntry(kind OutboxKind, payload json.RawMessage) *OutboxEntry {
	return &OutboxEntry{
		ID:        ulid.Make().String(),
		Kind:      kind,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
}
