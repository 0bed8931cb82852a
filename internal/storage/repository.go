// ABOUTME: Repository interface for fitforge local storage.
// ABOUTME: Holds the auth token, cached profile, last onboarding answers, and the outbox.
package storage

import (
	"errors"

	"github.com/harperreed/fitforge/internal/models"
)

// ErrNotFound is returned when a requested item has never been stored.
var ErrNotFound = errors.New("not found")

// Repository defines the local storage interface.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Auth token
	SaveToken(token string) error
	GetToken() (string, error)
	ClearToken() error

	// Cached user profile
	SaveProfile(p *models.UserProfile) error
	GetProfile() (*models.UserProfile, error)
	ClearProfile() error

	// Last completed onboarding answers
	SaveOnboardingAnswers(r *models.Record) error
	GetOnboardingAnswers() (*models.Record, error)

	// Outbox of failed requests awaiting retry
	EnqueueOutbox(e *models.OutboxEntry) error
	UpdateOutbox(e *models.OutboxEntry) error
	ListOutbox() ([]*models.OutboxEntry, error)
	DeleteOutbox(id string) error

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}
