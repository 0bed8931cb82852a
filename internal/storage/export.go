// ABOUTME: Export and import of fitforge local state.
// ABOUTME: Supports JSON and YAML export formats; the token is never exported.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/fitforge/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for local state.
type ExportData struct {
	Version    string                `json:"version" yaml:"version"`
	ExportedAt time.Time             `json:"exported_at" yaml:"exported_at"`
	Tool       string                `json:"tool" yaml:"tool"`
	Profile    *models.UserProfile   `json:"profile,omitempty" yaml:"profile,omitempty"`
	Onboarding *models.Record        `json:"onboarding,omitempty" yaml:"onboarding,omitempty"`
	Outbox     []*models.OutboxEntry `json:"outbox" yaml:"outbox"`
}

// CollectExport gathers everything a Repository holds, minus the token.
// Both backends build their GetAllData on it.
func CollectExport(r Repository) (*ExportData, error) {
	data := &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "fitforge",
	}

	profile, err := r.GetProfile()
	switch {
	case err == nil:
		data.Profile = profile
	case !errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("get profile: %w", err)
	}

	answers, err := r.GetOnboardingAnswers()
	switch {
	case err == nil:
		data.Onboarding = answers
	case !errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("get onboarding answers: %w", err)
	}

	outbox, err := r.ListOutbox()
	if err != nil {
		return nil, fmt.Errorf("list outbox: %w", err)
	}
	data.Outbox = outbox
	return data, nil
}

// ApplyImport writes an export into a Repository.
func ApplyImport(r Repository, data *ExportData) error {
	if data.Profile != nil {
		if err := r.SaveProfile(data.Profile); err != nil {
			return fmt.Errorf("import profile: %w", err)
		}
	}
	if data.Onboarding != nil {
		if err := r.SaveOnboardingAnswers(data.Onboarding); err != nil {
			return fmt.Errorf("import onboarding answers: %w", err)
		}
	}
	for _, e := range data.Outbox {
		if err := r.EnqueueOutbox(e); err != nil {
			return fmt.Errorf("import outbox entry %s: %w", e.ID, err)
		}
	}
	return nil
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	return CollectExport(d)
}

// ImportData imports data from an export.
func (d *DB) ImportData(data *ExportData) error {
	return ApplyImport(d, data)
}

// ExportJSON renders an export as indented JSON.
func ExportJSON(r Repository) ([]byte, error) {
	data, err := r.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML renders an export as YAML with the outbox payloads decoded
// so they read as nested documents instead of byte arrays.
func ExportYAML(r Repository) ([]byte, error) {
	data, err := r.GetAllData()
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string            `yaml:"version"`
		ExportedAt string            `yaml:"exported_at"`
		Tool       string            `yaml:"tool"`
		Profile    *yamlProfile      `yaml:"profile,omitempty"`
		Onboarding *models.Record    `yaml:"onboarding,omitempty"`
		Outbox     []yamlOutboxEntry `yaml:"outbox"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Onboarding: data.Onboarding,
		Outbox:     make([]yamlOutboxEntry, 0, len(data.Outbox)),
	}

	if p := data.Profile; p != nil {
		yamlData.Profile = &yamlProfile{
			ID:                  p.ID.String(),
			Name:                p.Name,
			Email:               p.Email,
			OnboardingCompleted: p.OnboardingCompleted,
			UpdatedAt:           p.UpdatedAt.Format(time.RFC3339),
		}
	}

	for _, e := range data.Outbox {
		ye := yamlOutboxEntry{
			ID:        e.ID,
			Kind:      string(e.Kind),
			Attempts:  e.Attempts,
			LastError: e.LastError,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		}
		var payload any
		if err := json.Unmarshal(e.Payload, &payload); err == nil {
			ye.Payload = payload
		} else {
			ye.Payload = string(e.Payload)
		}
		yamlData.Outbox = append(yamlData.Outbox, ye)
	}

	return yaml.Marshal(yamlData)
}

type yamlProfile struct {
	ID                  string `yaml:"id"`
	Name                string `yaml:"name,omitempty"`
	Email               string `yaml:"email,omitempty"`
	OnboardingCompleted bool   `yaml:"onboarding_completed"`
	UpdatedAt           string `yaml:"updated_at"`
}

type yamlOutboxEntry struct {
	ID        string `yaml:"id"`
	Kind      string `yaml:"kind"`
	Payload   any    `yaml:"payload"`
	Attempts  int    `yaml:"attempts"`
	LastError string `yaml:"last_error,omitempty"`
	CreatedAt string `yaml:"created_at"`
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(r Repository, raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return r.ImportData(&data)
}
