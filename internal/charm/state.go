// ABOUTME: Repository operations for Charm KV storage.
// ABOUTME: Token, profile, and answers use fixed keys; outbox entries use "outbox:<ulid>".
package charm

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/harperreed/fitforge/internal/models"
	"github.com/harperreed/fitforge/internal/storage"
)

// SaveToken stores the bearer token.
func (c *Client) SaveToken(token string) error {
	return c.set(storage.KeyToken, []byte(token))
}

// GetToken returns the stored token.
func (c *Client) GetToken() (string, error) {
	data, err := c.get(storage.KeyToken)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ClearToken removes the stored token.
func (c *Client) ClearToken() error {
	return c.delete(storage.KeyToken, false)
}

// SaveProfile caches the user profile.
func (c *Client) SaveProfile(p *models.UserProfile) error {
	return c.putJSON(storage.KeyProfile, p)
}

// GetProfile returns the cached profile.
func (c *Client) GetProfile() (*models.UserProfile, error) {
	data, err := c.get(storage.KeyProfile)
	if err != nil {
		return nil, err
	}
	p, err := unmarshalJSON[models.UserProfile](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return p, nil
}

// ClearProfile removes the cached profile.
func (c *Client) ClearProfile() error {
	return c.delete(storage.KeyProfile, false)
}

// SaveOnboardingAnswers stores the last submitted record.
func (c *Client) SaveOnboardingAnswers(r *models.Record) error {
	return c.putJSON(storage.KeyOnboarding, r)
}

// GetOnboardingAnswers returns the last submitted record.
func (c *Client) GetOnboardingAnswers() (*models.Record, error) {
	data, err := c.get(storage.KeyOnboarding)
	if err != nil {
		return nil, err
	}
	r, err := unmarshalJSON[models.Record](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal onboarding answers: %w", err)
	}
	return r, nil
}

// EnqueueOutbox stores a new outbox entry.
func (c *Client) EnqueueOutbox(e *models.OutboxEntry) error {
	return c.putJSON(OutboxPrefix+e.ID, e)
}

// UpdateOutbox overwrites an existing outbox entry.
func (c *Client) UpdateOutbox(e *models.OutboxEntry) error {
	if _, err := c.get(OutboxPrefix + e.ID); err != nil {
		return err
	}
	return c.putJSON(OutboxPrefix+e.ID, e)
}

// ListOutbox returns pending entries, oldest first.
func (c *Client) ListOutbox() ([]*models.OutboxEntry, error) {
	all, err := c.listByPrefix(OutboxPrefix)
	if err != nil {
		return nil, fmt.Errorf("list outbox: %w", err)
	}

	entries := make([]*models.OutboxEntry, 0, len(all))
	for key, data := range all {
		e, err := unmarshalJSON[models.OutboxEntry](data)
		if err != nil {
			continue // Skip invalid entries
		}
		if e.ID == "" {
			e.ID = extractID(key, OutboxPrefix)
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}

// DeleteOutbox removes a delivered entry.
func (c *Client) DeleteOutbox(id string) error {
	return c.delete(OutboxPrefix+id, true)
}

// GetAllData retrieves all data for export.
func (c *Client) GetAllData() (*storage.ExportData, error) {
	return storage.CollectExport(c)
}

// ImportData imports data from an export.
func (c *Client) ImportData(data *storage.ExportData) error {
	return storage.ApplyImport(c, data)
}

func (c *Client) putJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return c.set(key, data)
}
