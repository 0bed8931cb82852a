// ABOUTME: Data migration between fitforge storage backends.
// ABOUTME: Copies token, profile, last answers, and outbox from source to destination.

package storage

import (
	"errors"
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Token      bool
	Profile    bool
	Onboarding bool
	Outbox     int
}

// MigrateData copies all local state from src to dst storage.
// The destination should be empty before calling this function.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	token, err := src.GetToken()
	switch {
	case err == nil:
		if err := dst.SaveToken(token); err != nil {
			return nil, fmt.Errorf("save token: %w", err)
		}
		summary.Token = true
	case !errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("get source token: %w", err)
	}

	data, err := src.GetAllData()
	if err != nil {
		return nil, fmt.Errorf("read source data: %w", err)
	}
	if err := dst.ImportData(data); err != nil {
		return nil, err
	}
	summary.Profile = data.Profile != nil
	summary.Onboarding = data.Onboarding != nil
	summary.Outbox = len(data.Outbox)

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
