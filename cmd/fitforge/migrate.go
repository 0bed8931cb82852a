// ABOUTME: CLI command for moving local state between storage backends.
// ABOUTME: Copies token, profile, last answers, and pending saves from the active backend to another.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitforge/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateTo     string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy local data to another storage backend",
	Long: `Copy local data from the active backend to another one.

BACKENDS:

  sqlite   ~/.local/share/fitforge/fitforge.db (default)
  charm    Charm KV, synced across devices

The destination must be empty unless --force is given. After migrating,
set "backend" in ~/.config/fitforge/config.json (or FITFORGE_BACKEND) to
start using it.

USAGE:

  fitforge migrate --to charm --dry-run   # Preview what would be copied
  fitforge migrate --to charm             # Copy`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		from := cfg.GetBackend()
		if migrateTo == from {
			return fmt.Errorf("already using the %s backend", from)
		}

		if migrateDryRun {
			data, err := repo.GetAllData()
			if err != nil {
				return fmt.Errorf("read %s data: %w", from, err)
			}
			_, tokenErr := repo.GetToken()
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Fprintf(out, "Would copy from %s to %s:\n", from, migrateTo)
			fmt.Fprintf(out, "  Token: %v\n", tokenErr == nil)
			fmt.Fprintf(out, "  Profile: %v\n", data.Profile != nil)
			fmt.Fprintf(out, "  Onboarding answers: %v\n", data.Onboarding != nil)
			fmt.Fprintf(out, "  Pending saves: %d\n", len(data.Outbox))
			return nil
		}

		dstCfg := *cfg
		dstCfg.Backend = migrateTo
		if migrateTo == "sqlite" && !migrateForce {
			nonEmpty, err := storage.IsDirNonEmpty(dstCfg.GetDataDir())
			if err != nil {
				return err
			}
			if nonEmpty {
				return fmt.Errorf("%s already has data (use --force to merge into it)", dstCfg.GetDataDir())
			}
		}

		dst, err := dstCfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", migrateTo, err)
		}
		defer dst.Close()

		if !migrateForce {
			empty, err := isEmpty(dst)
			if err != nil {
				return err
			}
			if !empty {
				return fmt.Errorf("%s backend already has data (use --force to merge into it)", migrateTo)
			}
		}

		summary, err := storage.MigrateData(repo, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated %s → %s", from, migrateTo)
		fmt.Fprintf(out, "  Token: %v\n", summary.Token)
		fmt.Fprintf(out, "  Profile: %v\n", summary.Profile)
		fmt.Fprintf(out, "  Onboarding answers: %v\n", summary.Onboarding)
		fmt.Fprintf(out, "  Pending saves: %d\n", summary.Outbox)
		fmt.Fprintf(out, "\nSet FITFORGE_BACKEND=%s or \"backend\": %q in your config to switch.\n", migrateTo, migrateTo)
		return nil
	},
}

func isEmpty(r storage.Repository) (bool, error) {
	if _, err := r.GetToken(); err == nil {
		return false, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return false, err
	}
	data, err := r.GetAllData()
	if err != nil {
		return false, err
	}
	return data.Profile == nil && data.Onboarding == nil && len(data.Outbox) == 0, nil
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "charm", "destination backend (sqlite or charm)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "write into a destination that already has data")
	rootCmd.AddCommand(migrateCmd)
}
