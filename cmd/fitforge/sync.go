// ABOUTME: CLI commands for Charm-based sync of local state.
// ABOUTME: Supports link, unlink, status, repair, reset, and wipe when the charm backend is active.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harperreed/fitforge/internal/charm"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Sync local state across devices",
	Long: `Sync your token, profile, onboarding answers, and pending saves across
devices using Charm Cloud. Requires "backend": "charm" in your config.

Data is E2E encrypted with your SSH key before upload.

COMMANDS:

  link        Link this device to your Charm account
  unlink      Disconnect this device from Charm
  status      Show sync status and local data
  repair      Repair local database corruption
  reset       Reset local data and restore from cloud (destructive)
  wipe        Delete cloud and local data (destructive)

Data syncs automatically after each write.`,
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm("link"); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}
		color.Green("\n✓ Device linked to Charm")

		if c, ok := charmRepo(); ok {
			if err := c.Sync(); err != nil {
				color.Yellow("⚠ Initial sync failed: %v", err)
			} else {
				color.Green("✓ Initial sync complete")
			}
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), `Set "backend": "charm" in your config to start syncing.`)
		}
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Disconnect from Charm",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm("unlink"); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}
		color.Green("✓ Device unlinked from Charm")
		fmt.Fprintln(cmd.OutOrStdout(), "Your local data is preserved.")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		c, ok := charmRepo()
		if !ok {
			color.Yellow("Sync is off: the %s backend is active", cfg.GetBackend())
			fmt.Fprintln(out, "\nSet \"backend\": \"charm\" in your config, then run 'fitforge sync link'.")
			return nil
		}

		id, err := c.ID()
		if err != nil {
			color.Yellow("Not linked to Charm")
			fmt.Fprintln(out, "\nRun 'fitforge sync link' to connect to Charm.")
			return nil
		}

		fmt.Fprintln(out, "Charm ID:", id)
		if c.IsReadOnly() {
			color.Yellow("⚠ Read-only: another fitforge process holds the database")
		}
		fmt.Fprintln(out)

		data, err := c.GetAllData()
		if err != nil {
			return err
		}
		color.Green("✓ Connected to Charm")
		fmt.Fprintf(out, "  Profile: %v\n", data.Profile != nil)
		fmt.Fprintf(out, "  Onboarding answers: %v\n", data.Onboarding != nil)
		fmt.Fprintf(out, "  Pending saves: %d\n", len(data.Outbox))
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair database corruption",
	Long: `Repair database corruption by checkpointing WAL, removing SHM files, checking integrity, and vacuuming.

Run with --force to attempt recovery even if integrity checks fail.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		fmt.Fprintln(cmd.OutOrStdout(), "Repairing fitforge database...")
		result, err := kv.Repair(charm.DBName, force)

		if result.WalCheckpointed {
			color.Green("  ✓ WAL checkpointed")
		}
		if result.ShmRemoved {
			color.Green("  ✓ SHM file removed")
		}
		if result.IntegrityOK {
			color.Green("  ✓ Integrity check passed")
		} else {
			color.Red("  ✗ Integrity check failed")
		}
		if result.Vacuumed {
			color.Green("  ✓ Database vacuumed")
		}

		if err != nil {
			if !force {
				color.Yellow("\nRun with --force to attempt recovery.")
			}
			return fmt.Errorf("repair failed: %w", err)
		}
		color.Green("\n✓ Repair complete")
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset local data and restore from cloud",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, ok := charmRepo()
		if !ok {
			return fmt.Errorf("reset needs the charm backend")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "This will DELETE all local fitforge data and restore from cloud.")
		if !confirm(cmd, "Continue? [y/N]: ", "y", "Y") {
			fmt.Fprintln(cmd.OutOrStdout(), "Canceled.")
			return nil
		}
		if err := c.Reset(); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		color.Green("✓ Local data reset and restored from cloud")
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all cloud and local data",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "This will PERMANENTLY DELETE all cloud backups and local fitforge data.")
		if !confirm(cmd, "Type 'wipe' to confirm: ", "wipe") {
			fmt.Fprintln(cmd.OutOrStdout(), "Canceled.")
			return nil
		}

		// The KV handle must be released before its files can be removed.
		if err := closeApp(); err != nil {
			logger.Warn("close storage before wipe", "err", err)
		}
		result, err := kv.Wipe(charm.DBName)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}

		color.Green("✓ Data wiped successfully")
		fmt.Fprintf(cmd.OutOrStdout(), "  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Fprintf(cmd.OutOrStdout(), "  Local files deleted: %d\n", result.LocalFilesDeleted)
		return nil
	},
}

func charmRepo() (*charm.Client, bool) {
	c, ok := repo.(*charm.Client)
	return c, ok
}

func runCharm(arg string) error {
	c := exec.Command("charm", arg)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

func confirm(cmd *cobra.Command, prompt string, accepted ...string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	sc := bufio.NewScanner(cmd.InOrStdin())
	if !sc.Scan() {
		return false
	}
	answer := strings.TrimSpace(sc.Text())
	for _, a := range accepted {
		if answer == a {
			return true
		}
	}
	return false
}

func init() {
	syncRepairCmd.Flags().Bool("force", false, "Attempt recovery even if integrity checks fail")

	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncUnlinkCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncRepairCmd)
	syncCmd.AddCommand(syncResetCmd)
	syncCmd.AddCommand(syncWipeCmd)

	rootCmd.AddCommand(syncCmd)
}
