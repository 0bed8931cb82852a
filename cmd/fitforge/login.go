// ABOUTME: CLI commands for signing in and out.
// ABOUTME: Stores the bearer token and a cached profile in local storage.
package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fitforge/internal/models"
	"github.com/harperreed/fitforge/internal/storage"
	"github.com/spf13/cobra"
)

var (
	loginToken string
	loginName  string
	loginEmail string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store your FitForge API token",
	Long: `Store the API token issued by FitForge and cache your profile.

The token is kept in local storage and sent as a bearer token on every
authenticated request. It is never included in exports.

EXAMPLES:

  fitforge login --token abc123
  fitforge login --token abc123 --name "Ada" --email ada@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		token := strings.TrimSpace(loginToken)
		if token == "" {
			return models.Invalid("token", "is required")
		}
		if err := repo.SaveToken(token); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}

		p, err := repo.GetProfile()
		if errors.Is(err, storage.ErrNotFound) {
			p = models.NewUserProfile("", "")
		} else if err != nil {
			return fmt.Errorf("failed to read profile: %w", err)
		}
		if loginName != "" {
			p.Name = loginName
		}
		if loginEmail != "" {
			p.Email = loginEmail
		}
		p.UpdatedAt = time.Now()
		if err := repo.SaveProfile(p); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}

		state.SetUser(p)
		state.CloseAuthPrompt()

		who := p.Email
		if who == "" {
			who = p.Name
		}
		if who != "" {
			color.Green("✓ Signed in as %s", who)
		} else {
			color.Green("✓ Signed in")
		}
		if !p.OnboardingCompleted {
			fmt.Fprintln(cmd.OutOrStdout(), "Next: run 'fitforge onboard' to set up your plan.")
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored token and cached profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.ClearToken(); err != nil {
			return fmt.Errorf("failed to clear token: %w", err)
		}
		if err := repo.ClearProfile(); err != nil {
			return fmt.Errorf("failed to clear profile: %w", err)
		}
		state.SetUser(nil)
		color.Green("✓ Signed out")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginToken, "token", "", "API token (required)")
	loginCmd.Flags().StringVar(&loginName, "name", "", "your name")
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "your email")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
