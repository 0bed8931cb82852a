// ABOUTME: CLI commands for the onboarding questionnaire and its retry queue.
// ABOUTME: Runs the wizard interactively or from an answers file, then saves in the background.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitforge/internal/api"
	"github.com/harperreed/fitforge/internal/models"
	"github.com/harperreed/fitforge/internal/onboarding"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var onboardAnswers string

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Answer the onboarding questionnaire",
	Long: `Answer the 14-step onboarding questionnaire that shapes your plan.

STEPS:

   1 gender          8 workout days per week
   2 age/height/wt   9 equipment (or none)
   3 targets        10 location
   4 goal           11 body measurements
   5 focus areas    12 health and lifestyle
   6 fitness level  13 nutrition (skippable)
   7 strength       14 summary
     (skippable)

Press Enter to keep a shown value. Type :back, :skip, :units or :quit at
any prompt. Heights, weights and lifts can be entered in imperial units
after :units; they are stored in cm and kg.

Strength accepts a weight ("100") or a set ("80x5"); sets are turned into
an estimated one-rep max.

If the final save cannot reach FitForge, the answers are kept locally and
sent by 'fitforge onboard retry' (also tried at the start of every
'fitforge onboard').

EXAMPLES:

  fitforge onboard
  fitforge onboard --answers me.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)
		out := cmd.OutOrStdout()

		if state.User() != nil {
			replayPending(ctx)
		}

		var route string
		nav := onboarding.NavigatorFunc(func(r string) { route = r })
		w := onboarding.NewWizard(nav)
		ok, stop := w.Mount(state)
		defer stop()
		if !ok {
			if route == onboarding.RouteHome {
				return fmt.Errorf("sign in before onboarding: %w", api.ErrUnauthorized)
			}
			fmt.Fprintln(out, "Onboarding is already complete.")
			return nil
		}

		steps := onboarding.Steps()
		if onboardAnswers != "" {
			answers, err := loadAnswers(onboardAnswers)
			if err != nil {
				return err
			}
			if err := w.Fill(steps, answers); err != nil {
				return err
			}
		} else if err := runWizard(newPrompter(cmd.InOrStdin(), out), w, steps); err != nil {
			return err
		}

		summary := steps[onboarding.TotalSteps-1].(*onboarding.SummaryStep)
		summary.Seed(w.Record())
		fmt.Fprintln(out)
		color.New(color.Bold).Fprintln(out, summary.Title())
		for _, line := range summary.Lines() {
			fmt.Fprintln(out, "  "+line)
		}

		finisher := &onboarding.Finisher{API: apiClient, Repo: repo, Nav: nav, Logger: logger}
		c := finisher.Start(ctx, w.Record())
		// Exiting now would drop the in-flight save, so wait for it.
		saveErr := c.Wait()
		c.Cancel()
		if saveErr != nil {
			color.Yellow("⚠ Could not save to FitForge (%s)", errorMessage(saveErr))
			fmt.Fprintln(out, "Your answers are stored locally and will be sent by 'fitforge onboard retry'.")
		} else {
			color.Green("✓ Onboarding saved")
		}
		fmt.Fprintln(out, "Your dashboard is ready.")
		return nil
	},
}

var onboardRetryCmd = &cobra.Command{
	Use:   "retry",
	Short: "Send onboarding saves that failed earlier",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)
		summary, err := onboarding.ReplayOutbox(ctx, apiClient, repo, logger)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch {
		case summary.Sent == 0 && summary.Failed == 0:
			fmt.Fprintln(out, "Nothing waiting to be sent.")
		case summary.Failed == 0:
			color.Green("✓ Sent %d pending save(s)", summary.Sent)
		default:
			color.Yellow("⚠ Sent %d, %d still pending", summary.Sent, summary.Failed)
		}
		return nil
	},
}

// replayPending quietly retries queued saves before a new run.
func replayPending(ctx context.Context) {
	summary, err := onboarding.ReplayOutbox(ctx, apiClient, repo, logger)
	if err != nil {
		logger.Warn("replay outbox", "err", err)
		return
	}
	if summary.Sent > 0 {
		color.Green("✓ Sent %d pending onboarding save(s)", summary.Sent)
	}
}

// loadAnswers reads a prepared record from JSON or YAML, chosen by extension.
func loadAnswers(path string) (models.Record, error) {
	var r models.Record
	data, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("failed to read answers: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &r)
	default:
		err = json.Unmarshal(data, &r)
	}
	if err != nil {
		return r, fmt.Errorf("failed to parse answers %s: %w", path, err)
	}
	return r, nil
}

func init() {
	onboardCmd.Flags().StringVar(&onboardAnswers, "answers", "", "answers file (.json, .yaml)")
	onboardCmd.AddCommand(onboardRetryCmd)
	rootCmd.AddCommand(onboardCmd)
}
