// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio MCP server exposing ingredient, unit, pricing, and onboarding tools.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/fitforge/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "fitforge": {
        "command": "fitforge",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  suggest_ingredients     Reference ingredients matching a name
  scale_ingredient        Nutrition for a quantity of an ingredient
  convert_units           cm/in/ft and kg/lbs conversion
  estimate_one_rep_max    Epley one-rep max from "weight x reps"
  price_with_promo        Apply a promo discount to a price
  list_plans              Subscription plans with annual savings
  get_onboarding_answers  Last completed onboarding answers
  list_pending_saves      Saves waiting to be retried

AVAILABLE RESOURCES:

  fitforge://profile       Cached user profile
  fitforge://ingredients   Ingredient reference table
  fitforge://outbox        Pending saves`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, ingredients, pricingService())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
