// ABOUTME: CLI command for the session cache.
// ABOUTME: Clears cached API responses, or every session key with --all.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitforge/internal/cache"
	"github.com/spf13/cobra"
)

var cacheClearAll bool

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the session cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached plans and recipes",
	Long: `Clear cached API responses (plans, recipe lists).

With --all, session flags are cleared too: the promo banner shows again and
the contact form forgets your last message.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := cache.PrefixTTL
		if cacheClearAll {
			prefix = ""
		}
		n, err := sessionCache.Clear(cmdContext(cmd), prefix)
		if err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		color.Green("✓ Cleared %d cached entries", n)
		return nil
	},
}

func init() {
	cacheClearCmd.Flags().BoolVar(&cacheClearAll, "all", false, "also clear session flags")
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
