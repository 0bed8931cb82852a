// ABOUTME: CLI command for subscription plans and promo codes.
// ABOUTME: Shows plans with annual savings, the active promo banner, and promo-adjusted prices.
package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/harperreed/fitforge/internal/models"
	"github.com/harperreed/fitforge/internal/pricing"
	"github.com/spf13/cobra"
)

var (
	pricingPromo  string
	pricingPlan   string
	pricingAnnual bool
)

var pricingCmd = &cobra.Command{
	Use:     "pricing",
	Aliases: []string{"plans"},
	Short:   "Show subscription plans",
	Long: `Show FitForge subscription plans.

The current promotion is shown once per session. Pass --promo to check a
code against a plan and see the discounted price.

EXAMPLES:

  fitforge pricing
  fitforge pricing --annual
  fitforge pricing --promo SAVE20 --plan pro`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)
		out := cmd.OutOrStdout()
		svc := pricingService()

		if promo := svc.ActivePromo(ctx); promo != nil {
			color.New(color.FgMagenta, color.Bold).Fprintf(out, "★ %s\n\n", pricing.DescribePromo(promo))
		}

		plans := svc.Plans(ctx)
		if len(plans) == 0 {
			fmt.Fprintln(out, "No plans available right now.")
			return nil
		}

		if pricingPlan != "" {
			p, ok := svc.Plan(ctx, pricingPlan)
			if !ok {
				return models.Invalid("plan", fmt.Sprintf("no plan named %q", pricingPlan))
			}
			plans = []models.Plan{*p}
		}

		var promo *models.Promo
		if pricingPromo != "" {
			p, err := svc.ValidatePromo(ctx, pricingPromo, plans[0].PlanID)
			if err != nil {
				return err
			}
			promo = p
			color.Green("✓ %s", pricing.DescribePromo(promo))
			fmt.Fprintln(out)
		}

		for _, p := range plans {
			printPlan(out, p, promo)
		}
		return nil
	},
}

func printPlan(out io.Writer, p models.Plan, promo *models.Promo) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Fprint(out, p.Name)
	if p.Badge != "" {
		color.New(color.FgCyan).Fprintf(out, " [%s]", p.Badge)
	}
	fmt.Fprintln(out)

	price, period := p.MonthlyPrice, "month"
	if pricingAnnual {
		price, period = p.AnnualPrice, "year"
	}
	if promo != nil {
		final := pricing.FinalPrice(price, promo)
		faint.Fprintf(out, "  %s", pricing.FormatPrice(price))
		fmt.Fprintf(out, " %s/%s\n", pricing.FormatPrice(final), period)
	} else {
		fmt.Fprintf(out, "  %s/%s\n", pricing.FormatPrice(price), period)
	}
	if pct := pricing.AnnualSavingsPercent(p); pct > 0 {
		color.New(color.FgGreen).Fprintf(out, "  Save %d%% with annual billing\n", pct)
	}
	if p.Description != "" {
		faint.Fprintf(out, "  %s\n", p.Description)
	}
	for _, f := range p.Features {
		fmt.Fprintf(out, "  • %s\n", f)
	}
	fmt.Fprintln(out)
}

func init() {
	pricingCmd.Flags().StringVar(&pricingPromo, "promo", "", "promo code to apply")
	pricingCmd.Flags().StringVar(&pricingPlan, "plan", "", "only show this plan (and check --promo against it)")
	pricingCmd.Flags().BoolVar(&pricingAnnual, "annual", false, "show annual prices")
	rootCmd.AddCommand(pricingCmd)
}
