// ABOUTME: CLI command for unit conversion.
// ABOUTME: Converts lengths and masses between cm, in, ft, kg, and lbs without opening storage.
package main

import (
	"fmt"
	"strconv"

	"github.com/harperreed/fitforge/internal/units"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <value> <from> <to>",
	Short: "Convert between metric and imperial units",
	Long: `Convert a length or a mass between units. Results are rounded to one decimal.

UNITS:

  length   cm, in, ft
  mass     kg, lbs

EXAMPLES:

  fitforge convert 180 cm in     # 70.9
  fitforge convert 154 lbs kg    # 69.9`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid value: %s", args[0])
		}
		out, err := units.Convert(v, args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s\n", units.FormatValue(v), args[1], units.FormatValue(out), args[2])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
