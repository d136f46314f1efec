package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harfang-mgf/sundial/internal/ephem"
)

var tableStep int

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the solar table used for the seasonal line families",
	Long: `Prints the precomputed year of solar samples: declination and
equation of time per degree of ecliptic longitude, starting at the
March equinox.`,
	Args: cobra.NoArgs,
	RunE: runTable,
}

func init() {
	rootCmd.AddCommand(tableCmd)
	tableCmd.Flags().IntVar(&tableStep, "step", 10, "print every Nth degree")
}

func runTable(cmd *cobra.Command, args []string) error {
	if tableStep < 1 {
		return fmt.Errorf("--step must be at least 1")
	}
	table := ephem.NewTable()
	fmt.Printf("%5s %10s %10s\n", "long", "decl", "eqtime")
	for l := 0; l < len(table); l += tableStep {
		e := table[l]
		fmt.Printf("%4d° %9.3f° %7.2f min\n", l, e.Decl, e.EqTime)
	}
	return nil
}
