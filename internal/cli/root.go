// Package cli provides the command-line interface for cnvinfo.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/cnvreader/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors prevents Cobra from printing this itself
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cnvinfo",
		Short: "Inspect the header of CNV instrument recordings",
		Long: `cnvinfo reads the header block of CNV files written by CTD deck software.

It reports:
  - Cast position (NMEA Latitude / NMEA Longitude)
  - Cast time (NMEA UTC (Time))
  - Column descriptors (name, sensor type, unit)
  - Every other header value and note

Exit codes:
  0 - All headers read
  1 - At least one header could not be read
  2 - Usage or configuration error`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewHeaderCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
