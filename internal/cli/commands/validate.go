package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/cnvreader/pkg/cnv"
	"github.com/ccollicutt/cnvreader/pkg/source"
)

// ValidateOptions holds command-line options for the validate command.
type ValidateOptions struct {
	Config  string
	Markers string
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <file|dir|glob>...",
		Short: "Check that CNV headers are well formed",
		Long: `Validate the header block of CNV files without printing their metadata.

Checks:
  - The file can be opened and read
  - Every header line starts with a marker character
  - The header ends with an END line (warning only)`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Configuration file (YAML)")
	cmd.Flags().StringVar(&opts.Markers, "markers", "", "Header marker characters (default \"*#\")")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string, opts *ValidateOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(ctx, opts.Config, "", opts.Markers)
	if err != nil {
		return err
	}

	files, err := source.Expand(args)
	if err != nil {
		return fmt.Errorf("expanding inputs: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no CNV files matched: %v", args)
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range files {
		h, err := source.ReadHeader(path, cnv.WithMarkers(cfg.Markers))
		if err != nil {
			failed++
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}

		if h.Terminated() {
			fmt.Fprintf(out, "%s: ok (%d lines)\n", path, h.LinesRead())
		} else {
			fmt.Fprintf(out, "%s: ok (%d lines, warning: no END line)\n", path, h.LinesRead())
		}
	}

	fmt.Fprintf(out, "\n%d of %d files valid\n", len(files)-failed, len(files))

	if failed > 0 {
		ExitCode = 1
	}

	return nil
}
