package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ccollicutt/cnvreader/pkg/cnv"
	"github.com/ccollicutt/cnvreader/pkg/config"
	"github.com/ccollicutt/cnvreader/pkg/output"
	"github.com/ccollicutt/cnvreader/pkg/source"
	"github.com/ccollicutt/cnvreader/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// HeaderOptions holds command-line options for the header command.
type HeaderOptions struct {
	Config  string
	Output  string
	Markers string
	Verbose bool
	Quiet   bool

	// Webhook options
	WebhookURL   string
	WebhookToken string
}

// NewHeaderCommand creates the header command.
func NewHeaderCommand() *cobra.Command {
	opts := &HeaderOptions{}

	cmd := &cobra.Command{
		Use:   "header <file|dir|glob>...",
		Short: "Print the header metadata of CNV files",
		Long: `Read the header block of each CNV file and print its metadata.

Directories contribute the .cnv files they contain. Files whose header
cannot be read are reported and do not stop the run.

Example:
  cnvinfo header cast01.cnv
  cnvinfo header -o json 'cruise/*.cnv'
  cnvinfo header -c cnvinfo.yaml --webhook-url https://catalog.example/api ./cruise`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeader(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Configuration file (YAML)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json|yaml)")
	cmd.Flags().StringVar(&opts.Markers, "markers", "", "Header marker characters (default \"*#\")")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show run details and log ignored header values")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")

	return cmd
}

func runHeader(cmd *cobra.Command, args []string, opts *HeaderOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(ctx, opts.Config, opts.Output, opts.Markers)
	if err != nil {
		return err
	}

	logger, err := newLogger(opts.Verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	files, err := source.Expand(args)
	if err != nil {
		return fmt.Errorf("expanding inputs: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no CNV files matched: %v", args)
	}

	start := time.Now()
	reports := make([]*output.FileReport, 0, len(files))
	for _, path := range files {
		h, err := source.ReadHeader(path,
			cnv.WithMarkers(cfg.Markers),
			cnv.WithLogger(logger.With(zap.String("file", path))),
		)
		if err != nil {
			logger.Warn("header not read", zap.String("file", path), zap.Error(err))
			reports = append(reports, output.NewFailedFileReport(path, err))
			continue
		}
		reports = append(reports, output.NewFileReport(path, h))
	}
	report := output.NewReport(reports, start, time.Now())

	formatter, err := createFormatter(cfg.OutputFormat(), opts)
	if err != nil {
		return err
	}

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Webhook failures are reported but don't fail the run
	sendWebhooks(ctx, cmd, cfg, opts, report)

	if report.HasFailures() {
		ExitCode = 1
	}

	return nil
}

// loadConfig reads the configuration file, applies flag overrides on top
// of the environment ones and validates the result once.
func loadConfig(ctx context.Context, path, outputFlag, markersFlag string) (*config.Config, error) {
	cfg, err := config.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if outputFlag != "" {
		cfg.Output = outputFlag
	}
	if markersFlag != "" {
		cfg.Markers = markersFlag
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func createFormatter(format config.OutputFormat, opts *HeaderOptions) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	}

	switch format {
	case config.OutputText:
		return output.NewTextFormatter(formatOpts), nil
	case config.OutputJSON:
		return output.NewJSONFormatter(formatOpts), nil
	case config.OutputYAML:
		return output.NewYAMLFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text, json, or yaml)", format)
	}
}

// sendWebhooks sends the report to all configured webhooks.
func sendWebhooks(ctx context.Context, cmd *cobra.Command, cfg *config.Config, opts *HeaderOptions, report *output.Report) {
	webhooks := collectWebhooks(cfg, opts)
	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient(webhook.WithUserAgent("cnvinfo/" + Version))

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, report.HasFailures()) {
			continue
		}

		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			fmt.Fprintf(cmd.ErrOrStderr(), "Webhook %s: sent (%d, %s)\n", name, resp.StatusCode, resp.Duration)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "Webhook %s: failed (%v)\n", name, resp.Error)
		}
	}
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *HeaderOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: config.WebhookTriggerOnSuccess,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}

// shouldFireWebhook determines if a webhook should fire based on trigger and failures.
func shouldFireWebhook(trigger config.WebhookTrigger, hasFailures bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	default:
		return !hasFailures
	}
}
