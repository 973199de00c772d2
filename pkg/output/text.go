package output

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "cnvinfo: %d files read, %d failed, %d columns\n",
		report.Summary.FilesRead,
		report.Summary.FilesFailed,
		report.Summary.Columns)
	return nil
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	for _, file := range report.Files {
		if err := f.formatFile(file, w); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d files read, %d failed, %d columns\n",
		report.Summary.FilesRead,
		report.Summary.FilesFailed,
		report.Summary.Columns)

	if f.opts.Verbose {
		fmt.Fprintf(w, "Generated: %s\n", report.Metadata.GeneratedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return nil
}

func (f *TextFormatter) formatFile(file *FileReport, w io.Writer) error {
	fmt.Fprintf(w, "=== %s ===\n", file.Source)

	if file.Failed() {
		fmt.Fprintf(w, "  Error: %s\n", file.Error)
		fmt.Fprintln(w)
		return nil
	}

	if file.Position != nil {
		fmt.Fprintf(w, "  Position: %g, %g\n", file.Position.Lat, file.Position.Lng)
	} else {
		fmt.Fprintln(w, "  Position: unknown")
	}
	if file.DateTime != "" {
		fmt.Fprintf(w, "  Time:     %s UTC\n", file.DateTime)
	} else {
		fmt.Fprintln(w, "  Time:     unknown")
	}
	if f.opts.Verbose {
		state := "terminated"
		if !file.Terminated {
			state = "no END line"
		}
		fmt.Fprintf(w, "  Lines:    %d (%s)\n", file.LinesRead, state)
	}

	if len(file.Columns) > 0 {
		fmt.Fprintf(w, "\n  Columns (%d):\n", len(file.Columns))
		if err := f.formatColumns(file.Columns, w); err != nil {
			return err
		}
	}

	if len(file.Indexed) > 0 {
		fmt.Fprintln(w, "\n  Values:")
		for _, kv := range file.Indexed {
			fmt.Fprintf(w, "    %s = %s\n", kv.Key, kv.Value)
		}
	}

	if len(file.Data) > 0 {
		fmt.Fprintln(w, "\n  Notes:")
		for _, line := range file.Data {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}

	fmt.Fprintln(w)
	return nil
}

func (f *TextFormatter) formatColumns(columns []Column, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range columns {
		unit := ""
		if c.Unit != nil {
			unit = "[" + *c.Unit + "]"
		}
		fmt.Fprintf(tw, "    %d\t%s\t%s\t%s\t%s\n", c.Index, c.Name, c.Type, unit, strings.Join(c.Other, ", "))
	}
	return tw.Flush()
}
