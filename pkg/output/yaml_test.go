package output

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestNewYAMLFormatter(t *testing.T) {
	f := NewYAMLFormatter(FormatOptions{})
	if f.Name() != "yaml" {
		t.Errorf("Name() = %q, want %q", f.Name(), "yaml")
	}
}

func TestYAMLFormatter_Format(t *testing.T) {
	f := NewYAMLFormatter(FormatOptions{})
	report := createTestReport(t)

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed Report
	if err := yaml.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid YAML: %v", err)
	}

	if diff := cmp.Diff(report.Files, parsed.Files); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
	if parsed.Metadata.Duration != report.Metadata.Duration {
		t.Errorf("Duration = %v, want %v", parsed.Metadata.Duration, report.Metadata.Duration)
	}
}

func TestYAMLFormatter_Format_Quiet(t *testing.T) {
	f := NewYAMLFormatter(FormatOptions{Quiet: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(t), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "files_read: 1\nfiles_failed: 1\ncolumns: 3\n"
	if buf.String() != want {
		t.Errorf("Format() = %q, want %q", buf.String(), want)
	}
}
