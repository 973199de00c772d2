// Package output provides formatting and output generation for CNV header reports.
package output

import (
	"time"

	"github.com/ccollicutt/cnvreader/pkg/cnv"
)

// Report is the complete output of one run over a set of files.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary" yaml:"summary"`

	// Files holds one entry per input file, in input order.
	Files []*FileReport `json:"files" yaml:"files"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata" yaml:"metadata"`
}

// Summary provides aggregate statistics.
type Summary struct {
	FilesRead   int `json:"files_read" yaml:"files_read"`
	FilesFailed int `json:"files_failed" yaml:"files_failed"`
	Columns     int `json:"columns" yaml:"columns"`
}

// Metadata provides context about the run.
type Metadata struct {
	GeneratedAt time.Time     `json:"generated_at" yaml:"generated_at"`
	Duration    time.Duration `json:"duration" yaml:"duration"`
}

// FileReport is the header metadata of a single file.
type FileReport struct {
	Source string `json:"source" yaml:"source"`

	// Error is set when the header could not be read. The remaining
	// fields are then empty.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	Terminated bool       `json:"terminated" yaml:"terminated"`
	LinesRead  int        `json:"lines_read" yaml:"lines_read"`
	Position   *Position  `json:"position,omitempty" yaml:"position,omitempty"`
	DateTime   string     `json:"date_time,omitempty" yaml:"date_time,omitempty"`
	Columns    []Column   `json:"columns" yaml:"columns"`
	Indexed    []KeyValue `json:"indexed" yaml:"indexed"`
	Data       []string   `json:"data" yaml:"data"`
}

// Position is the cast position in decimal degrees.
type Position struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Column describes one data column.
type Column struct {
	Index int      `json:"index" yaml:"index"`
	Name  string   `json:"name" yaml:"name"`
	Type  string   `json:"type,omitempty" yaml:"type,omitempty"`
	Unit  *string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	Other []string `json:"other" yaml:"other"`
}

// KeyValue is one generic header entry.
type KeyValue struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// NewFileReport converts a parsed header into a FileReport.
func NewFileReport(source string, h *cnv.HeaderReader) *FileReport {
	fr := &FileReport{
		Source:     source,
		Terminated: h.Terminated(),
		LinesRead:  h.LinesRead(),
		Columns:    []Column{},
		Indexed:    []KeyValue{},
		Data:       h.Data(),
	}

	if c, ok := h.Coordinate(); ok {
		fr.Position = &Position{Lat: c.Lat(), Lng: c.Lng()}
	}
	if ts, ok := h.DateTime(); ok {
		fr.DateTime = ts.String()
	}

	for _, col := range h.Columns() {
		m, _ := h.MetricByColumn(col)
		c := Column{Index: col, Name: m.Name(), Other: m.Other()}
		if typ, ok := m.Type(); ok {
			c.Type = typ
		}
		if unit, ok := m.Unit(); ok {
			c.Unit = &unit
		}
		fr.Columns = append(fr.Columns, c)
	}

	indexed := h.IndexedData()
	for _, key := range h.IndexedKeys() {
		fr.Indexed = append(fr.Indexed, KeyValue{Key: key, Value: indexed[key]})
	}

	return fr
}

// NewFailedFileReport records a file whose header could not be read.
func NewFailedFileReport(source string, err error) *FileReport {
	return &FileReport{
		Source:  source,
		Error:   err.Error(),
		Columns: []Column{},
		Indexed: []KeyValue{},
		Data:    []string{},
	}
}

// Failed returns true if the header could not be read.
func (f *FileReport) Failed() bool {
	return f.Error != ""
}

// NewReport creates a Report from file reports.
func NewReport(files []*FileReport, start, end time.Time) *Report {
	report := &Report{
		Files: files,
		Metadata: Metadata{
			GeneratedAt: end,
			Duration:    end.Sub(start),
		},
	}
	if report.Files == nil {
		report.Files = []*FileReport{}
	}

	for _, f := range report.Files {
		if f.Failed() {
			report.Summary.FilesFailed++
			continue
		}
		report.Summary.FilesRead++
		report.Summary.Columns += len(f.Columns)
	}

	return report
}

// HasFailures returns true if any file could not be read.
func (r *Report) HasFailures() bool {
	return r.Summary.FilesFailed > 0
}
