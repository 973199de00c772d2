package cnv

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

// mustRead parses header text and fails the test on error.
func mustRead(t *testing.T, header string, opts ...Option) *HeaderReader {
	t.Helper()
	h, err := NewHeaderReader(strings.NewReader(header), opts...)
	if err != nil {
		t.Fatalf("NewHeaderReader() error = %v", err)
	}
	return h
}

func TestHeaderReader_EmptyHeader(t *testing.T) {
	h := mustRead(t, "* \n*\t\n*END*\n")

	if got := h.Data(); len(got) != 0 {
		t.Errorf("Data() = %v, want empty", got)
	}
	if got := h.IndexedData(); len(got) != 0 {
		t.Errorf("IndexedData() = %v, want empty", got)
	}
	if got := h.Metrics(); len(got) != 0 {
		t.Errorf("Metrics() = %v, want empty", got)
	}
	if !h.Terminated() {
		t.Error("Terminated() = false, want true")
	}
}

func TestHeaderReader_DataOnly(t *testing.T) {
	h := mustRead(t, "* Edwin\n* Rodríguez\n* León\n*END*\n")

	want := []string{"Edwin", "Rodríguez", "León"}
	if diff := cmp.Diff(want, h.Data()); diff != "" {
		t.Errorf("Data() mismatch (-want +got):\n%s", diff)
	}
}

func TestHeaderReader_IndexedData(t *testing.T) {
	h := mustRead(t, "* name = Edwin\n* surname = Rodríguez\n* surname2 = León\n*END*\n")

	want := map[string]string{"name": "Edwin", "surname": "Rodríguez", "surname2": "León"}
	if diff := cmp.Diff(want, h.IndexedData()); diff != "" {
		t.Errorf("IndexedData() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"name", "surname", "surname2"}, h.IndexedKeys()); diff != "" {
		t.Errorf("IndexedKeys() mismatch (-want +got):\n%s", diff)
	}
}

func TestHeaderReader_MetricData(t *testing.T) {
	h := mustRead(t, "* name 1 : Edwin\n* surname = Rodríguez\n* surname2 = León\n*END*\n")

	want := map[string]string{"surname": "Rodríguez", "surname2": "León"}
	if diff := cmp.Diff(want, h.IndexedData()); diff != "" {
		t.Errorf("IndexedData() mismatch (-want +got):\n%s", diff)
	}

	m, ok := h.MetricByColumn(1)
	if !ok {
		t.Fatal("MetricByColumn(1) absent")
	}
	if m.Name() != "Edwin" {
		t.Errorf("MetricByColumn(1).Name() = %q, want %q", m.Name(), "Edwin")
	}

	if _, ok := h.MetricByColumn(2); ok {
		t.Error("MetricByColumn(2) present, want absent")
	}

	if got := len(h.Metrics()); got != 1 {
		t.Errorf("len(Metrics()) = %d, want 1", got)
	}
}

func TestHeaderReader_Coordinate(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    Coordinate
		present bool
	}{
		{
			name:    "both components",
			header:  "* NMEA Longitude = 70.10\n* NMEA Latitude = 20.06\n*END*\n",
			want:    NewCoordinate(20.06, 70.10),
			present: true,
		},
		{
			name:   "longitude only",
			header: "* NMEA Longitude = 70.10\n*END*\n",
		},
		{
			name:   "latitude only",
			header: "* NMEA Latitude = 70.10\n*END*\n",
		},
		{
			name:   "unparsable latitude",
			header: "* NMEA Longitude = 70.10\n* NMEA Latitude = abc\n*END*\n",
		},
		{
			name:    "degree minutes",
			header:  "* NMEA Latitude = 20 03.60 S\n* NMEA Longitude = 070 30.00 W\n*END*\n",
			want:    NewCoordinate(-20.06, -70.5),
			present: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := mustRead(t, tt.header)

			if got := h.Data(); len(got) != 0 {
				t.Errorf("Data() = %v, want empty", got)
			}
			if got := h.IndexedData(); len(got) != 0 {
				t.Errorf("IndexedData() = %v, want empty", got)
			}

			got, ok := h.Coordinate()
			if ok != tt.present {
				t.Fatalf("Coordinate() present = %v, want %v", ok, tt.present)
			}
			if !ok {
				return
			}
			if math.Abs(got.Lat()-tt.want.Lat()) > 1e-9 || math.Abs(got.Lng()-tt.want.Lng()) > 1e-9 {
				t.Errorf("Coordinate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHeaderReader_DateTime(t *testing.T) {
	h := mustRead(t, "* NMEA UTC (Time) = Nov 27 2015 17:55:23        \n*END*\n")

	if got := h.Data(); len(got) != 0 {
		t.Errorf("Data() = %v, want empty", got)
	}
	if got := h.IndexedData(); len(got) != 0 {
		t.Errorf("IndexedData() = %v, want empty", got)
	}

	ts, ok := h.DateTime()
	if !ok {
		t.Fatal("DateTime() absent")
	}
	if got := ts.String(); got != "2015-11-27 17:55:23" {
		t.Errorf("DateTime() = %q, want %q", got, "2015-11-27 17:55:23")
	}
}

func TestHeaderReader_DateTimeAbsent(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no line", "*END*\n"},
		{"unparsable", "* NMEA UTC (Time) = yesterday\n*END*\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := mustRead(t, tt.header)
			if _, ok := h.DateTime(); ok {
				t.Error("DateTime() present, want absent")
			}
			if got := h.IndexedData(); len(got) != 0 {
				t.Errorf("IndexedData() = %v, want empty", got)
			}
		})
	}
}

func TestHeaderReader_Terminator(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"asterisk both sides", "* a\n*END*\n* b\n"},
		{"no trailing marker", "* a\n*END\n* b\n"},
		{"lowercase", "* a\n*end*\n* b\n"},
		{"hash marker with spaces", "* a\n#  End  \n* b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := mustRead(t, tt.header)
			if !h.Terminated() {
				t.Error("Terminated() = false, want true")
			}
			if diff := cmp.Diff([]string{"a"}, h.Data()); diff != "" {
				t.Errorf("Data() mismatch (-want +got):\n%s", diff)
			}
			if h.LinesRead() != 2 {
				t.Errorf("LinesRead() = %d, want 2", h.LinesRead())
			}
		})
	}
}

func TestHeaderReader_StopsAtTerminator(t *testing.T) {
	// Data rows after the terminator carry no marker and must not be read.
	h := mustRead(t, "* a = 1\n*END*\n      0.000    10.2345\n")

	if diff := cmp.Diff(map[string]string{"a": "1"}, h.IndexedData()); diff != "" {
		t.Errorf("IndexedData() mismatch (-want +got):\n%s", diff)
	}
}

func TestHeaderReader_EndOfInputWithoutTerminator(t *testing.T) {
	h := mustRead(t, "* a\n* b")

	if h.Terminated() {
		t.Error("Terminated() = true, want false")
	}
	if diff := cmp.Diff([]string{"a", "b"}, h.Data()); diff != "" {
		t.Errorf("Data() mismatch (-want +got):\n%s", diff)
	}
}

func TestHeaderReader_CRLFAndBOM(t *testing.T) {
	h := mustRead(t, "\ufeff* Edwin\r\n* key = value\r\n*END*\r\n")

	if diff := cmp.Diff([]string{"Edwin"}, h.Data()); diff != "" {
		t.Errorf("Data() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"key": "value"}, h.IndexedData()); diff != "" {
		t.Errorf("IndexedData() mismatch (-want +got):\n%s", diff)
	}
}

func TestHeaderReader_Duplicates(t *testing.T) {
	header := strings.Join([]string{
		"* a = 1",
		"* b = 2",
		"* a = 3",
		"# name 0 = first: One",
		"# name 0 = second: Two",
		"*END*",
	}, "\n")
	h := mustRead(t, header)

	if diff := cmp.Diff(map[string]string{"a": "3", "b": "2"}, h.IndexedData()); diff != "" {
		t.Errorf("IndexedData() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, h.IndexedKeys()); diff != "" {
		t.Errorf("IndexedKeys() mismatch (-want +got):\n%s", diff)
	}

	m, ok := h.MetricByColumn(0)
	if !ok || m.Name() != "second" {
		t.Errorf("MetricByColumn(0) = %v, %v, want second", m, ok)
	}
}

func TestHeaderReader_SeaBirdHeader(t *testing.T) {
	header := `* Sea-Bird SBE 9 Data File:
* FileName = C:\data\cast01.hex
* Software Version Seasave V 7.23.2
* NMEA Latitude = 20 03.60 S
* NMEA Longitude = 070 30.00 W
* NMEA UTC (Time) = Nov 27 2015 17:55:23
* System UTC = Nov 27 2015 17:55:24
** Ship: Abate Molina
# nquan = 3
# name 0 = prDM: Pressure, Digiquartz [db]
# name 1 = t090C: Temperature [ITS-90, deg C]
# name 2 = flag:  0.000e+00
# span 0 =      1.000,     250.000
# bad_flag = -9.990e-29
*END*
`
	h := mustRead(t, header)

	if diff := cmp.Diff([]string{"Software Version Seasave V 7.23.2"}, h.Data()); diff != "" {
		t.Errorf("Data() mismatch (-want +got):\n%s", diff)
	}

	wantKeys := []string{"Sea-Bird SBE 9 Data File", "FileName", "System UTC", "* Ship", "nquan", "span 0", "bad_flag"}
	if diff := cmp.Diff(wantKeys, h.IndexedKeys()); diff != "" {
		t.Errorf("IndexedKeys() mismatch (-want +got):\n%s", diff)
	}
	if got := h.IndexedData()["FileName"]; got != `C:\data\cast01.hex` {
		t.Errorf("IndexedData()[FileName] = %q", got)
	}

	if diff := cmp.Diff([]int{0, 1, 2}, h.Columns()); diff != "" {
		t.Errorf("Columns() mismatch (-want +got):\n%s", diff)
	}

	temp, _ := h.MetricByColumn(1)
	if unit, _ := temp.Unit(); unit != "ITS-90, deg C" {
		t.Errorf("column 1 unit = %q, want %q", unit, "ITS-90, deg C")
	}

	flag, _ := h.MetricByColumn(2)
	if typ, _ := flag.Type(); typ != "0.000e+00" {
		t.Errorf("column 2 type = %q, want %q", typ, "0.000e+00")
	}

	c, ok := h.Coordinate()
	if !ok {
		t.Fatal("Coordinate() absent")
	}
	if math.Abs(c.Lat()+20.06) > 1e-9 || math.Abs(c.Lng()+70.5) > 1e-9 {
		t.Errorf("Coordinate() = %v, want -20.06, -70.5", c)
	}

	ts, ok := h.DateTime()
	if !ok || ts.String() != "2015-11-27 17:55:23" {
		t.Errorf("DateTime() = %v, %v", ts, ok)
	}
}

func TestHeaderReader_ResultsAreCopies(t *testing.T) {
	h := mustRead(t, "* a\n* k = v\n# name 0 = x\n*END*\n")

	h.Data()[0] = "changed"
	h.IndexedData()["k"] = "changed"
	delete(h.Metrics(), 0)

	if h.Data()[0] != "a" {
		t.Error("Data() exposed internal state")
	}
	if h.IndexedData()["k"] != "v" {
		t.Error("IndexedData() exposed internal state")
	}
	if _, ok := h.MetricByColumn(0); !ok {
		t.Error("Metrics() exposed internal state")
	}
}

func TestHeaderReader_InvalidStream(t *testing.T) {
	_, err := NewHeaderReader(nil)
	if !errors.Is(err, ErrStream) {
		t.Fatalf("NewHeaderReader(nil) error = %v, want ErrStream", err)
	}

	var streamErr *StreamError
	if !errors.As(err, &streamErr) {
		t.Errorf("error %T is not a *StreamError", err)
	}
}

func TestHeaderReader_ClosedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cast.cnv")
	if err := os.WriteFile(path, []byte("* a\n*END*\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open file: %v", err)
	}
	f.Close()

	_, err = NewHeaderReader(f)
	if !errors.Is(err, ErrStream) {
		t.Errorf("NewHeaderReader(closed file) error = %v, want ErrStream", err)
	}
	if errors.Is(err, ErrStructuralLine) {
		t.Error("stream error also matched ErrStructuralLine")
	}
}

func TestHeaderReader_MissingMarker(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantLine int
	}{
		{"plain text", "* a\nno marker\n*END*\n", 2},
		{"blank line", "* a\n\n*END*\n", 2},
		{"indented marker", "  * a\n*END*\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHeaderReader(strings.NewReader(tt.header))
			if !errors.Is(err, ErrStructuralLine) {
				t.Fatalf("error = %v, want ErrStructuralLine", err)
			}
			if errors.Is(err, ErrStream) {
				t.Error("structural error also matched ErrStream")
			}

			var lineErr *LineError
			if !errors.As(err, &lineErr) {
				t.Fatalf("error %T is not a *LineError", err)
			}
			if lineErr.Line != tt.wantLine {
				t.Errorf("LineError.Line = %d, want %d", lineErr.Line, tt.wantLine)
			}
		})
	}
}

func TestHeaderReader_WithMarkers(t *testing.T) {
	if _, err := NewHeaderReader(strings.NewReader("# a\n*END*\n"), WithMarkers("*")); !errors.Is(err, ErrStructuralLine) {
		t.Errorf("error = %v, want ErrStructuralLine for disallowed marker", err)
	}

	h := mustRead(t, "% a\n%END%\n", WithMarkers("%"))
	if diff := cmp.Diff([]string{"a"}, h.Data()); diff != "" {
		t.Errorf("Data() mismatch (-want +got):\n%s", diff)
	}

	h = mustRead(t, "§ a\n§ b = 2\n§END§\n", WithMarkers("§"))
	if diff := cmp.Diff([]string{"a"}, h.Data()); diff != "" {
		t.Errorf("Data() with multibyte marker mismatch (-want +got):\n%s", diff)
	}
	if !h.Terminated() || h.IndexedData()["b"] != "2" {
		t.Errorf("multibyte marker: Terminated() = %v, IndexedData() = %v", h.Terminated(), h.IndexedData())
	}

	h = mustRead(t, "# a\n*END*\n", WithMarkers(""))
	if len(h.Data()) != 1 {
		t.Errorf("WithMarkers(\"\") should keep defaults, Data() = %v", h.Data())
	}
}

func TestHeaderReader_WithLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	mustRead(t, "* NMEA Latitude = abc\n* NMEA UTC (Time) = never\n*END*\n", WithLogger(zap.New(core)))

	entries := logs.FilterMessage("ignoring unparsable header field").All()
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, want 2", len(entries))
	}
	if got := entries[0].ContextMap()["field"]; got != "NMEA Latitude" {
		t.Errorf("field = %v, want NMEA Latitude", got)
	}
	if got := entries[1].ContextMap()["line"]; got != int64(2) {
		t.Errorf("line = %v, want 2", got)
	}
}
