package cnv

import (
	"bufio"
	"errors"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	terminator    = "END"
	byteOrderMark = "\ufeff"
)

// HeaderReader holds the metadata of one CNV header block.
// It is immutable once NewHeaderReader returns and safe for concurrent reads.
type HeaderReader struct {
	markers string
	logger  *zap.Logger

	data        []string
	indexed     map[string]string
	indexedKeys []string
	metrics     map[int]*MetricInfo

	lng, lat    float64
	hasLng      bool
	hasLat      bool
	dateTime    Timestamp
	hasDateTime bool
	terminated  bool
	linesRead   int
}

// NewHeaderReader reads header lines from r until the terminator line or
// end of input. The reader is not closed.
//
// Returns a *StreamError if r is nil or reading fails, and a *LineError
// if a line lacks the header marker.
func NewHeaderReader(r io.Reader, opts ...Option) (*HeaderReader, error) {
	if r == nil {
		return nil, &StreamError{Err: errors.New("nil reader")}
	}

	h := &HeaderReader{
		markers: DefaultMarkers,
		logger:  zap.NewNop(),
		data:    []string{},
		indexed: make(map[string]string),
		metrics: make(map[int]*MetricInfo),
	}
	for _, opt := range opts {
		opt(h)
	}

	if err := h.read(r); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *HeaderReader) read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size

	for scanner.Scan() {
		h.linesRead++
		raw := strings.TrimSuffix(scanner.Text(), "\r")
		if h.linesRead == 1 {
			raw = strings.TrimPrefix(raw, byteOrderMark)
		}

		marker, size := utf8.DecodeRuneInString(raw)
		if raw == "" || marker == utf8.RuneError || !strings.ContainsRune(h.markers, marker) {
			return &LineError{Line: h.linesRead, Text: raw, Reason: "missing header marker"}
		}

		content := strings.TrimSpace(raw[size:])
		if content == "" {
			continue
		}
		if h.isTerminator(content) {
			h.terminated = true
			return nil
		}

		h.accept(ClassifyLine(content))
	}

	if err := scanner.Err(); err != nil {
		return &StreamError{Err: err}
	}
	return nil
}

// isTerminator reports whether content is END, ignoring case and any
// trailing markers such as in "*END*".
func (h *HeaderReader) isTerminator(content string) bool {
	content = strings.TrimRight(content, h.markers+" \t")
	return strings.EqualFold(content, terminator)
}

func (h *HeaderReader) accept(line Line) {
	switch line.Kind {
	case KindMetric:
		h.metrics[line.Column] = NewMetricInfo(line.Value)

	case KindLongitude, KindLatitude:
		v, err := ParseDegrees(line.Value)
		if err != nil {
			h.absorb(&FieldError{Field: line.Key, Value: line.Value, Err: err})
			return
		}
		if line.Kind == KindLongitude {
			h.lng, h.hasLng = v, true
		} else {
			h.lat, h.hasLat = v, true
		}

	case KindTimestamp:
		ts, err := ParseTimestamp(line.Value)
		if err != nil {
			h.absorb(&FieldError{Field: line.Key, Value: line.Value, Err: err})
			return
		}
		h.dateTime, h.hasDateTime = ts, true

	case KindIndexed:
		if _, exists := h.indexed[line.Key]; !exists {
			h.indexedKeys = append(h.indexedKeys, line.Key)
		}
		h.indexed[line.Key] = line.Value

	default:
		h.data = append(h.data, line.Value)
	}
}

func (h *HeaderReader) absorb(err *FieldError) {
	h.logger.Debug("ignoring unparsable header field",
		zap.String("field", err.Field),
		zap.String("value", err.Value),
		zap.Int("line", h.linesRead),
		zap.Error(err.Err),
	)
}

// Data returns the lines without a delimiter, in header order.
func (h *HeaderReader) Data() []string {
	out := make([]string, len(h.data))
	copy(out, h.data)
	return out
}

// IndexedData returns the generic key/value lines. A repeated key keeps
// its last value.
func (h *HeaderReader) IndexedData() map[string]string {
	out := make(map[string]string, len(h.indexed))
	for k, v := range h.indexed {
		out[k] = v
	}
	return out
}

// IndexedKeys returns the keys of IndexedData in first-seen order.
func (h *HeaderReader) IndexedKeys() []string {
	out := make([]string, len(h.indexedKeys))
	copy(out, h.indexedKeys)
	return out
}

// Metrics returns the column descriptors keyed by column index.
func (h *HeaderReader) Metrics() map[int]*MetricInfo {
	out := make(map[int]*MetricInfo, len(h.metrics))
	for k, v := range h.metrics {
		out[k] = v
	}
	return out
}

// MetricByColumn returns the descriptor of column i, if declared.
func (h *HeaderReader) MetricByColumn(i int) (*MetricInfo, bool) {
	m, ok := h.metrics[i]
	return m, ok
}

// Columns returns the declared column indices in ascending order.
func (h *HeaderReader) Columns() []int {
	cols := make([]int, 0, len(h.metrics))
	for col := range h.metrics {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	return cols
}

// Coordinate returns the cast position. It is present only when both
// NMEA Latitude and NMEA Longitude parsed.
func (h *HeaderReader) Coordinate() (Coordinate, bool) {
	if !h.hasLat || !h.hasLng {
		return Coordinate{}, false
	}
	return NewCoordinate(h.lat, h.lng), true
}

// DateTime returns the NMEA UTC time, if present and parsable.
func (h *HeaderReader) DateTime() (Timestamp, bool) {
	return h.dateTime, h.hasDateTime
}

// Terminated reports whether the block ended with a terminator line
// rather than end of input.
func (h *HeaderReader) Terminated() bool {
	return h.terminated
}

// LinesRead returns the number of lines consumed, terminator included.
func (h *HeaderReader) LinesRead() int {
	return h.linesRead
}
