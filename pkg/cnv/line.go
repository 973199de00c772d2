package cnv

import (
	"regexp"
	"strconv"
	"strings"
)

// LineKind identifies the shape of a header line.
type LineKind int

const (
	KindPlain LineKind = iota
	KindIndexed
	KindMetric
	KindLongitude
	KindLatitude
	KindTimestamp
)

func (k LineKind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindIndexed:
		return "indexed"
	case KindMetric:
		return "metric"
	case KindLongitude:
		return "longitude"
	case KindLatitude:
		return "latitude"
	case KindTimestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

// Reserved header tags.
const (
	MetricKeyword = "name"
	LongitudeTag  = "NMEA Longitude"
	LatitudeTag   = "NMEA Latitude"
	TimestampTag  = "NMEA UTC (Time)"
)

var (
	metricLinePattern     = regexp.MustCompile(`^` + MetricKeyword + `\s+(\d{1,9})\s*[:=]\s*(.*)$`)
	coordinateLinePattern = regexp.MustCompile(`^NMEA (Longitude|Latitude)\s*=\s*(.*)$`)
	timestampLinePattern  = regexp.MustCompile(`^` + regexp.QuoteMeta(TimestampTag) + `\s*=\s*(.*)$`)
)

// Line is a classified header line.
type Line struct {
	Kind LineKind

	// Key is the left side of a delimited line. Empty for plain lines.
	Key string

	// Value is the right side of a delimited line, the metric descriptor,
	// or the whole content of a plain line.
	Value string

	// Column is the column index of a metric line.
	Column int
}

// ClassifyLine maps marker-stripped, trimmed header content to a Line.
// Rules are tried in order: metric column, coordinate component,
// timestamp, generic key/value, plain.
func ClassifyLine(content string) Line {
	if m := metricLinePattern.FindStringSubmatch(content); m != nil {
		col, err := strconv.Atoi(m[1])
		if err == nil {
			return Line{Kind: KindMetric, Key: MetricKeyword, Value: strings.TrimSpace(m[2]), Column: col}
		}
	}

	if m := coordinateLinePattern.FindStringSubmatch(content); m != nil {
		kind := KindLongitude
		if m[1] == "Latitude" {
			kind = KindLatitude
		}
		return Line{Kind: kind, Key: "NMEA " + m[1], Value: strings.TrimSpace(m[2])}
	}

	if m := timestampLinePattern.FindStringSubmatch(content); m != nil {
		return Line{Kind: KindTimestamp, Key: TimestampTag, Value: strings.TrimSpace(m[1])}
	}

	if i := strings.IndexAny(content, ":="); i >= 0 {
		return Line{
			Kind:  KindIndexed,
			Key:   strings.TrimSpace(content[:i]),
			Value: strings.TrimSpace(content[i+1:]),
		}
	}

	return Line{Kind: KindPlain, Value: strings.TrimSpace(content)}
}
