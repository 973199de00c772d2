package cnv

import (
	"regexp"
	"strings"
)

// unitPattern matches a unit enclosed in square brackets.
var unitPattern = regexp.MustCompile(`\[([^\[\]]*)\]`)

// MetricInfo describes one data column, parsed from a descriptor such as
// "prDM: Pressure, Digiquartz [db]".
type MetricInfo struct {
	name    string
	unit    string
	hasUnit bool
	typ     string
	hasType bool
	other   []string
}

// NewMetricInfo parses a metric descriptor. It never fails: malformed
// input leaves the optional fields absent.
func NewMetricInfo(descriptor string) *MetricInfo {
	name, info, found := strings.Cut(descriptor, ":")
	m := &MetricInfo{
		name:  strings.TrimSpace(name),
		other: []string{},
	}
	if !found {
		return m
	}

	// The first bracket is the unit; any further bracketed segments are dropped.
	if sub := unitPattern.FindStringSubmatch(info); sub != nil {
		m.unit = strings.TrimSpace(sub[1])
		m.hasUnit = true
		info = unitPattern.ReplaceAllString(info, "")
	}

	var tokens []string
	for _, piece := range strings.Split(info, ",") {
		if piece = strings.TrimSpace(piece); piece != "" {
			tokens = append(tokens, piece)
		}
	}
	if len(tokens) > 0 {
		m.typ = tokens[0]
		m.hasType = true
		m.other = append(m.other, tokens[1:]...)
	}

	return m
}

// Name returns the column name. It is always present.
func (m *MetricInfo) Name() string {
	return m.name
}

// Unit returns the measurement unit, e.g. "db".
func (m *MetricInfo) Unit() (string, bool) {
	return m.unit, m.hasUnit
}

// Type returns the sensor type, e.g. "Pressure".
func (m *MetricInfo) Type() (string, bool) {
	return m.typ, m.hasType
}

// Other returns the remaining tags (vendor info, correlatives, etc).
// The result is never nil.
func (m *MetricInfo) Other() []string {
	out := make([]string, len(m.other))
	copy(out, m.other)
	return out
}

// String renders the descriptor in canonical form.
func (m *MetricInfo) String() string {
	if !m.hasType && !m.hasUnit {
		return m.name
	}

	var b strings.Builder
	b.WriteString(m.name)
	b.WriteString(":")
	if m.hasType {
		b.WriteString(" ")
		b.WriteString(strings.Join(append([]string{m.typ}, m.other...), ", "))
	}
	if m.hasUnit {
		b.WriteString(" [")
		b.WriteString(m.unit)
		b.WriteString("]")
	}
	return b.String()
}
