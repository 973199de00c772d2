package cnv

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// decimalPattern matches a signed decimal number with no exponent.
var decimalPattern = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)$`)

// degreeMinutePattern matches the "DD MM.mm H" form written by SBE deck units.
var degreeMinutePattern = regexp.MustCompile(`^(\d{1,3})\s+(\d{1,2}(?:\.\d+)?)\s*([NSEWnsew])$`)

// Coordinate is a geographic position in decimal degrees.
type Coordinate struct {
	lat float64
	lng float64
}

// NewCoordinate creates a Coordinate from latitude and longitude in degrees.
func NewCoordinate(lat, lng float64) Coordinate {
	return Coordinate{lat: lat, lng: lng}
}

// Lat returns the latitude in degrees.
func (c Coordinate) Lat() float64 {
	return c.lat
}

// Lng returns the longitude in degrees.
func (c Coordinate) Lng() float64 {
	return c.lng
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%g, %g", c.lat, c.lng)
}

// ParseDegrees parses a coordinate component. It accepts a signed decimal
// ("-70.10") or degrees and decimal minutes with a hemisphere ("20 03.60 S").
// Southern and western hemispheres are negative.
func ParseDegrees(s string) (float64, error) {
	s = strings.TrimSpace(s)

	if decimalPattern.MatchString(s) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		if math.IsInf(v, 0) {
			return 0, fmt.Errorf("non-finite value %q", s)
		}
		return v, nil
	}

	m := degreeMinutePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("unrecognized coordinate %q", s)
	}

	deg, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, err
	}
	minutes, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, err
	}
	if minutes >= 60 {
		return 0, errors.New("minutes out of range")
	}

	v := deg + minutes/60
	switch strings.ToUpper(m[3]) {
	case "S", "W":
		v = -v
	}
	return v, nil
}
