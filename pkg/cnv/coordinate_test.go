package cnv

import (
	"math"
	"testing"
)

func TestParseDegrees(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "decimal", input: "70.10", want: 70.10},
		{name: "signed decimal", input: "-33.4521", want: -33.4521},
		{name: "surrounding spaces", input: "  20.06 ", want: 20.06},
		{name: "degree minutes south", input: "20 03.60 S", want: -20.06},
		{name: "degree minutes north", input: "20 03.60 N", want: 20.06},
		{name: "degree minutes west", input: "070 30.00 W", want: -70.5},
		{name: "degree minutes lowercase hemisphere", input: "070 30.00 e", want: 70.5},
		{name: "empty", input: "", wantErr: true},
		{name: "text", input: "abc", wantErr: true},
		{name: "nan", input: "NaN", wantErr: true},
		{name: "infinity", input: "Inf", wantErr: true},
		{name: "explicit plus", input: "+12.5", want: 12.5},
		{name: "hex float", input: "0x14", wantErr: true},
		{name: "hex with underscore", input: "0x1_4", wantErr: true},
		{name: "underscore digits", input: "1_0", wantErr: true},
		{name: "exponent", input: "2e1", wantErr: true},
		{name: "minutes out of range", input: "20 75.00 S", wantErr: true},
		{name: "missing hemisphere", input: "20 03.60", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDegrees(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDegrees(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseDegrees(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCoordinate(t *testing.T) {
	c := NewCoordinate(20.06, 70.10)

	if c.Lat() != 20.06 {
		t.Errorf("Lat() = %v, want 20.06", c.Lat())
	}
	if c.Lng() != 70.10 {
		t.Errorf("Lng() = %v, want 70.1", c.Lng())
	}
	if got := c.String(); got != "20.06, 70.1" {
		t.Errorf("String() = %q, want %q", got, "20.06, 70.1")
	}
}
