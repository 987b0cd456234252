package util

import (
	"fmt"
	"math"
)

// FormatValueFactor renders a physical quantity with an SI scale prefix
// picked by magnitude, e.g. "4.700 mF" or "2.200 uF". Values of magnitude 1
// or more get no prefix ("1000.000 Ohm"); there are no k/M/G prefixes.
func FormatValueFactor(value float64, unit string) string {
	absValue := math.Abs(value)
	switch {
	case absValue >= 1:
		return fmt.Sprintf("%.3f %s", value, unit)
	case absValue >= 1e-3:
		return fmt.Sprintf("%.3f m%s", value*1e3, unit)
	case absValue >= 1e-6:
		return fmt.Sprintf("%.3f u%s", value*1e6, unit)
	case absValue >= 1e-9:
		return fmt.Sprintf("%.3f n%s", value*1e9, unit)
	case absValue >= 1e-12:
		return fmt.Sprintf("%.3f p%s", value*1e12, unit)
	default:
		return fmt.Sprintf("%.3e %s", value, unit)
	}
}

// FormatVoltage renders a single sample's voltage column.
func FormatVoltage(value float64) string {
	if math.Abs(value) >= 1000 || (value != 0 && math.Abs(value) < 1e-3) {
		return fmt.Sprintf("%10.3e", value)
	}
	return fmt.Sprintf("%10.6f", value)
}

// FormatSampleRow renders one sample index against an ordered set of named
// output voltages, e.g. "     0  V(out)=  2.500000  V(mid)=  1.250000".
func FormatSampleRow(n int, names []string, values []float64) string {
	row := fmt.Sprintf("%6d", n)
	for i, name := range names {
		row += fmt.Sprintf("  %s=%s", name, FormatVoltage(values[i]))
	}
	return row
}
