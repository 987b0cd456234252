package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// scaleSuffixes maps each suffix to its scale. The match order lives in
// valueRE, whose alternation lists "meg"/"mil" before the single letters so
// they are not swallowed by "m".
var scaleSuffixes = map[string]float64{
	"meg": 1e6,
	"mil": 2.54e-6,
	"f":   1e-15,
	"p":   1e-12,
	"n":   1e-9,
	"u":   1e-6,
	"m":   1e-3,
	"k":   1e3,
	"g":   1e9,
	"t":   1e12,
}

var valueRE = regexp.MustCompile(`(?i)^([-+]?\d*\.?\d+(?:[eE][-+]?\d+)?)(meg|mil|[fpnumkgt])?[a-zA-Z]*$`)

// Value parses a SPICE-style number: a numeric magnitude plus an optional
// case-insensitive scale suffix (spec §6). Trailing unit characters such
// as "ohms" or "V" are ignored.
func Value(s string) (float64, error) {
	m := valueRE.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("parse value %q: invalid SPICE number", s)
	}

	num, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("parse value %q: %v", s, err)
	}

	if m[2] != "" {
		if scale, ok := scaleSuffixes[strings.ToLower(m[2])]; ok {
			num *= scale
		}
	}

	return num, nil
}
