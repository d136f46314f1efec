// Package angle parses and formats sexagesimal angle values.
package angle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse converts an angle token to decimal degrees. Accepted forms are
// plain decimal degrees ("46.50"), colon-separated degrees, minutes and
// seconds ("46:30" or "46:30:00"), and the typographic variant using
// degree, minute and second marks ("46°30'00.00"). A leading sign
// applies to the whole angle.
func Parse(s string) (float64, error) {
	tok := strings.TrimSpace(s)
	if tok == "" {
		return 0, fmt.Errorf("empty angle")
	}

	sign := 1.0
	switch tok[0] {
	case '-':
		sign = -1.0
		tok = tok[1:]
	case '+':
		tok = tok[1:]
	}
	if tok == "" {
		return 0, fmt.Errorf("angle %q has no value", s)
	}

	parts := strings.FieldsFunc(tok, func(r rune) bool {
		return !(r >= '0' && r <= '9') && r != '.'
	})
	if len(parts) == 0 || len(parts) > 3 {
		return 0, fmt.Errorf("malformed angle %q", s)
	}

	var deg, div float64
	div = 1.0
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, fmt.Errorf("malformed angle %q: %w", s, err)
		}
		deg += v * div
		div /= 60
	}
	return sign * deg, nil
}

// ToDM splits an angle in radians into whole degrees and minutes,
// rounded to the nearest minute. The sign is carried by the degrees.
func ToDM(rad float64) (int, int) {
	sign := 1
	if rad < 0 {
		sign = -1
		rad = -rad
	}
	total := int(math.Round(rad * 180 / math.Pi * 60))
	return sign * (total / 60), total % 60
}

// ToHM splits an hour-circle angle in radians (12h == pi) into whole
// hours and minutes, rounded to the nearest minute.
func ToHM(rad float64) (int, int) {
	sign := 1
	if rad < 0 {
		sign = -1
		rad = -rad
	}
	total := int(math.Round(rad * 12 / math.Pi * 60))
	return sign * (total / 60), total % 60
}
