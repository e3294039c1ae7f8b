package view

import (
	"math"
	"strconv"
	"strings"
)

// Stars renders a five-glyph rating bar: floor(r) filled, a half glyph when
// the fractional part is at least 0.5, empty glyphs for the rest.
func Stars(r float64) string {
	if r < 0 {
		r = 0
	}
	if r > 5 {
		r = 5
	}
	full := int(math.Floor(r))
	half := 0
	if r-float64(full) >= 0.5 {
		half = 1
	}
	var b strings.Builder
	for i := 0; i < full; i++ {
		b.WriteRune('★')
	}
	if half == 1 {
		b.WriteRune('⯪')
	}
	for i := full + half; i < 5; i++ {
		b.WriteRune('☆')
	}
	return b.String()
}

// Round1 rounds an average rating to one decimal for display.
func Round1(r float64) float64 {
	return math.Round(r*10) / 10
}

// USD formats a price as US currency with grouping, e.g. 417650 -> $417,650.
func USD(v float64) string {
	cents := int64(math.Round(v * 100))
	whole := cents / 100
	frac := cents % 100
	if frac == 0 {
		return "$" + group(whole)
	}
	return "$" + group(whole) + "." + pad2(frac)
}

// Num formats an integer with grouping commas, e.g. 108247 -> 108,247.
func Num(v int64) string { return group(v) }

func group(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		return "-" + out
	}
	return out
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
