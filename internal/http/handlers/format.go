package handlers

import "strconv"

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

// trimFloat prints a price the way a form would submit it (no exponent,
// no trailing zeros).
func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
