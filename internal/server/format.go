package server

import (
	"strconv"
	"strings"
)

// formatMoney: 1234.5 -> "$1,234.50"
func formatMoney(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := "$" + b.String() + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}
