// Package money implements integer-VND arithmetic. VND has no fractional
// subunit, so every amount in the system is an int64 number of dong and
// rounding happens exactly once, at the point a derived amount is computed.
package money

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var viPrinter = message.NewPrinter(language.Vietnamese)

// ToVND rounds a value to the nearest whole dong.
// Halves round away from zero (math.Round), matching the platform
// rounding the pricing pipeline is verified against.
func ToVND(value float64) int64 {
	return int64(math.Round(value))
}

// ParseVND accepts a numeric string ("12345" or "12345.67") and rounds
// it to whole dong.
func ParseVND(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return ToVND(f), nil
}

// Format renders an amount with vi-VN digit grouping and the dong sign,
// e.g. 12345 -> "12.345₫".
func Format(value int64) string {
	return viPrinter.Sprintf("%d", value) + "₫"
}

// FormatWithLabel renders with the textual currency label,
// e.g. 12345 -> "12.345 VND".
func FormatWithLabel(value int64) string {
	return viPrinter.Sprintf("%d", value) + " VND"
}
