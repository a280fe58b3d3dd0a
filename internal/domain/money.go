package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxPriceCents is the largest price a flight can carry, 99999999.99.
const MaxPriceCents int64 = 9_999_999_999

// ParsePrice converts a decimal amount such as "100.5" into cents.
func ParsePrice(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, Validation("Price is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, Validation("Price must be a number")
	}
	if v < 0 {
		return 0, Validation("Price must not be negative")
	}
	cents := math.Round(v * 100)
	if cents > float64(MaxPriceCents) {
		return 0, Validation(priceTooLargeMessage)
	}
	return int64(cents), nil
}

var priceTooLargeMessage = "Price must not exceed " + FormatPrice(MaxPriceCents)

// FormatPrice renders cents with two decimals, e.g. 10000 -> "100.00".
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
