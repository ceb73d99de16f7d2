package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	rawDateRegex    = regexp.MustCompile(`^(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{4})`)
	nonNumericRegex = regexp.MustCompile(`[^\d.]`)
)

// IsPlaceholder reports whether an OCR value is one of the bureau's
// "nothing reported" markers.
func IsPlaceholder(raw string) bool {
	switch strings.TrimSpace(raw) {
	case "", "-", "None":
		return true
	}
	return false
}

// NormalizeDate converts D/M/YYYY, D-M-YYYY or D.M.YYYY into YYYY-MM-DD.
// Anything else, including an already normalized date, yields nil.
func NormalizeDate(raw string) *string {
	if IsPlaceholder(raw) {
		return nil
	}

	m := rawDateRegex.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return nil
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	date := fmt.Sprintf("%s-%02d-%02d", m[3], month, day)
	return &date
}

// NormalizeFloat keeps only digits and dots and parses the rest.
// Signs and currency symbols are dropped, so "-500" reads as 500.
func NormalizeFloat(raw string) *float64 {
	cleaned := nonNumericRegex.ReplaceAllString(raw, "")
	if cleaned == "" {
		return nil
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &value
}
