package utils

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var dateLayouts = []string{"2006-01-02", "02/01/2006", "02-01-2006"}

// ParseAmount converts a monetary string to a decimal. It accepts Brazilian
// formatting ("1.161,41", "1161,41") as well as dot-decimal ("1161.41",
// "1,161.41") and plain integers, and strips currency symbols and spaces.
// Returns ok=false instead of an error on unparsable input.
func ParseAmount(s string) (decimal.Decimal, bool) {
	clean := strings.TrimSpace(s)
	clean = strings.ReplaceAll(clean, nbsp, "")
	clean = strings.ReplaceAll(clean, " ", "")
	clean = strings.TrimPrefix(clean, "R$")
	clean = strings.TrimPrefix(clean, "$")
	if clean == "" {
		return decimal.Zero, false
	}

	hasComma := strings.Contains(clean, ",")
	hasDot := strings.Contains(clean, ".")
	switch {
	case hasComma && hasDot:
		// Whichever separator comes last is the decimal mark.
		if strings.LastIndex(clean, ",") > strings.LastIndex(clean, ".") {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.Replace(clean, ",", ".", 1)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case hasComma:
		clean = strings.Replace(clean, ",", ".", 1)
	case hasDot:
		// More than one dot means thousand separators only.
		if strings.Count(clean, ".") > 1 {
			clean = strings.ReplaceAll(clean, ".", "")
		}
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseDate tries YYYY-MM-DD, then DD/MM/YYYY, then DD-MM-YYYY.
func ParseDate(s string) (time.Time, bool) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, clean); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DeriveMonth formats a date as its YYYY-MM reference month.
func DeriveMonth(t time.Time) string {
	return t.Format("2006-01")
}

// ParseDDAFlag reads the S/N boleto DDA marker, case-insensitively.
func ParseDDAFlag(s string) (bool, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "S":
		return true, true
	case "N":
		return false, true
	}
	return false, false
}
