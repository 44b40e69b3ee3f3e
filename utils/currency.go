package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrAmountEmpty    = errors.New("amount is empty")
	ErrAmountInvalid  = errors.New("amount is not a whole number")
	ErrAmountNegative = errors.New("amount must not be negative")
)

// FormatCurrencyIDR formats a whole-rupiah amount with dot thousands separators.
// Example: 1500000 -> "Rp 1.500.000", -10000 -> "-Rp 10.000"
func FormatCurrencyIDR(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%sRp %s", sign, groupThousands(strconv.FormatInt(amount, 10)))
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var parts []string
	for i := len(digits); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		parts = append([]string{digits[start:i]}, parts...)
	}
	return strings.Join(parts, ".")
}

// ParseAmount membaca input uang dari kasir menjadi rupiah utuh.
// Menerima "150000", "150.000", "150,000", "Rp 150.000" dan sen nol
// ("150.000,00"). Titik/koma hanya boleh sebagai pemisah ribuan (grup 3 digit);
// pecahan seperti "1.5" atau "150.000,50", huruf, dan angka negatif ditolak.
func ParseAmount(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrAmountEmpty
	}
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(s, "Rp"), "rp"))
	if strings.HasPrefix(s, "-") {
		return 0, ErrAmountNegative
	}
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, ErrAmountEmpty
	}

	// sen: hanya ",00" / ".00" yang boleh
	if i := strings.LastIndexAny(s, ".,"); i >= 0 && len(s)-i-1 == 2 {
		if s[i+1:] != "00" || i == 0 {
			return 0, ErrAmountInvalid
		}
		s = s[:i]
	}

	digits, ok := ungroupThousands(s)
	if !ok {
		return 0, ErrAmountInvalid
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, ErrAmountInvalid
	}
	return v, nil
}

// ungroupThousands accepts "150000" or "150.000" / "1,500,000" with one
// separator kind, a 1-3 digit head and 3 digit groups after it.
func ungroupThousands(s string) (string, bool) {
	sep := ""
	if i := strings.IndexAny(s, ".,"); i >= 0 {
		sep = s[i : i+1]
	}
	groups := []string{s}
	if sep != "" {
		groups = strings.Split(s, sep)
	}
	for i, g := range groups {
		if g == "" || !allDigits(g) {
			return "", false
		}
		if sep == "" {
			continue
		}
		if (i == 0 && len(g) > 3) || (i > 0 && len(g) != 3) {
			return "", false
		}
	}
	return strings.Join(groups, ""), true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
