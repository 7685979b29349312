package order

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatTimestamp renders a millisecond epoch as local wall-clock time.
// Zero means "no timestamp" and renders empty.
func FormatTimestamp(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).Format("2006-01-02 15:04:05")
}

// FormatPrice renders a price string with thousands separators and two
// decimals. Unparseable input passes through unchanged.
func FormatPrice(price string) string {
	v, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return price
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}
	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)
	out := strings.Join(groups, ",") + frac
	if neg {
		out = "-" + out
	}
	return out
}

// FormatQuantity renders a quantity with up to eight decimals, trailing
// zeros trimmed.
func FormatQuantity(qty float64) string {
	s := strconv.FormatFloat(qty, 'f', 8, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// FormatUSDT renders an amount with the quote-asset suffix.
func FormatUSDT(amount float64) string {
	return fmt.Sprintf("%s USDT", FormatPrice(strconv.FormatFloat(amount, 'f', -1, 64)))
}
