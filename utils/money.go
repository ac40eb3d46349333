package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Aashish23092/payslip-filler/dto"
)

// MinorUnitDigits is the number of fractional digits of a currency amount.
const MinorUnitDigits = 2

// A money token is preceded by whitespace, uses space-like thousand separators
// and a comma as decimal separator: " 12 345,67".
var moneyRegex = regexp.MustCompile(`(?:^|\s)(-?\d[\d \x{00A0}\x{202F}]*,\d+)`)

var groupSeparators = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "")

// ParseMoney extracts the first money token from line and returns its exact value.
func ParseMoney(line string) (decimal.Decimal, error) {
	m := moneyRegex.FindStringSubmatch(line)
	if len(m) < 2 {
		return decimal.Zero, fmt.Errorf("%w: no money token in %q", dto.ErrParse, snippet(line, 80))
	}

	normalized := strings.Replace(groupSeparators.Replace(strings.TrimSpace(m[1])), ",", ".", 1)
	amount, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid amount %q: %v", dto.ErrParse, m[1], err)
	}
	if !amount.Equal(amount.Truncate(MinorUnitDigits)) {
		return decimal.Zero, fmt.Errorf("%w: amount %q has more than %d fractional digits",
			dto.ErrParse, m[1], MinorUnitDigits)
	}
	return amount, nil
}

// FormatGrouped renders n with sep between groups of three digits.
func FormatGrouped(n int64, sep string) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	ds := strconv.FormatInt(n, 10)
	if len(ds) <= 3 {
		return sign + ds
	}

	var b strings.Builder
	b.WriteString(sign)
	head := len(ds) % 3
	if head > 0 {
		b.WriteString(ds[:head])
	}
	for i := head; i < len(ds); i += 3 {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(ds[i : i+3])
	}
	return b.String()
}

// SplitAmount returns the integer part and the minor units of a non-negative amount.
func SplitAmount(d decimal.Decimal) (int64, int64) {
	whole := d.Truncate(0)
	minor := d.Sub(whole).Shift(MinorUnitDigits).Truncate(0)
	return whole.IntPart(), minor.IntPart()
}

// FormatMoney renders an amount the way payroll reports print it: "12 345,67".
func FormatMoney(d decimal.Decimal, sep string) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole, minor := SplitAmount(d)
	return fmt.Sprintf("%s%s,%02d", sign, FormatGrouped(whole, sep), minor)
}

// snippet returns a shortened version of s for error messages.
func snippet(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}
