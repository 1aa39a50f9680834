package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var moneyPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$|^-?\.[0-9]+$`)

var currencyMarks = []string{"PHP", "php", "Php", "₱", "P.", "p."}

// ParseMoney parses cashier/manager input such as "150", "1,250.50", "PHP 1,250" or "₱ 99.5".
// Anything that is not a plain number after removing currency marks and thousands
// separators is rejected.
func ParseMoney(input string) (decimal.Decimal, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", ErrorInvalidAmount)
	}
	s = strings.ReplaceAll(s, ",", "")
	for _, mark := range currencyMarks {
		s = strings.ReplaceAll(s, mark, "")
	}
	s = strings.ReplaceAll(s, " ", "")
	if !moneyPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrorInvalidAmount, input)
	}
	val, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrorInvalidAmount, input)
	}
	return val, nil
}

// ParseNonNegativeMoney is ParseMoney restricted to values >= 0.
func ParseNonNegativeMoney(input string) (decimal.Decimal, error) {
	val, err := ParseMoney(input)
	if err != nil {
		return decimal.Zero, err
	}
	if val.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: must not be negative", ErrorInvalidAmount)
	}
	return val, nil
}

// FormatMoney renders an amount with exactly two decimals.
func FormatMoney(amount decimal.Decimal) string {
	return RoundMoney(amount).StringFixed(MoneyPlaces)
}
