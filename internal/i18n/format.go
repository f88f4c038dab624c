package i18n

import (
	"strconv"
	"strings"

	"golang.org/x/text/number"
)

// Money formats an API decimal amount with two fraction digits in the
// localizer's number format, followed by the currency code. Amounts that do
// not parse are returned as received.
func (l *Localizer) Money(amount, currency string) string {
	amount = strings.TrimSpace(amount)
	currency = strings.ToUpper(strings.TrimSpace(currency))
	f, err := strconv.ParseFloat(amount, 64)
	if err != nil || l == nil {
		return strings.TrimSpace(amount + " " + currency)
	}
	s := l.printer.Sprint(number.Decimal(f, number.Scale(2)))
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// Number formats an integer with locale grouping.
func (l *Localizer) Number(n int) string {
	if l == nil {
		return strconv.Itoa(n)
	}
	return l.printer.Sprint(number.Decimal(n))
}
