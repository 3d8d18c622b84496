package output

import (
	"strconv"

	moneyutil "github.com/rpgo/earnings-projector/pkg/decimal"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency formats a decimal as USD currency with 2 decimals.
func FormatCurrency(amount decimal.Decimal) string {
	return moneyutil.NewMoneyFromDecimal(amount).Round().Format()
}

// FormatGroupedCurrency formats a decimal as USD with thousands separators.
func FormatGroupedCurrency(amount decimal.Decimal) string {
	return printer.Sprintf("$%.2f", amount.Round(2).InexactFloat64())
}

// FormatCount formats an integer with thousands separators.
func FormatCount(n int) string { return printer.Sprintf("%d", n) }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fractional rate (0.06) as a percentage (6.00%).
func FormatRate(rate decimal.Decimal) string {
	return FormatPercentage(rate.Mul(decimal.NewFromInt(100)))
}

// FormatFraction formats an allocation fraction with 6 decimals.
func FormatFraction(f decimal.Decimal) string { return f.StringFixed(6) }

func intToString(i int) string { return strconv.Itoa(i) }
