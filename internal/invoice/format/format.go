package format

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var enIN = message.NewPrinter(language.MustParse("en-IN"))

// Currency renders a rupee amount with Indian digit grouping and no
// fractional digits, e.g. 123456 -> "₹1,23,456".
func Currency(amount float64) string {
	return enIN.Sprint("₹", number.Decimal(amount, number.MaxFractionDigits(0)))
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountInWords converts the integer part of a non-negative amount into
// English words using Indian place-value grouping (thousand, lakh, crore).
// The fractional part is truncated, never rounded.
func AmountInWords(amount float64) string {
	n := int64(math.Trunc(amount))
	if n <= 0 {
		return "Zero"
	}
	return words(n)
}

func words(n int64) string {
	switch {
	case n < 20:
		return ones[n]
	case n < 100:
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + " " + ones[n%10]
	case n < 1_000:
		if n%100 == 0 {
			return ones[n/100] + " Hundred"
		}
		return ones[n/100] + " Hundred and " + words(n%100)
	case n < 100_000:
		return scaled(n, 1_000, "Thousand")
	case n < 10_000_000:
		return scaled(n, 100_000, "Lakh")
	default:
		return scaled(n, 10_000_000, "Crore")
	}
}

func scaled(n, unit int64, label string) string {
	if n%unit == 0 {
		return words(n/unit) + " " + label
	}
	return words(n/unit) + " " + label + " " + words(n%unit)
}

// PaymentMethodLabel maps a stored payment method code to its display label.
func PaymentMethodLabel(method string) string {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "cod":
		return "Cash on Delivery"
	case "upi":
		return "UPI"
	case "netbanking":
		return "Net Banking"
	default:
		return "Credit/Debit Card"
	}
}

// StatusLabel capitalizes a lifecycle status for display.
func StatusLabel(status string) string {
	status = strings.TrimSpace(status)
	if status == "" {
		return ""
	}
	return strings.ToUpper(status[:1]) + strings.ToLower(status[1:])
}

// LongDate renders a timestamp as an en-IN long date, e.g. "2 January 2026".
func LongDate(t time.Time) string {
	return t.Format("2 January 2006")
}
