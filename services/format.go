package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR renders an amount as rupees with Indian digit grouping and two
// decimals: 12345678.9 -> "₹1,23,45,678.90".
func FormatINR(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	whole, fraction, _ := strings.Cut(d.StringFixed(2), ".")
	return sign + "₹" + groupIndian(whole) + "." + fraction
}

// FormatAmount is FormatINR without the currency sign, for item table cells
// whose column header names the currency.
func FormatAmount(amount float64) string {
	return strings.Replace(FormatINR(amount), "₹", "", 1)
}

// groupIndian puts a comma before the last three digits and then after
// every two digits further left.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(append(groups, tail), ",")
}
