package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// indianScales are the Indian numbering groups, largest first.
var indianScales = []struct {
	size int64
	name string
}{
	{10000000, "Crore"},
	{100000, "Lakh"},
	{1000, "Thousand"},
	{100, "Hundred"},
}

var (
	unitWords = []string{
		"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
		"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
		"Seventeen", "Eighteen", "Nineteen",
	}
	tensWords = []string{
		"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
	}
)

// AmountInWords spells a rupee amount the way it is written on Indian
// invoices, e.g. 295.50 -> "Two Hundred and Ninety Five Rupees and Fifty Paise Only".
func AmountInWords(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	prefix := ""
	if d.IsNegative() {
		prefix = "Minus "
		d = d.Neg()
	}

	rupees := d.IntPart()
	paise := d.Sub(decimal.NewFromInt(rupees)).Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	var b strings.Builder
	b.WriteString(prefix)
	if rupees == 0 {
		b.WriteString("Zero")
	} else {
		b.WriteString(spellIndian(rupees))
	}
	b.WriteString(" Rupees")
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(spellUnder100(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

func spellIndian(n int64) string {
	var parts []string
	for _, scale := range indianScales {
		if n < scale.size {
			continue
		}
		parts = append(parts, spellIndian(n/scale.size)+" "+scale.name)
		n %= scale.size
	}
	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and")
		}
		parts = append(parts, spellUnder100(n))
	}
	return strings.Join(parts, " ")
}

func spellUnder100(n int64) string {
	if n < 20 {
		return unitWords[n]
	}
	if n%10 == 0 {
		return tensWords[n/10]
	}
	return tensWords[n/10] + " " + unitWords[n%10]
}
