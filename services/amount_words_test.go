package services

import "testing"

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "Zero Rupees Only"},
		{1, "One Rupees Only"},
		{15, "Fifteen Rupees Only"},
		{40, "Forty Rupees Only"},
		{295, "Two Hundred and Ninety Five Rupees Only"},
		{295.50, "Two Hundred and Ninety Five Rupees and Fifty Paise Only"},
		{0.75, "Zero Rupees and Seventy Five Paise Only"},
		{1000, "One Thousand Rupees Only"},
		{1180, "One Thousand One Hundred and Eighty Rupees Only"},
		{250000, "Two Lakh Fifty Thousand Rupees Only"},
		{12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred and Seventy Eight Rupees Only"},
		{-12, "Minus Twelve Rupees Only"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := AmountInWords(tt.amount); got != tt.want {
				t.Errorf("AmountInWords(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}
