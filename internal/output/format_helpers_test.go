package output

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatCurrency(t *testing.T) {
	v := decimal.NewFromFloat(1234567.891)
	got := FormatCurrency(v)
	want := "₹12,34,567.89"
	if got != want {
		t.Errorf("FormatCurrency(%v) = %q, want %q", v, got, want)
	}
}

func TestFormatPercentage(t *testing.T) {
	v := decimal.NewFromFloat(12.3456)
	got := FormatPercentage(v)
	want := "12.35%"
	if got != want {
		t.Errorf("FormatPercentage(%v) = %q, want %q", v, got, want)
	}
}

func TestFormatRate(t *testing.T) {
	for in, want := range map[string]string{"0.05": "5%", "0.3": "30%", "0.04": "4%", "0": "0%"} {
		if got := FormatRate(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatRate(%s) = %q, want %q", in, got, want)
		}
	}
}
