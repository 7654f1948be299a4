package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
)

func TestConstructors(t *testing.T) {
	m := NewMoney(12.345)
	if m.String() != "12.35" { // rounded for display
		t.Fatalf("NewMoney display mismatch: got %s", m.String())
	}

	d := stddec.NewFromFloat(10.125)
	m2 := NewMoneyFromDecimal(d)
	if !m2.Decimal.Equal(d) {
		t.Fatalf("NewMoneyFromDecimal mismatch: got %s want %s", m2.Decimal, d)
	}

	m3, err := NewMoneyFromString("123.45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m3.String() != "123.45" {
		t.Fatalf("NewMoneyFromString display mismatch: got %s", m3.String())
	}

	if _, err := NewMoneyFromString("not-a-number"); err == nil {
		t.Fatalf("expected error for invalid string")
	}
}

func TestArithmeticAndBounds(t *testing.T) {
	a := NewMoneyFromInt(150000)
	b := NewMoneyFromInt(25000)

	if got := a.Add(b).String(); got != "175000.00" {
		t.Fatalf("Add: got %s", got)
	}
	if got := a.Sub(b).String(); got != "125000.00" {
		t.Fatalf("Sub: got %s", got)
	}
	if got := b.Mul(stddec.RequireFromString("0.04")).String(); got != "1000.00" {
		t.Fatalf("Mul: got %s", got)
	}
	if !Min(a, b).Equal(b.Decimal) || !Max(a, b).Equal(a.Decimal) {
		t.Fatalf("Min/Max mismatch")
	}
	if !Zero().IsZero() {
		t.Fatalf("Zero is not zero")
	}
	if got := NewMoney(0.125).Round().String(); got != "0.13" {
		t.Fatalf("Round: got %s", got)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in    int64
		full  string
		whole string
		lakhs string
	}{
		{0, "₹0.00", "₹0", "0L"},
		{999, "₹999.00", "₹999", "0.01L"},
		{1000, "₹1,000.00", "₹1,000", "0.01L"},
		{250000, "₹2,50,000.00", "₹2,50,000", "2.5L"},
		{1234567, "₹12,34,567.00", "₹12,34,567", "12.35L"},
		{123456789, "₹12,34,56,789.00", "₹12,34,56,789", "1234.57L"},
		{-200000, "₹-2,00,000.00", "₹-2,00,000", "-2L"},
	}
	for _, tt := range tests {
		m := NewMoneyFromInt(tt.in)
		if got := m.Format(); got != tt.full {
			t.Errorf("Format(%d) = %s, want %s", tt.in, got, tt.full)
		}
		if got := m.FormatWhole(); got != tt.whole {
			t.Errorf("FormatWhole(%d) = %s, want %s", tt.in, got, tt.whole)
		}
		if got := m.Lakhs(); got != tt.lakhs {
			t.Errorf("Lakhs(%d) = %s, want %s", tt.in, got, tt.lakhs)
		}
	}
}
