package utils

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"150", "150", true},
		{" 1,250.50 ", "1250.5", true},
		{"PHP 1,250", "1250", true},
		{"₱ 99.5", "99.5", true},
		{".75", "0.75", true},
		{"-12", "-12", true},
		{"", "", false},
		{"abc", "", false},
		{"12.3.4", "", false},
		{"1e3", "", false},
	}
	for _, tt := range tests {
		got, err := ParseMoney(tt.in)
		if tt.ok != (err == nil) {
			t.Fatalf("ParseMoney(%q) err = %v, want ok=%v", tt.in, err, tt.ok)
		}
		if !tt.ok {
			if !errors.Is(err, ErrorInvalidAmount) {
				t.Fatalf("ParseMoney(%q) err = %v, want ErrorInvalidAmount", tt.in, err)
			}
			continue
		}
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Fatalf("ParseMoney(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseNonNegativeMoney(t *testing.T) {
	if _, err := ParseNonNegativeMoney("-0.01"); err == nil {
		t.Fatal("negative amount accepted")
	}
	got, err := ParseNonNegativeMoney("0")
	if err != nil || !got.IsZero() {
		t.Fatalf("ParseNonNegativeMoney(0) = %s, %v", got, err)
	}
}

func TestFormatAndRoundMoney(t *testing.T) {
	tests := map[string]string{
		"12":      "12.00",
		"102.6":   "102.60",
		"0.005":   "0.01",
		"-22.4":   "-22.40",
		"13.4449": "13.44",
	}
	for in, want := range tests {
		if got := FormatMoney(decimal.RequireFromString(in)); got != want {
			t.Fatalf("FormatMoney(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestCalculateVatFee(t *testing.T) {
	tests := map[string]string{
		"100":    "12",
		"0":      "0",
		"10.99":  "1.32",
		"1116.5": "133.98",
	}
	for base, want := range tests {
		got := CalculateVatFee(decimal.RequireFromString(base))
		if !got.Equal(decimal.RequireFromString(want)) {
			t.Fatalf("CalculateVatFee(%s) = %s, want %s", base, got, want)
		}
	}
}

func TestCalculateDiscountAmount(t *testing.T) {
	got := CalculateDiscountAmount(decimal.RequireFromString("112"), DiscountRate)
	if !got.Equal(decimal.RequireFromString("22.4")) {
		t.Fatalf("discount = %s", got)
	}
	if !CalculateDiscountAmount(decimal.Zero, DiscountRate).IsZero() {
		t.Fatal("discount on zero subtotal")
	}
}
