package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "$0"},
		{999, "$999"},
		{888_487.8789, "$888.488"},
		{1_423_500, "$1.423.500"},
		{-1_234_567.5, "-$1.234.568"},
		{-0.2, "$0"},
		{1_000_000_000, "$1.000.000.000"},
	}
	for _, tt := range tests {
		if got := Currency(tt.amount); got != tt.expected {
			t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
		}
	}
}

func TestPlain(t *testing.T) {
	if got := Plain(1_234_567.891); got != "1234567.89" {
		t.Errorf("Plain() = %q", got)
	}
	if got := Plain(-3); got != "-3.00" {
		t.Errorf("Plain(-3) = %q", got)
	}
}

func TestPercentAndDays(t *testing.T) {
	if got := Percent(12.5); got != "12,50%" {
		t.Errorf("Percent(12.5) = %q", got)
	}
	if got := Percent(0.0712); got != "0,07%" {
		t.Errorf("Percent(0.0712) = %q", got)
	}
	if got := Days(15.208333); got != "15,21" {
		t.Errorf("Days(15.208333) = %q", got)
	}
	if got := Days(360); got != "360" {
		t.Errorf("Days(360) = %q", got)
	}
}
