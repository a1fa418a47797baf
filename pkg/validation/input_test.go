package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestPositive(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"Positive", 10, false},
		{"Zero", 0, true},
		{"Negative", -1, true},
		{"NaN", math.NaN(), true},
		{"Infinity", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Positive("monto", tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Positive(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Positive(%v) error should wrap ErrInvalidInput", tt.value)
			}
		})
	}
}

func TestNonNegative(t *testing.T) {
	if err := NonNegative("aporte", 0); err != nil {
		t.Errorf("NonNegative(0) unexpected error = %v", err)
	}
	if err := NonNegative("aporte", -0.5); err == nil {
		t.Errorf("NonNegative(-0.5) expected error")
	}
	if err := NonNegative("aporte", math.NaN()); err == nil {
		t.Errorf("NonNegative(NaN) expected error")
	}
}

func TestIntegerGuards(t *testing.T) {
	if err := PositiveInt("plazoMeses", 0); err == nil {
		t.Errorf("PositiveInt(0) expected error")
	}
	if err := PositiveInt("plazoMeses", 12); err != nil {
		t.Errorf("PositiveInt(12) unexpected error = %v", err)
	}
	if err := NonNegativeInt("diasTomados", -1); err == nil {
		t.Errorf("NonNegativeInt(-1) expected error")
	}
}

func TestInputErrorMessage(t *testing.T) {
	err := Invalid("salario", "must be greater than zero, got %v", -3)
	if !strings.Contains(err.Error(), "salario") {
		t.Errorf("error message should name the field: %s", err)
	}

	var inputErr *InputError
	if !errors.As(err, &inputErr) || inputErr.Field != "salario" {
		t.Errorf("errors.As should expose the InputError")
	}

	wrapped := fmt.Errorf("calculation failed: %w", err)
	if !IsInvalidInput(wrapped) {
		t.Errorf("wrapped InputError should still be an invalid input")
	}
	if IsInvalidInput(errors.New("disk full")) {
		t.Errorf("unrelated errors are not invalid inputs")
	}
}

func TestDates(t *testing.T) {
	if _, err := RequiredDate("fechaIngreso", ""); err == nil {
		t.Errorf("RequiredDate with empty value expected error")
	}
	if _, err := RequiredDate("fechaIngreso", "2024-13-01"); err == nil {
		t.Errorf("RequiredDate with invalid month expected error")
	}
	d, err := RequiredDate("fechaIngreso", "2024-02-29")
	if err != nil || d.Day() != 29 {
		t.Errorf("RequiredDate(2024-02-29) = %v, %v", d, err)
	}

	_, ok, err := OptionalDate("fechaCorte", "  ")
	if ok || err != nil {
		t.Errorf("OptionalDate blank should be absent without error")
	}
	_, ok, err = OptionalDate("fechaCorte", "2024-06-30")
	if !ok || err != nil {
		t.Errorf("OptionalDate(2024-06-30) ok = %v, err = %v", ok, err)
	}
	if _, _, err = OptionalDate("fechaCorte", "junio"); err == nil {
		t.Errorf("OptionalDate(junio) expected error")
	}
}

func TestFirst(t *testing.T) {
	errA := errors.New("a")
	if First(nil, errA, errors.New("b")) != errA {
		t.Errorf("First should return the first non-nil error")
	}
	if First(nil, nil) != nil {
		t.Errorf("First of nils should be nil")
	}
}
