package loans

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
)

func TestCalculateMonthlyPayment(t *testing.T) {
	tests := []struct {
		name               string
		principal          float64
		annualInterestRate float64
		termMonths         int
		expectedRange      []float64 // [min, max] expected range
	}{
		{
			name:               "Consumer loan",
			principal:          10_000_000,
			annualInterestRate: 12.0,
			termMonths:         12,
			expectedRange:      []float64{888_487, 888_489}, // Around 888,488
		},
		{
			name:               "Vehicle loan",
			principal:          60_000_000,
			annualInterestRate: 15.0,
			termMonths:         60,
			expectedRange:      []float64{1_427_000, 1_428_000}, // Around 1,427,396
		},
		{
			name:               "Zero interest loan",
			principal:          12_000_000,
			annualInterestRate: 0.0,
			termMonths:         24,
			expectedRange:      []float64{500_000, 500_000},
		},
		{
			name:               "No term",
			principal:          1_000_000,
			annualInterestRate: 10.0,
			termMonths:         0,
			expectedRange:      []float64{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMonthlyPayment(tt.principal, tt.annualInterestRate, tt.termMonths)

			if result < tt.expectedRange[0] || result > tt.expectedRange[1] {
				t.Errorf("CalculateMonthlyPayment() = %.2f, expected range [%.2f, %.2f]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestCalculateInterestPayment(t *testing.T) {
	tests := []struct {
		name               string
		remainingPrincipal float64
		annualInterestRate float64
		expected           float64
	}{
		{"One percent monthly", 10_000_000, 12.0, 100_000},
		{"Zero interest", 10_000, 0.0, 0.0},
		{"High interest", 5_000_000, 24.0, 100_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateInterestPayment(tt.remainingPrincipal, tt.annualInterestRate)

			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("CalculateInterestPayment() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestGenerateScheduleConsumerLoan(t *testing.T) {
	result, err := NewAmortizationScheduleGenerator(zap.NewNop()).GenerateSchedule(Input{
		Amount:     10_000_000,
		AnnualRate: 12,
		TermMonths: 12,
	})
	if err != nil {
		t.Fatalf("GenerateSchedule() error = %v", err)
	}

	if math.Abs(result.MonthlyPayment-888_488) > 1 {
		t.Errorf("MonthlyPayment = %.2f, expected about 888,488", result.MonthlyPayment)
	}
	if len(result.Schedule) != 12 {
		t.Fatalf("expected 12 rows, got %d", len(result.Schedule))
	}
	last := result.Schedule[len(result.Schedule)-1]
	if math.Abs(last.RemainingPrincipal) > 0.01 {
		t.Errorf("final balance = %.6f, expected 0", last.RemainingPrincipal)
	}
	if math.Abs(result.TotalInterest-(result.TotalPaid-10_000_000)) > 1e-6 {
		t.Errorf("TotalInterest %.2f != TotalPaid - principal %.2f", result.TotalInterest, result.TotalPaid-10_000_000)
	}

	first := result.Schedule[0]
	if math.Abs(first.Interest-100_000) > 1e-6 {
		t.Errorf("first interest = %.2f, expected 100,000", first.Interest)
	}
}

func TestGenerateScheduleInvariants(t *testing.T) {
	inputs := []Input{
		{Amount: 1_000_000, AnnualRate: 0, TermMonths: 7},
		{Amount: 25_000_000, AnnualRate: 9.5, TermMonths: 36},
		{Amount: 350_000_000, AnnualRate: 13.2, TermMonths: 240},
		{Amount: 500_000, AnnualRate: 36, TermMonths: 1},
	}

	for _, in := range inputs {
		result, err := Calculate(in)
		if err != nil {
			t.Fatalf("Calculate(%+v) error = %v", in, err)
		}

		var sumPrincipal, sumInterest float64
		for i, row := range result.Schedule {
			if row.Payment != result.MonthlyPayment {
				t.Errorf("%+v: row %d payment %.6f differs from installment %.6f", in, i, row.Payment, result.MonthlyPayment)
			}
			if row.RemainingPrincipal < 0 {
				t.Errorf("%+v: row %d negative balance %.6f", in, i, row.RemainingPrincipal)
			}
			if math.Abs(row.Principal+row.Interest-row.Payment) > 1e-6 {
				t.Errorf("%+v: row %d principal + interest != payment", in, i)
			}
			sumPrincipal += row.Principal
			sumInterest += row.Interest
		}

		if math.Abs(sumPrincipal-in.Amount) > 0.01 {
			t.Errorf("%+v: principal portions sum to %.4f", in, sumPrincipal)
		}
		if math.Abs(sumInterest-result.TotalInterest) > 0.01 {
			t.Errorf("%+v: interest rows sum to %.4f, total %.4f", in, sumInterest, result.TotalInterest)
		}
		if math.Abs(result.Schedule[len(result.Schedule)-1].RemainingPrincipal) > 0.01 {
			t.Errorf("%+v: final balance not zero", in)
		}
	}
}

func TestZeroRateLoan(t *testing.T) {
	result, err := Calculate(Input{Amount: 1_200_000, AnnualRate: 0, TermMonths: 12})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if result.MonthlyPayment != 100_000 {
		t.Errorf("MonthlyPayment = %v, expected exactly 100,000", result.MonthlyPayment)
	}
	if math.Abs(result.TotalInterest) > 1e-6 {
		t.Errorf("TotalInterest = %v, expected 0", result.TotalInterest)
	}
}

func TestNegligibleRateLoan(t *testing.T) {
	for _, rate := range []float64{1e-15, 1e-13} {
		result, err := Calculate(Input{Amount: 10_000_000, AnnualRate: rate, TermMonths: 12})
		if err != nil {
			t.Fatalf("Calculate(%g) error = %v", rate, err)
		}
		if math.IsInf(result.MonthlyPayment, 0) || math.IsNaN(result.MonthlyPayment) {
			t.Fatalf("Calculate(%g) MonthlyPayment = %v", rate, result.MonthlyPayment)
		}
		if math.Abs(result.MonthlyPayment-10_000_000/12.0) > 0.01 {
			t.Errorf("Calculate(%g) MonthlyPayment = %.4f, expected %.4f", rate, result.MonthlyPayment, 10_000_000/12.0)
		}
		if math.Abs(result.Schedule[len(result.Schedule)-1].RemainingPrincipal) > 0.01 {
			t.Errorf("Calculate(%g) final balance not zero", rate)
		}
		if _, err := json.Marshal(result); err != nil {
			t.Errorf("Calculate(%g) result does not encode: %v", rate, err)
		}
	}
}

func TestCalculateInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   Input
	}{
		{"Zero amount", Input{Amount: 0, AnnualRate: 12, TermMonths: 12}},
		{"Negative amount", Input{Amount: -5, AnnualRate: 12, TermMonths: 12}},
		{"Zero term", Input{Amount: 1_000_000, AnnualRate: 12, TermMonths: 0}},
		{"NaN amount", Input{Amount: math.NaN(), AnnualRate: 12, TermMonths: 12}},
		{"NaN rate", Input{Amount: 1_000_000, AnnualRate: math.NaN(), TermMonths: 12}},
		{"Negative rate", Input{Amount: 1_000_000, AnnualRate: -1, TermMonths: 12}},
		{"Term too long", Input{Amount: 1_000_000, AnnualRate: 12, TermMonths: MaxTermMonths + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Calculate(tt.in)
			if result != nil {
				t.Errorf("Calculate() returned a result for invalid input")
			}
			if !errors.Is(err, validation.ErrInvalidInput) {
				t.Errorf("Calculate() error = %v, expected ErrInvalidInput", err)
			}
		})
	}
}
