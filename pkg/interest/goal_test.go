package interest

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/finance-calculators/pkg/validation"
)

func TestSavingsGoal(t *testing.T) {
	tests := []struct {
		name string
		in   GoalInput
	}{
		{
			name: "Monthly contributions from zero",
			in: GoalInput{Target: 50_000_000, Input: Input{
				Rate: 8, Years: 5, ContributionFrequency: ContributionMonthly,
			}},
		},
		{
			name: "With initial capital, start timing",
			in: GoalInput{Target: 100_000_000, Input: Input{
				Principal: 20_000_000, Rate: 10, Years: 10,
				ContributionFrequency: ContributionQuarterly, ContributionTiming: TimingStart,
			}},
		},
		{
			name: "Zero rate defaults to monthly",
			in:   GoalInput{Target: 12_000_000, Input: Input{Rate: 0, Years: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SavingsGoal(tt.in)
			if err != nil {
				t.Fatalf("SavingsGoal() error = %v", err)
			}
			if result.RequiredContribution <= 0 {
				t.Errorf("RequiredContribution = %.2f, expected positive", result.RequiredContribution)
			}
			if math.Abs(result.Projection.FinalAmount-tt.in.Target) > 0.01 {
				t.Errorf("projection reaches %.4f, expected %.2f", result.Projection.FinalAmount, tt.in.Target)
			}
		})
	}
}

func TestSavingsGoalZeroRateIsEvenSplit(t *testing.T) {
	result, err := SavingsGoal(GoalInput{Target: 12_000_000, Input: Input{Years: 1}})
	if err != nil {
		t.Fatalf("SavingsGoal() error = %v", err)
	}
	if math.Abs(result.RequiredContribution-1_000_000) > 1e-6 {
		t.Errorf("RequiredContribution = %.4f, expected 1,000,000", result.RequiredContribution)
	}
}

func TestSavingsGoalCoveredByPrincipal(t *testing.T) {
	result, err := SavingsGoal(GoalInput{Target: 1_000_000, Input: Input{Principal: 2_000_000, Rate: 5, Years: 1}})
	if err != nil {
		t.Fatalf("SavingsGoal() error = %v", err)
	}
	if !result.CoveredByPrincipal || result.RequiredContribution != 0 {
		t.Errorf("expected goal covered by principal, got %+v", result)
	}
}

func TestSavingsGoalInvalidInput(t *testing.T) {
	inputs := []GoalInput{
		{Target: 0, Input: Input{Rate: 5, Years: 1}},
		{Target: -10, Input: Input{Rate: 5, Years: 1}},
		{Target: 1_000_000, Input: Input{Rate: 5, Years: 0}},
	}
	for _, in := range inputs {
		result, err := SavingsGoal(in)
		if result != nil || !errors.Is(err, validation.ErrInvalidInput) {
			t.Errorf("SavingsGoal(%+v) = %v, %v; expected ErrInvalidInput", in, result, err)
		}
	}
}
