package interest

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
)

func TestCompoundClosedForm(t *testing.T) {
	tests := []struct {
		name     string
		in       Input
		expected float64
	}{
		{
			name:     "Annual compounding, one year",
			in:       Input{Principal: 1_000_000, Rate: 12, Years: 1, Compounding: 1},
			expected: 1_120_000,
		},
		{
			name:     "Annual effective rate, monthly compounding",
			in:       Input{Principal: 1_000_000, Rate: 10, Years: 5},
			expected: 1_000_000 * math.Pow(1.10, 5),
		},
		{
			name:     "Nominal rate, monthly compounding",
			in:       Input{Principal: 5_000_000, Rate: 12, RateType: RateNominal, Years: 2, Compounding: 12},
			expected: 5_000_000 * math.Pow(1.01, 24),
		},
		{
			name:     "Zero rate",
			in:       Input{Principal: 2_000_000, Rate: 0, Years: 3},
			expected: 2_000_000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewCalculator(zap.NewNop()).Compound(tt.in)
			if err != nil {
				t.Fatalf("Compound() error = %v", err)
			}
			if math.Abs(result.FinalAmount-tt.expected) > 0.01 {
				t.Errorf("FinalAmount = %.4f, expected %.4f", result.FinalAmount, tt.expected)
			}
			if len(result.Evolution) != tt.in.Years {
				t.Errorf("Evolution has %d rows, expected %d", len(result.Evolution), tt.in.Years)
			}
		})
	}
}

func TestCompoundWithContributions(t *testing.T) {
	annuity := (math.Pow(1.01, 12) - 1) / 0.01

	end, err := Compound(Input{
		Rate:                  1,
		RateType:              RateMonthly,
		Years:                 1,
		Contribution:          100_000,
		ContributionFrequency: ContributionMonthly,
		ContributionTiming:    TimingEnd,
	})
	if err != nil {
		t.Fatalf("Compound() error = %v", err)
	}
	if math.Abs(end.FinalAmount-100_000*annuity) > 0.01 {
		t.Errorf("end-of-period FinalAmount = %.4f, expected %.4f", end.FinalAmount, 100_000*annuity)
	}

	start, err := Compound(Input{
		Rate:                  1,
		RateType:              RateMonthly,
		Years:                 1,
		Contribution:          100_000,
		ContributionFrequency: ContributionMonthly,
		ContributionTiming:    TimingStart,
	})
	if err != nil {
		t.Fatalf("Compound() error = %v", err)
	}
	if math.Abs(start.FinalAmount-100_000*annuity*1.01) > 0.01 {
		t.Errorf("start-of-period FinalAmount = %.4f, expected %.4f", start.FinalAmount, 100_000*annuity*1.01)
	}

	for _, r := range []*Result{start, end} {
		if r.ContributionCount != 12 {
			t.Errorf("ContributionCount = %d, expected 12", r.ContributionCount)
		}
		if r.TotalContributed != 1_200_000 {
			t.Errorf("TotalContributed = %.2f, expected 1,200,000", r.TotalContributed)
		}
		if math.Abs(r.FinalAmount-r.Principal-r.TotalContributed-r.InterestEarned) > 1e-6 {
			t.Errorf("FinalAmount does not decompose into principal, contributions and interest")
		}
	}
}

func TestCompoundEvolutionIsMonotonic(t *testing.T) {
	result, err := Compound(Input{
		Principal:             10_000_000,
		Rate:                  9,
		Years:                 10,
		Contribution:          500_000,
		ContributionFrequency: ContributionQuarterly,
	})
	if err != nil {
		t.Fatalf("Compound() error = %v", err)
	}
	prev := result.Principal
	for _, snap := range result.Evolution {
		if snap.Balance < prev {
			t.Errorf("year %d balance %.2f below previous %.2f", snap.Year, snap.Balance, prev)
		}
		prev = snap.Balance
	}
	last := result.Evolution[len(result.Evolution)-1]
	if last.Balance != result.FinalAmount {
		t.Errorf("last snapshot %.2f differs from FinalAmount %.2f", last.Balance, result.FinalAmount)
	}
	if result.ContributionCount != 40 {
		t.Errorf("ContributionCount = %d, expected 40", result.ContributionCount)
	}
}

func TestEffectiveAnnualRate(t *testing.T) {
	tests := []struct {
		name        string
		rate        float64
		rateType    RateType
		compounding int
		expected    float64
	}{
		{"Annual", 10, RateAnnual, 12, 0.10},
		{"Monthly", 1, RateMonthly, 12, math.Pow(1.01, 12) - 1},
		{"Quarterly", 3, RateQuarterly, 4, math.Pow(1.03, 4) - 1},
		{"Semiannual", 5, RateSemiannual, 2, math.Pow(1.05, 2) - 1},
		{"Nominal", 12, RateNominal, 4, math.Pow(1.03, 4) - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EffectiveAnnualRate(tt.rate, tt.rateType, tt.compounding)
			if err != nil {
				t.Fatalf("EffectiveAnnualRate() error = %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("EffectiveAnnualRate() = %v, expected %v", got, tt.expected)
			}
		})
	}

	if _, err := EffectiveAnnualRate(10, "diaria", 12); err == nil {
		t.Errorf("EffectiveAnnualRate() with unknown type expected error")
	}
}

func TestContributionInstants(t *testing.T) {
	tests := []struct {
		name     string
		n, f     int
		timing   Timing
		expected []int
	}{
		{"Monthly into monthly, end", 12, 12, TimingEnd, []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
		{"Monthly into quarterly, end", 4, 12, TimingEnd, []int{3, 3, 3, 3}},
		{"Quarterly into monthly, end", 12, 4, TimingEnd, []int{0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1}},
		{"Quarterly into monthly, start", 12, 4, TimingStart, []int{1, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0}},
		{"Annual into annual, start", 1, 1, TimingStart, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := 0
			for j := 0; j < tt.n; j++ {
				got := len(contributionInstants(j, tt.n, tt.f, tt.timing))
				if got != tt.expected[j] {
					t.Errorf("period %d: got %d, expected %d", j, got, tt.expected[j])
				}
				total += got
			}
			if total != tt.f {
				t.Errorf("contributions per year = %d, expected %d", total, tt.f)
			}
		})
	}
}

func TestContributionInstantsRemainingFraction(t *testing.T) {
	aligned := contributionInstants(3, 12, 12, TimingStart)
	if len(aligned) != 1 || aligned[0] != 1 {
		t.Errorf("aligned start deposit remaining = %v, expected [1]", aligned)
	}
	aligned = contributionInstants(3, 12, 12, TimingEnd)
	if len(aligned) != 1 || aligned[0] != 0 {
		t.Errorf("aligned end deposit remaining = %v, expected [0]", aligned)
	}

	start := contributionInstants(0, 1, 12, TimingStart)
	end := contributionInstants(0, 1, 12, TimingEnd)
	if len(start) != 12 || len(end) != 12 {
		t.Fatalf("expected 12 monthly deposits in an annual period, got %d and %d", len(start), len(end))
	}
	for k := 0; k < 12; k++ {
		if math.Abs(start[k]-float64(12-k)/12) > 1e-12 {
			t.Errorf("start deposit %d remaining = %v, expected %v", k, start[k], float64(12-k)/12)
		}
		if math.Abs(end[k]-float64(11-k)/12) > 1e-12 {
			t.Errorf("end deposit %d remaining = %v, expected %v", k+1, end[k], float64(11-k)/12)
		}
	}
}

func TestCompoundContributionsInsideAnnualPeriod(t *testing.T) {
	monthly := math.Pow(1.12, 1.0/12) - 1
	annuity := 100_000 * 0.12 / monthly

	for _, timing := range []Timing{TimingEnd, TimingStart} {
		expected := annuity
		if timing == TimingStart {
			expected *= 1 + monthly
		}
		for _, compounding := range []int{1, 4, 12} {
			result, err := Compound(Input{
				Rate:                  12,
				RateType:              RateAnnual,
				Years:                 1,
				Compounding:           compounding,
				Contribution:          100_000,
				ContributionFrequency: ContributionMonthly,
				ContributionTiming:    timing,
			})
			if err != nil {
				t.Fatalf("Compound() error = %v", err)
			}
			if math.Abs(result.FinalAmount-expected) > 0.01 {
				t.Errorf("%s with %d periods: FinalAmount = %.4f, expected %.4f", timing, compounding, result.FinalAmount, expected)
			}
		}
	}
}

func TestCompoundInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   Input
	}{
		{"Zero years", Input{Principal: 1, Rate: 5, Years: 0}},
		{"Too many years", Input{Principal: 1, Rate: 5, Years: MaxYears + 1}},
		{"Negative principal", Input{Principal: -1, Rate: 5, Years: 1}},
		{"Negative rate", Input{Principal: 1, Rate: -5, Years: 1}},
		{"NaN rate", Input{Principal: 1, Rate: math.NaN(), Years: 1}},
		{"Negative contribution", Input{Principal: 1, Rate: 5, Years: 1, Contribution: -1, ContributionFrequency: ContributionMonthly}},
		{"Unknown rate type", Input{Principal: 1, Rate: 5, Years: 1, RateType: "diaria"}},
		{"Unknown frequency", Input{Principal: 1, Rate: 5, Years: 1, ContributionFrequency: "quincenal"}},
		{"Unknown timing", Input{Principal: 1, Rate: 5, Years: 1, ContributionTiming: "medio"}},
		{"Compounding out of range", Input{Principal: 1, Rate: 5, Years: 1, Compounding: 1000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compound(tt.in)
			if result != nil {
				t.Errorf("Compound() returned a result for invalid input")
			}
			if !errors.Is(err, validation.ErrInvalidInput) {
				t.Errorf("Compound() error = %v, expected ErrInvalidInput", err)
			}
		})
	}
}
