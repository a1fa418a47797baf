// Package interest projects capital growth under periodic compounding with
// optional periodic contributions, and solves for the contribution a savings
// goal requires.
package interest

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
)

// RateType declares how the entered rate is expressed.
type RateType string

// Rate types.
const (
	RateAnnual     RateType = "anual"      // effective annual
	RateMonthly    RateType = "mensual"    // effective monthly
	RateNominal    RateType = "nominal"    // nominal annual, compounded at the capitalization frequency
	RateQuarterly  RateType = "trimestral" // effective quarterly
	RateSemiannual RateType = "semestral"  // effective semiannual
)

// ContributionFrequency is how often a contribution is made.
type ContributionFrequency string

// Contribution frequencies.
const (
	ContributionNone       ContributionFrequency = "ninguno"
	ContributionMonthly    ContributionFrequency = "mensual"
	ContributionQuarterly  ContributionFrequency = "trimestral"
	ContributionSemiannual ContributionFrequency = "semestral"
	ContributionAnnual     ContributionFrequency = "anual"
)

// Timing places a contribution at the start or the end of its period.
type Timing string

// Contribution timings.
const (
	TimingStart Timing = "inicio"
	TimingEnd   Timing = "final"
)

const (
	// DefaultCompounding is used when no capitalization frequency is given.
	DefaultCompounding = 12

	// MaxYears bounds the projection horizon accepted from user input.
	MaxYears = 100

	maxCompounding = 365
)

var contributionsPerYear = map[ContributionFrequency]int{
	ContributionNone:       0,
	ContributionMonthly:    12,
	ContributionQuarterly:  4,
	ContributionSemiannual: 2,
	ContributionAnnual:     1,
}

// Input holds the compound interest parameters.
type Input struct {
	Principal             float64               `json:"capitalInicial"`
	Rate                  float64               `json:"tasa"` // percent
	RateType              RateType              `json:"tipoTasa"`
	Years                 int                   `json:"tiempo"`
	Compounding           int                   `json:"frecuenciaCapitalizacion"` // periods per year
	Contribution          float64               `json:"aporte"`
	ContributionFrequency ContributionFrequency `json:"frecuenciaAporte"`
	ContributionTiming    Timing                `json:"momentoAporte"`
}

// YearSnapshot is the state of the investment at the end of a year.
type YearSnapshot struct {
	Year                  int     `json:"anio"`
	Balance               float64 `json:"capital"`
	CumulativeContributed float64 `json:"aportesAcumulados"`
	CumulativeInterest    float64 `json:"interesesAcumulados"`
}

// Result is the projection of a compound interest calculation.
type Result struct {
	FinalAmount       float64        `json:"montoFinal"`
	Principal         float64        `json:"capitalInicial"`
	TotalContributed  float64        `json:"totalAportes"`
	InterestEarned    float64        `json:"interesesGanados"`
	EffectiveAnnual   float64        `json:"tasaEfectivaAnual"` // percent
	PeriodicRate      float64        `json:"tasaPeriodica"`     // percent
	NominalRate       float64        `json:"tasaNominal"`       // percent
	Periods           int            `json:"periodos"`
	ContributionCount int            `json:"numeroAportes"`
	Evolution         []YearSnapshot `json:"evolucion"`
}

// normalized fills defaults and trims categorical values.
func (in Input) normalized() Input {
	out := in
	out.RateType = RateType(strings.ToLower(strings.TrimSpace(string(in.RateType))))
	if out.RateType == "" {
		out.RateType = RateAnnual
	}
	out.ContributionFrequency = ContributionFrequency(strings.ToLower(strings.TrimSpace(string(in.ContributionFrequency))))
	if out.ContributionFrequency == "" {
		out.ContributionFrequency = ContributionNone
	}
	out.ContributionTiming = Timing(strings.ToLower(strings.TrimSpace(string(in.ContributionTiming))))
	if out.ContributionTiming == "" {
		out.ContributionTiming = TimingEnd
	}
	if out.Compounding == 0 {
		out.Compounding = DefaultCompounding
	}
	if out.ContributionFrequency == ContributionNone {
		out.Contribution = 0
	}
	return out
}

// Validate checks the input against the compound interest domain.
func (in Input) Validate() error {
	n := in.normalized()
	if err := validation.First(
		validation.NonNegative("tasa", n.Rate),
		validation.PositiveInt("tiempo", n.Years),
		validation.NonNegative("capitalInicial", n.Principal),
		validation.NonNegative("aporte", n.Contribution),
	); err != nil {
		return err
	}
	if n.Years > MaxYears {
		return validation.Invalid("tiempo", "must be at most %d years, got %d", MaxYears, n.Years)
	}
	if n.Compounding < 1 || n.Compounding > maxCompounding {
		return validation.Invalid("frecuenciaCapitalizacion", "must be between 1 and %d, got %d", maxCompounding, n.Compounding)
	}
	if _, ok := contributionsPerYear[n.ContributionFrequency]; !ok {
		return validation.Invalid("frecuenciaAporte", "unknown frequency %q", n.ContributionFrequency)
	}
	if n.ContributionTiming != TimingStart && n.ContributionTiming != TimingEnd {
		return validation.Invalid("momentoAporte", "must be %q or %q, got %q", TimingStart, TimingEnd, n.ContributionTiming)
	}
	if _, err := EffectiveAnnualRate(n.Rate, n.RateType, n.Compounding); err != nil {
		return validation.Invalid("tipoTasa", "%v", err)
	}
	return nil
}

// EffectiveAnnualRate converts a declared percentage rate into an effective
// annual fraction.
func EffectiveAnnualRate(rate float64, rateType RateType, compounding int) (float64, error) {
	r := rate / constants.PercentageMultiplier
	switch rateType {
	case RateAnnual:
		return r, nil
	case RateMonthly:
		return math.Pow(1+r, 12) - 1, nil
	case RateQuarterly:
		return math.Pow(1+r, 4) - 1, nil
	case RateSemiannual:
		return math.Pow(1+r, 2) - 1, nil
	case RateNominal:
		if compounding <= 0 {
			return 0, fmt.Errorf("nominal rate requires a positive compounding frequency")
		}
		return math.Pow(1+r/float64(compounding), float64(compounding)) - 1, nil
	default:
		return 0, fmt.Errorf("unknown rate type %q", rateType)
	}
}

// PeriodicRate returns the rate per compounding period equivalent to an
// effective annual fraction.
func PeriodicRate(effectiveAnnual float64, compounding int) float64 {
	return math.Pow(1+effectiveAnnual, 1/float64(compounding)) - 1
}

// contributionInstants returns, for each contribution instant of a year
// falling in compounding period j (0-based), the fraction of the period left
// after it. Instants are k/f of the year: k = 0..f-1 when made at the start of
// each contribution period, k = 1..f when made at its end. Start instants
// belong to [j/n, (j+1)/n), end instants to (j/n, (j+1)/n].
func contributionInstants(j, n, f int, timing Timing) []float64 {
	var remaining []float64
	first, last := 1, f
	if timing == TimingStart {
		first, last = 0, f-1
	}
	for k := first; k <= last; k++ {
		inPeriod := j*f < k*n && k*n <= (j+1)*f
		if timing == TimingStart {
			inPeriod = j*f <= k*n && k*n < (j+1)*f
		}
		if inPeriod {
			remaining = append(remaining, float64((j+1)*f-k*n)/float64(f))
		}
	}
	return remaining
}

// Calculator projects compound interest.
type Calculator struct {
	logger *zap.Logger
}

// NewCalculator creates a calculator instance
func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger}
}

// Compound projects the investment period by period.
func (c *Calculator) Compound(in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in = in.normalized()

	ea, _ := EffectiveAnnualRate(in.Rate, in.RateType, in.Compounding)
	n := in.Compounding
	f := contributionsPerYear[in.ContributionFrequency]
	periodic := PeriodicRate(ea, n)

	// A deposit made inside a period earns interest for the part of the
	// period left after it.
	perPeriod := make([]int, n)
	growth := make([]float64, n)
	for j := 0; j < n; j++ {
		if f > 0 && in.Contribution > 0 {
			for _, left := range contributionInstants(j, n, f, in.ContributionTiming) {
				perPeriod[j]++
				growth[j] += math.Pow(1+periodic, left)
			}
		}
	}

	balance := in.Principal
	contributed := 0.0
	count := 0
	evolution := make([]YearSnapshot, 0, in.Years)

	for year := 1; year <= in.Years; year++ {
		for j := 0; j < n; j++ {
			balance = balance*(1+periodic) + in.Contribution*growth[j]
			contributed += in.Contribution * float64(perPeriod[j])
			count += perPeriod[j]
		}
		evolution = append(evolution, YearSnapshot{
			Year:                  year,
			Balance:               balance,
			CumulativeContributed: contributed,
			CumulativeInterest:    balance - in.Principal - contributed,
		})
	}

	result := &Result{
		FinalAmount:       balance,
		Principal:         in.Principal,
		TotalContributed:  contributed,
		InterestEarned:    balance - in.Principal - contributed,
		EffectiveAnnual:   ea * constants.PercentageMultiplier,
		PeriodicRate:      periodic * constants.PercentageMultiplier,
		NominalRate:       periodic * float64(n) * constants.PercentageMultiplier,
		Periods:           n * in.Years,
		ContributionCount: count,
		Evolution:         evolution,
	}

	c.logger.Debug(fmt.Sprintf("projected %.2f over %d years at %.6f%% per period",
		in.Principal, in.Years, result.PeriodicRate),
		zap.String("op", "interest.Compound"),
		zap.Float64("final_amount", mathutil.Round(result.FinalAmount)),
		zap.Int("contributions", count),
	)

	return result, nil
}

// Compound projects compound interest without logging.
func Compound(in Input) (*Result, error) {
	return NewCalculator(nil).Compound(in)
}
