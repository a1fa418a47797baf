// Package payroll implements the Colombian labor-law calculators: net salary,
// severance fund (cesantías), service bonus (prima), final settlement
// (liquidación), vacation accrual and overtime pay.
package payroll

import (
	"time"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/legal"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"go.uber.org/zap"
)

// Calculator computes labor benefits with the parameters of one fiscal year.
type Calculator struct {
	logger *zap.Logger
	params legal.Parameters
	today  func() time.Time
}

// NewCalculator creates a payroll calculator.
func NewCalculator(logger *zap.Logger, params legal.Parameters) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger, params: params, today: datetime.Today}
}

func defaultCalculator() *Calculator {
	return NewCalculator(nil, legal.Current())
}

// TransportSubsidy returns the subsidy owed on a wage: the full amount when
// requested and the wage does not exceed the ceiling, zero otherwise.
func TransportSubsidy(p legal.Parameters, wage float64, include bool) float64 {
	if !include || wage > p.TransportCeiling() {
		return 0
	}
	return p.TransportSubsidy
}

// wageBase is the monthly base of the prestaciones: wage plus the subsidy.
func (c *Calculator) wageBase(wage float64, includeTransport bool) (base, subsidy float64) {
	subsidy = TransportSubsidy(c.params, wage, includeTransport)
	return wage + subsidy, subsidy
}

// countDays is the calendar difference between two dates bounded to [0, period].
func countDays(start, end time.Time, period int) int {
	days := datetime.DaysBetween(start, end)
	if days < 0 {
		return 0
	}
	if days > period {
		return period
	}
	return days
}

// severanceInterest is the yearly interest on accrued severance for the days worked.
func (c *Calculator) severanceInterest(severance float64, days int) float64 {
	return mathutil.Prorate(mathutil.ApplyPercentage(severance, c.params.SeveranceInterestRate), days, constants.DaysPerCommercialYear)
}

// dailyWage divides a monthly wage over a commercial month.
func dailyWage(wage float64) float64 {
	return wage / constants.DaysPerCommercialMonth
}
