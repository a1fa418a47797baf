package payroll

import (
	"fmt"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
)

// VacationInput describes the service time whose vacation is accrued.
// ReferenceDate defaults to today.
type VacationInput struct {
	Salary        float64 `json:"salario"`
	StartDate     string  `json:"fechaIngreso"`
	DaysTaken     float64 `json:"diasTomados"`
	ReferenceDate string  `json:"fechaReferencia"`
}

// VacationResult is the vacation owed at the reference date.
type VacationResult struct {
	DaysWorked   int     `json:"diasTrabajados"`
	Accrued      float64 `json:"diasCausados"`
	Taken        float64 `json:"diasTomados"`
	BusinessDays float64 `json:"diasHabiles"`
	CalendarDays float64 `json:"diasCalendario"`
	DailyWage    float64 `json:"salarioDiario"`
	Value        float64 `json:"valorVacaciones"`
}

// Vacation accrues 15 business days per 360 days worked, less the days
// already taken.
func (c *Calculator) Vacation(in VacationInput) (*VacationResult, error) {
	if err := validation.First(
		validation.Positive("salario", in.Salary),
		validation.NonNegative("diasTomados", in.DaysTaken),
	); err != nil {
		return nil, err
	}
	start, err := validation.RequiredDate("fechaIngreso", in.StartDate)
	if err != nil {
		return nil, err
	}
	reference, ok, err := validation.OptionalDate("fechaReferencia", in.ReferenceDate)
	if err != nil {
		return nil, err
	}
	if !ok {
		reference = c.today()
	}
	if start.After(reference) {
		return nil, validation.Invalid("fechaIngreso", "%s is after the reference date %s",
			start.Format(constants.DateLayout), reference.Format(constants.DateLayout))
	}

	result := c.vacation(in.Salary, datetime.DaysBetween(start, reference), in.DaysTaken)

	c.logger.Debug(fmt.Sprintf("vacation over %d days worked: %.2f business days owed", result.DaysWorked, result.BusinessDays),
		zap.String("op", "payroll.Vacation"),
		zap.Float64("value", mathutil.Round(result.Value)),
	)

	return result, nil
}

func (c *Calculator) vacation(salary float64, daysWorked int, taken float64) *VacationResult {
	p := c.params
	result := &VacationResult{
		DaysWorked: daysWorked,
		Accrued:    float64(daysWorked) * p.VacationDaysPerYear / constants.DaysPerCommercialYear,
		Taken:      taken,
		DailyWage:  dailyWage(salary),
	}
	result.BusinessDays = mathutil.ClampZero(result.Accrued - taken)
	result.CalendarDays = result.BusinessDays * p.VacationCalendarFactor
	result.Value = result.DailyWage * result.BusinessDays
	return result
}

// Vacation computes the vacation accrual with the current parameters.
func Vacation(in VacationInput) (*VacationResult, error) {
	return defaultCalculator().Vacation(in)
}
