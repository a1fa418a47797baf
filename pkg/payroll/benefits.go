package payroll

import (
	"fmt"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
)

// SeveranceInput describes the year whose severance fund accrual is computed.
// Without dates or days the full year is assumed.
type SeveranceInput struct {
	Salary           float64 `json:"salario"`
	IncludeTransport bool    `json:"incluyeTransporte"`
	StartDate        string  `json:"fechaInicio"`
	EndDate          string  `json:"fechaCorte"`
	DaysWorked       int     `json:"diasTrabajados"`
}

// SeveranceResult is the severance accrued in a year and its interest.
type SeveranceResult struct {
	WageBase         float64 `json:"salarioBase"`
	TransportSubsidy float64 `json:"auxilioTransporte"`
	Days             int     `json:"diasTrabajados"`
	Severance        float64 `json:"cesantias"`
	Interest         float64 `json:"interesesCesantias"`
	Total            float64 `json:"total"`
}

// Severance accrues base·days/360 and interest of 12% a year on it.
func (c *Calculator) Severance(in SeveranceInput) (*SeveranceResult, error) {
	if err := validation.First(
		validation.Positive("salario", in.Salary),
		validation.NonNegativeInt("diasTrabajados", in.DaysWorked),
	); err != nil {
		return nil, err
	}
	days, err := yearDays(in.StartDate, in.EndDate, in.DaysWorked)
	if err != nil {
		return nil, err
	}

	result := &SeveranceResult{Days: days}
	result.WageBase, result.TransportSubsidy = c.wageBase(in.Salary, in.IncludeTransport)
	result.Severance = mathutil.Prorate(result.WageBase, days, constants.DaysPerCommercialYear)
	result.Interest = c.severanceInterest(result.Severance, days)
	result.Total = result.Severance + result.Interest

	c.logger.Debug(fmt.Sprintf("severance over %d days: %.2f plus %.2f interest", days, result.Severance, result.Interest),
		zap.String("op", "payroll.Severance"),
	)

	return result, nil
}

// yearDays resolves the days of the accrual year, capped at 360. Explicit days
// win over dates; a missing start is January 1st of the end year and a missing
// end is December 31st of the start year.
func yearDays(startValue, endValue string, explicit int) (int, error) {
	if explicit > 0 {
		return mathutil.MinInt(explicit, constants.DaysPerCommercialYear), nil
	}
	start, hasStart, err := validation.OptionalDate("fechaInicio", startValue)
	if err != nil {
		return 0, err
	}
	end, hasEnd, err := validation.OptionalDate("fechaCorte", endValue)
	if err != nil {
		return 0, err
	}
	switch {
	case !hasStart && !hasEnd:
		return constants.DaysPerCommercialYear, nil
	case !hasEnd:
		end = datetime.YearEnd(start)
	case !hasStart:
		start = datetime.YearStart(end)
	}
	if end.Before(start) {
		return 0, validation.Invalid("fechaCorte", "must not be before fechaInicio")
	}
	start = datetime.Later(start, datetime.YearStart(end))
	return countDays(start, end, constants.DaysPerCommercialYear), nil
}

// ServiceBonusInput selects the semester whose bonus is computed. Semester and
// Year default to the current date; hire and cut-off dates shorten the period.
type ServiceBonusInput struct {
	Salary           float64 `json:"salario"`
	IncludeTransport bool    `json:"incluyeTransporte"`
	Semester         int     `json:"semestre"`
	Year             int     `json:"anio"`
	HireDate         string  `json:"fechaIngreso"`
	CutoffDate       string  `json:"fechaCorte"`
	DaysWorked       int     `json:"diasTrabajados"`
}

// ServiceBonusResult is the service bonus of a semester.
type ServiceBonusResult struct {
	Semester         int     `json:"semestre"`
	Year             int     `json:"anio"`
	PeriodStart      string  `json:"inicioPeriodo"`
	PeriodEnd        string  `json:"finPeriodo"`
	WageBase         float64 `json:"salarioBase"`
	TransportSubsidy float64 `json:"auxilioTransporte"`
	Days             int     `json:"diasTrabajados"`
	Bonus            float64 `json:"prima"`
}

// ServiceBonus pays base·days/180 for the days worked in the semester.
func (c *Calculator) ServiceBonus(in ServiceBonusInput) (*ServiceBonusResult, error) {
	if err := validation.First(
		validation.Positive("salario", in.Salary),
		validation.NonNegativeInt("diasTrabajados", in.DaysWorked),
		validation.NonNegativeInt("anio", in.Year),
	); err != nil {
		return nil, err
	}
	hire, hasHire, err := validation.OptionalDate("fechaIngreso", in.HireDate)
	if err != nil {
		return nil, err
	}
	cutoff, hasCutoff, err := validation.OptionalDate("fechaCorte", in.CutoffDate)
	if err != nil {
		return nil, err
	}

	reference := c.today()
	if hasCutoff {
		reference = cutoff
	}
	semester, year := in.Semester, in.Year
	if semester == 0 {
		semester = datetime.SemesterOf(reference)
	}
	if year == 0 {
		year = reference.Year()
	}
	start, end, err := datetime.SemesterBounds(year, semester)
	if err != nil {
		return nil, validation.Invalid("semestre", "%v", err)
	}

	days := mathutil.MinInt(in.DaysWorked, constants.DaysPerCommercialSemester)
	if in.DaysWorked == 0 {
		if hasHire {
			start = datetime.Later(start, hire)
		}
		if hasCutoff {
			end = datetime.Earlier(end, cutoff)
		}
		days = countDays(start, end, constants.DaysPerCommercialSemester)
	}

	result := &ServiceBonusResult{
		Semester:    semester,
		Year:        year,
		PeriodStart: start.Format(constants.DateLayout),
		PeriodEnd:   end.Format(constants.DateLayout),
		Days:        days,
	}
	result.WageBase, result.TransportSubsidy = c.wageBase(in.Salary, in.IncludeTransport)
	result.Bonus = mathutil.Prorate(result.WageBase, days, constants.DaysPerCommercialSemester)

	c.logger.Debug(fmt.Sprintf("service bonus for semester %d of %d over %d days: %.2f", semester, year, days, result.Bonus),
		zap.String("op", "payroll.ServiceBonus"),
	)

	return result, nil
}

// semesterDays counts the days of the semester containing end worked since start.
func semesterDays(start, end time.Time) int {
	semesterStart, _, _ := datetime.SemesterBounds(end.Year(), datetime.SemesterOf(end))
	return countDays(datetime.Later(start, semesterStart), end, constants.DaysPerCommercialSemester)
}

// Severance computes the severance fund accrual with the current parameters.
func Severance(in SeveranceInput) (*SeveranceResult, error) {
	return defaultCalculator().Severance(in)
}

// ServiceBonus computes the service bonus with the current parameters.
func ServiceBonus(in ServiceBonusInput) (*ServiceBonusResult, error) {
	return defaultCalculator().ServiceBonus(in)
}
