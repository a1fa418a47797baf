package payroll

import (
	"fmt"

	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/tax"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
)

// NetSalaryInput holds a monthly wage and the optional withholding data.
type NetSalaryInput struct {
	Salary           float64 `json:"salario"`
	IncludeTransport bool    `json:"incluyeTransporte"`
	ApplyWithholding bool    `json:"aplicarRetencion"`

	// Monthly deduction claims, only used with ApplyWithholding.
	Dependents             int     `json:"dependientes"`
	MortgageInterest       float64 `json:"interesesVivienda"`
	PrepaidMedical         float64 `json:"medicinaPrepagada"`
	VoluntaryContributions float64 `json:"aportesVoluntarios"`
}

// NetSalaryResult breaks a monthly wage into deductions and take-home pay.
type NetSalaryResult struct {
	Gross            float64     `json:"salarioBruto"`
	TransportSubsidy float64     `json:"auxilioTransporte"`
	Health           float64     `json:"salud"`
	Pension          float64     `json:"pension"`
	SolidarityRate   float64     `json:"tasaSolidaridad"`
	Solidarity       float64     `json:"fondoSolidaridad"`
	Withholding      float64     `json:"retencionFuente"`
	TotalDeductions  float64     `json:"totalDeducciones"`
	Net              float64     `json:"salarioNeto"`
	Relief           *tax.Relief `json:"depuracion,omitempty"`
}

// Validate checks the input against the net salary domain.
func (in NetSalaryInput) Validate() error {
	return validation.First(
		validation.Positive("salario", in.Salary),
		validation.NonNegativeInt("dependientes", in.Dependents),
		validation.NonNegative("interesesVivienda", in.MortgageInterest),
		validation.NonNegative("medicinaPrepagada", in.PrepaidMedical),
		validation.NonNegative("aportesVoluntarios", in.VoluntaryContributions),
	)
}

// NetSalary subtracts the employee contributions and, when requested, the
// monthly withholding at source, then adds the transport subsidy.
func (c *Calculator) NetSalary(in NetSalaryInput) (*NetSalaryResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := c.params

	result := &NetSalaryResult{
		Gross:            in.Salary,
		TransportSubsidy: TransportSubsidy(p, in.Salary, in.IncludeTransport),
		Health:           mathutil.ApplyPercentage(in.Salary, p.HealthRate),
		Pension:          mathutil.ApplyPercentage(in.Salary, p.PensionRate),
		SolidarityRate:   p.SolidarityRate(in.Salary),
	}
	result.Solidarity = mathutil.ApplyPercentage(in.Salary, result.SolidarityRate)
	contributions := result.Health + result.Pension + result.Solidarity

	if in.ApplyWithholding {
		withheld, relief := tax.MonthlyWithholding(p, tax.ReliefInput{
			Income:                 in.Salary,
			Contributions:          contributions,
			Dependents:             in.Dependents,
			MortgageInterest:       in.MortgageInterest,
			PrepaidMedical:         in.PrepaidMedical,
			VoluntaryContributions: in.VoluntaryContributions,
		})
		result.Withholding = withheld
		result.Relief = &relief
	}

	result.TotalDeductions = contributions + result.Withholding
	result.Net = mathutil.ClampZero(in.Salary-result.TotalDeductions) + result.TransportSubsidy

	c.logger.Debug(fmt.Sprintf("net salary of %.2f is %.2f", in.Salary, result.Net),
		zap.String("op", "payroll.NetSalary"),
		zap.Bool("withholding", in.ApplyWithholding),
		zap.Float64("solidarity_rate", result.SolidarityRate),
	)

	return result, nil
}

// NetSalary computes the net salary with the current parameters.
func NetSalary(in NetSalaryInput) (*NetSalaryResult, error) {
	return defaultCalculator().NetSalary(in)
}
