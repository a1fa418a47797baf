package tax

import (
	"fmt"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/legal"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
)

// TaxpayerType selects how mandatory contributions are computed.
type TaxpayerType string

// Taxpayer types.
const (
	TaxpayerEmployee    TaxpayerType = "empleado"
	TaxpayerIndependent TaxpayerType = "independiente"
)

// IncomeTaxInput holds the annual figures of an individual.
type IncomeTaxInput struct {
	Income                 float64      `json:"ingresosAnuales"`
	TaxpayerType           TaxpayerType `json:"tipoContribuyente"`
	Dependents             int          `json:"dependientes"`
	MortgageInterest       float64      `json:"interesesVivienda"`
	PrepaidMedical         float64      `json:"medicinaPrepagada"`
	VoluntaryContributions float64      `json:"aportesVoluntarios"`
}

// IncomeTaxResult is the estimated annual income tax.
type IncomeTaxResult struct {
	Income           float64      `json:"ingresosAnuales"`
	TaxpayerType     TaxpayerType `json:"tipoContribuyente"`
	ContributionBase float64      `json:"baseCotizacion"`
	Health           float64      `json:"aporteSalud"`
	Pension          float64      `json:"aportePension"`
	Solidarity       float64      `json:"fondoSolidaridad"`
	Contributions    float64      `json:"totalAportes"`
	Relief           Relief       `json:"depuracion"`
	TaxableUVT       float64      `json:"rentaGravableUVT"`
	TaxUVT           float64      `json:"impuestoUVT"`
	Tax              float64      `json:"impuesto"`
	EffectiveRate    float64      `json:"tasaEfectiva"` // percent of gross income
	MarginalRate     float64      `json:"tasaMarginal"`
}

// Calculator estimates taxes with the parameters of one fiscal year.
type Calculator struct {
	logger *zap.Logger
	params legal.Parameters
}

// NewCalculator creates a tax calculator.
func NewCalculator(logger *zap.Logger, params legal.Parameters) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger, params: params}
}

func (in IncomeTaxInput) taxpayer() TaxpayerType {
	t := TaxpayerType(strings.ToLower(strings.TrimSpace(string(in.TaxpayerType))))
	if t == "" {
		return TaxpayerEmployee
	}
	return t
}

// Validate checks the input against the income tax domain.
func (in IncomeTaxInput) Validate() error {
	if err := validation.First(
		validation.Positive("ingresosAnuales", in.Income),
		validation.NonNegativeInt("dependientes", in.Dependents),
		validation.NonNegative("interesesVivienda", in.MortgageInterest),
		validation.NonNegative("medicinaPrepagada", in.PrepaidMedical),
		validation.NonNegative("aportesVoluntarios", in.VoluntaryContributions),
	); err != nil {
		return err
	}
	if t := in.taxpayer(); t != TaxpayerEmployee && t != TaxpayerIndependent {
		return validation.Invalid("tipoContribuyente", "must be %q or %q, got %q", TaxpayerEmployee, TaxpayerIndependent, in.TaxpayerType)
	}
	return nil
}

// IncomeTax estimates the annual income tax.
func (c *Calculator) IncomeTax(in IncomeTaxInput) (*IncomeTaxResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := c.params

	result := &IncomeTaxResult{Income: in.Income, TaxpayerType: in.taxpayer()}
	healthRate, pensionRate := p.HealthRate, p.PensionRate
	result.ContributionBase = in.Income
	if result.TaxpayerType == TaxpayerIndependent {
		result.ContributionBase = mathutil.ApplyPercentage(in.Income, p.IndependentBaseRate)
		healthRate, pensionRate = p.IndependentHealthRate, p.IndependentPensionRate
	}
	result.Health = mathutil.ApplyPercentage(result.ContributionBase, healthRate)
	result.Pension = mathutil.ApplyPercentage(result.ContributionBase, pensionRate)
	monthlyBase := result.ContributionBase / constants.MonthsPerYear
	result.Solidarity = mathutil.ApplyPercentage(result.ContributionBase, p.SolidarityRate(monthlyBase))
	result.Contributions = result.Health + result.Pension + result.Solidarity

	result.Relief = ComputeRelief(p, ReliefInput{
		Income:                 in.Income,
		Contributions:          result.Contributions,
		Dependents:             in.Dependents,
		MortgageInterest:       in.MortgageInterest,
		PrepaidMedical:         in.PrepaidMedical,
		VoluntaryContributions: in.VoluntaryContributions,
		Months:                 constants.MonthsPerYear,
	})

	result.TaxableUVT = p.PesosToUVT(result.Relief.Taxable)
	result.TaxUVT, result.MarginalRate = p.IncomeTaxTable.Lookup(result.TaxableUVT)
	result.Tax = p.UVTToPesos(result.TaxUVT)
	result.EffectiveRate = mathutil.CalculatePercentage(result.Tax, in.Income)

	c.logger.Debug(fmt.Sprintf("income tax on %.2f: %.2f UVT taxable, %.2f owed",
		in.Income, result.TaxableUVT, result.Tax),
		zap.String("op", "tax.IncomeTax"),
		zap.Int("fiscal_year", p.Year),
		zap.Bool("deductions_scaled", result.Relief.Scaled),
	)

	return result, nil
}

// IncomeTax estimates the annual income tax with the current parameters.
func IncomeTax(in IncomeTaxInput) (*IncomeTaxResult, error) {
	return NewCalculator(nil, legal.Current()).IncomeTax(in)
}
