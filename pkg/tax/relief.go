// Package tax estimates the annual income tax of individuals and the
// withholding at source applied to payments, both on top of the deduction and
// exemption pipeline shared with payroll withholding.
package tax

import (
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/legal"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

// ReliefInput feeds the deduction pipeline for a period of Months months
// (12 for the annual return, 1 for monthly payroll withholding).
type ReliefInput struct {
	Income                 float64
	Contributions          float64 // mandatory contributions, not taxed
	Dependents             int
	MortgageInterest       float64
	PrepaidMedical         float64
	VoluntaryContributions float64
	Months                 float64
}

// Relief is the outcome of the deduction pipeline, in pesos of the period.
type Relief struct {
	NetIncome        float64 `json:"ingresoNeto"`
	Dependents       float64 `json:"deduccionDependientes"`
	MortgageInterest float64 `json:"deduccionIntereses"`
	PrepaidMedical   float64 `json:"deduccionMedicina"`
	Voluntary        float64 `json:"aportesVoluntarios"`
	Exempt           float64 `json:"rentaExenta"`
	Total            float64 `json:"totalDeducciones"`
	Cap              float64 `json:"limiteDeducciones"`
	Scaled           bool    `json:"deduccionesAjustadas"`
	Taxable          float64 `json:"rentaGravable"`
}

// ComputeRelief caps every itemized deduction, applies the 25% exemption on
// what remains and scales the lot down proportionally when it exceeds the
// joint limit.
func ComputeRelief(p legal.Parameters, in ReliefInput) Relief {
	caps := p.Deductions
	months := in.Months
	if months <= 0 {
		months = constants.MonthsPerYear
	}
	income := mathutil.ClampZero(in.Income)

	var r Relief
	r.NetIncome = mathutil.ClampZero(income - in.Contributions)

	if in.Dependents > 0 {
		r.Dependents = mathutil.Min(
			mathutil.ApplyPercentage(income, caps.DependentIncomeRate),
			p.UVTToPesos(caps.DependentUVT)*months*float64(in.Dependents),
		)
	}
	r.MortgageInterest = mathutil.Min(mathutil.ClampZero(in.MortgageInterest), p.UVTToPesos(caps.MortgageInterestUVT)*months)
	r.PrepaidMedical = mathutil.Min(mathutil.ClampZero(in.PrepaidMedical), p.UVTToPesos(caps.PrepaidMedicalUVT)*months)
	r.Voluntary = mathutil.Min(
		mathutil.ClampZero(in.VoluntaryContributions),
		mathutil.Min(
			mathutil.ApplyPercentage(income, caps.VoluntaryRate),
			p.UVTToPesos(caps.VoluntaryAnnualUVT)*months/constants.MonthsPerYear,
		),
	)

	deductions := r.Dependents + r.MortgageInterest + r.PrepaidMedical + r.Voluntary
	r.Exempt = mathutil.Min(
		mathutil.ApplyPercentage(mathutil.ClampZero(r.NetIncome-deductions), caps.ExemptRate),
		p.UVTToPesos(caps.ExemptUVT)*months,
	)

	r.Cap = mathutil.Min(
		mathutil.ApplyPercentage(income, caps.JointIncomeRate),
		p.UVTToPesos(caps.JointAnnualUVT)*months/constants.MonthsPerYear,
	)
	r.Total = deductions + r.Exempt
	if r.Total > r.Cap {
		factor := 0.0
		if r.Total > 0 {
			factor = r.Cap / r.Total
		}
		r.Dependents *= factor
		r.MortgageInterest *= factor
		r.PrepaidMedical *= factor
		r.Voluntary *= factor
		r.Exempt *= factor
		r.Total = r.Cap
		r.Scaled = true
	}

	r.Taxable = mathutil.ClampZero(r.NetIncome - r.Total)
	return r
}

// MonthlyWithholding runs the pipeline over a single month and looks the
// taxable amount up in the monthly labor withholding table.
func MonthlyWithholding(p legal.Parameters, in ReliefInput) (float64, Relief) {
	in.Months = 1
	relief := ComputeRelief(p, in)
	taxUVT, _ := p.WithholdingTable.Lookup(p.PesosToUVT(relief.Taxable))
	return p.UVTToPesos(taxUVT), relief
}
