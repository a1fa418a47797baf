// Package legal holds the Colombian labor and tax parameters in force for each
// supported fiscal year. Values are read-only: every accessor hands out copies
// so no calculator can mutate another calculator's parameters.
package legal

import (
	"fmt"
	"sort"
)

// DefaultYear is the fiscal year used when none is configured.
const DefaultYear = 2025

// Parameters groups the statutory values a calculation depends on.
type Parameters struct {
	Year int `json:"year" yaml:"year"`

	// Wages and subsidies, in pesos.
	MinimumWage              float64 `json:"minimumWage" yaml:"minimumWage"`
	TransportSubsidy         float64 `json:"transportSubsidy" yaml:"transportSubsidy"`
	TransportCeilingMultiple float64 `json:"transportCeilingMultiple" yaml:"transportCeilingMultiple"`

	// UVT is the tax value unit in pesos.
	UVT float64 `json:"uvt" yaml:"uvt"`

	// MonthlyHours divides a monthly wage into an hourly wage.
	MonthlyHours float64 `json:"monthlyHours" yaml:"monthlyHours"`

	// Percentages.
	SeveranceInterestRate  float64 `json:"severanceInterestRate" yaml:"severanceInterestRate"`
	HealthRate             float64 `json:"healthRate" yaml:"healthRate"`
	PensionRate            float64 `json:"pensionRate" yaml:"pensionRate"`
	IndependentBaseRate    float64 `json:"independentBaseRate" yaml:"independentBaseRate"`
	IndependentHealthRate  float64 `json:"independentHealthRate" yaml:"independentHealthRate"`
	IndependentPensionRate float64 `json:"independentPensionRate" yaml:"independentPensionRate"`

	// Solidarity pension fund, thresholds as multiples of the minimum wage.
	SolidarityLowMultiple  float64 `json:"solidarityLowMultiple" yaml:"solidarityLowMultiple"`
	SolidarityLowRate      float64 `json:"solidarityLowRate" yaml:"solidarityLowRate"`
	SolidarityHighMultiple float64 `json:"solidarityHighMultiple" yaml:"solidarityHighMultiple"`
	SolidarityHighRate     float64 `json:"solidarityHighRate" yaml:"solidarityHighRate"`

	// Vacation accrual.
	VacationDaysPerYear    float64 `json:"vacationDaysPerYear" yaml:"vacationDaysPerYear"`
	VacationCalendarFactor float64 `json:"vacationCalendarFactor" yaml:"vacationCalendarFactor"`

	// Indemnity for unjustified dismissal, in days of wage.
	IndemnityFirstYearDays     float64 `json:"indemnityFirstYearDays" yaml:"indemnityFirstYearDays"`
	IndemnityExtraYearDays     float64 `json:"indemnityExtraYearDays" yaml:"indemnityExtraYearDays"`
	IndemnityHighWageExtraDays float64 `json:"indemnityHighWageExtraDays" yaml:"indemnityHighWageExtraDays"`
	IndemnityHighWageMultiple  float64 `json:"indemnityHighWageMultiple" yaml:"indemnityHighWageMultiple"`

	Deductions DeductionCaps `json:"deductions" yaml:"deductions"`

	WithholdingTable Table                     `json:"withholdingTable" yaml:"withholdingTable"`
	IncomeTaxTable   Table                     `json:"incomeTaxTable" yaml:"incomeTaxTable"`
	Surcharges       map[HourType]float64      `json:"surcharges" yaml:"surcharges"`
	Retention        map[Concept]RetentionRate `json:"retention" yaml:"retention"`
}

// DeductionCaps limits the deductions and exemptions of the income tax cleanup.
// UVT caps are monthly unless noted.
type DeductionCaps struct {
	DependentIncomeRate float64 `json:"dependentIncomeRate" yaml:"dependentIncomeRate"`
	DependentUVT        float64 `json:"dependentUvt" yaml:"dependentUvt"`
	MortgageInterestUVT float64 `json:"mortgageInterestUvt" yaml:"mortgageInterestUvt"`
	PrepaidMedicalUVT   float64 `json:"prepaidMedicalUvt" yaml:"prepaidMedicalUvt"`
	VoluntaryRate       float64 `json:"voluntaryRate" yaml:"voluntaryRate"`
	VoluntaryAnnualUVT  float64 `json:"voluntaryAnnualUvt" yaml:"voluntaryAnnualUvt"`
	ExemptRate          float64 `json:"exemptRate" yaml:"exemptRate"`
	ExemptUVT           float64 `json:"exemptUvt" yaml:"exemptUvt"`
	JointIncomeRate     float64 `json:"jointIncomeRate" yaml:"jointIncomeRate"`
	JointAnnualUVT      float64 `json:"jointAnnualUvt" yaml:"jointAnnualUvt"`
}

// Overrides replaces scalar parameters, typically from configuration.
type Overrides struct {
	MinimumWage      *float64 `json:"minimumWage,omitempty" yaml:"minimumWage,omitempty" mapstructure:"minimumWage"`
	TransportSubsidy *float64 `json:"transportSubsidy,omitempty" yaml:"transportSubsidy,omitempty" mapstructure:"transportSubsidy"`
	UVT              *float64 `json:"uvt,omitempty" yaml:"uvt,omitempty" mapstructure:"uvt"`
	MonthlyHours     *float64 `json:"monthlyHours,omitempty" yaml:"monthlyHours,omitempty" mapstructure:"monthlyHours"`
}

// Empty reports whether no override is set.
func (o Overrides) Empty() bool {
	return o.MinimumWage == nil && o.TransportSubsidy == nil && o.UVT == nil && o.MonthlyHours == nil
}

var byYear = map[int]Parameters{
	2024: build(2024, 1_300_000, 162_000, 47_065, 230),
	2025: build(2025, 1_423_500, 200_000, 49_799, 220),
}

// build fills the values that did not change between the supported years.
func build(year int, minimumWage, transportSubsidy, uvt, monthlyHours float64) Parameters {
	return Parameters{
		Year:                       year,
		MinimumWage:                minimumWage,
		TransportSubsidy:           transportSubsidy,
		TransportCeilingMultiple:   2,
		UVT:                        uvt,
		MonthlyHours:               monthlyHours,
		SeveranceInterestRate:      12,
		HealthRate:                 4,
		PensionRate:                4,
		IndependentBaseRate:        40,
		IndependentHealthRate:      12.5,
		IndependentPensionRate:     16,
		SolidarityLowMultiple:      4,
		SolidarityLowRate:          1,
		SolidarityHighMultiple:     16,
		SolidarityHighRate:         2,
		VacationDaysPerYear:        15,
		VacationCalendarFactor:     1.4,
		IndemnityFirstYearDays:     30,
		IndemnityExtraYearDays:     20,
		IndemnityHighWageExtraDays: 15,
		IndemnityHighWageMultiple:  10,
		Deductions: DeductionCaps{
			DependentIncomeRate: 10,
			DependentUVT:        32,
			MortgageInterestUVT: 100,
			PrepaidMedicalUVT:   16,
			VoluntaryRate:       30,
			VoluntaryAnnualUVT:  3800,
			ExemptRate:          25,
			ExemptUVT:           240,
			JointIncomeRate:     40,
			JointAnnualUVT:      5040,
		},
		WithholdingTable: withholdingTable,
		IncomeTaxTable:   incomeTaxTable,
		Surcharges:       surcharges,
		Retention:        retention,
	}
}

// ForYear returns the parameters of a fiscal year.
func ForYear(year int) (Parameters, error) {
	p, ok := byYear[year]
	if !ok {
		return Parameters{}, fmt.Errorf("no legal parameters for fiscal year %d (supported: %v)", year, Years())
	}
	return p.clone(), nil
}

// Current returns the parameters of DefaultYear.
func Current() Parameters {
	p, _ := ForYear(DefaultYear)
	return p
}

// Years lists the supported fiscal years in ascending order.
func Years() []int {
	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// WithOverrides returns a copy of p with the set overrides applied.
func (p Parameters) WithOverrides(o Overrides) (Parameters, error) {
	out := p.clone()
	for _, v := range []struct {
		name  string
		value *float64
		dst   *float64
	}{
		{"minimumWage", o.MinimumWage, &out.MinimumWage},
		{"transportSubsidy", o.TransportSubsidy, &out.TransportSubsidy},
		{"uvt", o.UVT, &out.UVT},
		{"monthlyHours", o.MonthlyHours, &out.MonthlyHours},
	} {
		if v.value == nil {
			continue
		}
		if *v.value <= 0 {
			return Parameters{}, fmt.Errorf("parameter override %s must be positive, got %v", v.name, *v.value)
		}
		*v.dst = *v.value
	}
	return out, nil
}

// TransportCeiling is the highest wage still entitled to the transport subsidy.
func (p Parameters) TransportCeiling() float64 {
	return p.MinimumWage * p.TransportCeilingMultiple
}

// UVTToPesos converts an amount expressed in UVT.
func (p Parameters) UVTToPesos(uvt float64) float64 {
	return uvt * p.UVT
}

// PesosToUVT converts an amount in pesos to UVT.
func (p Parameters) PesosToUVT(pesos float64) float64 {
	if p.UVT == 0 {
		return 0
	}
	return pesos / p.UVT
}

func (p Parameters) clone() Parameters {
	out := p
	out.WithholdingTable = append(Table(nil), p.WithholdingTable...)
	out.IncomeTaxTable = append(Table(nil), p.IncomeTaxTable...)
	out.Surcharges = make(map[HourType]float64, len(p.Surcharges))
	for k, v := range p.Surcharges {
		out.Surcharges[k] = v
	}
	out.Retention = make(map[Concept]RetentionRate, len(p.Retention))
	for k, v := range p.Retention {
		out.Retention[k] = v
	}
	return out
}

// SolidarityRate is the solidarity pension fund percentage owed on a monthly
// contribution base.
func (p Parameters) SolidarityRate(monthlyBase float64) float64 {
	switch {
	case monthlyBase >= p.MinimumWage*p.SolidarityHighMultiple:
		return p.SolidarityHighRate
	case monthlyBase >= p.MinimumWage*p.SolidarityLowMultiple:
		return p.SolidarityLowRate
	default:
		return 0
	}
}
