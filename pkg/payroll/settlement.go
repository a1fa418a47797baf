package payroll

import (
	"fmt"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
)

// TerminationReason is why the labor relationship ended.
type TerminationReason string

// Termination reasons.
const (
	ReasonResignation          TerminationReason = "renuncia"
	ReasonJustifiedDismissal   TerminationReason = "despido_justa_causa"
	ReasonUnjustifiedDismissal TerminationReason = "despido_sin_justa_causa"
	ReasonContractExpiry       TerminationReason = "terminacion_contrato"
)

// ContractType is the kind of labor contract.
type ContractType string

// Contract types.
const (
	ContractIndefinite ContractType = "indefinido"
	ContractFixedTerm  ContractType = "fijo"
	ContractWork       ContractType = "obra"
)

// minimumWorkContractIndemnityDays is the floor of the indemnity of a contract
// for the duration of a work.
const minimumWorkContractIndemnityDays = 15

// SettlementInput describes the end of a labor relationship.
type SettlementInput struct {
	Salary           float64           `json:"salario"`
	IncludeTransport bool              `json:"incluyeTransporte"`
	StartDate        string            `json:"fechaIngreso"`
	EndDate          string            `json:"fechaRetiro"`
	Reason           TerminationReason `json:"motivoRetiro"`
	ContractType     ContractType      `json:"tipoContrato"`
	ContractEndDate  string            `json:"fechaFinContrato"`
	VacationTaken    float64           `json:"diasVacacionesTomados"`
}

// SettlementResult itemizes everything owed at termination.
type SettlementResult struct {
	Reason            TerminationReason `json:"motivoRetiro"`
	ContractType      ContractType      `json:"tipoContrato"`
	DaysWorked        int               `json:"diasTrabajados"`
	WageBase          float64           `json:"salarioBase"`
	TransportSubsidy  float64           `json:"auxilioTransporte"`
	BonusDays         int               `json:"diasPrima"`
	Bonus             float64           `json:"prima"`
	SeveranceDays     int               `json:"diasCesantias"`
	Severance         float64           `json:"cesantias"`
	SeveranceInterest float64           `json:"interesesCesantias"`
	VacationDays      float64           `json:"diasVacaciones"`
	Vacation          float64           `json:"vacaciones"`
	IndemnityDays     float64           `json:"diasIndemnizacion"`
	Indemnity         float64           `json:"indemnizacion"`
	IndemnityPending  bool              `json:"indemnizacionPendiente"`
	Total             float64           `json:"total"`
}

func (in SettlementInput) normalized() SettlementInput {
	out := in
	out.Reason = TerminationReason(strings.ToLower(strings.TrimSpace(string(in.Reason))))
	if out.Reason == "" {
		out.Reason = ReasonResignation
	}
	out.ContractType = ContractType(strings.ToLower(strings.TrimSpace(string(in.ContractType))))
	if out.ContractType == "" {
		out.ContractType = ContractIndefinite
	}
	return out
}

func (in SettlementInput) validateCategories() error {
	switch in.Reason {
	case ReasonResignation, ReasonJustifiedDismissal, ReasonUnjustifiedDismissal, ReasonContractExpiry:
	default:
		return validation.Invalid("motivoRetiro", "unknown termination reason %q", in.Reason)
	}
	switch in.ContractType {
	case ContractIndefinite, ContractFixedTerm, ContractWork:
	default:
		return validation.Invalid("tipoContrato", "unknown contract type %q", in.ContractType)
	}
	return nil
}

// Settlement composes the final settlement: pending service bonus, severance
// and its interest, unused vacation and, for an unjustified dismissal, the
// statutory indemnity.
func (c *Calculator) Settlement(in SettlementInput) (*SettlementResult, error) {
	in = in.normalized()
	if err := validation.First(
		validation.Positive("salario", in.Salary),
		validation.NonNegative("diasVacacionesTomados", in.VacationTaken),
		in.validateCategories(),
	); err != nil {
		return nil, err
	}
	start, err := validation.RequiredDate("fechaIngreso", in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := validation.RequiredDate("fechaRetiro", in.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, validation.Invalid("fechaRetiro", "must not be before fechaIngreso")
	}

	result := &SettlementResult{
		Reason:       in.Reason,
		ContractType: in.ContractType,
		DaysWorked:   datetime.DaysBetween(start, end),
	}
	result.WageBase, result.TransportSubsidy = c.wageBase(in.Salary, in.IncludeTransport)

	result.BonusDays = semesterDays(start, end)
	result.Bonus = mathutil.Prorate(result.WageBase, result.BonusDays, constants.DaysPerCommercialSemester)

	result.SeveranceDays = countDays(datetime.Later(start, datetime.YearStart(end)), end, constants.DaysPerCommercialYear)
	result.Severance = mathutil.Prorate(result.WageBase, result.SeveranceDays, constants.DaysPerCommercialYear)
	result.SeveranceInterest = c.severanceInterest(result.Severance, result.SeveranceDays)

	vacation := c.vacation(in.Salary, result.DaysWorked, in.VacationTaken)
	result.VacationDays = vacation.BusinessDays
	result.Vacation = vacation.Value

	if in.Reason == ReasonUnjustifiedDismissal {
		if err := c.indemnity(in, result); err != nil {
			return nil, err
		}
	}

	result.Total = result.Bonus + result.Severance + result.SeveranceInterest + result.Vacation + result.Indemnity

	c.logger.Debug(fmt.Sprintf("settlement after %d days (%s, %s): %.2f", result.DaysWorked, in.Reason, in.ContractType, result.Total),
		zap.String("op", "payroll.Settlement"),
		zap.Float64("indemnity", result.Indemnity),
		zap.Bool("indemnity_pending", result.IndemnityPending),
	)

	return result, nil
}

// indemnity fills the indemnity for an unjustified dismissal.
//
// Indefinite contracts pay 30 days for the first year plus 20 days (15 for
// wages of at least 10 minimum wages) per additional year of calendar tenure,
// pro rata for the fraction. Fixed-term contracts pay the wage of the days left until the agreed
// end; without that date the amount cannot be known and is flagged as pending.
// Work contracts pay the days left until the estimated completion, never less
// than 15 days.
func (c *Calculator) indemnity(in SettlementInput, result *SettlementResult) error {
	p := c.params
	hired, _ := validation.RequiredDate("fechaIngreso", in.StartDate)
	retirement, _ := validation.RequiredDate("fechaRetiro", in.EndDate)
	contractEnd, hasContractEnd, err := validation.OptionalDate("fechaFinContrato", in.ContractEndDate)
	if err != nil {
		return err
	}

	var days float64
	switch in.ContractType {
	case ContractIndefinite:
		days = p.IndemnityFirstYearDays
		if years := datetime.YearsBetween(hired, retirement); years > 1 {
			perYear := p.IndemnityExtraYearDays
			if in.Salary >= p.MinimumWage*p.IndemnityHighWageMultiple {
				perYear = p.IndemnityHighWageExtraDays
			}
			days += perYear * (years - 1)
		}
	case ContractFixedTerm:
		if !hasContractEnd {
			result.IndemnityPending = true
			return nil
		}
		if contractEnd.Before(retirement) {
			return validation.Invalid("fechaFinContrato", "must not be before fechaRetiro")
		}
		days = float64(datetime.DaysBetween(retirement, contractEnd))
	case ContractWork:
		if hasContractEnd {
			days = float64(datetime.DaysBetween(retirement, contractEnd))
		}
		days = mathutil.Max(days, minimumWorkContractIndemnityDays)
	}

	result.IndemnityDays = days
	result.Indemnity = dailyWage(in.Salary) * days
	return nil
}

// Settlement computes the final settlement with the current parameters.
func Settlement(in SettlementInput) (*SettlementResult, error) {
	return defaultCalculator().Settlement(in)
}
