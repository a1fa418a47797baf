package calculator

import (
	"fmt"
	"strconv"

	"github.com/iwvelando/finance-calculators/pkg/format"
	"github.com/iwvelando/finance-calculators/pkg/interest"
	"github.com/iwvelando/finance-calculators/pkg/loans"
	"github.com/iwvelando/finance-calculators/pkg/payroll"
	"github.com/iwvelando/finance-calculators/pkg/tax"
)

// Kind selects how a value is rendered.
type Kind int

// Value kinds.
const (
	Money Kind = iota
	Percent
	Days
	Count
	Text
)

// Field is one labeled line of a report.
type Field struct {
	Label string
	Kind  Kind
	Value float64
	Text  string
}

// Pretty renders the field for people.
func (f Field) Pretty() string {
	switch f.Kind {
	case Money:
		return format.Currency(f.Value)
	case Percent:
		return format.Percent(f.Value)
	case Days:
		return format.Days(f.Value)
	case Count:
		return strconv.FormatFloat(f.Value, 'f', -1, 64)
	default:
		return f.Text
	}
}

// Plain renders the field for machines.
func (f Field) Plain() string {
	switch f.Kind {
	case Money, Percent, Days:
		return format.Plain(f.Value)
	case Count:
		return strconv.FormatFloat(f.Value, 'f', -1, 64)
	default:
		return f.Text
	}
}

// Table is a numeric breakdown, one row per period.
type Table struct {
	Headers []string
	Kinds   []Kind
	Rows    [][]float64
}

// Report is the printable form of a calculation result.
type Report struct {
	Fields []Field
	Table  *Table
}

func money(label string, v float64) Field   { return Field{Label: label, Kind: Money, Value: v} }
func percent(label string, v float64) Field { return Field{Label: label, Kind: Percent, Value: v} }
func days(label string, v float64) Field    { return Field{Label: label, Kind: Days, Value: v} }
func count(label string, v int) Field       { return Field{Label: label, Kind: Count, Value: float64(v)} }
func text(label, v string) Field            { return Field{Label: label, Kind: Text, Text: v} }
func flag(label string, v bool) Field       { return text(label, fmt.Sprintf("%t", v)) }

// Summarize builds the report of a calculation result.
func Summarize(value interface{}) Report {
	switch r := value.(type) {
	case *loans.Result:
		table := &Table{
			Headers: []string{"mes", "cuota", "interes", "capital", "saldo"},
			Kinds:   []Kind{Count, Money, Money, Money, Money},
		}
		for _, p := range r.Schedule {
			table.Rows = append(table.Rows, []float64{float64(p.Month), p.Payment, p.Interest, p.Principal, p.RemainingPrincipal})
		}
		return Report{
			Fields: []Field{
				money("cuotaMensual", r.MonthlyPayment),
				money("totalPagar", r.TotalPaid),
				money("totalIntereses", r.TotalInterest),
			},
			Table: table,
		}
	case *interest.Result:
		return Report{Fields: compoundFields(r), Table: evolutionTable(r)}
	case *interest.GoalResult:
		fields := []Field{
			money("meta", r.Target),
			money("aporteRequerido", r.RequiredContribution),
			flag("metaCubiertaSinAportes", r.CoveredByPrincipal),
		}
		return Report{Fields: append(fields, compoundFields(r.Projection)...), Table: evolutionTable(r.Projection)}
	case *payroll.NetSalaryResult:
		return Report{Fields: []Field{
			money("salarioBruto", r.Gross),
			money("salud", r.Health),
			money("pension", r.Pension),
			percent("tasaSolidaridad", r.SolidarityRate),
			money("fondoSolidaridad", r.Solidarity),
			money("retencionFuente", r.Withholding),
			money("totalDeducciones", r.TotalDeductions),
			money("auxilioTransporte", r.TransportSubsidy),
			money("salarioNeto", r.Net),
		}}
	case *payroll.SeveranceResult:
		return Report{Fields: []Field{
			money("salarioBase", r.WageBase),
			money("auxilioTransporte", r.TransportSubsidy),
			count("diasTrabajados", r.Days),
			money("cesantias", r.Severance),
			money("interesesCesantias", r.Interest),
			money("total", r.Total),
		}}
	case *payroll.ServiceBonusResult:
		return Report{Fields: []Field{
			text("periodo", fmt.Sprintf("%s a %s", r.PeriodStart, r.PeriodEnd)),
			money("salarioBase", r.WageBase),
			money("auxilioTransporte", r.TransportSubsidy),
			count("diasTrabajados", r.Days),
			money("prima", r.Bonus),
		}}
	case *payroll.SettlementResult:
		return Report{Fields: []Field{
			text("motivoRetiro", string(r.Reason)),
			text("tipoContrato", string(r.ContractType)),
			count("diasTrabajados", r.DaysWorked),
			money("salarioBase", r.WageBase),
			count("diasPrima", r.BonusDays),
			money("prima", r.Bonus),
			count("diasCesantias", r.SeveranceDays),
			money("cesantias", r.Severance),
			money("interesesCesantias", r.SeveranceInterest),
			days("diasVacaciones", r.VacationDays),
			money("vacaciones", r.Vacation),
			days("diasIndemnizacion", r.IndemnityDays),
			money("indemnizacion", r.Indemnity),
			flag("indemnizacionPendiente", r.IndemnityPending),
			money("total", r.Total),
		}}
	case *payroll.VacationResult:
		return Report{Fields: []Field{
			count("diasTrabajados", r.DaysWorked),
			days("diasCausados", r.Accrued),
			days("diasTomados", r.Taken),
			days("diasHabiles", r.BusinessDays),
			days("diasCalendario", r.CalendarDays),
			money("salarioDiario", r.DailyWage),
			money("valorVacaciones", r.Value),
		}}
	case *payroll.OvertimeResult:
		return Report{Fields: []Field{
			text("tipoHora", string(r.HourType)),
			money("valorHoraOrdinaria", r.HourlyWage),
			percent("recargo", r.Surcharge),
			money("valorHora", r.HourValue),
			days("horas", r.Hours),
			money("total", r.Total),
		}}
	case *tax.IncomeTaxResult:
		return Report{Fields: []Field{
			money("ingresosAnuales", r.Income),
			money("totalAportes", r.Contributions),
			money("ingresoNeto", r.Relief.NetIncome),
			money("totalDeducciones", r.Relief.Total),
			money("rentaGravable", r.Relief.Taxable),
			days("rentaGravableUVT", r.TaxableUVT),
			money("impuesto", r.Tax),
			percent("tasaEfectiva", r.EffectiveRate),
			percent("tasaMarginal", r.MarginalRate),
		}}
	case *tax.WithholdingResult:
		return Report{Fields: []Field{
			text("tipoRetencion", string(r.Concept)),
			money("valorBruto", r.Gross),
			money("baseMinima", r.MinimumBase),
			flag("aplica", r.Applies),
			percent("tasaAplicada", r.Rate),
			money("retencion", r.Withheld),
			money("netoRecibir", r.Net),
		}}
	default:
		return Report{Fields: []Field{text("resultado", fmt.Sprintf("%v", value))}}
	}
}

func compoundFields(r *interest.Result) []Field {
	return []Field{
		money("capitalInicial", r.Principal),
		money("totalAportes", r.TotalContributed),
		money("interesesGanados", r.InterestEarned),
		money("montoFinal", r.FinalAmount),
		percent("tasaEfectivaAnual", r.EffectiveAnnual),
		percent("tasaPeriodica", r.PeriodicRate),
	}
}

func evolutionTable(r *interest.Result) *Table {
	table := &Table{
		Headers: []string{"anio", "capital", "aportesAcumulados", "interesesAcumulados"},
		Kinds:   []Kind{Count, Money, Money, Money},
	}
	for _, s := range r.Evolution {
		table.Rows = append(table.Rows, []float64{float64(s.Year), s.Balance, s.CumulativeContributed, s.CumulativeInterest})
	}
	return table
}
