// Package calculator maps calculation type names to the calculators and
// decodes loosely typed parameters, as found in configuration files and API
// requests, into their inputs.
package calculator

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/interest"
	"github.com/iwvelando/finance-calculators/pkg/legal"
	"github.com/iwvelando/finance-calculators/pkg/loans"
	"github.com/iwvelando/finance-calculators/pkg/payroll"
	"github.com/iwvelando/finance-calculators/pkg/tax"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// ErrUnknownCalculation is returned for a type name no calculator answers to.
var ErrUnknownCalculation = errors.New("unknown calculation type")

// Type names a calculation.
type Type string

// Calculation types.
const (
	TypeLoan         Type = "prestamo"
	TypeCompound     Type = "interes-compuesto"
	TypeSavingsGoal  Type = "meta-ahorro"
	TypeNetSalary    Type = "salario-neto"
	TypeSeverance    Type = "cesantias"
	TypeServiceBonus Type = "prima"
	TypeSettlement   Type = "liquidacion"
	TypeVacation     Type = "vacaciones"
	TypeOvertime     Type = "horas-extras"
	TypeIncomeTax    Type = "impuesto-renta"
	TypeWithholding  Type = "retencion-fuente"
)

var descriptions = map[Type]string{
	TypeLoan:         "Fixed-installment loan amortization schedule",
	TypeCompound:     "Compound interest projection with periodic contributions",
	TypeSavingsGoal:  "Periodic contribution required to reach a savings goal",
	TypeNetSalary:    "Monthly net salary after contributions and withholding",
	TypeSeverance:    "Severance fund accrual (cesantías) and its interest",
	TypeServiceBonus: "Semester service bonus (prima de servicios)",
	TypeSettlement:   "Final settlement at termination (liquidación)",
	TypeVacation:     "Accrued vacation days and their value",
	TypeOvertime:     "Overtime and surcharge pay",
	TypeIncomeTax:    "Annual income tax of individuals",
	TypeWithholding:  "Withholding at source by payment concept",
}

// Info describes a calculation type.
type Info struct {
	Type        Type   `json:"type"`
	Description string `json:"description"`
}

// Types lists the calculation types sorted by name.
func Types() []Info {
	infos := make([]Info, 0, len(descriptions))
	for t, d := range descriptions {
		infos = append(infos, Info{Type: t, Description: d})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Type < infos[j].Type })
	return infos
}

// Known reports whether a calculation type exists.
func Known(kind string) bool {
	_, ok := descriptions[normalize(kind)]
	return ok
}

func normalize(kind string) Type {
	return Type(strings.ToLower(strings.TrimSpace(kind)))
}

// Engine runs calculations with the parameters of one fiscal year.
type Engine struct {
	logger   *zap.Logger
	params   legal.Parameters
	loans    *loans.AmortizationScheduleGenerator
	interest *interest.Calculator
	payroll  *payroll.Calculator
	tax      *tax.Calculator
}

// NewEngine creates an engine whose calculators share the logger.
func NewEngine(logger *zap.Logger, params legal.Parameters) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger:   logger,
		params:   params,
		loans:    loans.NewAmortizationScheduleGenerator(logger),
		interest: interest.NewCalculator(logger),
		payroll:  payroll.NewCalculator(logger, params),
		tax:      tax.NewCalculator(logger, params),
	}
}

// Parameters returns the legal parameters the engine computes with.
func (e *Engine) Parameters() legal.Parameters {
	return e.params
}

// Calculate decodes params into the input of kind and runs its calculator.
// Malformed or unknown params are reported as invalid input.
func (e *Engine) Calculate(kind string, params map[string]interface{}) (interface{}, error) {
	switch normalize(kind) {
	case TypeLoan:
		var in loans.Input
		if err := decode(params, &in); err != nil {
			return nil, err
		}
		return unwrap(e.loans.GenerateSchedule(in))
	case TypeCompound:
		var in interest.Input
		if err := decode(params, &in); err != nil {
			return nil, err
		}
		return unwrap(e.interest.Compound(in))
	case TypeSavingsGoal:
		var in interest.GoalInput
		if err := decode(params, &in); err != nil {
			return nil, err
		}
		return unwrap(e.interest.SavingsGoal(in))
	case TypeNetSalary:
		var in payroll.NetSalaryInput
		if err := decode(params, &in); err != nil {
			return nil, err
		}
		return unwrap(e.payroll.NetSalary(in))
	case TypeSeverance:
		var in payroll.SeveranceInput
		if err := decode(params, &in); err != nil {
			return nil, err
		}
		return unwrap(e.payroll.Severance(in))
	case TypeServiceBonus:
		var in payroll.ServiceBonusInput
		if err := decode(params, &in); err != nil {
			return nil, err
		}
		return unwrap(e.payroll.ServiceBonus(in))
	case TypeSettlement:
		var in payroll.SettlementInput
		if err := decode(params, &in); err != nil {
			return nil, err
		}
		return unwrap(e.payroll.Settlement(in))
	case TypeVacation:
		var in payroll.VacationInput
		if err := decode(params, &in); err != nil {
			return nil, err
		}
		return unwrap(e.payroll.Vacation(in))
	case TypeOvertime:
		var in payroll.OvertimeInput
		if err := decode(params, &in); err != nil {
			return nil, err
		}
		return unwrap(e.payroll.Overtime(in))
	case TypeIncomeTax:
		var in tax.IncomeTaxInput
		if err := decode(params, &in); err != nil {
			return nil, err
		}
		return unwrap(e.tax.IncomeTax(in))
	case TypeWithholding:
		var in tax.WithholdingInput
		if err := decode(params, &in); err != nil {
			return nil, err
		}
		return unwrap(e.tax.Withholding(in))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCalculation, kind)
	}
}

// Result is a named calculation outcome ready to be printed.
type Result struct {
	Name   string
	Type   Type
	Value  interface{}
	Report Report
}

// Run calculates and builds the printable report.
func (e *Engine) Run(name, kind string, params map[string]interface{}) (*Result, error) {
	value, err := e.Calculate(kind, params)
	if err != nil {
		e.logger.Warn(fmt.Sprintf("calculation %s failed", name),
			zap.String("op", "calculator.Run"),
			zap.String("type", kind),
			zap.Error(err),
		)
		return nil, fmt.Errorf("calculation %s: %w", name, err)
	}
	e.logger.Info(fmt.Sprintf("calculation %s completed", name),
		zap.String("op", "calculator.Run"),
		zap.String("type", kind),
	)
	return &Result{Name: name, Type: normalize(kind), Value: value, Report: Summarize(value)}, nil
}

// unwrap keeps a failed calculation from producing a non-nil interface
// holding a nil pointer.
func unwrap[T any](value *T, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	return value, nil
}

// decode fills an input from loosely typed params. Keys match the JSON names
// case-insensitively, numbers may arrive as strings, and unknown keys are
// rejected so typos do not silently fall back to defaults.
func decode(params map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(wholeNumbers),
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Squash:           true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create params decoder: %w", err)
	}
	if err := decoder.Decode(params); err != nil {
		return validation.Invalid("params", "%v", err)
	}
	return nil
}

// wholeNumbers rejects fractional numbers headed for integer fields, which
// mapstructure would otherwise truncate.
func wholeNumbers(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	var value float64
	switch v := data.(type) {
	case float64:
		value = v
	case float32:
		value = float64(v)
	default:
		return data, nil
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) {
		return nil, fmt.Errorf("expected a whole number, got %v", value)
	}
	return data, nil
}
