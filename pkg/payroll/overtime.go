package payroll

import (
	"fmt"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/legal"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
)

// OvertimeInput holds the hours worked under one surcharge category.
type OvertimeInput struct {
	Salary   float64        `json:"salario"`
	Hours    float64        `json:"horas"`
	HourType legal.HourType `json:"tipoHora"`
}

// OvertimeResult is the pay for the hours.
type OvertimeResult struct {
	MonthlyHours   float64        `json:"horasMensuales"`
	HourlyWage     float64        `json:"valorHoraOrdinaria"`
	HourType       legal.HourType `json:"tipoHora"`
	Surcharge      float64        `json:"recargo"` // percent
	SurchargeValue float64        `json:"valorRecargo"`
	HourValue      float64        `json:"valorHora"`
	Hours          float64        `json:"horas"`
	Total          float64        `json:"total"`
}

// Overtime pays (hourly wage + surcharge) for every hour.
func (c *Calculator) Overtime(in OvertimeInput) (*OvertimeResult, error) {
	if err := validation.First(
		validation.Positive("salario", in.Salary),
		validation.Positive("horas", in.Hours),
	); err != nil {
		return nil, err
	}
	hourType := legal.HourType(strings.ToLower(strings.TrimSpace(string(in.HourType))))
	surcharge, err := c.params.Surcharge(hourType)
	if err != nil {
		return nil, validation.Invalid("tipoHora", "%v", err)
	}

	result := &OvertimeResult{
		MonthlyHours: c.params.MonthlyHours,
		HourlyWage:   in.Salary / c.params.MonthlyHours,
		HourType:     hourType,
		Surcharge:    surcharge,
		Hours:        in.Hours,
	}
	result.SurchargeValue = mathutil.ApplyPercentage(result.HourlyWage, surcharge)
	result.HourValue = result.HourlyWage + result.SurchargeValue
	result.Total = result.HourValue * in.Hours

	c.logger.Debug(fmt.Sprintf("%.2f hours of %s: %.2f", in.Hours, hourType, result.Total),
		zap.String("op", "payroll.Overtime"),
	)

	return result, nil
}

// Overtime computes overtime pay with the current parameters.
func Overtime(in OvertimeInput) (*OvertimeResult, error) {
	return defaultCalculator().Overtime(in)
}
