// Package loans provides fixed-installment (French system) loan utilities.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
)

// MaxTermMonths bounds the schedule length accepted from user input.
const MaxTermMonths = 1200

// Input holds the loan parameters entered by the user.
type Input struct {
	Amount     float64 `json:"monto"`
	AnnualRate float64 `json:"tasaAnual"` // nominal annual, percent
	TermMonths int     `json:"plazoMeses"`
}

// Payment holds the values for a given payment.
type Payment struct {
	Month              int     `json:"mes"`
	Payment            float64 `json:"cuota"`
	Interest           float64 `json:"interes"`
	Principal          float64 `json:"capital"`
	RemainingPrincipal float64 `json:"saldo"`
}

// Result is the complete amortization of a loan.
type Result struct {
	MonthlyPayment float64   `json:"cuotaMensual"`
	TotalPaid      float64   `json:"totalPagar"`
	TotalInterest  float64   `json:"totalIntereses"`
	Schedule       []Payment `json:"tabla"`
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(principal, annualInterestRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	periodicInterestRate := MonthlyRate(annualInterestRate)
	power := math.Pow((1.00 + periodicInterestRate), float64(termMonths))
	if power == 1 {
		// Rate too small to register in float64
		return principal / float64(termMonths)
	}
	discountFactor := (power - 1.00) / power
	return principal * periodicInterestRate / discountFactor
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * MonthlyRate(annualInterestRate)
}

// MonthlyRate converts a nominal annual percentage into a monthly fraction.
func MonthlyRate(annualInterestRate float64) float64 {
	return annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// Validate checks the input against the loan domain.
func (in Input) Validate() error {
	return validation.First(
		validation.Positive("monto", in.Amount),
		validation.NonNegative("tasaAnual", in.AnnualRate),
		validation.PositiveInt("plazoMeses", in.TermMonths),
		maxTerm(in.TermMonths),
	)
}

func maxTerm(months int) error {
	if months > MaxTermMonths {
		return validation.Invalid("plazoMeses", "must be at most %d, got %d", MaxTermMonths, months)
	}
	return nil
}

// AmortizationScheduleGenerator provides utilities for generating loan amortization schedules
type AmortizationScheduleGenerator struct {
	logger *zap.Logger
}

// NewAmortizationScheduleGenerator creates a new generator instance
func NewAmortizationScheduleGenerator(logger *zap.Logger) *AmortizationScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationScheduleGenerator{logger: logger}
}

// GenerateSchedule creates a complete amortization schedule for a loan
func (g *AmortizationScheduleGenerator) GenerateSchedule(in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	monthlyPayment := CalculateMonthlyPayment(in.Amount, in.AnnualRate, in.TermMonths)
	schedule := make([]Payment, 0, in.TermMonths)
	balance := in.Amount

	for month := 1; month <= in.TermMonths; month++ {
		var current Payment
		current.Month = month
		current.Payment = monthlyPayment
		current.Interest = CalculateInterestPayment(balance, in.AnnualRate)
		current.Principal = monthlyPayment - current.Interest

		balance = mathutil.ClampZero(balance - current.Principal)
		if month == in.TermMonths && mathutil.IsZero(balance) {
			// We will get machine error otherwise so just set to 0.
			balance = 0
		}
		current.RemainingPrincipal = balance
		schedule = append(schedule, current)
	}

	totalPaid := monthlyPayment * float64(in.TermMonths)
	result := &Result{
		MonthlyPayment: monthlyPayment,
		TotalPaid:      totalPaid,
		TotalInterest:  mathutil.ClampZero(totalPaid - in.Amount),
		Schedule:       schedule,
	}

	g.logger.Debug(fmt.Sprintf("amortized %.2f over %d months at %.4f%%: installment %.2f",
		in.Amount, in.TermMonths, in.AnnualRate, monthlyPayment),
		zap.String("op", "loans.GenerateSchedule"),
		zap.Float64("total_interest", result.TotalInterest),
	)

	return result, nil
}

// Calculate amortizes a loan without logging.
func Calculate(in Input) (*Result, error) {
	return NewAmortizationScheduleGenerator(nil).GenerateSchedule(in)
}
