package interest

import (
	"fmt"

	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
)

// GoalInput describes a savings goal: the amount to reach plus the projection
// parameters. Contribution is ignored; it is what gets solved.
type GoalInput struct {
	Target float64 `json:"meta"`
	Input
}

// GoalResult reports the periodic contribution needed to reach a target.
type GoalResult struct {
	Target               float64 `json:"meta"`
	RequiredContribution float64 `json:"aporteRequerido"`
	CoveredByPrincipal   bool    `json:"metaCubiertaSinAportes"`
	Projection           *Result `json:"proyeccion"`
}

// SavingsGoal solves for the contribution that makes the projected final
// amount equal the target. The final amount is linear in the contribution, so
// two projections (without and with a unit contribution) give the exact answer.
func (c *Calculator) SavingsGoal(in GoalInput) (*GoalResult, error) {
	if err := validation.Positive("meta", in.Target); err != nil {
		return nil, err
	}

	base := in.Input
	if base.normalized().ContributionFrequency == ContributionNone {
		base.ContributionFrequency = ContributionMonthly
	}

	base.Contribution = 0
	withoutContributions, err := c.Compound(base)
	if err != nil {
		return nil, err
	}

	result := &GoalResult{Target: in.Target}
	if withoutContributions.FinalAmount >= in.Target {
		result.CoveredByPrincipal = true
		result.Projection = withoutContributions
		return result, nil
	}

	base.Contribution = 1
	unit, err := c.Compound(base)
	if err != nil {
		return nil, err
	}
	perUnit := unit.FinalAmount - withoutContributions.FinalAmount
	if perUnit <= 0 {
		return nil, validation.Invalid("frecuenciaAporte", "contributions do not reach the projection horizon")
	}

	base.Contribution = (in.Target - withoutContributions.FinalAmount) / perUnit
	projection, err := c.Compound(base)
	if err != nil {
		return nil, err
	}
	result.RequiredContribution = base.Contribution
	result.Projection = projection

	c.logger.Debug(fmt.Sprintf("savings goal %.2f requires %.2f per contribution", in.Target, base.Contribution),
		zap.String("op", "interest.SavingsGoal"),
		zap.String("frequency", string(base.normalized().ContributionFrequency)),
	)

	return result, nil
}

// SavingsGoal solves a savings goal without logging.
func SavingsGoal(in GoalInput) (*GoalResult, error) {
	return NewCalculator(nil).SavingsGoal(in)
}
