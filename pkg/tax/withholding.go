package tax

import (
	"fmt"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/legal"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
)

// WithholdingInput describes a payment subject to withholding at source.
type WithholdingInput struct {
	Gross     float64       `json:"valorBruto"`
	Concept   legal.Concept `json:"tipoRetencion"`
	Declarant bool          `json:"esDeclarante"`
}

// WithholdingResult is the amount withheld from a payment.
type WithholdingResult struct {
	Gross       float64       `json:"valorBruto"`
	Concept     legal.Concept `json:"tipoRetencion"`
	Rate        float64       `json:"tasaAplicada"`
	Withheld    float64       `json:"retencion"`
	Net         float64       `json:"netoRecibir"`
	MinimumBase float64       `json:"baseMinima"`
	Applies     bool          `json:"aplica"`
}

// Withholding applies the flat rate of the concept when the payment reaches
// the concept's minimum base.
func (c *Calculator) Withholding(in WithholdingInput) (*WithholdingResult, error) {
	if err := validation.Positive("valorBruto", in.Gross); err != nil {
		return nil, err
	}
	concept := legal.Concept(strings.ToLower(strings.TrimSpace(string(in.Concept))))
	rates, err := c.params.RetentionFor(concept)
	if err != nil {
		return nil, validation.Invalid("tipoRetencion", "%v", err)
	}

	result := &WithholdingResult{
		Gross:       in.Gross,
		Concept:     concept,
		MinimumBase: c.params.UVTToPesos(rates.MinBaseUVT),
		Net:         in.Gross,
	}
	if in.Gross >= result.MinimumBase {
		result.Applies = true
		result.Rate = rates.Rate(in.Declarant)
		result.Withheld = mathutil.ApplyPercentage(in.Gross, result.Rate)
		result.Net = in.Gross - result.Withheld
	}

	c.logger.Debug(fmt.Sprintf("withholding %s on %.2f: %.2f", concept, in.Gross, result.Withheld),
		zap.String("op", "tax.Withholding"),
		zap.Bool("declarant", in.Declarant),
		zap.Bool("applies", result.Applies),
	)

	return result, nil
}

// Withholding computes withholding at source with the current parameters.
func Withholding(in WithholdingInput) (*WithholdingResult, error) {
	return NewCalculator(nil, legal.Current()).Withholding(in)
}
