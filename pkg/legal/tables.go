package legal

import (
	"fmt"
	"sort"
	"strings"
)

// Bracket is one row of a progressive table expressed in UVT. Income above
// FromUVT and up to ToUVT pays Rate percent on the excess over FromUVT plus
// BaseUVT. A zero ToUVT marks the open-ended top bracket.
type Bracket struct {
	FromUVT float64 `json:"fromUvt" yaml:"fromUvt"`
	ToUVT   float64 `json:"toUvt,omitempty" yaml:"toUvt,omitempty"`
	Rate    float64 `json:"rate" yaml:"rate"`
	BaseUVT float64 `json:"baseUvt" yaml:"baseUvt"`
}

// Table is a progressive table ordered by FromUVT.
type Table []Bracket

// Lookup returns the tax in UVT owed on an amount in UVT and the marginal rate
// of the bracket it falls in.
func (t Table) Lookup(uvt float64) (taxUVT, marginalRate float64) {
	if len(t) == 0 || uvt <= 0 {
		return 0, 0
	}
	for _, b := range t {
		if uvt > b.FromUVT && (b.ToUVT == 0 || uvt <= b.ToUVT) {
			return (uvt-b.FromUVT)*b.Rate/100 + b.BaseUVT, b.Rate
		}
	}
	return 0, 0
}

// Art. 383 E.T., monthly labor income withholding.
var withholdingTable = Table{
	{FromUVT: 0, ToUVT: 95, Rate: 0, BaseUVT: 0},
	{FromUVT: 95, ToUVT: 150, Rate: 19, BaseUVT: 0},
	{FromUVT: 150, ToUVT: 360, Rate: 28, BaseUVT: 10},
	{FromUVT: 360, ToUVT: 640, Rate: 33, BaseUVT: 69},
	{FromUVT: 640, ToUVT: 945, Rate: 35, BaseUVT: 162},
	{FromUVT: 945, ToUVT: 2300, Rate: 37, BaseUVT: 268},
	{FromUVT: 2300, Rate: 39, BaseUVT: 770},
}

// Art. 241 E.T., annual income tax of individuals.
var incomeTaxTable = Table{
	{FromUVT: 0, ToUVT: 1090, Rate: 0, BaseUVT: 0},
	{FromUVT: 1090, ToUVT: 1700, Rate: 19, BaseUVT: 0},
	{FromUVT: 1700, ToUVT: 4100, Rate: 28, BaseUVT: 116},
	{FromUVT: 4100, ToUVT: 8670, Rate: 33, BaseUVT: 788},
	{FromUVT: 8670, ToUVT: 18970, Rate: 35, BaseUVT: 2296},
	{FromUVT: 18970, ToUVT: 31000, Rate: 37, BaseUVT: 5901},
	{FromUVT: 31000, Rate: 39, BaseUVT: 10352},
}

// HourType identifies an overtime or surcharge category.
type HourType string

// Hour types, surcharge over the ordinary hourly wage.
const (
	HourDaytimeOvertime        HourType = "extra_diurna"
	HourNightOvertime          HourType = "extra_nocturna"
	HourNightSurcharge         HourType = "recargo_nocturno"
	HourHoliday                HourType = "dominical_festivo"
	HourHolidayNightSurcharge  HourType = "recargo_nocturno_dominical"
	HourHolidayDaytimeOvertime HourType = "extra_diurna_dominical"
	HourHolidayNightOvertime   HourType = "extra_nocturna_dominical"
)

var surcharges = map[HourType]float64{
	HourDaytimeOvertime:        25,
	HourNightOvertime:          75,
	HourNightSurcharge:         35,
	HourHoliday:                75,
	HourHolidayNightSurcharge:  110,
	HourHolidayDaytimeOvertime: 100,
	HourHolidayNightOvertime:   150,
}

// Surcharge returns the surcharge percentage of an hour type.
func (p Parameters) Surcharge(hourType HourType) (float64, error) {
	rate, ok := p.Surcharges[HourType(strings.ToLower(strings.TrimSpace(string(hourType))))]
	if !ok {
		return 0, fmt.Errorf("unknown hour type %q, expected one of %v", hourType, p.HourTypes())
	}
	return rate, nil
}

// HourTypes lists the known hour types sorted by name.
func (p Parameters) HourTypes() []HourType {
	types := make([]HourType, 0, len(p.Surcharges))
	for t := range p.Surcharges {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Concept identifies a withholding-at-source payment concept.
type Concept string

// Withholding concepts.
const (
	ConceptServices  Concept = "servicios"
	ConceptFees      Concept = "honorarios"
	ConceptPurchases Concept = "compras"
	ConceptRent      Concept = "arrendamiento"
)

// RetentionRate holds the flat withholding rates of a concept and the minimum
// payment, in UVT, from which withholding applies.
type RetentionRate struct {
	Declarant    float64 `json:"declarant" yaml:"declarant"`
	NonDeclarant float64 `json:"nonDeclarant" yaml:"nonDeclarant"`
	MinBaseUVT   float64 `json:"minBaseUvt" yaml:"minBaseUvt"`
}

// Rate returns the rate for the filer status.
func (r RetentionRate) Rate(declarant bool) float64 {
	if declarant {
		return r.Declarant
	}
	return r.NonDeclarant
}

var retention = map[Concept]RetentionRate{
	ConceptServices:  {Declarant: 10, NonDeclarant: 11, MinBaseUVT: 4},
	ConceptFees:      {Declarant: 11, NonDeclarant: 11, MinBaseUVT: 0},
	ConceptPurchases: {Declarant: 2.5, NonDeclarant: 3.5, MinBaseUVT: 27},
	ConceptRent:      {Declarant: 3.5, NonDeclarant: 3.5, MinBaseUVT: 27},
}

// RetentionFor returns the withholding rates of a concept.
func (p Parameters) RetentionFor(concept Concept) (RetentionRate, error) {
	r, ok := p.Retention[Concept(strings.ToLower(strings.TrimSpace(string(concept))))]
	if !ok {
		return RetentionRate{}, fmt.Errorf("unknown withholding concept %q, expected one of %v", concept, p.Concepts())
	}
	return r, nil
}

// Concepts lists the known withholding concepts sorted by name.
func (p Parameters) Concepts() []Concept {
	concepts := make([]Concept, 0, len(p.Retention))
	for c := range p.Retention {
		concepts = append(concepts, c)
	}
	sort.Slice(concepts, func(i, j int) bool { return concepts[i] < concepts[j] })
	return concepts
}
