// Package configprocessor provides shared configuration processing utilities.
package configprocessor

import (
	"fmt"
	"strings"
)

// CalculationInfo represents calculation configuration information
type CalculationInfo struct {
	Name     string
	Type     string
	Disabled bool
	Params   int // number of parameters given
}

// Processor handles configuration processing and validation
type Processor struct {
	known func(string) bool
}

// NewProcessor creates a new configuration processor. known reports whether a
// calculation type exists; a nil known accepts every type.
func NewProcessor(known func(string) bool) *Processor {
	if known == nil {
		known = func(string) bool { return true }
	}
	return &Processor{known: known}
}

// ValidateConfiguration validates the configuration and returns warnings
func (p *Processor) ValidateConfiguration(fiscalYear int, supportedYears []int, calculations []CalculationInfo) []string {
	var warnings []string

	if fiscalYear != 0 && !containsYear(supportedYears, fiscalYear) {
		warnings = append(warnings, fmt.Sprintf("Fiscal year %d is not supported (supported: %v)", fiscalYear, supportedYears))
	}

	if len(calculations) == 0 {
		warnings = append(warnings, "No calculations configured")
	}

	seen := make(map[string]bool, len(calculations))
	enabled := 0
	for i, calc := range calculations {
		name := strings.TrimSpace(calc.Name)
		if name == "" {
			warnings = append(warnings, fmt.Sprintf("Calculation #%d has no name", i+1))
		} else if seen[strings.ToLower(name)] {
			warnings = append(warnings, "Calculation '"+name+"' is defined more than once")
		}
		seen[strings.ToLower(name)] = true

		if calc.Disabled {
			continue // Skip disabled calculations
		}
		enabled++

		if strings.TrimSpace(calc.Type) == "" {
			warnings = append(warnings, "Calculation '"+name+"' has no type")
		} else if !p.known(calc.Type) {
			warnings = append(warnings, "Calculation '"+name+"' has unknown type '"+calc.Type+"'")
		}
		if calc.Params == 0 {
			warnings = append(warnings, "Calculation '"+name+"' has no params")
		}
	}

	if len(calculations) > 0 && enabled == 0 {
		warnings = append(warnings, "All calculations are disabled")
	}

	if len(warnings) == 0 {
		return nil
	}
	return warnings
}

func containsYear(years []int, year int) bool {
	for _, y := range years {
		if y == year {
			return true
		}
	}
	return false
}
