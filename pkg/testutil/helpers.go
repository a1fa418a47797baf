// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"
	"testing"

	"github.com/iwvelando/finance-calculators/internal/calculator"
)

// FindResult finds a calculation result by name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindResult(results []calculator.Result, name string) *calculator.Result {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// FindField returns the report field with the given label.
func FindField(result *calculator.Result, label string) (calculator.Field, bool) {
	if result == nil {
		return calculator.Field{}, false
	}
	for _, field := range result.Report.Fields {
		if field.Label == label {
			return field, true
		}
	}
	return calculator.Field{}, false
}

// AssertClose fails the test when got and want differ by more than tolerance.
func AssertClose(t testing.TB, name string, got, want, tolerance float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > tolerance {
		t.Errorf("%s = %.4f, expected %.4f (±%.4f)", name, got, want, tolerance)
	}
}
