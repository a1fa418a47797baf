package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/iwvelando/finance-calculators/internal/calculator"
)

func testResults() []calculator.Result {
	return []calculator.Result{
		{
			Name: "Carro",
			Type: calculator.TypeLoan,
			Report: calculator.Report{Fields: []calculator.Field{
				{Label: "cuotaMensual", Kind: calculator.Money, Value: 100_000},
				{Label: "totalPagar", Kind: calculator.Money, Value: 1_200_000},
			}},
		},
		{
			Name: "Prima",
			Type: calculator.TypeServiceBonus,
			Report: calculator.Report{Fields: []calculator.Field{
				{Label: "prima", Kind: calculator.Money, Value: 1_500_000},
			}},
		},
		{
			Name: "Prima diciembre",
			Type: calculator.TypeServiceBonus,
		},
	}
}

func TestFindResult(t *testing.T) {
	results := testResults()

	tests := []struct {
		name        string
		searchName  string
		expectFound bool
		expectType  calculator.Type
	}{
		{name: "Find loan", searchName: "Carro", expectFound: true, expectType: calculator.TypeLoan},
		{name: "Find exact name", searchName: "Prima", expectFound: true, expectType: calculator.TypeServiceBonus},
		{name: "Find longer name", searchName: "Prima diciembre", expectFound: true, expectType: calculator.TypeServiceBonus},
		{name: "Search for non-existent result", searchName: "Casa", expectFound: false},
		{name: "Case sensitive search", searchName: "carro", expectFound: false},
		{name: "Empty name", searchName: "", expectFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindResult(results, tt.searchName)
			if !tt.expectFound {
				if result != nil {
					t.Errorf("FindResult(%q) = %v, expected nil", tt.searchName, result.Name)
				}
				return
			}
			if result == nil {
				t.Fatalf("FindResult(%q) returned nil", tt.searchName)
			}
			if result.Name != tt.searchName || result.Type != tt.expectType {
				t.Errorf("FindResult(%q) = %s/%s", tt.searchName, result.Name, result.Type)
			}
		})
	}
}

func TestFindResultReturnsPointerIntoSlice(t *testing.T) {
	results := testResults()
	result := FindResult(results, "Carro")
	result.Name = "Moto"
	if results[0].Name != "Moto" {
		t.Errorf("FindResult() should point into the slice")
	}
}

func TestFindResultEmptySlice(t *testing.T) {
	if result := FindResult(nil, "Carro"); result != nil {
		t.Errorf("FindResult(nil) = %v, expected nil", result)
	}
}

func TestFindField(t *testing.T) {
	results := testResults()

	field, ok := FindField(&results[0], "totalPagar")
	if !ok || field.Value != 1_200_000 {
		t.Errorf("FindField(totalPagar) = %+v, %t", field, ok)
	}
	if _, ok := FindField(&results[0], "prima"); ok {
		t.Errorf("FindField() found a field of another result")
	}
	if _, ok := FindField(&results[2], "prima"); ok {
		t.Errorf("FindField() on an empty report should not find anything")
	}
	if _, ok := FindField(nil, "prima"); ok {
		t.Errorf("FindField(nil) should not find anything")
	}
}

// recorder captures failures without failing the enclosing test.
type recorder struct {
	testing.TB
	failures []string
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...interface{}) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func TestAssertClose(t *testing.T) {
	tests := []struct {
		name      string
		got       float64
		want      float64
		tolerance float64
		fails     bool
	}{
		{name: "Equal", got: 100, want: 100, tolerance: 0},
		{name: "Within tolerance", got: 100.004, want: 100, tolerance: 0.01},
		{name: "Outside tolerance", got: 100.02, want: 100, tolerance: 0.01, fails: true},
		{name: "NaN", got: math.NaN(), want: 0, tolerance: 1, fails: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{TB: t}
			AssertClose(r, "value", tt.got, tt.want, tt.tolerance)
			if failed := len(r.failures) > 0; failed != tt.fails {
				t.Errorf("AssertClose() failed = %t, expected %t (%v)", failed, tt.fails, r.failures)
			}
		})
	}
}
