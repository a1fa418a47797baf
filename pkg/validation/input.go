package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

// ErrInvalidInput is the single error kind returned by every calculator when an
// input is outside its domain. Callers test for it with errors.Is and ask the
// user to correct the value; there is nothing to retry.
var ErrInvalidInput = errors.New("invalid input")

// InputError names the offending field of a rejected input.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput, e.Field, e.Reason)
}

// Is makes InputError match ErrInvalidInput.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Invalid builds an InputError for field.
func Invalid(field, reason string, args ...interface{}) error {
	return &InputError{Field: field, Reason: fmt.Sprintf(reason, args...)}
}

// IsInvalidInput reports whether err is a domain validation failure.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// Finite rejects NaN and infinite values.
func Finite(field string, value float64) error {
	if mathutil.IsFinite(value) {
		return nil
	}
	if math.IsNaN(value) {
		return Invalid(field, "is not a number")
	}
	return Invalid(field, "is not finite")
}

// Positive requires a finite value strictly greater than zero.
func Positive(field string, value float64) error {
	if err := Finite(field, value); err != nil {
		return err
	}
	if value <= 0 {
		return Invalid(field, "must be greater than zero, got %v", value)
	}
	return nil
}

// NonNegative requires a finite value greater than or equal to zero.
func NonNegative(field string, value float64) error {
	if err := Finite(field, value); err != nil {
		return err
	}
	if value < 0 {
		return Invalid(field, "must not be negative, got %v", value)
	}
	return nil
}

// PositiveInt requires an integer strictly greater than zero.
func PositiveInt(field string, value int) error {
	if value <= 0 {
		return Invalid(field, "must be greater than zero, got %d", value)
	}
	return nil
}

// NonNegativeInt requires an integer greater than or equal to zero.
func NonNegativeInt(field string, value int) error {
	if value < 0 {
		return Invalid(field, "must not be negative, got %d", value)
	}
	return nil
}

// RequiredDate parses a mandatory YYYY-MM-DD date.
func RequiredDate(field, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, Invalid(field, "is required")
	}
	t, err := datetime.ParseDate(value)
	if err != nil {
		return time.Time{}, Invalid(field, "is not a valid date (%v)", err)
	}
	return t, nil
}

// OptionalDate parses a YYYY-MM-DD date, reporting ok=false when it is blank.
func OptionalDate(field, value string) (t time.Time, ok bool, err error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, false, nil
	}
	t, err = RequiredDate(field, value)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
