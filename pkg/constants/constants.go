// Package constants provides shared constants for the finance-calculators application.
package constants

// DateLayout is the format expected for dates in inputs and configuration files.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerCommercialYear is the 360-day year used by Colombian labor law
	DaysPerCommercialYear = 360

	// DaysPerCommercialSemester is the 180-day semester used for the service bonus
	DaysPerCommercialSemester = 180

	// DaysPerCommercialMonth is the 30-day month used to derive a daily wage
	DaysPerCommercialMonth = 30

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultRequestsPerSecond is the default sustained request rate of the API limiter
	DefaultRequestsPerSecond = 10.0

	// DefaultRequestBurst is the default burst size of the API limiter
	DefaultRequestBurst = 30

	// DefaultCacheTTLSeconds is how long identical calculation responses are reused
	DefaultCacheTTLSeconds = 900
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)
