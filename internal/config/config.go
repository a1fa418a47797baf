// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/finance-calculators/pkg/configprocessor"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/legal"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for finance-calculators.
type Configuration struct {
	FiscalYear   int             `mapstructure:"fiscalYear" yaml:"fiscalYear,omitempty"`
	Parameters   legal.Overrides `mapstructure:"parameters" yaml:"parameters,omitempty"`
	Calculations []Calculation   `mapstructure:"calculations" yaml:"calculations"`
	Logging      LoggingConfig   `mapstructure:"logging" yaml:"logging,omitempty"`
	Output       OutputConfig    `mapstructure:"output" yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv
}

// Calculation is one named calculation to run. Params holds the calculator
// input under the same names the HTTP API accepts.
type Calculation struct {
	Name     string                 `mapstructure:"name" yaml:"name"`
	Type     string                 `mapstructure:"type" yaml:"type"`
	Disabled bool                   `mapstructure:"disabled" yaml:"disabled,omitempty"`
	Params   map[string]interface{} `mapstructure:"params" yaml:"params"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return unmarshal(v)
}

// LoadConfigurationFromReader loads YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}

	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// LegalParameters returns the parameters of the configured fiscal year, or of
// legal.DefaultYear when none is set, with the overrides applied.
func (c *Configuration) LegalParameters() (legal.Parameters, error) {
	year := c.FiscalYear
	if year == 0 {
		year = legal.DefaultYear
	}
	params, err := legal.ForYear(year)
	if err != nil {
		return legal.Parameters{}, err
	}
	if c.Parameters.Empty() {
		return params, nil
	}
	return params.WithOverrides(c.Parameters)
}

// OutputFormat resolves the output format, letting override win over the
// configured one and defaulting to pretty.
func (c *Configuration) OutputFormat(override string) (string, error) {
	format := c.Output.Format
	if override != "" {
		format = override
	}
	if format == "" {
		format = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

// Enabled returns the calculations that are not disabled, in file order.
func (c *Configuration) Enabled() []Calculation {
	var enabled []Calculation
	for _, calc := range c.Calculations {
		if !calc.Disabled {
			enabled = append(enabled, calc)
		}
	}
	return enabled
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. known reports whether a calculation type exists.
func (c *Configuration) ValidateConfiguration(known func(string) bool) []string {
	calculations := make([]configprocessor.CalculationInfo, 0, len(c.Calculations))
	for _, calc := range c.Calculations {
		calculations = append(calculations, configprocessor.CalculationInfo{
			Name:     calc.Name,
			Type:     calc.Type,
			Disabled: calc.Disabled,
			Params:   len(calc.Params),
		})
	}

	processor := configprocessor.NewProcessor(known)
	return processor.ValidateConfiguration(c.FiscalYear, legal.Years(), calculations)
}
