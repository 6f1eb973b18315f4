// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/payment-optimizer/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for payment-optimizer.
type Configuration struct {
	Input     InputConfig     `yaml:"input,omitempty" mapstructure:"input"`
	Optimizer OptimizerConfig `yaml:"optimizer,omitempty" mapstructure:"optimizer"`
	Logging   LoggingConfig   `yaml:"logging,omitempty" mapstructure:"logging"`
	Output    OutputConfig    `yaml:"output,omitempty" mapstructure:"output"`
}

// InputConfig points at the order and payment method documents.
type InputConfig struct {
	Orders         string `yaml:"orders,omitempty" mapstructure:"orders"`
	PaymentMethods string `yaml:"paymentMethods,omitempty" mapstructure:"paymentMethods"`
}

// OptimizerConfig tunes the allocation run.
type OptimizerConfig struct {
	PointsID string `yaml:"pointsId,omitempty" mapstructure:"pointsId"`
	Workers  int    `yaml:"workers,omitempty" mapstructure:"workers"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // plain, pretty, csv
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input.orders", constants.DefaultOrdersFile)
	v.SetDefault("input.paymentMethods", constants.DefaultPaymentMethodsFile)
	v.SetDefault("optimizer.pointsId", constants.DefaultPointsMethodID)
	v.SetDefault("optimizer.workers", constants.DefaultWorkers)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPlain)
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path yields the defaults. Environment
// variables prefixed with PAYOPT_ override both, e.g. PAYOPT_OPTIMIZER_POINTSID.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration,
// normalizes recoverable values and returns warnings describing them.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if strings.TrimSpace(c.Optimizer.PointsID) == "" {
		warnings = append(warnings, fmt.Sprintf("optimizer.pointsId is blank; using %s", constants.DefaultPointsMethodID))
		c.Optimizer.PointsID = constants.DefaultPointsMethodID
	}
	if c.Optimizer.Workers < 1 {
		warnings = append(warnings, fmt.Sprintf("optimizer.workers %d is below 1; using %d", c.Optimizer.Workers, constants.DefaultWorkers))
		c.Optimizer.Workers = constants.DefaultWorkers
	}
	if strings.TrimSpace(c.Input.Orders) == "" {
		warnings = append(warnings, "input.orders is blank; using "+constants.DefaultOrdersFile)
		c.Input.Orders = constants.DefaultOrdersFile
	}
	if strings.TrimSpace(c.Input.PaymentMethods) == "" {
		warnings = append(warnings, "input.paymentMethods is blank; using "+constants.DefaultPaymentMethodsFile)
		c.Input.PaymentMethods = constants.DefaultPaymentMethodsFile
	}
	if c.Input.Orders == c.Input.PaymentMethods {
		warnings = append(warnings, fmt.Sprintf("input.orders and input.paymentMethods both point at %s", c.Input.Orders))
	}

	return warnings
}
