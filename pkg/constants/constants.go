// Package constants provides shared constants for the payment-optimizer application.
package constants

// Points method constants
const (
	// DefaultPointsMethodID is the reserved id of the loyalty points payment method.
	DefaultPointsMethodID = "PUNKTY"

	// PointsStepPercent is the granularity of partial points redemption, in percent.
	PointsStepPercent = 10

	// ResidualPercent is the share of an order value left to settle after a
	// partial points redemption, before subtracting the redeemed cost.
	ResidualPercent = 90
)

// Decimal scales
const (
	// MoneyScale is the number of decimal places kept for monetary amounts.
	MoneyScale = 2

	// RateScale is the number of decimal places kept when converting a percent to a rate.
	RateScale = 6

	// DensityScale is the number of decimal places kept for profit density comparisons.
	DensityScale = 10

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100
)

// Output format constants
const (
	// OutputFormatPlain emits one "<id> <used>" line per used payment method.
	OutputFormatPlain = "plain"

	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultOrdersFile is the default orders input file name
	DefaultOrdersFile = "orders.json"

	// DefaultPaymentMethodsFile is the default payment methods input file name
	DefaultPaymentMethodsFile = "paymentmethods.json"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "PAYOPT"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// Optimizer defaults
const (
	// DefaultWorkers keeps option generation on the calling goroutine.
	DefaultWorkers = 1
)
