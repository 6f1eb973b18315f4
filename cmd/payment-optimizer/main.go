package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/iwvelando/payment-optimizer/internal/config"
	"github.com/iwvelando/payment-optimizer/internal/loader"
	"github.com/iwvelando/payment-optimizer/internal/optimizer"
	"github.com/iwvelando/payment-optimizer/internal/payment"
	"github.com/iwvelando/payment-optimizer/pkg/constants"
	"github.com/iwvelando/payment-optimizer/pkg/output"
	"github.com/iwvelando/payment-optimizer/pkg/validation"
	"go.uber.org/zap"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitInvalid = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the process exit so it can be driven from tests.
// Usage: payment-optimizer [flags] [orders.json paymentmethods.json]
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("payment-optimizer", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configLocation := flags.String("config", constants.DefaultConfigFile, "path to configuration file")
	ordersFlag := flags.String("orders", "", "orders JSON file override")
	methodsFlag := flags.String("methods", "", "payment methods JSON file override")
	outputFormatFlag := flags.String("output-format", "", "type of output override: plain, pretty, csv")
	logLevel := flags.String("log-level", "", "log level override (debug, info, warn, error)")
	pointsID := flags.String("points-id", "", "id of the loyalty points payment method")
	workers := flags.Int("workers", 0, "option generation workers override")
	if err := flags.Parse(args); err != nil {
		return exitInvalid
	}

	// A missing config at the default location just means defaults.
	configPath := *configLocation
	if !flagSet(flags, "config") {
		if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
			configPath = ""
		}
	}

	conf, err := config.LoadConfiguration(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", configPath, err)
		return exitFailure
	}

	logger, err := conf.Logging.NewLogger(*logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return exitFailure
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Command line values take precedence over config.
	switch positional := flags.Args(); len(positional) {
	case 0:
	case 2:
		conf.Input.Orders = positional[0]
		conf.Input.PaymentMethods = positional[1]
	default:
		logger.Warn("expected either no arguments or <orders.json> <paymentmethods.json>",
			zap.String("op", "main"),
			zap.Strings("args", positional),
		)
		return exitInvalid
	}
	if *ordersFlag != "" {
		conf.Input.Orders = *ordersFlag
	}
	if *methodsFlag != "" {
		conf.Input.PaymentMethods = *methodsFlag
	}
	if *pointsID != "" {
		conf.Optimizer.PointsID = *pointsID
	}
	if *workers != 0 {
		conf.Optimizer.Workers = *workers
	}
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPlain
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Error(err.Error(),
			zap.String("op", "main"),
		)
		return exitInvalid
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	ld := loader.New(logger)
	orders, err := ld.Orders(conf.Input.Orders)
	if err != nil {
		return fail(logger, "failed to load orders", err)
	}
	methods, err := ld.PaymentMethods(conf.Input.PaymentMethods)
	if err != nil {
		return fail(logger, "failed to load payment methods", err)
	}

	runner := optimizer.NewRunner(logger, optimizer.Options{
		PointsID: conf.Optimizer.PointsID,
		Workers:  conf.Optimizer.Workers,
	})
	result, err := runner.Run(orders, methods)
	if err != nil {
		return fail(logger, "failed to optimize payments", err)
	}

	switch outputFormat {
	case constants.OutputFormatPlain:
		err = output.Plain(stdout, result.Usage())
	case constants.OutputFormatPretty:
		output.PrettyFormat(stdout, result)
	case constants.OutputFormatCSV:
		err = output.CsvFormat(stdout, result)
	}
	if err != nil {
		return fail(logger, "failed to write report", err)
	}

	return exitOK
}

// fail logs err at a level matching its class and returns the exit status.
// Bad input data is reported as a warning and exits 2; anything else is a
// failure of the run itself.
func fail(logger *zap.Logger, msg string, err error) int {
	if payment.IsWarning(err) {
		logger.Warn(msg,
			zap.String("op", "main"),
			zap.Error(err),
		)
		return exitInvalid
	}

	logger.Error(msg,
		zap.String("op", "main"),
		zap.Error(err),
	)
	return exitFailure
}

func flagSet(flags *flag.FlagSet, name string) bool {
	found := false
	flags.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
