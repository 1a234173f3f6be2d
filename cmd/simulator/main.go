package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iwvelando/capital-simulator/internal/capital"
	"github.com/iwvelando/capital-simulator/internal/config"
	"github.com/iwvelando/capital-simulator/internal/form"
	"github.com/iwvelando/capital-simulator/internal/optimizer"
	"github.com/iwvelando/capital-simulator/internal/server"
	"github.com/iwvelando/capital-simulator/internal/simulation"
	"github.com/iwvelando/capital-simulator/pkg/constants"
	"github.com/iwvelando/capital-simulator/pkg/output"
	"github.com/iwvelando/capital-simulator/pkg/validation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
	case "json":
		zapConfig = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)

	// Logs go to stderr unless a file is configured so stdout stays clean for results
	zapConfig.OutputPaths = []string{"stderr"}
	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		}
		_ = file.Close()

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

// capitalFieldText renders a capital given in reais the way the form field
// would hold it after typing.
func capitalFieldText(reais string) (string, error) {
	if reais == "" {
		return "", nil
	}
	amount, err := decimal.NewFromString(reais)
	if err != nil {
		return "", fmt.Errorf("invalid capital %q: %w", reais, err)
	}
	minor := amount.Mul(decimal.NewFromInt(constants.MinorUnitsPerUnit)).Truncate(0).IntPart()
	return capital.FromMinor(minor).String(), nil
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	capitalFlag := flag.String("capital", "", "capital to simulate, in reais (e.g. 10000.50)")
	riskFlag := flag.String("risk", "", "risk profile override (leve, moderada, grave)")
	companyFlag := flag.String("company", "", "company or ticker to restrict the simulation to")
	outputFormatFlag := flag.String("output-format", "", "type of output override: text, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	sample := flag.Bool("sample", false, "request the optimizer's sample allocation instead of simulating")
	serve := flag.Bool("serve", false, "serve the web form instead of running a single simulation")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	loggingConfig := conf.Logging
	var serverConf *server.Config
	if *serve {
		serverConf, err = server.LoadConfig(*serverConfigLocation)
		if err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *serverConfigLocation, err)
			os.Exit(1)
		}
		if serverConf.Logging != (config.LoggingConfig{}) {
			loggingConfig = serverConf.Logging
		}
	}

	logger, err := initializeLogger(loggingConfig, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *outputFormatFlag != "" {
		conf.Output.Format = *outputFormatFlag
	}
	if conf.Output.Format == "" {
		conf.Output.Format = constants.OutputFormatText
	}

	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if err := validation.ValidateOutputFormat(conf.Output.Format); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	client := optimizer.NewClient(conf.HTTPClient(), conf.Endpoint, logger)

	if *serve {
		logger.Info("serving simulation form",
			zap.String("op", "main"),
			zap.String("address", serverConf.Address),
			zap.String("endpoint", client.URL()),
		)
		handler := server.NewHandler(logger, client, serverConf.BodySizeBytes(), version)
		if err := serverConf.HTTPServer(handler).ListenAndServe(); err != nil {
			logger.Fatal("server stopped",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	ctx := context.Background()

	if *sample {
		resp, err := client.Sample(ctx)
		if err != nil {
			logger.Fatal("failed to fetch sample allocation",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		outcome := simulation.Outcome{Kind: simulation.OutcomeSuccess, Message: simulation.RenderSuccess(resp, ""), Response: &resp}
		if !resp.Success {
			outcome = simulation.Outcome{Kind: simulation.OutcomeApplication, Message: resp.Error, Response: &resp}
		}
		printOutcome(logger, conf.Output.Format, outcome)
		return
	}

	capitalText, err := capitalFieldText(*capitalFlag)
	if err != nil {
		logger.Fatal("failed to parse capital",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	risk := conf.Defaults.RiskProfile
	if *riskFlag != "" {
		risk = *riskFlag
	}

	controls := form.Controls{
		Capital: form.NewInput(capitalText),
		Risk:    form.NewInput(risk),
		Company: form.NewInput(*companyFlag),
	}
	capital.NewFormatter(controls.Capital).HandleInput()

	// Text output is the alert itself; JSON is printed once the outcome is known
	var alerter simulation.Alerter
	if conf.Output.Format == constants.OutputFormatText {
		alerter = simulation.NewWriterAlerter(os.Stdout)
	}

	controller := simulation.NewController(controls, client, alerter, logger)
	outcome, err := controller.Submit(ctx)
	if conf.Output.Format == constants.OutputFormatJSON {
		printOutcome(logger, conf.Output.Format, outcome)
	}
	if err != nil {
		logger.Debug("simulation did not succeed",
			zap.String("op", "main"),
			zap.String("outcome", string(simulation.KindOf(err))),
			zap.Error(err),
		)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func printOutcome(logger *zap.Logger, format string, outcome simulation.Outcome) {
	switch format {
	case constants.OutputFormatJSON:
		if err := output.JSONFormat(outcome); err != nil {
			logger.Error("failed to write output",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	default:
		output.TextFormat(outcome)
	}
}
