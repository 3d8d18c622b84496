package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rpgo/earnings-projector/internal/calculation"
	"github.com/rpgo/earnings-projector/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configFile   string
	envFile      string
	seed         int64
	size         int
	startAge     int
	endAge       int
	maxWorkYears int
	inflation    float64
	baseSalary   float64
	cohorts      []string
	format       string
	outputDir    string
	logLevel     string
	logJSON      bool
}

// app is the wired state a subcommand runs against.
type app struct {
	cfg    *config.Configuration
	logger *logrus.Logger
	engine *calculation.ProjectionEngine
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "popproj",
		Short:         "Generate a synthetic population and project its monthly earnings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "configuration file (.yaml or .toml)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading POPPROJ_* variables")
	flags.Int64Var(&opts.seed, "seed", 0, "random seed (0 picks a fresh seed)")
	flags.IntVarP(&opts.size, "size", "n", 0, "population size")
	flags.IntVar(&opts.startAge, "start-age", 0, "first age year to project")
	flags.IntVar(&opts.endAge, "end-age", 0, "last age year to project")
	flags.IntVar(&opts.maxWorkYears, "max-work-years", 0, "maximum working years per cohort")
	flags.Float64Var(&opts.inflation, "inflation", 0, "annual inflation rate as a decimal (0.06 = 6%)")
	flags.Float64Var(&opts.baseSalary, "base-salary", 0, "monthly earnings at month 0")
	flags.StringSliceVar(&opts.cohorts, "cohort", nil, "cohort to include in reports, e.g. 30y6m (repeatable)")
	flags.StringVarP(&opts.format, "format", "f", "", "output format: "+strings.Join(outputFormats(), ", "))
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "", "write reports to this directory instead of stdout")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&opts.logJSON, "log-json", false, "emit JSON logs")

	cmd.AddCommand(
		newGenerateCmd(opts),
		newProjectCmd(opts),
		newIndividualCmd(opts),
		newCriticalCmd(opts),
		newInteractiveCmd(opts),
		newInitConfigCmd(opts),
		newSweepCmd(opts),
	)
	return cmd
}

// setup loads .env, the configuration file and environment, applies explicitly
// set flags and only then validates the result.
func (o *rootOptions) setup(cmd *cobra.Command) (*app, error) {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", o.envFile, err)
		}
	}

	parser := config.NewInputParser()
	cfg, err := parser.Read(o.configFile)
	if err != nil {
		return nil, err
	}
	o.applyFlags(cmd, cfg)
	if err := parser.ValidateConfiguration(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	logger := newLogger(cfg.Logging, cmd.ErrOrStderr())
	engine := calculation.NewProjectionEngine(cfg.Population.Seed)
	engine.SetLogger(logger)
	logger.Debugf("using seed %d", engine.Seed)

	return &app{cfg: cfg, logger: logger, engine: engine}, nil
}

func (o *rootOptions) applyFlags(cmd *cobra.Command, cfg *config.Configuration) {
	changed := cmd.Flags().Changed
	if changed("seed") {
		cfg.Population.Seed = o.seed
	}
	if changed("size") {
		cfg.Population.Size = o.size
	}
	if changed("start-age") {
		cfg.Projection.StartAge = o.startAge
	}
	if changed("end-age") {
		cfg.Projection.EndAge = o.endAge
	}
	if changed("max-work-years") {
		cfg.Projection.MaxWorkYears = o.maxWorkYears
	}
	if changed("inflation") {
		cfg.Projection.InflationRate = o.inflation
	}
	if changed("base-salary") {
		cfg.Projection.BaseSalary = o.baseSalary
	}
	if changed("cohort") {
		cfg.Projection.Cohorts = o.cohorts
	}
	if changed("format") {
		cfg.Output.Format = o.format
	}
	if changed("output-dir") {
		cfg.Output.Directory = o.outputDir
	}
	if changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if changed("log-json") {
		cfg.Logging.JSON = o.logJSON
	}
}

func newLogger(settings config.LoggingSettings, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	if settings.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(settings.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	if err != nil && settings.Level != "" {
		logger.Warnf("unknown log level %q, using info", settings.Level)
	}
	return logger
}
