package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rpgo/earnings-projector/internal/calculation"
	"github.com/rpgo/earnings-projector/internal/config"
	"github.com/rpgo/earnings-projector/internal/domain"
	"github.com/rpgo/earnings-projector/internal/output"
	"github.com/spf13/cobra"
)

func outputFormats() []string {
	return append(output.AvailableFormatterNames(), "all")
}

// runConfig translates the loaded configuration into an engine run.
func (a *app) runConfig() (calculation.RunConfig, error) {
	cohorts, err := a.cfg.Projection.CohortKeys()
	if err != nil {
		return calculation.RunConfig{}, err
	}
	return calculation.RunConfig{
		PopulationSize: a.cfg.Population.Size,
		Seed:           a.engine.Seed,
		Projection:     a.cfg.Projection.ToProjectionConfig(),
		Cohorts:        cohorts,
	}, nil
}

// run generates the population and then builds the table, so a fixed seed
// yields the same table for every command.
func (a *app) run(ctx context.Context) (*domain.ProjectionReport, *domain.ProjectionTable, error) {
	rc, err := a.runConfig()
	if err != nil {
		return nil, nil, err
	}
	return a.engine.Run(ctx, rc)
}

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var rows int
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic population and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			population, err := a.engine.GeneratePopulation(a.cfg.Population.Size)
			if err != nil {
				return err
			}
			n := rows
			if n <= 0 {
				n = len(population)
			}
			var buf bytes.Buffer
			output.WritePopulationPreview(&buf, population, n)
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}
	cmd.Flags().IntVar(&rows, "rows", output.PopulationPreviewRows, "rows to print (0 prints everyone)")
	return cmd
}

func newProjectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "project",
		Short: "Build the projection table and report projected earnings for the population",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			report, _, err := a.run(cmd.Context())
			if err != nil {
				return err
			}
			return a.emit(cmd, report)
		},
	}
}

// emit prints text formats to stdout, or writes files when an output directory is
// configured or the format is binary.
func (a *app) emit(cmd *cobra.Command, report *domain.ProjectionReport) error {
	format := output.NormalizeFormatName(a.cfg.Output.Format)
	dir := a.cfg.Output.Directory
	if dir == "" && format != "all" && format != "xlsx" {
		f, err := output.LookupFormatter(format)
		if err != nil {
			return err
		}
		data, err := f.Format(report)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	paths, err := output.GenerateReport(report, format, dir)
	if err != nil {
		return err
	}
	for _, p := range paths {
		a.logger.Infof("wrote %s", p)
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

func newIndividualCmd(opts *rootOptions) *cobra.Command {
	var id int
	cmd := &cobra.Command{
		Use:   "individual",
		Short: "Print the total projected earnings of one individual",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			report, table, err := a.run(cmd.Context())
			if err != nil {
				return err
			}
			total, err := calculation.IndividualProjection(table, id, report.Population)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Projected earnings for ID %d: %s\n", id, output.FormatGroupedCurrency(total))
			return nil
		},
	}
	cmd.Flags().IntVar(&id, "id", 0, "individual ID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newCriticalCmd(opts *rootOptions) *cobra.Command {
	var years, months int
	cmd := &cobra.Command{
		Use:   "critical",
		Short: "Print the raw monthly projection entries of one age-month cohort",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			_, table, err := a.run(cmd.Context())
			if err != nil {
				return err
			}
			entries, err := calculation.CriticalValues(table, years, months)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			output.WriteCohortEntries(&buf, domain.NewAgeMonthKey(years, months), entries)
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}
	cmd.Flags().IntVar(&years, "age-years", 0, "cohort age in whole years")
	cmd.Flags().IntVar(&months, "age-months", 0, "cohort residual months (0-11)")
	_ = cmd.MarkFlagRequired("age-years")
	return cmd
}

func newInitConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write the effective configuration to a YAML or TOML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			path := "popproj.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := output.SaveConfiguration(a.cfg, path); err != nil {
				return fmt.Errorf("save configuration: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// interactiveSession walks through the generate, build and query steps with prompts.
type interactiveSession struct {
	app    *app
	prompt *config.Prompter
}

func newInteractiveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Prompt for projection parameters and query the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			s := &interactiveSession{app: a, prompt: config.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())}
			return s.run(cmd)
		},
	}
}

func (s *interactiveSession) run(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	a := s.app

	population, err := a.engine.GeneratePopulation(a.cfg.Population.Size)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	output.WritePopulationPreview(&buf, population, output.PopulationPreviewRows)
	fmt.Fprintln(&buf)
	if _, err := out.Write(buf.Bytes()); err != nil {
		return err
	}

	startAge, err := s.prompt.Int("Enter start age", config.NonNegative)
	if err != nil {
		return err
	}
	endAge, err := s.prompt.Int("Enter end age", func(v int) error {
		if v < startAge {
			return fmt.Errorf("end age must be at least %d", startAge)
		}
		return nil
	})
	if err != nil {
		return err
	}
	maxWorkYears, err := s.prompt.Int("Enter max work years", config.NonNegative)
	if err != nil {
		return err
	}
	inflation, err := s.prompt.Float("Enter inflation rate (decimal)", func(v float64) error {
		if v < -0.1 || v > 0.2 {
			return fmt.Errorf("inflation rate must be between -0.1 and 0.2")
		}
		return nil
	})
	if err != nil {
		return err
	}

	a.cfg.Projection.StartAge = startAge
	a.cfg.Projection.EndAge = endAge
	a.cfg.Projection.MaxWorkYears = maxWorkYears
	a.cfg.Projection.InflationRate = inflation

	table, err := a.engine.BuildProjections(cmd.Context(), a.cfg.Projection.ToProjectionConfig())
	if err != nil {
		return err
	}
	report := a.engine.NewReport(population, table, nil)

	buf.Reset()
	fmt.Fprintln(&buf)
	output.WriteTotals(&buf, report)
	fmt.Fprintln(&buf)
	if _, err := out.Write(buf.Bytes()); err != nil {
		return err
	}

	id, err := s.prompt.Int("Enter ID to retrieve projected earnings", nil)
	if err != nil {
		return err
	}
	if total, err := calculation.IndividualProjection(table, id, population); err != nil {
		fmt.Fprintf(out, "No projected earnings for ID %d: %v\n", id, err)
	} else {
		fmt.Fprintf(out, "Projected earnings for ID %d: %s\n", id, output.FormatGroupedCurrency(total))
	}

	years, err := s.prompt.Int("Enter age years to retrieve critical values", config.NonNegative)
	if err != nil {
		return err
	}
	months, err := s.prompt.Int("Enter age months to retrieve critical values", func(v int) error {
		if v < 0 || v >= domain.MonthsPerYear {
			return fmt.Errorf("months must be between 0 and 11")
		}
		return nil
	})
	if err != nil {
		return err
	}
	entries, err := calculation.CriticalValues(table, years, months)
	if err != nil {
		fmt.Fprintf(out, "No critical values for %s: %v\n", domain.NewAgeMonthKey(years, months), err)
		return nil
	}
	buf.Reset()
	output.WriteCohortEntries(&buf, domain.NewAgeMonthKey(years, months), entries)
	_, err = out.Write(buf.Bytes())
	return err
}

func newSweepCmd(opts *rootOptions) *cobra.Command {
	var runs int
	var asCSV bool
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Repeat the projection over consecutive seeds and summarize the spread of earnings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			result, err := calculation.RunSweep(cmd.Context(), calculation.SweepConfig{
				Runs:           runs,
				BaseSeed:       a.engine.Seed,
				PopulationSize: a.cfg.Population.Size,
				Projection:     a.cfg.Projection.ToProjectionConfig(),
			}, a.logger)
			if err != nil {
				return err
			}
			if asCSV {
				data, err := output.SweepCSV(result)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			var buf bytes.Buffer
			output.WriteSweepSummary(&buf, result)
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}
	cmd.Flags().IntVar(&runs, "runs", 10, "number of seeded runs")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "print one CSV row per run")
	return cmd
}
