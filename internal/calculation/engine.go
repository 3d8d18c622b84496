package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/earnings-projector/internal/domain"
)

// RunConfig describes a complete projection run
type RunConfig struct {
	PopulationSize int
	Seed           int64
	Projection     domain.ProjectionConfig
	// Cohorts selects cohorts whose raw entries are included in the report
	Cohorts []domain.AgeMonthKey
}

// ProjectionEngine orchestrates population generation, table construction and queries
type ProjectionEngine struct {
	RNG    RandomSource
	Seed   int64
	Logger Logger
}

// NewProjectionEngine creates an engine seeded with seed (0 draws a fresh seed)
func NewProjectionEngine(seed int64) *ProjectionEngine {
	resolved := ResolveSeed(seed)
	return NewProjectionEngineWithSource(NewSeededRNG(resolved), resolved)
}

// NewProjectionEngineWithSource creates an engine around an existing random source
func NewProjectionEngineWithSource(rng RandomSource, seed int64) *ProjectionEngine {
	return &ProjectionEngine{
		RNG:    rng,
		Seed:   seed,
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	pe.Logger = loggerOrNop(l)
}

// GeneratePopulation samples count individuals
func (pe *ProjectionEngine) GeneratePopulation(count int) (domain.Population, error) {
	population, err := GeneratePopulation(pe.RNG, count)
	if err != nil {
		return nil, err
	}
	pe.Logger.Infof("generated population of %d individuals", len(population))
	return population, nil
}

// BuildProjections builds the projection table for cfg
func (pe *ProjectionEngine) BuildProjections(ctx context.Context, cfg domain.ProjectionConfig) (*domain.ProjectionTable, error) {
	table, err := NewProjectionBuilder(pe.RNG, pe.Logger).Build(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("build projections: %w", err)
	}
	return table, nil
}

// NewReport joins the population against the table and assembles a report.
// Selected cohorts that are missing from the table are skipped with a warning.
func (pe *ProjectionEngine) NewReport(population domain.Population, table *domain.ProjectionTable, cohorts []domain.AgeMonthKey) *domain.ProjectionReport {
	totals, omitted := SummarizeEarnings(population, table)
	if len(omitted) > 0 {
		pe.Logger.Debugf("%d individuals have no projection cohort: %v", len(omitted), omitted)
	}

	selected := make([]domain.CohortProjection, 0, len(cohorts))
	for _, key := range cohorts {
		entries, err := CriticalValues(table, key.Years, key.Months)
		if err != nil {
			pe.Logger.Warnf("skipping cohort in report: %v", err)
			continue
		}
		selected = append(selected, domain.CohortProjection{Key: key, Entries: entries})
	}

	return &domain.ProjectionReport{
		RunID:          runIDFunc(),
		GeneratedAt:    nowFunc(),
		Seed:           pe.Seed,
		Config:         table.Config(),
		PopulationSize: len(population),
		CohortCount:    table.Len(),
		EntryCount:     table.EntryCount(),
		Population:     population,
		Totals:         totals,
		Omitted:        omitted,
		Cohorts:        selected,
	}
}

// Run generates a population, builds the table and returns the report
func (pe *ProjectionEngine) Run(ctx context.Context, rc RunConfig) (*domain.ProjectionReport, *domain.ProjectionTable, error) {
	size := rc.PopulationSize
	if size == 0 {
		size = DefaultPopulationSize
	}
	population, err := pe.GeneratePopulation(size)
	if err != nil {
		return nil, nil, fmt.Errorf("generate population: %w", err)
	}
	table, err := pe.BuildProjections(ctx, rc.Projection)
	if err != nil {
		return nil, nil, err
	}
	report := pe.NewReport(population, table, rc.Cohorts)
	pe.Logger.Infof("projection run %s: %d totals, %d omitted, grand total %s",
		report.RunID, len(report.Totals), len(report.Omitted), report.GrandTotal().StringFixed(2))
	return report, table, nil
}
