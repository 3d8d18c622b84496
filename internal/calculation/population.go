package calculation

import (
	"fmt"
	"time"

	"github.com/rpgo/earnings-projector/internal/domain"
	"github.com/rpgo/earnings-projector/pkg/dateutil"
	"github.com/shopspring/decimal"
)

const (
	// DefaultPopulationSize is the number of records generated when none is configured
	DefaultPopulationSize = 100

	// MinGrossSalary is the lowest sampled monthly gross salary
	MinGrossSalary = 8000

	// MaxGrossSalary is the highest sampled monthly gross salary
	MaxGrossSalary = 15000
)

var (
	// BirthWindowStart is the earliest date of birth the generator samples
	BirthWindowStart = dateutil.Date(1960, time.January, 1)

	// BirthWindowEnd is the latest date of birth the generator samples
	BirthWindowEnd = dateutil.Date(2004, time.December, 31)

	// AgeReferenceDate is the fixed date ages are computed against
	AgeReferenceDate = dateutil.Date(2025, time.January, 1)
)

// PopulationGenerator samples synthetic individuals
type PopulationGenerator struct {
	RNG           RandomSource
	WindowStart   time.Time
	WindowEnd     time.Time
	ReferenceDate time.Time
	MinSalary     int
	MaxSalary     int
}

// NewPopulationGenerator creates a generator with the standard sampling window
func NewPopulationGenerator(rng RandomSource) *PopulationGenerator {
	return &PopulationGenerator{
		RNG:           rng,
		WindowStart:   BirthWindowStart,
		WindowEnd:     BirthWindowEnd,
		ReferenceDate: AgeReferenceDate,
		MinSalary:     MinGrossSalary,
		MaxSalary:     MaxGrossSalary,
	}
}

// GeneratePopulation samples count individuals using the standard window
func GeneratePopulation(rng RandomSource, count int) (domain.Population, error) {
	return NewPopulationGenerator(rng).Generate(count)
}

// Generate samples count individuals with sequential IDs starting at 1
func (pg *PopulationGenerator) Generate(count int) (domain.Population, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: population size must be positive, got %d", domain.ErrInvalidConfiguration, count)
	}
	if pg.RNG == nil {
		return nil, fmt.Errorf("population generator requires a random source")
	}
	windowDays := dateutil.DaysBetween(pg.WindowStart, pg.WindowEnd)
	if windowDays < 0 {
		return nil, fmt.Errorf("%w: birth window ends before it starts", domain.ErrInvalidConfiguration)
	}
	if pg.MaxSalary < pg.MinSalary {
		return nil, fmt.Errorf("%w: salary range is empty", domain.ErrInvalidConfiguration)
	}

	population := make(domain.Population, 0, count)
	for i := 0; i < count; i++ {
		dob := dateutil.AddDays(pg.WindowStart, pg.RNG.Intn(windowDays+1))
		years, months := dateutil.ApproximateAge(dob, pg.ReferenceDate)
		gender := domain.Genders[pg.RNG.Intn(len(domain.Genders))]
		salary := pg.MinSalary + pg.RNG.Intn(pg.MaxSalary-pg.MinSalary+1)

		population = append(population, domain.Individual{
			ID:          i + 1,
			Gender:      gender,
			DateOfBirth: dob,
			AgeYears:    years,
			AgeMonths:   months,
			GrossSalary: decimal.NewFromInt(int64(salary)),
		})
	}
	return population, nil
}
