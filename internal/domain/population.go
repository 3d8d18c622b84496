package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Gender is the categorical gender of an individual
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Genders lists the values the generator samples from
var Genders = []Gender{GenderMale, GenderFemale}

// Individual is one generated population record. Age fields are computed once
// at generation time from a fixed reference date and never updated.
type Individual struct {
	ID          int             `json:"id"`
	Gender      Gender          `json:"gender"`
	DateOfBirth time.Time       `json:"date_of_birth"`
	AgeYears    int             `json:"age_years"`
	AgeMonths   int             `json:"age_months"`
	GrossSalary decimal.Decimal `json:"gross_salary"`
}

// Key returns the cohort key of the individual
func (i Individual) Key() AgeMonthKey {
	return AgeMonthKey{Years: i.AgeYears, Months: i.AgeMonths}
}

// Population is an ordered collection of individuals
type Population []Individual

// FindByID returns the individual with the given ID
func (p Population) FindByID(id int) (Individual, bool) {
	for _, ind := range p {
		if ind.ID == id {
			return ind, true
		}
	}
	return Individual{}, false
}

// Head returns at most the first n individuals
func (p Population) Head(n int) Population {
	if n < 0 {
		return Population{}
	}
	if n > len(p) {
		n = len(p)
	}
	return p[:n]
}

// CohortSizes counts individuals per age-month key
func (p Population) CohortSizes() map[AgeMonthKey]int {
	sizes := make(map[AgeMonthKey]int)
	for _, ind := range p {
		sizes[ind.Key()]++
	}
	return sizes
}
