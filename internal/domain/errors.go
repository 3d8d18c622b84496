package domain

import "errors"

var (
	// ErrIDNotFound is returned when a query references an ID absent from the population
	ErrIDNotFound = errors.New("id not found")

	// ErrNoProjection is returned when an age-month cohort is absent from the projection table
	ErrNoProjection = errors.New("no projection available")

	// ErrInvalidConfiguration is returned for inputs that cannot produce a projection
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
