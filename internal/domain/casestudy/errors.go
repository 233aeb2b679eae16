package casestudy

import "errors"

var (
	// ErrCaseStudyNotFound indicates the case study doesn't exist.
	ErrCaseStudyNotFound = errors.New("case study not found")
	// ErrInvalidInput indicates invalid input for case study operations.
	ErrInvalidInput = errors.New("invalid case study input")
	// ErrUnknownQuality indicates a data quality tier outside the closed set.
	ErrUnknownQuality = errors.New("unknown data quality")
)
