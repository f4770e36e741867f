package markov

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAccuracy is returned when the requested decimal places are
	// outside 1 to 15.
	ErrInvalidAccuracy = errors.New("accuracy must be between 1 and 15 decimal places")
	// ErrNotConverged is returned when power iteration hits its iteration
	// ceiling before the tolerance is met.
	ErrNotConverged = errors.New("steady state did not converge")
	// ErrRankDeficient is returned when the least squares system has no
	// unique solution.
	ErrRankDeficient = errors.New("steady state system is rank deficient")
	// ErrSumDrift is returned when an iterate stops summing to one.
	ErrSumDrift = errors.New("steady state vector no longer sums to one")
)

// SolverError describes a steady state solve that failed.
type SolverError struct {
	Solver     string
	Strategy   string
	Iterations int
	Residual   float64
	Err        error
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("%s solver (%s strategy): %v after %d iterations (residual %.3g)",
		e.Solver, e.Strategy, e.Err, e.Iterations, e.Residual)
}

func (e *SolverError) Unwrap() error { return e.Err }

// ValidateAccuracy checks dp is a supported number of decimal places.
func ValidateAccuracy(dp int) error {
	if dp < MinAccuracy || dp > MaxAccuracy {
		return fmt.Errorf("%w: got %d", ErrInvalidAccuracy, dp)
	}
	return nil
}
