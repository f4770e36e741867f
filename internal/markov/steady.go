package markov

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// MinAccuracy and MaxAccuracy bound the decimal places a solve can target.
	MinAccuracy = 1
	MaxAccuracy = 15
	// DefaultAccuracy is used when no accuracy is configured.
	DefaultAccuracy = 8

	// DefaultMaxIterations is the power iteration ceiling.
	DefaultMaxIterations = 1000

	sumTolerance = 1e-10
)

// Solver computes the stationary distribution of a row stochastic matrix.
type Solver interface {
	Name() string
	Solve(p mat.Matrix, accuracy int, logger *log.Logger) ([]float64, error)
}

// ParseSolver resolves a solver name: "power" or "svd".
func ParseSolver(name string) (Solver, error) {
	switch strings.ToLower(name) {
	case "", "power":
		return PowerIteration{}, nil
	case "svd":
		return LeastSquares{}, nil
	}
	return nil, fmt.Errorf("unknown solver %q (want power or svd)", name)
}

// PowerIteration repeatedly multiplies a uniform start vector by the matrix
// until successive iterates differ by less than 10^-accuracy in every entry.
type PowerIteration struct {
	// MaxIterations defaults to DefaultMaxIterations when zero.
	MaxIterations int
}

func (PowerIteration) Name() string { return "power" }

func (s PowerIteration) Solve(p mat.Matrix, accuracy int, logger *log.Logger) ([]float64, error) {
	if err := ValidateAccuracy(accuracy); err != nil {
		return nil, err
	}
	maxIter := s.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	n, _ := p.Dims()
	tol := math.Pow(10, -float64(accuracy))
	cur := make([]float64, n)
	for i := range cur {
		cur[i] = 1 / float64(n)
	}

	var delta float64
	for iter := 1; iter <= maxIter; iter++ {
		var next mat.VecDense
		next.MulVec(p.T(), mat.NewVecDense(n, cur))
		nextData := mat.Col(nil, 0, &next)

		if sum := floats.Sum(nextData); math.Abs(sum-1) > sumTolerance {
			return nil, &SolverError{Solver: s.Name(), Iterations: iter, Residual: sum - 1, Err: ErrSumDrift}
		}

		delta = floats.Distance(nextData, cur, math.Inf(1))
		cur = nextData
		if delta < tol {
			logger.Debug("Power iteration converged", "iterations", iter, "delta", delta)
			return cur, nil
		}
	}
	return nil, &SolverError{Solver: s.Name(), Iterations: maxIter, Residual: delta, Err: ErrNotConverged}
}

// LeastSquares solves (P^T - I)x = 0 with the extra equation sum(x) = 1 by a
// singular value decomposition pseudo-inverse.
type LeastSquares struct{}

func (LeastSquares) Name() string { return "svd" }

func (s LeastSquares) Solve(p mat.Matrix, accuracy int, logger *log.Logger) ([]float64, error) {
	if err := ValidateAccuracy(accuracy); err != nil {
		return nil, err
	}
	n, _ := p.Dims()
	tol := math.Pow(10, -float64(accuracy))

	a := mat.NewDense(n+1, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := p.At(j, i)
			if i == j {
				v--
			}
			a.Set(i, j, v)
		}
		a.Set(n, i, 1)
	}
	b := mat.NewVecDense(n+1, nil)
	b.SetVec(n, 1)

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, &SolverError{Solver: s.Name(), Err: ErrRankDeficient}
	}
	values := svd.Values(nil)
	cutoff := values[0] * 1e-12
	rank := 0
	for _, v := range values {
		if v > cutoff {
			rank++
		}
	}
	if rank < n {
		return nil, &SolverError{Solver: s.Name(), Residual: values[len(values)-1], Err: ErrRankDeficient}
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	var utb mat.VecDense
	utb.MulVec(u.T(), b)
	for i, sv := range values {
		utb.SetVec(i, utb.AtVec(i)/sv)
	}
	var x mat.VecDense
	x.MulVec(&v, &utb)

	var r mat.VecDense
	r.MulVec(a, &x)
	r.SubVec(&r, b)
	residual := mat.Norm(&r, math.Inf(1))
	if residual > tol {
		return nil, &SolverError{Solver: s.Name(), Residual: residual, Err: ErrNotConverged}
	}

	out := mat.Col(nil, 0, &x)
	for i, v := range out {
		// rounding noise on states with vanishing mass
		if v < 0 && v > -tol {
			out[i] = 0
		}
	}
	logger.Debug("Least squares solved", "rank", rank, "residual", residual)
	return out, nil
}
