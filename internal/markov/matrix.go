package markov

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/lox/monopoly-markov/internal/probability"
)

// Matrix is a dense matrix of exact probabilities. Matrices returned by this
// package are never modified after construction.
type Matrix struct {
	rows, cols int
	data       []probability.Probability
}

func newMatrix(rows, cols int) *Matrix {
	data := make([]probability.Probability, rows*cols)
	for i := range data {
		data[i] = probability.Never
	}
	return &Matrix{rows: rows, cols: cols, data: data}
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (int, int) { return m.rows, m.cols }

// At returns the entry at row i, column j.
func (m *Matrix) At(i, j int) probability.Probability {
	return m.data[m.offset(i, j)]
}

func (m *Matrix) add(i, j int, p probability.Probability) {
	k := m.offset(i, j)
	m.data[k] = m.data[k].Add(p)
}

func (m *Matrix) offset(i, j int) int {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("markov: index (%d, %d) out of range %dx%d", i, j, m.rows, m.cols))
	}
	return i*m.cols + j
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []probability.Probability {
	out := make([]probability.Probability, m.cols)
	copy(out, m.data[m.offset(i, 0):][:m.cols])
	return out
}

// RowSum returns the exact sum of row i.
func (m *Matrix) RowSum(i int) probability.Probability {
	return probability.Sum(m.Row(i)...)
}

// Equal reports whether both matrices have the same shape and entries.
func (m *Matrix) Equal(o *Matrix) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for k := range m.data {
		if !m.data[k].Equal(o.data[k]) {
			return false
		}
	}
	return true
}

// Float converts the matrix to floating point for numeric solving.
func (m *Matrix) Float() *mat.Dense {
	out := mat.NewDense(m.rows, m.cols, nil)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.Set(i, j, m.At(i, j).Float64())
		}
	}
	return out
}

// mustBeStochastic panics naming the first row that does not sum to one.
func (m *Matrix) mustBeStochastic(name string, label func(int) string) {
	for i := 0; i < m.rows; i++ {
		if sum := m.RowSum(i); !sum.Equal(probability.Always) {
			panic(fmt.Sprintf("markov: %s row %s sums to %s, want 1", name, label(i), sum))
		}
	}
}
