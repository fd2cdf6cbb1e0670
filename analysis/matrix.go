// Package analysis selects the corpus-wide most salient terms and
// aggregates their weights per historical period.
package analysis

import (
	"github.com/c360studio/salience/period"
)

// Matrix is a fixed-shape period × term weight table. Rows follow the
// fixed period bucket order, columns follow the selected vocabulary
// order; both are established once and looked up by index.
type Matrix struct {
	// Periods are the row labels in fixed bucket order.
	Periods []period.Period

	// Terms are the column labels in selection order.
	Terms []string

	// Values holds one dense row per period. Every row has an entry
	// for every term; absence is 0, never a missing cell.
	Values [][]float64
}

// NewMatrix allocates a zero matrix with the given shape.
func NewMatrix(periods []period.Period, terms []string) Matrix {
	values := make([][]float64, len(periods))
	for i := range values {
		values[i] = make([]float64, len(terms))
	}
	return Matrix{
		Periods: append([]period.Period(nil), periods...),
		Terms:   append([]string(nil), terms...),
		Values:  values,
	}
}

// At returns the value for row i, column j.
func (m Matrix) At(i, j int) float64 {
	return m.Values[i][j]
}

// Rows returns the number of period rows.
func (m Matrix) Rows() int { return len(m.Periods) }

// Cols returns the number of term columns.
func (m Matrix) Cols() int { return len(m.Terms) }

// clone returns a deep copy sharing no value storage with m.
func (m Matrix) clone() Matrix {
	out := NewMatrix(m.Periods, m.Terms)
	for i, row := range m.Values {
		copy(out.Values[i], row)
	}
	return out
}
