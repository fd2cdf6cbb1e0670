package analysis

import (
	"log/slog"
	"math"
)

// ZScore standardizes a matrix against a single scalar mean and
// population standard deviation computed over all cells flattened
// together. This deliberately mirrors the reference analysis: values
// are comparable across terms and periods alike, not zero-centered per
// column.
//
// When the flattened standard deviation is 0 (uniform matrix) every
// cell maps to 0 and a degenerate-variance warning is logged; the
// undefined division is never propagated.
func ZScore(m Matrix, logger *slog.Logger) Matrix {
	if logger == nil {
		logger = slog.Default()
	}

	out := m.clone()
	cells := m.Rows() * m.Cols()
	if cells == 0 {
		return out
	}

	var total float64
	for _, row := range m.Values {
		for _, x := range row {
			total += x
		}
	}
	mean := total / float64(cells)

	var sumSq float64
	for _, row := range m.Values {
		for _, x := range row {
			d := x - mean
			sumSq += d * d
		}
	}
	std := math.Sqrt(sumSq / float64(cells))

	if std == 0 {
		logger.Warn("degenerate variance: flattened matrix std is 0, mapping all cells to 0",
			"rows", m.Rows(),
			"cols", m.Cols())
		for i := range out.Values {
			for j := range out.Values[i] {
				out.Values[i][j] = 0
			}
		}
		return out
	}

	for i := range out.Values {
		for j := range out.Values[i] {
			out.Values[i][j] = (m.Values[i][j] - mean) / std
		}
	}
	return out
}
