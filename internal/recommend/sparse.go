// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

import (
	"fmt"
	"math"
)

// Matrix is a sparse matrix in compressed sparse row (CSR) form. Row i's
// entries live in ColIdx[RowPtr[i]:RowPtr[i+1]] and Values[RowPtr[i]:RowPtr[i+1]],
// with column indices strictly increasing within a row.
//
// The zero value is not usable; construct via NewMatrix or LoadMatrix.
type Matrix struct {
	Rows   int
	Cols   int
	RowPtr []int64
	ColIdx []int32
	Values []float64
}

// rowEntry is one (column, value) pair accumulated while building a row.
type rowEntry struct {
	col int32
	val float64
}

// NewMatrix assembles a CSR matrix from per-row entry lists. Entries within
// each row must already be sorted by column; the encoder guarantees this by
// emitting blocks left to right with sorted vocabularies.
func NewMatrix(rows, cols int, entries [][]rowEntry) *Matrix {
	m := &Matrix{
		Rows:   rows,
		Cols:   cols,
		RowPtr: make([]int64, rows+1),
	}
	var nnz int
	for _, row := range entries {
		nnz += len(row)
	}
	m.ColIdx = make([]int32, 0, nnz)
	m.Values = make([]float64, 0, nnz)
	for i, row := range entries {
		for _, e := range row {
			m.ColIdx = append(m.ColIdx, e.col)
			m.Values = append(m.Values, e.val)
		}
		m.RowPtr[i+1] = int64(len(m.Values))
	}
	return m
}

// NNZ returns the number of stored (non-zero) entries.
func (m *Matrix) NNZ() int {
	return len(m.Values)
}

// RowNorm returns the Euclidean norm of row i.
func (m *Matrix) RowNorm(i int) float64 {
	var sum float64
	for k := m.RowPtr[i]; k < m.RowPtr[i+1]; k++ {
		sum += m.Values[k] * m.Values[k]
	}
	return math.Sqrt(sum)
}

// AddScaledRow accumulates scale * row i into the dense vector dst.
// dst must have length m.Cols.
func (m *Matrix) AddScaledRow(dst []float64, i int, scale float64) {
	for k := m.RowPtr[i]; k < m.RowPtr[i+1]; k++ {
		dst[m.ColIdx[k]] += scale * m.Values[k]
	}
}

// DotRow returns the dot product of the dense vector v with row i.
// v must have length m.Cols.
func (m *Matrix) DotRow(v []float64, i int) float64 {
	var dot float64
	for k := m.RowPtr[i]; k < m.RowPtr[i+1]; k++ {
		dot += v[m.ColIdx[k]] * m.Values[k]
	}
	return dot
}

// validate checks structural invariants after loading from disk.
func (m *Matrix) validate() error {
	if m.Rows < 0 || m.Cols < 0 {
		return fmt.Errorf("negative dimensions %dx%d", m.Rows, m.Cols)
	}
	if len(m.RowPtr) != m.Rows+1 {
		return fmt.Errorf("row pointer length %d, want %d", len(m.RowPtr), m.Rows+1)
	}
	if len(m.ColIdx) != len(m.Values) {
		return fmt.Errorf("column index length %d does not match value length %d", len(m.ColIdx), len(m.Values))
	}
	if m.Rows > 0 && m.RowPtr[0] != 0 {
		return fmt.Errorf("row pointer must start at 0, got %d", m.RowPtr[0])
	}
	for i := 0; i < m.Rows; i++ {
		if m.RowPtr[i] > m.RowPtr[i+1] {
			return fmt.Errorf("row pointer not monotonic at row %d", i)
		}
	}
	if int(m.RowPtr[m.Rows]) != len(m.Values) {
		return fmt.Errorf("row pointer end %d does not match value length %d", m.RowPtr[m.Rows], len(m.Values))
	}
	for k, c := range m.ColIdx {
		if c < 0 || int(c) >= m.Cols {
			return fmt.Errorf("column index %d out of range at entry %d", c, k)
		}
	}
	return nil
}
