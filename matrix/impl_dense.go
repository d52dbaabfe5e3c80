// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Enforce a finite-only numeric policy on Set.

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"        // method tag used in error wrappers
	ctxSet      = "Set"       // method tag used in error wrappers
	ctxAddToRow = "AddToRow"  // method tag used in error wrappers
	ctxColMin   = "ColArgMin" // method tag used in error wrappers
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Stable, human-friendly messages; preserves the sentinel via %w.
// Complexity: O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int       // row and column counts (> 0)
	data []float64 // contiguous row-major storage (len == r*c)
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer.
//
// Complexity: Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	// Validate shape.
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewFromRows copies a rectangular [][]float64 into a new Dense.
//
// Implementation:
//   - Stage 1: ValidateRectangular (non-empty, equal row lengths).
//   - Stage 2: ValidateFinite (no NaN/±Inf).
//   - Stage 3: copy rows into the flat buffer in row-major order.
//
// Errors: ErrInvalidDimensions, ErrRagged, ErrNaNInf (wrapped).
// Complexity: Time O(r*c), Space O(r*c).
func NewFromRows(rows [][]float64) (*Dense, error) {
	if err := ValidateRectangular(rows); err != nil {
		return nil, err
	}
	if err := ValidateFinite(rows); err != nil {
		return nil, err
	}

	m := &Dense{r: len(rows), c: len(rows[0]), data: make([]float64, len(rows)*len(rows[0]))}
	var i int
	for i = 0; i < m.r; i++ {
		copy(m.data[i*m.c:(i+1)*m.c], rows[i])
	}

	return m, nil
}

// Rows returns the row count. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Public methods wrap the sentinel with their own context.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col). NaN and ±Inf are rejected with ErrNaNInf.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy; mutations of the copy never reach the original.
// Complexity: O(r*c).
func (m *Dense) Clone() Matrix {
	return m.CloneDense()
}

// CloneDense is Clone with the concrete return type, for callers that go on
// to use the structural edits below.
func (m *Dense) CloneDense() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// ToRows materializes the matrix as a fresh [][]float64 (no aliasing).
// Complexity: O(r*c).
func (m *Dense) ToRows() [][]float64 {
	out := make([][]float64, m.r)
	var i int
	for i = 0; i < m.r; i++ {
		out[i] = make([]float64, m.c)
		copy(out[i], m.data[i*m.c:(i+1)*m.c])
	}

	return out
}

// AppendZeroRow grows the matrix by one row filled with zeros and returns
// the index of the new row.
// Complexity: O(c) amortized.
func (m *Dense) AppendZeroRow() int {
	m.data = append(m.data, make([]float64, m.c)...)
	m.r++

	return m.r - 1
}

// AppendZeroCol grows the matrix by one column filled with zeros and returns
// the index of the new column. The buffer is rebuilt because row-major offsets
// change for every row.
// Complexity: O(r*c).
func (m *Dense) AppendZeroCol() int {
	nc := m.c + 1
	buf := make([]float64, m.r*nc)
	var i int
	for i = 0; i < m.r; i++ {
		copy(buf[i*nc:i*nc+m.c], m.data[i*m.c:(i+1)*m.c])
	}
	m.data = buf
	m.c = nc

	return nc - 1
}

// AddToRow adds delta to every element of row. Used to raise the tariffs of a
// whole supplier row at once.
// Errors: ErrOutOfRange, ErrNaNInf.
// Complexity: O(c).
func (m *Dense) AddToRow(row int, delta float64) error {
	if row < 0 || row >= m.r {
		return denseErrorf(ctxAddToRow, row, 0, ErrOutOfRange)
	}
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return denseErrorf(ctxAddToRow, row, 0, ErrNaNInf)
	}
	var j int
	for j = row * m.c; j < (row+1)*m.c; j++ {
		m.data[j] += delta
	}

	return nil
}

// ColArgMin returns the smallest value of column col and the first row
// (lowest index) holding it.
// Errors: ErrOutOfRange.
// Complexity: O(r).
func (m *Dense) ColArgMin(col int) (row int, value float64, err error) {
	if col < 0 || col >= m.c {
		return 0, 0, denseErrorf(ctxColMin, 0, col, ErrOutOfRange)
	}
	value = m.data[col]
	var i int
	for i = 1; i < m.r; i++ {
		if v := m.data[i*m.c+col]; v < value {
			row, value = i, v
		}
	}

	return row, value, nil
}

// ColMin returns the minimum of every column, in column order.
// Complexity: O(r*c).
func (m *Dense) ColMin() []float64 {
	out := make([]float64, m.c)
	var j int
	for j = 0; j < m.c; j++ {
		_, out[j], _ = m.ColArgMin(j) // j is always in range here
	}

	return out
}

// String renders matrix rows as lines with comma-separated values.
// Intended for logs and debugging, not hot paths.
func (m *Dense) String() string {
	var (
		sb   strings.Builder
		i, j int
	)
	for i = 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j = 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
