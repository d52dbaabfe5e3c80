// SPDX-License-Identifier: MIT

package transport

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/katalvlaran/transport/matrix"
)

// Cell identifies a (row, col) position: row is the supplier, col the consumer.
// Cells compare by value.
type Cell struct {
	Row, Col int
}

// String renders the cell as "(row,col)".
func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// CellState is the allocation state of one plan cell.
type CellState uint8

const (
	// Unallocated cells are non-basic: no shipment and not in the basis.
	Unallocated CellState = iota

	// BasicZero cells are in the basis but carry nothing.
	BasicZero

	// Basic cells are in the basis and carry a positive amount.
	Basic
)

// String returns the state name.
func (s CellState) String() string {
	switch s {
	case Unallocated:
		return "Unallocated"
	case BasicZero:
		return "BasicZero"
	case Basic:
		return "Basic"
	default:
		return fmt.Sprintf("CellState(%d)", int(s))
	}
}

// Plan is an M×N allocation grid. Non-basic cells always hold amount 0, so
// row and column sums can be taken over the whole line.
type Plan struct {
	rows, cols int
	amount     []float64 // row-major shipment amounts
	basic      []bool    // row-major basis membership
}

// NewPlan returns an empty rows×cols plan (every cell Unallocated).
func NewPlan(rows, cols int) (*Plan, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: plan must be at least 1×1, got %d×%d", ErrDimensionMismatch, rows, cols)
	}

	return &Plan{
		rows:   rows,
		cols:   cols,
		amount: make([]float64, rows*cols),
		basic:  make([]bool, rows*cols),
	}, nil
}

// Rows returns the number of suppliers.
func (p *Plan) Rows() int { return p.rows }

// Cols returns the number of consumers.
func (p *Plan) Cols() int { return p.cols }

func (p *Plan) contains(c Cell) bool {
	return c.Row >= 0 && c.Row < p.rows && c.Col >= 0 && c.Col < p.cols
}

func (p *Plan) off(c Cell) int { return c.Row*p.cols + c.Col }

// Amount returns the shipment in c (0 for non-basic or out-of-range cells).
func (p *Plan) Amount(c Cell) float64 {
	if !p.contains(c) {
		return 0
	}

	return p.amount[p.off(c)]
}

// IsBasic reports whether c is in the basis.
func (p *Plan) IsBasic(c Cell) bool {
	return p.contains(c) && p.basic[p.off(c)]
}

// State returns the tri-state of c.
func (p *Plan) State(c Cell) CellState {
	if !p.IsBasic(c) {
		return Unallocated
	}
	if p.amount[p.off(c)] == 0 {
		return BasicZero
	}

	return Basic
}

// Allocate puts c into the basis with amount q (q == 0 makes it BasicZero).
// Errors: ErrCellOutOfRange, ErrInvalidValue for negative or non-finite q.
func (p *Plan) Allocate(c Cell, q float64) error {
	if !p.contains(c) {
		return fmt.Errorf("%w: %v in %d×%d plan", ErrCellOutOfRange, c, p.rows, p.cols)
	}
	if q < 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return fmt.Errorf("%w: amount %g at %v", ErrInvalidValue, q, c)
	}
	p.set(c, q)

	return nil
}

// Release takes c out of the basis and clears its amount.
func (p *Plan) Release(c Cell) error {
	if !p.contains(c) {
		return fmt.Errorf("%w: %v in %d×%d plan", ErrCellOutOfRange, c, p.rows, p.cols)
	}
	p.unset(c)

	return nil
}

// set and unset are the unchecked writers used by the algorithms.
func (p *Plan) set(c Cell, q float64) {
	k := p.off(c)
	p.basic[k] = true
	p.amount[k] = q
}

func (p *Plan) unset(c Cell) {
	k := p.off(c)
	p.basic[k] = false
	p.amount[k] = 0
}

// add shifts the amount of a basic cell by delta and snaps |result| ≤ eps to 0.
func (p *Plan) add(c Cell, delta, eps float64) {
	k := p.off(c)
	v := p.amount[k] + delta
	if v <= eps && v >= -eps {
		v = 0
	}
	p.amount[k] = v
}

// BasicCount returns the number of basic cells (BasicZero included).
func (p *Plan) BasicCount() int {
	var n int
	for _, b := range p.basic {
		if b {
			n++
		}
	}

	return n
}

// RowBasicCount returns the number of basic cells in row i.
func (p *Plan) RowBasicCount(i int) int {
	if i < 0 || i >= p.rows {
		return 0
	}
	var n, j int
	for j = 0; j < p.cols; j++ {
		if p.basic[i*p.cols+j] {
			n++
		}
	}

	return n
}

// BasicCells lists the basic cells in row-major order.
func (p *Plan) BasicCells() []Cell {
	out := make([]Cell, 0, p.rows+p.cols)
	var i, j int
	for i = 0; i < p.rows; i++ {
		for j = 0; j < p.cols; j++ {
			if p.basic[i*p.cols+j] {
				out = append(out, Cell{Row: i, Col: j})
			}
		}
	}

	return out
}

// RowSum returns the total shipped from supplier i.
func (p *Plan) RowSum(i int) float64 {
	if i < 0 || i >= p.rows {
		return 0
	}

	return floats.Sum(p.amount[i*p.cols : (i+1)*p.cols])
}

// ColSum returns the total shipped to consumer j.
func (p *Plan) ColSum(j int) float64 {
	if j < 0 || j >= p.cols {
		return 0
	}
	var (
		s float64
		i int
	)
	for i = 0; i < p.rows; i++ {
		s += p.amount[i*p.cols+j]
	}

	return s
}

// Feasible reports whether every row sum matches supplies and every column
// sum matches demands within tol.
func (p *Plan) Feasible(supplies, demands []float64, tol float64) bool {
	if len(supplies) != p.rows || len(demands) != p.cols {
		return false
	}
	var k int
	for k = 0; k < p.rows; k++ {
		if !scalar.EqualWithinAbs(p.RowSum(k), supplies[k], tol) {
			return false
		}
	}
	for k = 0; k < p.cols; k++ {
		if !scalar.EqualWithinAbs(p.ColSum(k), demands[k], tol) {
			return false
		}
	}

	return true
}

// Cost returns Σ cost[i][j]·amount[i][j] over basic cells.
// Errors: ErrDimensionMismatch when costs has a different shape.
func (p *Plan) Cost(costs matrix.Matrix) (float64, error) {
	if err := matrix.ValidateNotNil(costs); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDimensionMismatch, err)
	}
	if costs.Rows() != p.rows || costs.Cols() != p.cols {
		return 0, fmt.Errorf("%w: costs %d×%d, plan %d×%d",
			ErrDimensionMismatch, costs.Rows(), costs.Cols(), p.rows, p.cols)
	}

	return p.cost(grid(costs)), nil
}

// cost is Cost over an already extracted grid.
func (p *Plan) cost(c [][]float64) float64 {
	var (
		total float64
		i, j  int
	)
	for i = 0; i < p.rows; i++ {
		for j = 0; j < p.cols; j++ {
			if p.basic[i*p.cols+j] {
				total += c[i][j] * p.amount[i*p.cols+j]
			}
		}
	}

	return total
}

// Clone returns an independent copy of p.
func (p *Plan) Clone() *Plan {
	cp := &Plan{
		rows:   p.rows,
		cols:   p.cols,
		amount: make([]float64, len(p.amount)),
		basic:  make([]bool, len(p.basic)),
	}
	copy(cp.amount, p.amount)
	copy(cp.basic, p.basic)

	return cp
}

// Amounts returns the shipment grid (0 for non-basic cells).
func (p *Plan) Amounts() [][]float64 {
	out := make([][]float64, p.rows)
	var i int
	for i = 0; i < p.rows; i++ {
		out[i] = make([]float64, p.cols)
		copy(out[i], p.amount[i*p.cols:(i+1)*p.cols])
	}

	return out
}

// String renders one bracketed row per line; non-basic cells print as "-".
func (p *Plan) String() string {
	var (
		sb   strings.Builder
		i, j int
	)
	for i = 0; i < p.rows; i++ {
		sb.WriteString("[")
		for j = 0; j < p.cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			if p.basic[i*p.cols+j] {
				fmt.Fprintf(&sb, "%g", p.amount[i*p.cols+j])
			} else {
				sb.WriteString("-")
			}
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}

// grid extracts costs as a row slice once per operation so hot loops index
// directly instead of paying a bounds-checked At per access.
func grid(m matrix.Matrix) [][]float64 {
	if d, ok := m.(*matrix.Dense); ok {
		return d.ToRows()
	}
	out := make([][]float64, m.Rows())
	var i, j int
	for i = 0; i < m.Rows(); i++ {
		out[i] = make([]float64, m.Cols())
		for j = 0; j < m.Cols(); j++ {
			out[i][j], _ = m.At(i, j) // indices are within Rows×Cols
		}
	}

	return out
}
