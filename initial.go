// SPDX-License-Identifier: MIT

package transport

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/transport/matrix"
)

// BuildInitialPlan constructs a basic feasible plan for a balanced problem with
// the initializer selected by WithInitializer (MinimumCost by default).
//
// Every strategy ships exactly min(remaining supply, remaining demand) per
// step, so row and column sums match the capacities by construction. The plan
// may be degenerate (fewer than M+N-1 basic cells); see ResolveDegeneracy.
//
// Errors: ErrDimensionMismatch, ErrInvalidValue, ErrUnbalanced, ErrOptionViolation.
func BuildInitialPlan(costs matrix.Matrix, supplies, demands []float64, opts ...Option) (*Plan, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	c, err := checkBalanced(costs, supplies, demands, o.Epsilon)
	if err != nil {
		return nil, err
	}

	return buildInitialPlan(c, supplies, demands, &o)
}

func buildInitialPlan(c [][]float64, supplies, demands []float64, o *Options) (*Plan, error) {
	plan, err := NewPlan(len(supplies), len(demands))
	if err != nil {
		return nil, err
	}
	switch o.Initializer {
	case NorthwestCorner:
		northwestCorner(plan, supplies, demands, o.Epsilon)
	case Vogel:
		vogel(plan, c, supplies, demands, o.Epsilon)
	default:
		minimumCost(plan, c, supplies, demands, o.Epsilon)
	}

	if o.observed() {
		o.emit(Event{
			Kind:    InitialPlanReady,
			Plan:    plan.Clone(),
			Cost:    plan.cost(c),
			Message: fmt.Sprintf("%s plan with %d basic cells", o.Initializer, plan.BasicCount()),
		})
	}

	return plan, nil
}

// checkBalanced validates a problem handed directly to a phase and returns its
// cost grid.
func checkBalanced(costs matrix.Matrix, supplies, demands []float64, eps float64) ([][]float64, error) {
	if err := matrix.ValidateNotNil(costs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDimensionMismatch, err)
	}
	m, n := costs.Rows(), costs.Cols()
	if len(supplies) != m || len(demands) != n {
		return nil, fmt.Errorf("%w: costs %d×%d, %d supplies, %d demands",
			ErrDimensionMismatch, m, n, len(supplies), len(demands))
	}
	if err := matrix.ValidateVector(supplies, m); err != nil {
		return nil, fmt.Errorf("%w: supplies: %w", ErrInvalidValue, err)
	}
	if err := matrix.ValidateVector(demands, n); err != nil {
		return nil, fmt.Errorf("%w: demands: %w", ErrInvalidValue, err)
	}
	c := grid(costs)
	if err := matrix.ValidateFinite(c); err != nil {
		return nil, fmt.Errorf("%w: costs: %w", ErrInvalidValue, err)
	}
	if err := matrix.ValidateNonNegative(costs); err != nil {
		return nil, fmt.Errorf("%w: costs: %w", ErrInvalidValue, err)
	}
	ts, td := floats.Sum(supplies), floats.Sum(demands)
	if !balanced(ts, td, eps) {
		return nil, fmt.Errorf("%w: supply %g, demand %g", ErrUnbalanced, ts, td)
	}

	return c, nil
}

// cellMark is the per-cell state while the minimum-cost plan is built.
// closed cells are excluded from the search but never enter the plan.
type cellMark uint8

const (
	markOpen cellMark = iota
	markClosed
	markFilled
)

// minimumCost fills the cheapest open cell (first in row-major order on ties)
// until no open cell with remaining supply and demand is left. Each shipment
// closes its row when the supply is used up, otherwise its column.
// Complexity: O((M+N)·M·N).
func minimumCost(plan *Plan, c [][]float64, supplies, demands []float64, eps float64) {
	m, n := len(supplies), len(demands)
	rs := append([]float64(nil), supplies...)
	rd := append([]float64(nil), demands...)
	marks := make([]cellMark, m*n)

	var i, j, k int
	for {
		bi, bj := -1, -1
		for i = 0; i < m; i++ {
			if rs[i] <= eps {
				continue
			}
			for j = 0; j < n; j++ {
				if marks[i*n+j] != markOpen || rd[j] <= eps {
					continue
				}
				if bi < 0 || c[i][j] < c[bi][bj] {
					bi, bj = i, j
				}
			}
		}
		if bi < 0 {
			return
		}

		q := min(rs[bi], rd[bj])
		plan.set(Cell{Row: bi, Col: bj}, q)
		marks[bi*n+bj] = markFilled
		rs[bi] -= q
		rd[bj] -= q

		switch {
		case rs[bi] <= eps:
			rs[bi] = 0
			for k = 0; k < n; k++ {
				if marks[bi*n+k] == markOpen {
					marks[bi*n+k] = markClosed
				}
			}
		case rd[bj] <= eps:
			rd[bj] = 0
			for k = 0; k < m; k++ {
				if marks[k*n+bj] == markOpen {
					marks[k*n+bj] = markClosed
				}
			}
		}
	}
}
