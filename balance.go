// SPDX-License-Identifier: MIT

package transport

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/transport/matrix"
)

// Problem is a balanced transportation instance. It owns its cost matrix and
// capacity vectors; the caller's inputs are never modified.
type Problem struct {
	// Costs is the (possibly extended) cost matrix.
	Costs *matrix.Dense

	// Supplies and Demands are the balanced capacities.
	Supplies []float64
	Demands  []float64

	// SupplyDummy marks a zero-cost dummy supplier appended as the last row.
	SupplyDummy bool

	// DemandDummy marks a zero-cost dummy consumer appended as the last column.
	DemandDummy bool

	// TotalSupply and TotalDemand are the totals before balancing.
	TotalSupply float64
	TotalDemand float64
}

// Suppliers returns the number of rows including a dummy supplier.
func (p *Problem) Suppliers() int { return len(p.Supplies) }

// Consumers returns the number of columns including a dummy consumer.
func (p *Problem) Consumers() int { return len(p.Demands) }

// IsDummy reports whether c touches the dummy supplier or dummy consumer.
func (p *Problem) IsDummy(c Cell) bool {
	return (p.SupplyDummy && c.Row == len(p.Supplies)-1) ||
		(p.DemandDummy && c.Col == len(p.Demands)-1)
}

// Balance validates (costs, supplies, demands) and returns a balanced Problem.
//
// When the totals differ by ε or more one dummy participant absorbs the
// difference:
//   - supply < demand: a dummy supplier row with zero costs,
//   - supply > demand: a dummy consumer column with zero costs.
//
// Errors: ErrDimensionMismatch, ErrInvalidValue, ErrOptionViolation.
// Complexity: O(M·N).
func Balance(costs matrix.Matrix, supplies, demands []float64, opts ...Option) (*Problem, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	return balance(costs, supplies, demands, &o)
}

func balance(costs matrix.Matrix, supplies, demands []float64, o *Options) (*Problem, error) {
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
	if err := matrix.ValidateNonNegative(costs); err != nil {
		return nil, fmt.Errorf("%w: costs: %w", ErrInvalidValue, err)
	}

	rows := grid(costs)
	if err := matrix.ValidateFinite(rows); err != nil {
		return nil, fmt.Errorf("%w: costs: %w", ErrInvalidValue, err)
	}
	dense, err := matrix.NewFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDimensionMismatch, err)
	}

	p := &Problem{
		Costs:       dense,
		Supplies:    append([]float64(nil), supplies...),
		Demands:     append([]float64(nil), demands...),
		TotalSupply: floats.Sum(supplies),
		TotalDemand: floats.Sum(demands),
	}

	gap := p.TotalSupply - p.TotalDemand
	switch {
	case balanced(p.TotalSupply, p.TotalDemand, o.Epsilon):
		// nothing to add
	case gap < 0:
		p.Costs.AppendZeroRow()
		p.Supplies = append(p.Supplies, -gap)
		p.SupplyDummy = true
	default:
		p.Costs.AppendZeroCol()
		p.Demands = append(p.Demands, gap)
		p.DemandDummy = true
	}

	if o.observed() {
		o.emit(Event{
			Kind:        BalanceChecked,
			TotalSupply: p.TotalSupply,
			TotalDemand: p.TotalDemand,
			SupplyDummy: p.SupplyDummy,
			DemandDummy: p.DemandDummy,
			Message: fmt.Sprintf("supply %g, demand %g, supply dummy %t, demand dummy %t",
				p.TotalSupply, p.TotalDemand, p.SupplyDummy, p.DemandDummy),
		})
	}

	return p, nil
}

// balanced reports whether the totals differ by less than eps. Sums of large
// capacities carry rounding of a few ulps, so that much is tolerated too; it
// stays far below any real unit of imbalance.
func balanced(ts, td, eps float64) bool {
	gap := math.Abs(ts - td)
	if gap < eps {
		return true
	}
	top := math.Max(math.Abs(ts), math.Abs(td))

	return gap <= roundoffUlps*(math.Nextafter(top, math.Inf(1))-top)
}

// roundoffUlps bounds the rounding accepted in a capacity total.
const roundoffUlps = 4
