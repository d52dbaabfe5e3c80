// SPDX-License-Identifier: MIT

package transport_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/transport"
	"github.com/katalvlaran/transport/matrix"
)

const tol = 1e-9

// classic is the 3×4 textbook instance used across the tests:
// min-cost start 814, optimum 743.
var (
	classicCosts = [][]float64{
		{19, 30, 50, 10},
		{70, 30, 40, 60},
		{40, 8, 70, 20},
	}
	classicSupplies = []float64{7, 9, 18}
	classicDemands  = []float64{5, 8, 7, 14}
)

// square is the 2×2 instance whose min-cost start is degenerate.
var (
	squareCosts    = [][]float64{{1, 2}, {3, 4}}
	squareSupplies = []float64{10, 10}
	squareDemands  = []float64{10, 10}
)

func dense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return d
}

// planFrom builds a plan from a grid where negative entries mean "not basic".
func planFrom(t *testing.T, grid [][]float64) *transport.Plan {
	t.Helper()
	p, err := transport.NewPlan(len(grid), len(grid[0]))
	require.NoError(t, err)
	for i, row := range grid {
		for j, q := range row {
			if q >= 0 {
				require.NoError(t, p.Allocate(transport.Cell{Row: i, Col: j}, q))
			}
		}
	}

	return p
}

// requireFeasible checks row and column sums against the capacities.
func requireFeasible(t *testing.T, p *transport.Plan, supplies, demands []float64) {
	t.Helper()
	require.True(t, p.Feasible(supplies, demands, 1e-6), "plan:\n%s", p)
}

// collector records every event it receives.
type collector struct{ events []transport.Event }

func (c *collector) observe(ev transport.Event) { c.events = append(c.events, ev) }

func (c *collector) kinds() []transport.EventKind {
	out := make([]transport.EventKind, 0, len(c.events))
	for _, ev := range c.events {
		out = append(out, ev.Kind)
	}

	return out
}

func (c *collector) of(kind transport.EventKind) []transport.Event {
	var out []transport.Event
	for _, ev := range c.events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}

	return out
}
