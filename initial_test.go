// SPDX-License-Identifier: MIT

package transport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/transport"
)

// TestMinimumCostSquare: (0,0)=10 exhausts row 0 and column 0 at once; the row
// is closed first and (1,1) takes the rest, leaving a degenerate plan.
func TestMinimumCostSquare(t *testing.T) {
	p, err := transport.BuildInitialPlan(dense(t, squareCosts), squareSupplies, squareDemands)
	require.NoError(t, err)

	assert.Equal(t, "[10, -]\n[-, 10]\n", p.String())
	assert.Equal(t, 2, p.BasicCount())
	requireFeasible(t, p, squareSupplies, squareDemands)
}

func TestMinimumCostClassic(t *testing.T) {
	costs := dense(t, classicCosts)
	p, err := transport.BuildInitialPlan(costs, classicSupplies, classicDemands)
	require.NoError(t, err)

	assert.Equal(t, "[-, -, -, 7]\n[2, -, 7, -]\n[3, 8, -, 7]\n", p.String())
	assert.Equal(t, 6, p.BasicCount())
	requireFeasible(t, p, classicSupplies, classicDemands)

	cost, err := p.Cost(costs)
	require.NoError(t, err)
	assert.Equal(t, 814.0, cost)
}

func TestNorthwestCornerClassic(t *testing.T) {
	costs := dense(t, classicCosts)
	p, err := transport.BuildInitialPlan(costs, classicSupplies, classicDemands,
		transport.WithInitializer(transport.NorthwestCorner))
	require.NoError(t, err)

	assert.Equal(t, "[5, 2, -, -]\n[-, 6, 3, -]\n[-, -, 4, 14]\n", p.String())
	requireFeasible(t, p, classicSupplies, classicDemands)
	cost, _ := p.Cost(costs)
	assert.Equal(t, 1015.0, cost)
}

// TestNorthwestCornerDegenerateStep: row and column run out together, so the
// walk steps down and records a BasicZero cell to keep M+N-1 cells.
func TestNorthwestCornerDegenerateStep(t *testing.T) {
	p, err := transport.BuildInitialPlan(dense(t, squareCosts), squareSupplies, squareDemands,
		transport.WithInitializer(transport.NorthwestCorner))
	require.NoError(t, err)

	assert.Equal(t, "[10, -]\n[0, 10]\n", p.String())
	assert.Equal(t, transport.BasicZero, p.State(transport.Cell{Row: 1, Col: 0}))
	assert.Equal(t, 3, p.BasicCount())
}

func TestVogelClassic(t *testing.T) {
	costs := dense(t, classicCosts)
	p, err := transport.BuildInitialPlan(costs, classicSupplies, classicDemands,
		transport.WithInitializer(transport.Vogel))
	require.NoError(t, err)

	assert.Equal(t, "[5, -, -, 2]\n[-, -, 7, 2]\n[-, 8, -, 10]\n", p.String())
	requireFeasible(t, p, classicSupplies, classicDemands)
	cost, _ := p.Cost(costs)
	assert.Equal(t, 779.0, cost)
}

// TestInitializersFeasible runs every strategy on a few shapes.
func TestInitializersFeasible(t *testing.T) {
	cases := []struct {
		name              string
		costs             [][]float64
		supplies, demands []float64
	}{
		{"single", [][]float64{{7}}, []float64{3}, []float64{3}},
		{"row", [][]float64{{4, 1, 3}}, []float64{9}, []float64{2, 3, 4}},
		{"column", [][]float64{{4}, {1}, {3}}, []float64{2, 3, 4}, []float64{9}},
		{"fractional", [][]float64{{1.5, 2}, {0.5, 3}}, []float64{0.3, 0.7}, []float64{0.6, 0.4}},
		{"zero supply", [][]float64{{1, 2}, {3, 4}}, []float64{0, 5}, []float64{2, 3}},
		{"classic", classicCosts, classicSupplies, classicDemands},
	}
	inits := []transport.Initializer{transport.MinimumCost, transport.NorthwestCorner, transport.Vogel}
	for _, tc := range cases {
		for _, in := range inits {
			t.Run(tc.name+"/"+in.String(), func(t *testing.T) {
				p, err := transport.BuildInitialPlan(dense(t, tc.costs), tc.supplies, tc.demands,
					transport.WithInitializer(in))
				require.NoError(t, err)
				requireFeasible(t, p, tc.supplies, tc.demands)
				assert.LessOrEqual(t, p.BasicCount(), len(tc.supplies)+len(tc.demands)-1)
			})
		}
	}
}

func TestBuildInitialPlanErrors(t *testing.T) {
	costs := dense(t, squareCosts)

	_, err := transport.BuildInitialPlan(costs, []float64{10, 5}, squareDemands)
	require.ErrorIs(t, err, transport.ErrUnbalanced)

	_, err = transport.BuildInitialPlan(costs, []float64{1e9 + 1, 0}, []float64{1e9, 0})
	require.ErrorIs(t, err, transport.ErrUnbalanced)

	_, err = transport.BuildInitialPlan(costs, []float64{10, 10, 0}, squareDemands)
	require.ErrorIs(t, err, transport.ErrDimensionMismatch)

	_, err = transport.BuildInitialPlan(costs, []float64{-10, 30}, squareDemands)
	require.ErrorIs(t, err, transport.ErrInvalidValue)

	_, err = transport.BuildInitialPlan(costs, squareSupplies, squareDemands,
		transport.WithInitializer(transport.Initializer(42)))
	require.ErrorIs(t, err, transport.ErrOptionViolation)
}

func TestBuildInitialPlanEvent(t *testing.T) {
	var c collector
	_, err := transport.BuildInitialPlan(dense(t, classicCosts), classicSupplies, classicDemands,
		transport.WithObserver(c.observe))
	require.NoError(t, err)

	evs := c.of(transport.InitialPlanReady)
	require.Len(t, evs, 1)
	assert.Equal(t, 814.0, evs[0].Cost)
	require.NotNil(t, evs[0].Plan)
	assert.Equal(t, 6, evs[0].Plan.BasicCount())
}
