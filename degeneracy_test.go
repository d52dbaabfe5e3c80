// SPDX-License-Identifier: MIT

package transport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/transport"
)

// TestResolveDegeneracySquare: (0,1) costs 2 and beats (1,0) at 3.
func TestResolveDegeneracySquare(t *testing.T) {
	costs := dense(t, squareCosts)
	p, err := transport.BuildInitialPlan(costs, squareSupplies, squareDemands)
	require.NoError(t, err)

	added, err := transport.ResolveDegeneracy(p, costs)
	require.NoError(t, err)
	assert.Equal(t, []transport.Cell{{Row: 0, Col: 1}}, added)
	assert.Equal(t, transport.BasicZero, p.State(transport.Cell{Row: 0, Col: 1}))
	assert.Equal(t, 3, p.BasicCount())
	requireFeasible(t, p, squareSupplies, squareDemands)
}

// TestResolveDegeneracySkipsCycles: the cheapest free cell (0,1) would close
// the loop (0,0)-(1,0)-(1,1)-(0,1), so the next cheapest (0,2) is taken.
func TestResolveDegeneracySkipsCycles(t *testing.T) {
	costs := dense(t, [][]float64{{9, 0, 3}, {9, 9, 5}})
	p := planFrom(t, [][]float64{{4, -1, -1}, {1, 5, -1}})

	added, err := transport.ResolveDegeneracy(p, costs)
	require.NoError(t, err)
	assert.Equal(t, []transport.Cell{{Row: 0, Col: 2}}, added)
	assert.Equal(t, 4, p.BasicCount())
}

func TestResolveDegeneracyFullBasis(t *testing.T) {
	costs := dense(t, classicCosts)
	p, err := transport.BuildInitialPlan(costs, classicSupplies, classicDemands)
	require.NoError(t, err)
	before := p.String()

	added, err := transport.ResolveDegeneracy(p, costs)
	require.NoError(t, err)
	assert.Empty(t, added)
	assert.Equal(t, before, p.String())
}

// TestResolveDegeneracyUnresolved: a basis that already holds a cycle cannot
// be completed to a tree. It has M+N-1 cells, yet row 2 and column 2 are cut
// off from the rest.
func TestResolveDegeneracyUnresolved(t *testing.T) {
	costs := dense(t, [][]float64{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}})
	p := planFrom(t, [][]float64{{1, 1, -1}, {1, 1, -1}, {-1, -1, 2}})

	var c collector
	added, err := transport.ResolveDegeneracy(p, costs, transport.WithObserver(c.observe))
	require.ErrorIs(t, err, transport.ErrDegeneracyUnresolved)
	assert.Empty(t, added)
	assert.Equal(t, 5, p.BasicCount())

	evs := c.of(transport.DegeneracyResolved)
	require.Len(t, evs, 1)
	assert.ErrorIs(t, evs[0].Err, transport.ErrDegeneracyUnresolved)
}

// TestResolveDegeneracyCyclicShortBasis: a cycle is reported before any zero
// cell is placed, and the plan is left untouched.
func TestResolveDegeneracyCyclicShortBasis(t *testing.T) {
	costs := dense(t, [][]float64{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}})
	p := planFrom(t, [][]float64{{1, 1, -1}, {1, 1, -1}, {-1, -1, -1}})
	before := p.String()

	added, err := transport.ResolveDegeneracy(p, costs)
	require.ErrorIs(t, err, transport.ErrDegeneracyUnresolved)
	assert.Empty(t, added)
	assert.Equal(t, before, p.String())
}

// TestResolveDegeneracyManySlots fills several slots on a single-cell plan.
func TestResolveDegeneracyManySlots(t *testing.T) {
	costs := dense(t, [][]float64{{1, 4, 6}, {2, 5, 3}, {7, 8, 9}})
	p := planFrom(t, [][]float64{{5, -1, -1}, {-1, -1, -1}, {-1, -1, -1}})

	added, err := transport.ResolveDegeneracy(p, costs)
	require.NoError(t, err)
	assert.Equal(t, []transport.Cell{
		{Row: 1, Col: 0}, {Row: 1, Col: 2}, {Row: 0, Col: 1}, {Row: 2, Col: 0},
	}, added)
	assert.Equal(t, 5, p.BasicCount())
}

func TestResolveDegeneracyErrors(t *testing.T) {
	p, err := transport.NewPlan(2, 2)
	require.NoError(t, err)

	_, err = transport.ResolveDegeneracy(p, dense(t, classicCosts))
	require.ErrorIs(t, err, transport.ErrDimensionMismatch)
	_, err = transport.ResolveDegeneracy(nil, dense(t, squareCosts))
	require.ErrorIs(t, err, transport.ErrDimensionMismatch)
}
