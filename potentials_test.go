// SPDX-License-Identifier: MIT

package transport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/transport"
)

// TestComputePotentialsSquare: reference row 0 holds two cells, u=[0,2], v=[1,2].
func TestComputePotentialsSquare(t *testing.T) {
	costs := dense(t, squareCosts)
	p := planFrom(t, [][]float64{{10, 0}, {-1, 10}})

	pot, err := transport.ComputePotentials(p, costs)
	require.NoError(t, err)
	assert.Equal(t, 0, pot.Reference)
	assert.Equal(t, []float64{0, 2}, pot.U)
	assert.Equal(t, []float64{1, 2}, pot.V)
	assert.False(t, pot.Disconnected)

	deltas, err := transport.ReducedCosts(p, costs, pot)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0}, {0, 0}}, deltas)
}

// TestComputePotentialsReferenceRow picks the fullest row.
func TestComputePotentialsReferenceRow(t *testing.T) {
	costs := dense(t, classicCosts)
	p := planFrom(t, [][]float64{
		{-1, -1, -1, 7},
		{2, -1, 7, -1},
		{3, 8, -1, 7},
	})

	pot, err := transport.ComputePotentials(p, costs)
	require.NoError(t, err)
	assert.Equal(t, 2, pot.Reference)
	assert.Equal(t, []float64{-10, 30, 0}, pot.U)
	assert.Equal(t, []float64{40, 8, 10, 20}, pot.V)

	for _, c := range p.BasicCells() {
		cost, _ := costs.At(c.Row, c.Col)
		assert.Equal(t, cost, pot.U[c.Row]+pot.V[c.Col], "cell %v", c)
	}

	deltas, err := transport.ReducedCosts(p, costs, pot)
	require.NoError(t, err)
	assert.Equal(t, 11.0, deltas[0][0])
	assert.Equal(t, 8.0, deltas[1][1])
}

func TestComputePotentialsDisconnected(t *testing.T) {
	p := planFrom(t, [][]float64{{10, -1}, {-1, 10}})

	pot, err := transport.ComputePotentials(p, dense(t, squareCosts))
	require.NoError(t, err)
	assert.True(t, pot.Disconnected)
	assert.Equal(t, []float64{0, 0}, pot.U)
	assert.Equal(t, []float64{1, 0}, pot.V)
}

func TestReducedCostsMismatch(t *testing.T) {
	p := planFrom(t, [][]float64{{10, 0}, {-1, 10}})
	costs := dense(t, squareCosts)

	_, err := transport.ReducedCosts(p, costs, &transport.Potentials{U: []float64{0}, V: []float64{0, 0}})
	require.ErrorIs(t, err, transport.ErrDimensionMismatch)
	_, err = transport.ReducedCosts(p, costs, nil)
	require.ErrorIs(t, err, transport.ErrDimensionMismatch)
	_, err = transport.ComputePotentials(p, dense(t, classicCosts))
	require.ErrorIs(t, err, transport.ErrDimensionMismatch)
}

func TestFindCycleRectangle(t *testing.T) {
	p := planFrom(t, [][]float64{
		{-1, -1, -1, 7},
		{2, -1, 7, -1},
		{3, 8, -1, 7},
	})

	cycle, err := transport.FindCycle(p, transport.Cell{Row: 0, Col: 0})
	require.NoError(t, err)
	assert.Equal(t, []transport.Cell{
		{Row: 0, Col: 0}, {Row: 0, Col: 3}, {Row: 2, Col: 3}, {Row: 2, Col: 0},
	}, cycle)
}

func TestFindCycleSixCells(t *testing.T) {
	p := planFrom(t, [][]float64{
		{3, -1, -1, 4},
		{2, -1, 7, -1},
		{-1, 8, -1, 10},
	})

	cycle, err := transport.FindCycle(p, transport.Cell{Row: 1, Col: 1})
	require.NoError(t, err)
	assert.Equal(t, []transport.Cell{
		{Row: 1, Col: 1}, {Row: 1, Col: 0}, {Row: 0, Col: 0},
		{Row: 0, Col: 3}, {Row: 2, Col: 3}, {Row: 2, Col: 1},
	}, cycle)
}

func TestFindCycleErrors(t *testing.T) {
	degenerate := planFrom(t, [][]float64{{10, -1}, {-1, 10}})
	_, err := transport.FindCycle(degenerate, transport.Cell{Row: 1, Col: 0})
	require.ErrorIs(t, err, transport.ErrCycleNotFound)

	full := planFrom(t, [][]float64{{10, 0}, {-1, 10}})
	_, err = transport.FindCycle(full, transport.Cell{Row: 3, Col: 0})
	require.ErrorIs(t, err, transport.ErrCellOutOfRange)
}
