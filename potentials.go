// SPDX-License-Identifier: MIT

package transport

import (
	"fmt"

	"github.com/katalvlaran/transport/matrix"
)

// Potentials are the dual variables of a basis: U[i] + V[j] == cost[i][j] on
// every basic cell.
type Potentials struct {
	U []float64 // per supplier
	V []float64 // per consumer

	// Reference is the row whose potential was fixed to 0: the row with the
	// most basic cells, the first one on ties.
	Reference int

	// Disconnected reports that some potential could not be reached from the
	// reference row and was set to 0. A spanning basis never sets it.
	Disconnected bool
}

// ComputePotentials solves the dual system of plan's basis.
//
// The basis is viewed as a bipartite graph (rows and columns as vertices,
// basic cells as edges) and traversed breadth-first from the reference row.
//
// Errors: ErrDimensionMismatch.
// Complexity: O(M·N).
func ComputePotentials(plan *Plan, costs matrix.Matrix) (*Potentials, error) {
	c, err := planGrid(plan, costs)
	if err != nil {
		return nil, err
	}

	return potentials(plan, c), nil
}

// vertex ids: rows are [0,M), columns are [M,M+N).
func potentials(plan *Plan, c [][]float64) *Potentials {
	m, n := plan.rows, plan.cols
	ref, best := 0, -1
	var i, j int
	for i = 0; i < m; i++ {
		if k := plan.RowBasicCount(i); k > best {
			ref, best = i, k
		}
	}

	pot := &Potentials{U: make([]float64, m), V: make([]float64, n), Reference: ref}
	seen := make([]bool, m+n)
	queue := make([]int, 0, m+n)
	seen[ref] = true
	queue = append(queue, ref)

	for len(queue) > 0 {
		x := queue[0]
		queue = queue[1:]
		if x < m {
			for j = 0; j < n; j++ {
				if plan.basic[x*n+j] && !seen[m+j] {
					seen[m+j] = true
					pot.V[j] = c[x][j] - pot.U[x]
					queue = append(queue, m+j)
				}
			}
			continue
		}
		j = x - m
		for i = 0; i < m; i++ {
			if plan.basic[i*n+j] && !seen[i] {
				seen[i] = true
				pot.U[i] = c[i][j] - pot.V[j]
				queue = append(queue, i)
			}
		}
	}

	for _, ok := range seen {
		if !ok {
			pot.Disconnected = true
			break
		}
	}

	return pot
}

// ReducedCosts returns delta[i][j] = U[i] + V[j] - cost[i][j] for every
// non-basic cell; basic cells hold 0. A positive delta marks a cell whose
// entry lowers the total cost.
//
// Errors: ErrDimensionMismatch when pot does not match plan.
func ReducedCosts(plan *Plan, costs matrix.Matrix, pot *Potentials) ([][]float64, error) {
	c, err := planGrid(plan, costs)
	if err != nil {
		return nil, err
	}
	if pot == nil || len(pot.U) != plan.rows || len(pot.V) != plan.cols {
		return nil, fmt.Errorf("%w: potentials do not match %d×%d plan", ErrDimensionMismatch, plan.rows, plan.cols)
	}

	return reducedCosts(plan, c, pot), nil
}

func reducedCosts(plan *Plan, c [][]float64, pot *Potentials) [][]float64 {
	m, n := plan.rows, plan.cols
	deltas := make([][]float64, m)
	var i, j int
	for i = 0; i < m; i++ {
		deltas[i] = make([]float64, n)
		for j = 0; j < n; j++ {
			if !plan.basic[i*n+j] {
				deltas[i][j] = pot.U[i] + pot.V[j] - c[i][j]
			}
		}
	}

	return deltas
}

// entering returns the non-basic cell with the strictly largest delta above
// eps (first in row-major order on ties).
func entering(plan *Plan, deltas [][]float64, eps float64) (Cell, float64, bool) {
	var (
		best  Cell
		bestD = eps
		found bool
		i, j  int
	)
	for i = 0; i < plan.rows; i++ {
		for j = 0; j < plan.cols; j++ {
			if !plan.basic[i*plan.cols+j] && deltas[i][j] > bestD {
				best, bestD, found = Cell{Row: i, Col: j}, deltas[i][j], true
			}
		}
	}

	return best, bestD, found
}
