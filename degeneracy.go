// SPDX-License-Identifier: MIT

package transport

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/transport/matrix"
)

// ResolveDegeneracy tops plan up to M+N-1 basic cells by adding BasicZero
// allocations. For every missing slot it takes the cheapest unallocated cell
// (row-major order on equal costs) that keeps the basis acyclic. Row and
// column sums are untouched.
//
// The returned cells are the ones added, in order. When no unallocated cell
// can join without closing a cycle the plan keeps what was added so far and
// the error wraps ErrDegeneracyUnresolved; callers may continue on a best
// effort basis. A basis that already contains a cycle is reported the same
// way, even when it has M+N-1 cells.
//
// Cheapest-acyclic is a heuristic: a different zero cell could save MODI
// iterations but never changes the optimum.
//
// Errors: ErrDimensionMismatch, ErrOptionViolation, ErrDegeneracyUnresolved.
// Complexity: O(M·N·(M+N)) for the cycle check, then O(M·N·log(M·N)).
func ResolveDegeneracy(plan *Plan, costs matrix.Matrix, opts ...Option) ([]Cell, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	c, err := planGrid(plan, costs)
	if err != nil {
		return nil, err
	}

	return resolveDegeneracy(plan, c, &o)
}

// planGrid checks that plan and costs agree in shape and returns the grid.
func planGrid(plan *Plan, costs matrix.Matrix) ([][]float64, error) {
	if plan == nil {
		return nil, fmt.Errorf("%w: nil plan", ErrDimensionMismatch)
	}
	if err := matrix.ValidateNotNil(costs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDimensionMismatch, err)
	}
	if costs.Rows() != plan.rows || costs.Cols() != plan.cols {
		return nil, fmt.Errorf("%w: costs %d×%d, plan %d×%d",
			ErrDimensionMismatch, costs.Rows(), costs.Cols(), plan.rows, plan.cols)
	}
	c := grid(costs)
	if err := matrix.ValidateFinite(c); err != nil {
		return nil, fmt.Errorf("%w: costs: %w", ErrInvalidValue, err)
	}

	return c, nil
}

func resolveDegeneracy(plan *Plan, c [][]float64, o *Options) ([]Cell, error) {
	m, n := plan.rows, plan.cols
	need := m + n - 1
	have := plan.BasicCount()

	var (
		added []Cell
		err   error
	)
	switch {
	case pruneLeaves(basisMask(plan), m, n) > 0:
		// a full basis with a cycle leaves some row or column disconnected
		err = fmt.Errorf("%w: basis already contains a cycle", ErrDegeneracyUnresolved)
	case have >= need:
		// already a spanning tree
	default:
		added, err = fillForest(plan, c, need-have)
	}

	if o.observed() {
		o.emit(Event{
			Kind:    DegeneracyResolved,
			Plan:    plan.Clone(),
			Cost:    plan.cost(c),
			Cells:   append([]Cell(nil), added...),
			Err:     err,
			Message: fmt.Sprintf("added %d zero allocations, basis %d/%d", len(added), plan.BasicCount(), need),
		})
	}

	return added, err
}

// fillForest adds up to missing BasicZero cells to an acyclic basis. On a
// forest, a cell closes a cycle exactly when its row and column are already
// connected, so a disjoint-set over rows and columns replaces repeated
// leaf pruning.
func fillForest(plan *Plan, c [][]float64, missing int) ([]Cell, error) {
	m, n := plan.rows, plan.cols
	ds := newDisjointSet(m + n)
	candidates := make([]Cell, 0, m*n)
	var i, j int
	for i = 0; i < m; i++ {
		for j = 0; j < n; j++ {
			if plan.basic[i*n+j] {
				ds.union(i, m+j)
			} else {
				candidates = append(candidates, Cell{Row: i, Col: j})
			}
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return c[candidates[a].Row][candidates[a].Col] < c[candidates[b].Row][candidates[b].Col]
	})

	added := make([]Cell, 0, missing)
	for _, cell := range candidates {
		if len(added) == missing {
			break
		}
		if !ds.union(cell.Row, m+cell.Col) {
			continue // would close a cycle
		}
		plan.set(cell, 0)
		added = append(added, cell)
	}
	if len(added) < missing {
		return added, fmt.Errorf("%w: %d of %d zero allocations placed", ErrDegeneracyUnresolved, len(added), missing)
	}

	return added, nil
}

// disjointSet is union-find with path halving and union by rank over
// rows [0,M) and columns [M,M+N).
type disjointSet struct {
	parent []int
	rank   []int
}

func newDisjointSet(size int) *disjointSet {
	ds := &disjointSet{parent: make([]int, size), rank: make([]int, size)}
	for k := range ds.parent {
		ds.parent[k] = k
	}

	return ds
}

func (ds *disjointSet) find(x int) int {
	for ds.parent[x] != x {
		ds.parent[x] = ds.parent[ds.parent[x]]
		x = ds.parent[x]
	}

	return x
}

// union merges the sets of a and b and reports false if they were one set.
func (ds *disjointSet) union(a, b int) bool {
	ra, rb := ds.find(a), ds.find(b)
	if ra == rb {
		return false
	}
	switch {
	case ds.rank[ra] < ds.rank[rb]:
		ds.parent[ra] = rb
	case ds.rank[ra] > ds.rank[rb]:
		ds.parent[rb] = ra
	default:
		ds.parent[rb] = ra
		ds.rank[ra]++
	}

	return true
}
