// SPDX-License-Identifier: MIT

package transport

import "math"

// vogel applies Vogel's approximation method. The penalty of an active line
// is the gap between its two cheapest active costs (the cost itself when only
// one remains). The line with the largest penalty is served through its
// cheapest cell; rows win ties over columns, lower indices win within a kind.
// Complexity: O((M+N)·M·N).
func vogel(plan *Plan, c [][]float64, supplies, demands []float64, eps float64) {
	m, n := len(supplies), len(demands)
	rs := append([]float64(nil), supplies...)
	rd := append([]float64(nil), demands...)
	rowDone := make([]bool, m)
	colDone := make([]bool, n)

	var i, j int
	for {
		best, isRow, line := -1.0, false, -1
		for i = 0; i < m; i++ {
			if rowDone[i] {
				continue
			}
			p, ok := penalty(n, colDone, func(k int) float64 { return c[i][k] })
			if !ok {
				return // no active column left
			}
			if line < 0 || p > best {
				best, isRow, line = p, true, i
			}
		}
		if line < 0 {
			return // no active row left
		}
		for j = 0; j < n; j++ {
			if colDone[j] {
				continue
			}
			p, _ := penalty(m, rowDone, func(k int) float64 { return c[k][j] })
			if p > best {
				best, isRow, line = p, false, j
			}
		}

		var cell Cell
		if isRow {
			cell = Cell{Row: line, Col: cheapest(n, colDone, func(k int) float64 { return c[line][k] })}
		} else {
			cell = Cell{Row: cheapest(m, rowDone, func(k int) float64 { return c[k][line] }), Col: line}
		}

		q := min(rs[cell.Row], rd[cell.Col])
		plan.set(cell, q)
		rs[cell.Row] -= q
		rd[cell.Col] -= q
		switch {
		case rs[cell.Row] <= eps:
			rs[cell.Row] = 0
			rowDone[cell.Row] = true
		case rd[cell.Col] <= eps:
			rd[cell.Col] = 0
			colDone[cell.Col] = true
		}
	}
}

// penalty returns the difference between the two smallest active values of a
// line of length size; ok is false when no entry is active.
func penalty(size int, done []bool, at func(int) float64) (p float64, ok bool) {
	lo, hi := math.Inf(1), math.Inf(1)
	var k int
	for k = 0; k < size; k++ {
		if done[k] {
			continue
		}
		ok = true
		v := at(k)
		switch {
		case v < lo:
			lo, hi = v, lo
		case v < hi:
			hi = v
		}
	}
	if !ok {
		return 0, false
	}
	if math.IsInf(hi, 1) {
		return lo, true
	}

	return hi - lo, true
}

// cheapest returns the first active index with the smallest value.
func cheapest(size int, done []bool, at func(int) float64) int {
	best := -1
	var k int
	for k = 0; k < size; k++ {
		if done[k] {
			continue
		}
		if best < 0 || at(k) < at(best) {
			best = k
		}
	}

	return best
}
