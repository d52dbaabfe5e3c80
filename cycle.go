// SPDX-License-Identifier: MIT

package transport

import "fmt"

// pruneLeaves repeatedly drops every marked cell that is alone in its row or
// in its column. in is an M×N row-major mask and is modified in place; the
// cells still marked afterwards lie on cycles (none remain for a forest).
// Complexity: O(M·N·(M+N)).
func pruneLeaves(in []bool, m, n int) (left int) {
	rowCnt := make([]int, m)
	colCnt := make([]int, n)
	var i, j int
	for i = 0; i < m; i++ {
		for j = 0; j < n; j++ {
			if in[i*n+j] {
				rowCnt[i]++
				colCnt[j]++
				left++
			}
		}
	}

	for changed := true; changed && left > 0; {
		changed = false
		for i = 0; i < m; i++ {
			for j = 0; j < n; j++ {
				if !in[i*n+j] || (rowCnt[i] > 1 && colCnt[j] > 1) {
					continue
				}
				in[i*n+j] = false
				rowCnt[i]--
				colCnt[j]--
				left--
				changed = true
			}
		}
	}

	return left
}

// basisMask copies the basis of p into a fresh mask.
func basisMask(p *Plan) []bool {
	return append([]bool(nil), p.basic...)
}

// findCycle returns the closed loop formed by the basis of p plus entering.
// The loop starts at entering and alternates row moves and column moves, so
// even positions gain θ and odd positions give it up.
//
// The basis must hold exactly M+N-1 cells (a spanning tree), otherwise the
// walk is not guaranteed to be unique; such plans fail with ErrCycleNotFound.
func findCycle(p *Plan, entering Cell) ([]Cell, error) {
	m, n := p.rows, p.cols
	if !p.contains(entering) {
		return nil, fmt.Errorf("%w: %v", ErrCellOutOfRange, entering)
	}
	if k := p.BasicCount(); k != m+n-1 {
		return nil, fmt.Errorf("%w: basis has %d cells, want %d", ErrCycleNotFound, k, m+n-1)
	}

	in := basisMask(p)
	in[entering.Row*n+entering.Col] = true
	if pruneLeaves(in, m, n) == 0 || !in[entering.Row*n+entering.Col] {
		return nil, fmt.Errorf("%w: entering %v closes no loop", ErrCycleNotFound, entering)
	}

	path := []Cell{entering}
	in[entering.Row*n+entering.Col] = false
	cur, alongRow := entering, true
	for {
		next, ok := nextOnLine(in, m, n, cur, alongRow)
		if !ok {
			break
		}
		in[next.Row*n+next.Col] = false
		path = append(path, next)
		cur, alongRow = next, !alongRow
	}

	if len(path) < 4 || len(path)%2 != 0 || path[len(path)-1].Col != entering.Col {
		return nil, fmt.Errorf("%w: walk from %v does not close (%d cells)", ErrCycleNotFound, entering, len(path))
	}

	return path, nil
}

// nextOnLine returns the first remaining cell in cur's row (alongRow) or
// column.
func nextOnLine(in []bool, m, n int, cur Cell, alongRow bool) (Cell, bool) {
	var k int
	if alongRow {
		for k = 0; k < n; k++ {
			if in[cur.Row*n+k] {
				return Cell{Row: cur.Row, Col: k}, true
			}
		}

		return Cell{}, false
	}
	for k = 0; k < m; k++ {
		if in[k*n+cur.Col] {
			return Cell{Row: k, Col: cur.Col}, true
		}
	}

	return Cell{}, false
}
