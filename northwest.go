// SPDX-License-Identifier: MIT

package transport

// northwestCorner walks from cell (0,0): after each shipment it moves down when
// the row is used up (and another row exists), otherwise right. Cost-blind;
// useful as a baseline and for textbook comparisons.
// Complexity: O(M+N).
func northwestCorner(plan *Plan, supplies, demands []float64, eps float64) {
	m, n := len(supplies), len(demands)
	rs := append([]float64(nil), supplies...)
	rd := append([]float64(nil), demands...)

	i, j := 0, 0
	for i < m && j < n {
		q := min(rs[i], rd[j])
		plan.set(Cell{Row: i, Col: j}, q)
		rs[i] -= q
		rd[j] -= q

		switch {
		case rs[i] <= eps && i < m-1:
			i++
		case rd[j] <= eps:
			j++
		default:
			i++
		}
	}
}
