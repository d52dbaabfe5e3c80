// SPDX-License-Identifier: MIT

package transport

import "github.com/katalvlaran/transport/matrix"

// FindCycle exposes the MODI loop search.
var FindCycle = findCycle

// CheckRent exposes the end-of-round decision of Differential Rent.
var CheckRent = checkRent

// ColumnCandidates exposes the minimal-tariff selection of one Differential
// Rent round as a row-by-column mask.
func ColumnCandidates(tariffs [][]float64, supply []float64, restrictTies bool) [][]bool {
	d, err := matrix.NewFromRows(tariffs)
	if err != nil {
		panic(err)
	}
	flat := columnCandidates(tariffs, d.ColMin(), supply, restrictTies, DefaultEpsilon)

	out := make([][]bool, d.Rows())
	for i := range out {
		out[i] = flat[i*d.Cols() : (i+1)*d.Cols()]
	}

	return out
}

// RentRound prices one Differential Rent round on a crafted state: tariffs,
// candidate mask, current allocation and remaining capacities. It returns the
// deficit rows, the per-column rents, the minimal rent and whether any
// column has a rent.
func RentRound(tariffs [][]float64, cand [][]bool, x [][]float64, rs, rd []float64) ([]bool, []float64, float64, bool) {
	d, err := matrix.NewFromRows(tariffs)
	if err != nil {
		panic(err)
	}
	o := DefaultOptions()
	m, n := d.Rows(), d.Cols()
	s := &rentSolver{
		o:    &o,
		m:    m,
		n:    n,
		t:    tariffs,
		vmin: d.ColMin(),
		cand: make([]bool, m*n),
		x:    make([]float64, m*n),
		rs:   rs,
		rd:   rd,
	}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			s.cand[i*n+j] = cand[i][j]
			s.x[i*n+j] = x[i][j]
		}
	}

	return s.rent()
}
