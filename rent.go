// SPDX-License-Identifier: MIT

package transport

import (
	"fmt"
	"math"

	"github.com/katalvlaran/transport/matrix"
)

// RentResult is the outcome of SolveByDifferentialRent.
type RentResult struct {
	// Problem is the balanced instance that was solved.
	Problem *Problem

	// Plan holds the feasible allocation; only cells carrying more than ε
	// are basic, so the plan may have fewer than M+N-1 basic cells.
	Plan *Plan

	// TotalCost is measured on the original costs, never on the tariffs.
	TotalCost float64

	// Iterations is the index of the round that produced the feasible
	// allocation: the number of rent rounds (including a zero-rent widening
	// round) before it.
	Iterations int

	// Tariffs is the final tariff table.
	Tariffs *matrix.Dense

	// RowRents is the total rent added to each supplier row.
	RowRents []float64
}

// SolveByDifferentialRent solves the problem with the Differential Rent
// method. The input is balanced first, so unbalanced capacities are fine.
//
// Each round:
//  1. The candidates of a column are the rows holding its minimum tariff.
//     In round 0 only, ties go to the row with the largest supply (lowest
//     index next).
//  2. Candidates are filled greedily (unique candidate of a column, then of
//     a row, otherwise the cheapest one) and the allocation is completed
//     along augmenting paths through candidates and filled cells.
//  3. A feasible allocation ends the method.
//  4. Otherwise the rows reachable from an unmet column are the deficit rows.
//     The rent of such a column is the gap between its minimum tariff and
//     the cheapest tariff among the other rows; the smallest rent is added
//     to every deficit row.
//
// A zero rent in round 0 only widens the tie population for the next round.
//
// Errors: ErrDimensionMismatch, ErrInvalidValue, ErrOptionViolation,
// ErrRentUndefined, ErrRentNoProgress, ErrRentIterations.
func SolveByDifferentialRent(costs matrix.Matrix, supplies, demands []float64, opts ...Option) (*RentResult, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	p, err := balance(costs, supplies, demands, &o)
	if err != nil {
		return nil, err
	}

	return solveByDifferentialRent(p, &o)
}

// rentSolver holds the mutable state of one Differential Rent run.
type rentSolver struct {
	o       *Options
	m, n    int
	costs   [][]float64 // original costs
	tariffs *matrix.Dense
	supply  []float64
	demand  []float64
	rents   []float64 // accumulated per row

	// per-round state, row-major where two-dimensional
	t      [][]float64
	vmin   []float64
	cand   []bool
	x      []float64
	filled []bool
	rs, rd []float64
}

func solveByDifferentialRent(p *Problem, o *Options) (*RentResult, error) {
	s := &rentSolver{
		o:       o,
		m:       len(p.Supplies),
		n:       len(p.Demands),
		costs:   p.Costs.ToRows(),
		tariffs: p.Costs.CloneDense(),
		supply:  p.Supplies,
		demand:  p.Demands,
		rents:   make([]float64, len(p.Supplies)),
	}
	s.x = make([]float64, s.m*s.n)
	s.filled = make([]bool, s.m*s.n)

	for it := 0; it < o.RentMaxIterations; it++ {
		s.t = s.tariffs.ToRows()
		s.vmin = s.tariffs.ColMin()
		s.cand = columnCandidates(s.t, s.vmin, s.supply, it == 0, o.Epsilon)
		s.allocate()

		if s.feasible() {
			return s.result(p, it)
		}

		deficit, rents, r, ok := s.rent()
		if o.observed() {
			s.emitRent(it, deficit, rents, r)
		}
		widen, err := checkRent(it, r, ok, o.Epsilon)
		if err != nil {
			return nil, err
		}
		if widen {
			continue // next round keeps every tied row as a candidate
		}

		var i int
		for i = 0; i < s.m; i++ {
			if deficit[i] {
				_ = s.tariffs.AddToRow(i, r) // i < m and r is finite
				s.rents[i] += r
			}
		}
		if o.observed() {
			o.emit(Event{
				Kind:      TariffsUpdated,
				Iteration: it,
				Rent:      r,
				Tariffs:   s.tariffs.ToRows(),
				Message:   fmt.Sprintf("rent %g added to deficit rows", r),
			})
		}
	}

	return nil, fmt.Errorf("differential rent: %d rounds: %w", o.RentMaxIterations, ErrRentIterations)
}

// checkRent decides how a round without a feasible allocation ends. widen
// reports a zero rent in round 0, where the restricted ties are released
// instead of charging rent. A missing rent, or a zero rent in a later round,
// stops the method.
//
// On balanced input neither error occurs: a row with spare supply is never a
// deficit row (the allocation would have an augmenting path to it), so every
// labeled column has a rent; and once all ties are candidates every
// non-deficit row sits more than ε above the column minimum. Tolerance
// effects are the remaining way in.
func checkRent(it int, r float64, ok bool, eps float64) (widen bool, err error) {
	switch {
	case !ok:
		return false, fmt.Errorf("differential rent: round %d: %w", it, ErrRentUndefined)
	case r > eps:
		return false, nil
	case it > 0:
		return false, fmt.Errorf("differential rent: round %d: rent %g: %w", it, r, ErrRentNoProgress)
	default:
		return true, nil
	}
}

// columnCandidates returns the row-major mask of cells holding their column
// minimum vmin. With restrictTies a tied column keeps only the row with the
// largest supply (lowest index on equal supply).
func columnCandidates(t [][]float64, vmin, supply []float64, restrictTies bool, eps float64) []bool {
	m, n := len(t), len(vmin)
	cand := make([]bool, m*n)
	var i, j int
	for j = 0; j < n; j++ {
		pick := -1
		for i = 0; i < m; i++ {
			if t[i][j]-vmin[j] > eps {
				continue
			}
			if !restrictTies {
				cand[i*n+j] = true
				continue
			}
			if pick < 0 || supply[i] > supply[pick] {
				pick = i
			}
		}
		if restrictTies {
			cand[pick*n+j] = true
		}
	}

	return cand
}

func (s *rentSolver) live(i, j int) bool {
	k := i*s.n + j
	return s.cand[k] && !s.filled[k] && s.rs[i] > s.o.Epsilon && s.rd[j] > s.o.Epsilon
}

func (s *rentSolver) fill(i, j int) {
	q := min(s.rs[i], s.rd[j])
	s.x[i*s.n+j] += q
	s.filled[i*s.n+j] = true
	s.rs[i] -= q
	s.rd[j] -= q
}

// allocate rebuilds the round's allocation from scratch: the greedy pass,
// then augmenting paths until none is left.
func (s *rentSolver) allocate() {
	clear(s.x)
	clear(s.filled)
	s.rs = append(s.rs[:0], s.supply...)
	s.rd = append(s.rd[:0], s.demand...)

	var i, j int
	for {
		progress := false
		for j = 0; j < s.n; j++ {
			if r, ok := s.unique(j, false); ok {
				s.fill(r, j)
				progress = true
			}
		}
		for i = 0; i < s.m; i++ {
			if c, ok := s.unique(i, true); ok {
				s.fill(i, c)
				progress = true
			}
		}
		if progress {
			continue
		}

		bi, bj := -1, -1
		for i = 0; i < s.m; i++ {
			for j = 0; j < s.n; j++ {
				if s.live(i, j) && (bi < 0 || s.cheaper(i, j, bi, bj)) {
					bi, bj = i, j
				}
			}
		}
		if bi < 0 {
			break
		}
		s.fill(bi, bj)
	}

	for s.augment() {
	}
}

// unique returns the only live candidate of a row (byRow) or column.
func (s *rentSolver) unique(line int, byRow bool) (int, bool) {
	found, size := -1, s.m
	if byRow {
		size = s.n
	}
	var k int
	for k = 0; k < size; k++ {
		var ok bool
		if byRow {
			ok = s.live(line, k)
		} else {
			ok = s.live(k, line)
		}
		if !ok {
			continue
		}
		if found >= 0 {
			return 0, false
		}
		found = k
	}

	return found, found >= 0
}

// cheaper orders live candidates by tariff, then larger remaining supply,
// then row index.
func (s *rentSolver) cheaper(i, j, bi, bj int) bool {
	if s.t[i][j] != s.t[bi][bj] {
		return s.t[i][j] < s.t[bi][bj]
	}
	if s.rs[i] != s.rs[bi] {
		return s.rs[i] > s.rs[bi]
	}

	return i < bi
}

// augment ships along one shortest path from a row with spare supply to a
// column with unmet demand. Forward legs are candidate cells, backward legs
// are cells carrying a positive amount. It reports whether a path existed.
func (s *rentSolver) augment() bool {
	eps := s.o.Epsilon
	prevRow := make([]int, s.n) // row that reached column j
	prevCol := make([]int, s.m) // column that reached row i, -1 for sources
	seenRow := make([]bool, s.m)
	seenCol := make([]bool, s.n)
	queue := make([]int, 0, s.m+s.n) // rows are [0,M), columns [M,M+N)

	var i, j int
	for i = 0; i < s.m; i++ {
		if s.rs[i] > eps {
			seenRow[i] = true
			prevCol[i] = -1
			queue = append(queue, i)
		}
	}

	end := -1
	for len(queue) > 0 && end < 0 {
		v := queue[0]
		queue = queue[1:]
		if v < s.m {
			for j = 0; j < s.n; j++ {
				if !s.cand[v*s.n+j] || seenCol[j] {
					continue
				}
				seenCol[j] = true
				prevRow[j] = v
				if s.rd[j] > eps {
					end = j
					break
				}
				queue = append(queue, s.m+j)
			}
			continue
		}
		j = v - s.m
		for i = 0; i < s.m; i++ {
			if s.x[i*s.n+j] > eps && !seenRow[i] {
				seenRow[i] = true
				prevCol[i] = j
				queue = append(queue, i)
			}
		}
	}
	if end < 0 {
		return false
	}

	// bottleneck, walking back from the end column
	b := s.rd[end]
	for j = end; ; {
		i = prevRow[j]
		if prevCol[i] < 0 {
			b = min(b, s.rs[i])
			break
		}
		j = prevCol[i]
		b = min(b, s.x[i*s.n+j])
	}

	for j = end; ; {
		i = prevRow[j]
		s.x[i*s.n+j] += b
		if prevCol[i] < 0 {
			s.rs[i] -= b
			break
		}
		j = prevCol[i]
		s.x[i*s.n+j] -= b
	}
	s.rd[end] -= b

	return true
}

func (s *rentSolver) feasible() bool {
	for _, r := range s.rs {
		if r > s.o.Epsilon {
			return false
		}
	}
	for _, r := range s.rd {
		if r > s.o.Epsilon {
			return false
		}
	}

	return true
}

// rent labels the deficit rows and prices every labeled column. rents holds
// NaN for columns without a rent; ok is false when no column has one.
func (s *rentSolver) rent() (deficit []bool, rents []float64, r float64, ok bool) {
	eps := s.o.Epsilon
	deficit = make([]bool, s.m)
	labeled := make([]bool, s.n)
	queue := make([]int, 0, s.m+s.n)

	var i, j int
	for j = 0; j < s.n; j++ {
		if s.rd[j] > eps {
			labeled[j] = true
			queue = append(queue, s.m+j)
		}
	}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if v >= s.m {
			j = v - s.m
			for i = 0; i < s.m; i++ {
				if s.cand[i*s.n+j] && !deficit[i] {
					deficit[i] = true
					queue = append(queue, i)
				}
			}
			continue
		}
		for j = 0; j < s.n; j++ {
			if s.x[v*s.n+j] > eps && !labeled[j] {
				labeled[j] = true
				queue = append(queue, s.m+j)
			}
		}
	}

	rents = make([]float64, s.n)
	r = math.Inf(1)
	for j = 0; j < s.n; j++ {
		rents[j] = math.NaN()
		if !labeled[j] {
			continue
		}
		for i = 0; i < s.m; i++ {
			if deficit[i] {
				continue
			}
			gap := math.Max(s.t[i][j]-s.vmin[j], 0)
			if math.IsNaN(rents[j]) || gap < rents[j] {
				rents[j] = gap
			}
		}
		if !math.IsNaN(rents[j]) {
			r = math.Min(r, rents[j])
			ok = true
		}
	}
	if !ok {
		r = math.NaN()
	}

	return deficit, rents, r, ok
}

func (s *rentSolver) emitRent(it int, deficit []bool, rents []float64, r float64) {
	var dr, sr []int
	for i := 0; i < s.m; i++ {
		switch {
		case deficit[i]:
			dr = append(dr, i)
		case s.rs[i] > s.o.Epsilon:
			sr = append(sr, i)
		}
	}
	s.o.emit(Event{
		Kind:        RentComputed,
		Iteration:   it,
		Plan:        s.plan(),
		Cost:        s.cost(),
		Rent:        r,
		Rents:       rents,
		DeficitRows: dr,
		SurplusRows: sr,
		Message:     fmt.Sprintf("deficit rows %v, surplus rows %v, rent %g", dr, sr, r),
	})
}

// plan converts the round's allocation into a Plan.
func (s *rentSolver) plan() *Plan {
	p := &Plan{rows: s.m, cols: s.n, amount: make([]float64, s.m*s.n), basic: make([]bool, s.m*s.n)}
	for k, q := range s.x {
		if q > s.o.Epsilon {
			p.amount[k] = q
			p.basic[k] = true
		}
	}

	return p
}

func (s *rentSolver) cost() float64 {
	var total float64
	for k, q := range s.x {
		if q > s.o.Epsilon {
			total += s.costs[k/s.n][k%s.n] * q
		}
	}

	return total
}

func (s *rentSolver) result(p *Problem, it int) (*RentResult, error) {
	res := &RentResult{
		Problem:    p,
		Plan:       s.plan(),
		TotalCost:  s.cost(),
		Iterations: it,
		Tariffs:    s.tariffs.CloneDense(),
		RowRents:   append([]float64(nil), s.rents...),
	}
	if s.o.observed() {
		s.o.emit(Event{
			Kind:      OptimalReached,
			Iteration: it,
			Plan:      res.Plan.Clone(),
			Cost:      res.TotalCost,
			Message:   fmt.Sprintf("feasible allocation in round %d, cost %g", it, res.TotalCost),
		})
	}

	return res, nil
}
