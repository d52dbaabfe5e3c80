// SPDX-License-Identifier: MIT

package transport

import (
	"fmt"

	"github.com/katalvlaran/transport/matrix"
)

// Termination tells why an optimizer stopped.
type Termination int

const (
	// Optimal: no improving cell remains.
	Optimal Termination = iota

	// IterationLimit: the reallocation budget ran out; the plan is feasible
	// but possibly suboptimal.
	IterationLimit

	// NoCycle: no closed loop was found for the entering cell; the plan is the
	// last feasible one.
	NoCycle
)

// String returns a short name.
func (t Termination) String() string {
	switch t {
	case Optimal:
		return "optimal"
	case IterationLimit:
		return "max-iterations-reached"
	case NoCycle:
		return "cycle-not-found"
	default:
		return fmt.Sprintf("Termination(%d)", int(t))
	}
}

// PotentialsResult is the outcome of OptimizeByPotentials.
type PotentialsResult struct {
	// Plan is the optimized plan (the same instance that was passed in).
	Plan *Plan

	// TotalCost of Plan.
	TotalCost float64

	// Iterations counts the reallocations performed.
	Iterations int

	// Termination tells why the loop stopped.
	Termination Termination

	// Potentials and Deltas belong to the last basis examined. When
	// Termination is Optimal every delta is ≤ ε.
	Potentials *Potentials
	Deltas     [][]float64

	// Diagnostic is a one-line human-readable summary.
	Diagnostic string
}

// OptimizeByPotentials improves a basic feasible plan with the method of
// potentials (MODI) and mutates plan in place.
//
// Each iteration computes potentials, reduced costs and the entering cell
// (largest positive delta). The loop around the entering cell shifts
// θ = min(decreasing legs) and the first decreasing leg that empties leaves
// the basis, so the basis keeps M+N-1 cells.
//
// The returned result is never nil once the inputs are valid. A cycle failure
// returns the result together with an error wrapping ErrCycleNotFound.
//
// Errors: ErrDimensionMismatch, ErrOptionViolation, ErrCycleNotFound.
// Complexity: O(K·M·N·(M+N)) for K iterations.
func OptimizeByPotentials(costs matrix.Matrix, plan *Plan, opts ...Option) (*PotentialsResult, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	c, err := planGrid(plan, costs)
	if err != nil {
		return nil, err
	}

	return optimizeByPotentials(c, plan, &o)
}

func optimizeByPotentials(c [][]float64, plan *Plan, o *Options) (*PotentialsResult, error) {
	res := &PotentialsResult{Plan: plan}

	for iter := 0; ; iter++ {
		pot := potentials(plan, c)
		deltas := reducedCosts(plan, c, pot)
		res.Potentials, res.Deltas, res.Iterations = pot, deltas, iter
		res.TotalCost = plan.cost(c)

		in, delta, improving := entering(plan, deltas, o.Epsilon)
		if o.observed() {
			o.emit(Event{
				Kind:      PotentialsComputed,
				Iteration: iter,
				U:         append([]float64(nil), pot.U...),
				V:         append([]float64(nil), pot.V...),
				Reference: pot.Reference,
				Message:   fmt.Sprintf("reference row %d, disconnected %t", pot.Reference, pot.Disconnected),
			})
			ev := Event{Kind: DeltasComputed, Iteration: iter, Deltas: cloneGrid(deltas)}
			if improving {
				ev.Entering = in
				ev.Message = fmt.Sprintf("entering %v with delta %g", in, delta)
			} else {
				ev.Message = "no positive delta"
			}
			o.emit(ev)
		}

		if !improving {
			res.Termination = Optimal
			res.Diagnostic = fmt.Sprintf("optimal after %d iterations, cost %g", iter, res.TotalCost)
			o.finish(OptimalReached, iter, plan, res)
			return res, nil
		}
		if iter == o.MaxIterations {
			res.Termination = IterationLimit
			res.Diagnostic = fmt.Sprintf("stopped after %d iterations, cost %g, %v still improves by %g",
				iter, res.TotalCost, in, delta)
			o.finish(MaxIterationsReached, iter, plan, res)
			return res, nil
		}

		cycle, err := findCycle(plan, in)
		if err != nil {
			res.Termination = NoCycle
			res.Diagnostic = fmt.Sprintf("iteration %d: %v", iter, err)
			return res, fmt.Errorf("optimize by potentials: iteration %d: %w", iter, err)
		}
		if o.observed() {
			o.emit(Event{
				Kind:      CycleFound,
				Iteration: iter,
				Cells:     append([]Cell(nil), cycle...),
				Entering:  in,
				Message:   fmt.Sprintf("cycle %v", cycle),
			})
		}

		theta, leaving := reallocate(plan, cycle, o.Epsilon)
		if o.observed() {
			o.emit(Event{
				Kind:      Reallocated,
				Iteration: iter,
				Plan:      plan.Clone(),
				Cost:      plan.cost(c),
				Entering:  in,
				Leaving:   leaving,
				Theta:     theta,
				Message:   fmt.Sprintf("θ=%g, %v enters, %v leaves", theta, in, leaving),
			})
		}
	}
}

// reallocate shifts θ around cycle and removes the leaving cell from the
// basis. Later decreasing legs that also empty stay as BasicZero.
func reallocate(plan *Plan, cycle []Cell, eps float64) (theta float64, leaving Cell) {
	theta = plan.Amount(cycle[1])
	for k := 3; k < len(cycle); k += 2 {
		theta = min(theta, plan.Amount(cycle[k]))
	}

	plan.set(cycle[0], 0)
	for k, cell := range cycle {
		if k%2 == 0 {
			plan.add(cell, theta, eps)
		} else {
			plan.add(cell, -theta, eps)
		}
	}

	leaving = Cell{Row: -1, Col: -1}
	for k := 1; k < len(cycle); k += 2 {
		if plan.Amount(cycle[k]) == 0 {
			leaving = cycle[k]
			plan.unset(leaving)
			break
		}
	}

	return theta, leaving
}

// finish emits the terminal event of the MODI loop.
func (o *Options) finish(kind EventKind, iter int, plan *Plan, res *PotentialsResult) {
	if !o.observed() {
		return
	}
	o.emit(Event{
		Kind:      kind,
		Iteration: iter,
		Plan:      plan.Clone(),
		Cost:      res.TotalCost,
		Message:   res.Diagnostic,
	})
}

func cloneGrid(g [][]float64) [][]float64 {
	out := make([][]float64, len(g))
	for i := range g {
		out[i] = append([]float64(nil), g[i]...)
	}

	return out
}
