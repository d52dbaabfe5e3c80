// SPDX-License-Identifier: MIT

package transport

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/transport/matrix"
)

// Result is the outcome of Solve.
type Result struct {
	// Problem is the balanced instance, dummy participant included.
	Problem *Problem

	// Plan is the final allocation over Problem's dimensions.
	Plan *Plan

	// TotalCost is measured on the (balanced) original costs.
	TotalCost float64

	// Method that produced the plan.
	Method Method

	// Iterations counts MODI reallocations or Differential Rent rounds.
	Iterations int

	// Termination is Optimal unless MODI stopped early.
	Termination Termination

	// Potentials and Deltas of the final basis (MethodPotentials only).
	Potentials *Potentials
	Deltas     [][]float64

	// RowRents is the rent accumulated per row (MethodDifferentialRent only).
	RowRents []float64

	// Warnings collects non-fatal conditions such as ErrDegeneracyUnresolved.
	Warnings []error

	// Diagnostic is a one-line summary of how the solve ended.
	Diagnostic string
}

// Shipment is one positive flow of a plan.
type Shipment struct {
	From, To int
	Amount   float64
	UnitCost float64
	Cost     float64

	// Dummy marks flows from the dummy supplier (unmet demand) or to the
	// dummy consumer (undelivered supply).
	Dummy bool
}

// Shipments lists the positive flows of r.Plan in row-major order.
func (r *Result) Shipments() []Shipment {
	if r == nil || r.Plan == nil || r.Problem == nil {
		return nil
	}
	c := r.Problem.Costs.ToRows()
	var out []Shipment
	for _, cell := range r.Plan.BasicCells() {
		q := r.Plan.Amount(cell)
		if q == 0 {
			continue
		}
		unit := c[cell.Row][cell.Col]
		out = append(out, Shipment{
			From:     cell.Row,
			To:       cell.Col,
			Amount:   q,
			UnitCost: unit,
			Cost:     unit * q,
			Dummy:    r.Problem.IsDummy(cell),
		})
	}

	return out
}

// Solve validates and balances the problem, then runs the selected method.
//
// MethodPotentials (default): BuildInitialPlan → ResolveDegeneracy →
// OptimizeByPotentials. An unresolved degeneracy is recorded in
// Result.Warnings and optimization continues on a best effort basis; a cycle
// failure returns the last feasible plan together with an error wrapping
// ErrCycleNotFound.
//
// MethodDifferentialRent: SolveByDifferentialRent on the balanced problem; a
// failure returns a nil Result.
//
// Errors: ErrDimensionMismatch, ErrInvalidValue, ErrOptionViolation,
// ErrCycleNotFound, ErrRentUndefined, ErrRentNoProgress, ErrRentIterations.
func Solve(costs [][]float64, supplies, demands []float64, opts ...Option) (*Result, error) {
	if err := matrix.ValidateRectangular(costs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDimensionMismatch, err)
	}
	dense, err := matrix.NewFromRows(costs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}

	return SolveMatrix(dense, supplies, demands, opts...)
}

// SolveMatrix is Solve for a cost matrix that is already a matrix.Matrix.
func SolveMatrix(costs matrix.Matrix, supplies, demands []float64, opts ...Option) (*Result, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	p, err := balance(costs, supplies, demands, &o)
	if err != nil {
		return nil, err
	}

	s := &solver{o: &o, problem: p, costs: p.Costs.ToRows()}
	if o.Method == MethodDifferentialRent {
		return s.rent()
	}

	return s.potentials()
}

// solver carries the state shared by the phases of one Solve call.
type solver struct {
	o        *Options
	problem  *Problem
	costs    [][]float64
	plan     *Plan
	warnings []error
}

func (s *solver) potentials() (*Result, error) {
	plan, err := buildInitialPlan(s.costs, s.problem.Supplies, s.problem.Demands, s.o)
	if err != nil {
		return nil, err
	}
	s.plan = plan

	if _, err = resolveDegeneracy(s.plan, s.costs, s.o); err != nil {
		if !errors.Is(err, ErrDegeneracyUnresolved) {
			return nil, err
		}
		s.warnings = append(s.warnings, err)
	}

	pr, err := optimizeByPotentials(s.costs, s.plan, s.o)
	res := &Result{
		Problem:     s.problem,
		Plan:        pr.Plan,
		TotalCost:   pr.TotalCost,
		Method:      MethodPotentials,
		Iterations:  pr.Iterations,
		Termination: pr.Termination,
		Potentials:  pr.Potentials,
		Deltas:      pr.Deltas,
		Warnings:    s.warnings,
		Diagnostic:  pr.Diagnostic,
	}

	return res, err
}

func (s *solver) rent() (*Result, error) {
	rr, err := solveByDifferentialRent(s.problem, s.o)
	if err != nil {
		return nil, err
	}
	s.plan = rr.Plan

	return &Result{
		Problem:     s.problem,
		Plan:        rr.Plan,
		TotalCost:   rr.TotalCost,
		Method:      MethodDifferentialRent,
		Iterations:  rr.Iterations,
		Termination: Optimal,
		RowRents:    rr.RowRents,
		Diagnostic:  fmt.Sprintf("feasible allocation in round %d, cost %g", rr.Iterations, rr.TotalCost),
	}, nil
}
