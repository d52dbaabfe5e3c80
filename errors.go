// SPDX-License-Identifier: MIT

package transport

import "errors"

// Sentinel errors. Every message carries the "transport:" prefix; callers
// match them with errors.Is, call sites add context with %w.
var (
	// ErrDimensionMismatch indicates that the cost matrix, supplies and demands
	// do not describe the same M×N problem, or that a plan has the wrong shape.
	ErrDimensionMismatch = errors.New("transport: dimension mismatch")

	// ErrInvalidValue indicates a NaN, infinite or negative cost or capacity.
	ErrInvalidValue = errors.New("transport: invalid value")

	// ErrCellOutOfRange is returned when a Cell lies outside the plan.
	ErrCellOutOfRange = errors.New("transport: cell out of range")

	// ErrUnbalanced is returned by phases that require a balanced problem
	// (BuildInitialPlan) when called directly on unbalanced capacities.
	// Solve and SolveByDifferentialRent balance first and never return it.
	ErrUnbalanced = errors.New("transport: total supply differs from total demand")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("transport: invalid option supplied")

	// ErrDegeneracyUnresolved reports that no remaining unallocated cell can
	// join the basis without closing a cycle. The plan is left as it is.
	ErrDegeneracyUnresolved = errors.New("transport: degeneracy unresolved")

	// ErrCycleNotFound reports that no closed loop exists for the entering
	// cell (or the basis does not have m+n-1 cells).
	ErrCycleNotFound = errors.New("transport: cycle not found")

	// ErrRentUndefined reports that no column yields a finite rent.
	ErrRentUndefined = errors.New("transport: rent undefined")

	// ErrRentNoProgress reports a zero rent after the tie population was
	// already widened, i.e. the method cannot advance.
	ErrRentNoProgress = errors.New("transport: differential rent made no progress")

	// ErrRentIterations reports that the Differential Rent iteration budget
	// ran out before the allocation became feasible.
	ErrRentIterations = errors.New("transport: differential rent iteration limit reached")
)
