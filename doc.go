// SPDX-License-Identifier: MIT

// Package transport solves the classical (balanced or unbalanced)
// Transportation Problem: given an M×N cost matrix between suppliers and
// consumers, supply capacities and consumer demands, find the shipment plan
// that satisfies every capacity at minimum total cost.
//
// # Pipeline
//
// The orchestrator Solve runs the phases below on one explicit solver state.
// Every phase is also exported on its own so it can be driven and tested
// independently:
//
//	Balance               insert a zero-cost dummy supplier or consumer when
//	                      total supply and total demand differ.
//	BuildInitialPlan      basic feasible plan (minimum cost by default; the
//	                      northwest corner and Vogel methods are selectable).
//	ResolveDegeneracy     top the basis up to M+N-1 cells with zero allocations
//	                      that keep it acyclic, cheapest candidate first.
//	OptimizeByPotentials  the method of potentials (MODI): potentials u/v by a
//	                      breadth-first walk of the basis tree, reduced costs,
//	                      entering cell, closed cycle, θ-reallocation.
//
// SolveByDifferentialRent is an independent strategy: it raises the tariffs of
// deficit rows by the minimal rent until the minimal-tariff allocation becomes
// feasible. Its total cost is always computed against the original costs.
//
// # Plans
//
// A Plan cell is Unallocated (non-basic), BasicZero (in the basis, carrying
// nothing) or Basic (carrying a positive amount). The "closed" marker used by
// the minimum cost method never leaves the initializer.
//
// # Progress events
//
// Options.OnEvent receives a synchronous notification after each state change
// (BalanceChecked, InitialPlanReady, PotentialsComputed, CycleFound,
// Reallocated, RentComputed, ...). Events carry snapshots, so the observer
// cannot alter solver state. The package itself never logs.
//
// # Numeric policy
//
// Every comparison against zero uses Options.Epsilon (default 1e-9). Amounts
// within ε of zero are stored as exact zeros after each reallocation. Supply
// and demand totals must differ by less than ε (rounding of a few ulps aside).
//
// # Errors
//
//	ErrDegeneracyUnresolved  no acyclic zero-fill candidate; Solve reports it in Result.Warnings.
//	ErrCycleNotFound         MODI cannot close a loop; the last valid plan is returned with it.
//	ErrRentUndefined         Differential Rent found no column with a rent.
//	ErrRentNoProgress        a zero rent after the ties were already widened.
//	ErrRentIterations        the Differential Rent round budget ran out.
//
// Reaching the MODI iteration budget is not an error: the current plan is
// returned with Termination == IterationLimit.
//
// # Layout
//
//	matrix/               dense row-major storage and input validators
//	internal/problemfile/ YAML problem definitions for the CLI
//	internal/trace/       klog-backed event journal
//	cmd/transport/        the `transport solve` command
//	examples/             runnable scenarios
//
// Complexity per iteration for M suppliers and N consumers:
//   - potentials and reduced costs: O(M·N)
//   - cycle search: O(M·N·(M+N))
//   - Differential Rent round: O(M·N·(M+N)) including augmenting paths
package transport
