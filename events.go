// SPDX-License-Identifier: MIT

package transport

import "fmt"

// EventKind identifies the state change an Event reports.
type EventKind int

const (
	// BalanceChecked follows Balance; TotalSupply/TotalDemand are the raw totals.
	BalanceChecked EventKind = iota

	// InitialPlanReady follows BuildInitialPlan; Plan and Cost are set.
	InitialPlanReady

	// DegeneracyResolved follows ResolveDegeneracy; Cells lists the zero
	// allocations added and Err carries ErrDegeneracyUnresolved when the basis
	// could not be completed.
	DegeneracyResolved

	// PotentialsComputed carries U, V and the Reference row.
	PotentialsComputed

	// DeltasComputed carries the reduced-cost grid and the entering cell.
	DeltasComputed

	// CycleFound carries the loop in Cells (even positions increase).
	CycleFound

	// Reallocated carries Theta, Entering, Leaving, the new Plan and Cost.
	Reallocated

	// OptimalReached reports the final Plan and Cost.
	OptimalReached

	// MaxIterationsReached reports the current (possibly suboptimal) Plan.
	MaxIterationsReached

	// RentComputed carries per-column Rents, the minimum Rent and the row classes.
	RentComputed

	// TariffsUpdated carries the Tariffs after the rent was added.
	TariffsUpdated
)

var eventKindNames = [...]string{
	BalanceChecked:       "BalanceChecked",
	InitialPlanReady:     "InitialPlanReady",
	DegeneracyResolved:   "DegeneracyResolved",
	PotentialsComputed:   "PotentialsComputed",
	DeltasComputed:       "DeltasComputed",
	CycleFound:           "CycleFound",
	Reallocated:          "Reallocated",
	OptimalReached:       "OptimalReached",
	MaxIterationsReached: "MaxIterationsReached",
	RentComputed:         "RentComputed",
	TariffsUpdated:       "TariffsUpdated",
}

// String returns the event kind name.
func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}

	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is a one-way progress notification. Only the fields relevant to Kind
// are populated; slices and plans are copies owned by the receiver.
type Event struct {
	Kind      EventKind
	Iteration int

	// Plan snapshot and its total cost.
	Plan *Plan
	Cost float64

	// Balance totals (BalanceChecked).
	TotalSupply float64
	TotalDemand float64
	SupplyDummy bool
	DemandDummy bool

	// Potentials and reduced costs.
	U, V      []float64
	Reference int
	Deltas    [][]float64

	// Cells: cycle order or zero-filled cells.
	Cells    []Cell
	Entering Cell
	Leaving  Cell
	Theta    float64

	// Differential Rent data.
	Rent        float64
	Rents       []float64 // per column; NaN where no rent is defined
	DeficitRows []int
	SurplusRows []int
	Tariffs     [][]float64

	// Err carries a warning attached to the event (e.g. ErrDegeneracyUnresolved).
	Err error

	// Message is a human-readable one-line summary.
	Message string
}
