// SPDX-License-Identifier: MIT

// Package trace logs solver progress events through klog and keeps an
// in-memory journal of them for later display.
package trace

import (
	"fmt"

	"k8s.io/klog/v2"

	"github.com/katalvlaran/transport"
)

// Verbosity levels used for the event kinds.
const (
	// LevelPhase covers phase boundaries: balancing, initial plan, termination.
	LevelPhase klog.Level = 1

	// LevelStep covers reallocations, cycles, rents and tariff updates.
	LevelStep klog.Level = 2

	// LevelDetail covers potentials, reduced costs and plan snapshots.
	LevelDetail klog.Level = 4
)

// Entry is one journal line.
type Entry struct {
	Kind      transport.EventKind
	Iteration int
	Cost      float64
	Message   string
	Err       error
}

// Recorder is a transport observer. Pass Recorder.Observe to
// transport.WithObserver. It is not safe for concurrent use, which matches
// the synchronous delivery of events.
type Recorder struct {
	limit   int
	journal []Entry
	dropped int
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithLimit keeps only the last n journal entries (n <= 0 keeps all).
func WithLimit(n int) Option {
	return func(r *Recorder) { r.limit = n }
}

// New returns a Recorder.
func New(opts ...Option) *Recorder {
	r := &Recorder{}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Observe logs ev and appends it to the journal. Warnings carried by an event
// (Event.Err) are logged once, at warning severity.
func (r *Recorder) Observe(ev transport.Event) {
	r.log(ev)

	r.journal = append(r.journal, Entry{
		Kind:      ev.Kind,
		Iteration: ev.Iteration,
		Cost:      ev.Cost,
		Message:   ev.Message,
		Err:       ev.Err,
	})
	if r.limit > 0 && len(r.journal) > r.limit {
		over := len(r.journal) - r.limit
		r.journal = append(r.journal[:0], r.journal[over:]...)
		r.dropped += over
	}
}

// Journal returns a copy of the recorded entries, oldest first.
func (r *Recorder) Journal() []Entry {
	return append([]Entry(nil), r.journal...)
}

// Dropped reports how many entries fell off the journal because of WithLimit.
func (r *Recorder) Dropped() int { return r.dropped }

// Level returns the verbosity at which kind is logged.
func Level(kind transport.EventKind) klog.Level {
	switch kind {
	case transport.BalanceChecked, transport.InitialPlanReady, transport.DegeneracyResolved,
		transport.OptimalReached, transport.MaxIterationsReached:
		return LevelPhase
	case transport.CycleFound, transport.Reallocated, transport.RentComputed, transport.TariffsUpdated:
		return LevelStep
	default:
		return LevelDetail
	}
}

func (r *Recorder) log(ev transport.Event) {
	if ev.Err != nil {
		klog.Warningf("%s at iteration %d: %v", ev.Kind, ev.Iteration, ev.Err)
	}
	if ev.Kind == transport.MaxIterationsReached {
		klog.Warningf("iteration budget exhausted at iteration %d, plan may be suboptimal (cost %g)", ev.Iteration, ev.Cost)
	}

	v := klog.V(Level(ev.Kind))
	if !v.Enabled() {
		return
	}
	kv := []interface{}{"iteration", ev.Iteration}
	switch ev.Kind {
	case transport.BalanceChecked:
		kv = append(kv, "totalSupply", ev.TotalSupply, "totalDemand", ev.TotalDemand,
			"supplyDummy", ev.SupplyDummy, "demandDummy", ev.DemandDummy)
	case transport.PotentialsComputed:
		kv = append(kv, "reference", ev.Reference, "u", ev.U, "v", ev.V)
	case transport.CycleFound:
		kv = append(kv, "cycle", fmt.Sprint(ev.Cells))
	case transport.Reallocated:
		kv = append(kv, "entering", ev.Entering.String(), "leaving", ev.Leaving.String(), "theta", ev.Theta, "cost", ev.Cost)
	case transport.RentComputed:
		kv = append(kv, "rent", ev.Rent, "deficitRows", ev.DeficitRows, "surplusRows", ev.SurplusRows)
	case transport.TariffsUpdated:
		kv = append(kv, "rent", ev.Rent)
	case transport.InitialPlanReady, transport.OptimalReached, transport.MaxIterationsReached:
		kv = append(kv, "cost", ev.Cost)
	}
	v.InfoS(ev.Message, append([]interface{}{"event", ev.Kind.String()}, kv...)...)

	if ev.Plan != nil && klog.V(LevelDetail).Enabled() {
		klog.V(LevelDetail).InfoS("plan snapshot", "event", ev.Kind.String(), "plan", "\n"+ev.Plan.String())
	}
}
