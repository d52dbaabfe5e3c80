// SPDX-License-Identifier: MIT

package transport

import (
	"fmt"
	"math"
	"strings"
)

// Defaults used by DefaultOptions.
const (
	// DefaultEpsilon is the tolerance for every comparison against zero.
	DefaultEpsilon = 1e-9

	// DefaultMaxIterations bounds the number of MODI reallocations.
	DefaultMaxIterations = 10

	// DefaultRentMaxIterations bounds the number of Differential Rent rounds.
	DefaultRentMaxIterations = 50
)

// Method selects the optimization strategy run by Solve.
type Method int

const (
	// MethodPotentials runs Balance → BuildInitialPlan → ResolveDegeneracy → MODI.
	MethodPotentials Method = iota

	// MethodDifferentialRent runs Balance → SolveByDifferentialRent.
	MethodDifferentialRent
)

// String returns the flag-friendly name of m.
func (m Method) String() string {
	switch m {
	case MethodPotentials:
		return "potentials"
	case MethodDifferentialRent:
		return "rent"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps a name ("potentials", "modi", "rent", "differential-rent")
// to a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "potentials", "modi", "":
		return MethodPotentials, nil
	case "rent", "differential-rent":
		return MethodDifferentialRent, nil
	default:
		return 0, fmt.Errorf("%w: unknown method %q", ErrOptionViolation, s)
	}
}

// Initializer selects how the initial basic feasible plan is built.
type Initializer int

const (
	// MinimumCost fills the globally cheapest open cell first.
	MinimumCost Initializer = iota

	// NorthwestCorner walks the matrix from the top-left cell.
	NorthwestCorner

	// Vogel applies Vogel's approximation method (largest penalty first).
	Vogel
)

// String returns the flag-friendly name of i.
func (i Initializer) String() string {
	switch i {
	case MinimumCost:
		return "min-cost"
	case NorthwestCorner:
		return "northwest"
	case Vogel:
		return "vogel"
	default:
		return fmt.Sprintf("Initializer(%d)", int(i))
	}
}

// ParseInitializer maps a name ("min-cost", "northwest", "vogel") to an Initializer.
func ParseInitializer(s string) (Initializer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "min-cost", "mincost", "minimum-cost", "":
		return MinimumCost, nil
	case "northwest", "north-west", "nw":
		return NorthwestCorner, nil
	case "vogel", "vam":
		return Vogel, nil
	default:
		return 0, fmt.Errorf("%w: unknown initializer %q", ErrOptionViolation, s)
	}
}

// Option configures solver behavior via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation when the
// operation runs.
type Option func(*Options)

// Options holds parameters and the progress hook shared by every phase.
type Options struct {
	// Method used by Solve.
	Method Method

	// Initializer used by BuildInitialPlan.
	Initializer Initializer

	// Epsilon is the zero tolerance (must be > 0).
	Epsilon float64

	// MaxIterations bounds MODI reallocations (0 allows only the optimality check).
	MaxIterations int

	// RentMaxIterations bounds Differential Rent rounds (must be > 0).
	RentMaxIterations int

	// OnEvent receives progress events synchronously. It must not block;
	// the events it receives are snapshots.
	OnEvent func(Event)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - Method = MethodPotentials, Initializer = MinimumCost
//   - Epsilon = 1e-9
//   - MaxIterations = 10, RentMaxIterations = 50
//   - no observer.
func DefaultOptions() Options {
	return Options{
		Method:            MethodPotentials,
		Initializer:       MinimumCost,
		Epsilon:           DefaultEpsilon,
		MaxIterations:     DefaultMaxIterations,
		RentMaxIterations: DefaultRentMaxIterations,
	}
}

// WithMethod selects the strategy run by Solve.
func WithMethod(m Method) Option {
	return func(o *Options) {
		switch m {
		case MethodPotentials, MethodDifferentialRent:
			o.Method = m
		default:
			o.err = fmt.Errorf("%w: unknown method %d", ErrOptionViolation, int(m))
		}
	}
}

// WithInitializer selects the initial plan construction.
func WithInitializer(i Initializer) Option {
	return func(o *Options) {
		switch i {
		case MinimumCost, NorthwestCorner, Vogel:
			o.Initializer = i
		default:
			o.err = fmt.Errorf("%w: unknown initializer %d", ErrOptionViolation, int(i))
		}
	}
}

// WithEpsilon sets the zero tolerance; eps must be finite and > 0.
func WithEpsilon(eps float64) Option {
	return func(o *Options) {
		if eps <= 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
			o.err = fmt.Errorf("%w: Epsilon must be finite and > 0 (%g)", ErrOptionViolation, eps)
			return
		}
		o.Epsilon = eps
	}
}

// WithMaxIterations bounds MODI reallocations.
//
//	n > 0: at most n reallocations
//	n == 0: only check optimality of the given plan
//	n < 0: invalid option → ErrOptionViolation
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxIterations cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxIterations = n
	}
}

// WithRentMaxIterations bounds Differential Rent rounds; n must be > 0.
func WithRentMaxIterations(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: RentMaxIterations must be > 0 (%d)", ErrOptionViolation, n)
			return
		}
		o.RentMaxIterations = n
	}
}

// WithObserver registers the progress hook. A nil fn is ignored.
func WithObserver(fn func(Event)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEvent = fn
		}
	}
}

// buildOptions applies opts over DefaultOptions and reports the first
// recorded violation.
func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
		if o.err != nil {
			return o, o.err
		}
	}

	return o, nil
}

// observed reports whether snapshots need to be built for the hook.
func (o *Options) observed() bool { return o.OnEvent != nil }

// emit delivers ev to the hook, if any.
func (o *Options) emit(ev Event) {
	if o.OnEvent != nil {
		o.OnEvent(ev)
	}
}
