// SPDX-License-Identifier: MIT

package transport_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/katalvlaran/transport"
)

// lpOptimum solves the balanced problem as a standard-form LP:
// minimize Σ c·x subject to row sums = supplies, column sums = demands, x ≥ 0.
// The last demand equation is implied by the others and is dropped so that
// the constraint matrix has full row rank.
func lpOptimum(t *testing.T, p *transport.Problem) float64 {
	t.Helper()
	m, n := p.Suppliers(), p.Consumers()
	c := make([]float64, 0, m*n)
	for _, row := range p.Costs.ToRows() {
		c = append(c, row...)
	}

	rows := m + n - 1
	A := mat.NewDense(rows, m*n, nil)
	b := make([]float64, rows)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			A.Set(i, i*n+j, 1)
		}
		b[i] = p.Supplies[i]
	}
	for j := 0; j < n-1; j++ {
		for i := 0; i < m; i++ {
			A.Set(m+j, i*n+j, 1)
		}
		b[m+j] = p.Demands[j]
	}

	opt, _, err := lp.Simplex(c, A, b, 0, nil)
	require.NoError(t, err)

	return opt
}

// TestStrategiesReachLPOptimum checks both strategies against gonum's simplex.
func TestStrategiesReachLPOptimum(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	instances := [][3]any{
		{classicCosts, classicSupplies, classicDemands},
		{squareCosts, squareSupplies, squareDemands},
		{tieCosts, tieSupplies, tieDemands},
	}
	for k := 0; k < 40; k++ {
		c, s, d := randomInstance(rng, 2+rng.Intn(4), 2+rng.Intn(4))
		instances = append(instances, [3]any{c, s, d})
	}

	for k, in := range instances {
		costs, supplies, demands := in[0].([][]float64), in[1].([]float64), in[2].([]float64)

		modi, err := transport.Solve(costs, supplies, demands, transport.WithMaxIterations(200))
		require.NoError(t, err, "instance %d", k)
		want := lpOptimum(t, modi.Problem)
		require.InDelta(t, want, modi.TotalCost, 1e-6, "potentials, instance %d", k)

		rent, err := transport.Solve(costs, supplies, demands, transport.WithMethod(transport.MethodDifferentialRent))
		require.NoError(t, err, "instance %d", k)
		require.InDelta(t, want, rent.TotalCost, 1e-6, "rent, instance %d", k)
	}
}
