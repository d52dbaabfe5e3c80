// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/transport"
)

const classicFile = `
name: classic
suppliers: [A1, A2, A3]
consumers: [B1, B2, B3, B4]
costs:
  - [19, 30, 50, 10]
  - [70, 30, 40, 60]
  - [40, 8, 70, 20]
supplies: [7, 9, 18]
demands: [5, 8, 7, 14]
`

func writeProblem(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "problem.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	return path
}

func runSolveCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newSolveCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func TestSolveTable(t *testing.T) {
	out, err := runSolveCommand(t, "-f", writeProblem(t, classicFile))
	require.NoError(t, err)

	assert.Contains(t, out, "FROM")
	assert.Contains(t, out, "A3")
	assert.Contains(t, out, "method:      potentials")
	assert.Contains(t, out, "initializer: min-cost")
	assert.Contains(t, out, "total cost:  743")
	assert.Contains(t, out, "iterations:  2 (optimal)")
}

func TestSolveYAMLWithRent(t *testing.T) {
	out, err := runSolveCommand(t, "-f", writeProblem(t, classicFile), "--method", "rent", "-o", "yaml")
	require.NoError(t, err)

	var rep report
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "classic", rep.Name)
	assert.Equal(t, "rent", rep.Method)
	assert.Equal(t, 743.0, rep.TotalCost)
	assert.Equal(t, []float64{32, 0, 22}, rep.RowRents)
	assert.Empty(t, rep.Initializer)
	assert.Len(t, rep.Shipments, 6)
}

func TestSolveJSONUnbalanced(t *testing.T) {
	doc := "consumers: [Shop]\ncosts: [[2], [4]]\nsupplies: [5, 10]\ndemands: [8]\n"
	out, err := runSolveCommand(t, "-f", writeProblem(t, doc), "-o", "json")
	require.NoError(t, err)

	var rep report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 22.0, rep.TotalCost)
	require.Len(t, rep.Shipments, 3)
	assert.Equal(t, "S2", rep.Shipments[2].From)
	assert.Equal(t, "(dummy)", rep.Shipments[2].To)
	assert.True(t, rep.Shipments[2].Dummy)
	require.NotNil(t, rep.Potentials)
}

func TestSolveFileSettingsAndEnv(t *testing.T) {
	path := writeProblem(t, classicFile+"method: rent\n")

	out, err := runSolveCommand(t, "-f", path, "-o", "json")
	require.NoError(t, err)
	var rep report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "rent", rep.Method)

	// The environment overrides the file.
	t.Setenv("TRANSPORT_METHOD", "potentials")
	t.Setenv("TRANSPORT_MAX_ITERATIONS", "1")
	out, err = runSolveCommand(t, "-f", path, "-o", "json")
	require.NoError(t, err)
	rep = report{}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "potentials", rep.Method)
	assert.Equal(t, transport.IterationLimit.String(), rep.Termination)
	assert.Equal(t, 781.0, rep.TotalCost)
}

func TestSolveTrace(t *testing.T) {
	out, err := runSolveCommand(t, "-f", writeProblem(t, classicFile), "--trace")
	require.NoError(t, err)
	assert.Contains(t, out, "ITER")
	assert.Contains(t, out, "Reallocated")
	assert.Contains(t, out, "OptimalReached")
}

func TestSolveErrors(t *testing.T) {
	_, err := runSolveCommand(t, "-f", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = runSolveCommand(t, "-f", writeProblem(t, classicFile), "--method", "simplex")
	require.ErrorIs(t, err, transport.ErrOptionViolation)

	_, err = runSolveCommand(t, "-f", writeProblem(t, classicFile), "-o", "xml")
	require.Error(t, err)

	_, err = runSolveCommand(t, "-f", writeProblem(t, classicFile), "--epsilon", "-1")
	require.ErrorIs(t, err, transport.ErrOptionViolation)
}
