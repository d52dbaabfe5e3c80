// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/transport"
	"github.com/katalvlaran/transport/internal/problemfile"
	"github.com/katalvlaran/transport/internal/trace"
)

// report is the printable form of a solve.
type report struct {
	Name        string         `json:"name,omitempty" yaml:"name,omitempty"`
	Method      string         `json:"method" yaml:"method"`
	Initializer string         `json:"initializer,omitempty" yaml:"initializer,omitempty"`
	TotalCost   float64        `json:"totalCost" yaml:"totalCost"`
	Iterations  int            `json:"iterations" yaml:"iterations"`
	Termination string         `json:"termination" yaml:"termination"`
	Shipments   []shipmentLine `json:"shipments" yaml:"shipments"`
	Potentials  *potentials    `json:"potentials,omitempty" yaml:"potentials,omitempty"`
	RowRents    []float64      `json:"rowRents,omitempty" yaml:"rowRents,omitempty"`
	Warnings    []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type shipmentLine struct {
	From     string  `json:"from" yaml:"from"`
	To       string  `json:"to" yaml:"to"`
	Amount   float64 `json:"amount" yaml:"amount"`
	UnitCost float64 `json:"unitCost" yaml:"unitCost"`
	Cost     float64 `json:"cost" yaml:"cost"`
	Dummy    bool    `json:"dummy,omitempty" yaml:"dummy,omitempty"`
}

type potentials struct {
	U []float64 `json:"u" yaml:"u"`
	V []float64 `json:"v" yaml:"v"`
}

func newReport(def *problemfile.Definition, res *transport.Result, in transport.Initializer) *report {
	rep := &report{
		Name:        def.Name,
		Method:      res.Method.String(),
		TotalCost:   res.TotalCost,
		Iterations:  res.Iterations,
		Termination: res.Termination.String(),
		RowRents:    res.RowRents,
	}
	if res.Method == transport.MethodPotentials {
		rep.Initializer = in.String()
	}
	if res.Potentials != nil {
		rep.Potentials = &potentials{U: res.Potentials.U, V: res.Potentials.V}
	}
	for _, s := range res.Shipments() {
		rep.Shipments = append(rep.Shipments, shipmentLine{
			From:     def.SupplierName(s.From),
			To:       def.ConsumerName(s.To),
			Amount:   s.Amount,
			UnitCost: s.UnitCost,
			Cost:     s.Cost,
			Dummy:    s.Dummy,
		})
	}
	for _, w := range res.Warnings {
		rep.Warnings = append(rep.Warnings, w.Error())
	}

	return rep
}

func writeTable(w io.Writer, rep *report) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "FROM\tTO\tAMOUNT\tUNIT COST\tCOST")
	for _, s := range rep.Shipments {
		to := s.To
		if s.Dummy {
			to += " *"
		}
		fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\n", s.From, to, s.Amount, s.UnitCost, s.Cost)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nmethod:      %s\n", rep.Method)
	if rep.Initializer != "" {
		fmt.Fprintf(w, "initializer: %s\n", rep.Initializer)
	}
	fmt.Fprintf(w, "total cost:  %g\n", rep.TotalCost)
	fmt.Fprintf(w, "iterations:  %d (%s)\n", rep.Iterations, rep.Termination)
	for _, warn := range rep.Warnings {
		fmt.Fprintf(w, "warning:     %s\n", warn)
	}

	return nil
}

func writeYAML(w io.Writer, rep *report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return err
	}

	return enc.Close()
}

func writeJSON(w io.Writer, rep *report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(rep)
}

func writeJournal(w io.Writer, entries []trace.Entry) error {
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ITER\tEVENT\tDETAIL")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", e.Iteration, e.Kind, e.Message)
	}

	return tw.Flush()
}
