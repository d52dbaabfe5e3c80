// SPDX-License-Identifier: MIT

// Command transport solves transportation problems stored in YAML or JSON
// files.
//
//	transport solve -f problem.yaml
//	transport solve -f problem.yaml --method rent -o yaml
//	TRANSPORT_MAX_ITERATIONS=50 transport solve -f problem.yaml -v 2
package main

import (
	goflag "flag"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

func main() {
	klog.InitFlags(nil)
	defer klog.Flush()

	if err := newRootCommand().Execute(); err != nil {
		klog.Flush()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "transport",
		Short:        "Solve transportation problems (method of potentials, differential rent)",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().AddGoFlagSet(goflag.CommandLine)

	cmd.AddCommand(newSolveCommand())

	return cmd
}
