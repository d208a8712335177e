package main

import (
	"os"

	"github.com/klothoplatform/lattice/pkg/closenicely"
	"github.com/klothoplatform/lattice/pkg/construct"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var graphCfg struct {
	stackFlags
	output string
}

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the resource dependency graph of the stack as YAML",
		RunE:  runGraph,
	}
	flags := cmd.Flags()
	graphCfg.register(flags)
	flags.StringVarP(&graphCfg.output, "output", "o", "", "File to write the graph to (default stdout)")
	return cmd
}

func runGraph(cmd *cobra.Command, args []string) error {
	stack, err := graphCfg.buildStack(cmd.Context())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if graphCfg.output != "" {
		f, err := os.Create(graphCfg.output)
		if err != nil {
			return errors.Wrap(err, "failed to create graph output")
		}
		defer closenicely.OrDebug(f)
		w = f
	}
	return errors.Wrap(construct.GraphToYAML(stack.Graph(), w), "failed to write graph")
}
