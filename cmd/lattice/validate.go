package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/klothoplatform/lattice/pkg/construct"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var validateCfg struct {
	stackFlags
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that the stack definition builds, without writing anything",
		RunE:  runValidate,
	}
	validateCfg.register(cmd.Flags())
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	stack, err := validateCfg.buildStack(cmd.Context())
	if err != nil {
		return err
	}
	// rendering resolves every reference, which catches anything the constructs could not
	if _, err := stack.Template(); err != nil {
		return errors.Wrap(err, "failed to render template")
	}
	ids, err := stack.Resources("")
	if err != nil {
		return err
	}

	hash, err := construct.Hash(stack.Graph())
	if err != nil {
		return errors.Wrap(err, "failed to hash resource graph")
	}

	c := color.New(color.FgHiGreen)
	if commonCfg.Counts.HadWarnings() {
		c = color.New(color.FgHiYellow)
	}
	c.Fprintf(os.Stderr, "Stack %s is valid: %d resources, %d warning(s)\n", stack.Name, len(ids), commonCfg.Counts.Warnings())
	// the fingerprint goes to stdout so it can be compared between runs
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%x\n", hash)
	return err
}
