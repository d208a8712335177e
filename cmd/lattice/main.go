package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	clicommon "github.com/klothoplatform/lattice/pkg/cli_common"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var commonCfg clicommon.CommonConfig

func main() {
	// .env is optional, it is mostly used for AWS_PROFILE / AWS_REGION of the aws lookups
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "could not load .env: %v\n", err)
		os.Exit(1)
	}

	root := newRootCmd()
	if err := root.Execute(); err != nil {
		color.New(color.FgHiRed, color.Bold).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lattice",
		Short:         "Synthesize VPC Lattice services and service networks into CloudFormation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	clicommon.SetupRoot(root, &commonCfg)

	root.AddCommand(newSynthCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newGraphCmd())
	return root
}
