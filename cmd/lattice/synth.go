package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/klothoplatform/lattice/pkg/io"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var synthCfg struct {
	stackFlags
	outputDir string
	format    string
}

func newSynthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesize the stack definition into a CloudFormation template",
		RunE:  runSynth,
	}
	flags := cmd.Flags()
	synthCfg.register(flags)
	flags.StringVarP(&synthCfg.outputDir, "output-dir", "o", "out", "Output directory")
	flags.StringVar(&synthCfg.format, "format", "json", "Template format: json or yaml")
	return cmd
}

func runSynth(cmd *cobra.Command, args []string) error {
	if synthCfg.format != "json" && synthCfg.format != "yaml" {
		return errors.Errorf("unknown format %q, must be json or yaml", synthCfg.format)
	}
	stack, err := synthCfg.buildStack(cmd.Context())
	if err != nil {
		return err
	}

	tmpl, err := stack.Template()
	if err != nil {
		return errors.Wrap(err, "failed to render template")
	}
	var content []byte
	if synthCfg.format == "yaml" {
		content, err = tmpl.YAML()
	} else {
		content, err = tmpl.JSON()
	}
	if err != nil {
		return errors.Wrap(err, "failed to marshal template")
	}

	file := &io.RawFile{
		FPath:   fmt.Sprintf("%s.template.%s", stack.Name, synthCfg.format),
		Content: content,
	}
	if err := io.OutputTo([]io.File{file}, synthCfg.outputDir); err != nil {
		return errors.Wrap(err, "failed to write output files")
	}

	color.New(color.FgHiGreen).Fprintf(os.Stderr, "Synthesized %d resources to %s\n",
		len(tmpl.Resources), filepath.Join(synthCfg.outputDir, file.Path()))
	return nil
}
